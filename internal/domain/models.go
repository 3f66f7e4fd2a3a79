package domain

import (
	"encoding/json"
	"time"
)

// Profile is the applicant profile collected during onboarding.
type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Center is a physical training location offered by the backend catalog.
type Center struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// Course is a catalog entry tied to one or more centers.
type Course struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration string `json:"duration,omitempty"`
	Fee      int64  `json:"fee,omitempty"`
	CenterID string `json:"center_id,omitempty"`
}

// Installment is one scheduled payment inside a plan.
type Installment struct {
	Amount  int64  `json:"amount"`
	DueDate string `json:"due_date"`
}

// PaymentPlan is the deposit-plus-installments arrangement the applicant chose.
type PaymentPlan struct {
	InitialDeposit int64         `json:"initial_deposit"`
	Duration       int           `json:"duration"`
	Installments   []Installment `json:"installments,omitempty"`
}

// SubmissionRequest is one onboarding enrollment attempt.
// PaymentReference is the identity key: externally generated, assumed globally
// unique per attempt, and immutable once the request is accepted into the guard.
type SubmissionRequest struct {
	Profile          Profile     `json:"profile"`
	SelectedCenter   Center      `json:"selected_center"`
	SelectedCourse   Course      `json:"selected_course"`
	PaymentPlan      PaymentPlan `json:"payment_plan"`
	PaymentReference string      `json:"payment_reference"`
	UserID           string      `json:"user_id,omitempty"`
}

// VerificationResult is the gateway's answer to a reference lookup.
// It is recomputed per submission attempt and never persisted.
type VerificationResult struct {
	Settled       bool            `json:"settled"`
	GatewayStatus string          `json:"gateway_status"`
	Raw           json.RawMessage `json:"raw,omitempty"`
}

// EnrollmentOutcome is the terminal result of one accepted submission.
// It is produced once, returned to the caller, then discarded.
type EnrollmentOutcome struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// SubmissionRecord is the journal row written after a submission reaches a
// terminal state. It is an audit trail only; the dedup guard never reads it.
type SubmissionRecord struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Outcome     string    `json:"outcome"`
	ErrorCode   string    `json:"error_code,omitempty"`
	StudentID   string    `json:"student_id,omitempty"`
	CourseID    string    `json:"course_id,omitempty"`
	CenterID    string    `json:"center_id,omitempty"`
	Published   bool      `json:"published"`
	CompletedAt time.Time `json:"completed_at"`
}

// Submission outcome labels recorded in the journal and emitted on events.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// Ticket is a support conversation as returned by the backend.
type Ticket struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// TicketMessage is one entry in a ticket conversation.
type TicketMessage struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
