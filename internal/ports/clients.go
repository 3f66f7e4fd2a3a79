package ports

import (
	"context"
	"encoding/json"

	"github.com/brightpath/student-portal-api/internal/domain"
)

// PaymentGateway is the external payment processor consulted to confirm a
// payment settled and to open new payment sessions.
type PaymentGateway interface {
	// Verify looks up a transaction by reference. A transport error, non-2xx
	// response, or non-success transaction status yields Settled=false.
	Verify(ctx context.Context, reference string) (domain.VerificationResult, error)
	Initialize(ctx context.Context, in InitializePaymentInput) (PaymentSession, error)
}

// InitializePaymentInput opens a gateway checkout session.
// Amount is in the gateway's minor currency unit.
type InitializePaymentInput struct {
	Email    string          `json:"email"`
	Amount   int64           `json:"amount"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// PaymentSession is the gateway's handle for a newly initialized transaction.
type PaymentSession struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// EnrollmentPayload is the assembled body for the backend enroll call.
// UserID is attached only when resolvable from a verified session token.
type EnrollmentPayload struct {
	Profile          domain.Profile     `json:"profile"`
	CenterID         string             `json:"center_id"`
	CourseID         string             `json:"course_id"`
	PaymentPlan      domain.PaymentPlan `json:"payment_plan"`
	PaymentReference string             `json:"payment_reference"`
	UserID           string             `json:"user_id,omitempty"`
}

// Credentials is the login/register input forwarded to the backend.
type Credentials struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
}

// AuthResult is the backend's answer to login/register, passed through to the
// browser with the session token extracted for middleware use.
type AuthResult struct {
	Token string          `json:"token"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// TicketInput creates a support ticket on behalf of the caller.
type TicketInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Backend is the external system of record behind every portal façade:
// auth, catalog, enrollment, profile and support tickets.
type Backend interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	Register(ctx context.Context, creds Credentials) (AuthResult, error)
	Logout(ctx context.Context, token string) error

	ListCenters(ctx context.Context) ([]domain.Center, error)
	ListCourses(ctx context.Context, centerID string) ([]domain.Course, error)

	// Enroll issues exactly one submission call and classifies the failure:
	// domain.ErrBackendUnavailable on transport errors, domain.ErrBackendRejected
	// on non-success statuses (with the backend's message attached verbatim).
	Enroll(ctx context.Context, payload EnrollmentPayload) (json.RawMessage, error)

	GetProfile(ctx context.Context, token string) (json.RawMessage, error)
	UpdateProfile(ctx context.Context, token string, patch json.RawMessage) (json.RawMessage, error)

	CreateTicket(ctx context.Context, token string, in TicketInput) (domain.Ticket, error)
	ListTickets(ctx context.Context, token string) ([]domain.Ticket, error)
	ListTicketMessages(ctx context.Context, token, ticketID string) ([]domain.TicketMessage, error)
	AddTicketMessage(ctx context.Context, token, ticketID, body string) (domain.TicketMessage, error)
}
