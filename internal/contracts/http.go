package contracts

import "github.com/brightpath/student-portal-api/internal/domain"

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitEnrollmentRequest is the onboarding submission body.
// The user identity is never taken from the body; it is resolved from the
// verified session token when present.
type SubmitEnrollmentRequest struct {
	Profile          domain.Profile     `json:"profile"`
	SelectedCenter   domain.Center      `json:"selected_center"`
	SelectedCourse   domain.Course      `json:"selected_course"`
	PaymentPlan      domain.PaymentPlan `json:"payment_plan"`
	PaymentReference string             `json:"payment_reference"`
}

// SubmitEnrollmentResponse mirrors the submission endpoint's success shape.
type SubmitEnrollmentResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}
