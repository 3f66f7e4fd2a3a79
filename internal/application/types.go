package application

import (
	"encoding/json"
	"time"
)

type Config struct {
	// VerifyPayments is false when no gateway credential is configured.
	// The pipeline then proceeds unverified, with a warning per request.
	VerifyPayments bool
	// VerifyTimeout and SubmitTimeout bound the two externally-bound calls so
	// a hung collaborator cannot hang a request indefinitely.
	VerifyTimeout time.Duration
	SubmitTimeout time.Duration
	// FollowerWait bounds how long a duplicate request waits for the leader's
	// outcome before reporting duplicate-in-flight.
	FollowerWait time.Duration
	// ClaimTTL bounds the cross-instance claim held while a leader runs.
	ClaimTTL time.Duration
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
}

type InitializePaymentInput struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
	// Metadata is forwarded to the gateway untouched so the checkout session
	// can carry portal context (selected course, center) back on webhooks.
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

type CreateTicketInput struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type AddTicketMessageInput struct {
	Body string `json:"body"`
}
