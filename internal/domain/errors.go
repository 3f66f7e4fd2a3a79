package domain

import "errors"

var (
	// ErrInvalidInput is returned for missing or malformed request fields.
	// It is reported before any external call is made.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration signals a required collaborator setting is absent.
	// The backend base URL is the only fatal one; it is checked at bootstrap.
	ErrConfiguration = errors.New("configuration error")
	// ErrVerificationFailed means the gateway did not confirm the payment settled.
	// The pipeline aborts before any backend mutation when this is raised.
	ErrVerificationFailed = errors.New("payment verification failed")
	// ErrBackendUnavailable is a network-level failure reaching the backend.
	// It is kept distinct from ErrBackendRejected so callers can tell
	// "retry later" apart from "request is invalid".
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendRejected is a business-logic rejection from the backend.
	// The backend's own message is attached verbatim when present.
	ErrBackendRejected = errors.New("backend rejected request")
	// ErrDuplicateInFlight is returned to a follower whose wait ended before
	// the leader produced an outcome. It is a distinct resolved state, not a
	// submission failure.
	ErrDuplicateInFlight = errors.New("duplicate submission in flight")

	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
)
