package ports

import (
	"context"
	"time"

	"github.com/brightpath/student-portal-api/internal/domain"
)

// Settled is the terminal result of one submission attempt, as seen by both
// the leader that produced it and any followers that joined its reference.
type Settled struct {
	Outcome domain.EnrollmentOutcome
	Err     error
}

// InFlightHandle is one caller's view of a claimed payment reference.
type InFlightHandle interface {
	// Leader reports whether this caller claimed the reference first and is
	// responsible for running verification and submission.
	Leader() bool
	// Complete publishes the terminal result and removes the registry entry.
	// Leader-only; it must be called exactly once, success or failure, so a
	// retried request after completion starts a fresh attempt.
	Complete(res Settled)
	// Wait blocks until the leader completes or ctx ends, whichever is first.
	// The returned error is non-nil only when ctx ended before completion.
	Wait(ctx context.Context) (Settled, error)
}

// InFlightRegistry is the process-wide guard keyed by payment reference.
// Check-and-insert is a single indivisible step: two concurrent Acquire calls
// for the same reference yield exactly one leader.
type InFlightRegistry interface {
	Acquire(reference string) InFlightHandle
}

// ClaimStore extends the at-most-once guard across server instances.
// Claim returns false when another instance currently holds the reference.
type ClaimStore interface {
	Claim(ctx context.Context, reference string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, reference string) error
}
