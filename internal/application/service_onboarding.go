package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/brightpath/student-portal-api/internal/domain"
	"github.com/brightpath/student-portal-api/internal/ports"
)

// SubmitEnrollment runs one onboarding submission attempt:
// dedup guard, payment verification, backend enrollment.
//
// The payment reference is the identity key. The first caller to claim it is
// the leader and performs the work; concurrent callers for the same reference
// join as followers and receive the leader's terminal outcome. A follower
// whose wait ends first reports ErrDuplicateInFlight. The leader always clears
// the registry entry on completion, so a later retry starts a fresh attempt.
func (s *Service) SubmitEnrollment(ctx context.Context, req domain.SubmissionRequest, sessionToken string) (domain.EnrollmentOutcome, error) {
	if err := validateSubmission(req); err != nil {
		return domain.EnrollmentOutcome{}, err
	}

	handle := s.registry.Acquire(req.PaymentReference)
	if !handle.Leader() {
		return s.joinExisting(ctx, req.PaymentReference, handle)
	}

	// The leader runs to a terminal state even if the originating request is
	// cancelled; a half-finished pipeline must never leave its in-flight
	// marker behind.
	workCtx := context.WithoutCancel(ctx)

	if s.claims != nil {
		claimed, err := s.claims.Claim(workCtx, req.PaymentReference, s.cfg.ClaimTTL)
		if err != nil {
			// The claim store is a best-effort widening of the guard; losing
			// it degrades to process-local dedup rather than failing requests.
			s.svcLogger().WarnContext(ctx, "cross-instance claim unavailable",
				"operation", "submit_enrollment",
				"reference", req.PaymentReference,
				"error", err,
			)
		} else if !claimed {
			handle.Complete(ports.Settled{Err: domain.ErrDuplicateInFlight})
			return domain.EnrollmentOutcome{}, domain.ErrDuplicateInFlight
		} else {
			defer func() { _ = s.claims.Release(workCtx, req.PaymentReference) }()
		}
	}

	res := s.runSubmission(workCtx, req, sessionToken)
	handle.Complete(res)
	s.recordOutcome(workCtx, req, res)
	return res.Outcome, res.Err
}

// joinExisting waits for the leader's outcome, bounded by the request context
// and the follower-wait budget.
func (s *Service) joinExisting(ctx context.Context, reference string, handle ports.InFlightHandle) (domain.EnrollmentOutcome, error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.FollowerWait)
	defer cancel()

	res, err := handle.Wait(waitCtx)
	if err != nil {
		s.svcLogger().InfoContext(ctx, "duplicate submission still processing",
			"operation", "submit_enrollment",
			"reference", reference,
		)
		return domain.EnrollmentOutcome{}, domain.ErrDuplicateInFlight
	}
	return res.Outcome, res.Err
}

func (s *Service) runSubmission(ctx context.Context, req domain.SubmissionRequest, sessionToken string) ports.Settled {
	if !s.cfg.VerifyPayments || s.gateway == nil {
		s.svcLogger().WarnContext(ctx, "payment verification skipped: no verification credential configured",
			"operation", "submit_enrollment",
			"reference", req.PaymentReference,
		)
	} else {
		verifyCtx, cancel := context.WithTimeout(ctx, s.cfg.VerifyTimeout)
		result, err := s.gateway.Verify(verifyCtx, req.PaymentReference)
		cancel()
		if err != nil {
			return ports.Settled{Err: err}
		}
		if !result.Settled {
			return ports.Settled{Err: fmt.Errorf("%w: gateway reports status %q", domain.ErrVerificationFailed, result.GatewayStatus)}
		}
	}

	payload := ports.EnrollmentPayload{
		Profile:          req.Profile,
		CenterID:         req.SelectedCenter.ID,
		CourseID:         req.SelectedCourse.ID,
		PaymentPlan:      req.PaymentPlan,
		PaymentReference: req.PaymentReference,
		UserID:           s.resolveUserID(ctx, sessionToken),
	}

	submitCtx, cancel := context.WithTimeout(ctx, s.cfg.SubmitTimeout)
	defer cancel()
	data, err := s.backend.Enroll(submitCtx, payload)
	if err != nil {
		return ports.Settled{
			Outcome: domain.EnrollmentOutcome{Success: false, ErrorMessage: err.Error()},
			Err:     err,
		}
	}
	return ports.Settled{Outcome: domain.EnrollmentOutcome{Success: true, Data: data}}
}

// resolveUserID extracts the caller identity from a verified session token.
// Resolution failure is non-fatal; the enrollment simply omits the field.
func (s *Service) resolveUserID(ctx context.Context, sessionToken string) string {
	if sessionToken == "" || s.tokens == nil {
		return ""
	}
	claims, err := s.tokens.Verify(sessionToken)
	if err != nil {
		s.svcLogger().InfoContext(ctx, "session token not resolvable, omitting user id",
			"operation", "submit_enrollment",
			"error", err,
		)
		return ""
	}
	return claims.UserID
}

// recordOutcome appends one journal row per terminal state. Write-behind and
// best-effort: journal failures are logged, never surfaced to the caller.
func (s *Service) recordOutcome(ctx context.Context, req domain.SubmissionRequest, res ports.Settled) {
	if s.journal == nil {
		return
	}
	rec := domain.SubmissionRecord{
		Reference:   req.PaymentReference,
		Outcome:     domain.OutcomeSucceeded,
		CourseID:    req.SelectedCourse.ID,
		CenterID:    req.SelectedCenter.ID,
		CompletedAt: s.nowFn(),
	}
	if res.Err != nil {
		rec.Outcome = domain.OutcomeFailed
		rec.ErrorCode = OutcomeCode(res.Err)
	} else {
		rec.StudentID = studentIDFrom(res.Outcome.Data)
	}
	if err := s.journal.Record(ctx, rec); err != nil {
		s.svcLogger().WarnContext(ctx, "journal write failed",
			"operation", "submit_enrollment",
			"reference", req.PaymentReference,
			"error", err,
		)
	}
}

// OutcomeCode names a terminal failure for journaling and metrics.
func OutcomeCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrVerificationFailed):
		return "verification_failed"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "backend_unavailable"
	case errors.Is(err, domain.ErrBackendRejected):
		return "backend_rejected"
	case errors.Is(err, domain.ErrDuplicateInFlight):
		return "duplicate_in_flight"
	default:
		return "internal_error"
	}
}

func studentIDFrom(data json.RawMessage) string {
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return ""
	}
	return out.ID
}

func validateSubmission(req domain.SubmissionRequest) error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(req.PaymentReference) == "" {
		missing = append(missing, "payment_reference")
	}
	if strings.TrimSpace(req.Profile.Email) == "" {
		missing = append(missing, "profile.email")
	}
	if strings.TrimSpace(req.Profile.FirstName) == "" {
		missing = append(missing, "profile.first_name")
	}
	if strings.TrimSpace(req.SelectedCenter.ID) == "" {
		missing = append(missing, "selected_center.id")
	}
	if strings.TrimSpace(req.SelectedCourse.ID) == "" {
		missing = append(missing, "selected_course.id")
	}
	if req.PaymentPlan.InitialDeposit <= 0 {
		missing = append(missing, "payment_plan.initial_deposit")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// VerifyPayment exposes the verification step read-only.
func (s *Service) VerifyPayment(ctx context.Context, reference string) (domain.VerificationResult, error) {
	if strings.TrimSpace(reference) == "" {
		return domain.VerificationResult{}, fmt.Errorf("%w: missing reference", domain.ErrInvalidInput)
	}
	if s.gateway == nil || !s.cfg.VerifyPayments {
		return domain.VerificationResult{}, fmt.Errorf("%w: payment gateway not configured", domain.ErrConfiguration)
	}
	verifyCtx, cancel := context.WithTimeout(ctx, s.cfg.VerifyTimeout)
	defer cancel()
	return s.gateway.Verify(verifyCtx, reference)
}

// InitializePayment opens a gateway checkout session for the deposit.
func (s *Service) InitializePayment(ctx context.Context, in InitializePaymentInput) (ports.PaymentSession, error) {
	if strings.TrimSpace(in.Email) == "" || in.Amount <= 0 {
		return ports.PaymentSession{}, fmt.Errorf("%w: email and positive amount are required", domain.ErrInvalidInput)
	}
	if s.gateway == nil {
		return ports.PaymentSession{}, fmt.Errorf("%w: payment gateway not configured", domain.ErrConfiguration)
	}
	initCtx, cancel := context.WithTimeout(ctx, s.cfg.VerifyTimeout)
	defer cancel()
	return s.gateway.Initialize(initCtx, ports.InitializePaymentInput{
		Email:    in.Email,
		Amount:   in.Amount,
		Metadata: in.Metadata,
	})
}
