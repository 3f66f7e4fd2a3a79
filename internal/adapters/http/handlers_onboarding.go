package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath/student-portal-api/internal/adapters/metrics"
	"github.com/brightpath/student-portal-api/internal/application"
	"github.com/brightpath/student-portal-api/internal/contracts"
	"github.com/brightpath/student-portal-api/internal/domain"
)

func (h *Handler) submitEnrollment(w http.ResponseWriter, r *http.Request) {
	var req contracts.SubmitEnrollmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "submit_enrollment", err)
		return
	}

	// Identity is optional here; an unverifiable token just omits the field.
	sessionToken, _ := bearerTokenFromHeader(r.Header.Get("Authorization"))

	outcome, err := h.service.SubmitEnrollment(r.Context(), domain.SubmissionRequest{
		Profile:          req.Profile,
		SelectedCenter:   req.SelectedCenter,
		SelectedCourse:   req.SelectedCourse,
		PaymentPlan:      req.PaymentPlan,
		PaymentReference: req.PaymentReference,
	}, sessionToken)
	if err != nil {
		metrics.IncSubmission(application.OutcomeCode(err))
		writeMappedError(r.Context(), w, "submit_enrollment", err)
		return
	}

	metrics.IncSubmission(domain.OutcomeSucceeded)
	writeJSON(w, http.StatusOK, contracts.SubmitEnrollmentResponse{
		Success: true,
		Data:    outcome.Data,
	})
}

func (h *Handler) initializePayment(w http.ResponseWriter, r *http.Request) {
	var req application.InitializePaymentInput
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "initialize_payment", err)
		return
	}

	session, err := h.service.InitializePayment(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "initialize_payment", err)
		return
	}
	writeSuccess(w, http.StatusOK, session)
}

func (h *Handler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	result, err := h.service.VerifyPayment(r.Context(), reference)
	if err != nil {
		writeMappedError(r.Context(), w, "verify_payment", err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}
