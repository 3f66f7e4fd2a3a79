package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "get_profile")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), token)
	if err != nil {
		writeMappedError(r.Context(), w, "get_profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "update_profile")
		return
	}

	// The patch is forwarded verbatim; the backend owns profile validation.
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(raw) {
		if err == nil {
			err = errors.New("request body must be valid JSON")
		}
		writeValidationError(r.Context(), w, "update_profile", err)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), token, json.RawMessage(raw))
	if err != nil {
		writeMappedError(r.Context(), w, "update_profile", err)
		return
	}

	// Profile mutations are audited against the verified session identity.
	if claims, ok := claimsFromContext(r.Context()); ok {
		httpLogger().InfoContext(r.Context(), "profile updated",
			"operation", "update_profile",
			"outcome", "success",
			"user_id", claims.UserID,
			"request_id", requestIDFromContext(r.Context()),
		)
	}
	writeSuccess(w, http.StatusOK, updated)
}
