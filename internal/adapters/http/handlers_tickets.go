package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpath/student-portal-api/internal/application"
)

func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "create_ticket")
		return
	}
	var req application.CreateTicketInput
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_ticket", err)
		return
	}

	ticket, err := h.service.CreateTicket(r.Context(), token, req)
	if err != nil {
		writeMappedError(r.Context(), w, "create_ticket", err)
		return
	}
	writeSuccess(w, http.StatusCreated, ticket)
}

func (h *Handler) listTickets(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "list_tickets")
		return
	}

	tickets, err := h.service.ListTickets(r.Context(), token)
	if err != nil {
		writeMappedError(r.Context(), w, "list_tickets", err)
		return
	}
	writeSuccess(w, http.StatusOK, tickets)
}

func (h *Handler) listTicketMessages(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "list_ticket_messages")
		return
	}

	messages, err := h.service.ListTicketMessages(r.Context(), token, chi.URLParam(r, "ticket_id"))
	if err != nil {
		writeMappedError(r.Context(), w, "list_ticket_messages", err)
		return
	}
	writeSuccess(w, http.StatusOK, messages)
}

func (h *Handler) addTicketMessage(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "add_ticket_message")
		return
	}
	var req application.AddTicketMessageInput
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "add_ticket_message", err)
		return
	}

	message, err := h.service.AddTicketMessage(r.Context(), token, chi.URLParam(r, "ticket_id"), req)
	if err != nil {
		writeMappedError(r.Context(), w, "add_ticket_message", err)
		return
	}
	writeSuccess(w, http.StatusCreated, message)
}
