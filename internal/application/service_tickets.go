package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/brightpath/student-portal-api/internal/domain"
	"github.com/brightpath/student-portal-api/internal/ports"
)

func (s *Service) CreateTicket(ctx context.Context, token string, in CreateTicketInput) (domain.Ticket, error) {
	if token == "" {
		return domain.Ticket{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Body) == "" {
		return domain.Ticket{}, fmt.Errorf("%w: subject and body are required", domain.ErrInvalidInput)
	}
	return s.backend.CreateTicket(ctx, token, ports.TicketInput{
		Subject: strings.TrimSpace(in.Subject),
		Body:    strings.TrimSpace(in.Body),
	})
}

func (s *Service) ListTickets(ctx context.Context, token string) ([]domain.Ticket, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.backend.ListTickets(ctx, token)
}

func (s *Service) ListTicketMessages(ctx context.Context, token, ticketID string) ([]domain.TicketMessage, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(ticketID) == "" {
		return nil, fmt.Errorf("%w: missing ticket id", domain.ErrInvalidInput)
	}
	return s.backend.ListTicketMessages(ctx, token, ticketID)
}

func (s *Service) AddTicketMessage(ctx context.Context, token, ticketID string, in AddTicketMessageInput) (domain.TicketMessage, error) {
	if token == "" {
		return domain.TicketMessage{}, domain.ErrUnauthorized
	}
	if strings.TrimSpace(ticketID) == "" || strings.TrimSpace(in.Body) == "" {
		return domain.TicketMessage{}, fmt.Errorf("%w: ticket id and body are required", domain.ErrInvalidInput)
	}
	return s.backend.AddTicketMessage(ctx, token, ticketID, strings.TrimSpace(in.Body))
}
