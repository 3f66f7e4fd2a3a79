package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/brightpath/student-portal-api/internal/domain"
	"github.com/brightpath/student-portal-api/internal/ports"
)

func (c *Client) CreateTicket(ctx context.Context, token string, in ports.TicketInput) (domain.Ticket, error) {
	raw, err := c.do(ctx, http.MethodPost, "/tickets", token, in)
	if err != nil {
		return domain.Ticket{}, err
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(dataSection(raw), &ticket); err != nil {
		return domain.Ticket{}, fmt.Errorf("decode ticket: %w", err)
	}
	return ticket, nil
}

func (c *Client) ListTickets(ctx context.Context, token string) ([]domain.Ticket, error) {
	raw, err := c.do(ctx, http.MethodGet, "/tickets", token, nil)
	if err != nil {
		return nil, err
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(dataSection(raw), &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return tickets, nil
}

func (c *Client) ListTicketMessages(ctx context.Context, token, ticketID string) ([]domain.TicketMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, "/tickets/"+url.PathEscape(ticketID)+"/messages", token, nil)
	if err != nil {
		return nil, err
	}
	var messages []domain.TicketMessage
	if err := json.Unmarshal(dataSection(raw), &messages); err != nil {
		return nil, fmt.Errorf("decode ticket messages: %w", err)
	}
	return messages, nil
}

func (c *Client) AddTicketMessage(ctx context.Context, token, ticketID, body string) (domain.TicketMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/tickets/"+url.PathEscape(ticketID)+"/messages", token, map[string]string{"body": body})
	if err != nil {
		return domain.TicketMessage{}, err
	}
	var message domain.TicketMessage
	if err := json.Unmarshal(dataSection(raw), &message); err != nil {
		return domain.TicketMessage{}, fmt.Errorf("decode ticket message: %w", err)
	}
	return message, nil
}
