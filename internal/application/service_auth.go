package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/brightpath/student-portal-api/internal/domain"
	"github.com/brightpath/student-portal-api/internal/ports"
)

func (s *Service) Login(ctx context.Context, in LoginInput) (ports.AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return ports.AuthResult{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	return s.backend.Login(ctx, ports.Credentials{Email: strings.TrimSpace(in.Email), Password: in.Password})
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (ports.AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return ports.AuthResult{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return ports.AuthResult{}, fmt.Errorf("%w: first and last name are required", domain.ErrInvalidInput)
	}
	return s.backend.Register(ctx, ports.Credentials{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Password:  in.Password,
		Phone:     strings.TrimSpace(in.Phone),
	})
}

// Logout forwards to the backend best-effort; the session is client-held, so
// a backend hiccup must not keep the user logged in.
func (s *Service) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.backend.Logout(ctx, token); err != nil {
		s.svcLogger().WarnContext(ctx, "backend logout failed",
			"operation", "logout",
			"error", err,
		)
	}
}
