package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brightpath/student-portal-api/internal/domain"
)

func (s *Service) GetProfile(ctx context.Context, token string) (json.RawMessage, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.backend.GetProfile(ctx, token)
}

func (s *Service) UpdateProfile(ctx context.Context, token string, patch json.RawMessage) (json.RawMessage, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(patch) == 0 || string(patch) == "null" {
		return nil, fmt.Errorf("%w: empty profile patch", domain.ErrInvalidInput)
	}
	return s.backend.UpdateProfile(ctx, token, patch)
}
