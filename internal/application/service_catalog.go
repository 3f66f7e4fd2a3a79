package application

import (
	"context"

	"github.com/brightpath/student-portal-api/internal/domain"
)

func (s *Service) ListCenters(ctx context.Context) ([]domain.Center, error) {
	return s.backend.ListCenters(ctx)
}

func (s *Service) ListCourses(ctx context.Context, centerID string) ([]domain.Course, error) {
	return s.backend.ListCourses(ctx, centerID)
}
