package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/brightpath/student-portal-api/internal/domain"
)

func (c *Client) ListCenters(ctx context.Context) ([]domain.Center, error) {
	raw, err := c.do(ctx, http.MethodGet, "/centers", "", nil)
	if err != nil {
		return nil, err
	}
	var centers []domain.Center
	if err := json.Unmarshal(dataSection(raw), &centers); err != nil {
		return nil, fmt.Errorf("decode centers: %w", err)
	}
	return centers, nil
}

func (c *Client) ListCourses(ctx context.Context, centerID string) ([]domain.Course, error) {
	path := "/courses"
	if centerID != "" {
		path += "?center_id=" + url.QueryEscape(centerID)
	}
	raw, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	var courses []domain.Course
	if err := json.Unmarshal(dataSection(raw), &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return courses, nil
}
