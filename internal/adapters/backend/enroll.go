package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brightpath/student-portal-api/internal/ports"
)

// Enroll posts the assembled enrollment payload. One call, no retries;
// retry policy belongs to the caller.
func (c *Client) Enroll(ctx context.Context, payload ports.EnrollmentPayload) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/students/enroll", "", payload)
	if err != nil {
		return nil, err
	}
	return dataSection(raw), nil
}
