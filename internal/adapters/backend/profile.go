package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

func (c *Client) GetProfile(ctx context.Context, token string) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, "/students/me", token, nil)
	if err != nil {
		return nil, err
	}
	return dataSection(raw), nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, patch json.RawMessage) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPatch, "/students/me", token, patch)
	if err != nil {
		return nil, err
	}
	return dataSection(raw), nil
}
