package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brightpath/student-portal-api/internal/ports"
)

func (c *Client) Login(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "/auth/login", "", creds)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return authResult(raw)
}

func (c *Client) Register(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "/auth/register", "", creds)
	if err != nil {
		return ports.AuthResult{}, err
	}
	return authResult(raw)
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
	return err
}

func authResult(raw json.RawMessage) (ports.AuthResult, error) {
	data := dataSection(raw)
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return ports.AuthResult{}, fmt.Errorf("decode auth response: %w", err)
	}
	return ports.AuthResult{Token: out.Token, Data: data}, nil
}
