package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brightpath/student-portal-api/internal/domain"
	"github.com/brightpath/student-portal-api/internal/ports"
)

// Client talks to the payment gateway's transaction API with a bearer secret.
// Credentials are held at adapter level so the application layer stays
// gateway-agnostic.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

type Config struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:  cfg.SecretKey,
		httpClient: httpClient,
	}
}

// verifyEnvelope mirrors the gateway's transaction endpoints:
// an outer status flag plus a data object carrying the transaction status.
type verifyEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type transactionData struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
}

func (c *Client) Verify(ctx context.Context, reference string) (domain.VerificationResult, error) {
	endpoint := c.baseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("%w: read response: %v", domain.ErrVerificationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.VerificationResult{}, fmt.Errorf("%w: gateway returned %d", domain.ErrVerificationFailed, resp.StatusCode)
	}

	var envelope verifyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.VerificationResult{}, fmt.Errorf("%w: decode response: %v", domain.ErrVerificationFailed, err)
	}

	var tx transactionData
	_ = json.Unmarshal(envelope.Data, &tx)

	result := domain.VerificationResult{
		Settled:       envelope.Status && tx.Status == "success",
		GatewayStatus: tx.Status,
		Raw:           json.RawMessage(body),
	}
	return result, nil
}

func (c *Client) Initialize(ctx context.Context, in ports.InitializePaymentInput) (ports.PaymentSession, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return ports.PaymentSession{}, fmt.Errorf("encode initialize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return ports.PaymentSession{}, fmt.Errorf("build initialize request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.PaymentSession{}, fmt.Errorf("initialize payment: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.PaymentSession{}, fmt.Errorf("read initialize response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.PaymentSession{}, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, gatewayMessage(body))
	}

	var envelope struct {
		Status  bool                 `json:"status"`
		Message string               `json:"message"`
		Data    ports.PaymentSession `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ports.PaymentSession{}, fmt.Errorf("decode initialize response: %w", err)
	}
	if !envelope.Status {
		return ports.PaymentSession{}, fmt.Errorf("gateway declined initialization: %s", envelope.Message)
	}
	return envelope.Data, nil
}

func gatewayMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(body))
}
