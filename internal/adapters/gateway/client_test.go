package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightpath/student-portal-api/internal/domain"
	"github.com/brightpath/student-portal-api/internal/ports"
)

func TestVerifySettledTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/ref-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_abc" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"status":"success","reference":"ref-1","amount":500000}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk_test_abc"})
	result, err := client.Verify(context.Background(), "ref-1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !result.Settled {
		t.Fatalf("expected settled transaction, got %+v", result)
	}
	if result.GatewayStatus != "success" {
		t.Fatalf("unexpected gateway status: %q", result.GatewayStatus)
	}
}

func TestVerifyFailedTransactionIsNotSettled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"status":"failed","reference":"ref-1"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk_test_abc"})
	result, err := client.Verify(context.Background(), "ref-1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Settled {
		t.Fatalf("failed transaction must not be settled")
	}
	if result.GatewayStatus != "failed" {
		t.Fatalf("unexpected gateway status: %q", result.GatewayStatus)
	}
}

func TestVerifyNonSuccessHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk_bad"})
	_, err := client.Verify(context.Background(), "ref-1")
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected verification failure, got %v", err)
	}
}

func TestVerifyTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // gateway unreachable

	client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk_test_abc"})
	_, err := client.Verify(context.Background(), "ref-1")
	if !errors.Is(err, domain.ErrVerificationFailed) {
		t.Fatalf("expected verification failure on transport error, got %v", err)
	}
}

func TestInitializePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.example/abc","access_code":"abc","reference":"ref-9"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk_test_abc"})
	session, err := client.Initialize(context.Background(), ports.InitializePaymentInput{Email: "jane@example.com", Amount: 500000})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if session.Reference != "ref-9" || session.AuthorizationURL == "" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestInitializeDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":false,"message":"Amount too low"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, SecretKey: "sk_test_abc"})
	_, err := client.Initialize(context.Background(), ports.InitializePaymentInput{Email: "jane@example.com", Amount: 1})
	if err == nil {
		t.Fatalf("expected declined initialization to error")
	}
}
