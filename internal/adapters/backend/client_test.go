package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brightpath/student-portal-api/internal/domain"
	"github.com/brightpath/student-portal-api/internal/ports"
)

func TestEnrollSuccessPassesDataThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/students/enroll" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload ports.EnrollmentPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.PaymentReference != "ref-1" {
			t.Errorf("unexpected reference: %q", payload.PaymentReference)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"S1","status":"enrolled"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	data, err := client.Enroll(context.Background(), ports.EnrollmentPayload{PaymentReference: "ref-1"})
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if !strings.Contains(string(data), `"id":"S1"`) {
		t.Fatalf("expected backend data passed through, got %s", data)
	}
}

func TestEnrollConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // backend unreachable

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Enroll(context.Background(), ports.EnrollmentPayload{PaymentReference: "ref-1"})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrBackendRejected) {
		t.Fatalf("transport failure must not be classified as rejection")
	}
}

func TestEnrollRejectionCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"course is full"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Enroll(context.Background(), ports.EnrollmentPayload{PaymentReference: "ref-1"})
	if !errors.Is(err, domain.ErrBackendRejected) {
		t.Fatalf("expected backend rejection, got %v", err)
	}
	if !strings.Contains(err.Error(), "course is full") {
		t.Fatalf("expected backend message carried verbatim, got %q", err.Error())
	}
}

func TestLoginExtractsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":{"token":"jwt-abc","student":{"id":"S1"}}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	res, err := client.Login(context.Background(), ports.Credentials{Email: "jane@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "jwt-abc" {
		t.Fatalf("unexpected token: %q", res.Token)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Login(context.Background(), ports.Credentials{Email: "jane@example.com", Password: "nope"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestListCentersDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"C1","name":"Main Campus","city":"Lagos"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	centers, err := client.ListCenters(context.Background())
	if err != nil {
		t.Fatalf("list centers: %v", err)
	}
	if len(centers) != 1 || centers[0].ID != "C1" {
		t.Fatalf("unexpected centers: %+v", centers)
	}
}
