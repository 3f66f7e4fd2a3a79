package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	httpadapter "github.com/brightpath/student-portal-api/internal/adapters/http"
	"github.com/brightpath/student-portal-api/internal/adapters/inflight"
	"github.com/brightpath/student-portal-api/internal/application"
	"github.com/brightpath/student-portal-api/internal/contracts"
	"github.com/brightpath/student-portal-api/internal/domain"
	"github.com/brightpath/student-portal-api/internal/ports"
)

const submissionBody = `{
	"profile": {"first_name": "Jane", "last_name": "Doe", "email": "jane@example.com", "phone": "08030000000"},
	"selected_center": {"id": "C1", "name": "Main Campus"},
	"selected_course": {"id": "K1", "name": "Data Engineering"},
	"payment_plan": {"initial_deposit": 50000, "duration": 3},
	"payment_reference": "%s"
}`

func TestSubmitEnrollmentHTTPContract(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	res := env.post(t, "/api/v1/onboarding/submit", fmt.Sprintf(submissionBody, "ref-contract-1"), "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Data.ID != "S1" {
		t.Fatalf("unexpected submission response: %s", res.Body.String())
	}
	if got := env.backend.enrollCalls.Load(); got != 1 {
		t.Fatalf("expected one enroll call, got %d", got)
	}
}

func TestSubmitEnrollmentUnsettledPaymentRejected(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()
	env.gateway.results["ref-unsettled"] = domain.VerificationResult{Settled: false, GatewayStatus: "failed"}

	res := env.post(t, "/api/v1/onboarding/submit", fmt.Sprintf(submissionBody, "ref-unsettled"), "")
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unsettled payment, got %d", res.Code)
	}
	assertErrorCode(t, res, "VERIFICATION_FAILED")
	if got := env.backend.enrollCalls.Load(); got != 0 {
		t.Fatalf("unsettled payment must not reach the backend, got %d calls", got)
	}
}

func TestSubmitEnrollmentValidation(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	res := env.post(t, "/api/v1/onboarding/submit", `{"payment_reference": ""}`, "")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	assertErrorCode(t, res, "VALIDATION_ERROR")
	for _, field := range []string{"payment_reference", "profile.email", "selected_center.id"} {
		if !strings.Contains(res.Body.String(), field) {
			t.Fatalf("expected %q named in validation message, got %s", field, res.Body.String())
		}
	}
}

func TestSubmitEnrollmentRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	body := `{"payment_reference": "ref-x", "user_id": "U-forged"}`
	res := env.post(t, "/api/v1/onboarding/submit", body, "")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", res.Code)
	}
	assertErrorCode(t, res, "VALIDATION_ERROR")
}

func TestSubmitEnrollmentBackendOutageReported(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()
	env.backend.enrollFn = func(context.Context, ports.EnrollmentPayload) (json.RawMessage, error) {
		return nil, fmt.Errorf("%w: connection refused", domain.ErrBackendUnavailable)
	}

	res := env.post(t, "/api/v1/onboarding/submit", fmt.Sprintf(submissionBody, "ref-outage"), "")
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	assertErrorCode(t, res, "BACKEND_UNAVAILABLE")
}

func TestConcurrentDuplicateSubmissionsShareOneEnroll(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()
	started := make(chan struct{})
	release := make(chan struct{})
	var startOnce sync.Once
	env.backend.enrollFn = func(context.Context, ports.EnrollmentPayload) (json.RawMessage, error) {
		startOnce.Do(func() { close(started) })
		<-release
		return json.RawMessage(`{"id":"S1"}`), nil
	}

	body := fmt.Sprintf(submissionBody, "ref-race")
	results := make([]*httptest.ResponseRecorder, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = env.post(t, "/api/v1/onboarding/submit", body, "")
	}()
	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1] = env.post(t, "/api/v1/onboarding/submit", body, "")
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := env.backend.enrollCalls.Load(); got != 1 {
		t.Fatalf("expected one enroll call for duplicate submissions, got %d", got)
	}
	for i, res := range results {
		if res.Code != http.StatusOK {
			t.Fatalf("caller %d expected shared 200, got %d: %s", i, res.Code, res.Body.String())
		}
	}
}

func TestInitializePaymentForwardsMetadata(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	body := `{"email": "jane@example.com", "amount": 500000, "metadata": {"course": "K1", "center": "C1"}}`
	res := env.post(t, "/api/v1/payments/initialize", body, "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "authorization_url") {
		t.Fatalf("expected checkout session in response, got %s", res.Body.String())
	}

	env.gateway.mu.Lock()
	defer env.gateway.mu.Unlock()
	if len(env.gateway.inits) != 1 {
		t.Fatalf("expected one gateway initialization, got %d", len(env.gateway.inits))
	}
	in := env.gateway.inits[0]
	if in.Email != "jane@example.com" || in.Amount != 500000 {
		t.Fatalf("unexpected initialization input: %+v", in)
	}
	if !strings.Contains(string(in.Metadata), `"course"`) || !strings.Contains(string(in.Metadata), "K1") {
		t.Fatalf("expected metadata forwarded to the gateway, got %s", in.Metadata)
	}
}

func TestInitializePaymentValidation(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	res := env.post(t, "/api/v1/payments/initialize", `{"email": "", "amount": 0}`, "")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	assertErrorCode(t, res, "VALIDATION_ERROR")
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/students/me"},
		{http.MethodGet, "/api/v1/support/tickets"},
		{http.MethodPost, "/api/v1/support/tickets"},
	} {
		req := httptest.NewRequest(route.method, route.path, strings.NewReader("{}"))
		res := httptest.NewRecorder()
		env.router.ServeHTTP(res, req)
		if res.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 without bearer, got %d", route.method, route.path, res.Code)
		}
		assertErrorCode(t, res, "UNAUTHORIZED")
	}
}

func TestProtectedRouteRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/me", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	res := httptest.NewRecorder()
	env.router.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unverifiable token, got %d", res.Code)
	}
}

func TestProfileRoundTripWithValidToken(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()
	env.tokens.claims["good-token"] = ports.SessionClaims{UserID: "U42", Email: "jane@example.com"}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/students/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	res := httptest.NewRecorder()
	env.router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "U42") {
		t.Fatalf("expected profile data, got %s", res.Body.String())
	}
}

func TestProfileUpdateForwardsPatch(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()
	env.tokens.claims["good-token"] = ports.SessionClaims{UserID: "U42", Email: "jane@example.com"}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/students/me", strings.NewReader(`{"phone": "08031112222"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good-token")
	res := httptest.NewRecorder()
	env.router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "08031112222") {
		t.Fatalf("expected patch echoed through, got %s", res.Body.String())
	}
}

func TestLoginEnvelope(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	res := env.post(t, "/api/v1/auth/login", `{"email": "jane@example.com", "password": "pw"}`, "")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var body struct {
		Status string `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if body.Status != "success" || body.Data.Token == "" {
		t.Fatalf("unexpected login envelope: %s", res.Body.String())
	}
}

func TestLoginValidation(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	res := env.post(t, "/api/v1/auth/login", `{"email": "", "password": ""}`, "")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	assertErrorCode(t, res, "VALIDATION_ERROR")
}

func TestCatalogRoutesArePublic(t *testing.T) {
	t.Parallel()

	env := newPortalEnv()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/centers", nil)
	res := httptest.NewRecorder()
	env.router.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), "Main Campus") {
		t.Fatalf("expected catalog data, got %s", res.Body.String())
	}
}

func assertErrorCode(t *testing.T, res *httptest.ResponseRecorder, wantCode string) {
	t.Helper()
	var body contracts.ErrorResponse
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if body.Status != "error" || body.Code != wantCode {
		t.Fatalf("expected error code %s, got %s", wantCode, res.Body.String())
	}
}

type portalEnv struct {
	router  http.Handler
	gateway *contractGateway
	backend *contractBackend
	tokens  *contractTokens
}

func (e *portalEnv) post(t *testing.T, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	res := httptest.NewRecorder()
	e.router.ServeHTTP(res, req)
	return res
}

func newPortalEnv() *portalEnv {
	gateway := &contractGateway{results: map[string]domain.VerificationResult{}}
	backend := &contractBackend{}
	tokens := &contractTokens{claims: map[string]ports.SessionClaims{}}

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			VerifyPayments: true,
			VerifyTimeout:  2 * time.Second,
			SubmitTimeout:  2 * time.Second,
			FollowerWait:   2 * time.Second,
		},
		Registry: inflight.NewRegistry(),
		Gateway:  gateway,
		Backend:  backend,
		Tokens:   tokens,
	})

	return &portalEnv{
		router:  httpadapter.NewRouter(httpadapter.NewHandler(svc, tokens), []string{"*"}),
		gateway: gateway,
		backend: backend,
		tokens:  tokens,
	}
}

type contractGateway struct {
	mu      sync.Mutex
	results map[string]domain.VerificationResult
	inits   []ports.InitializePaymentInput
}

func (g *contractGateway) Verify(_ context.Context, reference string) (domain.VerificationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if res, ok := g.results[reference]; ok {
		return res, nil
	}
	return domain.VerificationResult{Settled: true, GatewayStatus: "success"}, nil
}

func (g *contractGateway) Initialize(_ context.Context, in ports.InitializePaymentInput) (ports.PaymentSession, error) {
	g.mu.Lock()
	g.inits = append(g.inits, in)
	g.mu.Unlock()
	return ports.PaymentSession{
		AuthorizationURL: "https://checkout.example.test/x",
		AccessCode:       "access",
		Reference:        "generated-ref",
	}, nil
}

type contractBackend struct {
	mu          sync.Mutex
	enrollFn    func(ctx context.Context, payload ports.EnrollmentPayload) (json.RawMessage, error)
	enrollCalls atomic.Int32
}

func (b *contractBackend) Enroll(ctx context.Context, payload ports.EnrollmentPayload) (json.RawMessage, error) {
	b.enrollCalls.Add(1)
	b.mu.Lock()
	fn := b.enrollFn
	b.mu.Unlock()
	if fn != nil {
		return fn(ctx, payload)
	}
	return json.RawMessage(`{"id":"S1","status":"enrolled"}`), nil
}

func (b *contractBackend) Login(context.Context, ports.Credentials) (ports.AuthResult, error) {
	return ports.AuthResult{Token: "jwt-abc", Data: json.RawMessage(`{"token":"jwt-abc"}`)}, nil
}

func (b *contractBackend) Register(context.Context, ports.Credentials) (ports.AuthResult, error) {
	return ports.AuthResult{Token: "jwt-abc", Data: json.RawMessage(`{"token":"jwt-abc"}`)}, nil
}

func (b *contractBackend) Logout(context.Context, string) error { return nil }

func (b *contractBackend) ListCenters(context.Context) ([]domain.Center, error) {
	return []domain.Center{{ID: "C1", Name: "Main Campus", City: "Lagos"}}, nil
}

func (b *contractBackend) ListCourses(context.Context, string) ([]domain.Course, error) {
	return []domain.Course{{ID: "K1", Name: "Data Engineering", CenterID: "C1"}}, nil
}

func (b *contractBackend) GetProfile(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"id":"U42","email":"jane@example.com"}`), nil
}

func (b *contractBackend) UpdateProfile(_ context.Context, _ string, patch json.RawMessage) (json.RawMessage, error) {
	return patch, nil
}

func (b *contractBackend) CreateTicket(context.Context, string, ports.TicketInput) (domain.Ticket, error) {
	return domain.Ticket{ID: "T1", Subject: "help", Status: "open"}, nil
}

func (b *contractBackend) ListTickets(context.Context, string) ([]domain.Ticket, error) {
	return []domain.Ticket{{ID: "T1", Subject: "help", Status: "open"}}, nil
}

func (b *contractBackend) ListTicketMessages(context.Context, string, string) ([]domain.TicketMessage, error) {
	return []domain.TicketMessage{{ID: "M1", TicketID: "T1", Sender: "student", Body: "hi"}}, nil
}

func (b *contractBackend) AddTicketMessage(_ context.Context, _, ticketID, body string) (domain.TicketMessage, error) {
	return domain.TicketMessage{ID: "M2", TicketID: ticketID, Sender: "student", Body: body}, nil
}

type contractTokens struct {
	mu     sync.Mutex
	claims map[string]ports.SessionClaims
}

func (c *contractTokens) Verify(raw string) (ports.SessionClaims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	claims, ok := c.claims[raw]
	if !ok {
		return ports.SessionClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}
