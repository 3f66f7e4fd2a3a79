package application

import (
	"log/slog"
	"time"

	"github.com/brightpath/student-portal-api/internal/ports"
)

// Service implements the portal use-cases: the onboarding submission pipeline
// plus the auth, catalog, profile and support façades in front of the backend.
type Service struct {
	cfg      Config
	logger   *slog.Logger
	registry ports.InFlightRegistry
	claims   ports.ClaimStore
	gateway  ports.PaymentGateway
	backend  ports.Backend
	tokens   ports.TokenVerifier
	journal  ports.SubmissionJournal
	nowFn    func() time.Time
}

type Dependencies struct {
	Config   Config
	Logger   *slog.Logger
	Registry ports.InFlightRegistry
	// Claims is optional; when nil the at-most-once guard is process-local only.
	Claims  ports.ClaimStore
	Gateway ports.PaymentGateway
	Backend ports.Backend
	// Tokens is optional; when nil caller identity is never attached.
	Tokens ports.TokenVerifier
	// Journal is optional; when nil completed submissions are not recorded.
	Journal ports.SubmissionJournal
}

func NewService(deps Dependencies) *Service {
	s := &Service{
		cfg:      deps.Config,
		logger:   deps.Logger,
		registry: deps.Registry,
		claims:   deps.Claims,
		gateway:  deps.Gateway,
		backend:  deps.Backend,
		tokens:   deps.Tokens,
		journal:  deps.Journal,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.cfg.VerifyTimeout <= 0 {
		s.cfg.VerifyTimeout = 10 * time.Second
	}
	if s.cfg.SubmitTimeout <= 0 {
		s.cfg.SubmitTimeout = 15 * time.Second
	}
	if s.cfg.FollowerWait <= 0 {
		s.cfg.FollowerWait = 30 * time.Second
	}
	if s.cfg.ClaimTTL <= 0 {
		s.cfg.ClaimTTL = time.Minute
	}
	return s
}

func (s *Service) svcLogger() *slog.Logger {
	return s.logger.With("module", "application", "layer", "service")
}
