package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	backendadapter "github.com/brightpath/student-portal-api/internal/adapters/backend"
	cacheadapter "github.com/brightpath/student-portal-api/internal/adapters/cache"
	eventadapter "github.com/brightpath/student-portal-api/internal/adapters/events"
	gatewayadapter "github.com/brightpath/student-portal-api/internal/adapters/gateway"
	httpadapter "github.com/brightpath/student-portal-api/internal/adapters/http"
	"github.com/brightpath/student-portal-api/internal/adapters/inflight"
	"github.com/brightpath/student-portal-api/internal/adapters/postgres"
	"github.com/brightpath/student-portal-api/internal/adapters/security"
	"github.com/brightpath/student-portal-api/internal/application"
	"github.com/brightpath/student-portal-api/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping student portal api", "http_port", cfg.HTTPPort, "grpc_port", cfg.GRPCPort)

	cleanups := make([]func(), 0, 3)

	var journal ports.SubmissionJournal
	if cfg.DatabaseURL != "" {
		db, dbErr := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if dbErr != nil {
			return nil, fmt.Errorf("connect postgres: %w", dbErr)
		}
		if migrateErr := postgres.Migrate(db); migrateErr != nil {
			return nil, fmt.Errorf("migrate journal schema: %w", migrateErr)
		}
		sqlDB, sqlErr := db.DB()
		if sqlErr != nil {
			return nil, fmt.Errorf("gorm sql db: %w", sqlErr)
		}
		cleanups = append(cleanups, func() { _ = sqlDB.Close() })
		journal = postgres.NewJournalRepository(db)
	} else {
		logger.Info("submission journal disabled: no database configured")
	}

	var claims ports.ClaimStore
	if cfg.RedisURL != "" {
		redisClient, redisErr := cacheadapter.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			return nil, fmt.Errorf("connect redis: %w", redisErr)
		}
		cleanups = append(cleanups, func() { _ = redisClient.Close() })
		claims = cacheadapter.NewRedisClaimStore(redisClient)
	}

	var tokens ports.TokenVerifier
	switch {
	case cfg.JWTPublicKeyPEM != "":
		tokens, err = security.NewRSAVerifier(cfg.JWTPublicKeyPEM)
	case cfg.JWTSharedSecret != "":
		tokens, err = security.NewHMACVerifier(cfg.JWTSharedSecret)
	default:
		logger.Warn("session token verification disabled: no JWT key configured")
	}
	if err != nil {
		return nil, fmt.Errorf("init token verifier: %w", err)
	}

	var gateway ports.PaymentGateway
	if cfg.GatewaySecretKey != "" {
		gateway = gatewayadapter.NewClient(gatewayadapter.Config{
			BaseURL:   cfg.GatewayBaseURL,
			SecretKey: cfg.GatewaySecretKey,
		})
	} else {
		logger.Warn("payment verification disabled: no gateway secret configured")
	}

	backendClient := backendadapter.NewClient(backendadapter.Config{
		BaseURL:      cfg.BackendBaseURL,
		ServiceToken: cfg.BackendServiceToken,
	})

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			VerifyPayments: cfg.GatewaySecretKey != "",
			VerifyTimeout:  cfg.VerifyTimeout,
			SubmitTimeout:  cfg.SubmitTimeout,
			FollowerWait:   cfg.FollowerWait,
			ClaimTTL:       cfg.ClaimTTL,
		},
		Logger:   logger,
		Registry: inflight.NewRegistry(),
		Claims:   claims,
		Gateway:  gateway,
		Backend:  backendClient,
		Tokens:   tokens,
		Journal:  journal,
	})

	handler := httpadapter.NewHandler(svc, tokens)
	router := httpadapter.NewRouter(handler, cfg.AllowedOrigins)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		for _, fn := range cleanups {
			fn()
		}
		return nil, fmt.Errorf("listen gRPC: %w", err)
	}

	var outbox *eventadapter.OutboxWorker
	if journal != nil && len(cfg.KafkaBrokers) > 0 {
		publisher := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		cleanups = append(cleanups, func() { _ = publisher.Close() })
		outbox = eventadapter.NewOutboxWorker(logger, journal, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		outbox:     outbox,
		cleanupFn: func(ctx context.Context) {
			for _, fn := range cleanups {
				fn()
			}
		},
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		r.logger.Info("grpc health server started", "addr", r.grpcLis.Addr().String())
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	if r.outbox == nil {
		return fmt.Errorf("worker requires DB_URL and KAFKA_BROKERS to be configured")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("outbox worker started")
	err := r.outbox.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.cleanupFn(shutdownCtx)
	return nil
}
