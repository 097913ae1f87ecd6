package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vetgate/internal/admin"
	"vetgate/internal/audit"
	complianceHandler "vetgate/internal/compliance/handler"
	complianceMetrics "vetgate/internal/compliance/metrics"
	"vetgate/internal/compliance/service"
	credentialStore "vetgate/internal/compliance/store/credential"
	referralStore "vetgate/internal/compliance/store/referral"
	"vetgate/internal/notify"
	"vetgate/internal/platform/config"
	"vetgate/internal/platform/httpserver"
	"vetgate/internal/platform/logger"
	platformMetrics "vetgate/internal/platform/metrics"
	"vetgate/internal/platform/middleware"
	"vetgate/internal/platform/postgres"
	platformRedis "vetgate/internal/platform/redis"
	"vetgate/internal/ratecheck"
	"vetgate/internal/reconciler"
	"vetgate/internal/tokens"
)

// main wires dependencies, mounts the HTTP surface, and runs the background
// workers. Business logic lives in the internal services.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	var (
		credentials service.CredentialStore
		referrals   service.ReferralStore
		auditStore  audit.Store
	)
	if cfg.PostgresURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		auditDB, err := audit.OpenPostgres(cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer auditDB.Close()

		credentials = credentialStore.NewPostgres(pool)
		referrals = referralStore.NewPostgres(pool)
		auditStore = audit.NewPostgres(auditDB)
		log.Info("using postgres stores")
	} else {
		credentials = credentialStore.NewInMemory()
		referrals = referralStore.NewInMemory()
		auditStore = audit.NewMemoryStore()
		log.Info("using in-memory stores")
	}

	// Notifications: Kafka when brokers are configured, log lines otherwise.
	var notifier service.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub, err := notify.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer kafkaPub.Close()
		notifier = kafkaPub
		log.Info("using kafka notifications", "topic", cfg.KafkaTopic)
	} else {
		notifier = notify.NewLogPublisher(log)
	}

	// Audit events flow through a channel so handler latency never waits on
	// the audit store.
	auditInbox := make(chan audit.Event, 256)
	auditPublisher := audit.NewAsyncPublisher(auditStore, auditInbox)
	auditWorker := audit.NewWorker(auditStore, auditInbox, log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	rateSource := ratecheck.NewMemorySource()
	rate := ratecheck.NewMinimumRateChecker(rateSource, cfg.MinimumHourlyRate)

	compliance, err := service.New(credentials, referrals, rate,
		service.WithLogger(log),
		service.WithMetrics(complianceMetrics.New()),
		service.WithNotifier(notifier),
		service.WithAuditPublisher(auditPublisher),
		service.WithExpiryWarningWindow(cfg.ExpiryWarnWindow),
	)
	if err != nil {
		return err
	}

	// Expiry reconciler, with a redis leader lock when configured.
	var sweepLock reconciler.Lock
	redisClient, err := platformRedis.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		sweepLock = reconciler.NewRedisLock(redisClient.Client, "vetgate:sweep:lock", cfg.SweepInterval/2)
		log.Info("sweep leader lock enabled")
	}
	sweeper := reconciler.New(compliance, cfg.SweepInterval, log, sweepLock)
	go func() {
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("reconciler stopped", "error", err)
		}
	}()

	tokenService := tokens.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.ReviewerTTL)

	router := newRouter(cfg, log, compliance, tokenService)
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting vetgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg config.Server, log *slog.Logger, compliance *service.Service, tokenService *tokens.Service) chi.Router {
	httpMetrics := platformMetrics.New()

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(platformMetrics.Latency(httpMetrics))

	complianceHandler.New(compliance, log, tokenService).Register(r)
	admin.New(tokenService, cfg.AdminSecretHash, log).Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
