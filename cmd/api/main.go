package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradein_backend/internal/design"
	"tradein_backend/internal/email"
	"tradein_backend/internal/handoff"
	apphttp "tradein_backend/internal/http"
	"tradein_backend/internal/http/router"
	"tradein_backend/internal/intake"
	leadsrepo "tradein_backend/internal/leads/repository"
	"tradein_backend/internal/offer"
	offersvc "tradein_backend/internal/offer/service"
	"tradein_backend/internal/pricing"
	"tradein_backend/internal/storage"
	"tradein_backend/platform/config"
	"tradein_backend/platform/db"
	"tradein_backend/platform/logger"
	"tradein_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "pricing_policy", cfg.PricingPolicy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	redisOpts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		panic("invalid REDIS_URL: " + err.Error())
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	handoffStore := handoff.NewRedisStore(redisClient, cfg.GetHandoffTTL())

	// Shared validator instance for dependency injection
	val := validator.New()

	// Photo archive (MinIO) is optional; the funnel runs without audit copies.
	var archive storage.PhotoArchive
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure intake-photos bucket", 5, 2*time.Second, func() error {
			return minioSvc.EnsureBucketExists(ctx)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		archive = minioSvc
		log.Info("storage service initialized", "bucket", cfg.GetMinioBucketIntakePhotos())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; photo archiving disabled")
	}

	// Design generation is optional at boot; submissions fail with a
	// configuration error until a key is provided.
	var generator design.Generator
	if cfg.IsGeminiEnabled() {
		gen, err := design.NewGeminiGenerator(ctx, cfg)
		if err != nil {
			log.Error("failed to initialize design generator", "error", err)
			panic("failed to initialize design generator: " + err.Error())
		}
		generator = gen
		log.Info("design generator initialized", "model", cfg.GetGeminiModel())
	} else {
		log.Warn("GEMINI_API_KEY not configured; design generation disabled")
	}

	var sender email.Sender
	if cfg.IsSMTPEnabled() {
		fromAddress := cfg.GetEmailFromAddress()
		if fromAddress == "" {
			fromAddress = cfg.GetSMTPUser()
		}
		sender = email.NewSMTPSender(
			cfg.GetSMTPHost(), cfg.GetSMTPPort(),
			cfg.GetSMTPUser(), cfg.GetSMTPPass(),
			fromAddress, cfg.GetEmailFromName(),
		)
		log.Info("email sender initialized", "host", cfg.GetSMTPHost())
	} else {
		log.Warn("SMTP not configured; offer confirmations disabled")
	}

	engine := pricing.NewEngine(pricing.Policy(cfg.GetPricingPolicy()), cfg.GetTradeInRates())

	var leads offersvc.LeadRecorder = leadsrepo.New(pool)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	intakeModule := intake.NewModule(generator, handoffStore, archive, val, cfg.GetMinIOMaxFileSize(), log)
	offerModule := offer.NewModule(handoffStore, engine, sender, leads, cfg.GetAdminEmail(), val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			intakeModule,
			offerModule,
		},
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.New(app),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
