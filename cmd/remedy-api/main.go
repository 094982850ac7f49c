// cmd/remedy-api/main.go
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"remedypedia/internal/common/auth"
	"remedypedia/internal/common/aws"
	"remedypedia/internal/common/config"
	"remedypedia/internal/common/database"
	"remedypedia/internal/common/genai"
	"remedypedia/internal/common/logger"
	"remedypedia/internal/common/observability"
	"remedypedia/internal/common/zoho"
	"remedypedia/internal/transport/rest"
	"remedypedia/pkg/registry"

	adminsession "remedypedia/internal/workers/auth/admin-session"
	newslettersubscribe "remedypedia/internal/workers/communication/newsletter-subscribe"
	blogposts "remedypedia/internal/workers/content/blog-posts"
	generatequestions "remedypedia/internal/workers/remedy/generate-clarification-questions"
	generateremedies "remedypedia/internal/workers/remedy/generate-remedies"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// dependencies are the optional stores. A nil field means the store is unavailable.
type dependencies struct {
	pg    *database.PostgresClient
	redis *database.RedisClient
}

func (d *dependencies) Close(log *zap.Logger) {
	if d.pg != nil {
		if err := d.pg.Close(); err != nil {
			log.Error("Error closing PostgreSQL", zap.Error(err))
		}
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Error("Error closing Redis", zap.Error(err))
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting remedy API...",
		zap.String("environment", cfg.App.Environment),
		zap.String("address", cfg.Server.Address),
	)
	if cfg.APIs.GenAI.APIKey == "" {
		zapLog.Warn("GENAI_API_KEY is not set; generation requests will fail with a configuration error")
	}

	obs := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
	})
	defer obs.Shutdown()

	ctx := context.Background()
	deps := connect(ctx, cfg, zapLog)
	defer deps.Close(zapLog)

	container, err := buildContainer(ctx, cfg, log, obs, deps, zapLog)
	if err != nil {
		zapLog.Fatal("failed to build handlers", zap.Error(err))
	}

	router, err := rest.NewRouter(container)
	if err != nil {
		zapLog.Fatal("failed to build router", zap.Error(err))
	}
	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	router.HandleFunc("/ready", readyHandler(deps)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during HTTP shutdown", zap.Error(err))
	}

	zapLog.Info("Remedy API stopped")
}

// connect opens the optional stores. Failures are logged and leave the store nil so
// that only the routes needing it are disabled.
func connect(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) *dependencies {
	deps := &dependencies{}

	// --- Init PostgreSQL with retry ---
	if cfg.Database.Postgres.Enabled() {
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			// Test the connection with context
			if err := pg.Ping(ctx); err != nil {
				_ = pg.Close()
				return err
			}
			return nil
		}, 5, 2*time.Second, zapLog, "PostgreSQL connection")

		switch {
		case err != nil:
			zapLog.Error("postgres unavailable, blog and newsletter routes disabled", zap.Error(err))
		default:
			if err := pg.EnsureSchema(ctx); err != nil {
				zapLog.Error("schema setup failed, blog and newsletter routes disabled", zap.Error(err))
				_ = pg.Close()
			} else {
				deps.pg = pg
				zapLog.Info("PostgreSQL connected successfully")
			}
		}
	} else {
		zapLog.Info("PostgreSQL not configured, blog and newsletter routes disabled")
	}

	// --- Init Redis with retry ---
	if cfg.Database.Redis.Address != "" {
		var rc *database.RedisClient
		err := retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := rc.Ping(ctx); err != nil {
				_ = rc.Close()
				return err
			}
			return nil
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Error("redis unavailable, admin session routes disabled", zap.Error(err))
		} else {
			deps.redis = rc
			zapLog.Info("Redis connected successfully")
		}
	} else {
		zapLog.Info("Redis not configured, admin session routes disabled")
	}

	return deps
}

func buildContainer(ctx context.Context, cfg *config.Config, log logger.Logger, obs *observability.Observability, deps *dependencies, zapLog *zap.Logger) (*rest.Container, error) {
	reg, err := registry.Default()
	if err != nil {
		return nil, err
	}

	genaiClient := genai.NewClient(cfg.APIs.GenAI)

	container := &rest.Container{
		Config:        cfg,
		Logger:        log,
		Registry:      reg,
		Observability: obs,
		Questions: generatequestions.NewHandler(generatequestions.HandlerOptions{
			AppConfig: cfg,
			Client:    genaiClient,
			Logger:    log,
		}),
		Remedies: generateremedies.NewHandler(generateremedies.HandlerOptions{
			AppConfig: cfg,
			Client:    genaiClient,
			Logger:    log,
		}),
	}

	if deps.pg != nil {
		container.Blog = blogposts.NewService(blogposts.ServiceDependencies{Logger: log}, blogposts.DefaultConfig(), deps.pg.GetDB())
		container.Newsletter = newslettersubscribe.NewService(newsletterDependencies(ctx, cfg, log, deps, zapLog), newslettersubscribe.DefaultConfig())
	}

	keycloak := auth.NewKeycloakClient(
		cfg.Auth.Keycloak.URL,
		cfg.Auth.Keycloak.Realm,
		cfg.Auth.Keycloak.ClientID,
		cfg.Auth.Keycloak.ClientSecret,
	)
	if deps.redis != nil && keycloak.Configured() {
		container.Sessions = adminsession.NewService(adminsession.ServiceDependencies{
			Logger:   log,
			Redis:    deps.redis.GetClient(),
			Identity: keycloak,
		}, adminsession.LoadConfig(cfg))
	} else if !keycloak.Configured() {
		zapLog.Info("Keycloak not configured, admin session routes disabled")
	}

	return container, nil
}

// newsletterDependencies wires only the channels that are enabled and could be built.
func newsletterDependencies(ctx context.Context, cfg *config.Config, log logger.Logger, deps *dependencies, zapLog *zap.Logger) newslettersubscribe.ServiceDependencies {
	nd := newslettersubscribe.ServiceDependencies{Logger: log, DB: deps.pg.GetDB()}
	awsCfg := cfg.Integrations.AWS

	if awsCfg.SES.Enabled {
		ses, err := aws.NewSESClient(ctx, awsCfg.Region, awsCfg.SES.FromEmail)
		if err != nil {
			zapLog.Error("SES client unavailable", zap.Error(err))
		} else {
			nd.Email = ses
		}
	}
	if awsCfg.SNS.Enabled {
		sns, err := aws.NewSNSClient(ctx, awsCfg.Region, awsCfg.SNS.TopicARN)
		if err != nil {
			zapLog.Error("SNS client unavailable", zap.Error(err))
		} else {
			nd.Topic = sns
		}
	}
	if z := cfg.Integrations.Zoho; z.Enabled && z.AuthToken != "" {
		nd.CRM = zoho.NewCRMClient(z.BaseURL, z.AuthToken)
	}
	return nd
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
}

// readyHandler reports ready when every connected store answers a ping. Stores that
// were never connected are listed as disabled and do not block readiness.
func readyHandler(deps *dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"postgres": "disabled", "redis": "disabled"}
		status := http.StatusOK

		if deps.pg != nil {
			checks["postgres"] = "ok"
			if err := deps.pg.Ping(ctx); err != nil {
				checks["postgres"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		if deps.redis != nil {
			checks["redis"] = "ok"
			if err := deps.redis.Ping(ctx); err != nil {
				checks["redis"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		state := "ready"
		if status != http.StatusOK {
			state = "degraded"
		}
		writeStatus(w, status, map[string]interface{}{"status": state, "checks": checks})
	}
}
