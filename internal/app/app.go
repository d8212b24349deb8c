package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/audit"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/auth"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/config"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/platform"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/seed"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/telemetry"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/callback"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/content"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/media"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/meeting"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/notify"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/settings"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/storefront"
)

// Login throttling per client address.
const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

// Run is the main application entry point. It reads config, connects to
// infrastructure, and starts the appropriate mode (api, seed or seed-demo).
func Run(ctx context.Context, cfg *config.Config) error {
	logger := telemetry.NewLogger(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting eclub",
		"mode", cfg.Mode,
		"listen", cfg.ListenAddr(),
	)

	// Database
	db, err := platform.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := platform.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("migrations applied", "dir", cfg.MigrationsDir)

	switch cfg.Mode {
	case "seed":
		return seed.Run(ctx, db, logger, cfg.AdminEmail, cfg.AdminPassword)
	case "seed-demo":
		return seed.RunDemo(ctx, db, logger, cfg.AdminEmail, cfg.AdminPassword)
	case "api":
	default:
		return fmt.Errorf("unknown mode: %s", cfg.Mode)
	}

	// Redis
	rdb, err := platform.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("closing redis", "error", err)
		}
	}()

	return runAPI(ctx, cfg, logger, db, rdb, telemetry.NewMetricsRegistry())
}

func runAPI(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *pgxpool.Pool, rdb *redis.Client, metricsReg *prometheus.Registry) error {
	secret := cfg.SessionSecret
	if secret == "" {
		if !cfg.DevMode {
			return errors.New("SESSION_SECRET must be set outside dev mode")
		}
		secret = auth.GenerateDevSecret()
		logger.Warn("SESSION_SECRET not set, using a random dev secret; sessions will not survive restarts")
	}
	sessions, err := auth.NewSessionManager(secret, cfg.SessionMaxAge)
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}

	files, err := media.NewStore(cfg.StorageDir, cfg.StorageMaxBytes)
	if err != nil {
		return fmt.Errorf("opening file storage: %w", err)
	}

	// Audit log writer (async, buffered).
	auditStore := audit.NewStore(db)
	auditWriter := audit.NewWriter(auditStore, logger)
	auditWriter.Start(ctx)
	defer auditWriter.Close()

	srv := httpserver.NewServer(cfg, logger, db, rdb, metricsReg,
		auth.Middleware(sessions, cfg.DevMode, logger),
		auth.RequireAuth,
	)

	login := auth.NewLoginHandler(sessions, auth.NewStore(db),
		auth.NewRateLimiter(rdb, loginMaxAttempts, loginWindow), logger)
	srv.PublicRouter.Post("/auth/login", login.HandleLogin)

	notifier := notify.NewNotifier(cfg.SlackBotToken, cfg.SlackChannel, logger)
	if !notifier.IsEnabled() {
		logger.Info("slack notifications disabled (SLACK_BOT_TOKEN or SLACK_CHANNEL not set)")
	}

	// Settings and storefront shell.
	settingsService := settings.NewService(settings.NewStore(db),
		settings.NewCache(rdb, cfg.SettingsCacheTTL, logger), files, logger)
	settingsHandler := settings.NewHandler(logger, auditWriter, settingsService)
	srv.PublicRouter.Mount("/settings", settingsHandler.PublicRoutes())

	shell := storefront.NewHandler(logger,
		storefront.NewService(settingsService, storefront.NewRedisCounts(rdb), logger))
	srv.PublicRouter.Mount("/storefront", shell.Routes())

	// Page content.
	contentHandler := content.NewHandler(logger, auditWriter, content.NewService(content.NewStore(db), logger))
	srv.PublicRouter.Mount("/pages", contentHandler.PublicRoutes())

	// Meetings and callbacks.
	meetingService := meeting.NewService(meeting.NewStore(db), notifier, logger)
	meetingHandler := meeting.NewHandler(logger, auditWriter, meetingService)
	srv.PublicRouter.Mount("/meetings", meetingHandler.PublicRoutes())

	callbackService := callback.NewService(callback.NewStore(db), notifier, logger)
	callbackHandler := callback.NewHandler(logger, auditWriter, callbackService)
	srv.PublicRouter.Mount("/callbacks", callbackHandler.PublicRoutes())

	if cfg.SlackSigningSecret == "" {
		if cfg.DevMode {
			logger.Warn("SLACK_SIGNING_SECRET not set, accepting unsigned slack interactions in dev mode")
		} else {
			logger.Info("slack interactions disabled (SLACK_SIGNING_SECRET not set)")
		}
	}
	slackHandler := notify.NewHandler(notifier, meetingService, callbackService, auditWriter, logger,
		cfg.SlackSigningSecret, cfg.DevMode)
	srv.PublicRouter.Mount("/slack", slackHandler.Routes())

	// Back office. Editors manage site content; customer records and the
	// audit trail are admin only.
	srv.AdminRouter.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleEditor))
		r.Mount("/settings", settingsHandler.AdminRoutes())
		r.Mount("/pages", contentHandler.AdminRoutes())
	})
	srv.AdminRouter.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Mount("/meetings", meetingHandler.AdminRoutes())
		r.Mount("/callbacks", callbackHandler.AdminRoutes())
		r.Mount("/audit-log", audit.NewHandler(logger, auditStore).Routes())
	})

	srv.Router.Handle(media.URLPrefix+"*", http.StripPrefix(media.URLPrefix, files.Handler()))

	httpSrv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "addr", cfg.ListenAddr())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
