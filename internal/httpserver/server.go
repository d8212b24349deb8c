package httpserver

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/config"
)

// Server holds the HTTP server dependencies.
type Server struct {
	Router *chi.Mux
	// PublicRouter is the unauthenticated /api/v1 sub-router used by the storefront.
	PublicRouter chi.Router
	// AdminRouter is the /api/v1/admin sub-router; callers install authentication on it.
	AdminRouter chi.Router
	Logger      *slog.Logger
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Metrics     *prometheus.Registry
	startedAt   time.Time
}

// NewServer creates an HTTP server with middleware and health/metrics endpoints.
// adminMiddleware is applied to every /api/v1/admin route, in order.
// Domain handlers should be mounted on PublicRouter and AdminRouter after calling NewServer.
func NewServer(cfg *config.Config, logger *slog.Logger, db *pgxpool.Pool, rdb *redis.Client, metricsReg *prometheus.Registry, adminMiddleware ...func(http.Handler) http.Handler) *Server {
	s := &Server{
		Router:    chi.NewRouter(),
		Logger:    logger,
		DB:        db,
		Redis:     rdb,
		Metrics:   metricsReg,
		startedAt: time.Now(),
	}

	s.Router.Use(RequestID)
	s.Router.Use(Logger(logger))
	s.Router.Use(Metrics)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Session-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.Router.Get("/healthz", s.handleHealthz)
	s.Router.Get("/readyz", s.handleReadyz)
	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	s.Router.Handle(metricsPath, promhttp.HandlerFor(metricsReg, promhttp.HandlerOpts{}))

	s.Router.Route("/api/v1", func(r chi.Router) {
		r.Route("/admin", func(ar chi.Router) {
			for _, mw := range adminMiddleware {
				ar.Use(mw)
			}
			ar.Get("/status", s.HandleStatus)
			s.AdminRouter = ar
		})
		s.PublicRouter = r
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	Respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// dependency is the outcome of pinging Postgres or Redis.
type dependency struct {
	Status    string  `json:"status"`
	LatencyMS float64 `json:"latency_ms"`
}

func probe(ctx context.Context, ping func(context.Context) error) (dependency, error) {
	start := time.Now()
	err := ping(ctx)
	d := dependency{Status: "ok", LatencyMS: millis(time.Since(start))}
	if err != nil {
		d.Status = "error"
	}
	return d, err
}

func (s *Server) pingRedis(ctx context.Context) error { return s.Redis.Ping(ctx).Err() }

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if _, err := probe(r.Context(), s.DB.Ping); err != nil {
		s.Logger.Error("readiness check: database ping failed", "error", err)
		RespondError(w, http.StatusServiceUnavailable, CodeUnavailable, "database not ready")
		return
	}
	if _, err := probe(r.Context(), s.pingRedis); err != nil {
		s.Logger.Error("readiness check: redis ping failed", "error", err)
		RespondError(w, http.StatusServiceUnavailable, CodeUnavailable, "redis not ready")
		return
	}
	Respond(w, http.StatusOK, map[string]string{"status": "ready"})
}

// statusResponse backs the back-office dashboard. Queue sizes are null when
// the database is unreachable.
type statusResponse struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	UptimeSeconds    int64      `json:"uptime_seconds"`
	Database         dependency `json:"database"`
	Redis            dependency `json:"redis"`
	PendingMeetings  *int64     `json:"pending_meetings"`
	PendingCallbacks *int64     `json:"pending_callbacks"`
}

// HandleStatus reports dependency health, uptime and how many meetings and
// callback requests are still waiting for staff.
func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uptime := time.Since(s.startedAt)

	resp := statusResponse{
		Status:        "ok",
		Uptime:        uptime.Truncate(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
	}

	var dbErr, redisErr error
	resp.Database, dbErr = probe(ctx, s.DB.Ping)
	resp.Redis, redisErr = probe(ctx, s.pingRedis)
	for name, err := range map[string]error{"database": dbErr, "redis": redisErr} {
		if err != nil {
			s.Logger.Error("status check: ping failed", "dependency", name, "error", err)
			resp.Status = "degraded"
		}
	}
	if dbErr != nil {
		Respond(w, http.StatusOK, resp)
		return
	}

	var meetings, callbacks int64
	err := s.DB.QueryRow(ctx, `SELECT
		(SELECT count(*) FROM meetings WHERE status = 'pending'),
		(SELECT count(*) FROM callback_requests WHERE status = 'pending')`,
	).Scan(&meetings, &callbacks)
	if err != nil {
		s.Logger.Error("status check: counting pending records", "error", err)
	} else {
		resp.PendingMeetings, resp.PendingCallbacks = &meetings, &callbacks
	}

	Respond(w, http.StatusOK, resp)
}

// millis converts d to milliseconds rounded to two decimals.
func millis(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/10) / 100
}
