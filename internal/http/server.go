package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"household/internal/log"
	"household/internal/metrics"
	"household/internal/middleware/ratelimit"
	"household/internal/middleware/security"
	"household/internal/middleware/trace"
	"household/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the API serves from.
type Deps struct {
	Groups   *services.GroupService
	Expenses *services.ExpenseService
	Reports  *services.ReportService
	Store    Pinger
	Metrics  *metrics.Metrics
	Logger   *log.Logger
}

// Options tune the HTTP surface.
type Options struct {
	RateLimitPerMinute int
	CORSAllowedOrigin  string
	EnableH2C          bool
}

type Server struct {
	http.Server
	groups   *services.GroupService
	expenses *services.ExpenseService
	reports  *services.ReportService
	store    Pinger
	metrics  *metrics.Metrics
	limiter  *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps, opts Options) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		groups:   deps.Groups,
		expenses: deps.Expenses,
		reports:  deps.Reports,
		store:    deps.Store,
		metrics:  deps.Metrics,
	}

	limiterCfg := ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}
	if s.metrics != nil {
		limiterCfg.Rejected = s.metrics.RateLimited
	}
	s.limiter = ratelimit.NewLimiter(limiterCfg)

	var handler http.Handler = s.routes(logger, opts)
	if opts.EnableH2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(logger *log.Logger, opts Options) http.Handler {
	origin := opts.CORSAllowedOrigin
	if origin == "" {
		origin = "*"
	}

	r := chi.NewRouter()
	r.Use(trace.NewMiddleware(logger, security.ClientIP, s.metrics).Middleware)
	r.Use(chimw.Recoverer)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(security.CORS(origin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("Not found").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed").Write(w)
	})

	r.Get("/health", handleHealth)
	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.limiter.Middleware(security.ClientIP, ratelimit.Mutating, func(w http.ResponseWriter, r *http.Request) {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldClientIP, security.ClientIP(r), log.FieldPath, r.URL.Path)
			ErrorResponse(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.").Write(w)
		}))

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", s.handleListGroups)
			r.Post("/", s.handleCreateGroup)
			r.Get("/{id}", s.handleGetGroup)
			r.Delete("/{id}", s.handleDeleteGroup)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/main/{groupId}", s.handleMainCategories)
			r.Get("/sub/{groupId}", s.handleSubCategories)
			r.Post("/seed/{groupId}", s.handleSeedCategories)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", s.handleCreateExpense)
			r.Get("/{groupId}", s.handleListExpenses)
			r.Put("/{id}", s.handleUpdateExpense)
			r.Delete("/{id}", s.handleDeleteExpense)
		})

		r.Get("/balances/{groupId}", s.handleBalances)
		r.Get("/summary/{groupId}", s.handleSummary)
		r.Get("/export/{groupId}", s.handleExport)
	})

	return r
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]string{"status": "ok"}).Write(w)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			ErrorResponse(http.StatusServiceUnavailable, "storage unavailable").Write(w)
			return
		}
	}
	NewResponse().JSON(map[string]string{"status": "ready"}).Write(w)
}
