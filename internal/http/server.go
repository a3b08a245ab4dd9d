package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pengeplan/internal/finance"
	"pengeplan/internal/log"
	"pengeplan/internal/middleware/ratelimit"
	"pengeplan/internal/middleware/security"
	"pengeplan/internal/middleware/trace"
	"pengeplan/internal/ports"
	"pengeplan/internal/services"
)

// Options tune the server. The zero value is usable.
type Options struct {
	Logger         *log.Logger
	Rules          finance.Rules
	WritesPerMin   int
	RequestTimeout time.Duration
	// Now is the clock used for date defaults.
	Now func() time.Time
}

type Server struct {
	http.Server
	store   ports.Store
	planner *services.Planner
	rules   finance.Rules
	now     func() time.Time

	clientIP *security.ClientIP
	limiter  *ratelimit.Limiter
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer wires the routes and middleware onto a ready-to-run http.Server.
func NewServer(addr string, store ports.Store, planner *services.Planner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}
	if opts.Rules.Tax.Brackets == nil {
		opts.Rules = finance.DefaultRules()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		store:    store,
		planner:  planner,
		rules:    opts.Rules,
		now:      opts.Now,
		clientIP: security.NewClientIP(),
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.WritesPerMin}),
	}
	s.tracer = trace.NewMiddleware(s.clientIP.Extract)

	r := chi.NewRouter()
	r.Use(log.Middleware(opts.Logger))
	r.Use(s.tracer.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(s.limitWrites)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(http.StatusNotFound, "no such endpoint").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(http.StatusMethodNotAllowed, "method not allowed").Write(w)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/", s.handleListLedger)
			r.Post("/", s.handleCreateLedgerItem)
			r.Delete("/{id}", s.handleDeleteLedgerItem)
			r.Get("/balance", s.handleLedgerBalance)
			r.Get("/categories", s.handleLedgerCategories)
			r.Get("/trends", s.handleLedgerTrends)
			r.Get("/trends/summary", s.handleLedgerTrendSummary)
			r.Get("/analysis", s.handleLedgerAnalysis)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", s.handleListBills)
			r.Post("/", s.handleCreateBill)
			r.Delete("/{id}", s.handleDeleteBill)
			r.Put("/{id}/status", s.handleSetBillStatus)
			r.Get("/totals", s.handleBillTotals)
			r.Get("/upcoming", s.handleUpcomingBills)
			r.Get("/recurring", s.handleRecurringBills)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", s.handleListDebts)
			r.Post("/", s.handleCreateDebt)
			r.Delete("/{id}", s.handleDeleteDebt)
			r.Get("/{id}/payoff", s.handleDebtPayoff)
			r.Get("/totals", s.handleDebtTotals)
			r.Get("/plan", s.handlePlan)
			r.Get("/compare", s.handleCompare)
			r.Get("/plans/saved", s.handleSavedPlan)
		})

		r.Get("/networth", s.handleNetWorth)
		r.Get("/assets", s.handleListAssets)
		r.Post("/assets", s.handleCreateAsset)
		r.Delete("/assets/{id}", s.handleDeleteAsset)
		r.Get("/liabilities", s.handleListLiabilities)
		r.Post("/liabilities", s.handleCreateLiability)
		r.Delete("/liabilities/{id}", s.handleDeleteLiability)

		r.Get("/emergency-fund", s.handleEmergencyFund)
		r.Get("/projections/compound", s.handleCompound)
		r.Get("/projections/retirement", s.handleRetirement)
		r.Get("/tax/estimate", s.handleTaxEstimate)
		r.Get("/support/eligibility", s.handleSupportEligibility)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      opts.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// limitWrites rate-limits mutating requests per client address.
func (s *Server) limitWrites(next http.Handler) http.Handler {
	limited := s.limiter.Middleware(s.clientIP.Extract, func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, s.clientIP.Extract(r),
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, try again later").Write(w)
	})(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
		default:
			limited.ServeHTTP(w, r)
		}
	})
}

// Shutdown stops the background limiter and drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"requests":       s.tracer.GetMetrics(),
		"rate_limit":     s.limiter.GetMetrics(),
		"spoof_attempts": s.clientIP.SpoofAttempts(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		log.FromContext(ctx).WarnContext(ctx, "Readiness check failed", log.FieldError, err)
		ErrorResponse(http.StatusServiceUnavailable, "storage unavailable").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
