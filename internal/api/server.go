package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fincalc/projection-engine/internal/calculation"
	"github.com/fincalc/projection-engine/internal/domain"
	"github.com/fincalc/projection-engine/internal/ledger"
	"github.com/fincalc/projection-engine/internal/output"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Settings configures a Server
type Settings struct {
	Server   domain.ServerSettings
	Currency domain.CurrencySettings
}

// Server exposes the calculators and the transaction ledger over HTTP
type Server struct {
	engine   *calculation.Engine
	book     *ledger.Book
	exporter output.StatementExporter
	logger   *zap.Logger
	metrics  *Metrics
	settings Settings
	now      func() time.Time
}

// NewServer wires a server. A nil logger disables logging and nil
// metrics get a fresh registry.
func NewServer(engine *calculation.Engine, book *ledger.Book, settings Settings, logger *zap.Logger, metrics *Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics("fincalc")
	}
	return &Server{
		engine:   engine,
		book:     book,
		exporter: output.StatementExporter{Symbol: settings.Currency.Symbol},
		logger:   logger.Named("api"),
		metrics:  metrics,
		settings: settings,
		now:      time.Now,
	}
}

// Metrics returns the collectors the server records into
func (s *Server) Metrics() *Metrics { return s.metrics }

// Router configures all routes and middleware
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	router.Use(instrument(s.metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.settings.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.healthCheck)
	router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/calculators", func(r chi.Router) {
			r.Post("/compound", calculator(s, "compound", s.engine.CompoundInterest))
			r.Post("/loan", calculator(s, "loan", s.engine.LoanAmortization))
			r.Post("/retirement", calculator(s, "retirement", s.engine.RetirementProjection))
			r.Post("/sip", calculator(s, "sip", s.engine.SipProjection))
			r.Post("/affordability", calculator(s, "affordability", s.engine.HomeAffordability))
		})
		r.Post("/preview", s.preview)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.listTransactions)
			r.Get("/months", s.listMonths)
			r.Get("/categories", s.listCategories)
			r.Get("/spending", s.spending)
			r.Get("/statement", s.statement)
		})
		r.Get("/insights", s.insights)
	})

	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.settings.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
