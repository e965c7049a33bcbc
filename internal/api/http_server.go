package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lavka/internal/config"
	"lavka/internal/domain"
	"lavka/internal/metrics"
	"lavka/internal/store"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the catalog-and-cart API.
type HTTPServer struct {
	cfg    config.ServerConfig
	items  *store.ItemStore
	carts  *store.CartStore
	linker *store.CartItemLinker
	events domain.EventPublisher
	logger *zerolog.Logger
	server *http.Server
}

func NewHTTPServer(
	cfg config.ServerConfig,
	items *store.ItemStore,
	carts *store.CartStore,
	linker *store.CartItemLinker,
	limiter domain.LimiterRepository,
	events domain.EventPublisher,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:    cfg,
		items:  items,
		carts:  carts,
		linker: linker,
		events: events,
		logger: logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /item", srv.handleCreateItem)
	mux.HandleFunc("GET /item", srv.handleListItems)
	mux.HandleFunc("GET /item/{id}", srv.handleGetItem)
	mux.HandleFunc("PUT /item/{id}", srv.handleReplaceItem)
	mux.HandleFunc("PATCH /item/{id}", srv.handlePatchItem)
	mux.HandleFunc("DELETE /item/{id}", srv.handleDeleteItem)

	mux.HandleFunc("POST /cart", srv.handleCreateCart)
	mux.HandleFunc("GET /cart", srv.handleListCarts)
	mux.HandleFunc("GET /cart/{id}", srv.handleGetCart)
	mux.HandleFunc("POST /cart/{cart_id}/add/{item_id}", srv.handleAddItemToCart)

	mux.HandleFunc("GET /export/items", srv.handleExportItems)
	mux.HandleFunc("GET /healthz", srv.handleHealth)

	handler := requestIDMiddleware(srv.loggingMiddleware(rateLimitMiddleware(limiter, logger, mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the full middleware-wrapped handler, used by tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		metrics.IncHTTP(endpoint)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", w.Header().Get("X-Request-Id")).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
