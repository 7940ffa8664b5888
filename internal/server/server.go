// Package server shares a catalog over HTTP so other grdfind instances can
// load it by URL.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/search"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8000"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	maxSearchLimit    = 500
)

// Server serves one catalog.
type Server struct {
	catalog        *catalog.Catalog
	maxSuggestions int
	log            logr.Logger
}

// New returns a Server for c. maxSuggestions is the default search limit.
func New(c *catalog.Catalog, maxSuggestions int, log logr.Logger) *Server {
	if maxSuggestions <= 0 {
		maxSuggestions = search.DefaultMaxSuggestions
	}
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Server{catalog: c, maxSuggestions: maxSuggestions, log: log}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthzHandler)
	r.Get("/items.json", s.itemsHandler)
	r.Get("/api/v1/search", s.searchHandler)
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("catalog server started", "addr", ln.Addr().String(), "items", s.catalog.Len())
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		s.log.Info("catalog server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

type itemsResponse struct {
	Items []catalog.Item `json:"items"`
}

type searchResponse struct {
	Query string         `json:"query"`
	Total int            `json:"total"`
	Items []catalog.Item `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "items": s.catalog.Len()})
}

func (s *Server) itemsHandler(w http.ResponseWriter, _ *http.Request) {
	items := s.catalog.Items()
	if items == nil {
		items = []catalog.Item{}
	}
	writeJSON(w, http.StatusOK, itemsResponse{Items: items})
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := s.maxSuggestions
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSearchLimit {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("limit must be between 1 and %d", maxSearchLimit)})
			return
		}
		limit = n
	}

	matches := search.Filter(s.catalog, q)
	items := matches.Visible(limit)
	if items == nil {
		items = []catalog.Item{}
	}
	s.log.V(1).Info("search", "query", q, "matches", matches.Len())
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Total: matches.Len(), Items: items})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
