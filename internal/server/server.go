// Package server exposes a read-only JSON facade over the catalog client,
// for dashboards that want search and format listings without linking the
// library.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/opendata-tools/govcat/pkg/catalog"
	"github.com/opendata-tools/govcat/pkg/dataset"
	goverrors "github.com/opendata-tools/govcat/pkg/errors"
	"github.com/opendata-tools/govcat/pkg/formats"
	"github.com/opendata-tools/govcat/pkg/httputil"
)

// Server wires the catalog client and the dataset loader into HTTP handlers.
type Server struct {
	catalog *catalog.Client
	loader  *dataset.Loader
	logger  *log.Logger
}

// New builds a Server. A nil logger gets log.Default().
func New(c *catalog.Client, l *dataset.Loader, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{catalog: c, loader: l, logger: logger}
}

// Router returns the facade's route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/datasets/{id}", s.handleDataset)
		r.Get("/datasets/{id}/formats", s.handleFormats)
	})
	return r
}

// ListenAndServe runs the facade on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("facade listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestID stamps every request with a UUID, echoed in the response and
// attached to the request-scoped logger.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		logger := s.logger.With("request_id", id, "path", r.URL.Path)
		logger.Debug("request received", "method", r.Method)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context(), logger)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch serves GET /api/search?q=...&publisher=...&pages=N.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	opts := catalog.SearchOptions{Publisher: r.URL.Query().Get("publisher")}
	if pages := r.URL.Query().Get("pages"); pages != "" {
		n, err := strconv.Atoi(pages)
		if err != nil || n < 1 {
			s.writeError(w, r, goverrors.New(goverrors.ErrCodeInvalidInput, "pages must be a positive integer"))
			return
		}
		opts.MaxPages = n
	}

	records, err := s.catalog.Search(r.Context(), q, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   q,
		"count":   len(records),
		"results": records,
	})
}

// handleDataset serves GET /api/datasets/{id}: the full load result for the
// one dataset behind the identifier.
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	records, err := s.catalog.DatasetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := dataset.LoadOptions{Encoding: r.URL.Query().Get("encoding")}
	if p := r.URL.Query().Get("formats"); p != "" {
		priority, err := formats.ParsePriority(p)
		if err != nil {
			s.writeError(w, r, goverrors.Wrap(goverrors.ErrCodeInvalidFormat, err, "parse formats parameter"))
			return
		}
		opts.Priority = priority
	}

	result, err := s.loader.LoadOne(r.Context(), records, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleFormats serves GET /api/datasets/{id}/formats: the distributions a
// dataset offers and which of them the loader would select, in order.
func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	records, err := s.catalog.DatasetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(records) == 0 {
		s.writeError(w, r, goverrors.New(goverrors.ErrCodeDatasetNotFound, "no dataset with identifier %q", id))
		return
	}
	if len(records) > 1 {
		ids := make([]string, len(records))
		for i, rec := range records {
			ids[i] = rec.ID
		}
		s.writeError(w, r, &dataset.MultipleDatasetsError{IDs: ids})
		return
	}

	rec := records[0]
	selected := formats.Keys(rec.Distributions, s.loader.Priority(),
		func(d catalog.Distribution) formats.Format { return d.Format },
		func(d catalog.Distribution) string { return d.Name })

	writeJSON(w, http.StatusOK, map[string]any{
		"dataset":       rec.ID,
		"distributions": rec.Distributions,
		"selected":      selected,
	})
}

// writeError maps library errors to the code taxonomy and renders one JSON
// error shape.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := classify(err)
	log.FromContext(r.Context()).Warn("request failed", "code", code, "err", err)
	writeJSON(w, goverrors.HTTPStatus(code), map[string]any{
		"error": map[string]string{
			"code":    string(code),
			"message": goverrors.UserMessage(err),
		},
	})
}

// classify converts library error types into taxonomy codes.
func classify(err error) goverrors.Code {
	if code := goverrors.GetCode(err); code != "" {
		return code
	}

	var multi *dataset.MultipleDatasetsError
	var mismatch *httputil.FormatMismatchError
	var transport *httputil.TransportError
	switch {
	case errors.Is(err, dataset.ErrNoDataset):
		return goverrors.ErrCodeDatasetNotFound
	case errors.As(err, &multi):
		return goverrors.ErrCodeAmbiguousDataset
	case errors.As(err, &mismatch):
		return goverrors.ErrCodeFormatMismatch
	case errors.As(err, &transport):
		return goverrors.ErrCodeNetwork
	case errors.Is(err, context.DeadlineExceeded):
		return goverrors.ErrCodeTimeout
	default:
		return goverrors.ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
