// Package api provides the HTTP chart service.
//
// The API stores chart documents and renders them on demand:
//
//	POST   /api/v1/charts           store a chart document, returns {id, url}
//	GET    /api/v1/charts/{id}      the stored document
//	GET    /api/v1/charts/{id}.svg  rendered artifact (also .png, .json)
//	DELETE /api/v1/charts/{id}      remove the document
//	GET    /health                  liveness probe
//
// Rendering goes through a pipeline.Runner, so repeated requests for the
// same chart are served from the layout and artifact caches.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jfache/nivo/pkg/buildinfo"
	"github.com/jfache/nivo/pkg/cache"
	"github.com/jfache/nivo/pkg/chart"
	"github.com/jfache/nivo/pkg/errors"
	"github.com/jfache/nivo/pkg/observability"
	"github.com/jfache/nivo/pkg/pipeline"
	"github.com/jfache/nivo/pkg/store"
)

// =============================================================================
// Server - Construction and Lifecycle
// =============================================================================

// Server is the HTTP API server. Construct it with NewServer and run it
// with ListenAndServe.
type Server struct {
	cfg    *Config
	logger *log.Logger
	router chi.Router
	runner *pipeline.Runner
	store  store.Store
}

// NewServer builds a server with the cache and store backends named in cfg.
// A nil logger falls back to the package default.
func NewServer(ctx context.Context, cfg *Config, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = log.Default()
	}

	c, err := buildCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	st, err := buildStore(ctx, cfg)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		runner: pipeline.NewRunner(c, nil, logger),
		store:  st,
	}
	s.router = s.buildRouter()
	return s, nil
}

func buildCache(ctx context.Context, cfg *Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryCache(cfg.Cache.Capacity), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want memory or redis)", cfg.Cache.Backend)
	}
}

func buildStore(ctx context.Context, cfg *Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Store.URI,
			Database:   cfg.Store.Database,
			Collection: cfg.Store.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory or mongo)", cfg.Store.Backend)
	}
}

// Router returns the server's HTTP handler. Used by tests and by callers
// that mount the API inside a larger mux.
func (s *Server) Router() chi.Router {
	return s.router
}

// Close releases the server's cache and store connections.
func (s *Server) Close() error {
	err := s.runner.Close()
	if serr := s.store.Close(); err == nil {
		err = serr
	}
	return err
}

// ListenAndServe starts the HTTP server and blocks until ctx is canceled
// or the listener fails. Cancellation drains in-flight requests before
// returning.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.cfg.Store.CleanupInterval > 0 {
		go s.janitor(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// janitor periodically sweeps expired charts from the store.
func (s *Server) janitor(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Store.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.store.Cleanup(ctx)
			if err != nil {
				s.logger.Warn("chart cleanup failed", "err", err)
				continue
			}
			if removed > 0 {
				s.logger.Info("removed expired charts", "count", removed)
			}
		}
	}
}

// =============================================================================
// Router - Middleware and Routes
// =============================================================================

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Limits.RequestTimeout))
	r.Use(s.observe)

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"X-Request-ID", "ETag"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/charts", func(r chi.Router) {
			r.Post("/", s.handleCreateChart)
			r.Get("/{id}", s.handleGetChart)
			r.Delete("/{id}", s.handleDeleteChart)
		})
	})

	return r
}

// observe emits request logs and observability events. chi's bundled
// request logger writes through the stdlib logger, so the server carries
// its own.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.Host, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.Host, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// =============================================================================
// Handlers - Health, Charts, Artifacts
// =============================================================================

// renderFormats maps the artifact formats the API serves to their content
// types. PDF conversion shells out to rsvg-convert and stays a CLI concern.
var renderFormats = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":  "ok",
			"version": buildinfo.Version,
		},
	})
}

// handleCreateChart validates a posted chart spec and stores it under a
// fresh ID.
func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxBodyBytes)

	var spec chart.Spec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", errors.ErrCodeInvalidSpec)
		return
	}
	if err := spec.Validate(); err != nil {
		writeCodedError(w, err)
		return
	}

	c := store.NewChart(spec, s.cfg.Store.ChartTTL)
	if err := s.store.Set(r.Context(), c); err != nil {
		s.handlerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data: CreateChartResponse{
			ID:  c.ID,
			URL: "/api/v1/charts/" + c.ID,
		},
	})
}

// handleGetChart serves either the stored document or a rendered artifact.
// Chart IDs are UUIDs and contain no dots, so the first dot in the path
// parameter separates the ID from a requested format.
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	id, format, hasFormat := strings.Cut(chi.URLParam(r, "id"), ".")
	if err := store.ValidateID(id); err != nil {
		writeError(w, http.StatusNotFound, "no such chart", errors.ErrCodeChartNotFound)
		return
	}

	c, err := s.store.Get(r.Context(), id)
	if store.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "no such chart", errors.ErrCodeChartNotFound)
		return
	}
	if err != nil {
		s.handlerError(w, r, err)
		return
	}

	if !hasFormat {
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: c})
		return
	}
	s.renderChart(w, r, c, format)
}

// renderChart runs the pipeline for one stored chart and writes the
// artifact with cache validators.
func (s *Server) renderChart(w http.ResponseWriter, r *http.Request, c *store.Chart, format string) {
	ctype, ok := renderFormats[format]
	if !ok {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("no such artifact format %q", format), errors.ErrCodeInvalidFormat)
		return
	}

	opts := c.Spec.Pipeline()
	opts.Formats = []string{format}
	opts.ChartID = c.ID

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if errors.GetCode(err) != "" {
			writeCodedError(w, err)
			return
		}
		s.handlerError(w, r, err)
		return
	}

	artifact := result.Artifacts[format]
	etag := `"` + cache.Hash(artifact)[:16] + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		writeError(w, http.StatusNotFound, "no such chart", errors.ErrCodeChartNotFound)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.handlerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]string{"deleted": id},
	})
}

// =============================================================================
// Responses - Envelope and Error Mapping
// =============================================================================

// APIResponse is the standard JSON envelope for every endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// CreateChartResponse is returned by POST /api/v1/charts.
type CreateChartResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, code errors.Code) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg, Code: string(code)})
}

// writeCodedError maps a coded error onto an HTTP status and the envelope.
func writeCodedError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeError(w, statusForCode(code), errors.UserMessage(err), code)
}

// statusForCode maps pipeline and storage error codes to HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeChartNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStore, errors.ErrCodeCache, errors.ErrCodeInternal, "":
		return http.StatusInternalServerError
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		// The remaining codes are input validation.
		return http.StatusBadRequest
	}
}

// handlerError reports an internal failure and hides details from clients.
func (s *Server) handlerError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.Host, r.URL.Path, err)
	s.logger.Error("handler failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, "internal error", errors.ErrCodeInternal)
}
