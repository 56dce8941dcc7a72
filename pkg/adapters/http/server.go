// Package http exposes the morph engine as a small JSON API built on chi.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/codec"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/schema"
	"github.com/aretw0/morph/pkg/value"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds the size of an uploaded configuration.
const maxBodyBytes = 1 << 20

// Engine defines the subset of the morph facade the HTTP API needs.
type Engine interface {
	TransformDocument(ctx context.Context, data []byte, format codec.Format) (value.Map, error)
	Publish(ctx context.Context, name string, result value.Map) error
	Result(ctx context.Context, name string) (value.Map, error)
	Results(ctx context.Context) ([]string, error)
}

// TransformResponse is the body returned by POST /transform.
type TransformResponse struct {
	Name   string    `json:"name,omitempty"`
	Result value.Map `json:"result"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// Server serves the morph engine over HTTP.
type Server struct {
	Engine   Engine
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithGatherer exposes the given registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(requestID)

	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/transform", server.Transform)
	r.Get("/results", server.ListResults)
	r.Get("/results/{name}", server.GetResult)
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestID echoes the caller's X-Request-ID or assigns a fresh one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// Transform handles the POST /transform request. The body is JSON when the
// Content-Type says so, YAML otherwise. A non-empty ?name= publishes the
// result.
func (s *Server) Transform(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, err)
		} else {
			s.fail(w, r, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		}
		return
	}

	format, err := requestFormat(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := s.Engine.TransformDocument(r.Context(), data, format)
	if err == nil {
		err = result.CheckFinite()
	}
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	name := r.URL.Query().Get("name")
	if name != "" {
		if err := s.Engine.Publish(r.Context(), name, result); err != nil {
			s.fail(w, r, statusFor(err), err)
			return
		}
	}

	s.respond(w, http.StatusOK, TransformResponse{Name: name, Result: result})
}

// ListResults handles the GET /results request.
func (s *Server) ListResults(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Results(r.Context())
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.respond(w, http.StatusOK, map[string][]string{"results": names})
}

// GetResult handles the GET /results/{name} request.
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	result, err := s.Engine.Result(r.Context(), name)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	s.respond(w, http.StatusOK, TransformResponse{Name: name, Result: result})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{
		"app":     "morph-http",
		"version": morph.Version,
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := r.Header.Get(RequestIDHeader)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "request_id", id, "error", err)
	} else {
		s.Logger.Warn("request rejected", "path", r.URL.Path, "request_id", id, "error", err)
	}

	resp := ErrorResponse{Error: err.Error(), RequestID: id}
	for _, v := range schema.ValidationErrors(err) {
		resp.Details = append(resp.Details, v.Error())
	}
	s.respond(w, status, resp)
}

func requestFormat(r *http.Request) (codec.Format, error) {
	if name := r.URL.Query().Get("format"); name != "" {
		return codec.ParseFormat(name)
	}
	if strings.Contains(r.Header.Get("Content-Type"), "json") {
		return codec.FormatJSON, nil
	}
	return codec.FormatYAML, nil
}

func statusFor(err error) int {
	var agg *schema.AggregateError
	switch {
	case errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoStore):
		return http.StatusNotImplemented
	case errors.As(err, &agg), errors.Is(err, value.ErrNonFinite):
		return http.StatusUnprocessableEntity
	case errors.Is(err, codec.ErrMalformed),
		errors.Is(err, codec.ErrNotMapping),
		errors.Is(err, codec.ErrUnknownFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
