package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/trinomial"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
	"github.com/aretw0/trinomial/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var rawSpec []byte

// maxBodySize bounds POST bodies before JSON decoding; expression size is enforced by SanitizeInput.
const maxBodySize = 64 << 10

// FactorRequest is the POST /factor body.
type FactorRequest struct {
	Expression string `json:"expression"`
	Notation   string `json:"notation,omitempty"`
}

// FactorResponse is returned by both /factor routes.
type FactorResponse struct {
	Explanation *domain.Explanation `json:"explanation,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// Server exposes a Factorer over REST.
type Server struct {
	Engine  ports.Factorer
	Streams *StreamManager

	logger   *slog.Logger
	metrics  http.Handler
	notation domain.Notation
	spec     *openapi3.T
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger (slog.Default otherwise).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithStreams shares a StreamManager whose Hooks feed the engine.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithNotation sets the notation used when a request does not name one.
func WithNotation(n domain.Notation) Option {
	return func(s *Server) {
		s.notation = n
	}
}

// NewServer loads and validates the embedded OpenAPI document and builds the server.
func NewServer(engine ports.Factorer, opts ...Option) (*Server, error) {
	spec, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s := &Server{
		Engine:   engine,
		logger:   slog.Default(),
		notation: domain.NotationLaTeX,
		spec:     spec,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager()
	}
	return s, nil
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Factorer, opts ...Option) (http.Handler, error) {
	s, err := NewServer(engine, opts...)
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// Handler returns the chi router with CORS applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/factor", s.GetFactor)
	r.Post("/factor", s.PostFactor)
	r.Get("/history", s.GetHistory)
	r.Delete("/history/{key}", s.DeleteHistory)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Trinomial API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetFactor handles GET /factor?expression=&notation=.
func (s *Server) GetFactor(w http.ResponseWriter, r *http.Request) {
	var expression string
	if err := runtime.BindQueryParameter("form", true, true, "expression", r.URL.Query(), &expression); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter expression: %v", err))
		return
	}
	var notation string
	if err := runtime.BindQueryParameter("form", true, false, "notation", r.URL.Query(), &notation); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter notation: %v", err))
		return
	}
	s.factor(w, r, FactorRequest{Expression: expression, Notation: notation})
}

// PostFactor handles POST /factor.
func (s *Server) PostFactor(w http.ResponseWriter, r *http.Request) {
	var body FactorRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		s.logger.Warn("PostFactor: Invalid request body", "error", err)
		return
	}
	s.factor(w, r, body)
}

func (s *Server) factor(w http.ResponseWriter, r *http.Request, req FactorRequest) {
	if strings.TrimSpace(req.Expression) == "" {
		writeError(w, http.StatusBadRequest, "expression is required")
		return
	}

	// Sanitize Input (Global Policy)
	clean, err := runner.SanitizeInput(req.Expression)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid input: %v", err))
		s.logger.Warn("Factor: Input rejected", "error", err, "size", len(req.Expression))
		return
	}

	notation := s.notation
	if req.Notation != "" {
		notation = domain.ParseNotation(req.Notation)
	}

	exp, err := s.Engine.FactorWith(r.Context(), clean, notation)
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Factor failed", "error", err)
		writeError(w, status, "internal error")
		return
	}

	resp := FactorResponse{Explanation: exp}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

// StatusFor maps factoring errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrTokenParse),
		errors.Is(err, domain.ErrShapeMismatch),
		errors.Is(err, domain.ErrSearchLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInputTooLarge),
		errors.Is(err, domain.ErrInvalidUTF8):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetHistory handles GET /history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.Engine.History(r.Context())
	if err != nil {
		s.logger.Error("History failed", "error", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// DeleteHistory handles DELETE /history/{key}.
func (s *Server) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid key")
		return
	}
	if err := s.Engine.Forget(r.Context(), key); err != nil {
		s.logger.Error("Forget failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.spec != nil && s.spec.Info != nil {
		apiVersion = s.spec.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "trinomial-http",
		"version":     strings.TrimSpace(trinomial.Version),
		"api_version": apiVersion,
	})
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var form string
	if err := runtime.BindQueryParameter("form", true, false, "form", r.URL.Query(), &form); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter form: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(domain.FormKind(form))
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, readTimeout, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readTimeout,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("HTTP Server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// -- Helpers --

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
