package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/trinomial"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/aretw0/trinomial/pkg/ports"
	"github.com/aretw0/trinomial/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// HistoryURI is the resource listing stored results.
const HistoryURI = "trinomial://history"

// FactorArgs are the factor_trinomial tool arguments.
type FactorArgs struct {
	Expression string `json:"expression"`
	Notation   string `json:"notation,omitempty"`
}

// FactorResponse aligns with the HTTP adapter's response body.
type FactorResponse struct {
	Explanation *domain.Explanation `json:"explanation,omitempty" jsonschema_description:"Step-by-step explanation"`
	Error       string              `json:"error,omitempty" jsonschema_description:"Why the expression could not be factored"`
}

// PairArgs are the find_factor_pair tool arguments.
type PairArgs struct {
	B int64 `json:"b"`
	C int64 `json:"c"`
}

// PairResponse reports the integer pair for m+n = b, m*n = c.
type PairResponse struct {
	Found bool  `json:"found" jsonschema_description:"Whether an integer pair exists"`
	M     int64 `json:"m" jsonschema_description:"First integer (the smaller one)"`
	N     int64 `json:"n" jsonschema_description:"Second integer"`
}

// Server wraps the Trinomial Engine and exposes it as an MCP Server.
type Server struct {
	engine      ports.Factorer
	notation    domain.Notation
	searchLimit int64
	mcpServer   *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithNotation sets the notation used when a call does not name one.
func WithNotation(n domain.Notation) Option {
	return func(s *Server) {
		s.notation = n
	}
}

// WithSearchLimit bounds |c| for find_factor_pair (0 = unlimited).
func WithSearchLimit(limit int64) Option {
	return func(s *Server) {
		s.searchLimit = limit
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Factorer, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		notation: domain.NotationLaTeX,
		mcpServer: server.NewMCPServer("trinomial-mcp", strings.TrimSpace(trinomial.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: factor_trinomial
	factorTool := mcp.NewTool("factor_trinomial",
		mcp.WithDescription("Factor a monic trinomial v^2+bv+c or v^(2k)+bv^k+c over the integers and explain each step."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("The trinomial, e.g. b^2-5b+6 or v^16+58v^8+697")),
		mcp.WithString("notation", mcp.Description("Formula notation: latex (default) or plain"), mcp.Enum("latex", "plain")),
		mcp.WithOutputSchema[FactorResponse](),
	)
	s.mcpServer.AddTool(factorTool, mcp.NewStructuredToolHandler(s.handleFactor))

	// TOOL: find_factor_pair
	pairTool := mcp.NewTool("find_factor_pair",
		mcp.WithDescription("Find integers m <= n with m+n = b and m*n = c."),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Sum of the pair")),
		mcp.WithNumber("c", mcp.Required(), mcp.Description("Product of the pair")),
		mcp.WithOutputSchema[PairResponse](),
	)
	s.mcpServer.AddTool(pairTool, mcp.NewStructuredToolHandler(s.handleFindPair))
}

func (s *Server) handleFactor(ctx context.Context, request mcp.CallToolRequest, args FactorArgs) (FactorResponse, error) {
	clean, err := runner.SanitizeInput(args.Expression)
	if err != nil {
		slog.Warn("MCP Factor: Input rejected", "error", err, "size", len(args.Expression))
		return FactorResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	if strings.TrimSpace(clean) == "" {
		return FactorResponse{}, fmt.Errorf("expression is required")
	}

	notation := s.notation
	if args.Notation != "" {
		notation = domain.ParseNotation(args.Notation)
	}

	exp, err := s.engine.FactorWith(ctx, clean, notation)
	if exp == nil {
		return FactorResponse{}, fmt.Errorf("factor failed: %w", err)
	}

	resp := FactorResponse{Explanation: exp}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp, nil
}

func (s *Server) handleFindPair(ctx context.Context, request mcp.CallToolRequest, args PairArgs) (PairResponse, error) {
	if s.searchLimit > 0 && (args.C > s.searchLimit || args.C < -s.searchLimit) {
		return PairResponse{}, fmt.Errorf("%w: limit=%d", domain.ErrSearchLimit, s.searchLimit)
	}

	pair := trinomial.FindFactors(args.B, args.C)
	if pair == nil {
		return PairResponse{Found: false}, nil
	}
	return PairResponse{Found: true, M: pair.M, N: pair.N}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: trinomial://history
	s.mcpServer.AddResource(mcp.NewResource(HistoryURI, "Factorization History",
		mcp.WithResourceDescription("Stored explanations, most recent first"),
		mcp.WithMIMEType("application/json"),
	), s.handleHistory)
}

func (s *Server) handleHistory(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := s.engine.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	jsonBytes, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      HistoryURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
