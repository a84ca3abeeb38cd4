package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Response is one JSON line written by JSONHandler.
type Response struct {
	Type        string              `json:"type"`
	Explanation *domain.Explanation `json:"explanation,omitempty"`
	Error       string              `json:"error,omitempty"`
	Message     string              `json:"message,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
//
// Each input line is either a JSON object {"expression": "...", "notation": "..."},
// a JSON string, or raw text.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder

	mu sync.Mutex
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

// Input reads one line. Rejected input is reported as an error line and skipped.
func (h *JSONHandler) Input(ctx context.Context) (Request, error) {
	for {
		text, err := h.Reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return Request{}, err
		}

		req := parseRequest(strings.TrimSpace(text))
		clean, serr := SanitizeInput(req.Expression)
		if serr != nil {
			if werr := h.encode(Response{Type: "error", Error: serr.Error()}); werr != nil {
				return Request{}, werr
			}
			if err == io.EOF {
				return Request{}, err
			}
			continue
		}
		req.Expression = clean
		return req, nil
	}
}

func parseRequest(text string) Request {
	var req Request
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &req); err == nil {
			return req
		}
	}

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return Request{Expression: val}
	}

	// Fallback: raw text
	return Request{Expression: text}
}

// Output writes one "explanation" line.
func (h *JSONHandler) Output(ctx context.Context, exp *domain.Explanation, err error) error {
	resp := Response{Type: "explanation", Explanation: exp}
	if err != nil {
		resp.Error = err.Error()
	}
	return h.encode(resp)
}

// SystemOutput writes one "system" line.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.encode(Response{Type: "system", Message: msg})
}

func (h *JSONHandler) encode(v Response) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(v)
}
