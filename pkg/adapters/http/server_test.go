package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/trinomial"
	"github.com/aretw0/trinomial/pkg/adapters/memory"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, http.Handler) {
	t.Helper()
	streams := NewStreamManager()
	eng := trinomial.New(
		trinomial.WithStore(memory.NewStore()),
		trinomial.WithSearchLimit(1_000_000),
		trinomial.WithLifecycleHooks(streams.Hooks()),
	)
	srv, err := NewServer(eng, append([]Option{WithStreams(streams), WithLogger(testLogger())}, opts...)...)
	require.NoError(t, err)
	return srv, srv.Handler()
}

func decodeFactor(t *testing.T, w *httptest.ResponseRecorder) FactorResponse {
	t.Helper()
	var resp FactorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", spec.Info.Version)
	assert.NotNil(t, spec.Paths.Find("/factor"))
}

func TestPostFactor(t *testing.T) {
	_, handler := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		status   int
		factored string
		errPart  string
	}{
		{"Classic", `{"expression": "b^2-5b+6", "notation": "plain"}`, http.StatusOK, "(b-3)(b-2)", ""},
		{"Substitution", `{"expression": "v^16+58v^8+697"}`, http.StatusOK, "(v^8+17)(v^8+41)", ""},
		{"Unsolved", `{"expression": "x^2+5x+7"}`, http.StatusOK, "", ""},
		{"Shape Mismatch", `{"expression": "b^2+4b"}`, http.StatusUnprocessableEntity, "", "no constant"},
		{"Bad Token", `{"expression": "x^2+5x+6?"}`, http.StatusUnprocessableEntity, "", "check the format"},
		{"Search Limit", `{"expression": "x^2+x+99999999"}`, http.StatusUnprocessableEntity, "", "search limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/factor", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeFactor(t, w)
			require.NotNil(t, resp.Explanation)
			assert.Equal(t, tt.factored, resp.Explanation.Factored)
			if tt.errPart != "" {
				assert.Contains(t, resp.Error, tt.errPart)
			} else {
				assert.Empty(t, resp.Error)
			}
		})
	}
}

func TestPostFactor_BadRequests(t *testing.T) {
	_, handler := newTestServer(t)

	for name, body := range map[string]string{
		"Invalid JSON":     `{"expression":`,
		"Empty Expression": `{"expression": "  "}`,
		"Too Large":        `{"expression": "` + strings.Repeat("x", 5000) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/factor", strings.NewReader(body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestGetFactor(t *testing.T) {
	_, handler := newTestServer(t)

	q := url.Values{"expression": {"x^2 + 7x + 12"}, "notation": {"plain"}}
	req := httptest.NewRequest("GET", "/factor?"+q.Encode(), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeFactor(t, w)
	assert.Equal(t, "(x+3)(x+4)", resp.Explanation.Factored)
	assert.Equal(t, domain.NotationPlain, resp.Explanation.Notation)
}

func TestGetFactor_MissingExpression(t *testing.T) {
	_, handler := newTestServer(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/factor", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory(t *testing.T) {
	_, handler := newTestServer(t)

	for _, expr := range []string{"x^2-1", "b^2-5b+6"} {
		body, _ := json.Marshal(FactorRequest{Expression: expr})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/factor", bytes.NewReader(body)))
		require.Equal(t, http.StatusOK, w.Code)
		time.Sleep(2 * time.Millisecond)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/history", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var records []*domain.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "b^2-5b+6", records[0].Key)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/history/"+url.PathEscape("x^2-1"), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/history", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "b^2-5b+6", records[0].Key)
}

func TestHealthAndInfo(t *testing.T) {
	_, handler := newTestServer(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "trinomial-http", info["app"])
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, strings.TrimSpace(trinomial.Version), info["version"])

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.yaml", nil))
	assert.Contains(t, w.Body.String(), "Trinomial API")
}

func TestCORS(t *testing.T) {
	_, handler := newTestServer(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/factor", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsRoute(t *testing.T) {
	_, without := newTestServer(t)
	w := httptest.NewRecorder()
	without.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("trinomial_requests_total 1"))
	})
	_, with := newTestServer(t, WithMetricsHandler(metrics))
	w = httptest.NewRecorder()
	with.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, "trinomial_requests_total 1", w.Body.String())
}

func TestSubscribeEvents(t *testing.T) {
	_, handler := newTestServer(t)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", ts.URL+"/events?form=substitution", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	// A classic result is filtered out; the substitution one is delivered.
	for _, expr := range []string{"x^2-1", "v^4+2v^2+1"} {
		body, _ := json.Marshal(FactorRequest{Expression: expr})
		r, err := http.Post(ts.URL+"/factor", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		r.Body.Close()
	}

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			break
		}
	}
	var exp domain.Explanation
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &exp))
	assert.Equal(t, domain.FormSubstitution, exp.Form.Kind)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(nil))
	assert.Equal(t, http.StatusBadRequest, StatusFor(domain.ErrInvalidUTF8))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("redis down")))
}
