package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler_Output(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	exp := &domain.Explanation{Input: "b^2+4b", Form: domain.Unrecognized(domain.ReasonNoConstant)}
	require.NoError(t, handler.Output(context.Background(), exp, domain.ErrShapeMismatch))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "Should be a single line of JSON")

	var decoded Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "explanation", decoded.Type)
	assert.Equal(t, domain.ErrShapeMismatch.Error(), decoded.Error)
	require.NotNil(t, decoded.Explanation)
	assert.Equal(t, domain.ReasonNoConstant, decoded.Explanation.Form.Reason)
}

func TestJSONHandler_Input(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Request
	}{
		{"Object", `{"expression": "x^2-1", "notation": "plain"}`, Request{Expression: "x^2-1", Notation: "plain"}},
		{"JSON String", `"v^4+2v^2+1"`, Request{Expression: "v^4+2v^2+1"}},
		{"Raw Text", `b^2-5b+6`, Request{Expression: "b^2-5b+6"}},
		{"Broken Object", `{"expression":`, Request{Expression: `{"expression":`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewJSONHandler(strings.NewReader(tt.line+"\n"), io.Discard)
			got, err := handler.Input(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			_, err = handler.Input(context.Background())
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestJSONHandler_InputWithoutTrailingNewline(t *testing.T) {
	handler := NewJSONHandler(strings.NewReader("x^2-1"), io.Discard)

	got, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x^2-1", got.Expression)
}

func TestJSONHandler_InputRejected(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "6")
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader("x^2+5x+6\nx^2-1\n"), buf)

	got, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x^2-1", got.Expression)
	assert.Contains(t, buf.String(), `"type":"error"`)
}

func TestJSONHandler_SystemOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	require.NoError(t, handler.SystemOutput(context.Background(), "ready"))
	assert.JSONEq(t, `{"type":"system","message":"ready"}`, buf.String())
}
