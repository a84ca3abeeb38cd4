package runtime

import (
	"testing"

	"github.com/aretw0/trinomial/internal/compiler"
	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyString(t *testing.T, input string) domain.Form {
	t.Helper()
	terms, err := compiler.Parse(input)
	require.NoError(t, err)
	return Classify(Aggregate(terms))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Form
	}{
		{"b^2-5b+6", domain.Classic("b", -5, 6)},
		{"6-5b+b^2", domain.Classic("b", -5, 6)},
		{"x^2-9", domain.Classic("x", 0, -9)},
		{"x^2", domain.Classic("x", 0, 0)},
		{"x^2+0", domain.Classic("x", 0, 0)},
		{"x^2+x-x+1", domain.Classic("x", 0, 1)},
		{"x^2+2x+3x+1+5", domain.Classic("x", 5, 6)},
		{"v^16+58v^8+697", domain.Substitution("v", 16, 58, 697)},
		{"y^4-5y^2+4", domain.Substitution("y", 4, -5, 4)},
		{"2^3+z^6+z^3", domain.Substitution("z", 6, 1, 8)},
		{"b^2+4b", domain.Unrecognized(domain.ReasonNoConstant)},
		{"7", domain.Unrecognized(domain.ReasonNoVariable)},
		{"", domain.Unrecognized(domain.ReasonNoVariable)},
		{"x^3+x^2+x+1", domain.Unrecognized(domain.ReasonTooManyTerms)},
		{"x^2+y+1", domain.Unrecognized(domain.ReasonMixedVariables)},
		{"x^3+x+1", domain.Unrecognized(domain.ReasonUnsupportedExponents)},
		{"x^6+x^2+1", domain.Unrecognized(domain.ReasonUnsupportedExponents)},
		{"x^4+1", domain.Unrecognized(domain.ReasonUnsupportedExponents)},
		{"x+1", domain.Unrecognized(domain.ReasonUnsupportedExponents)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyString(t, tt.input))
		})
	}
}

func TestClassify_UnsortedInput(t *testing.T) {
	c := int64(6)
	form := Classify(domain.Expression{
		Constant: &c,
		Terms:    []domain.Term{domain.Variable("b", 1, -5), domain.Variable("b", 2, 1)},
	})
	assert.Equal(t, domain.Classic("b", -5, 6), form)
}

func TestClassify_RoundTrip(t *testing.T) {
	for m := int64(-12); m <= 12; m++ {
		for n := int64(-12); n <= 12; n++ {
			b, c := m+n, m*n
			form := Classify(domain.Expression{
				Constant: &c,
				Terms:    []domain.Term{domain.Variable("v", 2, 1), domain.Variable("v", 1, b)},
			})
			require.Equal(t, domain.FormClassic, form.Kind)

			pair := FindFactors(form.B, form.C)
			require.NotNil(t, pair, "m=%d n=%d", m, n)
			assert.ElementsMatch(t, []int64{m, n}, []int64{pair.M, pair.N}, "m=%d n=%d", m, n)
		}
	}
}
