package runtime

import (
	"testing"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain_Classic(t *testing.T) {
	exp := Explain(domain.Classic("b", -5, 6), &domain.FactorPair{M: -3, N: -2}, domain.NotationLaTeX)

	require.True(t, exp.Solved)
	assert.Equal(t, "(b-3)(b-2)", exp.Factored)
	require.Len(t, exp.Steps, 4)

	assert.Equal(t, []string{"b^2-5b+6", `a = 1, \; b = -5, \; c = 6`}, exp.Steps[0].Formulas)
	assert.Equal(t, []string{"m + n = -5", `m \cdot n = 6`}, exp.Steps[1].Formulas)
	assert.Equal(t, []string{`m = -3, \; n = -2`, "-3 + (-2) = -5", `-3 \cdot (-2) = 6`}, exp.Steps[2].Formulas)
	assert.Equal(t, []string{"b^2-5b+6 = (b-3)(b-2)"}, exp.Steps[3].Formulas)
	assert.Nil(t, exp.Failure)
}

func TestExplain_ClassicUnsolved(t *testing.T) {
	exp := Explain(domain.Classic("x", 5, 99999999), nil, domain.NotationPlain)

	assert.False(t, exp.Solved)
	assert.Empty(t, exp.Factored)
	require.Len(t, exp.Steps, 3)
	assert.Equal(t, []string{"m + n = 5", "m * n = 99999999"}, exp.Steps[1].Formulas)
	assert.Equal(t, noIntegerPair, exp.Steps[2].Note)
	assert.Nil(t, exp.Failure)
}

func TestExplain_Substitution(t *testing.T) {
	form := domain.Substitution("v", 16, 58, 697)
	pair := &domain.FactorPair{M: 17, N: 41}

	t.Run("LaTeX", func(t *testing.T) {
		exp := Explain(form, pair, domain.NotationLaTeX)
		require.Len(t, exp.Steps, 5)
		assert.Equal(t, "v^{16}+58v^8+697", exp.Steps[0].Formulas[0])
		assert.Equal(t, []string{"w = v^8", "v^{16} = w^2"}, exp.Steps[1].Formulas)
		assert.Equal(t, []string{"w^2+58w+697"}, exp.Steps[2].Formulas)
		assert.Contains(t, exp.Steps[3].Formulas, "w^2+58w+697 = (w+17)(w+41)")
		assert.Equal(t, "v^{16}+58v^8+697 = (v^8+17)(v^8+41)", exp.Steps[4].Formulas[1])
		assert.Equal(t, "(v^8+17)(v^8+41)", exp.Factored)
	})

	t.Run("Plain", func(t *testing.T) {
		exp := Explain(form, pair, domain.NotationPlain)
		assert.Equal(t, "v^16+58v^8+697 = (v^8+17)(v^8+41)", exp.Steps[4].Formulas[1])
		assert.Equal(t, domain.NotationPlain, exp.Notation)
	})

	t.Run("Unsolved", func(t *testing.T) {
		exp := Explain(domain.Substitution("y", 4, 1, 1), nil, domain.NotationPlain)
		require.Len(t, exp.Steps, 4)
		assert.False(t, exp.Solved)
		assert.Equal(t, noIntegerPair, exp.Steps[3].Note)
	})
}

func TestExplain_UnrecognizedDelegates(t *testing.T) {
	exp := Explain(domain.Unrecognized(domain.ReasonNoConstant), nil, domain.NotationLaTeX)
	require.Len(t, exp.Steps, 1)
	require.NotNil(t, exp.Failure)
	assert.Equal(t, domain.FailureShapeMismatch, exp.Failure.Kind)
	assert.Equal(t, domain.ReasonNoConstant, exp.Failure.Reason)
	assert.Contains(t, exp.Steps[0].Note, "no constant term")
}

func TestExplainFailure(t *testing.T) {
	exp := ExplainFailure(domain.FailureTokenParse, "bad", domain.Unrecognized(""), "")
	assert.Equal(t, domain.NotationLaTeX, exp.Notation)
	require.Len(t, exp.Steps, 1)
	assert.Equal(t, "Check the format", exp.Steps[0].Label)
	assert.Equal(t, "bad", exp.Failure.Message)
}

func TestExplainSearchRefused(t *testing.T) {
	t.Run("classic keeps restate and goals", func(t *testing.T) {
		exp := ExplainSearchRefused(domain.Classic("x", 5, 99999999), "too big", domain.NotationPlain)
		require.Len(t, exp.Steps, 3)
		assert.Equal(t, "Identify the variable and coefficients", exp.Steps[0].Label)
		assert.Equal(t, "Find two numbers m and n such that", exp.Steps[1].Label)
		assert.Equal(t, "Constant term too large", exp.Steps[2].Label)
		assert.Equal(t, "too big", exp.Steps[2].Note)
		assert.False(t, exp.Solved)
		require.NotNil(t, exp.Failure)
		assert.Equal(t, domain.FailureSearchLimit, exp.Failure.Kind)
	})

	t.Run("substitution keeps the rewrite", func(t *testing.T) {
		exp := ExplainSearchRefused(domain.Substitution("v", 16, 58, 99999999), "too big", domain.NotationPlain)
		require.Len(t, exp.Steps, 4)
		assert.Equal(t, "Rewrite as a quadratic in w", exp.Steps[2].Label)
		assert.Equal(t, "Constant term too large", exp.Steps[3].Label)
		assert.NotEmpty(t, exp.Steps[3].Formulas)
	})

	t.Run("unrecognized form stays a shape failure", func(t *testing.T) {
		exp := ExplainSearchRefused(domain.Unrecognized(domain.ReasonNoConstant), "too big", domain.NotationPlain)
		assert.Equal(t, domain.FailureShapeMismatch, exp.Failure.Kind)
	})
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+5", signed(5))
	assert.Equal(t, "+0", signed(0))
	assert.Equal(t, "-3", signed(-3))
}
