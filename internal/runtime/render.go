package runtime

import (
	"fmt"
	"strconv"

	"github.com/aretw0/trinomial/pkg/domain"
)

// formatter writes formulas in one notation.
type formatter struct {
	notation domain.Notation
}

func newFormatter(n domain.Notation) formatter {
	if n != domain.NotationPlain {
		n = domain.NotationLaTeX
	}
	return formatter{notation: n}
}

func (f formatter) latex() bool { return f.notation == domain.NotationLaTeX }

// power renders v^exp, dropping the exponent when it is 1.
func (f formatter) power(v string, exp int) string {
	switch {
	case exp == 1:
		return v
	case f.latex() && exp > 9:
		return fmt.Sprintf("%s^{%d}", v, exp)
	default:
		return fmt.Sprintf("%s^%d", v, exp)
	}
}

func (f formatter) times() string {
	if f.latex() {
		return ` \cdot `
	}
	return " * "
}

func (f formatter) sep() string {
	if f.latex() {
		return `, \; `
	}
	return ", "
}

// trinomial renders lead + b*inner + c, e.g. b^2-5b+6.
func (f formatter) trinomial(lead, inner string, b, c int64) string {
	return lead + signed(b) + inner + signed(c)
}

// product renders (base+m)(base+n).
func (f formatter) product(base string, p *domain.FactorPair) string {
	return fmt.Sprintf("(%s%s)(%s%s)", base, signed(p.M), base, signed(p.N))
}

// shapes renders the two supported general forms.
func (f formatter) shapes() (classic, substitution string) {
	if f.latex() {
		return "v^2 + bv + c", "v^{2k} + bv^{k} + c"
	}
	return "v^2 + bv + c", "v^(2k) + bv^k + c"
}

func (f formatter) goals(b, c int64) []string {
	return []string{
		fmt.Sprintf("m + n = %d", b),
		fmt.Sprintf("m%sn = %d", f.times(), c),
	}
}

func (f formatter) pair(p *domain.FactorPair, b, c int64) []string {
	return []string{
		fmt.Sprintf("m = %d%sn = %d", p.M, f.sep(), p.N),
		fmt.Sprintf("%d + %s = %d", p.M, paren(p.N), b),
		fmt.Sprintf("%d%s%s = %d", p.M, f.times(), paren(p.N), c),
	}
}

// signed renders a number with an explicit sign: 5 -> "+5", -3 -> "-3".
func signed(n int64) string {
	if n >= 0 {
		return "+" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

func paren(n int64) string {
	if n < 0 {
		return fmt.Sprintf("(%d)", n)
	}
	return strconv.FormatInt(n, 10)
}

const noIntegerPair = "No integers m and n satisfy both conditions, so the trinomial does not factor over the integers."

// Explain assembles the derivation steps for a recognized form.
// pair may be nil when the factor search found nothing; the steps then stop
// at the failed search and Solved is false.
func Explain(form domain.Form, pair *domain.FactorPair, notation domain.Notation) *domain.Explanation {
	f := newFormatter(notation)
	exp := &domain.Explanation{
		Notation: f.notation,
		Form:     form,
		Factors:  pair,
		Solved:   pair != nil,
	}

	switch form.Kind {
	case domain.FormClassic:
		exp.Steps = explainClassic(f, form, pair)
	case domain.FormSubstitution:
		exp.Steps = explainSubstitution(f, form, pair)
	default:
		return ExplainUnrecognized(form, notation)
	}

	if pair != nil {
		plain := newFormatter(domain.NotationPlain)
		exp.Factored = plain.product(plain.power(form.Variable, form.InnerExponent), pair)
	}
	return exp
}

func explainClassic(f formatter, form domain.Form, pair *domain.FactorPair) []domain.Step {
	v := form.Variable
	expr := f.trinomial(f.power(v, 2), v, form.B, form.C)

	steps := []domain.Step{
		{
			Label:    "Identify the variable and coefficients",
			Formulas: []string{expr, fmt.Sprintf("a = 1%sb = %d%sc = %d", f.sep(), form.B, f.sep(), form.C)},
		},
		{
			Label:    "Find two numbers m and n such that",
			Formulas: f.goals(form.B, form.C),
		},
	}

	if pair == nil {
		return append(steps, domain.Step{Label: "Search for an integer pair", Note: noIntegerPair})
	}

	return append(steps,
		domain.Step{Label: "Integer pair found", Formulas: f.pair(pair, form.B, form.C)},
		domain.Step{Label: "Final factorization", Formulas: []string{expr + " = " + f.product(v, pair)}},
	)
}

func substitutionShape(f formatter) string {
	_, s := f.shapes()
	return s
}

func explainSubstitution(f formatter, form domain.Form, pair *domain.FactorPair) []domain.Step {
	v, k := form.Variable, form.InnerExponent
	outer, inner := f.power(v, form.OuterExponent), f.power(v, k)
	expr := f.trinomial(outer, inner, form.B, form.C)
	inW := f.trinomial(f.power("w", 2), "w", form.B, form.C)

	steps := []domain.Step{
		{
			Label:    "Reorder the expression",
			Formulas: []string{expr, fmt.Sprintf("k = %d", k)},
			Note:     fmt.Sprintf("The expression has the form %s with k = %d.", substitutionShape(f), k),
		},
		{
			Label:    "Substitute",
			Formulas: []string{"w = " + inner, outer + " = " + f.power("w", 2)},
		},
		{
			Label:    "Rewrite as a quadratic in w",
			Formulas: []string{inW},
		},
	}

	if pair == nil {
		return append(steps, domain.Step{
			Label:    "Factor the trinomial in w",
			Formulas: f.goals(form.B, form.C),
			Note:     noIntegerPair,
		})
	}

	factorW := append(f.goals(form.B, form.C), f.pair(pair, form.B, form.C)[0], inW+" = "+f.product("w", pair))
	return append(steps,
		domain.Step{Label: "Factor the trinomial in w", Formulas: factorW},
		domain.Step{
			Label:    "Back-substitute",
			Formulas: []string{"w = " + inner, expr + " = " + f.product(inner, pair)},
		},
	)
}

// ExplainUnrecognized renders the single explanatory step for an unsupported shape.
func ExplainUnrecognized(form domain.Form, notation domain.Notation) *domain.Explanation {
	f := newFormatter(notation)
	classic, substitution := f.shapes()
	msg := fmt.Sprintf("The expression does not match a supported shape: %s. "+
		"Expected a constant term and one or two variable terms.", form.Reason.Describe())
	return &domain.Explanation{
		Notation: f.notation,
		Form:     form,
		Steps: []domain.Step{{
			Label:    "Unrecognized expression",
			Formulas: []string{classic, substitution},
			Note:     msg,
		}},
		Failure: &domain.Failure{Kind: domain.FailureShapeMismatch, Reason: form.Reason, Message: msg},
	}
}

// ExplainFailure renders a single error step for failures that happen before
// the form is known.
// form is domain.Unrecognized("") for token errors.
func ExplainFailure(kind domain.FailureKind, message string, form domain.Form, notation domain.Notation) *domain.Explanation {
	return &domain.Explanation{
		Notation: newFormatter(notation).notation,
		Form:     form,
		Steps:    []domain.Step{{Label: "Check the format", Note: message}},
		Failure:  &domain.Failure{Kind: kind, Message: message},
	}
}

// ExplainSearchRefused keeps the restate and goal steps of a recognized form
// and replaces the search step with the refusal.
func ExplainSearchRefused(form domain.Form, message string, notation domain.Notation) *domain.Explanation {
	exp := Explain(form, nil, notation)
	if exp.Failure != nil {
		return exp
	}
	last := &exp.Steps[len(exp.Steps)-1]
	last.Label = "Constant term too large"
	last.Note = message
	exp.Failure = &domain.Failure{Kind: domain.FailureSearchLimit, Message: message}
	return exp
}
