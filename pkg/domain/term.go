package domain

import "fmt"

// TermKind discriminates the Term union.
type TermKind string

const (
	TermConstant TermKind = "constant"
	TermVariable TermKind = "variable"
)

// Term is a single signed token of an expression.
// Constant terms only use Value; variable terms use Variable, Exponent and Coefficient.
type Term struct {
	Kind        TermKind `json:"kind"`
	Value       int64    `json:"value,omitempty"`
	Variable    string   `json:"variable,omitempty"`
	Exponent    int      `json:"exponent,omitempty"`
	Coefficient int64    `json:"coefficient,omitempty"`
}

// Constant builds a constant term.
func Constant(value int64) Term {
	return Term{Kind: TermConstant, Value: value}
}

// Variable builds a variable power term. Exponent must be at least 1.
func Variable(variable string, exponent int, coefficient int64) Term {
	return Term{Kind: TermVariable, Variable: variable, Exponent: exponent, Coefficient: coefficient}
}

// IsConstant reports whether the term is a constant.
func (t Term) IsConstant() bool { return t.Kind == TermConstant }

// Key identifies like variable terms.
func (t Term) Key() TermKey {
	return TermKey{Variable: t.Variable, Exponent: t.Exponent}
}

func (t Term) String() string {
	if t.IsConstant() {
		return fmt.Sprintf("%d", t.Value)
	}
	if t.Exponent == 1 {
		return fmt.Sprintf("%d%s", t.Coefficient, t.Variable)
	}
	return fmt.Sprintf("%d%s^%d", t.Coefficient, t.Variable, t.Exponent)
}

// TermKey groups variable terms that can be summed.
type TermKey struct {
	Variable string
	Exponent int
}
