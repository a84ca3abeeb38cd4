package domain

// FormKind names the recognized trinomial shapes.
type FormKind string

const (
	// FormClassic is v^2 + b*v + c (b may be zero).
	FormClassic FormKind = "classic"
	// FormSubstitution is v^(2k) + b*v^k + c, reducible through w = v^k.
	FormSubstitution FormKind = "substitution"
	// FormUnrecognized means neither shape applies; Reason says why.
	FormUnrecognized FormKind = "unrecognized"
)

// Reason explains why an expression was not recognized.
type Reason string

const (
	ReasonNoVariable           Reason = "no_variable"
	ReasonNoConstant           Reason = "no_constant"
	ReasonTooManyTerms         Reason = "too_many_terms"
	ReasonMixedVariables       Reason = "mixed_variables"
	ReasonUnsupportedExponents Reason = "unsupported_exponents"
)

// Describe returns a human readable description of the reason.
func (r Reason) Describe() string {
	switch r {
	case ReasonNoVariable:
		return "no variable term was found"
	case ReasonNoConstant:
		return "no constant term was found"
	case ReasonTooManyTerms:
		return "there are more than two distinct variable terms"
	case ReasonMixedVariables:
		return "the variable terms use different letters"
	case ReasonUnsupportedExponents:
		return "the exponents are neither 2 and 1 nor 2k and k"
	default:
		return "the expression does not match a supported shape"
	}
}

// Form is the classified shape of an expression.
//
// Classic forms have OuterExponent 2 and InnerExponent 1.
// Substitution forms have OuterExponent 2k and InnerExponent k.
// Unrecognized forms only carry a Reason.
type Form struct {
	Kind          FormKind `json:"kind"`
	Variable      string   `json:"variable,omitempty"`
	OuterExponent int      `json:"outer_exponent,omitempty"`
	InnerExponent int      `json:"inner_exponent,omitempty"`
	B             int64    `json:"b"`
	C             int64    `json:"c"`
	Reason        Reason   `json:"reason,omitempty"`
}

// Classic builds a classic form.
func Classic(variable string, b, c int64) Form {
	return Form{Kind: FormClassic, Variable: variable, OuterExponent: 2, InnerExponent: 1, B: b, C: c}
}

// Substitution builds a substitution form with outer exponent 2k.
func Substitution(variable string, outer int, b, c int64) Form {
	return Form{Kind: FormSubstitution, Variable: variable, OuterExponent: outer, InnerExponent: outer / 2, B: b, C: c}
}

// Unrecognized builds a failed classification.
func Unrecognized(reason Reason) Form {
	return Form{Kind: FormUnrecognized, Reason: reason}
}

// Recognized reports whether the form is one of the supported shapes.
func (f Form) Recognized() bool { return f.Kind != FormUnrecognized }

// FactorPair holds integers with M+N = b and M*N = c.
type FactorPair struct {
	M int64 `json:"m"`
	N int64 `json:"n"`
}
