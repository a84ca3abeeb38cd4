package runtime

import (
	"github.com/aretw0/trinomial/pkg/domain"
)

// Classify decides which trinomial shape an aggregated expression has.
// It never fails: unsupported input yields a FormUnrecognized with a reason.
//
// A constant is required, except for a lone v^2 term which reads as v^2+0v+0.
// Rules are checked in order, so {2,1} always resolves as classic before the
// substitution rule is attempted.
func Classify(expr domain.Expression) domain.Form {
	vars := expr.Terms
	switch {
	case len(vars) == 0:
		return domain.Unrecognized(domain.ReasonNoVariable)
	case len(vars) > 2:
		return domain.Unrecognized(domain.ReasonTooManyTerms)
	case !expr.HasConstant() && !(len(vars) == 1 && vars[0].Exponent == 2):
		return domain.Unrecognized(domain.ReasonNoConstant)
	}

	c := expr.ConstantValue()

	if len(vars) == 1 {
		if vars[0].Exponent == 2 {
			return domain.Classic(vars[0].Variable, 0, c)
		}
		return domain.Unrecognized(domain.ReasonUnsupportedExponents)
	}

	hi, lo := vars[0], vars[1]
	if hi.Exponent < lo.Exponent {
		hi, lo = lo, hi
	}
	if hi.Variable != lo.Variable {
		return domain.Unrecognized(domain.ReasonMixedVariables)
	}

	if hi.Exponent == 2 && lo.Exponent == 1 {
		return domain.Classic(hi.Variable, lo.Coefficient, c)
	}
	if hi.Exponent%2 == 0 && lo.Exponent == hi.Exponent/2 {
		return domain.Substitution(hi.Variable, hi.Exponent, lo.Coefficient, c)
	}

	return domain.Unrecognized(domain.ReasonUnsupportedExponents)
}
