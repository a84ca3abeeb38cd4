package runtime

import (
	"sort"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Aggregate combines parsed terms by like kind.
// Constants are summed into a single value (nil when no constant token exists).
// Variable terms sharing a letter and an exponent have their coefficients summed;
// different exponents of the same letter stay separate.
// The result does not depend on the order of terms.
func Aggregate(terms []domain.Term) domain.Expression {
	var expr domain.Expression

	groups := make(map[domain.TermKey]int64)
	for _, t := range terms {
		if t.IsConstant() {
			sum := expr.ConstantValue() + t.Value
			expr.Constant = &sum
			continue
		}
		groups[t.Key()] += t.Coefficient
	}

	expr.Terms = make([]domain.Term, 0, len(groups))
	for key, coef := range groups {
		expr.Terms = append(expr.Terms, domain.Variable(key.Variable, key.Exponent, coef))
	}
	sort.Slice(expr.Terms, func(i, j int) bool {
		a, b := expr.Terms[i], expr.Terms[j]
		if a.Exponent != b.Exponent {
			return a.Exponent > b.Exponent
		}
		return a.Variable < b.Variable
	})

	return expr
}
