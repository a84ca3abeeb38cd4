package runtime

import (
	"math/rand"
	"testing"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	six := int64(6)
	zero := int64(0)

	tests := []struct {
		name  string
		terms []domain.Term
		want  domain.Expression
	}{
		{
			name: "Classic",
			terms: []domain.Term{
				domain.Variable("b", 2, 1),
				domain.Variable("b", 1, -5),
				domain.Constant(6),
			},
			want: domain.Expression{
				Constant: &six,
				Terms:    []domain.Term{domain.Variable("b", 2, 1), domain.Variable("b", 1, -5)},
			},
		},
		{
			name: "Constants Summed",
			terms: []domain.Term{
				domain.Constant(2),
				domain.Variable("x", 2, 1),
				domain.Constant(4),
			},
			want: domain.Expression{
				Constant: &six,
				Terms:    []domain.Term{domain.Variable("x", 2, 1)},
			},
		},
		{
			name: "Constants Cancel To Zero Stay Present",
			terms: []domain.Term{
				domain.Constant(3),
				domain.Constant(-3),
				domain.Variable("x", 2, 1),
			},
			want: domain.Expression{
				Constant: &zero,
				Terms:    []domain.Term{domain.Variable("x", 2, 1)},
			},
		},
		{
			name: "Like Variables Summed",
			terms: []domain.Term{
				domain.Variable("x", 1, 2),
				domain.Variable("x", 2, 1),
				domain.Variable("x", 1, 3),
			},
			want: domain.Expression{
				Terms: []domain.Term{domain.Variable("x", 2, 1), domain.Variable("x", 1, 5)},
			},
		},
		{
			name: "Exponents Kept Apart",
			terms: []domain.Term{
				domain.Variable("b", 2, 1),
				domain.Variable("b", 3, 1),
			},
			want: domain.Expression{
				Terms: []domain.Term{domain.Variable("b", 3, 1), domain.Variable("b", 2, 1)},
			},
		},
		{
			name:  "Empty",
			terms: nil,
			want:  domain.Expression{Terms: []domain.Term{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.terms)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	terms := []domain.Term{
		domain.Variable("v", 16, 1),
		domain.Variable("v", 8, 50),
		domain.Constant(600),
		domain.Variable("v", 8, 8),
		domain.Constant(97),
		domain.Variable("w", 8, 1),
	}
	want := Aggregate(terms)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]domain.Term(nil), terms...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Aggregate(shuffled))
	}
}
