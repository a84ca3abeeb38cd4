package runtime

import (
	"math"
	"testing"

	"github.com/aretw0/trinomial/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFactors(t *testing.T) {
	tests := []struct {
		name string
		b, c int64
		want *domain.FactorPair
	}{
		{"Most Negative m First", -5, 6, &domain.FactorPair{M: -3, N: -2}},
		{"Positive Pair", 58, 697, &domain.FactorPair{M: 17, N: 41}},
		{"Mixed Signs", 1, -6, &domain.FactorPair{M: -2, N: 3}},
		{"Zero Product", 7, 0, &domain.FactorPair{M: 0, N: 7}},
		{"All Zero", 0, 0, &domain.FactorPair{M: 0, N: 0}},
		{"Difference Of Squares", 0, -9, &domain.FactorPair{M: -3, N: 3}},
		{"Perfect Square", 4, 4, &domain.FactorPair{M: 2, N: 2}},
		{"No Pair", 5, 99999999, nil},
		{"No Real Root", 0, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindFactors(tt.b, tt.c))
		})
	}
}

func TestFindFactors_SatisfiesConstraints(t *testing.T) {
	for b := int64(-20); b <= 20; b++ {
		for c := int64(-40); c <= 40; c++ {
			pair := FindFactors(b, c)
			if pair == nil {
				continue
			}
			require.Equal(t, b, pair.M+pair.N, "b=%d c=%d", b, c)
			require.Equal(t, c, pair.M*pair.N, "b=%d c=%d", b, c)
			// No valid m below the returned one.
			for m := -abs64(c); m < pair.M; m++ {
				require.NotEqual(t, c, m*(b-m), "smaller m=%d valid for b=%d c=%d", m, b, c)
			}
		}
	}
}

func TestFindFactors_ZeroConstantAlwaysSolves(t *testing.T) {
	for _, b := range []int64{-100, -1, 0, 1, 100, math.MaxInt64, math.MinInt64} {
		assert.Equal(t, &domain.FactorPair{M: 0, N: b}, FindFactors(b, 0), "b=%d", b)
	}
}

func TestFindFactors_OverflowSafe(t *testing.T) {
	assert.Nil(t, FindFactors(0, math.MinInt64))
	assert.Nil(t, FindFactors(math.MaxInt64, 3))
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b int64
		want int64
		ok   bool
	}{
		{3, 4, 12, true},
		{-3, 4, -12, true},
		{-3, -4, 12, true},
		{math.MaxInt64, 2, 0, false},
		{math.MinInt64, 1, math.MinInt64, true},
		{math.MinInt64, -1, 0, false},
		{1 << 32, 1 << 31, 0, false},
		{-(1 << 32), 1 << 31, math.MinInt64, true},
	}
	for _, tt := range tests {
		got, ok := mul(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%d*%d", tt.a, tt.b)
		if tt.ok {
			assert.Equal(t, tt.want, got, "%d*%d", tt.a, tt.b)
		}
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
