package runtime

import (
	"math"
	"math/bits"

	"github.com/aretw0/trinomial/pkg/domain"
)

// FindFactors returns the first pair (m, n) with m+n = b and m*n = c,
// scanning m upward over [-|c|, |c|]. It returns nil when no pair exists.
//
// Any integer factor of a nonzero c has magnitude at most |c|, and c = 0
// degenerates to the single candidate m = 0, n = b. The scan is linear in |c|
// and only meant for small hand-entered constants; callers facing untrusted
// input should bound |c| first (see WithSearchLimit).
func FindFactors(b, c int64) *domain.FactorPair {
	limit, ok := abs(c)
	if !ok {
		return nil
	}
	for m := -limit; ; m++ {
		n, ok := sub(b, m)
		if ok {
			if p, ok := mul(m, n); ok && p == c {
				return &domain.FactorPair{M: m, N: n}
			}
		}
		if m == limit {
			return nil
		}
	}
}

func abs(v int64) (int64, bool) {
	if v == math.MinInt64 {
		return 0, false
	}
	if v < 0 {
		return -v, true
	}
	return v, true
}

func sub(a, b int64) (int64, bool) {
	r := a - b
	if (b > 0 && r > a) || (b < 0 && r < a) {
		return 0, false
	}
	return r, true
}

func mul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	neg := (a < 0) != (b < 0)
	ua, uab := uabs(a), uabs(b)
	hi, lo := bits.Mul64(ua, uab)
	if hi != 0 {
		return 0, false
	}
	if neg {
		if lo > 1<<63 {
			return 0, false
		}
		return int64(-lo), true
	}
	if lo > math.MaxInt64 {
		return 0, false
	}
	return int64(lo), true
}

func uabs(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}
