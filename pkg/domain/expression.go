package domain

// Expression is the result of combining parsed terms by like kind.
// Within one expression no two Terms share the same (Variable, Exponent).
type Expression struct {
	// Constant is nil when the input had no constant token at all,
	// which is different from constants that sum to zero.
	Constant *int64 `json:"constant,omitempty"`

	// Terms holds the variable terms, highest exponent first.
	Terms []Term `json:"terms"`
}

// HasConstant reports whether any constant token was present.
func (e Expression) HasConstant() bool { return e.Constant != nil }

// ConstantValue returns the combined constant, or 0 when absent.
func (e Expression) ConstantValue() int64 {
	if e.Constant == nil {
		return 0
	}
	return *e.Constant
}
