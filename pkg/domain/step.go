package domain

import (
	"time"
)

// Notation selects how formulas are written.
type Notation string

const (
	// NotationLaTeX emits math markup suitable for MathJax/KaTeX.
	NotationLaTeX Notation = "latex"
	// NotationPlain emits ASCII formulas for terminals and chat.
	NotationPlain Notation = "plain"
)

// ParseNotation maps user input to a Notation, defaulting to LaTeX.
func ParseNotation(s string) Notation {
	if Notation(s) == NotationPlain {
		return NotationPlain
	}
	return NotationLaTeX
}

// Step is one derivation step: a label, its formulas and an optional note.
type Step struct {
	Label    string   `json:"label"`
	Formulas []string `json:"formulas,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// FailureKind classifies explanatory failures.
type FailureKind string

const (
	FailureTokenParse    FailureKind = "token_parse"
	FailureShapeMismatch FailureKind = "shape_mismatch"
	FailureSearchLimit   FailureKind = "search_limit"
)

// Failure describes why no derivation could be produced.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Reason  Reason      `json:"reason,omitempty"`
	Message string      `json:"message"`
}

// Explanation is the full answer for one input string.
type Explanation struct {
	Input      string      `json:"input"`
	Normalized string      `json:"normalized"`
	Notation   Notation    `json:"notation"`
	Form       Form        `json:"form"`
	Factors    *FactorPair `json:"factors,omitempty"`
	Solved     bool        `json:"solved"`
	Factored   string      `json:"factored,omitempty"`
	Steps      []Step      `json:"steps"`
	Failure    *Failure    `json:"failure,omitempty"`
}

// Record is a stored explanation, keyed by its normalized input.
type Record struct {
	ID          string       `json:"id"`
	Key         string       `json:"key"`
	Explanation *Explanation `json:"explanation"`
	CreatedAt   time.Time    `json:"created_at"`
}
