package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/trinomial/pkg/domain"
)

// Markdown renders an explanation as a Markdown document.
// LaTeX formulas are wrapped in $...$, plain formulas in code spans.
func Markdown(exp *domain.Explanation) string {
	if exp == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", formula(exp.Notation, exp.Normalized))

	for i, step := range exp.Steps {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, step.Label)
		for _, f := range step.Formulas {
			fmt.Fprintf(&b, "- %s\n", formula(exp.Notation, f))
		}
		if len(step.Formulas) > 0 {
			b.WriteString("\n")
		}
		if step.Note != "" {
			fmt.Fprintf(&b, "> %s\n\n", step.Note)
		}
	}

	if exp.Solved {
		fmt.Fprintf(&b, "**Result:** `%s`\n", exp.Factored)
	}
	return b.String()
}

func formula(n domain.Notation, s string) string {
	if s == "" {
		return ""
	}
	if n == domain.NotationLaTeX {
		return "$" + s + "$"
	}
	return "`" + s + "`"
}
