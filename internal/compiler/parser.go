package compiler

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/trinomial/pkg/domain"
)

var (
	constantPowerPattern = regexp.MustCompile(`^([+-]?)(\d+)\^(\d+)$`)
	constantPattern      = regexp.MustCompile(`^[+-]?\d+$`)
	variablePattern      = regexp.MustCompile(`^([+-]?\d*)([a-zA-Z])(?:\^(\d+))?$`)
)

// Normalize strips every whitespace rune from the input.
func Normalize(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}

// SplitTerms breaks an expression into signed tokens.
// Whitespace is removed, every '-' becomes "+-" and the result is split on '+',
// so each token keeps its own sign. Empty tokens are dropped.
func SplitTerms(input string) []string {
	poly := strings.ReplaceAll(Normalize(input), "-", "+-")
	raw := strings.Split(poly, "+")
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ParseTerm converts one signed token into a Term.
// It returns an error wrapping domain.ErrUnrecognizedToken when the token
// matches none of: a constant, a constant raised to a power, or a
// coefficient/letter/exponent variable term.
func ParseTerm(token string) (domain.Term, error) {
	if m := constantPowerPattern.FindStringSubmatch(token); m != nil {
		return parseConstantPower(token, m[1], m[2], m[3])
	}

	if constantPattern.MatchString(token) {
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return domain.Term{}, unrecognized(token)
		}
		return domain.Constant(v), nil
	}

	if m := variablePattern.FindStringSubmatch(token); m != nil {
		return parseVariable(token, m[1], m[2], m[3])
	}

	return domain.Term{}, unrecognized(token)
}

// Parse splits the input and parses every token.
// Any failing token aborts the whole parse with domain.ErrTokenParse.
func Parse(input string) ([]domain.Term, error) {
	tokens := SplitTerms(input)
	terms := make([]domain.Term, 0, len(tokens))
	for _, tok := range tokens {
		term, err := ParseTerm(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTokenParse, err)
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func parseConstantPower(token, sign, baseStr, expStr string) (domain.Term, error) {
	base, err := strconv.ParseInt(baseStr, 10, 64)
	if err != nil {
		return domain.Term{}, unrecognized(token)
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return domain.Term{}, unrecognized(token)
	}
	value, ok := pow(base, exp)
	if !ok {
		return domain.Term{}, fmt.Errorf("%w: %q overflows", domain.ErrUnrecognizedToken, token)
	}
	if sign == "-" {
		value = -value
	}
	return domain.Constant(value), nil
}

func parseVariable(token, coefStr, letter, expStr string) (domain.Term, error) {
	var coef int64
	switch coefStr {
	case "", "+":
		coef = 1
	case "-":
		coef = -1
	default:
		v, err := strconv.ParseInt(coefStr, 10, 64)
		if err != nil {
			return domain.Term{}, unrecognized(token)
		}
		coef = v
	}

	exp := 1
	if expStr != "" {
		v, err := strconv.Atoi(expStr)
		if err != nil || v < 1 {
			return domain.Term{}, unrecognized(token)
		}
		exp = v
	}

	return domain.Variable(letter, exp, coef), nil
}

// pow computes base^exp for non-negative operands, reporting overflow.
func pow(base, exp int64) (int64, bool) {
	if exp == 0 {
		return 1, true
	}
	if base <= 1 {
		return base, true
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		if result > math.MaxInt64/base {
			return 0, false
		}
		result *= base
	}
	return result, true
}

func unrecognized(token string) error {
	return fmt.Errorf("%w: %q", domain.ErrUnrecognizedToken, token)
}
