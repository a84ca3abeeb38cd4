package domain

import "errors"

// ErrTokenParse is returned when one or more terms match no token grammar.
var ErrTokenParse = errors.New("could not parse the expression, check the format")

// ErrUnrecognizedToken is returned by the term parser for a single bad token.
var ErrUnrecognizedToken = errors.New("unrecognized token")

// ErrShapeMismatch is returned when the terms fit neither supported trinomial shape.
var ErrShapeMismatch = errors.New("expression is not of the form v^2+bv+c or v^(2k)+bv^k+c")

// ErrSearchLimit is returned when |c| exceeds the configured search bound.
var ErrSearchLimit = errors.New("constant term exceeds the factor search limit")

// ErrRecordNotFound is returned when a key cannot be found in a result store.
var ErrRecordNotFound = errors.New("record not found")

// ErrInputTooLarge is returned when raw input exceeds the configured size.
var ErrInputTooLarge = errors.New("input exceeds maximum allowed size")

// ErrInvalidUTF8 is returned when raw input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")

// ErrExerciseNotFound is returned when a worksheet has no exercise with the given ID.
var ErrExerciseNotFound = errors.New("exercise not found")
