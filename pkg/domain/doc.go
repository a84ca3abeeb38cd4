/*
Package domain contains the core value types of the trinomial factorizer.

Everything here is plain data: terms produced by the parser, the aggregated expression,
the classified shape, the factor pair and the explanation handed to presentation layers.
The package has no I/O and no external dependencies.

# Key Entities

  - Term: a parsed token, either a constant or a variable power.
  - Expression: terms combined by like kind (constant summed, variables keyed by letter and exponent).
  - Form: the recognized shape (classic, substitution) or the reason it was not recognized.
  - FactorPair: integers m, n with m+n = b and m*n = c.
  - Explanation: ordered derivation steps for one request.
  - Record: a persisted explanation, used by result stores.
  - Exercise, Grade: a worksheet entry and the outcome of factoring it.
*/
package domain
