/*
Package trinomial factors monic trinomials over the integers and explains the result step by step.

Two shapes are recognized:

  - classic: v^2 + b*v + c
  - substitution: v^(2k) + b*v^k + c, solved through w = v^k

The input is split into signed terms, like terms are summed, the shape is classified and an
integer pair (m, n) with m + n = b and m * n = c is searched for. The answer is an
Explanation: a list of labelled steps holding formulas, ready for any front-end to render.

# Usage

	exp, err := trinomial.Factor("b^2-5b+6")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(exp.Factored) // (b-3)(b-2)

For services, build an Engine with a result store and hooks:

	eng := trinomial.New(
		trinomial.WithStore(memory.NewStore()),
		trinomial.WithSearchLimit(1_000_000),
		trinomial.WithLogger(slog.Default()),
	)
	exp, err := eng.Factor(ctx, "v^16+58v^8+697")

Failures to parse or classify still return an Explanation with a single step describing
the problem, together with an error wrapping domain.ErrTokenParse or domain.ErrShapeMismatch.
An expression with the right shape but no integer pair is not an error: Solved is false.

The cmd/trinomial binary exposes the same engine as a CLI, a REPL, an HTTP API, an MCP
server and a Telegram bot.
*/
package trinomial
