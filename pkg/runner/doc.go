/*
Package runner implements the interactive loop around the trinomial engine.

It reads expressions through a pluggable IOHandler, factors them and writes the
explanation back. Two handlers ship with the package:

  - TextHandler: prompt-driven terminal use, optionally rendering Markdown.
  - JSONHandler: one JSON request per line in, one JSON response per line out (NDJSON).

# Usage

	r := runner.NewRunner(engine,
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithNotation(domain.NotationPlain),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}

Typing "exit" or "quit", or closing the input, ends the loop.
*/
package runner
