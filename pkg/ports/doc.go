/*
Package ports defines the ports (interfaces) around the trinomial engine.

The core factorizer is pure; ports only cover what surrounds it, so results can be
cached and listed by any storage backend and worksheets can come from any source.

# Key Interfaces

  - Factorer: the engine surface the driving adapters call.
  - ResultStore: persists explanations keyed by their normalized expression.
  - ExerciseLoader: reads worksheet exercises for batch grading.
*/
package ports
