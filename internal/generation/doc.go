// Package generation implements the flashcard generation pipeline: a
// pure prompt builder and an orchestrator that drives a ranked
// model-fallback loop against an external LLM backend.
//
// The package owns the boundary interfaces it consumes (settings,
// content extraction, model invocation), following the hexagonal
// architecture pattern: platform packages implement them, this package
// never imports them.
package generation
