// Package orchestrator wires the term store → fetcher → transformer → renderer
// pipeline, providing dependency injection friendly helpers for consumers that
// prefer a single entry point. It also attaches the same pipeline to a
// placeholder host through a Controller.
package orchestrator
