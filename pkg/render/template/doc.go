// Package template defines the renderer-agnostic template seam used by the
// menu renderer. Adapters live in subpackages.
package template
