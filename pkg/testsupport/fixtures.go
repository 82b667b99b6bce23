package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// MustLoadTerms reads a JSON or YAML term fixture. Testing helpers fail the
// test on error to keep table setups concise.
func MustLoadTerms(t *testing.T, path string) []taxonomy.TermNode {
	t.Helper()

	terms, err := LoadTerms(path)
	if err != nil {
		t.Fatalf("load terms: %v", err)
	}
	return terms
}

// LoadTerms reads a term fixture without requiring testing.T, choosing the
// decoder from the file extension.
func LoadTerms(path string) ([]taxonomy.TermNode, error) {
	if path == "" {
		return nil, errors.New("testsupport: terms path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read terms: %w", err)
	}

	var out []taxonomy.TermNode
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode terms %s: %w", path, err)
	}
	return out, nil
}

// Tree builds a linear chain of depth nested terms, useful for exercising
// recursion guards.
func Tree(depth int) []taxonomy.TermNode {
	if depth <= 0 {
		return nil
	}
	return []taxonomy.TermNode{{
		Name:  fmt.Sprintf("level-%d", depth),
		Terms: Tree(depth - 1),
	}}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file, trimming the trailing newline
// editors tend to add.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return strings.TrimRight(string(MustReadGolden(t, path)), "\n")
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
