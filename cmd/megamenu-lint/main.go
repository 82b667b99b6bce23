package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-megamenu/internal/termstore"
	"github.com/goliatone/go-megamenu/pkg/render"
)

type violation struct {
	file string
	termstore.Violation
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-max-depth N] [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint term-set documents for problems that degrade the rendered menu.\n"); err != nil {
			panic(err)
		}
	}
	maxDepth := flag.Int("max-depth", render.DefaultMaxDepth, "deepest nesting the renderer accepts")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/terms/nav.json"}
	}

	os.Exit(lintPaths(paths, *maxDepth, os.Stderr))
}

// lintPaths lints every path and prints violations sorted by file. It returns
// the process exit code.
func lintPaths(paths []string, maxDepth int, stderr io.Writer) int {
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path, maxDepth)
		if err != nil {
			fmt.Fprintf(stderr, "lint %s: %v\n", path, err)
			return 1
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		return 0
	}

	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s\n", v.file, v.Violation)
	}
	return 1
}

func lintFile(path string, maxDepth int) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	terms, err := termstore.Decode(path, raw)
	if err != nil {
		return nil, err
	}

	var result []violation
	for _, v := range termstore.Lint(terms, maxDepth) {
		result = append(result, violation{file: path, Violation: v})
	}
	return result, nil
}
