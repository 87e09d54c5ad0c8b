package minify

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shorty-labs/assetkit/internal/manifest"
)

// Job is one planned minifier invocation. Input and Output are relative to
// the asset root the plan was built for.
type Job struct {
	Category     string
	Input        string
	Output       string
	CSSPrecision *int
}

// Plan is the result of enumerating every category of an asset root.
type Plan struct {
	Root    string
	Jobs    []Job
	Skipped []string // already-minified files found by the patterns
}

// OutputPath returns the minified sibling of input for category c:
// the last extension is replaced by c.MinSuffix().
func OutputPath(input string, c manifest.Category) string {
	dir, base := filepath.Split(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return dir + stem + c.MinSuffix()
}

// IsMinified reports whether name already carries the minified suffix of c.
func IsMinified(name string, c manifest.Category) bool {
	return strings.HasSuffix(name, c.MinSuffix())
}

// BuildPlan enumerates the categories against root. Patterns are matched
// non-recursively and only regular files (or links to them) are kept. A
// pattern that matches nothing contributes no jobs. Patterns are matched
// inside root, so glob metacharacters in root itself are literal.
func BuildPlan(root string, categories []manifest.Category) (*Plan, error) {
	plan := &Plan{Root: root}
	fsys := os.DirFS(root)

	for _, c := range categories {
		matches, err := fs.Glob(fsys, c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("category %s: bad pattern %q: %w", c.Name, c.Pattern, err)
		}

		for _, match := range matches {
			rel := filepath.FromSlash(match)
			info, err := os.Stat(filepath.Join(root, rel))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}

			if IsMinified(filepath.Base(rel), c) {
				plan.Skipped = append(plan.Skipped, rel)
				continue
			}
			plan.Jobs = append(plan.Jobs, Job{
				Category:     c.Name,
				Input:        rel,
				Output:       OutputPath(rel, c),
				CSSPrecision: c.CSSPrecision,
			})
		}
	}

	return plan, nil
}
