package linker

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/shorty-labs/assetkit/internal/logging"
	"github.com/shorty-labs/assetkit/internal/manifest"
	"github.com/shorty-labs/assetkit/internal/platform"
)

// Options controls Prepare.
type Options struct {
	// Force replaces links that point at a different target.
	Force bool
	// Strict fails when anything already exists at a link path.
	Strict bool
	// Out receives one line per link. Nil discards them.
	Out io.Writer
}

// Result reports what Prepare did for one link.
type Result struct {
	Link    manifest.Link
	Outcome platform.Outcome
}

// StatusResult reports the state of one link path.
type StatusResult struct {
	Link  manifest.Link
	State platform.State
	Err   error
}

// Prepare ensures every link under root, in order. It stops at the first
// error; links handled before it are returned and stay in place.
func Prepare(ctx context.Context, root string, links []manifest.Link, opts Options) ([]Result, error) {
	lg := logging.Get(ctx)
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	results := make([]Result, 0, len(links))
	for _, l := range links {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		path := linkPath(root, l)
		outcome, err := platform.EnsureSymlink(filepath.FromSlash(l.Target), path, platform.EnsureOptions{
			Force:  opts.Force,
			Strict: opts.Strict,
		})
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %s\n", l.Path)
			return results, fmt.Errorf("linking %s -> %s: %w", l.Path, l.Target, err)
		}

		lg.Debug().Str("path", path).Str("target", l.Target).Str("outcome", string(outcome)).Msg("link ensured")
		fmt.Fprintf(out, "  [%-4s] %s -> %s (%s)\n", tag(outcome), l.Path, l.Target, outcome)
		results = append(results, Result{Link: l, Outcome: outcome})
	}
	return results, nil
}

// Status inspects every link under root without changing anything.
func Status(root string, links []manifest.Link) []StatusResult {
	results := make([]StatusResult, 0, len(links))
	for _, l := range links {
		state, err := platform.Inspect(filepath.FromSlash(l.Target), linkPath(root, l))
		results = append(results, StatusResult{Link: l, State: state, Err: err})
	}
	return results
}

// Healthy reports whether every status is ok.
func Healthy(statuses []StatusResult) bool {
	for _, s := range statuses {
		if s.Err != nil || s.State != platform.StateOK {
			return false
		}
	}
	return true
}

func linkPath(root string, l manifest.Link) string {
	return filepath.Join(root, filepath.FromSlash(l.Path))
}

func tag(o platform.Outcome) string {
	switch o {
	case platform.OutcomeCreated:
		return "NEW"
	case platform.OutcomeReplaced:
		return "FIX"
	default:
		return "OK"
	}
}
