package style

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shorty-labs/assetkit/internal/logging"
	"github.com/shorty-labs/assetkit/internal/manifest"
	"github.com/shorty-labs/assetkit/internal/toolexec"
)

const (
	// DefaultTool is the compiler looked up on PATH.
	DefaultTool = "tailwindcss"
	// MinifyFlag is appended to the compiler arguments in minify mode.
	MinifyFlag = "--minify"
)

// ErrCompileFailed marks a compiler run that could not start or exited non-zero.
var ErrCompileFailed = errors.New("style compile failed")

// Options controls one build.
type Options struct {
	Minify bool
}

// MinifyEnabled interprets the raw MINIFY setting: only the exact string
// "true" enables minification.
func MinifyEnabled(raw string) bool {
	return raw == "true"
}

// OutputPath returns the output path for the mode: in minify mode the file
// name gains a ".min" infix before its extension.
func OutputPath(output string, minify bool) string {
	if !minify {
		return output
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + ".min" + ext
}

// Result is the outcome of compiling one entry.
type Result struct {
	Input  string
	Output string
	Out    *toolexec.Output
	Err    error
}

// Failed reports whether the compiler did not run successfully.
func (r Result) Failed() bool {
	return r.Err != nil || !r.Out.Success()
}

// Report collects the results of a build.
type Report struct {
	Results []Result
}

// Err joins one error per failed entry; nil when all succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			errs = append(errs, fmt.Errorf("%s: %w: %w", res.Input, ErrCompileFailed, res.Err))
		case !res.Out.Success():
			errs = append(errs, fmt.Errorf("%s: %w: exit status %d", res.Input, ErrCompileFailed, res.Out.ExitCode))
		}
	}
	return errors.Join(errs...)
}

// Builder runs the compiler.
type Builder struct {
	Tool   string
	Runner toolexec.Runner
	// Out receives the "<input> -> <output>" summary lines. Nil discards them.
	Out io.Writer
}

// Invocation builds `<tool> -i <input> -o <output> [--minify]` for entry,
// run from root.
func (b *Builder) Invocation(root string, entry manifest.StyleEntry, opts Options) toolexec.Invocation {
	tool := b.Tool
	if tool == "" {
		tool = DefaultTool
	}
	args := []string{"-i", entry.Input, "-o", OutputPath(entry.Output, opts.Minify)}
	if opts.Minify {
		args = append(args, MinifyFlag)
	}
	return toolexec.Invocation{Name: tool, Args: args, Dir: root}
}

// Build compiles every entry in order. Each entry is attempted regardless
// of earlier failures; the returned error covers cancellation only.
func (b *Builder) Build(ctx context.Context, root string, entries []manifest.StyleEntry, opts Options) (*Report, error) {
	lg := logging.Get(ctx)
	out := b.Out
	if out == nil {
		out = io.Discard
	}

	report := &Report{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		inv := b.Invocation(root, entry, opts)
		lg.Debug().Str("cmd", inv.String()).Str("dir", root).Msg("compiling stylesheet")

		res, err := b.Runner.Run(ctx, inv)
		result := Result{Input: entry.Input, Output: OutputPath(entry.Output, opts.Minify), Out: res, Err: err}
		report.Results = append(report.Results, result)

		if result.Failed() {
			ev := lg.Warn().Str("input", result.Input)
			if err != nil {
				ev = ev.Err(err)
			} else {
				ev = ev.Int("exit_code", res.ExitCode)
			}
			ev.Msg("compiler failed")
		}
		fmt.Fprintf(out, "%s -> %s\n", result.Input, result.Output)
	}
	return report, nil
}
