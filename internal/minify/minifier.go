package minify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/shorty-labs/assetkit/internal/toolexec"
	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
)

// Supported backend identifiers.
const (
	BackendExec    = "exec"
	BackendBuiltin = "builtin"
)

// DefaultTool is the minifier CLI looked up on PATH by the exec backend.
const DefaultTool = "minify"

// Minifier minifies one job. root is the asset root the job paths are
// relative to.
type Minifier interface {
	Minify(ctx context.Context, root string, job Job) (*toolexec.Output, error)
	// Describe renders what Minify would do, for dry runs.
	Describe(job Job) string
}

// NewMinifier returns the Minifier for a backend identifier.
func NewMinifier(backend, tool string, runner toolexec.Runner) (Minifier, error) {
	switch backend {
	case BackendExec, "":
		if tool == "" {
			tool = DefaultTool
		}
		return &ExecMinifier{Tool: tool, Runner: runner}, nil
	case BackendBuiltin:
		return NewBuiltinMinifier(), nil
	default:
		return nil, fmt.Errorf("unknown minify backend %q: supported backends are %q and %q", backend, BackendExec, BackendBuiltin)
	}
}

// ExecMinifier invokes the minify CLI as
// `<tool> [--css-precision N] -o <output> <input>` from the asset root.
type ExecMinifier struct {
	Tool   string
	Runner toolexec.Runner
}

// Invocation builds the process call for job.
func (e *ExecMinifier) Invocation(root string, job Job) toolexec.Invocation {
	args := make([]string, 0, 5)
	if job.CSSPrecision != nil {
		args = append(args, "--css-precision", strconv.Itoa(*job.CSSPrecision))
	}
	args = append(args, "-o", job.Output, job.Input)
	return toolexec.Invocation{Name: e.Tool, Args: args, Dir: root}
}

// Minify implements Minifier.
func (e *ExecMinifier) Minify(ctx context.Context, root string, job Job) (*toolexec.Output, error) {
	return e.Runner.Run(ctx, e.Invocation(root, job))
}

// Describe implements Minifier.
func (e *ExecMinifier) Describe(job Job) string {
	return e.Invocation("", job).String()
}

var (
	jsMediaType   = regexp.MustCompile(`^(application|text)/(x-)?(java|ecma)script$`)
	jsonMediaType = regexp.MustCompile(`[/+]json$`)
)

// BuiltinMinifier minifies in-process with the library the minify CLI is
// built on.
type BuiltinMinifier struct{}

// NewBuiltinMinifier returns an in-process minifier.
func NewBuiltinMinifier() *BuiltinMinifier {
	return &BuiltinMinifier{}
}

// Minify implements Minifier. Errors from the library are reported as a
// failed Output so they are treated like a failing CLI run.
func (b *BuiltinMinifier) Minify(ctx context.Context, root string, job Job) (*toolexec.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mediaType, err := mediaTypeFor(job.Input)
	if err != nil {
		return &toolexec.Output{ExitCode: 1, Stderr: err.Error()}, nil
	}

	src, err := os.ReadFile(filepath.Join(root, job.Input))
	if err != nil {
		return &toolexec.Output{ExitCode: 1, Stderr: err.Error()}, nil
	}

	m := newLibraryMinifier(job.CSSPrecision)
	out, err := m.Bytes(mediaType, src)
	if err != nil {
		return &toolexec.Output{ExitCode: 1, Stderr: fmt.Sprintf("%s: %v", job.Input, err)}, nil
	}

	if err := os.WriteFile(filepath.Join(root, job.Output), out, 0644); err != nil {
		return &toolexec.Output{ExitCode: 1, Stderr: err.Error()}, nil
	}
	return &toolexec.Output{}, nil
}

// Describe implements Minifier.
func (b *BuiltinMinifier) Describe(job Job) string {
	return fmt.Sprintf("builtin minify -o %s %s", job.Output, job.Input)
}

func newLibraryMinifier(cssPrecision *int) *tdminify.M {
	precision := 0
	if cssPrecision != nil {
		precision = *cssPrecision
	}
	m := tdminify.New()
	m.Add("text/css", &css.Minifier{Precision: precision})
	m.AddFuncRegexp(jsMediaType, js.Minify)
	m.AddFuncRegexp(jsonMediaType, json.Minify)
	return m
}

func mediaTypeFor(path string) (string, error) {
	switch filepath.Ext(path) {
	case ".js", ".mjs":
		return "application/javascript", nil
	case ".css":
		return "text/css", nil
	case ".json", ".importmap":
		return "application/json", nil
	default:
		return "", fmt.Errorf("builtin minifier cannot handle %s", path)
	}
}
