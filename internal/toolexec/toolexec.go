package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrToolNotFound is returned when the tool is not on the search path.
var ErrToolNotFound = errors.New("tool not found")

// Invocation is a single external process call.
type Invocation struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
}

// String renders the invocation as a shell-like command line.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, i.Name)
	for _, a := range i.Args {
		if strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Output captures the result of an invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status zero.
func (o *Output) Success() bool {
	return o != nil && o.ExitCode == 0
}

// Runner executes invocations.
type Runner interface {
	// Run executes inv and blocks until it exits. A non-zero exit status is
	// reported in Output.ExitCode with a nil error; the error return is for
	// processes that could not be started or were killed.
	Run(ctx context.Context, inv Invocation) (*Output, error)
}

// ExecRunner runs invocations as child processes.
type ExecRunner struct {
	// Stdout and Stderr receive the streamed process output in addition to
	// the captured copy. Nil discards the stream.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner that streams tool output to the process's
// own stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*Output, error) {
	bin, err := exec.LookPath(inv.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", inv.Name, ErrToolNotFound, err)
	}

	cmd := exec.CommandContext(ctx, bin, inv.Args...)
	cmd.Dir = inv.Dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = teeWriter(r.Stdout, &stdoutBuf)
	cmd.Stderr = teeWriter(r.Stderr, &stderrBuf)

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		output.ExitCode = -1
		return output, fmt.Errorf("executing %s: %w", inv.Name, err)
	}
	return output, nil
}

func teeWriter(stream io.Writer, buf *bytes.Buffer) io.Writer {
	if stream == nil {
		return buf
	}
	return io.MultiWriter(stream, buf)
}
