package minify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shorty-labs/assetkit/internal/logging"
	"github.com/shorty-labs/assetkit/internal/manifest"
	"github.com/shorty-labs/assetkit/internal/toolexec"
)

// ErrInvocationFailed marks a minifier run that could not start or exited
// non-zero.
var ErrInvocationFailed = errors.New("minifier invocation failed")

// FailurePolicy decides what happens after a failed invocation.
type FailurePolicy string

const (
	// Continue attempts every remaining file and reports all failures.
	Continue FailurePolicy = "continue"
	// Abort stops at the first failed invocation.
	Abort FailurePolicy = "abort"
)

// ParseFailurePolicy accepts "continue", "abort" or "" (continue).
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case Continue, "":
		return Continue, nil
	case Abort:
		return Abort, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q: expected %q or %q", s, Continue, Abort)
	}
}

// Outcome is the result of one job.
type Outcome struct {
	Job    Job
	Output *toolexec.Output
	Err    error
}

// Failed reports whether the job did not produce a successful run.
func (o Outcome) Failed() bool {
	return o.Err != nil || !o.Output.Success()
}

// Report aggregates the outcomes of a run.
type Report struct {
	Outcomes []Outcome
	Skipped  []string
	// Aborted is set when the Abort policy stopped the run early.
	Aborted bool
}

// Succeeded returns the number of successful invocations.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Failed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed invocations.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Err joins one error per failed invocation, each wrapping
// ErrInvocationFailed. It is nil when every invocation succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if !o.Failed() {
			continue
		}
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w: %w", o.Job.Input, ErrInvocationFailed, o.Err))
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %w: exit status %d", o.Job.Input, ErrInvocationFailed, o.Output.ExitCode))
	}
	return errors.Join(errs...)
}

// Summary renders the one-line aggregate.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%d minified, %d failed, %d skipped", r.Succeeded(), r.Failed(), len(r.Skipped))
	if r.Aborted {
		s += " (aborted)"
	}
	return s
}

// Driver runs the minifier over every planned job, one at a time.
type Driver struct {
	Minifier Minifier
	Policy   FailurePolicy
	// DryRun prints the planned invocations without running them.
	DryRun bool
	// Out receives one progress line per job. Nil discards them.
	Out io.Writer
}

// Run plans root against categories and minifies each job. The returned
// error covers planning and cancellation only; invocation failures are in
// the Report (see Report.Err).
func (d *Driver) Run(ctx context.Context, root string, categories []manifest.Category) (*Report, error) {
	lg := logging.Get(ctx)
	out := d.Out
	if out == nil {
		out = io.Discard
	}

	plan, err := BuildPlan(root, categories)
	if err != nil {
		return nil, err
	}
	lg.Debug().Str("root", root).Int("jobs", len(plan.Jobs)).Int("skipped", len(plan.Skipped)).Msg("minify plan built")

	report := &Report{Skipped: plan.Skipped}
	for _, rel := range plan.Skipped {
		lg.Debug().Str("input", rel).Msg("skipping already minified file")
	}

	for _, job := range plan.Jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if d.DryRun {
			fmt.Fprintf(out, "  [PLAN] %s\n", d.Minifier.Describe(job))
			continue
		}

		lg.Debug().Str("category", job.Category).Str("input", job.Input).Str("output", job.Output).Msg("minifying")
		output, err := d.Minifier.Minify(ctx, root, job)
		outcome := Outcome{Job: job, Output: output, Err: err}
		report.Outcomes = append(report.Outcomes, outcome)

		if !outcome.Failed() {
			fmt.Fprintf(out, "  [ OK ] %s -> %s\n", job.Input, job.Output)
			continue
		}

		ev := lg.Warn().Str("input", job.Input)
		if err != nil {
			ev = ev.Err(err)
		} else {
			ev = ev.Int("exit_code", output.ExitCode).Str("stderr", strings.TrimSpace(output.Stderr))
		}
		ev.Msg("minifier failed")
		fmt.Fprintf(out, "  [FAIL] %s -> %s\n", job.Input, job.Output)

		if d.Policy == Abort {
			report.Aborted = true
			break
		}
	}

	return report, nil
}
