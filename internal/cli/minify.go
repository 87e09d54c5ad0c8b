package cli

import (
	"fmt"
	"path/filepath"

	"github.com/shorty-labs/assetkit/internal/minify"
	"github.com/shorty-labs/assetkit/internal/toolexec"
	"github.com/spf13/cobra"
)

var (
	minifyBackend   string
	minifyOnFailure string
	minifyTool      string
	minifyDryRun    bool
)

func init() {
	minifyCmd.Flags().StringVar(&minifyBackend, "backend", "", "Minifier backend: exec or builtin (default from config)")
	minifyCmd.Flags().StringVar(&minifyOnFailure, "on-failure", "", "What to do when an invocation fails: continue or abort (default from config)")
	minifyCmd.Flags().StringVar(&minifyTool, "tool", "", "Minifier executable for the exec backend (default from config or manifest)")
	minifyCmd.Flags().BoolVar(&minifyDryRun, "dry-run", false, "Print the planned invocations without running them")
	rootCmd.AddCommand(minifyCmd)
}

var minifyCmd = &cobra.Command{
	Use:   "minify",
	Short: "Minify JS, CSS and import map sources",
	Long: `Run the minifier once per source file of every manifest category, writing a
sibling ".min" file next to each input. Files that are already minified output
(*.min.js, *.min.css, *.min.json) are never used as inputs.

With --on-failure=continue (the default) every file is attempted; with abort
the run stops at the first failure. Either way the command exits non-zero if
any invocation failed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}

		policy, err := minify.ParseFailurePolicy(firstNonEmpty(minifyOnFailure, settings.OnFailure))
		if err != nil {
			return err
		}
		tool := firstNonEmpty(minifyTool, settings.MinifierPath, p.Manifest.Tools.Minifier.Name)
		m, err := minify.NewMinifier(firstNonEmpty(minifyBackend, settings.Backend), tool, toolexec.NewExecRunner())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		assetRoot := filepath.Join(p.Root, filepath.FromSlash(p.Manifest.Minify.Root))
		fmt.Fprintf(out, "Minifying assets under %s...\n", assetRoot)

		d := &minify.Driver{Minifier: m, Policy: policy, DryRun: minifyDryRun, Out: out}
		report, err := d.Run(cmd.Context(), assetRoot, p.Manifest.Minify.Categories)
		if err != nil {
			return err
		}
		if minifyDryRun {
			return nil
		}

		fmt.Fprintln(out, report.Summary())
		return report.Err()
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
