package cli

import (
	"fmt"

	"github.com/shorty-labs/assetkit/internal/doctor"
	"github.com/shorty-labs/assetkit/internal/toolexec"
	"github.com/spf13/cobra"
)

var (
	checkTools    bool
	checkLinks    bool
	checkManifest string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkTools, "check-tools", false, "Verify minify and tailwindcss are installed and recent enough")
	doctorCmd.Flags().BoolVar(&checkLinks, "check-links", false, "Verify the hidden-asset symlinks")
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a manifest file at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the asset build environment",
	Long:  `Run diagnostic checks on the external tools, the asset links and the manifest.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := !checkTools && !checkLinks && checkManifest == ""
		out := cmd.OutOrStdout()
		problems := 0

		if checkManifest != "" {
			problems += doctor.CheckManifest(out, checkManifest)
		}

		if all || checkTools || checkLinks {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if all {
				problems += doctor.CheckManifest(out, p.ManifestPath)
			}
			if all || checkTools {
				// Capture only: version probes should not echo to the terminal.
				runner := &toolexec.ExecRunner{}
				tools := doctor.ToolsFromManifest(p.Manifest, settings.MinifierPath, settings.CompilerPath)
				problems += doctor.CheckTools(cmd.Context(), out, runner, tools)
			}
			if all || checkLinks {
				problems += doctor.CheckLinks(out, p.Root, p.Manifest.Links)
			}
		}

		if problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		fmt.Fprintln(out, "All checks passed.")
		return nil
	},
}
