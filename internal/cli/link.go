package cli

import (
	"fmt"

	"github.com/shorty-labs/assetkit/internal/linker"
	"github.com/spf13/cobra"
)

var (
	linkForce  bool
	linkStrict bool
)

func init() {
	linkCmd.Flags().BoolVar(&linkForce, "force", false, "Replace links that point at a different target")
	linkCmd.Flags().BoolVar(&linkStrict, "strict", false, "Fail if anything already exists at a link path")
	linkCmd.AddCommand(linkStatusCmd)
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Create the hidden-asset symlinks",
	Long: `Ensure every link declared in the manifest exists. By default these are

  backoffice/asset/embed_hidden/js/assets -> ../../embed/js
  public/asset/embed_hidden/js/assets     -> ../../embed/js

A link that already points at the right target is left alone. A link with a
different target is a conflict unless --force is given; a regular file or
directory at a link path is always a conflict.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}
		if linkForce && linkStrict {
			return fmt.Errorf("--force and --strict are mutually exclusive")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Linking assets under %s...\n", p.Root)
		results, err := linker.Prepare(cmd.Context(), p.Root, p.Manifest.Links, linker.Options{
			Force:  linkForce,
			Strict: linkStrict,
			Out:    out,
		})
		if err != nil {
			if len(results) > 0 {
				fmt.Fprintf(out, "%d of %d link(s) done before the failure.\n", len(results), len(p.Manifest.Links))
			}
			return err
		}

		fmt.Fprintf(out, "%d link(s) in place.\n", len(results))
		return nil
	},
}

var linkStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of each configured link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		statuses := linker.Status(p.Root, p.Manifest.Links)
		for _, s := range statuses {
			if s.Err != nil {
				fmt.Fprintf(out, "  %-12s %s (%v)\n", "error", s.Link.Path, s.Err)
				continue
			}
			fmt.Fprintf(out, "  %-12s %s -> %s\n", s.State, s.Link.Path, s.Link.Target)
		}

		if !linker.Healthy(statuses) {
			return fmt.Errorf("one or more links need attention")
		}
		return nil
	},
}
