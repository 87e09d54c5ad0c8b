package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/shorty-labs/assetkit/internal/branding"
	"github.com/shorty-labs/assetkit/internal/config"
	"github.com/shorty-labs/assetkit/internal/manifest"
	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing manifest")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default project manifest",
	Long: `Write ` + branding.ManifestFile() + ` with the built-in asset layout to the project root
so it can be edited. Without --root the current directory is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := rootFlag
		if root == "" {
			root = "."
		}
		root, err := config.FindRoot(root)
		if err != nil {
			return err
		}

		path := filepath.Join(root, branding.ManifestFile())
		if err := manifest.Write(path, manifest.Default(), initForce); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}
