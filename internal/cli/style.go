package cli

import (
	"path/filepath"

	"github.com/shorty-labs/assetkit/internal/config"
	"github.com/shorty-labs/assetkit/internal/style"
	"github.com/shorty-labs/assetkit/internal/toolexec"
	"github.com/spf13/cobra"
)

var (
	styleMinify bool
	styleTool   string
)

func init() {
	styleCmd.Flags().BoolVar(&styleMinify, "minify", false, "Write minified output (default: "+config.MinifyEnv+"=true)")
	styleCmd.Flags().StringVar(&styleTool, "tool", "", "CSS compiler executable (default from config or manifest)")
	rootCmd.AddCommand(styleCmd)
}

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Compile the tailwind stylesheet",
	Long: `Compile each style entry of the manifest with the tailwindcss CLI. By default
asset/css/tailwind.css is compiled to asset/embed/css/main.css under public/.

Minified output is selected by --minify, or by MINIFY=true in the environment
(only the exact lowercase value "true" counts). In that mode the output becomes
main.min.css and the compiler receives --minify.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject()
		if err != nil {
			return err
		}

		opts := style.Options{Minify: style.MinifyEnabled(settings.Minify)}
		if cmd.Flags().Changed("minify") {
			opts.Minify = styleMinify
		}

		b := &style.Builder{
			Tool:   firstNonEmpty(styleTool, settings.CompilerPath, p.Manifest.Tools.Compiler.Name),
			Runner: toolexec.NewExecRunner(),
			Out:    cmd.OutOrStdout(),
		}
		assetRoot := filepath.Join(p.Root, filepath.FromSlash(p.Manifest.Style.Root))
		report, err := b.Build(cmd.Context(), assetRoot, p.Manifest.Style.Entries, opts)
		if err != nil {
			return err
		}
		return report.Err()
	},
}
