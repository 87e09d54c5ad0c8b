package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/shorty-labs/assetkit/internal/branding"
	"github.com/shorty-labs/assetkit/internal/config"
	"github.com/shorty-labs/assetkit/internal/logging"
	"github.com/shorty-labs/assetkit/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootFlag     string
	manifestFlag string
	logLevelFlag string

	// settings is resolved once per run in PersistentPreRunE.
	settings config.Settings
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root (default: "+branding.EnvVar("ROOT")+", nearest "+branding.ManifestFile()+", or git top level)")
	rootCmd.PersistentFlags().StringVar(&manifestFlag, "manifest", "", "Path to the project manifest (default: <root>/"+branding.ManifestFile()+")")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` runs the asset build steps of the web project: it maintains the
hidden-asset symlinks, minifies JS/CSS/import maps and compiles the tailwind stylesheet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		settings = config.Resolve()
		if logLevelFlag != "" {
			settings.LogLevel = logLevelFlag
		}

		lg := logging.New(os.Stderr, settings.LogLevel)
		cmd.SetContext(logging.Set(cmd.Context(), lg))
		return nil
	},
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the running tool invocation.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// project is the resolved root and manifest a command operates on.
type project struct {
	Root         string
	ManifestPath string
	Manifest     *manifest.Manifest
	// FromFile is false when the built-in layout is used.
	FromFile bool
}

func loadProject() (*project, error) {
	root, err := config.FindRoot(rootFlag)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(root, branding.ManifestFile())
	if manifestFlag != "" {
		if path, err = filepath.Abs(manifestFlag); err != nil {
			return nil, fmt.Errorf("resolving manifest path: %w", err)
		}
		m, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		return &project{Root: root, ManifestPath: path, Manifest: m, FromFile: true}, nil
	}

	m, found, err := manifest.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	return &project{Root: root, ManifestPath: path, Manifest: m, FromFile: found}, nil
}
