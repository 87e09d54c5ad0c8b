package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shorty-labs/assetkit/internal/branding"
)

// ErrNoRoot is returned when no project root can be determined.
var ErrNoRoot = errors.New("cannot determine project root")

// FindRoot resolves the project root: the explicit flag value, then
// ASSETKIT_ROOT, then the nearest ancestor of the working directory holding
// the manifest file, then the enclosing git work tree.
func FindRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if env := os.Getenv(branding.EnvVar("ROOT")); env != "" {
		return filepath.Abs(env)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	if dir, ok := findUp(cwd, branding.ManifestFile()); ok {
		return dir, nil
	}

	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("%w: pass --root, set %s, or run from within the project", ErrNoRoot, branding.EnvVar("ROOT"))
	}
	return strings.TrimSpace(string(out)), nil
}

// findUp walks from dir towards the filesystem root looking for name.
func findUp(dir, name string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
