package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/shorty-labs/assetkit/internal/branding"
	"github.com/shorty-labs/assetkit/internal/linker"
	"github.com/shorty-labs/assetkit/internal/manifest"
	"github.com/shorty-labs/assetkit/internal/platform"
	"github.com/shorty-labs/assetkit/internal/toolexec"
)

// Tool describes an external CLI to check.
type Tool struct {
	// Path is the executable name or path as the build commands use it.
	Path       string
	MinVersion string
	// VersionArgs make the tool print its version.
	VersionArgs []string
}

// ToolsFromManifest returns the minifier and compiler checks, with the
// configured executable paths taking precedence over manifest names.
func ToolsFromManifest(m *manifest.Manifest, minifierPath, compilerPath string) []Tool {
	minifier := firstNonEmpty(minifierPath, m.Tools.Minifier.Name, "minify")
	compiler := firstNonEmpty(compilerPath, m.Tools.Compiler.Name, "tailwindcss")
	return []Tool{
		{Path: minifier, MinVersion: m.Tools.Minifier.MinVersion, VersionArgs: []string{"--version"}},
		// The tailwind standalone CLI prints its version in the --help banner.
		{Path: compiler, MinVersion: m.Tools.Compiler.MinVersion, VersionArgs: []string{"--help"}},
	}
}

// CheckTools verifies every tool is runnable and meets its minimum version.
// It returns the number of problems found.
func CheckTools(ctx context.Context, w io.Writer, runner toolexec.Runner, tools []Tool) int {
	fmt.Fprintln(w, "Tool check:")

	problems := 0
	for _, tool := range tools {
		out, err := runner.Run(ctx, toolexec.Invocation{Name: tool.Path, Args: tool.VersionArgs})
		if errors.Is(err, toolexec.ErrToolNotFound) {
			fmt.Fprintf(w, "  [MISS] %s not found\n", tool.Path)
			problems++
			continue
		}
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", tool.Path, err)
			problems++
			continue
		}

		version, verr := ExtractVersion(out.Stdout + "\n" + out.Stderr)
		if verr != nil {
			fmt.Fprintf(w, "  [WARN] %s: cannot determine version\n", tool.Path)
			continue
		}

		ok, err := SatisfiesMinimum(version, tool.MinVersion)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  [WARN] %s v%s: %v\n", tool.Path, version, err)
		case !ok:
			fmt.Fprintf(w, "  [FAIL] %s v%s is older than required v%s\n", tool.Path, version, tool.MinVersion)
			problems++
		default:
			fmt.Fprintf(w, "  [ OK ] %s v%s\n", tool.Path, version)
		}
	}
	return problems
}

// CheckLinks reports the state of every configured link. It returns the
// number of links that are not ok.
func CheckLinks(w io.Writer, root string, links []manifest.Link) int {
	fmt.Fprintln(w, "Link check:")
	if len(links) == 0 {
		fmt.Fprintln(w, "  [ OK ] No links declared")
		return 0
	}

	problems := 0
	for _, s := range linker.Status(root, links) {
		switch {
		case s.Err != nil:
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", s.Link.Path, s.Err)
			problems++
		case s.State == platform.StateOK:
			fmt.Fprintf(w, "  [ OK ] %s -> %s\n", s.Link.Path, s.Link.Target)
		case s.State == platform.StateMissing:
			fmt.Fprintf(w, "  [MISS] %s (run `%s link`)\n", s.Link.Path, branding.CLIName())
			problems++
		default:
			fmt.Fprintf(w, "  [FAIL] %s: %s\n", s.Link.Path, s.State)
			problems++
		}
	}
	return problems
}

// CheckManifest validates the manifest file at path and returns the number
// of problems. A missing file counts as none since the built-in layout
// applies.
func CheckManifest(w io.Writer, path string) int {
	fmt.Fprintf(w, "Manifest check: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(w, "  [INFO] No manifest found, using built-in layout")
			return 0
		}
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}

	if result.Valid {
		fmt.Fprintln(w, "  [ OK ] Valid manifest")
		return 0
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return len(result.Issues)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
