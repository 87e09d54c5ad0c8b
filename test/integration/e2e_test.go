//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shorty-labs/assetkit/internal/doctor"
	"github.com/shorty-labs/assetkit/internal/linker"
	"github.com/shorty-labs/assetkit/internal/manifest"
	"github.com/shorty-labs/assetkit/internal/minify"
	"github.com/shorty-labs/assetkit/internal/style"
	"github.com/shorty-labs/assetkit/internal/toolexec"
)

// TestFullFlowBuiltin runs the complete pipeline without external tools:
// link -> minify (builtin backend) -> verify outputs -> second run is a no-op
// for links and keeps skipping minified files.
func TestFullFlowBuiltin(t *testing.T) {
	env := setupTestEnv(t)
	setupSources(t, env)
	m := manifest.Default()
	ctx := context.Background()

	// Step 1: links.
	results, err := linker.Prepare(ctx, env.Root, m.Links, linker.Options{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d link results, want 2", len(results))
	}
	for _, tree := range []string{"public", "backoffice"} {
		link := filepath.Join(env.Root, tree, "asset/embed_hidden/js/assets")
		assertDirExists(t, link)
		target, err := os.Readlink(link)
		if err != nil {
			t.Fatalf("Readlink(%s): %v", link, err)
		}
		if target != filepath.FromSlash("../../embed/js") {
			t.Errorf("%s target = %q, want ../../embed/js", link, target)
		}
	}

	// Step 2: minify in-process.
	public := filepath.Join(env.Root, m.Minify.Root)
	d := &minify.Driver{Minifier: minify.NewBuiltinMinifier(), Policy: minify.Continue}
	report, err := d.Run(ctx, public, m.Minify.Categories)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Succeeded() != 4 || len(report.Skipped) != 1 {
		t.Errorf("summary = %q, want 4 minified and 1 skipped", report.Summary())
	}

	// Step 3: outputs.
	for _, pair := range [][2]string{
		{"asset/embed/js/app.min.js", "asset/embed/js/app.js"},
		{"asset/embed_hidden/js/admin.min.js", "asset/embed_hidden/js/admin.js"},
		{"asset/embed/css/main.min.css", "asset/embed/css/main.css"},
		{"asset/embed_hidden/import_map/imports.min.json", "asset/embed_hidden/import_map/imports.json"},
	} {
		assertSmaller(t, filepath.Join(public, pair[0]), filepath.Join(public, pair[1]))
	}
	assertFileContains(t, filepath.Join(public, "asset/embed_hidden/import_map/imports.min.json"), `{"imports":{"app":"/asset/embed/js/app.min.js"}}`)
	assertFileNotExists(t, filepath.Join(public, "asset/embed/js/app.min.min.js"))
	assertFileNotExists(t, filepath.Join(env.Root, "backoffice/asset/embed/js/app.min.js"))

	// Step 4: a second pass only re-derives outputs from sources.
	if _, err := linker.Prepare(ctx, env.Root, m.Links, linker.Options{}); err != nil {
		t.Fatalf("second Prepare: %v", err)
	}
	report, err = d.Run(ctx, public, m.Minify.Categories)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.Succeeded() != 4 || len(report.Skipped) != 4 {
		t.Errorf("second summary = %q, want 4 minified and 4 skipped", report.Summary())
	}

	// Step 5: doctor agrees the links are healthy.
	var buf bytes.Buffer
	if problems := doctor.CheckLinks(&buf, env.Root, m.Links); problems != 0 {
		t.Errorf("CheckLinks found %d problem(s):\n%s", problems, buf.String())
	}
}

// TestFullFlowExternalTools exercises the real minify and tailwindcss CLIs
// when they are installed.
func TestFullFlowExternalTools(t *testing.T) {
	requireTool(t, minify.DefaultTool)
	requireTool(t, style.DefaultTool)

	env := setupTestEnv(t)
	setupSources(t, env)
	m := manifest.Default()
	ctx := context.Background()
	runner := &toolexec.ExecRunner{}

	public := filepath.Join(env.Root, m.Minify.Root)
	mn, err := minify.NewMinifier(minify.BackendExec, "", runner)
	if err != nil {
		t.Fatalf("NewMinifier: %v", err)
	}
	report, err := (&minify.Driver{Minifier: mn, Policy: minify.Continue}).Run(ctx, public, m.Minify.Categories)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("report: %v", err)
	}
	assertFileExists(t, filepath.Join(public, "asset/embed/css/main.min.css"))

	var out bytes.Buffer
	b := &style.Builder{Runner: runner, Out: &out}
	styleRoot := filepath.Join(env.Root, m.Style.Root)
	sr, err := b.Build(ctx, styleRoot, m.Style.Entries, style.Options{Minify: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := sr.Err(); err != nil {
		t.Fatalf("style report: %v", err)
	}
	assertFileExists(t, filepath.Join(styleRoot, "asset/embed/css/main.min.css"))
	if !strings.Contains(out.String(), "asset/css/tailwind.css -> asset/embed/css/main.min.css") {
		t.Errorf("missing summary line:\n%s", out.String())
	}
}

// TestLinkConflicts covers the cases where a link path is already occupied.
func TestLinkConflicts(t *testing.T) {
	env := setupTestEnv(t)
	m := manifest.Default()
	ctx := context.Background()

	// A wrong-target link on the first entry.
	first := filepath.Join(env.Root, filepath.FromSlash(m.Links[0].Path))
	if err := os.Symlink("../../embed/css", first); err != nil {
		t.Fatal(err)
	}

	results, err := linker.Prepare(ctx, env.Root, m.Links, linker.Options{})
	if err == nil {
		t.Fatal("expected conflict for wrong-target link")
	}
	if len(results) != 0 {
		t.Errorf("got %d results before the conflict, want 0", len(results))
	}
	assertFileNotExists(t, filepath.Join(env.Root, filepath.FromSlash(m.Links[1].Path)))

	if _, err := linker.Prepare(ctx, env.Root, m.Links, linker.Options{Force: true}); err != nil {
		t.Fatalf("forced Prepare: %v", err)
	}
	assertDirExists(t, first)

	// A real directory is never replaced, even with force.
	second := filepath.Join(env.Root, filepath.FromSlash(m.Links[1].Path))
	if err := os.Remove(second); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(second, 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := linker.Prepare(ctx, env.Root, m.Links, linker.Options{Force: true}); err == nil {
		t.Fatal("expected conflict for a directory at the link path")
	}
	info, err := os.Lstat(second)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Error("directory was replaced by a link")
	}
}
