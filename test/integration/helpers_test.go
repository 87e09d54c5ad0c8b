//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to an isolated project tree.
type testEnv struct {
	Root string // project root, holds public/ and backoffice/
}

// setupTestEnv creates an empty project with the default asset directories
// and isolates HOME so no user settings leak in.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("MINIFY", "")

	env := &testEnv{Root: t.TempDir()}
	for _, tree := range []string{"public", "backoffice"} {
		for _, sub := range []string{
			"asset/css",
			"asset/embed/js",
			"asset/embed/css",
			"asset/embed_hidden/js",
			"asset/embed_hidden/import_map",
		} {
			if err := os.MkdirAll(filepath.Join(env.Root, tree, sub), 0755); err != nil {
				t.Fatalf("creating %s/%s: %v", tree, sub, err)
			}
		}
	}
	return env
}

// setupSources writes a small set of realistic sources under public/.
func setupSources(t *testing.T, env *testEnv) {
	t.Helper()

	public := filepath.Join(env.Root, "public")
	writeFile(t, filepath.Join(public, "asset/embed/js/app.js"), `// app entry
function greet(name) {
    const message = "hello, " + name;
    console.log(message);
}
greet("world");
`)
	writeFile(t, filepath.Join(public, "asset/embed/js/app.min.js"), "stale")
	writeFile(t, filepath.Join(public, "asset/embed_hidden/js/admin.js"), `export function admin() {
    return   1 + 2;
}
`)
	writeFile(t, filepath.Join(public, "asset/embed/css/main.css"), `body {
    margin: 0px;
    line-height: 1.5000;
}
`)
	writeFile(t, filepath.Join(public, "asset/embed_hidden/import_map/imports.json"), `{
    "imports": {
        "app": "/asset/embed/js/app.min.js"
    }
}
`)
	writeFile(t, filepath.Join(public, "asset/css/tailwind.css"), "@import \"tailwindcss\";\n")
}

// requireTool skips the test when name is not on PATH.
func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not installed", name)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if path does not resolve to a directory.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertSmaller fails unless the file at small is shorter than the one at big.
func assertSmaller(t *testing.T, small, big string) {
	t.Helper()
	s, err := os.Stat(small)
	if err != nil {
		t.Errorf("stat %s: %v", small, err)
		return
	}
	b, err := os.Stat(big)
	if err != nil {
		t.Errorf("stat %s: %v", big, err)
		return
	}
	if s.Size() >= b.Size() {
		t.Errorf("%s (%d bytes) is not smaller than %s (%d bytes)", small, s.Size(), big, b.Size())
	}
}
