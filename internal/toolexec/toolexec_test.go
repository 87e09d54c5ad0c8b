package toolexec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeScript creates an executable shell script in a temp dir and puts the
// dir first on PATH so the script can be invoked by name.
func writeScript(t *testing.T, name, body string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on Windows")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	writeScript(t, "fake-minify", `echo "args: $*"; echo "warn" >&2`)

	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout}

	out, err := r.Run(context.Background(), Invocation{
		Name: "fake-minify",
		Args: []string{"-o", "app.min.js", "app.js"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success() {
		t.Errorf("ExitCode = %d, want 0", out.ExitCode)
	}
	if want := "args: -o app.min.js app.js\n"; out.Stdout != want {
		t.Errorf("Stdout = %q, want %q", out.Stdout, want)
	}
	if out.Stderr != "warn\n" {
		t.Errorf("Stderr = %q, want %q", out.Stderr, "warn\n")
	}
	if stdout.String() != out.Stdout {
		t.Errorf("streamed stdout = %q, want %q", stdout.String(), out.Stdout)
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	writeScript(t, "fake-fail", `echo "boom" >&2; exit 3`)

	out, err := (&ExecRunner{}).Run(context.Background(), Invocation{Name: "fake-fail"})
	if err != nil {
		t.Fatalf("non-zero exit should not be an error: %v", err)
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
	if out.Success() {
		t.Error("Success() = true for exit 3")
	}
}

func TestExecRunner_WorkingDir(t *testing.T) {
	writeScript(t, "fake-pwd", `pwd`)
	dir := t.TempDir()

	out, err := (&ExecRunner{}).Run(context.Background(), Invocation{Name: "fake-pwd", Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := filepath.EvalSymlinks(filepath.Clean(out.Stdout[:len(out.Stdout)-1]))
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestExecRunner_ToolNotFound(t *testing.T) {
	_, err := (&ExecRunner{}).Run(context.Background(), Invocation{Name: "assetkit-definitely-missing-tool"})
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("error = %v, want ErrToolNotFound", err)
	}
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Name: "minify", Args: []string{"--css-precision", "0", "-o", "my file.min.css", "my file.css"}}
	want := `minify --css-precision 0 -o "my file.min.css" "my file.css"`
	if got := inv.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
