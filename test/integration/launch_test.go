//go:build integration

package integration_test

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// run executes path with args and returns stdout lines, stderr and the exit code.
func run(t *testing.T, path string, env []string, args ...string) ([]string, string, int) {
	t.Helper()
	cmd := exec.Command(path, args...)
	if env != nil {
		cmd.Env = append(cmd.Environ(), env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("running %s: %v", path, err)
		}
		code = exitErr.ExitCode()
	}
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	return lines, stderr.String(), code
}

func TestLaunchDirect(t *testing.T) {
	inst := setupInstall(t, true)

	lines, stderr, code := run(t, inst.Launcher, nil, "upload", "my file.txt", "--help")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}

	want := []string{
		"interpreter=" + filepath.Join(inst.Root, "venv", "bin", "python"),
		"arg=" + inst.Entrypoint,
		"arg=upload",
		"arg=my file.txt",
		"arg=--help",
		"CODALAB_CLI=" + inst.Root,
		"PYTHONPATH=" + inst.Root,
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestLaunchThroughSymlinkChain(t *testing.T) {
	inst := setupInstall(t, true)
	base := t.TempDir()

	middle := filepath.Join(base, "usr", "lib", "codalab", "cl")
	symlink(t, inst.Launcher, middle)
	entry := filepath.Join(base, "usr", "local", "bin", "cl")
	symlink(t, filepath.Join("..", "..", "lib", "codalab", "cl"), entry)

	direct, _, _ := run(t, inst.Launcher, nil, "work", "-u", "me")
	linked, stderr, code := run(t, entry, nil, "work", "-u", "me")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if diff := cmp.Diff(direct, linked); diff != "" {
		t.Errorf("symlinked launch differs from direct launch (-direct +linked):\n%s", diff)
	}
}

func TestLaunchFallbackPython(t *testing.T) {
	inst := setupInstall(t, false)
	pathDir := t.TempDir()
	writeFile(t, filepath.Join(pathDir, "python"), fakePython, 0755)

	lines, stderr, code := run(t, inst.Launcher, []string{"PATH=" + pathDir}, "ls")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if lines[0] != "interpreter=python" {
		t.Errorf("argv[0] = %q, want the bare command name", lines[0])
	}
	if lines[1] != "arg="+inst.Entrypoint || lines[2] != "arg=ls" {
		t.Errorf("unexpected arguments: %v", lines)
	}
}

func TestLaunchExitCodeIsTheChilds(t *testing.T) {
	inst := setupInstall(t, true)

	_, _, code := run(t, inst.Launcher, []string{"FAKE_EXIT=42"})
	if code != 42 {
		t.Errorf("exit code = %d, want 42", code)
	}
}

func TestLaunchNoInterpreter(t *testing.T) {
	inst := setupInstall(t, false)

	_, stderr, code := run(t, inst.Launcher, []string{"PATH=" + t.TempDir()})
	if code != 127 {
		t.Errorf("exit code = %d, want 127", code)
	}
	if !strings.Contains(stderr, "python interpreter not found") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestLaunchDebugLogsToStderrOnly(t *testing.T) {
	inst := setupInstall(t, true)

	lines, stderr, code := run(t, inst.Launcher, []string{"CODALAB_LAUNCHER_DEBUG=true"}, "x")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, "selected interpreter") {
		t.Errorf("debug output missing from stderr: %q", stderr)
	}
	for _, line := range lines {
		if strings.Contains(line, "selected interpreter") {
			t.Errorf("debug output leaked to stdout: %q", line)
		}
	}
}
