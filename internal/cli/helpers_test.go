package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// installation is a throwaway <root>/bin/cl layout.
type installation struct {
	Root       string
	Launcher   string
	VenvPython string
	Entrypoint string
}

// setupInstall creates an installation with a fake venv interpreter that
// reports Python 3.8.10, and isolates launcher settings from the host.
func setupInstall(t *testing.T) *installation {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script interpreter")
	}

	root := t.TempDir()
	inst := &installation{
		Root:       root,
		Launcher:   filepath.Join(root, "bin", "cl"),
		VenvPython: filepath.Join(root, "venv", "bin", "python"),
		Entrypoint: filepath.Join(root, "codalab", "bin", "cl.py"),
	}
	files := map[string]string{
		inst.Launcher:   "",
		inst.VenvPython: "#!/bin/sh\necho 'Python 3.8.10'\n",
		inst.Entrypoint: "",
	}
	for path, content := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0755); err != nil {
			t.Fatal(err)
		}
	}

	t.Setenv("CODALAB_LAUNCHER_CONFIG", filepath.Join(t.TempDir(), "launcher.yaml"))
	for _, key := range []string{"DEBUG", "LOG_FORMAT", "MAX_LINKS", "MIN_PYTHON"} {
		t.Setenv("CODALAB_LAUNCHER_"+key, "")
	}
	return inst
}

// runDoctor executes the cl-doctor tree with fresh flag values.
func runDoctor(t *testing.T, args ...string) (string, error) {
	t.Helper()
	launcherPath, doctorFix, verbose = "", false, false
	planJSON, linkForce, linkBinDir = false, false, "/usr/local/bin"
	versionShort, versionJSON = false, false

	var out bytes.Buffer
	doctorCmd.SetOut(&out)
	doctorCmd.SetErr(&out)
	doctorCmd.SetArgs(args)
	err := doctorCmd.Execute()
	return out.String(), err
}
