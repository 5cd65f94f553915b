package runtime

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codalab/cl-launcher/internal/branding"
)

// ErrInterpreterNotFound is returned when neither the virtual environment
// interpreter nor the fallback interpreter can be located.
var ErrInterpreterNotFound = errors.New("python interpreter not found")

// Interpreter kinds.
const (
	KindVenv   = "venv"
	KindSystem = "system"
)

// Layout holds the fixed locations under an installation root.
type Layout struct {
	Root       string
	VenvPython string
	Entrypoint string
}

// NewLayout derives the interpreter and entrypoint paths from root.
func NewLayout(root string) Layout {
	return Layout{
		Root:       root,
		VenvPython: filepath.Join(root, filepath.FromSlash(branding.VenvPython())),
		Entrypoint: filepath.Join(root, filepath.FromSlash(branding.Entrypoint())),
	}
}

// Interpreter is the program the launcher hands control to.
type Interpreter struct {
	Kind string
	// Path is the file that gets executed.
	Path string
	// Argv0 is what the interpreter sees as its own name: the full path for
	// the venv interpreter, the bare command name for the fallback.
	Argv0 string
}

// LookPathFunc resolves a command name on the search path.
type LookPathFunc func(file string) (string, error)

// Select returns the venv interpreter when it exists and the fallback
// interpreter from the search path otherwise. Existence is checked with
// os.Stat, so a venv/bin/python symlink counts when its target exists.
func Select(l Layout, lookPath LookPathFunc) (Interpreter, error) {
	if _, err := os.Stat(l.VenvPython); err == nil {
		return Interpreter{Kind: KindVenv, Path: l.VenvPython, Argv0: l.VenvPython}, nil
	}

	if lookPath == nil {
		lookPath = exec.LookPath
	}
	name := branding.FallbackPython()
	path, err := lookPath(name)
	if errors.Is(err, exec.ErrDot) {
		// Found relative to the working directory; the shell would run it too.
		err = nil
		if !strings.ContainsRune(path, filepath.Separator) {
			path = "." + string(filepath.Separator) + path
		}
	}
	if err != nil {
		return Interpreter{}, fmt.Errorf("%w: no %s and %q is not on PATH: %v", ErrInterpreterNotFound, l.VenvPython, name, err)
	}
	return Interpreter{Kind: KindSystem, Path: path, Argv0: name}, nil
}
