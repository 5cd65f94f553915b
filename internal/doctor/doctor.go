package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/codalab/cl-launcher/internal/branding"
	"github.com/codalab/cl-launcher/internal/config"
	"github.com/codalab/cl-launcher/internal/launcher"
	"github.com/codalab/cl-launcher/internal/platform"
	"github.com/codalab/cl-launcher/internal/runtime"
)

// Options tunes a Check run.
type Options struct {
	Fix            bool
	LookPath       runtime.LookPathFunc
	MinPython      string
	VersionTimeout time.Duration
	// ConfigPath and ConfigResult describe the settings file, if one was read.
	ConfigPath   string
	ConfigResult *config.ValidationResult
}

// Report summarizes a Check run.
type Report struct {
	Failures int
	Warnings int
}

// OK reports whether the installation can be launched.
func (r Report) OK() bool { return r.Failures == 0 }

type checker struct {
	w      io.Writer
	report Report
}

func (c *checker) line(tag, format string, args ...interface{}) {
	fmt.Fprintf(c.w, "  [%s] %s\n", tag, fmt.Sprintf(format, args...))
	switch tag {
	case "FAIL":
		c.report.Failures++
	case "WARN":
		c.report.Warnings++
	}
}

// Check validates the installation inv points at and writes one status line
// per requirement to w.
func Check(ctx context.Context, w io.Writer, inv *launcher.Invocation, opts Options) Report {
	c := &checker{w: w}
	layout := runtime.NewLayout(inv.Root)

	fmt.Fprintln(w, "Launcher check:")
	if inv.Hops() == 0 {
		c.line(" OK ", "%s", inv.Resolved)
	} else {
		c.line(" OK ", "%s (%d symlink hops)", strings.Join(inv.Chain, " -> "), inv.Hops())
	}
	checkRoot(c, inv.Root)

	fmt.Fprintln(w, "Interpreter check:")
	interp := checkInterpreters(c, layout, opts)
	checkEntrypoint(c, layout.Entrypoint)
	if interp != "" && opts.MinPython != "" {
		checkVersion(ctx, c, interp, opts)
	}

	if opts.ConfigPath != "" && opts.ConfigResult != nil {
		fmt.Fprintln(w, "Config check:")
		checkConfig(c, opts.ConfigPath, opts.ConfigResult)
	}

	return c.report
}

func checkRoot(c *checker, root string) {
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		c.line("FAIL", "installation root %s does not exist", root)
	case err != nil:
		c.line("FAIL", "installation root %s: %v", root, err)
	case !info.IsDir():
		c.line("FAIL", "installation root %s is not a directory", root)
	default:
		c.line(" OK ", "installation root %s", root)
	}
}

// checkInterpreters reports on both candidates and returns the path of a
// runnable interpreter the launcher would execute, or "" when there is none.
// The choice mirrors runtime.Select: a venv interpreter that exists is used
// whether or not it can be executed.
func checkInterpreters(c *checker, layout runtime.Layout, opts Options) string {
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	fallbackName := branding.FallbackPython()
	fallback, fallbackErr := lookPath(fallbackName)

	_, statErr := os.Stat(layout.VenvPython)
	switch {
	case statErr == nil:
		runnable := checkExecutable(c, layout.VenvPython, opts.Fix)
		if fallbackErr == nil {
			c.line(" OK ", "%s on PATH: %s (unused)", fallbackName, fallback)
		}
		if !runnable {
			return ""
		}
		return layout.VenvPython
	case os.IsNotExist(statErr):
		c.line("MISS", "%s does not exist", layout.VenvPython)
	default:
		c.line("WARN", "%s: %v (treated as missing)", layout.VenvPython, statErr)
	}

	if fallbackErr != nil {
		c.line("FAIL", "no virtualenv interpreter and %q is not on PATH", fallbackName)
		return ""
	}
	c.line(" OK ", "%s on PATH: %s (fallback in use)", fallbackName, fallback)
	return fallback
}

func checkExecutable(c *checker, path string, fix bool) bool {
	ok, err := platform.IsExecutable(path)
	if err != nil {
		c.line("FAIL", "%s: %v", path, err)
		return false
	}
	if ok {
		c.line(" OK ", "%s", path)
		return true
	}
	if !fix {
		c.line("FAIL", "%s exists but is not executable", path)
		return false
	}
	if err := platform.Chmod(path, 0755); err != nil {
		c.line("FAIL", "could not make %s executable: %v", path, err)
		return false
	}
	c.line("FIX ", "made %s executable", path)
	return true
}

func checkEntrypoint(c *checker, entrypoint string) {
	info, err := os.Stat(entrypoint)
	switch {
	case os.IsNotExist(err):
		c.line("FAIL", "entrypoint %s does not exist", entrypoint)
	case err != nil:
		c.line("FAIL", "entrypoint %s: %v", entrypoint, err)
	case info.IsDir():
		c.line("FAIL", "entrypoint %s is a directory", entrypoint)
	default:
		c.line(" OK ", "entrypoint %s", entrypoint)
	}
}

func checkVersion(ctx context.Context, c *checker, interp string, opts Options) {
	v, err := PythonVersion(ctx, interp, opts.VersionTimeout)
	if err != nil {
		c.line("WARN", "could not determine interpreter version: %v", err)
		return
	}
	ok, err := SatisfiesConstraint(v, opts.MinPython)
	if err != nil {
		c.line("WARN", "%v", err)
		return
	}
	if !ok {
		c.line("WARN", "python %s does not satisfy %s", v, opts.MinPython)
		return
	}
	c.line(" OK ", "python %s (%s)", v, opts.MinPython)
}

func checkConfig(c *checker, path string, result *config.ValidationResult) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.line(" OK ", "%s not present, using defaults", path)
		return
	}
	if result.Valid {
		c.line(" OK ", "%s", path)
		return
	}
	c.line("FAIL", "%s is ignored by the launcher: %s", path, result.Summary())
}
