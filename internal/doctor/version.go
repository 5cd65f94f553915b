package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// DefaultVersionTimeout bounds how long `python --version` may take.
const DefaultVersionTimeout = 5 * time.Second

var pythonVersionRe = regexp.MustCompile(`Python\s+(\d+(?:\.\d+){0,2})`)

// ParsePythonVersion extracts the version from `python --version` output,
// e.g. "Python 2.7.18" or "Python 3.12.1+".
func ParsePythonVersion(output string) (*semver.Version, error) {
	m := pythonVersionRe.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("unrecognized version output %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(m[1])
}

// PythonVersion runs the interpreter with --version. Python 2 prints the
// version on stderr, so both streams are read.
func PythonVersion(ctx context.Context, interpreter string, timeout time.Duration) (*semver.Version, error) {
	if timeout <= 0 {
		timeout = DefaultVersionTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, interpreter, "--version").CombinedOutput()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s --version timed out after %s", interpreter, timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("running %s --version: %w", interpreter, err)
	}
	return ParsePythonVersion(string(out))
}

// SatisfiesConstraint reports whether v meets a semver constraint such as
// ">=2.7" or ">=3.6, <4".
func SatisfiesConstraint(v *semver.Version, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(v), nil
}
