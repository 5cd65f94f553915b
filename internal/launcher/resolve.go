package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codalab/cl-launcher/internal/platform"
)

// Invocation describes where the launcher was started from.
type Invocation struct {
	// Invoked is the path the launcher was started as.
	Invoked string
	// Chain lists every path visited while following links, Invoked first.
	Chain []string
	// Resolved is the final non-link path.
	Resolved string
	// Root is the installation root derived from Resolved.
	Root string
}

// Hops returns the number of links that were followed.
func (inv *Invocation) Hops() int {
	return len(inv.Chain) - 1
}

// InvokedPath turns argv[0] into a path. A bare command name is looked up on
// PATH the way the shell found it; when that fails the running executable's
// own path is used.
func InvokedPath(argv0 string) (string, error) {
	if strings.ContainsRune(argv0, '/') || strings.ContainsRune(argv0, filepath.Separator) {
		return argv0, nil
	}
	if argv0 != "" {
		if p, err := exec.LookPath(argv0); err == nil {
			return p, nil
		}
	}
	p, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating launcher executable: %w", err)
	}
	return p, nil
}

// InstallRoot returns the absolute directory two levels above resolved:
// /opt/tool/bin/cl gives /opt/tool. A relative path is made absolute first,
// so "./cl" run from /opt/tool/bin also gives /opt/tool.
func InstallRoot(resolved string) (string, error) {
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("deriving installation root from %s: %w", resolved, err)
	}
	return filepath.Dir(filepath.Dir(abs)), nil
}

// ResolveInvocation follows argv0 to its real location and derives the
// installation root. At most maxLinks links are followed.
func ResolveInvocation(argv0 string, maxLinks int) (*Invocation, error) {
	invoked, err := InvokedPath(argv0)
	if err != nil {
		return nil, err
	}

	resolved, chain, err := platform.ResolveSymlinks(invoked, maxLinks)
	if err != nil {
		return nil, fmt.Errorf("resolving launcher path: %w", err)
	}

	root, err := InstallRoot(resolved)
	if err != nil {
		return nil, err
	}

	return &Invocation{
		Invoked:  invoked,
		Chain:    chain,
		Resolved: resolved,
		Root:     root,
	}, nil
}
