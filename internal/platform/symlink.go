package platform

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// sidecarSuffix names the file that records a link target when a native
// symlink could not be created.
const sidecarSuffix = ".target"

// ErrSymlinkLoop is returned when resolution does not reach a non-link path
// within the allowed number of hops.
var ErrSymlinkLoop = errors.New("too many levels of symbolic links")

// IsSymlink reports whether path is a symbolic link. The path itself is not
// followed. On Windows a copy with a .target sidecar also counts as a link.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return true, nil
	}
	if runtime.GOOS == "windows" {
		if _, err := os.Stat(path + sidecarSuffix); err == nil {
			return true, nil
		}
	}
	return false, nil
}

// ReadSymlinkTarget returns the target of a symlink exactly as stored.
// On Windows, if os.Readlink fails (because a copy fallback was used),
// it reads from the .target sidecar file.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + sidecarSuffix)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no %s sidecar found: %w", sidecarSuffix, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ResolveSymlinks follows path through a chain of symbolic links until it
// reaches a path that is not a link. Relative targets are interpreted against
// the directory holding the link. Only the final component of each hop is
// inspected; intermediate directories are left as they are.
//
// The returned chain lists every path visited, starting with path and ending
// with the resolved one. More than maxHops links yields ErrSymlinkLoop.
func ResolveSymlinks(path string, maxHops int) (string, []string, error) {
	current := path
	chain := []string{current}

	for hops := 0; ; hops++ {
		link, err := IsSymlink(current)
		if errors.Is(err, fs.ErrNotExist) {
			// A dangling target is not a link; the caller fails later when
			// it looks for files under the derived root.
			return current, chain, nil
		}
		if err != nil {
			return "", chain, fmt.Errorf("inspecting %s: %w", current, err)
		}
		if !link {
			return current, chain, nil
		}
		if hops >= maxHops {
			return "", chain, fmt.Errorf("resolving %s after %d hops: %w", path, hops, ErrSymlinkLoop)
		}

		target, err := ReadSymlinkTarget(current)
		if err != nil {
			return "", chain, fmt.Errorf("reading link %s: %w", current, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(linkDir(current, target), target)
		}
		current = target
		chain = append(chain, current)
	}
}

// linkDir returns the directory a relative target is read against. When the
// target climbs with "..", the link's directory is resolved physically first,
// matching the kernel when that directory is reached through a link.
func linkDir(link, target string) string {
	dir := filepath.Dir(link)
	if !hasParentRef(target) {
		return dir
	}
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		return real
	}
	return dir
}

func hasParentRef(target string) bool {
	for _, part := range strings.Split(filepath.ToSlash(target), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}

// CreateSymlink creates a symbolic link from link pointing to target.
// On Unix systems, this uses os.Symlink directly.
// On Windows, it attempts os.Symlink first (requires developer mode),
// then falls back to copying the file and writing a .target sidecar.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	if err := copyFileForSymlink(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	if err := os.WriteFile(link+sidecarSuffix, []byte(target), 0644); err != nil {
		return fmt.Errorf("writing %s sidecar: %w", sidecarSuffix, err)
	}
	return nil
}

// RemoveSymlink removes a symlink (or its fallback copy and sidecar).
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	os.Remove(path + sidecarSuffix) // best-effort
	return err
}

// copyFileForSymlink copies src to dst. A relative src is resolved against
// the directory containing dst, matching symlink semantics.
func copyFileForSymlink(src, dst string) error {
	if !filepath.IsAbs(src) {
		src = filepath.Join(filepath.Dir(dst), src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
