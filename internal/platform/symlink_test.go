package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("native symlinks need developer mode on Windows")
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestCreateSymlink(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "target.txt")
	if err := os.WriteFile(targetPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.txt")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatalf("CreateSymlink failed: %v", err)
	}

	data, err := os.ReadFile(linkPath)
	if err != nil {
		t.Fatalf("reading link: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("link content = %q, want %q", string(data), "hello")
	}
}

func TestRemoveSymlink(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "target.txt")
	if err := os.WriteFile(targetPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.txt")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatal(err)
	}

	if err := RemoveSymlink(linkPath); err != nil {
		t.Fatalf("RemoveSymlink failed: %v", err)
	}

	if _, err := os.Lstat(linkPath); !os.IsNotExist(err) {
		t.Error("link still exists after RemoveSymlink")
	}
	if _, err := os.Stat(targetPath); err != nil {
		t.Errorf("target removed along with link: %v", err)
	}
}

func TestReadSymlinkTarget(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "target.txt")
	if err := os.WriteFile(targetPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.txt")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSymlinkTarget(linkPath)
	if err != nil {
		t.Fatalf("ReadSymlinkTarget failed: %v", err)
	}
	if got != targetPath {
		t.Errorf("ReadSymlinkTarget = %q, want %q", got, targetPath)
	}
}

func TestIsSymlink(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := t.TempDir()

	file := filepath.Join(tmp, "cl")
	writeFile(t, file)
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(file, link); err != nil {
		t.Fatal(err)
	}

	if ok, err := IsSymlink(file); err != nil || ok {
		t.Errorf("IsSymlink(file) = %v, %v; want false, nil", ok, err)
	}
	if ok, err := IsSymlink(link); err != nil || !ok {
		t.Errorf("IsSymlink(link) = %v, %v; want true, nil", ok, err)
	}
}

func TestResolveSymlinks_NotALink(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "bin", "cl")
	writeFile(t, file)

	got, chain, err := ResolveSymlinks(file, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != file {
		t.Errorf("resolved = %q, want %q", got, file)
	}
	if len(chain) != 1 {
		t.Errorf("chain = %v, want a single entry", chain)
	}
}

func TestResolveSymlinks_Chain(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	real := filepath.Join(tmp, "opt", "tool", "bin", "cl")
	writeFile(t, real)

	// usr/local/bin/cl -> (relative) ../share/cl -> absolute real
	share := filepath.Join(tmp, "usr", "local", "share", "cl")
	if err := os.MkdirAll(filepath.Dir(share), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(real, share); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(tmp, "usr", "local", "bin", "cl")
	if err := os.MkdirAll(filepath.Dir(entry), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join("..", "share", "cl"), entry); err != nil {
		t.Fatal(err)
	}

	got, chain, err := ResolveSymlinks(entry, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != real {
		t.Errorf("resolved = %q, want %q", got, real)
	}
	if len(chain) != 3 {
		t.Errorf("chain length = %d, want 3: %v", len(chain), chain)
	}
}

func TestResolveSymlinks_ParentRefThroughLinkedDir(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	real := filepath.Join(tmp, "opt", "tool", "bin", "cl")
	writeFile(t, real)

	// real/x/cl -> ../../opt/tool/bin/cl, reached through alias -> real/x.
	link := filepath.Join(tmp, "real", "x", "cl")
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join("..", "..", "opt", "tool", "bin", "cl"), link); err != nil {
		t.Fatal(err)
	}
	alias := filepath.Join(tmp, "alias")
	if err := os.Symlink(filepath.Join(tmp, "real", "x"), alias); err != nil {
		t.Fatal(err)
	}

	got, _, err := ResolveSymlinks(filepath.Join(alias, "cl"), 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != real {
		t.Errorf("resolved = %q, want %q", got, real)
	}
}

func TestResolveSymlinks_Loop(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := t.TempDir()

	a := filepath.Join(tmp, "a")
	b := filepath.Join(tmp, "b")
	if err := os.Symlink(b, a); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(a, b); err != nil {
		t.Fatal(err)
	}

	_, chain, err := ResolveSymlinks(a, 8)
	if !errors.Is(err, ErrSymlinkLoop) {
		t.Fatalf("expected ErrSymlinkLoop, got %v", err)
	}
	if len(chain) != 9 {
		t.Errorf("chain length = %d, want 9", len(chain))
	}
}

func TestResolveSymlinks_Dangling(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := t.TempDir()

	missing := filepath.Join(tmp, "gone", "cl")
	link := filepath.Join(tmp, "cl")
	if err := os.Symlink(missing, link); err != nil {
		t.Fatal(err)
	}

	got, _, err := ResolveSymlinks(link, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != missing {
		t.Errorf("resolved = %q, want %q", got, missing)
	}
}
