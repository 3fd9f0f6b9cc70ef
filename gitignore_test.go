package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available, skipping test: %v", err)
	}
	root := t.TempDir()
	out, err := exec.Command("git", "-C", root, "init", "-q").CombinedOutput()
	require.NoError(t, err, string(out))
	return root
}

func TestDropGitIgnored(t *testing.T) {
	root := initGitRepo(t)
	write(t, root, ".gitignore", "generated/\n*_gen.go\n")
	write(t, root, "main.go", "package main")
	write(t, root, "types_gen.go", "package main")
	write(t, root, "generated/api.go", "package generated")
	write(t, root, "pkg/lib.go", "package pkg")

	files, err := collectFiles(root, WalkOptions{Extensions: []string{"go"}})
	require.NoError(t, err)
	require.Len(t, files, 4)

	kept, err := dropGitIgnored(root, files)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "pkg/lib.go"}, paths(kept))
}

func TestDropGitIgnoredNothingIgnored(t *testing.T) {
	root := initGitRepo(t)
	write(t, root, "a.go", "package a")

	files, err := collectFiles(root, WalkOptions{Extensions: []string{"go"}})
	require.NoError(t, err)

	kept, err := dropGitIgnored(root, files)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, paths(kept))
}

func TestDropGitIgnoredOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available, skipping test: %v", err)
	}
	root := t.TempDir()
	write(t, root, "a.go", "package a")
	if err := exec.Command("git", "-C", root, "rev-parse", "--git-dir").Run(); err == nil {
		t.Skip("temp dir is inside a git repository")
	}

	_, err := dropGitIgnored(root, []SourceFile{{Path: "a.go"}})
	assert.Error(t, err)
}
