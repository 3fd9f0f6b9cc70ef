package main

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// dropGitIgnored removes the files that git ignores in the repository
// containing root. All paths are checked with one git check-ignore call.
func dropGitIgnored(root string, files []SourceFile) ([]SourceFile, error) {
	if len(files) == 0 {
		return files, nil
	}

	var stdin bytes.Buffer
	for _, f := range files {
		stdin.WriteString(f.Path)
		stdin.WriteByte(0)
	}

	cmd := exec.Command("git", "-C", root, "check-ignore", "--stdin", "-z")
	cmd.Stdin = &stdin
	out, err := cmd.Output()
	if err != nil {
		// check-ignore exits 1 when none of the paths are ignored
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return files, nil
		}
		return nil, fmt.Errorf("git check-ignore failed: %w", err)
	}

	ignored := make(map[string]struct{})
	for _, p := range bytes.Split(out, []byte{0}) {
		if len(p) > 0 {
			ignored[string(p)] = struct{}{}
		}
	}

	kept := files[:0:0]
	for _, f := range files {
		if _, ok := ignored[f.Path]; !ok {
			kept = append(kept, f)
		}
	}
	return kept, nil
}
