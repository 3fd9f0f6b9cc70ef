package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SourceFile is a file selected for minification.
type SourceFile struct {
	// Root-relative path using forward slashes (e.g., "src/app.go").
	Path string
	// Filesystem path as passed to os.ReadFile.
	AbsPath string
	Size    int64
}

// WalkOptions controls which files collectFiles returns.
type WalkOptions struct {
	// Extensions without the leading dot; matched case-sensitively.
	Extensions []string
	// Skip holds doublestar patterns. Patterns without a slash match an
	// entry's base name, the rest match its root-relative path.
	Skip []string
	// Include, when non-empty, keeps only files whose relative path matches
	// at least one doublestar pattern.
	Include []string
	// Logger receives warnings about entries that could not be visited.
	Logger *log.Logger
}

// collectFiles walks root in lexical order and returns the files that pass the
// extension, skip and include filters. A root that is itself a file is
// returned under its base name when it passes the filters.
func collectFiles(root string, opts WalkOptions) ([]SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}

	allowed := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}

	if !info.IsDir() {
		sf := SourceFile{Path: filepath.Base(root), AbsPath: root, Size: info.Size()}
		if !opts.wants(sf.Path, allowed) {
			return nil, nil
		}
		return []SourceFile{sf}, nil
	}

	var files []SourceFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			opts.warnf("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if opts.skipped(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !opts.wants(rel, allowed) {
			return nil
		}

		var size int64
		if fi, err := d.Info(); err == nil {
			size = fi.Size()
		}
		files = append(files, SourceFile{Path: rel, AbsPath: path, Size: size})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

func (o WalkOptions) skipped(rel string) bool {
	name := rel[strings.LastIndex(rel, "/")+1:]
	for _, pattern := range o.Skip {
		target := name
		if strings.Contains(pattern, "/") {
			target = rel
		}
		if matchPattern(pattern, target) {
			return true
		}
	}
	return false
}

func (o WalkOptions) wants(rel string, allowed map[string]struct{}) bool {
	ext := strings.TrimPrefix(filepath.Ext(rel), ".")
	if _, ok := allowed[ext]; !ok || ext == "" {
		return false
	}
	if len(o.Include) == 0 {
		return true
	}
	for _, pattern := range o.Include {
		if matchPattern(pattern, rel) {
			return true
		}
	}
	return false
}

// matchPattern compares malformed patterns literally.
func matchPattern(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	if errors.Is(err, doublestar.ErrBadPattern) {
		return pattern == name
	}
	return ok
}

func (o WalkOptions) warnf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
