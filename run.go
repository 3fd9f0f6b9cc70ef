package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

func run(ctx context.Context, config Config, stdout io.Writer, logger *log.Logger) error {
	start := time.Now()

	registry, err := loadRegistry(config.ProfilesPath)
	if err != nil {
		return fmt.Errorf("failed to load language profiles: %w", err)
	}

	if config.ListLanguages {
		for _, name := range registry.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	lang, err := registry.Lookup(config.Lang)
	if err != nil {
		return err
	}

	runID, err := newRunID()
	if err != nil {
		return fmt.Errorf("failed to create run id: %w", err)
	}

	walkOpts := WalkOptions{
		Extensions: lang.Extensions,
		Skip:       append(slices.Clone(lang.SkipDirs), config.Skip...),
		Include:    config.Include,
		Logger:     logger,
	}
	files, err := collectFiles(config.Dir, walkOpts)
	if err != nil {
		return err
	}

	if config.GitIgnore {
		files, err = dropGitIgnored(gitWorkDir(config.Dir), files)
		if err != nil {
			return err
		}
	}

	if config.Verbose {
		logger.Printf("run %s: %d %s file(s), %d byte(s) under %s",
			runID, len(files), lang.Name, totalSize(files), config.Dir)
	}

	memo, err := newMinifyMemo(lang.Profile, config.MemoSize)
	if err != nil {
		return fmt.Errorf("failed to create memo: %w", err)
	}

	results, err := minifyFiles(ctx, files, memo, config.Workers)
	if err != nil {
		return err
	}

	if err := writeResults(stdout, results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if config.Verbose {
		logger.Printf("run %s: minified %d file(s), %d distinct, in %s",
			runID, len(results), memo.len(), time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func totalSize(files []SourceFile) int64 {
	var n int64
	for _, f := range files {
		n += f.Size
	}
	return n
}

// minifyFiles reads and minifies files on up to workers goroutines. Results
// keep the order of files. The first read failure aborts the run; ctx is
// checked between files, never within one.
func minifyFiles(ctx context.Context, files []SourceFile, memo *minifyMemo, workers int) ([]Result, error) {
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, f := range files {
		i, f := i, f
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(f.AbsPath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", f.Path, err)
			}
			results[i] = Result{Path: f.Path, Minified: memo.minify(decodeSource(content))}
			return nil
		})
	}
	err := g.Wait()
	if ctx.Err() != nil {
		return nil, context.Cause(ctx)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func gitWorkDir(root string) string {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return filepath.Dir(root)
	}
	return root
}
