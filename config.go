package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
)

// errUsage marks command-line problems that should be answered with the
// usage text.
var errUsage = errors.New("invalid usage")

type Config struct {
	Dir          string
	Lang         string
	Skip         []string
	Include      []string
	ProfilesPath string
	Workers      int
	MemoSize     int
	GitIgnore    bool
	Verbose      bool

	ShowVersion   bool
	ListLanguages bool
}

// parseArgs builds a Config from command-line arguments, using getenv for
// defaults. Flags may appear before or after the directory argument.
func parseArgs(args []string, getenv func(string) string) (Config, error) {
	config := Config{
		Workers:  runtime.NumCPU(),
		MemoSize: defaultMemoEntries,
	}
	if v := strings.TrimSpace(getenv("CODEFLAT_WORKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return config, fmt.Errorf("%w: CODEFLAT_WORKERS=%q is not a number", errUsage, v)
		}
		config.Workers = n
	}

	fs := flag.NewFlagSet("codeflat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config.Lang, "lang", getenv("CODEFLAT_LANG"), "Language whose files and comment syntax to use")
	skip := fs.String("skip", getenv("CODEFLAT_SKIP"), "Comma-separated directory names or globs to skip, added to the language defaults")
	include := fs.String("include", "", "Comma-separated globs; only matching relative paths are processed")
	fs.StringVar(&config.ProfilesPath, "profiles", getenv("CODEFLAT_PROFILES"), "YAML or JSON file with additional language profiles")
	fs.IntVar(&config.Workers, "workers", config.Workers, "Number of files to minify in parallel")
	fs.IntVar(&config.MemoSize, "memo", config.MemoSize, "Number of distinct file contents to remember (0 disables)")
	fs.BoolVar(&config.GitIgnore, "gitignore", false, "Skip files ignored by git")
	fs.BoolVar(&config.Verbose, "verbose", false, "Log progress to stderr")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit")
	fs.BoolVar(&config.ListLanguages, "list-languages", false, "Print the supported languages and exit")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return config, fmt.Errorf("%w: %v", errUsage, err)
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	config.Skip = splitList(*skip)
	config.Include = splitList(*include)

	if config.ShowVersion || config.ListLanguages {
		return config, nil
	}

	switch len(positional) {
	case 0:
		return config, fmt.Errorf("%w: a directory is required", errUsage)
	case 1:
		config.Dir = positional[0]
	default:
		return config, fmt.Errorf("%w: unexpected argument %q", errUsage, positional[1])
	}
	if strings.TrimSpace(config.Lang) == "" {
		return config, fmt.Errorf("%w: --lang argument is required", errUsage)
	}
	if config.Workers < 1 {
		return config, fmt.Errorf("%w: --workers must be at least 1", errUsage)
	}
	return config, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: codeflat <directory> --lang <language> [--skip dir1,dir2,dir3]")
	fmt.Fprintln(w, "                [--include glob1,glob2] [--profiles file.yaml] [--workers n]")
	fmt.Fprintln(w, "                [--memo n] [--gitignore] [--verbose]")
	fmt.Fprintln(w, "       codeflat --list-languages [--profiles file.yaml]")
	fmt.Fprintln(w, "       codeflat --version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported languages:")
	fmt.Fprintf(w, "  %s\n", strings.Join(builtinLanguages().Names(), ", "))
}
