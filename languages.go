package main

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Language describes which files belong to a language, which directories are
// skipped by default, and how its comments are written.
type Language struct {
	Name       string
	Aliases    []string
	Extensions []string
	SkipDirs   []string
	Profile    CommentProfile
}

// ErrUnsupportedLanguage is returned when --lang names no known language.
type ErrUnsupportedLanguage struct {
	Name string
}

func (e *ErrUnsupportedLanguage) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Name)
}

// Registry maps lowercased language names and aliases to languages. It is
// built once at startup and only read afterwards.
type Registry struct {
	byName    map[string]Language
	languages []Language
}

func newRegistry(langs []Language) *Registry {
	r := &Registry{byName: make(map[string]Language)}
	for _, l := range langs {
		r.add(l)
	}
	return r
}

// add registers l, replacing every language that already answers to its name
// or one of its aliases.
func (r *Registry) add(l Language) {
	for _, name := range append([]string{l.Name}, l.Aliases...) {
		if prev, ok := r.byName[normalizeLanguageName(name)]; ok {
			r.remove(prev)
		}
	}
	r.languages = append(r.languages, l)
	r.byName[normalizeLanguageName(l.Name)] = l
	for _, alias := range l.Aliases {
		r.byName[normalizeLanguageName(alias)] = l
	}
}

func (r *Registry) remove(l Language) {
	key := normalizeLanguageName(l.Name)
	delete(r.byName, key)
	for _, alias := range l.Aliases {
		delete(r.byName, normalizeLanguageName(alias))
	}
	r.languages = slices.DeleteFunc(r.languages, func(other Language) bool {
		return normalizeLanguageName(other.Name) == key
	})
}

// Lookup resolves a language name or alias, ignoring case and surrounding
// whitespace.
func (r *Registry) Lookup(name string) (Language, error) {
	l, ok := r.byName[normalizeLanguageName(name)]
	if !ok {
		return Language{}, &ErrUnsupportedLanguage{Name: name}
	}
	return l, nil
}

// Names returns the canonical language names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.languages))
	for _, l := range r.languages {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

func normalizeLanguageName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var (
	cComments    = CommentProfile{LineComment: "//", BlockStart: "/*", BlockEnd: "*/"}
	hashComments = CommentProfile{LineComment: "#"}
)

func builtinLanguages() *Registry {
	return newRegistry([]Language{
		{
			Name:       "python",
			Extensions: []string{"py", "pyw"},
			SkipDirs:   []string{"__pycache__", "venv", ".env", "dist"},
			Profile:    CommentProfile{LineComment: "#", BlockStart: "'''", BlockEnd: "'''"},
		},
		{
			Name:       "java",
			Extensions: []string{"java"},
			SkipDirs:   []string{"target", "build", "out"},
			Profile:    cComments,
		},
		{
			Name:       "javascript",
			Aliases:    []string{"js"},
			Extensions: []string{"js", "jsx", "mjs"},
			SkipDirs:   []string{"node_modules", "dist", "build"},
			Profile:    cComments,
		},
		{
			Name:       "cpp",
			Aliases:    []string{"c++"},
			Extensions: []string{"cpp", "hpp", "cc", "hh", "cxx", "hxx"},
			SkipDirs:   []string{"build", "obj", "bin"},
			Profile:    cComments,
		},
		{
			Name:       "csharp",
			Aliases:    []string{"c#"},
			Extensions: []string{"cs"},
			SkipDirs:   []string{"bin", "obj", "Debug", "Release"},
			Profile:    cComments,
		},
		{
			Name:       "php",
			Extensions: []string{"php"},
			SkipDirs:   []string{"vendor", "cache"},
			Profile:    cComments,
		},
		{
			Name:       "ruby",
			Extensions: []string{"rb"},
			SkipDirs:   []string{"vendor", "tmp", "log"},
			Profile:    CommentProfile{LineComment: "#", BlockStart: "=begin", BlockEnd: "=end"},
		},
		{
			Name:       "swift",
			Extensions: []string{"swift"},
			SkipDirs:   []string{".build", "Pods"},
			Profile:    cComments,
		},
		{
			Name:       "typescript",
			Aliases:    []string{"ts"},
			Extensions: []string{"ts", "tsx"},
			SkipDirs:   []string{"node_modules", "dist", "build"},
			Profile:    cComments,
		},
		{
			Name:       "kotlin",
			Aliases:    []string{"kt"},
			Extensions: []string{"kt", "kts"},
			SkipDirs:   []string{"build", "out"},
			Profile:    cComments,
		},
		{
			Name:       "go",
			Extensions: []string{"go"},
			SkipDirs:   []string{"vendor", "bin"},
			Profile:    cComments,
		},
		{
			Name:       "rust",
			Extensions: []string{"rs"},
			SkipDirs:   []string{"target"},
			Profile:    cComments,
		},
		{
			Name:       "r",
			Extensions: []string{"r", "R"},
			SkipDirs:   []string{"renv"},
			Profile:    hashComments,
		},
		{
			Name:       "matlab",
			Extensions: []string{"m"},
			SkipDirs:   []string{"bin"},
			Profile:    CommentProfile{LineComment: "%", BlockStart: "%{", BlockEnd: "%}"},
		},
		{
			Name:       "vbnet",
			Aliases:    []string{"vb"},
			Extensions: []string{"vb"},
			SkipDirs:   []string{"bin", "obj"},
			Profile:    CommentProfile{LineComment: "'"},
		},
		{
			Name:       "scala",
			Extensions: []string{"scala"},
			SkipDirs:   []string{"target", "project/target"},
			Profile:    cComments,
		},
		{
			Name:       "perl",
			Extensions: []string{"pl", "pm"},
			SkipDirs:   []string{"blib", "_build"},
			Profile:    CommentProfile{LineComment: "#", BlockStart: "=pod", BlockEnd: "=cut"},
		},
		{
			Name:       "dart",
			Extensions: []string{"dart"},
			SkipDirs:   []string{"build", ".dart_tool"},
			Profile:    cComments,
		},
		{
			Name:       "objective-c",
			Aliases:    []string{"objc"},
			Extensions: []string{"m", "mm"},
			SkipDirs:   []string{"build", "DerivedData"},
			Profile:    cComments,
		},
		{
			Name:       "groovy",
			Extensions: []string{"groovy", "gvy", "gy", "gsh"},
			SkipDirs:   []string{"target", "build"},
			Profile:    cComments,
		},
		{
			Name:       "julia",
			Extensions: []string{"jl"},
			SkipDirs:   []string{"docs/build"},
			Profile:    CommentProfile{LineComment: "#", BlockStart: "#=", BlockEnd: "=#"},
		},
		{
			Name:       "haskell",
			Extensions: []string{"hs", "lhs"},
			SkipDirs:   []string{"dist", ".stack-work"},
			Profile:    CommentProfile{LineComment: "--", BlockStart: "{-", BlockEnd: "-}"},
		},
		{
			Name:       "shell",
			Aliases:    []string{"bash"},
			Extensions: []string{"sh", "bash"},
			SkipDirs:   []string{"tmp"},
			Profile:    hashComments,
		},
		{
			Name:       "lua",
			Extensions: []string{"lua"},
			SkipDirs:   []string{"bin"},
			Profile:    CommentProfile{LineComment: "--", BlockStart: "--[[", BlockEnd: "]]"},
		},
		{
			Name:       "c",
			Extensions: []string{"c", "h"},
			SkipDirs:   []string{"build", "obj", "bin"},
			Profile:    cComments,
		},
	})
}
