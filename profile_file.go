package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed profiles.schema.json
var profileFileSchema []byte

// ProfileFile is the on-disk form of user-defined languages, read from YAML
// or JSON.
type ProfileFile struct {
	Languages []LanguageSpec `json:"languages" yaml:"languages"`
}

type LanguageSpec struct {
	Name              string   `json:"name" yaml:"name"`
	Aliases           []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Extensions        []string `json:"extensions" yaml:"extensions"`
	SkipDirs          []string `json:"skip_dirs,omitempty" yaml:"skip_dirs,omitempty"`
	LineComment       string   `json:"line_comment,omitempty" yaml:"line_comment,omitempty"`
	BlockCommentStart string   `json:"block_comment_start,omitempty" yaml:"block_comment_start,omitempty"`
	BlockCommentEnd   string   `json:"block_comment_end,omitempty" yaml:"block_comment_end,omitempty"`
}

func (s LanguageSpec) language() Language {
	exts := make([]string, 0, len(s.Extensions))
	for _, ext := range s.Extensions {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(ext), "."))
	}
	return Language{
		Name:       strings.TrimSpace(s.Name),
		Aliases:    s.Aliases,
		Extensions: exts,
		SkipDirs:   s.SkipDirs,
		Profile: CommentProfile{
			LineComment: s.LineComment,
			BlockStart:  s.BlockCommentStart,
			BlockEnd:    s.BlockCommentEnd,
		},
	}
}

// loadRegistry returns the built-in languages, extended or overridden by the
// profile file at path when path is non-empty.
func loadRegistry(path string) (*Registry, error) {
	reg := builtinLanguages()
	if path == "" {
		return reg, nil
	}
	pf, err := loadProfileFile(path)
	if err != nil {
		return nil, err
	}
	for _, entry := range pf.Languages {
		reg.add(entry.language())
	}
	return reg, nil
}

func loadProfileFile(path string) (*ProfileFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var doc any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(b, &doc)
	} else {
		err = yaml.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile file %s: %w", path, err)
	}
	if err := validateProfileDoc(doc); err != nil {
		return nil, fmt.Errorf("invalid profile file %s: %w", path, err)
	}

	// The validated document is re-encoded as JSON so both input formats share
	// one decoding path.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize profile file %s: %w", path, err)
	}
	var pf ProfileFile
	if err := json.Unmarshal(normalized, &pf); err != nil {
		return nil, fmt.Errorf("failed to decode profile file %s: %w", path, err)
	}
	return &pf, nil
}

func compileProfileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource("profiles.schema.json", bytes.NewReader(profileFileSchema)); err != nil {
		return nil, err
	}
	return c.Compile("profiles.schema.json")
}

// validateProfileDoc checks a decoded YAML or JSON document against the
// profile schema. YAML scalars are round-tripped through JSON first because
// the validator only understands encoding/json value types.
func validateProfileDoc(doc any) error {
	schema, err := compileProfileSchema()
	if err != nil {
		return fmt.Errorf("failed to compile profile schema: %w", err)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return schema.Validate(v)
}
