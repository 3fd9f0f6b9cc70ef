package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfileFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadRegistryFromYAML(t *testing.T) {
	path := writeProfileFile(t, "profiles.yaml", `
languages:
  - name: sql
    aliases: [postgres]
    extensions: [".sql", psql]
    skip_dirs: [migrations]
    line_comment: "--"
    block_comment_start: "/*"
    block_comment_end: "*/"
  - name: rust
    extensions: [rs]
    line_comment: "//"
`)

	reg, err := loadRegistry(path)
	require.NoError(t, err)

	sql, err := reg.Lookup("Postgres")
	require.NoError(t, err)
	assert.Equal(t, "sql", sql.Name)
	assert.Equal(t, []string{"sql", "psql"}, sql.Extensions)
	assert.Equal(t, []string{"migrations"}, sql.SkipDirs)
	assert.Equal(t, CommentProfile{LineComment: "--", BlockStart: "/*", BlockEnd: "*/"}, sql.Profile)

	rust, err := reg.Lookup("rust")
	require.NoError(t, err)
	assert.Empty(t, rust.SkipDirs)
	assert.False(t, rust.Profile.hasBlockComments())

	assert.Len(t, reg.Names(), 26)
	assert.Equal(t, "SELECT 1;", minify("-- q\nSELECT /* x */ 1;", sql.Profile))
}

func TestLoadRegistryFromJSON(t *testing.T) {
	path := writeProfileFile(t, "profiles.json", `{
  "languages": [
    {"name": "ini", "extensions": ["ini"], "line_comment": ";"}
  ]
}`)

	reg, err := loadRegistry(path)
	require.NoError(t, err)

	ini, err := reg.Lookup("ini")
	require.NoError(t, err)
	assert.Equal(t, "a=1 b=2", minify("a=1 ; first\nb=2", ini.Profile))
}

func TestLoadRegistryWithoutFile(t *testing.T) {
	reg, err := loadRegistry("")
	require.NoError(t, err)
	assert.Len(t, reg.Names(), 25)
}

func TestLoadProfileFileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing languages",
			content: "other: true\n",
		},
		{
			name: "missing extensions",
			content: `languages:
  - name: toml
    line_comment: "#"
`,
		},
		{
			name: "unknown field",
			content: `languages:
  - name: toml
    extensions: [toml]
    comment: "#"
`,
		},
		{
			name: "block start without end",
			content: `languages:
  - name: toml
    extensions: [toml]
    block_comment_start: "(*"
`,
		},
		{
			name: "blank name",
			content: `languages:
  - name: "   "
    extensions: [toml]
`,
		},
		{
			name:    "empty document",
			content: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProfileFile(t, "profiles.yaml", tt.content)
			_, err := loadProfileFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "profile file")
		})
	}
}

func TestLoadProfileFileMalformedYAML(t *testing.T) {
	path := writeProfileFile(t, "profiles.yml", "languages: [\n")
	_, err := loadProfileFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse profile file")
}

func TestLoadProfileFileMissing(t *testing.T) {
	_, err := loadProfileFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExampleProfileFile(t *testing.T) {
	reg, err := loadRegistry("profiles.example.yaml")
	require.NoError(t, err)

	tests := []struct {
		name     string
		lang     string
		input    string
		expected string
	}{
		{
			name: "terraform hash and block comments",
			lang: "tf",
			input: `resource "aws_instance" "web" {
  # This is a comment
  /* This is a
     block comment */
  ami = "ami-123" # inline comment
  description = "This is # not a comment"
}`,
			expected: `resource "aws_instance" "web" { ami = "ami-123" description = "This is # not a comment" }`,
		},
		{
			name: "yaml comments",
			lang: "yml",
			input: `# config
key: "value # not a comment" # comment
list:
  - item1  # first`,
			expected: `key: "value # not a comment" list: - item1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, err := reg.Lookup(tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, minify(tt.input, lang.Profile))
		})
	}
}
