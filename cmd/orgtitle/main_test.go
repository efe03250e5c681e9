package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the command tree with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestTitleCmd_JSON(t *testing.T) {
	out, err := run(t, "", "title", "** DONE [#B] Write report :work:urgent:\nCLOSED: [2024-03-02 Sat]\nbody")
	require.NoError(t, err)

	var got struct {
		Title map[string]any `json:"title"`
		Rest  string         `json:"rest"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.EqualValues(t, 2, got.Title["level"])
	assert.Equal(t, "DONE", got.Title["keyword"])
	assert.Equal(t, "B", got.Title["priority"])
	assert.Equal(t, "Write report", got.Title["raw"])
	assert.Equal(t, []any{"work", "urgent"}, got.Title["tags"])
	assert.Contains(t, got.Title, "planning")
	assert.Equal(t, "body", got.Rest)
}

func TestTitleCmd_YAMLFromStdin(t *testing.T) {
	input := "* TODO Plan\n:PROPERTIES:\n:ID: abc\n:END:\n"
	out, err := run(t, input, "title", "--format", "yaml")
	require.NoError(t, err)

	var got struct {
		Title struct {
			Level      int               `yaml:"level"`
			Keyword    string            `yaml:"keyword"`
			Raw        string            `yaml:"raw"`
			Properties map[string]string `yaml:"properties"`
		} `yaml:"title"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))

	assert.Equal(t, 1, got.Title.Level)
	assert.Equal(t, "TODO", got.Title.Keyword)
	assert.Equal(t, "Plan", got.Title.Raw)
	assert.Equal(t, map[string]string{"ID": "abc"}, got.Title.Properties)
	assert.True(t, strings.HasPrefix(out, "title:\n  level: 1\n"), "expected two-space YAML indent, got:\n%s", out)
}

func TestTitleCmd_Vocabulary(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantKeyword string
		wantRaw     string
	}{
		{
			name:        "custom todo keyword",
			args:        []string{"title", "--todo", "NEXT", "* NEXT Call"},
			wantKeyword: "NEXT",
			wantRaw:     "Call",
		},
		{
			name:    "default vocabulary does not know NEXT",
			args:    []string{"title", "* NEXT Call"},
			wantRaw: "NEXT Call",
		},
		{
			name:    "empty done list disables DONE",
			args:    []string{"title", "--done=", "* DONE Call"},
			wantRaw: "DONE Call",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)

			var got titleOutput
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.wantKeyword, got.Title.Keyword)
			assert.Equal(t, tt.wantRaw, got.Title.Raw)
		})
	}
}

func TestTitleCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "not a headline", args: []string{"title", "plain text"}},
		{name: "bad format", args: []string{"title", "--format", "xml", "* a"}},
		{name: "too many args", args: []string{"title", "* a", "* b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			assert.Error(t, err)
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.org"), "* TODO [#A] First :work:\n** Child\n* Old :ARCHIVE:\n")
	writeFile(t, filepath.Join(dir, "sub", "deep", "b.org"), "#+TITLE: B\n* DONE Second :home:\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "* Not org\n")

	pattern := filepath.ToSlash(dir) + "/**/*.org"

	t.Run("text", func(t *testing.T) {
		out, err := run(t, "", "scan", pattern)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[0], "a.org:1: * TODO [#A] First :work:"), lines[0])
		assert.True(t, strings.HasSuffix(lines[1], "a.org:2: ** Child"), lines[1])
		assert.True(t, strings.HasSuffix(lines[2], "b.org:2: * DONE Second :home:"), lines[2])
	})

	t.Run("archived included", func(t *testing.T) {
		out, err := run(t, "", "scan", "--archived", pattern)
		require.NoError(t, err)
		assert.Contains(t, out, "* Old :ARCHIVE:")
	})

	t.Run("tag filter json", func(t *testing.T) {
		out, err := run(t, "", "scan", "--tag", "home", "--format", "json", pattern)
		require.NoError(t, err)

		var items []scanItem
		require.NoError(t, json.Unmarshal([]byte(out), &items))
		require.Len(t, items, 1)
		assert.Equal(t, "Second", items[0].Title.Raw)
		assert.Equal(t, 2, items[0].Line)
		assert.Equal(t, "* Second", items[0].Path)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "", "scan", "--format", "yaml", pattern)
		require.NoError(t, err)

		var items []map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &items))
		assert.Len(t, items, 3)
	})

	t.Run("no match prints nothing", func(t *testing.T) {
		out, err := run(t, "", "scan", filepath.ToSlash(dir)+"/**/*.none")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("overlapping globs are de-duplicated", func(t *testing.T) {
		out, err := run(t, "", "scan", pattern, filepath.ToSlash(dir)+"/*.org")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	})
}

func TestScanCmd_Errors(t *testing.T) {
	_, err := run(t, "", "scan")
	assert.Error(t, err, "scan needs at least one glob")

	_, err = run(t, "", "scan", "--format", "csv", "*.org")
	assert.Error(t, err)

	_, err = run(t, "", "scan", "[")
	assert.Error(t, err)
}

func TestFormatHeadline(t *testing.T) {
	out, err := run(t, "", "title", "*** TODO [#C] x y :a:b:")
	require.NoError(t, err)

	var got titleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "*** TODO [#C] x y :a:b:", formatHeadline(got.Title))
}
