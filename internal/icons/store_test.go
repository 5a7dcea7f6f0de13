package icons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
fallback: "?"
matching:
  firefox: "F"
  "/^org\\.gnome\\./": "G"
  org.gnome.Nautilus: "N"
  Settings:
    type: generic
    value: "S"
  "/YouTube/": "Y"
`

func strPtr(s string) *string { return &s }

func TestParsePreservesOrder(t *testing.T) {
	s, err := Parse([]byte(testConfig))
	require.NoError(t, err)
	require.Equal(t, 5, s.Len())
	assert.Equal(t, "?", s.Fallback())

	kinds := make([]MatchKind, 0, s.Len())
	for _, m := range s.matchers {
		kinds = append(kinds, m.Kind)
	}
	assert.Equal(t, []MatchKind{MatchExact, MatchRegex, MatchExact, MatchGeneric, MatchRegex}, kinds)
}

func TestFetchIcon(t *testing.T) {
	s, err := Parse([]byte(testConfig))
	require.NoError(t, err)

	tests := []struct {
		name     string
		identity string
		title    *string
		want     string
	}{
		{name: "exact", identity: "firefox", want: "F"},
		{name: "exact ignores case", identity: "Firefox", want: "F"},
		{name: "first match wins", identity: "org.gnome.Nautilus", want: "G"},
		{name: "generic by title", identity: "", title: strPtr("System Settings"), want: "S"},
		{name: "generic ignores case", identity: "", title: strPtr("settings"), want: "S"},
		{name: "regex by title", identity: "mpv", title: strPtr("Music - YouTube"), want: "Y"},
		{name: "identity beats title", identity: "firefox", title: strPtr("YouTube"), want: "F"},
		{name: "fallback", identity: "unknown-app", title: strPtr("nothing"), want: "?"},
		{name: "fallback without title", identity: "", title: nil, want: "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.FetchIcon(tt.identity, tt.title))
		})
	}
}

func TestParseRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad regex", yaml: "matching:\n  \"/[/\": x\n"},
		{name: "unknown type", yaml: "matching:\n  foo:\n    type: fuzzy\n    value: x\n"},
		{name: "sequence value", yaml: "matching:\n  foo: [a, b]\n"},
		{name: "matching not a map", yaml: "matching: [a]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	s := Default()
	assert.NotZero(t, s.Len())
	assert.Empty(t, s.Path())
	assert.NotEqual(t, s.Fallback(), s.FetchIcon("firefox", nil))
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	s, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), s.Len())

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))

	s, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	assert.Equal(t, "F", s.FetchIcon("firefox", nil))

	require.NoError(t, os.WriteFile(path, []byte("matching: ["), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
