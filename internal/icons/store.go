// Package icons maps application identities to icon glyphs.
package icons

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/watchfire-io/workstyle/internal/config"
)

//go:embed default.yaml
var defaultConfig []byte

// DefaultConfig returns the embedded default configuration file.
func DefaultConfig() []byte {
	return defaultConfig
}

// Store is an immutable snapshot of the icon configuration.
// A reload builds a new Store; nothing mutates one after construction.
type Store struct {
	path     string
	fallback string
	matchers []Matcher
}

// New compiles a parsed config file into a Store.
func New(f *File) (*Store, error) {
	s := &Store{fallback: f.Fallback}
	for _, m := range f.Matching {
		if m.Kind == MatchRegex {
			re, err := regexp.Compile(m.Key)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern /%s/: %w", m.Key, err)
			}
			m.re = re
		}
		s.matchers = append(s.matchers, m)
	}
	return s, nil
}

// Parse builds a Store from raw YAML.
func Parse(data []byte) (*Store, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse icon config: %w", err)
	}
	return New(&f)
}

// Load reads and compiles the config file at path.
func Load(path string) (*Store, error) {
	var f File
	if err := config.LoadYAML(path, &f); err != nil {
		return nil, err
	}
	s, err := New(&f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Default returns the store built from the embedded default config.
func Default() *Store {
	s, err := Parse(defaultConfig)
	if err != nil {
		panic("icons: embedded default config is invalid: " + err.Error())
	}
	return s
}

// LoadOrDefault loads path, or the embedded default when path is empty or
// does not exist.
func LoadOrDefault(path string) (*Store, error) {
	if path == "" || !config.FileExists(path) {
		return Default(), nil
	}
	return Load(path)
}

// Path returns the file the store was loaded from, or "" for the default.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of matchers.
func (s *Store) Len() int {
	return len(s.matchers)
}

// Fallback returns the icon used when nothing matches.
func (s *Store) Fallback() string {
	return s.fallback
}

// FetchIcon returns the icon for a window. Exact and regex matchers are tried
// against identity first; if none match, regex and generic matchers are tried
// against the title. It never fails: with no match the fallback icon is returned.
func (s *Store) FetchIcon(identity string, title *string) string {
	if identity != "" {
		for _, m := range s.matchers {
			if m.matchIdentity(identity) {
				return m.Icon
			}
		}
	}
	if title != nil && *title != "" {
		lower := strings.ToLower(*title)
		for _, m := range s.matchers {
			if m.matchTitle(*title, lower) {
				return m.Icon
			}
		}
	}
	return s.fallback
}
