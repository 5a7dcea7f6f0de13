package icons

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// MatchKind selects how a matcher key is compared.
type MatchKind int

const (
	// MatchExact compares the key with the window identity, ignoring case.
	MatchExact MatchKind = iota
	// MatchRegex matches the key as a regular expression against the identity,
	// then against the title.
	MatchRegex
	// MatchGeneric looks for the key inside the window title, ignoring case.
	MatchGeneric
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchRegex:
		return "regex"
	case MatchGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Matcher is one entry of the matching table.
type Matcher struct {
	Kind MatchKind
	Key  string
	Icon string
	re   *regexp.Regexp
}

func (m Matcher) matchIdentity(identity string) bool {
	switch m.Kind {
	case MatchExact:
		return strings.EqualFold(m.Key, identity)
	case MatchRegex:
		return m.re.MatchString(identity)
	}
	return false
}

func (m Matcher) matchTitle(title, lowerTitle string) bool {
	switch m.Kind {
	case MatchRegex:
		return m.re.MatchString(title)
	case MatchGeneric:
		return strings.Contains(lowerTitle, strings.ToLower(m.Key))
	}
	return false
}

// File is the on-disk icon configuration.
type File struct {
	Fallback string   `yaml:"fallback"`
	Matching Matching `yaml:"matching"`
}

// Matching is the ordered matching table. YAML mappings lose their order when
// decoded into a Go map, so it is decoded from the node directly.
type Matching []Matcher

// matchSpec is the long form of a matching value.
type matchSpec struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Matching) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: matching must be a mapping", node.Line)
	}

	out := make(Matching, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}

		matcher, err := parseMatcher(key, valNode)
		if err != nil {
			return fmt.Errorf("line %d: %q: %w", keyNode.Line, key, err)
		}
		out = append(out, matcher)
	}

	*m = out
	return nil
}

func parseMatcher(key string, val *yaml.Node) (Matcher, error) {
	switch val.Kind {
	case yaml.ScalarNode:
		var icon string
		if err := val.Decode(&icon); err != nil {
			return Matcher{}, err
		}
		if pattern, ok := regexKey(key); ok {
			return Matcher{Kind: MatchRegex, Key: pattern, Icon: icon}, nil
		}
		return Matcher{Kind: MatchExact, Key: key, Icon: icon}, nil

	case yaml.MappingNode:
		var spec matchSpec
		if err := val.Decode(&spec); err != nil {
			return Matcher{}, err
		}
		switch spec.Type {
		case "generic":
			return Matcher{Kind: MatchGeneric, Key: key, Icon: spec.Value}, nil
		case "exact", "":
			return Matcher{Kind: MatchExact, Key: key, Icon: spec.Value}, nil
		case "regex":
			pattern, ok := regexKey(key)
			if !ok {
				pattern = key
			}
			return Matcher{Kind: MatchRegex, Key: pattern, Icon: spec.Value}, nil
		default:
			return Matcher{}, fmt.Errorf("unknown match type %q", spec.Type)
		}
	}
	return Matcher{}, fmt.Errorf("value must be a string or a {type, value} mapping")
}

// regexKey unwraps a "/pattern/" key.
func regexKey(key string) (string, bool) {
	if len(key) >= 2 && strings.HasPrefix(key, "/") && strings.HasSuffix(key, "/") {
		return key[1 : len(key)-1], true
	}
	return "", false
}
