package label

import (
	"cmp"

	"github.com/watchfire-io/workstyle/internal/models"
)

// Source tells where a window identity came from.
type Source int

// Identity sources in precedence order: an X11 class beats a Wayland app id.
const (
	SourceNone Source = iota
	SourceAppID
	SourceClass
)

func (s Source) String() string {
	switch s {
	case SourceClass:
		return "class"
	case SourceAppID:
		return "app_id"
	default:
		return "none"
	}
}

// Identity is the exact application name used for icon lookup.
type Identity struct {
	Source Source
	Name   string
}

// Known reports whether an exact name was found.
func (i Identity) Known() bool {
	return i.Source != SourceNone
}

// ResolveIdentity picks the exact name of a window: its X11 class if present,
// else its app id, else none.
func ResolveIdentity(n *models.Node) Identity {
	if n.WindowProperties != nil && n.WindowProperties.Class != nil {
		return Identity{Source: SourceClass, Name: *n.WindowProperties.Class}
	}
	if n.AppID != nil {
		return Identity{Source: SourceAppID, Name: *n.AppID}
	}
	return Identity{Source: SourceNone}
}

// Pair is the (identity, title) key of a window.
type Pair struct {
	Identity Identity
	Title    *string
}

// PairOf builds the pair of a window node.
func PairOf(n *models.Node) Pair {
	return Pair{Identity: ResolveIdentity(n), Title: n.Name}
}

func (p Pair) key() pairKey {
	k := pairKey{hasIdentity: p.Identity.Known(), identity: p.Identity.Name}
	if p.Title != nil {
		k.hasTitle = true
		k.title = *p.Title
	}
	return k
}

// pairKey is the comparable form of a Pair. Where the name came from does not
// matter for deduplication, only the name itself.
type pairKey struct {
	hasIdentity bool
	identity    string
	hasTitle    bool
	title       string
}

// compare orders keys by identity then title; a missing value sorts first.
func (a pairKey) compare(b pairKey) int {
	if c := compareBool(a.hasIdentity, b.hasIdentity); c != 0 {
		return c
	}
	if c := cmp.Compare(a.identity, b.identity); c != 0 {
		return c
	}
	if c := compareBool(a.hasTitle, b.hasTitle); c != 0 {
		return c
	}
	return cmp.Compare(a.title, b.title)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
