// Package label turns the windows of a workspace into its display name.
package label

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/watchfire-io/workstyle/internal/logger"
	"github.com/watchfire-io/workstyle/internal/models"
)

// Directional formatting marks. Wrapping each icon in LRO ... PDF keeps
// right-to-left glyphs from reordering the label.
const (
	leftToRightOverride  = "\u202d"
	popDirectionalFormat = "\u202c"
)

// FallbackLabel is used when a workspace has no index.
const FallbackLabel = " "

// ErrNoWorkspaceName is returned for a workspace node without a name.
var ErrNoWorkspaceName = errors.New("workspace has no name")

// IconFetcher looks up the icon of a window. It must always return an icon.
type IconFetcher interface {
	FetchIcon(identity string, title *string) string
}

// Synthesizer builds workspace labels.
type Synthesizer struct {
	Icons       IconFetcher
	Deduplicate bool
	Logger      *logger.Logger
}

// Result is the outcome of synthesizing one workspace.
type Result struct {
	WorkspaceID int64
	Current     string
	Label       string
}

// NeedsRename reports whether the workspace must be renamed.
func (r Result) NeedsRename() bool {
	return r.Current != r.Label
}

// Command returns the compositor command that applies the label.
func (r Result) Command() string {
	return RenameCommand(r.Current, r.Label)
}

var markStripper = strings.NewReplacer(leftToRightOverride, "", popDirectionalFormat, "")

// StripMarks removes the directional marks from a label for display.
func StripMarks(s string) string {
	return markStripper.Replace(s)
}

// RenameCommand formats a workspace rename. Quotes inside names are not escaped.
func RenameCommand(from, to string) string {
	return fmt.Sprintf("rename workspace \"%s\" to \"%s\"", from, to)
}

// Synthesize computes the label of ws from its windows.
func (s *Synthesizer) Synthesize(ws *models.Node, windows []*models.Node) (Result, error) {
	if ws.Name == nil {
		return Result{}, fmt.Errorf("%w (id %d)", ErrNoWorkspaceName, ws.ID)
	}
	current := *ws.Name

	pairs := make([]Pair, 0, len(windows))
	for _, w := range windows {
		pairs = append(pairs, PairOf(w))
	}
	if s.Deduplicate {
		pairs = dedupPairs(pairs)
	}

	icons := make([]string, 0, len(pairs))
	for _, p := range pairs {
		icons = append(icons, leftToRightOverride+s.fetch(p)+popDirectionalFormat)
	}
	if s.Deduplicate {
		icons = slices.Compact(icons)
	}

	joined := strings.Join(icons, " ")
	if joined != "" {
		joined += " "
	}

	var label string
	switch {
	case ws.Num == nil:
		s.log().Errorf("Could not fetch index for workspace %q (id %d)", current, ws.ID)
		label = FallbackLabel
	case joined != "":
		label = strconv.Itoa(*ws.Num) + ": " + joined
	default:
		label = strconv.Itoa(*ws.Num)
	}

	return Result{WorkspaceID: ws.ID, Current: current, Label: label}, nil
}

func (s *Synthesizer) fetch(p Pair) string {
	if !p.Identity.Known() {
		title := "<none>"
		if p.Title != nil {
			title = strconv.Quote(*p.Title)
		}
		s.log().Warnf("No exact name found for window with title=%s", title)
		return s.Icons.FetchIcon("", p.Title)
	}
	return s.Icons.FetchIcon(p.Identity.Name, p.Title)
}

func (s *Synthesizer) log() *logger.Logger {
	if s.Logger == nil {
		return logger.Discard()
	}
	return s.Logger
}

// dedupPairs collapses pairs with equal identity and title and sorts the rest,
// so the icon order no longer depends on window placement.
func dedupPairs(pairs []Pair) []Pair {
	seen := make(map[pairKey]struct{}, len(pairs))
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		k := p.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Pair) int {
		return a.key().compare(b.key())
	})
	return out
}
