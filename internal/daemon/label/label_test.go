package label

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/workstyle/internal/logger"
	"github.com/watchfire-io/workstyle/internal/models"
)

// mapIcons is an IconFetcher backed by a map; titles are looked up when the
// identity is empty.
type mapIcons struct {
	byIdentity map[string]string
	byTitle    map[string]string
	calls      []string
}

func (m *mapIcons) FetchIcon(identity string, title *string) string {
	m.calls = append(m.calls, identity)
	if icon, ok := m.byIdentity[identity]; ok {
		return icon
	}
	if title != nil {
		if icon, ok := m.byTitle[*title]; ok {
			return icon
		}
	}
	return "?"
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func window(appID, class, title string) *models.Node {
	n := &models.Node{Type: models.NodeCon, Name: str(title)}
	if appID != "" {
		n.AppID = str(appID)
	}
	if class != "" {
		n.WindowProperties = &models.WindowProperties{Class: str(class)}
	}
	return n
}

func wrap(icon string) string {
	return "\u202d" + icon + "\u202c"
}

func newSynth(icons *mapIcons, dedup bool) (*Synthesizer, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Synthesizer{
		Icons:       icons,
		Deduplicate: dedup,
		Logger:      logger.New(&buf, logger.LevelDebug, "label"),
	}, &buf
}

func TestSynthesizeEmptyWorkspace(t *testing.T) {
	s, _ := newSynth(&mapIcons{}, false)
	ws := &models.Node{ID: 1, Type: models.NodeWorkspace, Name: str("3: x "), Num: num(3)}

	res, err := s.Synthesize(ws, nil)
	require.NoError(t, err)
	assert.Equal(t, "3", res.Label)
	assert.True(t, res.NeedsRename())
	assert.Equal(t, `rename workspace "3: x " to "3"`, res.Command())
}

func TestSynthesizeSingleWindow(t *testing.T) {
	s, _ := newSynth(&mapIcons{byIdentity: map[string]string{"firefox": "🦊"}}, false)
	ws := &models.Node{ID: 1, Type: models.NodeWorkspace, Name: str("1"), Num: num(1)}

	res, err := s.Synthesize(ws, []*models.Node{window("firefox", "", "Mozilla Firefox")})
	require.NoError(t, err)
	assert.Equal(t, "1: \u202d🦊\u202c ", res.Label)
}

func TestSynthesizeIsIdempotent(t *testing.T) {
	icons := &mapIcons{byIdentity: map[string]string{"firefox": "F", "foot": "T"}}
	s, _ := newSynth(icons, false)
	windows := []*models.Node{window("firefox", "", "web"), window("foot", "", "shell")}
	ws := &models.Node{ID: 1, Type: models.NodeWorkspace, Name: str("1"), Num: num(1)}

	first, err := s.Synthesize(ws, windows)
	require.NoError(t, err)
	require.True(t, first.NeedsRename())

	// The compositor now reports the new name.
	ws.Name = str(first.Label)
	for i := 0; i < 3; i++ {
		again, err := s.Synthesize(ws, windows)
		require.NoError(t, err)
		assert.False(t, again.NeedsRename())
		assert.Equal(t, first.Label, again.Label)
	}
}

func TestSynthesizeDeduplication(t *testing.T) {
	icons := &mapIcons{byIdentity: map[string]string{"code": "C"}}
	windows := []*models.Node{window("code", "", "untitled"), window("code", "", "untitled")}
	ws := &models.Node{ID: 1, Type: models.NodeWorkspace, Name: str("2"), Num: num(2)}

	s, _ := newSynth(icons, false)
	res, err := s.Synthesize(ws, windows)
	require.NoError(t, err)
	assert.Equal(t, "2: "+wrap("C")+" "+wrap("C")+" ", res.Label)

	s, _ = newSynth(icons, true)
	res, err = s.Synthesize(ws, windows)
	require.NoError(t, err)
	assert.Equal(t, "2: "+wrap("C")+" ", res.Label)
}

func TestSynthesizeDeduplicationSortsPairs(t *testing.T) {
	icons := &mapIcons{byIdentity: map[string]string{"a": "A", "b": "B"}, byTitle: map[string]string{"x": "X"}}
	windows := []*models.Node{
		window("b", "", "one"),
		window("a", "", "two"),
		window("", "", "x"),
		window("a", "", "two"),
	}
	ws := &models.Node{ID: 1, Type: models.NodeWorkspace, Name: str("1"), Num: num(1)}

	s, _ := newSynth(icons, true)
	res, err := s.Synthesize(ws, windows)
	require.NoError(t, err)
	// Missing identity first, then a, then b.
	assert.Equal(t, "1: "+wrap("X")+" "+wrap("A")+" "+wrap("B")+" ", res.Label)
}

func TestSynthesizeDeduplicatesRenderedIcons(t *testing.T) {
	// Different pairs, same glyph: consecutive duplicates collapse.
	icons := &mapIcons{byIdentity: map[string]string{"alacritty": "T", "foot": "T", "zathura": "Z"}}
	windows := []*models.Node{
		window("alacritty", "", "a"),
		window("foot", "", "b"),
		window("zathura", "", "c"),
	}
	ws := &models.Node{ID: 1, Type: models.NodeWorkspace, Name: str("1"), Num: num(1)}

	s, _ := newSynth(icons, true)
	res, err := s.Synthesize(ws, windows)
	require.NoError(t, err)
	assert.Equal(t, "1: "+wrap("T")+" "+wrap("Z")+" ", res.Label)
}

func TestSynthesizeMissingIdentity(t *testing.T) {
	icons := &mapIcons{byTitle: map[string]string{"Settings": "S"}}
	s, logs := newSynth(icons, false)
	ws := &models.Node{ID: 1, Type: models.NodeWorkspace, Name: str("4"), Num: num(4)}

	res, err := s.Synthesize(ws, []*models.Node{window("", "", "Settings")})
	require.NoError(t, err)
	assert.Equal(t, "4: "+wrap("S")+" ", res.Label)
	assert.Equal(t, []string{""}, icons.calls)
	assert.Contains(t, logs.String(), "WARN")
	assert.Contains(t, logs.String(), `No exact name found for window with title="Settings"`)
}

func TestSynthesizeMissingIndex(t *testing.T) {
	icons := &mapIcons{byIdentity: map[string]string{"firefox": "F"}}
	s, logs := newSynth(icons, false)
	ws := &models.Node{ID: 9, Type: models.NodeWorkspace, Name: str("music")}

	res, err := s.Synthesize(ws, []*models.Node{window("firefox", "", "web")})
	require.NoError(t, err)
	assert.Equal(t, FallbackLabel, res.Label)
	assert.True(t, res.NeedsRename())
	assert.Contains(t, logs.String(), "ERROR")
	assert.Contains(t, logs.String(), "music")

	res, err = s.Synthesize(ws, nil)
	require.NoError(t, err)
	assert.Equal(t, " ", res.Label)
}

func TestSynthesizeMissingName(t *testing.T) {
	s, _ := newSynth(&mapIcons{}, false)
	_, err := s.Synthesize(&models.Node{ID: 5, Type: models.NodeWorkspace, Num: num(5)}, nil)
	assert.ErrorIs(t, err, ErrNoWorkspaceName)
}

func TestSynthesizeWithoutLogger(t *testing.T) {
	s := &Synthesizer{Icons: &mapIcons{}}
	res, err := s.Synthesize(&models.Node{Type: models.NodeWorkspace, Name: str("x")}, []*models.Node{window("", "", "t")})
	require.NoError(t, err)
	assert.Equal(t, FallbackLabel, res.Label)
}

func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		name string
		node *models.Node
		want Identity
	}{
		{name: "app id", node: window("foot", "", "t"), want: Identity{Source: SourceAppID, Name: "foot"}},
		{name: "class", node: window("", "Gimp", "t"), want: Identity{Source: SourceClass, Name: "Gimp"}},
		{name: "class wins", node: window("gimp-wayland", "Gimp", "t"), want: Identity{Source: SourceClass, Name: "Gimp"}},
		{name: "none", node: window("", "", "t"), want: Identity{Source: SourceNone}},
		{
			name: "properties without class",
			node: &models.Node{AppID: str("foot"), WindowProperties: &models.WindowProperties{Instance: str("i")}},
			want: Identity{Source: SourceAppID, Name: "foot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveIdentity(tt.node))
		})
	}
}

func TestRenameCommand(t *testing.T) {
	assert.Equal(t, `rename workspace "1" to "1: a "`, RenameCommand("1", "1: a "))
}

func TestStripMarks(t *testing.T) {
	assert.Equal(t, "1: a b ", StripMarks("1: "+wrap("a")+" "+wrap("b")+" "))
	assert.Equal(t, "2", StripMarks("2"))
}
