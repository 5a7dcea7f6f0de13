package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/workstyle/internal/models"
)

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func con(id int64, name string, children ...*models.Node) *models.Node {
	n := &models.Node{ID: id, Type: models.NodeCon, Nodes: children}
	if name != "" {
		n.Name = str(name)
	}
	return n
}

func floating(id int64, name string, children ...*models.Node) *models.Node {
	n := con(id, name, children...)
	n.Type = models.NodeFloatingCon
	return n
}

func workspace(id int64, name string, n *int, children ...*models.Node) *models.Node {
	return &models.Node{ID: id, Type: models.NodeWorkspace, Name: str(name), Num: n, Nodes: children}
}

func ids(nodes []*models.Node) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestWorkspacesExcludesScratchpad(t *testing.T) {
	root := &models.Node{ID: 1, Type: models.NodeRoot, Nodes: []*models.Node{
		{ID: 2, Type: models.NodeOutput, Name: str("__i3"), Nodes: []*models.Node{
			workspace(3, ScratchpadName, nil, con(30, "hidden")),
		}},
		{ID: 4, Type: models.NodeOutput, Name: str("eDP-1"), Nodes: []*models.Node{
			{ID: 5, Type: models.NodeDockarea},
			workspace(6, "1", num(1)),
			workspace(7, "2: x", num(2)),
		}},
		{ID: 8, Type: models.NodeOutput, Name: str("HDMI-A-1"), Nodes: []*models.Node{
			workspace(9, "3", num(3)),
		}},
	}}

	got := Workspaces(root)
	assert.Equal(t, []int64{6, 7, 9}, ids(got))
	for _, ws := range got {
		assert.NotEqual(t, ScratchpadName, *ws.Name)
	}
}

func TestWorkspacesScratchpadAtAnyDepth(t *testing.T) {
	deep := &models.Node{ID: 1, Type: models.NodeRoot, Nodes: []*models.Node{
		{ID: 2, Type: models.NodeOutput, Nodes: []*models.Node{
			{ID: 3, Type: models.NodeCon, Nodes: []*models.Node{
				workspace(4, ScratchpadName, nil),
			}},
		}},
	}}

	assert.Empty(t, Workspaces(deep))
	assert.Empty(t, Workspaces(workspace(5, ScratchpadName, nil)))
}

func TestWorkspacesDoesNotDescend(t *testing.T) {
	nested := workspace(2, "1", num(1), workspace(3, "inner", num(9)))
	root := &models.Node{ID: 1, Type: models.NodeRoot, Nodes: []*models.Node{nested}}

	assert.Equal(t, []int64{2}, ids(Workspaces(root)))
}

func TestWindowsDepthFirstAcrossFloatingAndTiled(t *testing.T) {
	ws := workspace(1, "1", num(1),
		con(10, "",
			con(11, "editor"),
			con(12, "",
				con(13, "terminal"),
			),
		),
		con(14, "browser"),
	)
	ws.FloatingNodes = []*models.Node{
		floating(20, "",
			con(21, "dialog"),
		),
		floating(22, "picture-in-picture"),
	}
	// Floating children below a tiled container are visited after its tiled ones.
	ws.Nodes[0].FloatingNodes = []*models.Node{floating(15, "popup")}

	got := Windows(ws)
	assert.Equal(t, []int64{11, 13, 15, 14, 21, 22}, ids(got))
	for _, w := range got {
		require.NotNil(t, w.Name)
		assert.NotEmpty(t, *w.Name)
	}
}

func TestWindowsSkipsUnnamedAndEmpty(t *testing.T) {
	ws := workspace(1, "1", num(1), con(2, ""), con(3, "a"))
	ws.Nodes = append(ws.Nodes, &models.Node{ID: 4, Type: models.NodeCon, Name: str("")})

	assert.Equal(t, []int64{3}, ids(Windows(ws)))
	assert.Empty(t, Windows(workspace(5, "2", num(2))))
}
