// Package tree extracts workspaces and windows from a layout tree snapshot.
package tree

import "github.com/watchfire-io/workstyle/internal/models"

// ScratchpadName is the name of the hidden scratchpad workspace.
const ScratchpadName = "__i3_scratch"

// IsScratchpad reports whether n is the scratchpad workspace.
func IsScratchpad(n *models.Node) bool {
	return n.Type == models.NodeWorkspace && n.Name != nil && *n.Name == ScratchpadName
}

// Workspaces returns the workspaces of a snapshot in depth-first pre-order,
// excluding the scratchpad. A workspace's own subtree is not searched.
func Workspaces(root *models.Node) []*models.Node {
	var result []*models.Node
	collectWorkspaces(root, &result)
	return result
}

func collectWorkspaces(n *models.Node, result *[]*models.Node) {
	if n == nil {
		return
	}
	if n.Type == models.NodeWorkspace && !IsScratchpad(n) {
		*result = append(*result, n)
		return
	}
	for _, child := range n.Nodes {
		collectWorkspaces(child, result)
	}
}

// Windows returns every named con and floating_con below ws, depth-first,
// tiled children before floating children at every level.
func Windows(ws *models.Node) []*models.Node {
	var result []*models.Node
	collectWindows(ws, &result)
	return result
}

func collectWindows(n *models.Node, result *[]*models.Node) {
	if n == nil {
		return
	}
	if n.Type.IsWindow() && n.HasName() {
		*result = append(*result, n)
	}
	for _, child := range n.Nodes {
		collectWindows(child, result)
	}
	for _, child := range n.FloatingNodes {
		collectWindows(child, result)
	}
}
