package ipc

import (
	sway "github.com/joshuarubin/go-sway"

	"github.com/watchfire-io/workstyle/internal/models"
)

// convertNode copies a go-sway tree into the model. go-sway reports absent
// strings as "", which becomes nil here; nums maps workspace names to indices.
func convertNode(n *sway.Node, nums map[string]int) *models.Node {
	if n == nil {
		return nil
	}

	out := &models.Node{
		ID:      int64(n.ID),
		Type:    models.NodeType(n.Type),
		Name:    optional(n.Name),
		AppID:   n.AppID,
		Focused: n.Focused,
	}
	if out.Type == models.NodeWorkspace {
		if num, ok := nums[n.Name]; ok {
			out.Num = &num
		}
	}
	if p := n.WindowProperties; p != nil {
		out.WindowProperties = &models.WindowProperties{
			Class:    optional(p.Class),
			Instance: optional(p.Instance),
			Title:    optional(p.Title),
		}
	}

	for _, child := range n.Nodes {
		out.Nodes = append(out.Nodes, convertNode(child, nums))
	}
	for _, child := range n.FloatingNodes {
		out.FloatingNodes = append(out.FloatingNodes, convertNode(child, nums))
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
