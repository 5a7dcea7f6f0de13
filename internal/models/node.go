// Package models contains shared data structures used across the application.
package models

// NodeType is the kind of a node in the compositor's layout tree.
type NodeType string

// Node types reported by sway and i3 in a GET_TREE reply.
const (
	NodeRoot        NodeType = "root"
	NodeOutput      NodeType = "output"
	NodeWorkspace   NodeType = "workspace"
	NodeCon         NodeType = "con"
	NodeFloatingCon NodeType = "floating_con"
	NodeDockarea    NodeType = "dockarea"
)

// IsWindow reports whether nodes of this type can hold an application window.
func (t NodeType) IsWindow() bool {
	return t == NodeCon || t == NodeFloatingCon
}

// WindowProperties holds the X11 properties of a window (XWayland or i3).
type WindowProperties struct {
	Class    *string `json:"class"`
	Instance *string `json:"instance"`
	Title    *string `json:"title"`
}

// Node is one node of a layout tree snapshot.
// Optional fields are pointers because the compositor sends null for them.
type Node struct {
	ID               int64             `json:"id"`
	Type             NodeType          `json:"type"`
	Name             *string           `json:"name"`
	Num              *int              `json:"num"`
	AppID            *string           `json:"app_id"`
	WindowProperties *WindowProperties `json:"window_properties"`
	Focused          bool              `json:"focused"`
	Nodes            []*Node           `json:"nodes"`
	FloatingNodes    []*Node           `json:"floating_nodes"`
}

// NameOr returns the node name, or def when the node has none.
func (n *Node) NameOr(def string) string {
	if n.Name == nil {
		return def
	}
	return *n.Name
}

// HasName reports whether the node carries a non-empty name.
func (n *Node) HasName() bool {
	return n.Name != nil && *n.Name != ""
}
