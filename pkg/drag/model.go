package drag

import (
	"github.com/matzehuels/guidedrag/pkg/geom"
	"github.com/matzehuels/guidedrag/pkg/guide"
)

// NodeInfo is the controller's view of one diagram node.
type NodeInfo struct {
	ID      string
	Rect    geom.Rect
	Group   string // containing group's node ID, empty at top level
	Visible bool
}

// Model is the diagram a controller drags nodes in.
//
// Nodes returns a snapshot of every node. SetPosition moves a node's
// top-left corner; the controller calls it only for nodes in the drag set.
type Model interface {
	Nodes() []NodeInfo
	SetPosition(id string, p geom.Point) error
}

// DragSet is the set of nodes moved together by one drag session.
type DragSet struct {
	// Primary is the node whose bounds drive matching.
	Primary string

	// IDs lists every dragged node, requested nodes first, then group
	// members pulled in with them.
	IDs []string

	initial map[string]geom.Rect
}

// Contains reports whether id is dragged.
func (d *DragSet) Contains(id string) bool {
	_, ok := d.initial[id]
	return ok
}

// Initial returns the bounds id had when the drag started.
func (d *DragSet) Initial(id string) (geom.Rect, bool) {
	r, ok := d.initial[id]
	return r, ok
}

// Len returns the number of dragged nodes.
func (d *DragSet) Len() int { return len(d.IDs) }

// parents maps node ID to group ID.
type parents map[string]string

func parentsOf(nodes []NodeInfo) parents {
	p := make(parents, len(nodes))
	for _, n := range nodes {
		if n.Group != "" {
			p[n.ID] = n.Group
		}
	}
	return p
}

// ancestors returns every group containing id, innermost first.
// Cycles are cut at the first repeated group.
func (p parents) ancestors(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	for g := p[id]; g != "" && !seen[g]; g = p[g] {
		seen[g] = true
		out = append(out, g)
	}
	return out
}

// Eligible returns the nodes the primary node may align with.
//
// Hidden nodes, dragged nodes and ancestors of dragged nodes are excluded.
// A positive searchDistance also excludes nodes whose bounds do not meet
// primary inflated by that distance; zero disables the area check. Nodes
// with malformed bounds are passed through so [guide.Generate] reports them.
func Eligible(nodes []NodeInfo, set *DragSet, primary geom.Rect, searchDistance float64) []guide.Target {
	p := parentsOf(nodes)
	excluded := make(map[string]bool)
	for _, id := range set.IDs {
		excluded[id] = true
		for _, g := range p.ancestors(id) {
			excluded[g] = true
		}
	}

	area := primary.Inflate(searchDistance)
	var out []guide.Target
	for _, n := range nodes {
		if !n.Visible || excluded[n.ID] {
			continue
		}
		if n.Rect.Valid() && searchDistance > 0 && !area.Intersects(n.Rect) {
			continue
		}
		out = append(out, guide.Target{ID: n.ID, Rect: n.Rect})
	}
	return out
}
