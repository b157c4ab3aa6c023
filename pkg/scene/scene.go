package scene

import (
	"github.com/matzehuels/guidedrag/pkg/drag"
	"github.com/matzehuels/guidedrag/pkg/errors"
	"github.com/matzehuels/guidedrag/pkg/geom"
)

// Node is one rectangle of a scene.
type Node struct {
	ID     string  `json:"id" toml:"id"`
	Label  string  `json:"label,omitempty" toml:"label,omitempty"`
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	W      float64 `json:"w" toml:"w"`
	H      float64 `json:"h" toml:"h"`
	Group  string  `json:"group,omitempty" toml:"group,omitempty"`
	Hidden bool    `json:"hidden,omitempty" toml:"hidden,omitempty"`
}

// Rect returns the node's bounds.
func (n Node) Rect() geom.Rect {
	return geom.Rect{X: n.X, Y: n.Y, W: n.W, H: n.H}
}

// Name returns the label, or the ID when there is none.
func (n Node) Name() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Scene is a named set of nodes.
type Scene struct {
	Name  string `json:"name,omitempty" toml:"name,omitempty"`
	Nodes []Node `json:"nodes" toml:"nodes"`

	index map[string]int
}

// New returns a scene holding nodes.
func New(name string, nodes ...Node) *Scene {
	return &Scene{Name: name, Nodes: nodes}
}

func (s *Scene) lookup(id string) (int, bool) {
	if s.index == nil || len(s.index) != len(s.Nodes) {
		s.reindex()
	}
	i, ok := s.index[id]
	if ok && (i >= len(s.Nodes) || s.Nodes[i].ID != id) {
		s.reindex()
		i, ok = s.index[id]
	}
	return i, ok
}

func (s *Scene) reindex() {
	s.index = make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		if _, dup := s.index[n.ID]; !dup {
			s.index[n.ID] = i
		}
	}
}

// Node returns the node with the given ID.
func (s *Scene) Node(id string) (*Node, bool) {
	i, ok := s.lookup(id)
	if !ok {
		return nil, false
	}
	return &s.Nodes[i], true
}

// Add appends a node. The scene is not revalidated.
func (s *Scene) Add(n Node) {
	s.Nodes = append(s.Nodes, n)
	s.index = nil
}

// IsGroup reports whether any node names id as its group.
func (s *Scene) IsGroup(id string) bool {
	for _, n := range s.Nodes {
		if n.Group == id {
			return true
		}
	}
	return false
}

// Members returns the IDs of the nodes directly inside group id.
func (s *Scene) Members(id string) []string {
	var out []string
	for _, n := range s.Nodes {
		if n.Group == id {
			out = append(out, n.ID)
		}
	}
	return out
}

// Ancestors returns every group containing id, innermost first.
func (s *Scene) Ancestors(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	n, ok := s.Node(id)
	for ok && n.Group != "" && !seen[n.Group] {
		seen[n.Group] = true
		out = append(out, n.Group)
		n, ok = s.Node(n.Group)
	}
	return out
}

// Bounds returns the union of all visible nodes' bounds.
func (s *Scene) Bounds() geom.Rect {
	var b geom.Rect
	first := true
	for _, n := range s.Nodes {
		if n.Hidden || !n.Rect().Valid() {
			continue
		}
		if first {
			b, first = n.Rect(), false
			continue
		}
		b = b.Union(n.Rect())
	}
	return b
}

// Clone returns a deep copy of s.
func (s *Scene) Clone() *Scene {
	c := &Scene{Name: s.Name, Nodes: make([]Node, len(s.Nodes))}
	copy(c.Nodes, s.Nodes)
	return c
}

// IDs returns every node ID in scene order.
func (s *Scene) IDs() []string {
	out := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = n.ID
	}
	return out
}

// Validate checks that IDs are well formed and unique, sizes are finite and
// non-negative, and groups name existing nodes without forming cycles.
func (s *Scene) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "node %q", n.ID)
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate node %q", n.ID)
		}
		seen[n.ID] = true
		if !n.Rect().Valid() {
			return errors.New(errors.ErrCodeInvalidScene, "node %q has malformed bounds %s", n.ID, n.Rect())
		}
	}

	for _, n := range s.Nodes {
		if n.Group == "" {
			continue
		}
		if !seen[n.Group] {
			return errors.New(errors.ErrCodeInvalidScene, "node %q is in unknown group %q", n.ID, n.Group)
		}
		visited := map[string]bool{n.ID: true}
		for g := n.Group; g != ""; {
			if visited[g] {
				return errors.New(errors.ErrCodeInvalidScene, "group cycle through %q", n.ID)
			}
			visited[g] = true
			gn, ok := s.Node(g)
			if !ok {
				break
			}
			g = gn.Group
		}
	}
	s.reindex()
	return nil
}

// Model returns s as a [drag.Model].
func (s *Scene) Model() drag.Model { return model{s} }

type model struct{ s *Scene }

func (m model) Nodes() []drag.NodeInfo {
	out := make([]drag.NodeInfo, len(m.s.Nodes))
	for i, n := range m.s.Nodes {
		out[i] = drag.NodeInfo{
			ID:      n.ID,
			Rect:    n.Rect(),
			Group:   n.Group,
			Visible: !n.Hidden,
		}
	}
	return out
}

func (m model) SetPosition(id string, p geom.Point) error {
	n, ok := m.s.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q", id)
	}
	n.X, n.Y = p.X, p.Y
	return nil
}
