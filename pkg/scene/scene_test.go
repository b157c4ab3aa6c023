package scene

import (
	"math"
	"testing"

	"github.com/matzehuels/guidedrag/pkg/errors"
	"github.com/matzehuels/guidedrag/pkg/geom"
)

func demo() *Scene {
	return New("demo",
		Node{ID: "box", X: 0, Y: 0, W: 200, H: 120},
		Node{ID: "a", X: 10, Y: 10, W: 60, H: 40, Group: "box"},
		Node{ID: "inner", X: 15, Y: 15, W: 10, H: 10, Group: "a"},
		Node{ID: "b", X: 300, Y: 14, W: 60, H: 40},
		Node{ID: "ghost", X: 1000, Y: 1000, W: 5, H: 5, Hidden: true},
	)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr bool
	}{
		{"empty", nil, false},
		{"ok", demo().Nodes, false},
		{"empty id", []Node{{ID: ""}}, true},
		{"padded id", []Node{{ID: " a"}}, true},
		{"duplicate", []Node{{ID: "a"}, {ID: "a"}}, true},
		{"negative size", []Node{{ID: "a", W: -1}}, true},
		{"nan position", []Node{{ID: "a", X: math.NaN()}}, true},
		{"unknown group", []Node{{ID: "a", Group: "nope"}}, true},
		{"self group", []Node{{ID: "a", Group: "a"}}, true},
		{"group cycle", []Node{{ID: "a", Group: "b"}, {ID: "b", Group: "c"}, {ID: "c", Group: "a"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("t", tt.nodes...).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidScene) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidScene)
			}
		})
	}
}

func TestAncestorsAndMembers(t *testing.T) {
	s := demo()

	got := s.Ancestors("inner")
	if len(got) != 2 || got[0] != "a" || got[1] != "box" {
		t.Errorf("Ancestors(inner) = %v, want [a box]", got)
	}
	if got := s.Ancestors("b"); len(got) != 0 {
		t.Errorf("Ancestors(b) = %v, want none", got)
	}
	if got := s.Ancestors("missing"); len(got) != 0 {
		t.Errorf("Ancestors(missing) = %v, want none", got)
	}
	if !s.IsGroup("box") || s.IsGroup("b") {
		t.Error("IsGroup mismatch")
	}
	if m := s.Members("box"); len(m) != 1 || m[0] != "a" {
		t.Errorf("Members(box) = %v", m)
	}
}

func TestNodeLookup(t *testing.T) {
	s := demo()
	n, ok := s.Node("b")
	if !ok || n.X != 300 {
		t.Fatalf("Node(b) = %+v, %v", n, ok)
	}
	n.X = 5
	if s.Nodes[3].X != 5 {
		t.Error("Node() should return a pointer into the scene")
	}

	s.Add(Node{ID: "c", W: 1, H: 1})
	if _, ok := s.Node("c"); !ok {
		t.Error("Node(c) not found after Add")
	}
	if _, ok := s.Node("zzz"); ok {
		t.Error("Node(zzz) found")
	}
}

func TestBounds(t *testing.T) {
	got := demo().Bounds()
	want := geom.Rect{X: 0, Y: 0, W: 360, H: 120}
	if got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := New("empty").Bounds(); got != (geom.Rect{}) {
		t.Errorf("empty Bounds() = %v", got)
	}
}

func TestClone(t *testing.T) {
	s := demo()
	c := s.Clone()
	c.Nodes[0].X = 99
	if s.Nodes[0].X == 99 {
		t.Error("Clone() shares node storage")
	}
	if c.Name != s.Name || len(c.Nodes) != len(s.Nodes) {
		t.Errorf("Clone() = %+v", c)
	}
}

func TestModel(t *testing.T) {
	s := demo()
	m := s.Model()

	nodes := m.Nodes()
	if len(nodes) != len(s.Nodes) {
		t.Fatalf("Nodes() = %d, want %d", len(nodes), len(s.Nodes))
	}
	if nodes[1].Group != "box" || !nodes[1].Visible {
		t.Errorf("Nodes()[1] = %+v", nodes[1])
	}
	if nodes[4].Visible {
		t.Error("hidden node reported visible")
	}

	if err := m.SetPosition("a", geom.Point{X: 7, Y: 8}); err != nil {
		t.Fatalf("SetPosition() = %v", err)
	}
	if n, _ := s.Node("a"); n.X != 7 || n.Y != 8 || n.W != 60 {
		t.Errorf("a = %+v", n)
	}
	if err := m.SetPosition("nope", geom.Point{}); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("SetPosition(nope) = %v, want %v", err, errors.ErrCodeNodeNotFound)
	}
}

func TestNodeName(t *testing.T) {
	if got := (Node{ID: "a"}).Name(); got != "a" {
		t.Errorf("Name() = %q", got)
	}
	if got := (Node{ID: "a", Label: "Alpha"}).Name(); got != "Alpha" {
		t.Errorf("Name() = %q", got)
	}
}
