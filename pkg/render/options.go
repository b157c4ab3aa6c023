package render

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/matzehuels/guidedrag/pkg/geom"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

// DefaultPadding is the margin around the drawn content.
const DefaultPadding = 20.0

// Drawing defaults.
const (
	nodeFill     = "#ffffff"
	nodeStroke   = "#333333"
	draggedFill  = "#dbe9ff"
	draggedLine  = "#1f6feb"
	groupStroke  = "#999999"
	labelColor   = "#222222"
	canvasColor  = "#ffffff"
	labelSize    = 12.0
	strokeWidth  = 1.0
	defaultScale = 1.0
)

// Option configures rendering.
type Option func(*options)

type options struct {
	padding float64
	dragged map[string]bool
	labels  bool
	scale   float64
}

func newOptions(opts ...Option) options {
	o := options{padding: DefaultPadding, labels: true, scale: defaultScale, dragged: map[string]bool{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPadding sets the margin around the content.
func WithPadding(p float64) Option { return func(o *options) { o.padding = p } }

// WithDragged highlights the given nodes.
func WithDragged(ids ...string) Option {
	return func(o *options) {
		for _, id := range ids {
			o.dragged[id] = true
		}
	}
}

// WithoutLabels omits node labels.
func WithoutLabels() Option { return func(o *options) { o.labels = false } }

// WithScale sets the raster scale factor for [RenderPNG]. Other outputs ignore it.
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

// item is a node ready to draw.
type item struct {
	node    scene.Node
	group   bool
	dragged bool
	depth   int
}

// items returns the visible nodes, outer groups first.
func items(s *scene.Scene, o options) []item {
	var out []item
	for _, n := range s.Nodes {
		if n.Hidden || !n.Rect().Valid() {
			continue
		}
		out = append(out, item{
			node:    n,
			group:   s.IsGroup(n.ID),
			dragged: o.dragged[n.ID],
			depth:   len(s.Ancestors(n.ID)),
		})
	}
	slices.SortStableFunc(out, func(a, b item) int {
		if a.group != b.group {
			if a.group {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.depth, b.depth)
	})
	return out
}

// lineRect returns the zero-thickness rectangle a guide line covers.
func lineRect(l overlay.Line) geom.Rect {
	if l.Axis == geom.Horizontal {
		return geom.Rect{X: l.Span.Min, Y: l.Coord, W: l.Span.Len()}
	}
	return geom.Rect{X: l.Coord, Y: l.Span.Min, H: l.Span.Len()}
}

// endpoints returns the two ends of a guide line.
func endpoints(l overlay.Line) (x1, y1, x2, y2 float64) {
	if l.Axis == geom.Horizontal {
		return l.Span.Min, l.Coord, l.Span.Max, l.Coord
	}
	return l.Coord, l.Span.Min, l.Coord, l.Span.Max
}

// frame returns the drawing area for s and lines.
func frame(s *scene.Scene, lines []overlay.Line, pad float64) geom.Rect {
	b := s.Bounds()
	empty := b == (geom.Rect{})
	for _, l := range lines {
		r := lineRect(l)
		if empty {
			b, empty = r, false
			continue
		}
		b = b.Union(r)
	}
	return b.Inflate(pad)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
