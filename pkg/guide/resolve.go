package guide

import (
	"github.com/matzehuels/guidedrag/pkg/geom"
)

// Style is the rendering class of a guideline.
type Style string

// Guideline style classes.
const (
	StyleHorizontal Style = "horizontal"
	StyleVertical   Style = "vertical"
	StyleCenter     Style = "center"
)

// Styles lists every style class.
var Styles = []Style{StyleHorizontal, StyleVertical, StyleCenter}

// Guideline is a visible alignment line chosen by [Resolve].
type Guideline struct {
	Axis geom.Axis `json:"axis"`
	Kind geom.Kind `json:"kind"`

	// Coord is the Y of a horizontal line or the X of a vertical line.
	Coord float64 `json:"coord"`

	// Span covers both the dragged node and the matched node along the line.
	Span geom.Span `json:"span"`

	// Source is the ID of the matched node.
	Source string `json:"source"`

	extent geom.Span // matched node's extent along the line
}

// Style returns the class used to pick the line color.
// Center alignments use [StyleCenter] on either axis.
func (g Guideline) Style() Style {
	if g.Kind == geom.Center {
		return StyleCenter
	}
	if g.Axis == geom.Horizontal {
		return StyleHorizontal
	}
	return StyleVertical
}

// Resolution is the output of [Resolve].
type Resolution struct {
	// Raw is the pointer-driven rectangle that was resolved.
	Raw geom.Rect

	// Rect is Raw with every winning alignment applied.
	Rect geom.Rect

	// Horizontal and Vertical hold the winning guideline per axis, or nil.
	Horizontal *Guideline
	Vertical   *Guideline
}

// Delta returns the offset from the raw position to the resolved position.
func (r Resolution) Delta() geom.Point {
	return r.Rect.Position().Sub(r.Raw.Position())
}

// Guide returns the guideline for axis a, or nil if that axis did not snap.
func (r Resolution) Guide(a geom.Axis) *Guideline {
	if a == geom.Horizontal {
		return r.Horizontal
	}
	return r.Vertical
}

// Guidelines returns the non-nil guidelines, horizontal first.
func (r Resolution) Guidelines() []Guideline {
	var out []Guideline
	for _, a := range geom.Axes {
		if g := r.Guide(a); g != nil {
			out = append(out, *g)
		}
	}
	return out
}

// Snapped reports whether any axis has a winner.
func (r Resolution) Snapped() bool {
	return r.Horizontal != nil || r.Vertical != nil
}

// Resolve selects at most one candidate per axis and aligns raw to it.
//
// Axes are independent: an axis without candidates keeps the raw
// coordinate. Candidates are assumed to be within tolerance already, as
// produced by [Generate]; Resolve does not filter by distance.
func Resolve(raw geom.Rect, candidates []Candidate) Resolution {
	res := Resolution{Raw: raw, Rect: raw}

	var best [2]*Candidate
	for i := range candidates {
		c := &candidates[i]
		if cur := best[c.Axis]; cur == nil || better(c, cur) {
			best[c.Axis] = c
		}
	}

	for _, axis := range geom.Axes {
		c := best[axis]
		if c == nil {
			continue
		}
		res.Rect = res.Rect.Align(axis, c.Kind, c.Coord)
		g := &Guideline{
			Axis:   axis,
			Kind:   c.Kind,
			Coord:  c.Coord,
			Source: c.Source,
			extent: c.Extent,
		}
		if axis == geom.Horizontal {
			res.Horizontal = g
		} else {
			res.Vertical = g
		}
	}

	// Spans are computed after both axes moved so each line covers the
	// final position of the dragged node.
	return res.PlacedAt(res.Rect)
}

// PlacedAt returns r with every guideline span recomputed for the dragged
// node sitting at rect. Hosts that leave the node at the raw position call
// it with [Resolution.Raw] so lines cover where the node actually is.
// r itself is not modified.
func (r Resolution) PlacedAt(rect geom.Rect) Resolution {
	for _, p := range [...]**Guideline{&r.Horizontal, &r.Vertical} {
		if *p == nil {
			continue
		}
		g := **p
		g.Span = rect.Extent(g.Axis).Cover(g.extent)
		*p = &g
	}
	return r
}

// better reports whether a should win over b on the same axis.
func better(a, b *Candidate) bool {
	if ac, bc := a.Kind == geom.Center, b.Kind == geom.Center; ac != bc {
		return ac
	}
	if ad, bd := a.AbsDistance(), b.AbsDistance(); ad != bd {
		return ad < bd
	}
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.Kind < b.Kind
}
