package geom

import (
	"fmt"
	"math"
)

// Axis identifies the orientation of a guide line.
type Axis int

const (
	// Horizontal lines align Y coordinates.
	Horizontal Axis = iota
	// Vertical lines align X coordinates.
	Vertical
)

// Axes lists both axes in resolution order.
var Axes = [...]Axis{Horizontal, Vertical}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// MarshalText encodes the axis by name.
func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText decodes an axis name produced by MarshalText.
func (a *Axis) UnmarshalText(b []byte) error {
	switch string(b) {
	case "horizontal":
		*a = Horizontal
	case "vertical":
		*a = Vertical
	default:
		return fmt.Errorf("unknown axis %q", b)
	}
	return nil
}

// Kind identifies which coordinate of a rectangle along an axis is meant.
type Kind int

const (
	// Min is the left edge (vertical axis) or top edge (horizontal axis).
	Min Kind = iota
	// Center is the midpoint.
	Center
	// Max is the right edge (vertical axis) or bottom edge (horizontal axis).
	Max
)

// Kinds lists every kind in index order.
var Kinds = [...]Kind{Min, Center, Max}

func (k Kind) String() string {
	switch k {
	case Min:
		return "edge-min"
	case Center:
		return "center"
	case Max:
		return "edge-max"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "edge-min":
		*k = Min
	case "center":
		*k = Center
	case "edge-max":
		*k = Max
	default:
		return fmt.Errorf("unknown kind %q", b)
	}
	return nil
}

// IsEdge reports whether k is one of the two edge kinds.
func (k Kind) IsEdge() bool { return k == Min || k == Max }

// Point is a position in diagram coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Box is the derived bounding box of a [Rect].
type Box struct {
	Left, Top        float64
	Right, Bottom    float64
	CenterX, CenterY float64
}

// Box returns the bounding box of r.
func (r Rect) Box() Box {
	return Box{
		Left:    r.X,
		Top:     r.Y,
		Right:   r.X + r.W,
		Bottom:  r.Y + r.H,
		CenterX: r.X + r.W/2,
		CenterY: r.Y + r.H/2,
	}
}

// Position returns the top-left corner.
func (r Rect) Position() Point { return Point{r.X, r.Y} }

// At returns r moved so that its top-left corner is p.
func (r Rect) At(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Coord returns the coordinate of kind k that a guide on axis a would align.
func (r Rect) Coord(a Axis, k Kind) float64 {
	return r.Coords(a)[k]
}

// Coords returns the min edge, center and max edge for axis a, indexed by [Kind].
func (r Rect) Coords(a Axis) [3]float64 {
	if a == Horizontal {
		return [3]float64{r.Y, r.Y + r.H/2, r.Y + r.H}
	}
	return [3]float64{r.X, r.X + r.W/2, r.X + r.W}
}

// Shift returns r moved by d along the coordinate aligned by axis a.
func (r Rect) Shift(a Axis, d float64) Rect {
	if a == Horizontal {
		r.Y += d
	} else {
		r.X += d
	}
	return r
}

// Align returns r moved along axis a so that its coordinate of kind k is
// v. The new position is derived from v, not from r's old position.
//
// Min alignments always read back as v. Center and max alignments read back
// as p+size, which rounds: when no float64 position makes that sum equal v,
// the position v-size is still the one whose read-back lies nearest to v.
// For positions between 0 and v that is within one ulp of v.
func (r Rect) Align(a Axis, k Kind, v float64) Rect {
	size := r.W
	if a == Horizontal {
		size = r.H
	}

	var p float64
	switch k {
	case Min:
		p = v
	case Center:
		p = v - size/2
	case Max:
		p = v - size
	}

	if a == Horizontal {
		r.Y = p
	} else {
		r.X = p
	}
	return r
}

// Extent returns the span r covers along the direction a guide on axis a is drawn.
// A horizontal guide runs along X, so the extent is [Left, Right].
func (r Rect) Extent(a Axis) Span {
	if a == Horizontal {
		return Span{r.X, r.X + r.W}
	}
	return Span{r.Y, r.Y + r.H}
}

// Valid reports whether every component is finite and the size is non-negative.
func (r Rect) Valid() bool {
	for _, v := range [...]float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.W >= 0 && r.H >= 0
}

// Inflate grows r by d on every side. A negative d shrinks it.
func (r Rect) Inflate(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Intersects reports whether r and o overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W &&
		r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.X, o.X)
	top := math.Min(r.Y, o.Y)
	right := math.Max(r.X+r.W, o.X+o.W)
	bottom := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

// Span is a closed interval along one direction.
type Span struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Len returns the length of the interval.
func (s Span) Len() float64 { return s.Max - s.Min }

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	return Span{math.Min(s.Min, o.Min), math.Max(s.Max, o.Max)}
}

// Distance returns the absolute distance between two coordinates.
func Distance(a, b float64) float64 { return math.Abs(a - b) }
