package guide

import (
	"fmt"
	"math"

	"github.com/matzehuels/guidedrag/pkg/geom"
)

// Target is a node the dragged node may align with.
type Target struct {
	ID   string
	Rect geom.Rect
}

// Candidate is a proposed alignment between the dragged node and one target.
type Candidate struct {
	Axis geom.Axis
	Kind geom.Kind

	// Coord is the target's coordinate; a snap moves the dragged node onto it.
	Coord float64

	// Distance is Coord minus the dragged node's coordinate of the same kind.
	Distance float64

	// Source is the ID of the target the coordinate came from.
	Source string

	// Extent is the target's extent along the guide direction, used to size
	// the guide line without holding on to the target itself.
	Extent geom.Span
}

// AbsDistance returns |Distance|.
func (c Candidate) AbsDistance() float64 { return math.Abs(c.Distance) }

func (c Candidate) String() string {
	return fmt.Sprintf("%s/%s %g from %s (d=%g)", c.Axis, c.Kind, c.Coord, c.Source, c.Distance)
}

// Scan is the output of [Generate].
type Scan struct {
	Candidates []Candidate

	// Skipped lists targets excluded because of malformed geometry.
	Skipped []string
}

// Generate proposes every like-kind alignment between dragged and targets
// whose distance is at most tolerance.
//
// Targets with non-finite coordinates or negative sizes are skipped and
// reported in [Scan.Skipped]. A negative tolerance yields no candidates.
// Candidates are emitted in target order, horizontal axis first, then by kind.
func Generate(dragged geom.Rect, targets []Target, tolerance float64) Scan {
	var scan Scan
	if tolerance < 0 || math.IsNaN(tolerance) {
		return scan
	}

	mine := [2][3]float64{
		dragged.Coords(geom.Horizontal),
		dragged.Coords(geom.Vertical),
	}

	for _, t := range targets {
		if !t.Rect.Valid() {
			scan.Skipped = append(scan.Skipped, t.ID)
			continue
		}
		for _, axis := range geom.Axes {
			theirs := t.Rect.Coords(axis)
			for _, kind := range geom.Kinds {
				d := theirs[kind] - mine[axis][kind]
				if math.Abs(d) > tolerance {
					continue
				}
				scan.Candidates = append(scan.Candidates, Candidate{
					Axis:     axis,
					Kind:     kind,
					Coord:    theirs[kind],
					Distance: d,
					Source:   t.ID,
					Extent:   t.Rect.Extent(axis),
				})
			}
		}
	}
	return scan
}
