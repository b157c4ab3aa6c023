package guide_test

import (
	"fmt"

	"github.com/matzehuels/guidedrag/pkg/geom"
	"github.com/matzehuels/guidedrag/pkg/guide"
)

func ExampleResolve() {
	dragged := geom.Rect{X: 118, Y: 53, W: 40, H: 20}
	targets := []guide.Target{
		{ID: "left", Rect: geom.Rect{X: 0, Y: 50, W: 60, H: 40}},
		{ID: "below", Rect: geom.Rect{X: 120, Y: 200, W: 40, H: 40}},
	}

	scan := guide.Generate(dragged, targets, 6)
	res := guide.Resolve(dragged, scan.Candidates)

	for _, g := range res.Guidelines() {
		fmt.Printf("%s guide at %g (%s of %s)\n", g.Style(), g.Coord, g.Kind, g.Source)
	}
	fmt.Printf("snapped to (%g, %g)\n", res.Rect.X, res.Rect.Y)
	// Output:
	// horizontal guide at 50 (edge-min of left)
	// center guide at 140 (center of below)
	// snapped to (120, 50)
}
