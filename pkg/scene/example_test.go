package scene_test

import (
	"fmt"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/drag"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

func Example() {
	s := scene.New("pair",
		scene.Node{ID: "a", X: 10, Y: 10, W: 40, H: 40},
		scene.Node{ID: "b", X: 200, Y: 14, W: 40, H: 40},
	)
	rec := overlay.NewRecorder()
	ctl := drag.New(s.Model(), rec, config.Default())

	ctl.Start([]string{"a"}, "a")
	res, _ := ctl.Move(150, 12)
	for _, g := range res.Guides {
		fmt.Printf("%s %s guide at %g from %s\n", g.Axis, g.Kind, g.Coord, g.Source)
	}

	ctl.Drop()
	a, _ := s.Node("a")
	fmt.Printf("a dropped at (%g, %g), %d guides left\n", a.X, a.Y, rec.Len())
	// Output:
	// horizontal center guide at 34 from b
	// a dropped at (150, 14), 0 guides left
}

func ExampleScript_Play() {
	s := scene.New("pair",
		scene.Node{ID: "a", X: 10, Y: 10, W: 40, H: 40},
		scene.Node{ID: "b", X: 200, Y: 14, W: 40, H: 40},
	)
	script := &scene.Script{Events: []scene.Event{
		{Kind: scene.EventStart, Nodes: []string{"a"}},
		{Kind: scene.EventMove, X: 150, Y: 12},
		{Kind: scene.EventCancel},
	}}

	ctl := drag.New(s.Model(), nil, config.Default())
	script.Play(ctl, func(st scene.Step) error {
		fmt.Printf("%-10s -> %s at %s\n", st.Event, st.Result.State, st.Result.Rect)
		return nil
	})
	// Output:
	// start [a]  -> dragging at (10,10 40x40)
	// move 150,12 -> dragging at (150,14 40x40)
	// cancel     -> idle at (10,10 40x40)
}
