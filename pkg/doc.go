// Package pkg provides the libraries behind guidedrag, an alignment engine
// for diagram editors.
//
// # Overview
//
// While a user drags nodes across a canvas, guidedrag finds nearby nodes whose
// edges or centers line up with the dragged bounds, shows guide lines for the
// best match on each axis and snaps the drag onto them. The pkg directory is
// organized in layers:
//
//  1. [geom] - Rectangles, axes and alignment kinds
//  2. [guide] - Candidate generation and snap resolution (pure functions)
//  3. [overlay] - Guide line bookkeeping against a renderer
//  4. [drag] - The drag session state machine over a host model
//  5. [scene] - A concrete node model with JSON/TOML files and drag scripts
//  6. [render] - SVG, PNG and Graphviz snapshots of a scene and its guides
//
// Supporting packages: [config] (TOML options), [errors] (coded errors),
// [observability] (hooks) and [buildinfo].
//
// # Architecture
//
// One pointer move flows through the layers like this:
//
//	pointer event
//	     ↓
//	[drag] Controller.Move (raw bounds = start bounds at pointer)
//	     ↓
//	[drag] Eligible → [guide] Generate → [guide] Resolve
//	     ↓
//	[overlay] Manager.Reconcile (draw / update / remove lines)
//	     ↓
//	host model SetPosition for every dragged node
//
// # Quick Start
//
//	sc, err := scene.ReadFile("board.json")
//	if err != nil {
//	    return err
//	}
//	ctl := drag.New(sc.Model(), overlay.NewRecorder(), config.Default())
//	if _, err := ctl.Start([]string{"note"}, ""); err != nil {
//	    return err
//	}
//	res, err := ctl.Move(470, 23)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Rect, res.Guides)
//	_, err = ctl.Drop()
//
// [geom]: github.com/matzehuels/guidedrag/pkg/geom
// [guide]: github.com/matzehuels/guidedrag/pkg/guide
// [overlay]: github.com/matzehuels/guidedrag/pkg/overlay
// [drag]: github.com/matzehuels/guidedrag/pkg/drag
// [scene]: github.com/matzehuels/guidedrag/pkg/scene
// [render]: github.com/matzehuels/guidedrag/pkg/render
// [config]: github.com/matzehuels/guidedrag/pkg/config
// [errors]: github.com/matzehuels/guidedrag/pkg/errors
// [observability]: github.com/matzehuels/guidedrag/pkg/observability
// [buildinfo]: github.com/matzehuels/guidedrag/pkg/buildinfo
package pkg
