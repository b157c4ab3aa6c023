// Package render draws snapshots of a scene with its visible guide lines.
//
// # Overview
//
// Three outputs are supported:
//
//   - [RenderSVG]: a standalone SVG document, drawn directly
//   - [RenderPNG]: a raster image drawn with gg, labels in Go Mono
//   - [ToDOT] and [RenderDOT]: a Graphviz graph with every node pinned at
//     its scene position, rendered to SVG by neato
//
// All three use scene coordinates. The canvas is the union of the visible
// nodes and guide lines, grown by a padding (20 by default).
//
// # Styling
//
// Guide lines carry their own color and width (see [overlay.Line]); colors
// may be names or hex strings as accepted by [config.ParseColor]. Group
// nodes are drawn dashed beneath their members. Nodes passed to
// [WithDragged] are highlighted.
//
//	lines := ctl.Guides()
//	svg := render.RenderSVG(s, lines, render.WithDragged("a"))
//	png, err := render.RenderPNG(s, lines, render.WithScale(2))
//
//	dot := render.ToDOT(s, lines)
//	svg, err := render.RenderDOT(ctx, dot)
package render
