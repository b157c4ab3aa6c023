// Package geom provides the axis-aligned rectangle math used by the
// alignment engine.
//
// # Overview
//
// Every node in a diagram is treated as an axis-aligned rectangle. The
// engine never looks at shapes, templates or labels; all it needs is the
// position and size of each node. From a [Rect] this package derives:
//
//   - The bounding [Box] (left, top, right, bottom, center X, center Y)
//   - The three meaningful coordinates per [Axis]: min edge, center, max edge
//   - Extents ([Span]) used to size guide lines
//
// All coordinates are in diagram units (pixels). The Y axis grows
// downward, so Top < Bottom for a rectangle with positive height.
//
// # Axes
//
// [Horizontal] names a horizontal guide line, which aligns Y coordinates
// (top, center-y, bottom). [Vertical] names a vertical guide line, which
// aligns X coordinates (left, center-x, right).
//
//	r := geom.Rect{X: 10, Y: 20, W: 100, H: 50}
//	r.Coord(geom.Horizontal, geom.Center) // 45 (center Y)
//	r.Coord(geom.Vertical, geom.Max)      // 110 (right edge)
//
// Functions in this package are pure and never fail. Callers validate
// foreign input with [Rect.Valid] before relying on the results.
package geom
