// Package guide computes alignment candidates and snap decisions for a
// dragged node.
//
// # Overview
//
// Guided dragging runs two pure steps on every pointer move:
//
//  1. [Generate] scans the eligible target nodes and proposes a [Candidate]
//     for every like-kind coordinate pair within tolerance: top/top,
//     center-y/center-y, bottom/bottom on the horizontal axis and
//     left/left, center-x/center-x, right/right on the vertical axis.
//  2. [Resolve] picks at most one winner per axis, moves the dragged
//     rectangle so the matched coordinate lines up exactly, and describes
//     the [Guideline] to show for each axis that snapped.
//
// Neither step has side effects. Deciding which nodes are eligible and
// applying the result to a diagram is left to the caller (see package drag).
//
// # Tie-breaking
//
// When several candidates compete on one axis the winner is chosen by, in order:
//
//   - Center candidates beat edge candidates
//   - Smaller absolute distance wins
//   - Lower source node ID wins (byte-wise string order)
//   - For the same node, the min edge beats the max edge
//
// The ordering is total, so identical input always yields identical output.
//
// # Example
//
//	scan := guide.Generate(dragged, targets, 6)
//	res := guide.Resolve(dragged, scan.Candidates)
//	if g := res.Horizontal; g != nil {
//	    fmt.Println("snap to y =", g.Coord)
//	}
package guide
