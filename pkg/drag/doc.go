// Package drag runs guided drag sessions over a diagram model.
//
// # Overview
//
// A [Controller] turns pointer events into node positions. While a drag is
// in progress each move is resolved against the other nodes of the diagram:
// the primary node's edges and center are compared with every eligible
// target, the closest alignment per axis wins, and the whole drag set is
// moved by the same offset so relative positions are preserved. Guide lines
// for the winning alignments are drawn through an [overlay.Renderer].
//
// # State Machine
//
// A controller is always in one of four states:
//
//	Idle ──Start──▶ Dragging ──Drop───▶ Committing ──▶ Idle
//	                    │
//	                    └─────Cancel──▶ Cancelling ──▶ Idle
//
// Committing and Cancelling are transient and only observable from inside
// renderer or model callbacks. Events that do not apply to the current
// state are no-ops and report Handled == false. An event delivered while
// another one is still being processed is rejected (Rejected == true) and
// has no effect.
//
// # Eligibility
//
// A node is matched against only if it is visible, not part of the drag
// set, not an ancestor of a dragged node, and its bounds meet the primary
// node's bounds inflated by the configured search distance. Dragging a
// group drags its members with it.
//
// # Configuration
//
// The controller takes a [config.Config] at construction:
//
//   - Enabled false: raw dragging, no guides, no snapping
//   - Snap false: guides are shown but nodes follow the pointer
//   - Realtime false: guides are shown during the drag, the snap is
//     applied once on drop
//   - Tolerance and SearchDistance bound the matching
//
// # Usage
//
//	ctl := drag.New(model, renderer, cfg, drag.WithLogger(logger))
//	if _, err := ctl.Start([]string{"a", "b"}, "a"); err != nil {
//	    return err
//	}
//	res, err := ctl.Move(120, 48)
//	...
//	res, err = ctl.Drop()
//
// The controller is not safe for concurrent use. Hosts receiving events
// from several goroutines must serialize them.
package drag
