// Package scene is an in-memory diagram of rectangular nodes that drag
// sessions operate on.
//
// # Scene Format
//
// Scenes are read from JSON or TOML; the format follows the file
// extension. A JSON scene:
//
//	{
//	  "name": "demo",
//	  "nodes": [
//	    {"id": "box", "x": 0, "y": 0, "w": 200, "h": 120},
//	    {"id": "a", "label": "Alpha", "x": 10, "y": 10, "w": 60, "h": 40, "group": "box"},
//	    {"id": "b", "x": 300, "y": 14, "w": 60, "h": 40}
//	  ]
//	}
//
// The same scene in TOML:
//
//	name = "demo"
//
//	[[nodes]]
//	id = "box"
//	x = 0
//	y = 0
//	w = 200
//	h = 120
//
//	[[nodes]]
//	id = "a"
//	group = "box"
//	...
//
// A node's group names the node that contains it. Groups nest but may not
// form cycles. Hidden nodes are kept but never matched against.
//
// # Drag Scripts
//
// A [Script] is a replayable sequence of drag events:
//
//	[[events]]
//	event = "start"
//	nodes = ["a"]
//
//	[[events]]
//	event = "move"
//	x = 298
//	y = 12
//
//	[[events]]
//	event = "drop"
//
// [Script.Play] feeds the events to a [drag.Controller] and reports the
// result of each one.
//
// # Model
//
// [Scene.Model] adapts a scene to [drag.Model]. Positions written by the
// controller go straight into the scene's nodes.
package scene
