package overlay

import (
	"fmt"

	"github.com/matzehuels/guidedrag/pkg/geom"
)

// Op is a renderer call kind recorded by [Recorder].
type Op string

// Recorded operations.
const (
	OpDraw   Op = "draw"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

// Call is one recorded renderer call.
type Call struct {
	Op   Op
	Axis geom.Axis
	Line Line // zero for OpRemove
}

func (c Call) String() string {
	if c.Op == OpRemove {
		return fmt.Sprintf("%s %s", c.Op, c.Axis)
	}
	return fmt.Sprintf("%s %s %s at %g [%g,%g]", c.Op, c.Axis, c.Line.Style, c.Line.Coord, c.Line.Span.Min, c.Line.Span.Max)
}

// Recorder is an in-memory Renderer. It keeps the set of visible lines and
// a log of every call, and serves as the drawing layer for the CLI, the
// TUI and the HTTP API.
//
// Recorder panics when asked to update or remove a line that is not shown,
// or to draw over one that is. Those calls indicate a broken caller.
type Recorder struct {
	lines map[geom.Axis]Line
	calls []Call
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{lines: make(map[geom.Axis]Line)}
}

// Draw implements [Renderer].
func (r *Recorder) Draw(l Line) {
	if _, ok := r.lines[l.Axis]; ok {
		panic(fmt.Sprintf("overlay: draw over visible %s line", l.Axis))
	}
	r.lines[l.Axis] = l
	r.calls = append(r.calls, Call{Op: OpDraw, Axis: l.Axis, Line: l})
}

// Update implements [Renderer].
func (r *Recorder) Update(l Line) {
	if _, ok := r.lines[l.Axis]; !ok {
		panic(fmt.Sprintf("overlay: update of hidden %s line", l.Axis))
	}
	r.lines[l.Axis] = l
	r.calls = append(r.calls, Call{Op: OpUpdate, Axis: l.Axis, Line: l})
}

// Remove implements [Renderer].
func (r *Recorder) Remove(a geom.Axis) {
	if _, ok := r.lines[a]; !ok {
		panic(fmt.Sprintf("overlay: remove of hidden %s line", a))
	}
	delete(r.lines, a)
	r.calls = append(r.calls, Call{Op: OpRemove, Axis: a})
}

// Lines returns the visible lines, horizontal first.
func (r *Recorder) Lines() []Line {
	var out []Line
	for _, a := range geom.Axes {
		if l, ok := r.lines[a]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of visible lines.
func (r *Recorder) Len() int { return len(r.lines) }

// Calls returns every call recorded so far.
func (r *Recorder) Calls() []Call { return r.calls }

// Reset forgets the call log. Visible lines are kept.
func (r *Recorder) Reset() { r.calls = nil }
