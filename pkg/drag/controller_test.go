package drag

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/errors"
	"github.com/matzehuels/guidedrag/pkg/geom"
	"github.com/matzehuels/guidedrag/pkg/overlay"
)

// memModel is a slice-backed Model.
type memModel struct {
	nodes []NodeInfo
	fail  map[string]error
	onSet func(id string)
}

func newModel(nodes ...NodeInfo) *memModel {
	return &memModel{nodes: nodes, fail: map[string]error{}}
}

func (m *memModel) Nodes() []NodeInfo {
	return append([]NodeInfo(nil), m.nodes...)
}

func (m *memModel) SetPosition(id string, p geom.Point) error {
	if m.onSet != nil {
		m.onSet(id)
	}
	if err := m.fail[id]; err != nil {
		return err
	}
	for i := range m.nodes {
		if m.nodes[i].ID == id {
			m.nodes[i].Rect = m.nodes[i].Rect.At(p)
			return nil
		}
	}
	return fmt.Errorf("no node %q", id)
}

func (m *memModel) pos(id string) geom.Point {
	for _, n := range m.nodes {
		if n.ID == id {
			return n.Rect.Position()
		}
	}
	return geom.Point{X: math.NaN(), Y: math.NaN()}
}

func node(id string, x, y, w, h float64) NodeInfo {
	return NodeInfo{ID: id, Rect: geom.Rect{X: x, Y: y, W: w, H: h}, Visible: true}
}

// pair is a dragged node "a" at (10,10) and a target "b" whose center-y
// lines up with a's when a is moved to y=14.
func pair() *memModel {
	return newModel(
		node("a", 10, 10, 40, 40),
		node("b", 200, 14, 40, 40),
	)
}

func mustStart(t *testing.T, c *Controller, ids []string, primary string) {
	t.Helper()
	res, err := c.Start(ids, primary)
	if err != nil {
		t.Fatalf("Start(%v) = %v", ids, err)
	}
	if !res.Handled || c.State() != Dragging {
		t.Fatalf("Start(%v) result = %+v, state %s", ids, res, c.State())
	}
}

func mustMove(t *testing.T, c *Controller, x, y float64) Result {
	t.Helper()
	res, err := c.Move(x, y)
	if err != nil {
		t.Fatalf("Move(%g, %g) = %v", x, y, err)
	}
	return res
}

func TestMoveSnaps(t *testing.T) {
	m := pair()
	rec := overlay.NewRecorder()
	c := New(m, rec, config.Default())

	mustStart(t, c, []string{"a"}, "")
	res := mustMove(t, c, 150, 12)

	if got, want := m.pos("a"), (geom.Point{X: 150, Y: 14}); got != want {
		t.Errorf("a = %v, want %v", got, want)
	}
	if res.Delta != (geom.Point{X: 140, Y: 4}) {
		t.Errorf("Delta = %v", res.Delta)
	}
	if len(res.Guides) != 1 || res.Guides[0].Axis != geom.Horizontal || res.Guides[0].Coord != 34 {
		t.Fatalf("Guides = %+v, want one horizontal at 34", res.Guides)
	}
	if res.Guides[0].Kind != geom.Center {
		t.Errorf("Kind = %v, want center", res.Guides[0].Kind)
	}
	if rec.Len() != 1 {
		t.Errorf("visible lines = %d, want 1", rec.Len())
	}
	if res.Candidates != 3 {
		t.Errorf("Candidates = %d, want 3", res.Candidates)
	}

	// Moving out of tolerance removes the guide.
	mustMove(t, c, 150, 60)
	if rec.Len() != 0 {
		t.Errorf("visible lines after leaving tolerance = %d, want 0", rec.Len())
	}
	if got := m.pos("a"); got != (geom.Point{X: 150, Y: 60}) {
		t.Errorf("a = %v, want raw position", got)
	}
}

func TestCancelRestores(t *testing.T) {
	m := pair()
	rec := overlay.NewRecorder()
	c := New(m, rec, config.Default())

	mustStart(t, c, []string{"a"}, "a")
	mustMove(t, c, 150, 12)
	mustMove(t, c, 120, 13)

	res, err := c.Cancel()
	if err != nil {
		t.Fatalf("Cancel() = %v", err)
	}
	if !res.Handled || res.State != Idle {
		t.Errorf("Cancel() result = %+v", res)
	}
	if got := m.pos("a"); got != (geom.Point{X: 10, Y: 10}) {
		t.Errorf("a = %v, want (10,10)", got)
	}
	if rec.Len() != 0 || len(c.Guides()) != 0 {
		t.Errorf("guides after cancel = %d", rec.Len())
	}
	if c.DragSet() != nil {
		t.Error("DragSet() should be nil after cancel")
	}
}

func TestMultiNodeDrag(t *testing.T) {
	m := newModel(
		node("a", 0, 0, 20, 20),
		node("b", 50, 0, 20, 20),
		node("c", 0, 50, 20, 20),
		node("t", 300, 100, 20, 20),
	)
	c := New(m, overlay.NewRecorder(), config.Default())

	mustStart(t, c, []string{"a", "b", "c"}, "a")
	res := mustMove(t, c, 302, 98)

	want := geom.Point{X: 300, Y: 100}
	if res.Delta != want {
		t.Fatalf("Delta = %v, want %v", res.Delta, want)
	}
	start := map[string]geom.Point{"a": {X: 0, Y: 0}, "b": {X: 50, Y: 0}, "c": {X: 0, Y: 50}}
	for id, p := range start {
		if got := m.pos(id).Sub(p); got != want {
			t.Errorf("%s moved by %v, want %v", id, got, want)
		}
	}
	if len(res.Guides) != 2 {
		t.Errorf("Guides = %d, want 2", len(res.Guides))
	}
	for _, g := range res.Guides {
		if g.Source != "t" {
			t.Errorf("guide source = %q, want t", g.Source)
		}
	}

	if _, err := c.Drop(); err != nil {
		t.Fatalf("Drop() = %v", err)
	}
	if got := m.pos("c"); got != (geom.Point{X: 300, Y: 150}) {
		t.Errorf("c after drop = %v", got)
	}
}

func TestIdleEventsAreNoops(t *testing.T) {
	m := pair()
	rec := overlay.NewRecorder()
	c := New(m, rec, config.Default())

	events := []struct {
		name string
		fn   func() (Result, error)
	}{
		{"move", func() (Result, error) { return c.Move(100, 100) }},
		{"drop", c.Drop},
		{"cancel", c.Cancel},
	}

	for _, ev := range events {
		t.Run(ev.name, func(t *testing.T) {
			res, err := ev.fn()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if res.Handled || res.Rejected || res.State != Idle {
				t.Errorf("result = %+v, want unhandled idle", res)
			}
			if got := m.pos("a"); got != (geom.Point{X: 10, Y: 10}) {
				t.Errorf("a moved to %v", got)
			}
			if len(rec.Calls()) != 0 {
				t.Errorf("renderer calls = %v", rec.Calls())
			}
		})
	}
}

func TestStartErrors(t *testing.T) {
	m := newModel(
		node("a", 0, 0, 10, 10),
		NodeInfo{ID: "nan", Rect: geom.Rect{X: math.NaN(), W: 10, H: 10}, Visible: true},
		node("neg", 0, 0, -1, 10),
	)

	tests := []struct {
		name    string
		ids     []string
		primary string
		code    errors.Code
	}{
		{"empty", nil, "", errors.ErrCodeInvalidDragSet},
		{"unknown node", []string{"a", "zzz"}, "a", errors.ErrCodeInvalidDragSet},
		{"primary not dragged", []string{"a"}, "b", errors.ErrCodeInvalidDragSet},
		{"nan position", []string{"nan"}, "", errors.ErrCodeInvalidGeometry},
		{"negative size", []string{"a", "neg"}, "a", errors.ErrCodeInvalidGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(m, nil, config.Default())
			res, err := c.Start(tt.ids, tt.primary)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Start() error = %v, want %s", err, tt.code)
			}
			if res.Handled || c.State() != Idle || c.DragSet() != nil {
				t.Errorf("controller left %s with result %+v", c.State(), res)
			}
		})
	}
}

func TestStartWhileDragging(t *testing.T) {
	m := pair()
	c := New(m, nil, config.Default())

	mustStart(t, c, []string{"a"}, "a")
	res, err := c.Start([]string{"b"}, "b")
	if err != nil {
		t.Fatalf("second Start() = %v", err)
	}
	if res.Handled || res.State != Dragging {
		t.Errorf("second Start() = %+v, want unhandled", res)
	}
	if c.DragSet().Primary != "a" {
		t.Errorf("Primary = %q, want a", c.DragSet().Primary)
	}
}

func TestStartDeduplicates(t *testing.T) {
	c := New(pair(), nil, config.Default())
	mustStart(t, c, []string{"a", "a"}, "")
	if c.DragSet().Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.DragSet().Len())
	}
}

func TestCleanupOnWriteFailure(t *testing.T) {
	for _, end := range []string{"drop", "cancel"} {
		t.Run(end, func(t *testing.T) {
			m := pair()
			rec := overlay.NewRecorder()
			c := New(m, rec, config.Default())

			mustStart(t, c, []string{"a"}, "a")
			mustMove(t, c, 150, 12)
			if rec.Len() != 1 {
				t.Fatalf("visible lines = %d, want 1", rec.Len())
			}

			m.fail["a"] = fmt.Errorf("read-only")
			var err error
			if end == "drop" {
				_, err = c.Drop()
			} else {
				_, err = c.Cancel()
			}
			if err == nil || !strings.Contains(err.Error(), "read-only") {
				t.Errorf("error = %v, want write failure", err)
			}
			if rec.Len() != 0 {
				t.Errorf("visible lines = %d, want 0", rec.Len())
			}
			if c.State() != Idle {
				t.Errorf("State() = %s, want idle", c.State())
			}
		})
	}
}

// callbackRenderer invokes onDraw from inside Draw.
type callbackRenderer struct {
	*overlay.Recorder
	onDraw func()
}

func (r *callbackRenderer) Draw(l overlay.Line) {
	r.Recorder.Draw(l)
	if r.onDraw != nil {
		r.onDraw()
	}
}

func TestReentrantEventsRejected(t *testing.T) {
	m := pair()
	r := &callbackRenderer{Recorder: overlay.NewRecorder()}
	c := New(m, r, config.Default())

	var inner []Result
	r.onDraw = func() {
		res, err := c.Cancel()
		if err != nil {
			t.Errorf("inner Cancel() = %v", err)
		}
		inner = append(inner, res)
	}
	m.onSet = func(string) {
		res, _ := c.Move(0, 0)
		inner = append(inner, res)
	}

	mustStart(t, c, []string{"a"}, "a")
	mustMove(t, c, 150, 12)

	if len(inner) != 2 {
		t.Fatalf("inner events = %d, want 2", len(inner))
	}
	for _, res := range inner {
		if !res.Rejected || res.Handled {
			t.Errorf("inner result = %+v, want rejected", res)
		}
	}
	if c.State() != Dragging {
		t.Errorf("State() = %s, want dragging", c.State())
	}
	if got := m.pos("a"); got != (geom.Point{X: 150, Y: 14}) {
		t.Errorf("a = %v, inner move should not apply", got)
	}
}

func TestTransientStates(t *testing.T) {
	for _, tt := range []struct {
		end  string
		want State
	}{
		{"drop", Committing},
		{"cancel", Cancelling},
	} {
		t.Run(tt.end, func(t *testing.T) {
			m := pair()
			c := New(m, nil, config.Default())
			mustStart(t, c, []string{"a"}, "a")
			mustMove(t, c, 100, 100)

			var seen State
			m.onSet = func(string) { seen = c.State() }
			if tt.end == "drop" {
				c.Drop()
			} else {
				c.Cancel()
			}
			if seen != tt.want {
				t.Errorf("state during %s = %s, want %s", tt.end, seen, tt.want)
			}
			if c.State() != Idle {
				t.Errorf("State() = %s, want idle", c.State())
			}
		})
	}
}

func TestConfigFlags(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*config.Config)
		moveY      float64 // a's y after Move(150, 12)
		guides     int
		dropY      float64
		candidates bool
	}{
		{"default", func(*config.Config) {}, 14, 1, 14, true},
		{"snap off", func(c *config.Config) { c.Snap = false }, 12, 1, 12, true},
		{"realtime off", func(c *config.Config) { c.Realtime = false }, 12, 1, 14, true},
		{"disabled", func(c *config.Config) { c.Enabled = false }, 12, 0, 12, false},
		{"search distance excludes", func(c *config.Config) { c.SearchDistance = 5 }, 12, 0, 12, false},
		{"zero tolerance", func(c *config.Config) { c.Tolerance = 0 }, 12, 0, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			m := pair()
			rec := overlay.NewRecorder()
			c := New(m, rec, cfg)

			mustStart(t, c, []string{"a"}, "a")
			res := mustMove(t, c, 150, 12)
			if got := m.pos("a").Y; got != tt.moveY {
				t.Errorf("y after move = %g, want %g", got, tt.moveY)
			}
			if rec.Len() != tt.guides || len(res.Guides) != tt.guides {
				t.Errorf("guides = %d/%d, want %d", rec.Len(), len(res.Guides), tt.guides)
			}
			if (res.Candidates > 0) != tt.candidates {
				t.Errorf("Candidates = %d", res.Candidates)
			}

			drop, err := c.Drop()
			if err != nil {
				t.Fatalf("Drop() = %v", err)
			}
			if got := m.pos("a").Y; got != tt.dropY {
				t.Errorf("y after drop = %g, want %g", got, tt.dropY)
			}
			if drop.Rect.Y != tt.dropY {
				t.Errorf("Drop().Rect.Y = %g, want %g", drop.Rect.Y, tt.dropY)
			}
			if rec.Len() != 0 {
				t.Errorf("guides after drop = %d", rec.Len())
			}
		})
	}
}

func TestDropWithoutMove(t *testing.T) {
	m := pair()
	c := New(m, nil, config.Default())
	mustStart(t, c, []string{"a"}, "a")

	res, err := c.Drop()
	if err != nil {
		t.Fatalf("Drop() = %v", err)
	}
	if !res.Delta.IsZero() {
		t.Errorf("Delta = %v, want zero", res.Delta)
	}
	if got := m.pos("a"); got != (geom.Point{X: 10, Y: 10}) {
		t.Errorf("a = %v", got)
	}
}

func TestGroupDrag(t *testing.T) {
	child := node("k", 10, 10, 20, 20)
	child.Group = "g"
	grandchild := node("kk", 12, 12, 5, 5)
	grandchild.Group = "k"
	m := newModel(node("g", 0, 0, 100, 100), child, grandchild, node("o", 300, 0, 50, 50))
	c := New(m, nil, config.Default())

	mustStart(t, c, []string{"g"}, "g")
	if got := c.DragSet().IDs; len(got) != 3 || got[0] != "g" {
		t.Fatalf("IDs = %v, want g and its members", got)
	}
	mustMove(t, c, 40, 200)
	if got := m.pos("kk"); got != (geom.Point{X: 52, Y: 212}) {
		t.Errorf("kk = %v", got)
	}
}

func TestMalformedTargetLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	m := pair()
	m.nodes = append(m.nodes, NodeInfo{ID: "bad", Rect: geom.Rect{X: 150, Y: math.Inf(1), W: 1, H: 1}, Visible: true})
	c := New(m, nil, config.Default(), WithLogger(logger))

	mustStart(t, c, []string{"a"}, "a")
	res := mustMove(t, c, 150, 12)
	if len(res.Skipped) != 1 || res.Skipped[0] != "bad" {
		t.Errorf("Skipped = %v, want [bad]", res.Skipped)
	}
	if len(res.Guides) != 1 {
		t.Errorf("Guides = %d, want 1", len(res.Guides))
	}
	if !strings.Contains(buf.String(), "malformed bounds") {
		t.Errorf("log missing skip message:\n%s", buf.String())
	}
}

type countingHooks struct {
	starts   []int
	moves    int
	snapped  int
	outcomes []string
}

func (h *countingHooks) OnDragStart(n int) { h.starts = append(h.starts, n) }

func (h *countingHooks) OnMove(_ int, snapped bool, _ time.Duration) {
	h.moves++
	if snapped {
		h.snapped++
	}
}

func (h *countingHooks) OnDragEnd(outcome string, _ int, _ time.Duration) {
	h.outcomes = append(h.outcomes, outcome)
}

func TestHooks(t *testing.T) {
	h := &countingHooks{}
	c := New(pair(), nil, config.Default(), WithHooks(h))

	mustStart(t, c, []string{"a"}, "a")
	mustMove(t, c, 150, 12)
	mustMove(t, c, 150, 70)
	c.Drop()

	mustStart(t, c, []string{"b"}, "b")
	c.Cancel()

	if len(h.starts) != 2 || h.starts[0] != 1 {
		t.Errorf("starts = %v", h.starts)
	}
	if h.moves != 2 || h.snapped != 1 {
		t.Errorf("moves = %d, snapped = %d, want 2 and 1", h.moves, h.snapped)
	}
	if len(h.outcomes) != 2 || h.outcomes[0] != "commit" || h.outcomes[1] != "cancel" {
		t.Errorf("outcomes = %v", h.outcomes)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Idle:       "idle",
		Dragging:   "dragging",
		Committing: "committing",
		Cancelling: "cancelling",
		State(9):   "state(9)",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestGuideSpansFollowPlacedNode(t *testing.T) {
	// Moving a to (103,203) snaps its top to h and its left to v, 3 units each.
	tests := []struct {
		name   string
		mutate func(*config.Config)
		hSpan  geom.Span // horizontal line, along X
		vSpan  geom.Span // vertical line, along Y
	}{
		{"realtime snap", func(*config.Config) {}, geom.Span{Min: 100, Max: 550}, geom.Span{Min: 200, Max: 650}},
		{"snap off", func(c *config.Config) { c.Snap = false }, geom.Span{Min: 103, Max: 550}, geom.Span{Min: 203, Max: 650}},
		{"realtime off", func(c *config.Config) { c.Realtime = false }, geom.Span{Min: 103, Max: 550}, geom.Span{Min: 203, Max: 650}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			m := newModel(
				node("a", 0, 0, 20, 20),
				node("h", 500, 200, 50, 50),
				node("v", 100, 600, 50, 50),
			)
			rec := overlay.NewRecorder()
			c := New(m, rec, cfg)

			mustStart(t, c, []string{"a"}, "a")
			res := mustMove(t, c, 103, 203)
			if len(res.Guides) != 2 {
				t.Fatalf("guides = %+v, want 2", res.Guides)
			}

			want := map[geom.Axis]geom.Span{geom.Horizontal: tt.hSpan, geom.Vertical: tt.vSpan}
			for _, g := range res.Guides {
				if g.Span != want[g.Axis] {
					t.Errorf("%s guide span = %+v, want %+v", g.Axis, g.Span, want[g.Axis])
				}
			}
			for _, l := range rec.Lines() {
				if l.Span != want[l.Axis] {
					t.Errorf("%s drawn span = %+v, want %+v", l.Axis, l.Span, want[l.Axis])
				}
			}
		})
	}
}
