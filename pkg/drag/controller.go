package drag

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/errors"
	"github.com/matzehuels/guidedrag/pkg/geom"
	"github.com/matzehuels/guidedrag/pkg/guide"
	"github.com/matzehuels/guidedrag/pkg/observability"
	"github.com/matzehuels/guidedrag/pkg/overlay"
)

// State is the phase of a drag session.
type State int

const (
	Idle State = iota
	Dragging
	Committing
	Cancelling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case Cancelling:
		return "cancelling"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result reports what an event did.
type Result struct {
	// Handled is false when the event did not apply to the current state.
	Handled bool `json:"handled"`

	// Rejected is true when the event arrived while another was in progress.
	Rejected bool `json:"rejected,omitempty"`

	// State is the controller state after the event.
	State State `json:"state"`

	// Rect is the primary node's bounds after the event.
	Rect geom.Rect `json:"rect"`

	// Delta is the offset of every dragged node from its start position.
	Delta geom.Point `json:"delta"`

	// Guides are the guidelines visible after the event.
	Guides []guide.Guideline `json:"guides,omitempty"`

	// Candidates is the number of alignments considered on a move.
	Candidates int `json:"candidates,omitempty"`

	// Skipped lists targets ignored on a move because of malformed bounds.
	Skipped []string `json:"skipped,omitempty"`
}

// Option configures a [Controller].
type Option func(*Controller)

// WithLogger sets the logger for debug output. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHooks sets the observability hooks instead of the registered ones.
func WithHooks(h observability.DragHooks) Option {
	return func(c *Controller) {
		if h != nil {
			c.hooks = h
		}
	}
}

// Controller runs drag sessions over a [Model].
type Controller struct {
	model   Model
	guides  *overlay.Manager
	cfg     config.Config
	logger  *log.Logger
	hooks   observability.DragHooks
	state   State
	busy    bool
	set     *DragSet
	pointer geom.Point // last raw primary position
	last    Result
	moves   int
	started time.Time
}

// New returns an idle controller for model drawing guides through r.
// A nil renderer draws nothing.
func New(model Model, r overlay.Renderer, cfg config.Config, opts ...Option) *Controller {
	c := &Controller{
		model:  model,
		guides: overlay.NewManager(r, cfg),
		cfg:    cfg,
		logger: log.New(io.Discard),
		hooks:  observability.Drag(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// DragSet returns the active drag set, or nil when idle.
func (c *Controller) DragSet() *DragSet { return c.set }

// Config returns the configuration the controller was built with.
func (c *Controller) Config() config.Config { return c.cfg }

// Last returns the result of the most recent event of the active session.
func (c *Controller) Last() Result { return c.last }

// Guides returns the guide lines currently shown.
func (c *Controller) Guides() []overlay.Line { return c.guides.Visible() }

// Start begins dragging ids with primary driving the matching. An empty
// primary means ids[0]. Members of dragged groups are dragged with them.
//
// Starting while a drag is in progress is a no-op. Unknown or empty ids
// fail with INVALID_DRAG_SET, malformed bounds on a dragged node with
// INVALID_GEOMETRY; the controller stays idle in both cases.
func (c *Controller) Start(ids []string, primary string) (Result, error) {
	if c.busy {
		return c.rejected(), nil
	}
	if c.state != Idle {
		c.logger.Debug("start ignored", "state", c.state)
		return c.ignored(), nil
	}
	c.busy = true
	defer func() { c.busy = false }()

	set, err := c.newDragSet(ids, primary)
	if err != nil {
		return Result{State: c.state}, err
	}

	c.set = set
	c.state = Dragging
	c.moves = 0
	c.started = time.Now()
	start, _ := set.Initial(set.Primary)
	c.pointer = start.Position()
	c.last = Result{Handled: true, State: Dragging, Rect: start}

	c.logger.Debug("drag started", "nodes", set.Len(), "primary", set.Primary)
	c.hooks.OnDragStart(set.Len())
	return c.last, nil
}

func (c *Controller) newDragSet(ids []string, primary string) (*DragSet, error) {
	if len(ids) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDragSet, "no nodes to drag")
	}
	if primary == "" {
		primary = ids[0]
	}

	nodes := c.model.Nodes()
	byID := make(map[string]NodeInfo, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	set := &DragSet{Primary: primary, initial: make(map[string]geom.Rect)}
	add := func(id string) error {
		if set.Contains(id) {
			return nil
		}
		n, ok := byID[id]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDragSet, "unknown node %q", id)
		}
		if !n.Rect.Valid() {
			return errors.New(errors.ErrCodeInvalidGeometry, "node %q has malformed bounds %s", id, n.Rect)
		}
		set.initial[id] = n.Rect
		set.IDs = append(set.IDs, id)
		return nil
	}

	for _, id := range ids {
		if err := add(id); err != nil {
			return nil, err
		}
	}
	if !set.Contains(primary) {
		return nil, errors.New(errors.ErrCodeInvalidDragSet, "primary %q is not among the dragged nodes", primary)
	}

	// Group members follow their group.
	p := parentsOf(nodes)
	for _, n := range nodes {
		if set.Contains(n.ID) {
			continue
		}
		for _, g := range p.ancestors(n.ID) {
			if set.Contains(g) {
				if err := add(n.ID); err != nil {
					return nil, err
				}
				break
			}
		}
	}
	return set, nil
}

// Move places the primary node's top-left corner at (x, y), resolved
// against the eligible targets, and moves the rest of the drag set by the
// same offset. Moving while idle is a no-op.
func (c *Controller) Move(x, y float64) (Result, error) {
	if c.busy {
		return c.rejected(), nil
	}
	if c.state != Dragging {
		c.logger.Debug("move ignored", "state", c.state)
		return c.ignored(), nil
	}
	c.busy = true
	defer func() { c.busy = false }()

	began := time.Now()
	c.pointer = geom.Point{X: x, Y: y}
	c.moves++

	res, scan := c.resolve(c.pointer)
	target := res.Raw
	if c.cfg.Snap && c.cfg.Realtime {
		target = res.Rect
	}
	// Lines span the node where it is placed, not where it would snap.
	res = res.PlacedAt(target)
	c.guides.Reconcile(res)

	out := c.result(target, res)
	out.Candidates = len(scan.Candidates)
	out.Skipped = scan.Skipped

	err := c.place(target)
	c.last = out
	c.hooks.OnMove(out.Candidates, target != res.Raw, time.Since(began))
	return out, err
}

// resolve computes the snap resolution for the primary node at p.
func (c *Controller) resolve(p geom.Point) (guide.Resolution, guide.Scan) {
	start, _ := c.set.Initial(c.set.Primary)
	raw := start.At(p)
	if !c.cfg.Enabled {
		return guide.Resolution{Raw: raw, Rect: raw}, guide.Scan{}
	}

	targets := Eligible(c.model.Nodes(), c.set, raw, c.cfg.SearchDistance)
	scan := guide.Generate(raw, targets, c.cfg.Tolerance)
	for _, id := range scan.Skipped {
		c.logger.Debug("skipping target with malformed bounds", "node", id)
	}
	return guide.Resolve(raw, scan.Candidates), scan
}

// place moves every dragged node so the primary lands on target.
func (c *Controller) place(target geom.Rect) error {
	start, _ := c.set.Initial(c.set.Primary)
	delta := target.Position().Sub(start.Position())
	var first error
	for _, id := range c.set.IDs {
		r, _ := c.set.Initial(id)
		if err := c.model.SetPosition(id, r.Position().Add(delta)); err != nil && first == nil {
			first = fmt.Errorf("move %s: %w", id, err)
		}
	}
	return first
}

// Drop commits the drag at the last pointer position and ends the session.
// With realtime snapping off, the snap is resolved and applied here.
// Guides are always cleared, even if writing a position fails.
func (c *Controller) Drop() (Result, error) {
	if c.busy {
		return c.rejected(), nil
	}
	if c.state != Dragging {
		c.logger.Debug("drop ignored", "state", c.state)
		return c.ignored(), nil
	}
	c.busy = true
	defer func() { c.busy = false }()

	c.state = Committing
	start, _ := c.set.Initial(c.set.Primary)
	target := start.At(c.pointer)
	if c.moves > 0 && c.cfg.Enabled && c.cfg.Snap {
		res, _ := c.resolve(c.pointer)
		target = res.Rect
	}
	err := c.place(target)

	out := Result{Handled: true, Rect: target, Delta: target.Position().Sub(start.Position())}
	c.finish(observability.OutcomeCommit)
	out.State = c.state
	c.logger.Debug("drag committed", "delta", fmt.Sprintf("%g,%g", out.Delta.X, out.Delta.Y))
	return out, err
}

// Cancel restores every dragged node to its start position and ends the
// session. Guides are always cleared, even if restoring a position fails.
func (c *Controller) Cancel() (Result, error) {
	if c.busy {
		return c.rejected(), nil
	}
	if c.state != Dragging {
		c.logger.Debug("cancel ignored", "state", c.state)
		return c.ignored(), nil
	}
	c.busy = true
	defer func() { c.busy = false }()

	c.state = Cancelling
	start, _ := c.set.Initial(c.set.Primary)
	err := c.place(start)

	out := Result{Handled: true, Rect: start}
	c.finish(observability.OutcomeCancel)
	out.State = c.state
	c.logger.Debug("drag cancelled")
	return out, err
}

func (c *Controller) finish(outcome string) {
	c.guides.Clear()
	c.hooks.OnDragEnd(outcome, c.moves, time.Since(c.started))
	c.set = nil
	c.moves = 0
	c.last = Result{}
	c.state = Idle
}

func (c *Controller) result(target geom.Rect, res guide.Resolution) Result {
	start, _ := c.set.Initial(c.set.Primary)
	return Result{
		Handled: true,
		State:   c.state,
		Rect:    target,
		Delta:   target.Position().Sub(start.Position()),
		Guides:  res.Guidelines(),
	}
}

func (c *Controller) ignored() Result {
	return Result{State: c.state}
}

func (c *Controller) rejected() Result {
	c.logger.Debug("reentrant event rejected", "state", c.state)
	return Result{Rejected: true, State: c.state}
}
