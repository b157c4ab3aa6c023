// Package overlay keeps the visible guide-line graphics in step with the
// snap resolver.
//
// A [Manager] owns at most one line per axis. Each move event hands it the
// latest [guide.Resolution]; the manager issues the minimal Draw, Update
// and Remove calls on its [Renderer] to match. [Manager.Clear] removes
// everything and is called unconditionally when a drag ends.
//
// Renderer calls cannot fail. A host whose drawing layer can fail must
// handle that on its side; a guide line the manager believes removed is
// never drawn again by it.
package overlay

import (
	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/geom"
	"github.com/matzehuels/guidedrag/pkg/guide"
)

// Line is one guide-line graphic as seen by a [Renderer].
type Line struct {
	Axis   geom.Axis   `json:"axis"`
	Coord  float64     `json:"coord"`
	Span   geom.Span   `json:"span"`
	Style  guide.Style `json:"style"`
	Color  string      `json:"color"`
	Width  float64     `json:"width"`
	Source string      `json:"source"`
}

// Renderer is the drawing layer for guide lines.
type Renderer interface {
	// Draw shows a new line for l.Axis.
	Draw(l Line)
	// Update changes the line already shown for l.Axis.
	Update(l Line)
	// Remove hides the line shown for axis a.
	Remove(a geom.Axis)
}

// Discard is a Renderer that draws nothing.
type Discard struct{}

func (Discard) Draw(Line)        {}
func (Discard) Update(Line)      {}
func (Discard) Remove(geom.Axis) {}

// Manager reconciles visible guide lines with resolver output.
type Manager struct {
	r     Renderer
	cfg   config.Config
	shown [2]*Line
}

// NewManager returns a manager drawing through r with the colors and width of cfg.
// A nil renderer is replaced by [Discard].
func NewManager(r Renderer, cfg config.Config) *Manager {
	if r == nil {
		r = Discard{}
	}
	return &Manager{r: r, cfg: cfg}
}

// Reconcile shows, moves or hides each axis' line to match res.
func (m *Manager) Reconcile(res guide.Resolution) {
	for _, a := range geom.Axes {
		g := res.Guide(a)
		if g == nil {
			m.remove(a)
			continue
		}

		l := m.line(*g)
		switch cur := m.shown[a]; {
		case cur == nil:
			m.r.Draw(l)
		case *cur != l:
			m.r.Update(l)
		}
		m.shown[a] = &l
	}
}

// Clear removes every visible line.
func (m *Manager) Clear() {
	for _, a := range geom.Axes {
		m.remove(a)
	}
}

// Visible returns the lines currently shown, horizontal first.
func (m *Manager) Visible() []Line {
	var out []Line
	for _, l := range m.shown {
		if l != nil {
			out = append(out, *l)
		}
	}
	return out
}

func (m *Manager) remove(a geom.Axis) {
	if m.shown[a] == nil {
		return
	}
	m.r.Remove(a)
	m.shown[a] = nil
}

func (m *Manager) line(g guide.Guideline) Line {
	style := g.Style()
	return Line{
		Axis:   g.Axis,
		Coord:  g.Coord,
		Span:   g.Span,
		Style:  style,
		Color:  m.cfg.Colors.For(style),
		Width:  m.cfg.Width,
		Source: g.Source,
	}
}
