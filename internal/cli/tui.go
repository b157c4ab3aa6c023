package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/drag"
	"github.com/matzehuels/guidedrag/pkg/geom"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

// Grid styles
var (
	gridNodeStyle     = lipgloss.NewStyle().Foreground(colorGray)
	gridSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	gridDraggedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	gridGroupStyle    = lipgloss.NewStyle().Foreground(colorDim)
	gridEmptyStyle    = lipgloss.NewStyle().Foreground(colorDim)
	statusErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	defaultCell = 10.0 // scene units per terminal column
	bigStep     = 5    // cells moved by shift+arrow
)

// tuiCommand creates the tui command for interactive dragging.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		cell   float64
		output string
	)

	cmd := &cobra.Command{
		Use:   "tui [scene]",
		Short: "Drag scene nodes interactively in the terminal",
		Long: `TUI draws the scene on a terminal grid where one column is --cell scene
units and one row is twice that.

  tab / shift+tab   select node
  space / enter     pick up or drop
  arrows, hjkl      move (shift = 5 cells)
  esc               cancel the drag
  q                 quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			sc, err := scene.ReadFile(args[0])
			if err != nil {
				return err
			}
			if cell <= 0 {
				return fmt.Errorf("--cell must be positive, got %v", cell)
			}

			m := newDragModel(sc, cfg, cell, drag.WithLogger(c.Logger))
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			if dm, ok := final.(dragModel); ok {
				printInfo("%d drags committed, %d cancelled", dm.commits, dm.cancels)
			}

			if output != "" {
				if err := sc.WriteFile(output); err != nil {
					return fmt.Errorf("write scene: %w", err)
				}
				printSuccess("Wrote scene")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&cell, "cell", defaultCell, "scene units per terminal column")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the scene here on exit (.json or .toml)")

	return cmd
}

// =============================================================================
// dragModel - Interactive dragging
// =============================================================================

// dragModel is the bubbletea model for keyboard dragging.
type dragModel struct {
	scene   *scene.Scene
	ctl     *drag.Controller
	guides  *overlay.Recorder
	cell    float64
	origin  geom.Point
	ids     []string // selectable node IDs
	cursor  int
	pointer geom.Point
	status  string
	err     error
	width   int
	height  int
	commits int
	cancels int
}

func newDragModel(sc *scene.Scene, cfg config.Config, cell float64, opts ...drag.Option) dragModel {
	rec := overlay.NewRecorder()
	m := dragModel{
		scene:  sc,
		ctl:    drag.New(sc.Model(), rec, cfg, opts...),
		guides: rec,
		cell:   cell,
	}
	for _, n := range sc.Nodes {
		if !n.Hidden {
			m.ids = append(m.ids, n.ID)
		}
	}
	b := sc.Bounds().Inflate(2 * cell)
	m.origin = geom.Point{X: b.X, Y: b.Y}
	m.status = "tab to select, space to pick up"
	return m
}

func (m dragModel) Init() tea.Cmd {
	return nil
}

func (m dragModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg.String())
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m dragModel) key(k string) (tea.Model, tea.Cmd) {
	dragging := m.ctl.State() == drag.Dragging
	switch k {
	case "q", "ctrl+c":
		if dragging {
			m.cancel()
		}
		return m, tea.Quit
	case "tab":
		if !dragging {
			m.cycle(1)
		}
	case "shift+tab":
		if !dragging {
			m.cycle(-1)
		}
	case " ", "space", "enter":
		if dragging {
			m.drop()
		} else {
			m.pickUp()
		}
	case "esc":
		if dragging {
			m.cancel()
		}
	case "left", "h":
		m.nudge(-1, 0)
	case "right", "l":
		m.nudge(1, 0)
	case "up", "k":
		m.nudge(0, -1)
	case "down", "j":
		m.nudge(0, 1)
	case "shift+left", "H":
		m.nudge(-bigStep, 0)
	case "shift+right", "L":
		m.nudge(bigStep, 0)
	case "shift+up", "K":
		m.nudge(0, -bigStep)
	case "shift+down", "J":
		m.nudge(0, bigStep)
	}
	return m, nil
}

func (m *dragModel) cycle(d int) {
	if len(m.ids) == 0 {
		return
	}
	m.cursor = (m.cursor + d + len(m.ids)) % len(m.ids)
	m.status = "selected " + m.ids[m.cursor]
}

func (m dragModel) selected() string {
	if len(m.ids) == 0 {
		return ""
	}
	return m.ids[m.cursor]
}

func (m *dragModel) pickUp() {
	id := m.selected()
	if id == "" {
		return
	}
	res, err := m.ctl.Start([]string{id}, id)
	if m.fail(err) {
		return
	}
	m.pointer = res.Rect.Position()
	m.status = fmt.Sprintf("dragging %s (%d nodes)", id, m.ctl.DragSet().Len())
}

func (m *dragModel) nudge(cols, rows int) {
	if m.ctl.State() != drag.Dragging {
		return
	}
	m.pointer = m.pointer.Add(geom.Point{X: float64(cols) * m.cell, Y: float64(rows) * 2 * m.cell})
	res, err := m.ctl.Move(m.pointer.X, m.pointer.Y)
	if m.fail(err) {
		return
	}
	m.status = fmt.Sprintf("at %g,%g  %s", res.Rect.X, res.Rect.Y, guideList(res.Guides))
}

func (m *dragModel) drop() {
	res, err := m.ctl.Drop()
	if m.fail(err) {
		return
	}
	m.commits++
	m.status = StyleSuccess.Render(fmt.Sprintf("dropped at %g,%g", res.Rect.X, res.Rect.Y))
}

func (m *dragModel) cancel() {
	_, err := m.ctl.Cancel()
	if m.fail(err) {
		return
	}
	m.cancels++
	m.status = "cancelled"
}

func (m *dragModel) fail(err error) bool {
	m.err = err
	return err != nil
}

func (m dragModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("guidedrag"))
	if m.scene.Name != "" {
		b.WriteString(" " + StyleDim.Render(m.scene.Name))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab select  space pick/drop  arrows move  esc cancel  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.canvas().String())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(statusErrorStyle.Render(m.err.Error()))
	} else {
		b.WriteString(StyleHighlight.Render(m.ctl.State().String()) + "  " + m.status)
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Grid
// =============================================================================

type gridCell struct {
	r     rune
	style lipgloss.Style
	set   bool
}

// grid is a character canvas in terminal cells.
type grid struct {
	cols, rows int
	cells      [][]gridCell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([][]gridCell, rows)}
	for i := range g.cells {
		g.cells[i] = make([]gridCell, cols)
	}
	return g
}

func (g *grid) put(col, row int, r rune, style lipgloss.Style) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	g.cells[row][col] = gridCell{r: r, style: style, set: true}
}

func (g *grid) empty(col, row int) bool {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return false
	}
	return !g.cells[row][col].set
}

// String renders the grid, joining runs of equally styled cells.
func (g *grid) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if !c.set {
				b.WriteString(gridEmptyStyle.Render("·"))
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
	}
	return b.String()
}

// cellOf maps a scene point to a grid column and row.
func (m dragModel) cellOf(x, y float64) (int, int) {
	col := int(math.Floor((x - m.origin.X) / m.cell))
	row := int(math.Floor((y - m.origin.Y) / (2 * m.cell)))
	return col, row
}

// viewOrigin returns the origin moved up and left by whole cells until the
// current scene bounds and their margin fit, so nodes dragged past the
// initial view stay on the grid and cells keep their alignment.
func (m dragModel) viewOrigin() geom.Point {
	f := m.scene.Bounds().Inflate(2 * m.cell)
	o := m.origin
	if f.X < o.X {
		o.X -= math.Ceil((o.X-f.X)/m.cell) * m.cell
	}
	if f.Y < o.Y {
		o.Y -= math.Ceil((o.Y-f.Y)/(2*m.cell)) * 2 * m.cell
	}
	return o
}

// canvas draws the scene, its groups and the visible guides.
func (m dragModel) canvas() *grid {
	m.origin = m.viewOrigin()
	f := m.scene.Bounds().Inflate(2 * m.cell)
	cols := int(math.Ceil((f.X+f.W-m.origin.X)/m.cell)) + 1
	rows := int(math.Ceil((f.Y+f.H-m.origin.Y)/(2*m.cell))) + 1
	if m.width > 0 && cols > m.width {
		cols = m.width
	}
	if m.height > 6 && rows > m.height-6 {
		rows = m.height - 6
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := newGrid(cols, rows)

	set := m.ctl.DragSet()
	if m.ctl.State() != drag.Dragging {
		set = nil
	}
	for _, n := range m.scene.Nodes {
		if n.Hidden || m.scene.IsGroup(n.ID) {
			continue
		}
		style := gridNodeStyle
		switch {
		case set != nil && set.Contains(n.ID):
			style = gridDraggedStyle
		case n.ID == m.selected():
			style = gridSelectedStyle
		}
		m.box(g, n, style)
	}
	for _, n := range m.scene.Nodes {
		if n.Hidden || !m.scene.IsGroup(n.ID) {
			continue
		}
		style := gridGroupStyle
		switch {
		case set != nil && set.Contains(n.ID):
			style = gridDraggedStyle
		case n.ID == m.selected():
			style = gridSelectedStyle
		}
		m.outline(g, n, style)
	}
	for _, l := range m.guides.Lines() {
		m.line(g, l)
	}
	return g
}

func (m dragModel) corners(n scene.Node) (c0, r0, c1, r1 int) {
	b := n.Rect().Box()
	c0, r0 = m.cellOf(b.Left, b.Top)
	c1, r1 = m.cellOf(b.Right, b.Bottom)
	if c1 > c0 && math.Mod(b.Right-m.origin.X, m.cell) == 0 {
		c1--
	}
	if r1 > r0 && math.Mod(b.Bottom-m.origin.Y, 2*m.cell) == 0 {
		r1--
	}
	return c0, r0, c1, r1
}

// box draws a node as a framed box with its ID inside.
func (m dragModel) box(g *grid, n scene.Node, style lipgloss.Style) {
	c0, r0, c1, r1 := m.corners(n)
	if c0 == c1 || r0 == r1 {
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				g.put(c, r, '█', style)
			}
		}
		return
	}
	m.frame(g, c0, r0, c1, r1, '─', '│', style, true)
	label := []rune(n.ID)
	if r1-r0 >= 2 {
		for i, r := range label {
			if c0+1+i >= c1 {
				break
			}
			g.put(c0+1+i, r0+1, r, style)
		}
	}
}

// outline draws a group frame on cells not taken by members.
func (m dragModel) outline(g *grid, n scene.Node, style lipgloss.Style) {
	c0, r0, c1, r1 := m.corners(n)
	m.frame(g, c0, r0, c1, r1, '╌', '╎', style, false)
}

func (m dragModel) frame(g *grid, c0, r0, c1, r1 int, h, v rune, style lipgloss.Style, force bool) {
	put := func(c, r int, ch rune) {
		if force || g.empty(c, r) {
			g.put(c, r, ch, style)
		}
	}
	for c := c0 + 1; c < c1; c++ {
		put(c, r0, h)
		put(c, r1, h)
	}
	for r := r0 + 1; r < r1; r++ {
		put(c0, r, v)
		put(c1, r, v)
	}
	put(c0, r0, '┌')
	put(c1, r0, '┐')
	put(c0, r1, '└')
	put(c1, r1, '┘')
}

// line draws a guide over empty cells only, so node frames stay visible.
func (m dragModel) line(g *grid, l overlay.Line) {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(config.HexColor(l.Color)))
	if l.Axis == geom.Horizontal {
		c0, r := m.cellOf(l.Span.Min, l.Coord)
		c1, _ := m.cellOf(l.Span.Max, l.Coord)
		for c := c0; c <= c1; c++ {
			if g.empty(c, r) {
				g.put(c, r, '─', style)
			}
		}
		return
	}
	c, r0 := m.cellOf(l.Coord, l.Span.Min)
	_, r1 := m.cellOf(l.Coord, l.Span.Max)
	for r := r0; r <= r1; r++ {
		if g.empty(c, r) {
			g.put(c, r, '│', style)
		}
	}
}
