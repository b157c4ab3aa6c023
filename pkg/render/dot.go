package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

// pointsPerInch converts scene units (points) to Graphviz sizes (inches).
const pointsPerInch = 72.0

// ToDOT converts s and lines to an undirected Graphviz graph. Every node is
// pinned at its scene position, so the graph must be laid out with neato
// (see [RenderDOT]). Guide lines become edges between two invisible points.
//
// Graphviz's Y axis points up; scene Y values are negated.
func ToDOT(s *scene.Scene, lines []overlay.Line, opts ...Option) string {
	o := newOptions(opts...)

	var buf bytes.Buffer
	name := s.Name
	if name == "" {
		name = "G"
	}
	fmt.Fprintf(&buf, "graph %q {\n", name)
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  overlap=true;\n")
	fmt.Fprintf(&buf, "  node [shape=box, fixedsize=true, style=filled, fillcolor=%q, color=%q, fontname=\"monospace\", fontsize=%s];\n",
		nodeFill, nodeStroke, num(labelSize))
	buf.WriteString("\n")

	for _, it := range items(s, o) {
		attrs := nodeAttrs(it, o.labels)
		fmt.Fprintf(&buf, "  %q [%s];\n", it.node.ID, strings.Join(attrs, ", "))
	}

	if len(lines) > 0 {
		buf.WriteString("\n")
	}
	for i, l := range lines {
		x1, y1, x2, y2 := endpoints(l)
		from := fmt.Sprintf("guide-%d-a", i)
		to := fmt.Sprintf("guide-%d-b", i)
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.01, style=invis, pos=\"%s,%s!\"];\n", from, num(x1), num(-y1))
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.01, style=invis, pos=\"%s,%s!\"];\n", to, num(x2), num(-y2))
		fmt.Fprintf(&buf, "  %q -- %q [class=%q, color=%q, penwidth=%s];\n",
			from, to, "guide-"+string(l.Style), config.HexColor(l.Color), num(l.Width))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(it item, labels bool) []string {
	n := it.node
	b := n.Rect().Box()
	label := ""
	if labels && !it.group {
		label = n.Name()
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%s,%s!\"", num(b.CenterX), num(-b.CenterY)),
		fmt.Sprintf("width=%s", num(n.W/pointsPerInch)),
		fmt.Sprintf("height=%s", num(n.H/pointsPerInch)),
	}
	switch {
	case it.group:
		attrs = append(attrs, `style="dashed"`, fmt.Sprintf("color=%q", groupStroke))
	case it.dragged:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", draggedFill), fmt.Sprintf("color=%q", draggedLine))
	}
	return attrs
}

// RenderDOT lays out a graph from [ToDOT] with neato and renders it to SVG.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
