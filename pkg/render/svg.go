package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

// RenderSVG draws s and lines as an SVG document.
func RenderSVG(s *scene.Scene, lines []overlay.Line, opts ...Option) []byte {
	o := newOptions(opts...)
	f := frame(s, lines, o.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(f.X), num(f.Y), num(f.W), num(f.H), f.W, f.H)
	fmt.Fprintf(&buf, `  <rect class="canvas" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(f.X), num(f.Y), num(f.W), num(f.H), canvasColor)

	if s.Name != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(s.Name))
	}

	buf.WriteString(`  <g class="nodes">` + "\n")
	all := items(s, o)
	for _, it := range all {
		renderNodeSVG(&buf, it)
	}
	if o.labels {
		for _, it := range all {
			if it.group {
				continue
			}
			renderLabelSVG(&buf, it)
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="guides">` + "\n")
	for _, l := range lines {
		renderGuideSVG(&buf, l)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderNodeSVG(buf *bytes.Buffer, it item) {
	n := it.node
	class, fill, stroke, extra := "node", nodeFill, nodeStroke, ""
	switch {
	case it.group:
		class, fill, stroke, extra = "group", "none", groupStroke, ` stroke-dasharray="6 4"`
	case it.dragged:
		class, fill, stroke = "node dragged", draggedFill, draggedLine
	}
	fmt.Fprintf(buf, `    <rect id="node-%s" class="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="%s"%s/>`+"\n",
		html.EscapeString(n.ID), class, num(n.X), num(n.Y), num(n.W), num(n.H), fill, stroke, num(strokeWidth), extra)
}

func renderLabelSVG(buf *bytes.Buffer, it item) {
	b := it.node.Rect().Box()
	fmt.Fprintf(buf, `    <text class="label" x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="monospace" font-size="%s" fill="%s">%s</text>`+"\n",
		num(b.CenterX), num(b.CenterY), num(labelSize), labelColor, html.EscapeString(it.node.Name()))
}

func renderGuideSVG(buf *bytes.Buffer, l overlay.Line) {
	x1, y1, x2, y2 := endpoints(l)
	fmt.Fprintf(buf, `    <line class="guide guide-%s" data-source="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		l.Style, html.EscapeString(l.Source), num(x1), num(y1), num(x2), num(y2), config.HexColor(l.Color), num(l.Width))
}
