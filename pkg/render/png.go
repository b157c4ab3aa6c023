package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

// RenderPNG draws s and lines as a PNG image. One scene unit is one pixel
// times the [WithScale] factor.
func RenderPNG(s *scene.Scene, lines []overlay.Line, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	f := frame(s, lines, o.padding)

	w := int(math.Ceil(f.W * o.scale))
	h := int(math.Ceil(f.H * o.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(mustColor(canvasColor))
	dc.Clear()
	dc.Scale(o.scale, o.scale)
	dc.Translate(-f.X, -f.Y)

	all := items(s, o)
	for _, it := range all {
		drawNodePNG(dc, it)
	}

	if o.labels {
		face, err := monoFace(labelSize * o.scale)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(mustColor(labelColor))
		for _, it := range all {
			if it.group {
				continue
			}
			b := it.node.Rect().Box()
			dc.DrawStringAnchored(it.node.Name(), b.CenterX, b.CenterY, 0.5, 0.5)
		}
	}

	for _, l := range lines {
		if err := drawGuidePNG(dc, l); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func monoFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawNodePNG(dc *gg.Context, it item) {
	n := it.node
	dc.DrawRectangle(n.X, n.Y, n.W, n.H)
	switch {
	case it.group:
		dc.SetColor(mustColor(groupStroke))
		dc.SetDash(6, 4)
	case it.dragged:
		dc.SetColor(mustColor(draggedFill))
		dc.FillPreserve()
		dc.SetColor(mustColor(draggedLine))
	default:
		dc.SetColor(mustColor(nodeFill))
		dc.FillPreserve()
		dc.SetColor(mustColor(nodeStroke))
	}
	dc.SetLineWidth(strokeWidth)
	dc.Stroke()
	dc.SetDash()
}

func drawGuidePNG(dc *gg.Context, l overlay.Line) error {
	c, err := config.ParseColor(l.Color)
	if err != nil {
		return fmt.Errorf("guide color: %w", err)
	}
	x1, y1, x2, y2 := endpoints(l)
	dc.SetColor(c)
	dc.SetLineWidth(l.Width)
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
	return nil
}

// mustColor parses one of the package's own color constants.
func mustColor(s string) color.Color {
	c, err := config.ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
