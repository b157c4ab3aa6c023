package guide

import (
	"math"
	"testing"

	"github.com/matzehuels/guidedrag/pkg/geom"
)

// far keeps the vertical axis out of range so tests can focus on one axis.
const far = 500

func TestGenerateToleranceBoundary(t *testing.T) {
	dragged := geom.Rect{X: 0, Y: 100, W: 20, H: 20}

	tests := []struct {
		name      string
		targetTop float64
		tolerance float64
		wantCount int
	}{
		{"exactly at tolerance below", 106, 6, 1},
		{"exactly at tolerance above", 94, 6, 1},
		{"one past tolerance", 107, 6, 0},
		{"one past tolerance above", 93, 6, 0},
		{"zero tolerance exact", 100, 0, 1},
		{"zero tolerance off by one", 101, 0, 0},
		{"negative tolerance", 100, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := Target{ID: "t", Rect: geom.Rect{X: far, Y: tt.targetTop, W: 50, H: 50}}
			scan := Generate(dragged, []Target{target}, tt.tolerance)
			if len(scan.Candidates) != tt.wantCount {
				t.Fatalf("got %d candidates, want %d: %v", len(scan.Candidates), tt.wantCount, scan.Candidates)
			}
			if tt.wantCount == 1 {
				c := scan.Candidates[0]
				if c.Axis != geom.Horizontal || c.Kind != geom.Min {
					t.Errorf("candidate = %v, want horizontal edge-min", c)
				}
				if c.Coord != tt.targetTop {
					t.Errorf("Coord = %v, want %v", c.Coord, tt.targetTop)
				}
				if c.Distance != tt.targetTop-100 {
					t.Errorf("Distance = %v, want %v", c.Distance, tt.targetTop-100)
				}
			}
		})
	}
}

func TestGenerateLikeKindsOnly(t *testing.T) {
	// The dragged bottom edge (120) sits exactly on the target's top edge.
	// Unlike-kind pairs are never proposed.
	dragged := geom.Rect{X: 0, Y: 100, W: 20, H: 20}
	target := Target{ID: "t", Rect: geom.Rect{X: far, Y: 120, W: 50, H: 50}}

	scan := Generate(dragged, []Target{target}, 6)
	if len(scan.Candidates) != 0 {
		t.Errorf("got %v, want no candidates", scan.Candidates)
	}
}

func TestGenerateAllKinds(t *testing.T) {
	// Same size, offset by 2 on both axes: every like-kind pair matches.
	dragged := geom.Rect{X: 0, Y: 0, W: 40, H: 40}
	target := Target{ID: "t", Rect: geom.Rect{X: 2, Y: -2, W: 40, H: 40}}

	scan := Generate(dragged, []Target{target}, 6)
	if len(scan.Candidates) != 6 {
		t.Fatalf("got %d candidates, want 6", len(scan.Candidates))
	}

	want := []struct {
		axis geom.Axis
		kind geom.Kind
		d    float64
	}{
		{geom.Horizontal, geom.Min, -2},
		{geom.Horizontal, geom.Center, -2},
		{geom.Horizontal, geom.Max, -2},
		{geom.Vertical, geom.Min, 2},
		{geom.Vertical, geom.Center, 2},
		{geom.Vertical, geom.Max, 2},
	}
	for i, w := range want {
		c := scan.Candidates[i]
		if c.Axis != w.axis || c.Kind != w.kind || c.Distance != w.d {
			t.Errorf("candidate[%d] = %v, want %v/%v d=%v", i, c, w.axis, w.kind, w.d)
		}
		if c.Source != "t" {
			t.Errorf("candidate[%d].Source = %q, want %q", i, c.Source, "t")
		}
	}
}

func TestGenerateExtent(t *testing.T) {
	dragged := geom.Rect{X: 0, Y: 0, W: 10, H: 10}
	target := Target{ID: "t", Rect: geom.Rect{X: 200, Y: 3, W: 30, H: 60}}

	scan := Generate(dragged, []Target{target}, 6)
	if len(scan.Candidates) == 0 {
		t.Fatal("expected a candidate")
	}
	c := scan.Candidates[0]
	if c.Extent != (geom.Span{Min: 200, Max: 230}) {
		t.Errorf("Extent = %v, want {200 230}", c.Extent)
	}
}

func TestGenerateSkipsMalformed(t *testing.T) {
	dragged := geom.Rect{X: 0, Y: 0, W: 10, H: 10}
	targets := []Target{
		{ID: "nan", Rect: geom.Rect{X: math.NaN(), Y: 0, W: 10, H: 10}},
		{ID: "neg", Rect: geom.Rect{X: 0, Y: 0, W: -10, H: 10}},
		{ID: "ok", Rect: geom.Rect{X: 0, Y: 300, W: 10, H: 10}},
	}

	scan := Generate(dragged, targets, 6)
	if len(scan.Skipped) != 2 || scan.Skipped[0] != "nan" || scan.Skipped[1] != "neg" {
		t.Errorf("Skipped = %v, want [nan neg]", scan.Skipped)
	}
	for _, c := range scan.Candidates {
		if c.Source != "ok" {
			t.Errorf("candidate from skipped target: %v", c)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	scan := Generate(geom.Rect{W: 10, H: 10}, nil, 6)
	if len(scan.Candidates) != 0 || len(scan.Skipped) != 0 {
		t.Errorf("Generate(nil) = %+v, want empty", scan)
	}
}
