package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "", want: []string{"svg"}},
		{in: "svg,png", want: []string{"svg", "png"}},
		{in: " PNG , png,dot", want: []string{"png", "dot"}},
		{in: "graphviz", want: []string{"graphviz"}},
		{in: "svg,pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	tests := []struct {
		name        string
		at          int
		wantLines   int
		wantDragged []string
		wantA       string
	}{
		{name: "mid drag", at: 2, wantLines: 1, wantDragged: []string{"a"}, wantA: "150,14"},
		{name: "after start", at: 1, wantLines: 0, wantDragged: []string{"a"}, wantA: "10,10"},
		{name: "whole script", at: 0, wantLines: 0, wantA: "150,14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := scene.Read(strings.NewReader(testScene), scene.FormatJSON)
			if err != nil {
				t.Fatal(err)
			}
			script, err := scene.ParseScript([]byte(testScript), scene.FormatTOML)
			if err != nil {
				t.Fatal(err)
			}

			lines, dragged, err := snapshot(sc, script, config.Default(), tt.at)
			if err != nil {
				t.Fatalf("snapshot() = %v", err)
			}
			if len(lines) != tt.wantLines {
				t.Errorf("lines = %d, want %d", len(lines), tt.wantLines)
			}
			if strings.Join(dragged, ",") != strings.Join(tt.wantDragged, ",") {
				t.Errorf("dragged = %v, want %v", dragged, tt.wantDragged)
			}
			a, _ := sc.Node("a")
			if got := fmt.Sprintf("%g,%g", a.X, a.Y); got != tt.wantA {
				t.Errorf("a at %s, want %s", got, tt.wantA)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	scenePath, scriptPath := writeFixtures(t)
	base := filepath.Join(t.TempDir(), "out")

	if _, err := execute(t, "render", scenePath, "-s", scriptPath, "--at", "2", "-f", "svg,dot,png", "-o", base+".svg"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`class="node dragged"`, `class="guide guide-center"`} {
		if !strings.Contains(string(svg), want) {
			t.Errorf("SVG missing %s", want)
		}
	}
	if _, err := os.Stat(base + ".dot"); err != nil {
		t.Errorf("DOT output: %v", err)
	}
	if _, err := os.Stat(base + ".png"); err != nil {
		t.Errorf("PNG output: %v", err)
	}

	if _, err := execute(t, "render", scenePath, "-f", "pdf"); err == nil {
		t.Error("unknown format should fail")
	}
}
