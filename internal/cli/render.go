package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/drag"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/render"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

// Output formats accepted by --format.
const (
	formatSVG      = "svg"      // hand-written SVG
	formatPNG      = "png"      // raster via gg
	formatDOT      = "dot"      // Graphviz source
	formatGraphviz = "graphviz" // DOT laid out with neato, as SVG
)

var allFormats = []string{formatSVG, formatPNG, formatDOT, formatGraphviz}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	script  string   // optional drag script replayed before rendering
	at      int      // stop after this many events (0 = all)
	output  string   // output base path (extension replaced per format)
	formats []string // output formats
	scale   float64  // PNG pixel scale
	padding float64  // margin around the scene
	noLabel bool     // omit node labels
}

// errStop ends a script replay early without failing it.
var errStop = errors.New("stop")

// renderCommand creates the render command for scene snapshots.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 1, padding: render.DefaultPadding}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene snapshot with its guides",
		Long: `Render draws a scene as SVG, PNG or Graphviz output.

With --script the drag script is replayed first. Combine it with --at to
capture the scene mid-drag, while guides are still visible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "drag script to replay before rendering")
	cmd.Flags().IntVar(&opts.at, "at", 0, "stop the script after this many events (0 = all)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: scene file name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", formatSVG, "output formats: "+strings.Join(allFormats, ", "))
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel scale")
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "margin around the scene")
	cmd.Flags().BoolVar(&opts.noLabel, "no-labels", false, "omit node labels")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, cfg config.Config, opts renderOpts) error {
	prog := newProgress(c.Logger)

	sc, err := scene.ReadFile(path)
	if err != nil {
		return err
	}

	var (
		lines   []overlay.Line
		dragged []string
	)
	if opts.script != "" {
		script, err := scene.ReadScript(opts.script)
		if err != nil {
			return err
		}
		lines, dragged, err = snapshot(sc, script, cfg, opts.at, drag.WithLogger(c.Logger))
		if err != nil {
			return err
		}
	}

	ropts := []render.Option{
		render.WithPadding(opts.padding),
		render.WithScale(opts.scale),
		render.WithDragged(dragged...),
	}
	if opts.noLabel {
		ropts = append(ropts, render.WithoutLabels())
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var written []string
	for _, f := range opts.formats {
		out, err := c.renderFormat(ctx, f, sc, lines, ropts)
		if err != nil {
			return fmt.Errorf("render %s: %w", f, err)
		}
		name := base + "." + f
		if f == formatGraphviz {
			name = base + ".dot.svg"
		}
		if err := os.WriteFile(name, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, name)
	}

	prog.done(fmt.Sprintf("Rendered %d formats", len(written)))
	printSuccess("Rendered %s", sc.Name)
	printDetail("%d nodes, %d guides", len(sc.Nodes), len(lines))
	for _, name := range written {
		printFile(name)
	}
	return nil
}

func (c *CLI) renderFormat(ctx context.Context, f string, sc *scene.Scene, lines []overlay.Line, opts []render.Option) ([]byte, error) {
	switch f {
	case formatSVG:
		return render.RenderSVG(sc, lines, opts...), nil
	case formatPNG:
		return render.RenderPNG(sc, lines, opts...)
	case formatDOT:
		return []byte(render.ToDOT(sc, lines, opts...)), nil
	case formatGraphviz:
		spin := newSpinnerWithContext(ctx, "Running graphviz...")
		spin.Start()
		out, err := render.RenderDOT(ctx, render.ToDOT(sc, lines, opts...))
		if err != nil {
			spin.StopWithError("graphviz failed")
			return nil, err
		}
		spin.Stop()
		return out, nil
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// snapshot replays script on sc, stopping after at events when at > 0, and
// returns the guides visible at that point and the nodes being dragged.
func snapshot(sc *scene.Scene, script *scene.Script, cfg config.Config, at int, opts ...drag.Option) ([]overlay.Line, []string, error) {
	rec := overlay.NewRecorder()
	ctl := drag.New(sc.Model(), rec, cfg, opts...)
	err := script.Play(ctl, func(st scene.Step) error {
		if at > 0 && st.Index+1 >= at {
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, nil, err
	}

	var dragged []string
	if set := ctl.DragSet(); set != nil && ctl.State() == drag.Dragging {
		dragged = set.IDs
	}
	return rec.Lines(), dragged, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) ([]string, error) {
	if s == "" {
		return []string{formatSVG}, nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if !isFormat(f) {
			return nil, fmt.Errorf("unknown format %q (want %s)", f, strings.Join(allFormats, ", "))
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

func isFormat(f string) bool {
	for _, v := range allFormats {
		if v == f {
			return true
		}
	}
	return false
}
