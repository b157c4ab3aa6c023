package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/guidedrag/pkg/config"
	"github.com/matzehuels/guidedrag/pkg/drag"
	"github.com/matzehuels/guidedrag/pkg/guide"
	"github.com/matzehuels/guidedrag/pkg/overlay"
	"github.com/matzehuels/guidedrag/pkg/scene"
)

// replayOpts holds the command-line flags for the replay command.
type replayOpts struct {
	output string // write the final scene here
	asJSON bool   // print steps as JSON instead of a table
}

// replayCommand creates the replay command that feeds a drag script to a scene.
func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay [scene] [script]",
		Short: "Replay a drag script against a scene",
		Long: `Replay feeds every event of a drag script (TOML or JSON) to a drag
controller and prints the resulting positions and guides.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.runReplay(cmd, args[0], args[1], cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the final scene to this file (.json or .toml)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print steps as JSON")

	return cmd
}

func (c *CLI) runReplay(cmd *cobra.Command, scenePath, scriptPath string, cfg config.Config, opts replayOpts) error {
	prog := newProgress(c.Logger)

	sc, err := scene.ReadFile(scenePath)
	if err != nil {
		return err
	}
	script, err := scene.ReadScript(scriptPath)
	if err != nil {
		return err
	}

	steps, err := replay(sc, script, cfg, drag.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Replayed %d events", len(steps)))

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stepsJSON(steps)); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, stepTable(steps, cfg))
		for _, st := range steps {
			if len(st.Result.Skipped) > 0 {
				printWarning("event %d skipped malformed targets: %s", st.Index+1, strings.Join(st.Result.Skipped, ", "))
			}
		}
	}

	if opts.output != "" {
		if err := sc.WriteFile(opts.output); err != nil {
			return fmt.Errorf("write scene: %w", err)
		}
		printSuccess("Wrote final scene")
		printFile(opts.output)
	}
	return nil
}

// replay plays script on sc and collects every step. sc is updated in place.
func replay(sc *scene.Scene, script *scene.Script, cfg config.Config, opts ...drag.Option) ([]scene.Step, error) {
	ctl := drag.New(sc.Model(), overlay.NewRecorder(), cfg, opts...)
	var steps []scene.Step
	err := script.Play(ctl, func(st scene.Step) error {
		steps = append(steps, st)
		return nil
	})
	return steps, err
}

// =============================================================================
// Output
// =============================================================================

// stepTable renders steps as a bordered table.
func stepTable(steps []scene.Step, cfg config.Config) string {
	rows := make([][]string, 0, len(steps))
	for _, st := range steps {
		res := st.Result
		pos, snap := "", ""
		if res.Handled {
			pos = fmt.Sprintf("%g,%g", res.Rect.X, res.Rect.Y)
		}
		if st.Event.Kind == scene.EventMove && res.Handled {
			snap = snapLabel(len(res.Guides) > 0 && cfg.Snap && cfg.Realtime)
		}
		rows = append(rows, []string{
			strconv.Itoa(st.Index + 1),
			st.Event.String(),
			res.State.String(),
			pos,
			guideList(res.Guides),
			snap,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Event", "State", "Position", "Guides", "Snap").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return base.Foreground(colorDim)
			}
			if row < len(steps) && !steps[row].Result.Handled {
				return base.Foreground(colorDim)
			}
			return base
		})
	return t.Render()
}

// guideList formats guidelines as "horizontal center 34 (b)" entries.
func guideList(gs []guide.Guideline) string {
	parts := make([]string, len(gs))
	for i, g := range gs {
		parts[i] = fmt.Sprintf("%s %s %g (%s)", g.Axis, g.Style(), g.Coord, g.Source)
	}
	return strings.Join(parts, "; ")
}

type stepJSON struct {
	Index int         `json:"index"`
	Event scene.Event `json:"event"`
	drag.Result
}

func stepsJSON(steps []scene.Step) []stepJSON {
	out := make([]stepJSON, len(steps))
	for i, st := range steps {
		out[i] = stepJSON{Index: st.Index + 1, Event: st.Event, Result: st.Result}
	}
	return out
}
