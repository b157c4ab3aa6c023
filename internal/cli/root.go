package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/guidedrag/pkg/buildinfo"
	"github.com/matzehuels/guidedrag/pkg/config"
)

// configFlags holds the persistent flags that override config file values.
// Overrides apply only to flags the user actually set.
type configFlags struct {
	path           string  // explicit config file path
	tolerance      float64 // snap distance override
	searchDistance float64 // search distance override
	noSnap         bool    // show guides without moving nodes
	noRealtime     bool    // apply the snap only on drop
	disable        bool    // raw dragging, no guides
}

func (f *configFlags) register(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVar(&f.path, "config", "", "config file (default $XDG_CONFIG_HOME/guidedrag/config.toml)")
	pf.Float64Var(&f.tolerance, "tolerance", config.DefaultTolerance, "snap distance in pixels")
	pf.Float64Var(&f.searchDistance, "search-distance", config.DefaultSearchDistance, "only match nodes within this distance (0 = unlimited)")
	pf.BoolVar(&f.noSnap, "no-snap", false, "show guides but never move nodes")
	pf.BoolVar(&f.noRealtime, "no-realtime", false, "apply the snap only when dropping")
	pf.BoolVar(&f.disable, "disable", false, "disable guides and snapping")
}

func (f *configFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("tolerance") {
		cfg.Tolerance = f.tolerance
	}
	if changed("search-distance") {
		cfg.SearchDistance = f.searchDistance
	}
	if f.noSnap {
		cfg.Snap = false
	}
	if f.noRealtime {
		cfg.Realtime = false
	}
	if f.disable {
		cfg.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	return nil
}

// versionCommand prints the build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			return nil
		},
	}
}
