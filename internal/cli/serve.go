package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/guidedrag/internal/server"
)

// serveCommand creates the serve command that runs the HTTP drag API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		maxScenes int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP drag API",
		Long: `Serve exposes drag sessions over HTTP. Each uploaded scene gets its own
controller; see GET /healthz and the /v1/scenes routes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Options{
				Config:    cfg,
				Logger:    c.Logger,
				MaxScenes: maxScenes,
			})
			if err != nil {
				return err
			}
			printInfo("Serving on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&maxScenes, "max-scenes", server.DefaultMaxScenes, "maximum number of live scenes")

	return cmd
}
