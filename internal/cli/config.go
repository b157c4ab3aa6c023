package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/guidedrag/pkg/config"
)

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if asTOML {
				return cfg.Write(cmd.OutOrStdout())
			}
			printConfig(cfg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as TOML")
	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				printInfo("Config already exists")
				printFile(path)
				printNextStep("Overwrite it with", appName+" config init --force")
				return nil
			}
			if err := config.Default().Save(path); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configPath returns --config or the default location.
func (c *CLI) configPath() (string, error) {
	if c.flags.path != "" {
		return c.flags.path, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return path, nil
}

func printConfig(cfg config.Config) {
	fmt.Println(StyleTitle.Render("Configuration"))
	printKeyValue("enabled", strconv.FormatBool(cfg.Enabled))
	printKeyValue("tolerance", strconv.FormatFloat(cfg.Tolerance, 'f', -1, 64))
	printKeyValue("search_distance", strconv.FormatFloat(cfg.SearchDistance, 'f', -1, 64))
	printKeyValue("snap", strconv.FormatBool(cfg.Snap))
	printKeyValue("realtime", strconv.FormatBool(cfg.Realtime))
	printKeyValue("width", strconv.FormatFloat(cfg.Width, 'f', -1, 64))
	printKeyValue("horizontal", colorSwatch(cfg.Colors.Horizontal))
	printKeyValue("vertical", colorSwatch(cfg.Colors.Vertical))
	printKeyValue("center", colorSwatch(cfg.Colors.Center))
}
