package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand creates the config command that prints the effective
// configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	var opts boardOpts

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as TOML.

The output merges the built-in defaults, the config file and any board flags,
and can be saved as a starting point for a config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(&cfg); err != nil {
				return err
			}
			text, err := cfg.Encode()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	opts.register(cmd)
	return cmd
}
