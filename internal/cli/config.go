package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration with the API key masked",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, exists, err := loadConfig(rootOpts.ConfigPath)
			if err != nil {
				return err
			}

			shown := *cfg
			if cfg.ResolveAPIKey() != "" {
				shown.APIKey = cfg.MaskedAPIKey()
			}
			data, err := yaml.Marshal(&shown)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !exists {
				path, err := cfg.Path()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "# %s does not exist yet; showing defaults\n", path)
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "path",
		Short:         "Print the config file location",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			path, err := cfg.Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}
