// Package cli wires the command line: the interactive TUI by default and
// scriptable subcommands around the same application store.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sant0-9/promptmaster/internal/tui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
	Ephemeral  bool
}

// NewRootCommand creates the root command. Without a subcommand it starts
// the interactive interface.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "promptmaster",
		Short: "Prompt Master - build Tier-1 prompts",
		Long: `Prompt Master turns a goal, a category and a few preferences into a
Tier-1 prompt with refinement options, a rationale and scores, and keeps a
personal library of the prompts you save.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/promptmaster/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "keep form and library in memory only")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewLibraryCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}

func runTUI(opts *RootOptions) error {
	env, err := openEnv(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	needsSetup := !env.configExists || env.cfg.NeedsSetup()
	env.log.Info("starting", "provider", env.cfg.Provider, "model", env.cfg.Model, "setup", needsSetup)

	p := tea.NewProgram(
		tui.NewApp(env.cfg, env.app, needsSetup),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface failed: %w", err)
	}
	return nil
}
