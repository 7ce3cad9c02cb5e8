package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sant0-9/promptmaster/internal/library"
)

// NewLibraryCommand creates the library command and its subcommands.
func NewLibraryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Manage saved prompts",
	}

	cmd.AddCommand(newLibraryListCommand(rootOpts))
	cmd.AddCommand(newLibraryShowCommand(rootOpts))
	cmd.AddCommand(newLibraryUseCommand(rootOpts))
	cmd.AddCommand(newLibraryDeleteCommand(rootOpts))
	cmd.AddCommand(newLibraryExportCommand(rootOpts))
	cmd.AddCommand(newLibraryImportCommand(rootOpts))

	return cmd
}

func newLibraryListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Aliases:       []string{"ls"},
		Short:         "List saved prompts, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			prompts := env.app.Snapshot().SavedPrompts
			out := cmd.OutOrStdout()
			if len(prompts) == 0 {
				fmt.Fprintln(out, "No saved prompts yet.")
				return nil
			}
			printLibrary(out, prompts)
			return nil
		},
	}
}

// printLibrary renders a table on terminals and tab-separated rows
// otherwise.
func printLibrary(w io.Writer, prompts []library.SavedPrompt) {
	if !isTerminal(w) {
		for _, p := range prompts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Inputs.Category, p.Inputs.OutputFormat, oneLine(p.Title()))
		}
		return
	}

	goalWidth := max(20, terminalWidth(w)-60)
	rows := make([][]string, len(prompts))
	for i, p := range prompts {
		rows[i] = []string{p.ID.String(), string(p.Inputs.Category), string(p.Inputs.OutputFormat), truncate(oneLine(p.Title()), goalWidth)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleMuted).
		Headers("ID", "CATEGORY", "FORMAT", "GOAL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeading.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

func parseIDArg(arg string) (library.ID, error) {
	id, err := library.ParseID(arg)
	if err != nil {
		return library.NoID, fmt.Errorf("invalid prompt id %q", arg)
	}
	return id, nil
}

func findPrompt(prompts []library.SavedPrompt, id library.ID) (library.SavedPrompt, error) {
	for _, p := range prompts {
		if p.ID == id {
			return p, nil
		}
	}
	return library.SavedPrompt{}, fmt.Errorf("no saved prompt with id %s", id)
}

func newLibraryShowCommand(rootOpts *RootOptions) *cobra.Command {
	var tierOneOnly bool

	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Print a saved prompt",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			env, err := openEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			p, err := findPrompt(env.app.Snapshot().SavedPrompts, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !tierOneOnly && isTerminal(out) {
				fmt.Fprintln(out, styleHeading.Render(oneLine(p.Title())))
				fmt.Fprintln(out, styleMuted.Render(fmt.Sprintf("%s | %s | %s | %s", p.Inputs.Category, p.Inputs.Tone, p.Inputs.OutputFormat, p.Inputs.RefinementDepth)))
				fmt.Fprintln(out)
			}
			printResponse(out, p.Output, tierOneOnly)
			return nil
		},
	}

	cmd.Flags().BoolVar(&tierOneOnly, "tier1-only", false, "print only the Tier-1 prompt")
	return cmd
}

func newLibraryUseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "use <id>",
		Short:         "Load a saved prompt's inputs into the form",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			env, err := openEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			if !env.app.Use(id) {
				return fmt.Errorf("no saved prompt with id %s", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %q into the form.\n", oneLine(env.app.Snapshot().Inputs.Goal))
			return nil
		},
	}
}

func newLibraryDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:           "delete <id>",
		Aliases:       []string{"rm"},
		Short:         "Delete a saved prompt",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			env, err := openEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			p, err := findPrompt(env.app.Snapshot().SavedPrompts, id)
			if err != nil {
				return err
			}

			if !yes {
				if !isTerminal(os.Stdin) {
					return fmt.Errorf("refusing to delete without confirmation; pass --yes")
				}
				ok := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Delete %q?", truncate(oneLine(p.Title()), 60)),
					Default: false,
				}
				if err := survey.AskOne(prompt, &ok); err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			env.app.Delete(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newLibraryExportCommand(rootOpts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Write the library to a JSON file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			if dir == "" {
				dir, err = env.cfg.ExportPath()
				if err != nil {
					return err
				}
			}

			path, err := env.app.ExportTo(dir)
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to export.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from config, else the working directory)")
	return cmd
}

func newLibraryImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "import <file>",
		Short:         "Merge prompts from an exported JSON file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			env, err := openEnv(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			n, err := env.app.Import(data)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d prompt(s).\n", n)
			return nil
		},
	}
}
