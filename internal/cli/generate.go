package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/sant0-9/promptmaster/internal/app"
	"github.com/sant0-9/promptmaster/internal/intent"
	"github.com/sant0-9/promptmaster/internal/response"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	Category        string
	Tone            string
	OutputFormat    string
	Constraints     string
	RefinementDepth string
	Save            bool
	TierOneOnly     bool
	Copy            bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [goal]",
		Short: "Generate a Tier-1 prompt without the interface",
		Long: `Generate a prompt in one shot. Fields not given as flags keep the values
last used in the form, exactly as if they had been typed there.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "category ("+strings.Join(intent.Options(intent.FieldCategory), ", ")+")")
	cmd.Flags().StringVarP(&opts.Tone, "tone", "t", "", "tone or persona")
	cmd.Flags().StringVarP(&opts.OutputFormat, "format", "f", "", "output format ("+strings.Join(intent.Options(intent.FieldOutputFormat), ", ")+")")
	cmd.Flags().StringVar(&opts.Constraints, "constraints", "", "constraints or preferences")
	cmd.Flags().StringVarP(&opts.RefinementDepth, "depth", "d", "", "refinement depth ("+strings.Join(intent.Options(intent.FieldRefinementDepth), ", ")+")")
	cmd.Flags().BoolVarP(&opts.Save, "save", "s", false, "save the result to the library")
	cmd.Flags().BoolVar(&opts.TierOneOnly, "tier1-only", false, "print only the Tier-1 prompt")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "copy the Tier-1 prompt to the clipboard")

	return cmd
}

// fieldFlags maps form fields to their flag names.
var fieldFlags = []struct {
	field intent.Field
	flag  string
}{
	{intent.FieldCategory, "category"},
	{intent.FieldTone, "tone"},
	{intent.FieldOutputFormat, "format"},
	{intent.FieldConstraints, "constraints"},
	{intent.FieldRefinementDepth, "depth"},
}

func (o *GenerateOptions) value(f intent.Field) string {
	switch f {
	case intent.FieldCategory:
		return o.Category
	case intent.FieldTone:
		return o.Tone
	case intent.FieldOutputFormat:
		return o.OutputFormat
	case intent.FieldConstraints:
		return o.Constraints
	case intent.FieldRefinementDepth:
		return o.RefinementDepth
	default:
		return ""
	}
}

// validateOption checks a select flag against its allowed values, ignoring
// case, and returns the canonical spelling.
func validateOption(f intent.Field, flag, v string) (string, error) {
	options := intent.Options(f)
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid %s %q: must be one of %s", flag, v, strings.Join(options, ", "))
}

func runGenerate(rootOpts *RootOptions, opts *GenerateOptions, cmd *cobra.Command, args []string) error {
	// Validate before touching the stored form
	values := make(map[intent.Field]string)
	for _, ff := range fieldFlags {
		if !cmd.Flags().Changed(ff.flag) {
			continue
		}
		v := opts.value(ff.field)
		if ff.field.IsSelect() {
			canonical, err := validateOption(ff.field, ff.flag, v)
			if err != nil {
				return err
			}
			v = canonical
		}
		values[ff.field] = v
	}

	env, err := openEnv(rootOpts)
	if err != nil {
		return err
	}
	defer env.Close()

	if len(args) == 1 {
		env.app.SetField(intent.FieldGoal, args[0])
	}
	for _, f := range intent.Fields {
		if v, ok := values[f]; ok {
			env.app.SetField(f, v)
		}
	}

	if err := env.app.Snapshot().Inputs.Validate(); err != nil {
		return errors.New(app.MsgEmptyGoal)
	}

	ctx := cmd.Context()
	if err := env.connect(ctx); err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	unsubscribe := env.app.Subscribe(func(st app.State) {
		if st.IsLoading {
			fmt.Fprintf(errOut, "Generating with %s (%s)...\n", env.cfg.Provider, env.cfg.Model)
		}
	})
	defer unsubscribe()

	if err := env.app.Submit(ctx); err != nil {
		if st := env.app.Snapshot(); st.Error != "" {
			return errors.New(st.Error)
		}
		return err
	}

	st := env.app.Snapshot()
	out := cmd.OutOrStdout()
	printResponse(out, st.Output, opts.TierOneOnly)

	if opts.Save {
		if env.app.Save() {
			fmt.Fprintln(errOut, "Saved to library.")
		} else {
			fmt.Fprintln(errOut, "Already in library.")
		}
	}

	if opts.Copy {
		text := response.Segment(st.Output).TierOne
		if text == "" {
			text = st.Output
		}
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(errOut, "Copied Tier-1 prompt to clipboard.")
	}

	return nil
}
