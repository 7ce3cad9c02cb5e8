package intent

import (
	"errors"
	"strings"
)

// ErrEmptyGoal is returned when a generation is requested without a goal.
var ErrEmptyGoal = errors.New("please enter a goal for your prompt")

// Inputs holds everything the user typed into the form.
type Inputs struct {
	Goal            string          `json:"goal"`
	Category        Category        `json:"category"`
	Tone            string          `json:"tone"`
	OutputFormat    OutputFormat    `json:"outputFormat"`
	Constraints     string          `json:"constraints"`
	RefinementDepth RefinementDepth `json:"refinementDepth"`
}

// Defaults returns the form state of a fresh install.
func Defaults() Inputs {
	return Inputs{
		Category:        CategoryMarketing,
		OutputFormat:    FormatText,
		RefinementDepth: DepthTierOne,
	}
}

// Validate checks the inputs are ready to be sent for generation.
func (in Inputs) Validate() error {
	if strings.TrimSpace(in.Goal) == "" {
		return ErrEmptyGoal
	}
	return nil
}

// Partial is a stored Inputs record where every field may be missing.
// Records written by older versions decode into it without losing the
// distinction between "absent" and "empty".
type Partial struct {
	Goal            *string `json:"goal"`
	Category        *string `json:"category"`
	Tone            *string `json:"tone"`
	OutputFormat    *string `json:"outputFormat"`
	Constraints     *string `json:"constraints"`
	RefinementDepth *string `json:"refinementDepth"`
}

// Merge applies p over the defaults field by field. An empty refinement
// depth is treated as missing.
func Merge(p Partial) Inputs {
	in := Defaults()
	if p.Goal != nil {
		in.Goal = *p.Goal
	}
	if p.Category != nil {
		in.Category = Category(*p.Category)
	}
	if p.Tone != nil {
		in.Tone = *p.Tone
	}
	if p.OutputFormat != nil {
		in.OutputFormat = OutputFormat(*p.OutputFormat)
	}
	if p.Constraints != nil {
		in.Constraints = *p.Constraints
	}
	if p.RefinementDepth != nil && *p.RefinementDepth != "" {
		in.RefinementDepth = RefinementDepth(*p.RefinementDepth)
	}
	return in
}

// Field names one editable form field.
type Field int

const (
	FieldGoal Field = iota
	FieldCategory
	FieldOutputFormat
	FieldRefinementDepth
	FieldTone
	FieldConstraints
)

// Fields lists the form fields in tab order.
var Fields = []Field{
	FieldGoal,
	FieldCategory,
	FieldOutputFormat,
	FieldRefinementDepth,
	FieldTone,
	FieldConstraints,
}

func (f Field) String() string {
	switch f {
	case FieldGoal:
		return "goal"
	case FieldCategory:
		return "category"
	case FieldOutputFormat:
		return "outputFormat"
	case FieldRefinementDepth:
		return "refinementDepth"
	case FieldTone:
		return "tone"
	case FieldConstraints:
		return "constraints"
	default:
		return "unknown"
	}
}

// Label is the human readable form label.
func (f Field) Label() string {
	switch f {
	case FieldGoal:
		return "Goal / Objective / Task"
	case FieldCategory:
		return "Category"
	case FieldOutputFormat:
		return "Output Format"
	case FieldRefinementDepth:
		return "Refinement Depth"
	case FieldTone:
		return "Tone / Persona (optional)"
	case FieldConstraints:
		return "Constraints / Preferences (optional)"
	default:
		return ""
	}
}

// IsSelect reports whether the field takes one of a fixed set of values.
func (f Field) IsSelect() bool {
	return f == FieldCategory || f == FieldOutputFormat || f == FieldRefinementDepth
}

// Get returns the value of field f.
func (in Inputs) Get(f Field) string {
	switch f {
	case FieldGoal:
		return in.Goal
	case FieldCategory:
		return string(in.Category)
	case FieldOutputFormat:
		return string(in.OutputFormat)
	case FieldRefinementDepth:
		return string(in.RefinementDepth)
	case FieldTone:
		return in.Tone
	case FieldConstraints:
		return in.Constraints
	default:
		return ""
	}
}

// Set returns a copy of in with field f replaced by value.
func (in Inputs) Set(f Field, value string) Inputs {
	switch f {
	case FieldGoal:
		in.Goal = value
	case FieldCategory:
		in.Category = Category(value)
	case FieldOutputFormat:
		in.OutputFormat = OutputFormat(value)
	case FieldRefinementDepth:
		in.RefinementDepth = RefinementDepth(value)
	case FieldTone:
		in.Tone = value
	case FieldConstraints:
		in.Constraints = value
	}
	return in
}

// ParseField maps a field name (as used in JSON and on the command line)
// to its Field.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if strings.EqualFold(f.String(), name) {
			return f, true
		}
	}
	return 0, false
}
