package intent

// Category is the domain the prompt is written for.
type Category string

const (
	CategoryAppBuilding  Category = "App Building"
	CategoryAutomation   Category = "Automation"
	CategoryCoding       Category = "Coding"
	CategoryCreative     Category = "Creative"
	CategoryDesign       Category = "Design"
	CategoryMarketing    Category = "Marketing"
	CategoryProductivity Category = "Productivity"
	CategoryResearch     Category = "Research"
	CategoryStrategy     Category = "Strategy"
	CategoryWriting      Category = "Writing"
)

// Categories is sorted alphabetically, the order the form shows them in.
var Categories = []Category{
	CategoryAppBuilding,
	CategoryAutomation,
	CategoryCoding,
	CategoryCreative,
	CategoryDesign,
	CategoryMarketing,
	CategoryProductivity,
	CategoryResearch,
	CategoryStrategy,
	CategoryWriting,
}

// OutputFormat is the shape the generated prompt should ask for.
type OutputFormat string

const (
	FormatText       OutputFormat = "Text"
	FormatTable      OutputFormat = "Table"
	FormatCode       OutputFormat = "Code"
	FormatScript     OutputFormat = "Script"
	FormatStepByStep OutputFormat = "Step-by-Step"
	FormatReport     OutputFormat = "Report"
)

var OutputFormats = []OutputFormat{
	FormatText,
	FormatTable,
	FormatCode,
	FormatScript,
	FormatStepByStep,
	FormatReport,
}

// RefinementDepth biases which variant ends up in the Tier-1 section.
type RefinementDepth string

const (
	DepthTierOne       RefinementDepth = "Tier-1"
	DepthSimplify      RefinementDepth = "Simplify"
	DepthExpand        RefinementDepth = "Expand"
	DepthRoleBoost     RefinementDepth = "Role Boost"
	DepthCreativeTwist RefinementDepth = "Creative Twist"
)

var RefinementDepths = []RefinementDepth{
	DepthTierOne,
	DepthSimplify,
	DepthExpand,
	DepthRoleBoost,
	DepthCreativeTwist,
}

// Options returns the allowed values of a select field, nil for free text.
func Options(f Field) []string {
	switch f {
	case FieldCategory:
		return toStrings(Categories)
	case FieldOutputFormat:
		return toStrings(OutputFormats)
	case FieldRefinementDepth:
		return toStrings(RefinementDepths)
	default:
		return nil
	}
}

// Cycle returns the option delta steps away from current, wrapping around.
// A value that is not in the list (for example one written by a newer
// version) moves to the first option.
func Cycle(options []string, current string, delta int) string {
	if len(options) == 0 {
		return current
	}
	idx := indexOf(options, current)
	if idx < 0 {
		return options[0]
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}

func toStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
