package prompts

import (
	_ "embed"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/sant0-9/promptmaster/internal/intent"
)

// Sentinel lines delimiting the Tier-1 prompt in a generated response.
// The response segmenter splits on the same constants.
const (
	TierOneStart   = "--- TIER-1 PROMPT START ---"
	TierOneEnd     = "--- TIER-1 PROMPT END ---"
	TierOneHeading = "**Tier-1 Prompt**"
)

// ScoreAxes are the axes the model is asked to score its prompt on.
var ScoreAxes = []string{"Clarity", "Specificity", "Persona Alignment", "Creativity"}

//go:embed request.tmpl
var requestTemplate string

var request = template.Must(
	template.New("request").Funcs(sprig.TxtFuncMap()).Parse(requestTemplate),
)

const baseInstruction = "Based on the user's input, generate the response following this exact structure."

// Instruction returns the task paragraph for a refinement depth. Unknown
// depths get the balanced Tier-1 instruction.
func Instruction(depth intent.RefinementDepth) string {
	var focus string
	switch depth {
	case intent.DepthSimplify:
		focus = "Your main task is to create the **most concise and direct prompt possible**. This simplified version should be placed in the 'Tier-1 Prompt' section."
	case intent.DepthExpand:
		focus = "Your main task is to create the **most detailed, step-by-step prompt possible**. This expanded version should be placed in the 'Tier-1 Prompt' section."
	case intent.DepthRoleBoost:
		focus = "Your main task is to create a prompt that **maximizes the persona depth and expertise**. This role-boosted version should be placed in the 'Tier-1 Prompt' section."
	case intent.DepthCreativeTwist:
		focus = "Your main task is to create the **most creative and original prompt**, perhaps with a storytelling flair. This creative version should be placed in the 'Tier-1 Prompt' section."
	default:
		return baseInstruction + " The 'Tier-1 Prompt' should be your primary, most optimized output, with the other sections providing refinements and analysis."
	}
	return baseInstruction + " " + focus + " The other refinement sections should offer alternative perspectives."
}

type requestData struct {
	intent.Inputs
	Instruction string
	Heading     string
	Start       string
	End         string
}

// Build renders the meta-prompt sent to the generation model. Inputs are
// interpolated verbatim; validation happens before this is called.
func Build(in intent.Inputs) string {
	var b strings.Builder
	err := request.Execute(&b, requestData{
		Inputs:      in,
		Instruction: Instruction(in.RefinementDepth),
		Heading:     TierOneHeading,
		Start:       TierOneStart,
		End:         TierOneEnd,
	})
	if err != nil {
		// Only reachable if the embedded template is broken.
		slog.Error("render request template", "error", err)
	}
	return b.String()
}
