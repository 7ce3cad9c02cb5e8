package response

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/sant0-9/promptmaster/internal/prompts"
)

const (
	start = prompts.TierOneStart
	end   = prompts.TierOneEnd
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantTierOne   string
		wantRemainder string
	}{
		{
			name:          "inline sentinels",
			raw:           "pre " + start + " Hello " + end + " post",
			wantTierOne:   "Hello",
			wantRemainder: "pre  post",
		},
		{
			name:          "heading artifact stripped",
			raw:           "**Tier-1 Prompt**\n" + start + "\nDo the thing\n" + end + "\n\n**Rationale**\nBecause.",
			wantTierOne:   "Do the thing",
			wantRemainder: "**Rationale**\nBecause.",
		},
		{
			name:          "only first heading artifact stripped",
			raw:           "**Tier-1 Prompt** **Tier-1 Prompt**" + start + "x" + end,
			wantTierOne:   "x",
			wantRemainder: "**Tier-1 Prompt**",
		},
		{
			name:          "missing end",
			raw:           "a " + start + " b",
			wantTierOne:   "",
			wantRemainder: "a " + start + " b",
		},
		{
			name:          "missing start",
			raw:           "a " + end + " b",
			wantTierOne:   "",
			wantRemainder: "a " + end + " b",
		},
		{
			name:          "end before start",
			raw:           end + " x " + start,
			wantTierOne:   "",
			wantRemainder: end + " x " + start,
		},
		{
			name:          "no sentinels keeps raw untouched",
			raw:           "  just text\n",
			wantTierOne:   "",
			wantRemainder: "  just text\n",
		},
		{
			name:          "empty",
			raw:           "",
			wantTierOne:   "",
			wantRemainder: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.raw)
			assert.Equal(t, tt.wantTierOne, got.TierOne)
			assert.Equal(t, tt.wantRemainder, got.Remainder)
		})
	}
}

func TestSegmentProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("tier-1 is the trimmed text between sentinels", prop.ForAll(
		func(a, inner, b string) bool {
			raw := a + start + inner + end + b
			return Segment(raw).TierOne == strings.TrimSpace(inner)
		},
		gen.AlphaString(),
		gen.AnyString().SuchThat(func(s string) bool {
			return !strings.Contains(s, end)
		}),
		gen.AlphaString(),
	))

	properties.Property("text without a start sentinel is returned as is", prop.ForAll(
		func(raw string) bool {
			got := Segment(raw)
			return got.TierOne == "" && got.Remainder == raw
		},
		gen.AnyString().SuchThat(func(s string) bool {
			return !strings.Contains(s, start)
		}),
	))

	properties.TestingRun(t)
}
