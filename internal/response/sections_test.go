package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRemainder = `Here is your prompt.

**Refinement Options**
- **Simplify:** Write a short tagline.
- **Expand:** Write three taglines with reasoning.

**Rationale**
It is specific and sets a persona.

### Scoring
- **Clarity:** 9/10
- **Specificity:** 8/10
- **Persona Alignment:** 7
- **Creativity:** 8.5/10
`

func TestSections(t *testing.T) {
	sections := Sections(sampleRemainder)
	require.Len(t, sections, 4)

	assert.Equal(t, "", sections[0].Title)
	assert.Equal(t, "Here is your prompt.", sections[0].Body)

	assert.Equal(t, "Refinement Options", sections[1].Title)
	assert.Contains(t, sections[1].Body, "**Simplify:** Write a short tagline.")
	assert.Contains(t, sections[1].Body, "**Expand:**")

	assert.Equal(t, "Rationale", sections[2].Title)
	assert.Equal(t, "It is specific and sets a persona.", sections[2].Body)

	assert.Equal(t, "Scoring", sections[3].Title)
	assert.NotContains(t, sections[3].Body, "###")
}

func TestSectionsTitleWithTextOnNextLine(t *testing.T) {
	sections := Sections("**Rationale:**\nShort and sharp.")
	require.Len(t, sections, 1)
	assert.Equal(t, "Rationale", sections[0].Title)
	assert.Equal(t, "Short and sharp.", sections[0].Body)
}

func TestSectionsPlainText(t *testing.T) {
	sections := Sections("no structure at all")
	require.Len(t, sections, 1)
	assert.Equal(t, "", sections[0].Title)

	assert.Empty(t, Sections(""))
}

func TestFind(t *testing.T) {
	s, ok := Find(Sections(sampleRemainder), "rationale")
	require.True(t, ok)
	assert.Equal(t, "Rationale", s.Title)

	_, ok = Find(nil, "Scoring")
	assert.False(t, ok)
}

func TestScores(t *testing.T) {
	scores := Scores(sampleRemainder)
	require.Len(t, scores, 4)

	assert.Equal(t, Score{Axis: "Clarity", Value: 9, Max: 10}, scores[0])
	assert.Equal(t, Score{Axis: "Specificity", Value: 8, Max: 10}, scores[1])
	assert.Equal(t, Score{Axis: "Persona Alignment", Value: 7, Max: 10}, scores[2])
	assert.Equal(t, Score{Axis: "Creativity", Value: 8.5, Max: 10}, scores[3])
	assert.Equal(t, "Creativity 8.5/10", scores[3].String())
}

func TestScoresPartial(t *testing.T) {
	scores := Scores("The clarity is great.\n- Creativity: 6/10")
	require.Len(t, scores, 1)
	assert.Equal(t, "Creativity", scores[0].Axis)

	assert.Empty(t, Scores("nothing here"))
}
