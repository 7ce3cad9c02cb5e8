package intent

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCycleFormats(t *testing.T) {
	formats := Options(FieldOutputFormat)
	assert.Equal(t, "Table", Cycle(formats, "Text", 1))
	assert.Equal(t, "Report", Cycle(formats, "Text", -1), "wraps backwards")
	assert.Equal(t, "Text", Cycle(formats, "Report", 1), "wraps forwards")
	assert.Equal(t, "Text", Cycle(formats, "Unknown", 1))
	assert.Equal(t, "free", Cycle(nil, "free", 1))
	assert.Nil(t, Options(FieldTone))
}

func TestOptionsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	selects := []Field{FieldCategory, FieldOutputFormat, FieldRefinementDepth}

	properties.Property("cycling stays within the options", prop.ForAll(
		func(fi, idx, delta int) bool {
			options := Options(selects[fi])
			got := Cycle(options, options[idx%len(options)], delta)
			return indexOf(options, got) >= 0
		},
		gen.IntRange(0, len(selects)-1),
		gen.IntRange(0, 20),
		gen.IntRange(-50, 50),
	))

	properties.Property("cycling back returns to the start", prop.ForAll(
		func(fi, idx, delta int) bool {
			options := Options(selects[fi])
			current := options[idx%len(options)]
			return Cycle(options, Cycle(options, current, delta), -delta) == current
		},
		gen.IntRange(0, len(selects)-1),
		gen.IntRange(0, 20),
		gen.IntRange(-50, 50),
	))

	properties.Property("merge keeps present fields and defaults the rest", prop.ForAll(
		func(goal, tone string, withTone bool) bool {
			p := Partial{Goal: &goal}
			want := Defaults()
			want.Goal = goal
			if withTone {
				p.Tone = &tone
				want.Tone = tone
			}
			return Merge(p) == want
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.Bool(),
	))

	properties.Property("an empty refinement depth falls back to Tier-1", prop.ForAll(
		func(goal string) bool {
			empty := ""
			return Merge(Partial{Goal: &goal, RefinementDepth: &empty}).RefinementDepth == DepthTierOne
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
