package intent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, CategoryMarketing, d.Category)
	assert.Equal(t, FormatText, d.OutputFormat)
	assert.Equal(t, DepthTierOne, d.RefinementDepth)
	assert.Empty(t, d.Goal)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		goal    string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace", "  \n\t ", true},
		{"goal", "Write a tagline", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Defaults()
			in.Goal = tt.goal
			err := in.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyGoal)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Inputs
	}{
		{
			name: "empty object gives defaults",
			json: `{}`,
			want: Defaults(),
		},
		{
			name: "older record without refinement depth",
			json: `{"goal":"g","category":"Coding","tone":"dry","outputFormat":"Code","constraints":"none"}`,
			want: Inputs{Goal: "g", Category: CategoryCoding, Tone: "dry", OutputFormat: FormatCode, Constraints: "none", RefinementDepth: DepthTierOne},
		},
		{
			name: "empty depth falls back",
			json: `{"goal":"g","refinementDepth":""}`,
			want: Inputs{Goal: "g", Category: CategoryMarketing, OutputFormat: FormatText, RefinementDepth: DepthTierOne},
		},
		{
			name: "unknown fields ignored",
			json: `{"goal":"g","refinementDepth":"Expand","legacy":true}`,
			want: Inputs{Goal: "g", Category: CategoryMarketing, OutputFormat: FormatText, RefinementDepth: DepthExpand},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Partial
			require.NoError(t, json.Unmarshal([]byte(tt.json), &p))
			assert.Equal(t, tt.want, Merge(p))
		})
	}
}

func TestGetSet(t *testing.T) {
	in := Defaults()
	for _, f := range Fields {
		in = in.Set(f, "v-"+f.String())
	}
	for _, f := range Fields {
		assert.Equal(t, "v-"+f.String(), in.Get(f))
	}
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("outputformat")
	require.True(t, ok)
	assert.Equal(t, FieldOutputFormat, f)

	_, ok = ParseField("nope")
	assert.False(t, ok)
}

func TestCycle(t *testing.T) {
	opts := Options(FieldRefinementDepth)
	require.Len(t, opts, 5)

	assert.Equal(t, "Simplify", Cycle(opts, "Tier-1", 1))
	assert.Equal(t, "Creative Twist", Cycle(opts, "Tier-1", -1))
	assert.Equal(t, "Tier-1", Cycle(opts, "Creative Twist", 1))
	assert.Equal(t, "Tier-1", Cycle(opts, "Unknown", 1))
	assert.Nil(t, Options(FieldGoal))
}

func TestCategoriesSorted(t *testing.T) {
	opts := Options(FieldCategory)
	require.Len(t, opts, 10)
	for i := 1; i < len(opts); i++ {
		assert.Less(t, opts[i-1], opts[i])
	}
	assert.Len(t, Options(FieldOutputFormat), 6)
}
