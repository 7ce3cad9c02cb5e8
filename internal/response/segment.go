// Package response splits a generated response into the Tier-1 prompt and
// the auxiliary sections around it.
package response

import (
	"strings"

	"github.com/sant0-9/promptmaster/internal/prompts"
)

// Segments is a response split around the Tier-1 sentinels.
type Segments struct {
	TierOne   string
	Remainder string
}

// HasTierOne reports whether a Tier-1 prompt was found.
func (s Segments) HasTierOne() bool {
	return s.TierOne != ""
}

// Segment extracts the text between the Tier-1 sentinels. When either
// sentinel is missing, or the end comes before the start, the whole raw
// text is returned as the remainder.
func Segment(raw string) Segments {
	start := strings.Index(raw, prompts.TierOneStart)
	if start < 0 {
		return Segments{Remainder: raw}
	}
	afterStart := start + len(prompts.TierOneStart)
	end := strings.Index(raw[afterStart:], prompts.TierOneEnd)
	if end < 0 {
		return Segments{Remainder: raw}
	}
	end += afterStart

	before := raw[:start]
	after := raw[end+len(prompts.TierOneEnd):]
	rest := strings.Replace(before+after, prompts.TierOneHeading, "", 1)

	return Segments{
		TierOne:   strings.TrimSpace(raw[afterStart:end]),
		Remainder: strings.TrimSpace(rest),
	}
}
