// Package app owns the application state. Every user action is an entry
// point on Store; views only read Snapshots.
package app

import (
	"github.com/sant0-9/promptmaster/internal/intent"
	"github.com/sant0-9/promptmaster/internal/library"
	"github.com/sant0-9/promptmaster/internal/response"
)

// State is an immutable snapshot of the application.
type State struct {
	IsLoading       bool
	Output          string
	Error           string
	Inputs          intent.Inputs
	SavedPrompts    []library.SavedPrompt
	EditingPromptID library.ID
}

// Editing reports whether the entry with id is in inline-edit mode.
func (s State) Editing(id library.ID) bool {
	return s.EditingPromptID != library.NoID && s.EditingPromptID == id
}

// IsSaved reports whether the current output is already in the library.
func (s State) IsSaved() bool {
	if s.Output == "" {
		return false
	}
	for _, p := range s.SavedPrompts {
		if p.Output == s.Output {
			return true
		}
	}
	return false
}

// Segments splits the current output for display.
func (s State) Segments() response.Segments {
	return response.Segment(s.Output)
}

// Phase names where the submit state machine currently is.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "idle"
	}
}

// Phase derives the submit phase from the snapshot.
func (s State) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.Error != "":
		return PhaseFailure
	case s.Output != "":
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}
