package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sant0-9/promptmaster/internal/config"
	"github.com/sant0-9/promptmaster/internal/intent"
	"github.com/sant0-9/promptmaster/internal/library"
)

// state holds widget and navigation state only. Application data lives in
// the app.Store and is read through snapshots.
type state struct {
	// Config
	config     *config.Config
	needsSetup bool

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model

	// Settings
	settingsMode     string
	settingsSelected int

	// Provider
	providerReady bool
	providerError error

	// Form
	focus       int
	goal        textarea.Model
	tone        textinput.Model
	constraints textarea.Model

	// Output
	spinner   spinner.Model
	results   viewport.Model
	resultsOf string
	copied    bool
	copySeq   int
	cancel    context.CancelFunc

	// Library
	cursor      int
	editInput   textinput.Model
	importing   bool
	importInput textinput.Model
	notice      string

	// Alert
	alert       string
	alertReturn view

	tokens      *tokenCounter
	tokensFor   intent.Inputs
	tokenCount  int
	tokensValid bool
}

func newState() *state {
	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	goal := textarea.New()
	goal.Placeholder = "e.g. Write a tagline for a coffee shop"
	goal.ShowLineNumbers = false
	goal.CharLimit = 4000
	goal.SetHeight(3)

	tone := textinput.New()
	tone.Placeholder = "e.g. Witty, Professional, a pirate captain"
	tone.CharLimit = 200

	constraints := textarea.New()
	constraints.Placeholder = "e.g. Under 10 words, avoid jargon"
	constraints.ShowLineNumbers = false
	constraints.CharLimit = 2000
	constraints.SetHeight(2)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleTitle

	edit := textinput.New()
	edit.CharLimit = 4000

	imp := textinput.New()
	imp.Placeholder = "path/to/prompt-master-backup.json"
	imp.CharLimit = 1000

	return &state{
		apiKeyInput: apiKey,
		goal:        goal,
		tone:        tone,
		constraints: constraints,
		spinner:     sp,
		results:     viewport.New(70, 10),
		editInput:   edit,
		importInput: imp,
		tokens:      newTokenCounter(),
	}
}

func (s *state) focusedField() intent.Field {
	return intent.Fields[s.focus]
}

// widgetValue reads the text widget bound to a free-text field.
func (s *state) widgetValue(f intent.Field) (string, bool) {
	switch f {
	case intent.FieldGoal:
		return s.goal.Value(), true
	case intent.FieldTone:
		return s.tone.Value(), true
	case intent.FieldConstraints:
		return s.constraints.Value(), true
	default:
		return "", false
	}
}

// loadInputs copies stored inputs into the text widgets.
func (s *state) loadInputs(in intent.Inputs) {
	s.goal.SetValue(in.Goal)
	s.tone.SetValue(in.Tone)
	s.constraints.SetValue(in.Constraints)
}

// clampCursor keeps the library cursor on an existing entry.
func (s *state) clampCursor(prompts []library.SavedPrompt) {
	if s.cursor >= len(prompts) {
		s.cursor = len(prompts) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}
