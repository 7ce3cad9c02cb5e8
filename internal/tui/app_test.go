package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/promptmaster/internal/app"
	"github.com/sant0-9/promptmaster/internal/config"
	"github.com/sant0-9/promptmaster/internal/intent"
	"github.com/sant0-9/promptmaster/internal/store"
)

const sampleOutput = `**Tier-1 Prompt**
--- TIER-1 PROMPT START ---
You are a barista poet. Write a tagline under 10 words.
--- TIER-1 PROMPT END ---

**Refinement Options**
- Simplify: shorter
- Expand: longer

**Rationale**
Clear persona and a hard limit.

**Scores**
Clarity: 9/10
Specificity: 8/10
Persona Alignment: 9/10
Creativity: 7/10`

type fakeGen struct{ out string }

func (f fakeGen) Generate(ctx context.Context, request string) (string, error) {
	return f.out, nil
}

func newTestApp(t *testing.T) (*App, *app.Store) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.SetPath(filepath.Join(dir, "config.yaml"))
	cfg.ExportDir = dir

	s := app.New(store.New(store.NewMemoryKV()), fakeGen{out: sampleOutput})
	a := NewApp(cfg, s, false)
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return a, s
}

func press(a *App, k tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeText(a *App, s string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestTypingPersistsGoal(t *testing.T) {
	a, s := newTestApp(t)

	typeText(a, "Write a tagline")
	assert.Equal(t, "Write a tagline", s.Snapshot().Inputs.Goal)
}

func TestSelectCycles(t *testing.T) {
	a, s := newTestApp(t)

	press(a, tea.KeyTab)
	assert.Equal(t, intent.FieldCategory, a.state.focusedField())

	before := string(s.Snapshot().Inputs.Category)
	press(a, tea.KeyRight)
	want := intent.Cycle(intent.Options(intent.FieldCategory), before, 1)
	assert.Equal(t, want, string(s.Snapshot().Inputs.Category))

	press(a, tea.KeyLeft)
	assert.Equal(t, before, string(s.Snapshot().Inputs.Category))

	press(a, tea.KeyShiftTab)
	assert.Equal(t, intent.FieldGoal, a.state.focusedField())
	press(a, tea.KeyShiftTab)
	assert.Equal(t, intent.FieldConstraints, a.state.focusedField(), "focus wraps")
}

func TestGenerateWithoutGoal(t *testing.T) {
	a, s := newTestApp(t)

	cmd := press(a, tea.KeyCtrlG)
	assert.Nil(t, cmd)
	assert.Equal(t, app.MsgEmptyGoal, s.Snapshot().Error)
	assert.Contains(t, a.View(), app.MsgEmptyGoal)
}

func TestGenerateSaveFlow(t *testing.T) {
	a, s := newTestApp(t)
	typeText(a, "Write a tagline for a coffee shop")

	cmd := press(a, tea.KeyCtrlG)
	require.NotNil(t, cmd)
	assert.True(t, s.Snapshot().IsLoading)
	assert.Contains(t, a.View(), "Crafting your prompt")

	a.Update(generatedMsg{output: sampleOutput})
	st := s.Snapshot()
	assert.False(t, st.IsLoading)
	assert.Equal(t, sampleOutput, st.Output)

	v := a.View()
	assert.Contains(t, v, "Tier-1 Prompt")
	assert.Contains(t, v, "You are a barista poet.")
	assert.Contains(t, v, "[ctrl+s] Save")
	assert.Contains(t, v, "Clarity 9/10")
	assert.NotContains(t, v, "TIER-1 PROMPT START")

	press(a, tea.KeyCtrlS)
	assert.True(t, s.Snapshot().IsSaved())
	assert.Contains(t, a.View(), "Saved")

	press(a, tea.KeyCtrlS)
	assert.Len(t, s.Snapshot().SavedPrompts, 1)
}

func TestGenerateFailureShowsError(t *testing.T) {
	a, s := newTestApp(t)
	typeText(a, "goal")
	press(a, tea.KeyCtrlG)

	a.Update(generatedMsg{err: assert.AnError})
	assert.Contains(t, s.Snapshot().Error, "An error occurred:")
	assert.Contains(t, a.View(), "Please try again.")
}

func TestEmptyGoalKeepsPreviousResult(t *testing.T) {
	a, s := newTestApp(t)
	typeText(a, "Write a tagline")
	press(a, tea.KeyCtrlG)
	a.Update(generatedMsg{output: sampleOutput})

	a.state.goal.SetValue("  ")
	a.syncField(intent.FieldGoal)
	assert.Nil(t, press(a, tea.KeyCtrlG))

	st := s.Snapshot()
	assert.Equal(t, app.MsgEmptyGoal, st.Error)
	assert.Equal(t, sampleOutput, st.Output)

	v := a.View()
	assert.Contains(t, v, app.MsgEmptyGoal)
	assert.Contains(t, v, "You are a barista poet.")
}

func TestGenerationReleasesContext(t *testing.T) {
	a, _ := newTestApp(t)
	typeText(a, "goal")
	require.NotNil(t, press(a, tea.KeyCtrlG))
	require.NotNil(t, a.state.cancel)

	cancel := a.state.cancel
	cancelled := false
	a.state.cancel = func() {
		cancelled = true
		cancel()
	}

	a.Update(generatedMsg{output: sampleOutput})
	assert.True(t, cancelled)
	assert.Nil(t, a.state.cancel)
}

func TestRequestTokensCached(t *testing.T) {
	a, s := newTestApp(t)
	in := s.Snapshot().Inputs

	n := a.requestTokens(in)
	assert.Positive(t, n)
	assert.Equal(t, in, a.state.tokensFor)

	a.state.tokenCount = -1
	assert.Equal(t, -1, a.requestTokens(in), "same inputs reuse the count")

	in.Goal = "a much longer goal that changes the request text"
	assert.Greater(t, a.requestTokens(in), n)
}

func TestCopiedFlash(t *testing.T) {
	a, _ := newTestApp(t)

	cmd := func() tea.Cmd { _, c := a.Update(copiedMsg{}); return c }()
	require.NotNil(t, cmd)
	assert.True(t, a.state.copied)

	a.Update(clearCopiedMsg{seq: a.state.copySeq - 1})
	assert.True(t, a.state.copied, "stale clear is ignored")

	a.Update(clearCopiedMsg{seq: a.state.copySeq})
	assert.False(t, a.state.copied)
}

func seedSaved(t *testing.T, a *App, s *app.Store, goal string) {
	t.Helper()
	a.state.goal.SetValue(goal)
	a.syncField(intent.FieldGoal)
	s.FinishSubmit("output for "+goal, nil)
	require.True(t, s.Save())
}

func TestLibraryEditAndDelete(t *testing.T) {
	a, s := newTestApp(t)
	seedSaved(t, a, s, "first")
	seedSaved(t, a, s, "second")

	press(a, tea.KeyCtrlL)
	assert.Equal(t, viewLibrary, a.view)
	assert.Contains(t, a.View(), "Saved Prompts (2)")

	typeText(a, "e")
	st := s.Snapshot()
	require.True(t, st.Editing(st.SavedPrompts[0].ID))
	assert.Contains(t, a.View(), "Editing:")

	typeText(a, " edited")
	press(a, tea.KeyEnter)
	st = s.Snapshot()
	assert.Equal(t, "second edited", st.SavedPrompts[0].Inputs.Goal)
	assert.False(t, st.Editing(st.SavedPrompts[0].ID))

	press(a, tea.KeyDown)
	typeText(a, "d")
	st = s.Snapshot()
	require.Len(t, st.SavedPrompts, 1)
	assert.Equal(t, "second edited", st.SavedPrompts[0].Inputs.Goal)
	assert.Equal(t, 0, a.state.cursor)
}

func TestLibraryCancelEdit(t *testing.T) {
	a, s := newTestApp(t)
	seedSaved(t, a, s, "only")

	press(a, tea.KeyCtrlL)
	typeText(a, "e")
	typeText(a, "zzz")
	press(a, tea.KeyEsc)

	st := s.Snapshot()
	assert.Equal(t, "only", st.SavedPrompts[0].Inputs.Goal)
	assert.Equal(t, viewLibrary, a.view, "esc leaves edit mode, not the library")
}

func TestLibraryBlankEditKeepsGoal(t *testing.T) {
	a, s := newTestApp(t)
	seedSaved(t, a, s, "keep me")

	press(a, tea.KeyCtrlL)
	typeText(a, "e")
	a.state.editInput.SetValue("   ")
	press(a, tea.KeyEnter)

	st := s.Snapshot()
	assert.Equal(t, "keep me", st.SavedPrompts[0].Inputs.Goal)
	assert.False(t, st.Editing(st.SavedPrompts[0].ID))
	assert.False(t, a.state.editInput.Focused())
	assert.NotContains(t, a.View(), "Editing:")
	assert.Equal(t, viewLibrary, a.view)
}

func TestLibraryUse(t *testing.T) {
	a, s := newTestApp(t)
	seedSaved(t, a, s, "reuse me")
	a.state.goal.SetValue("something else")
	a.syncField(intent.FieldGoal)

	press(a, tea.KeyCtrlL)
	press(a, tea.KeyEnter)

	assert.Equal(t, viewForm, a.view)
	assert.Equal(t, "reuse me", a.state.goal.Value())
	assert.Equal(t, "output for reuse me", s.Snapshot().Output)
	assert.Equal(t, 0, a.state.results.YOffset)
}

func TestLibraryExportAndImport(t *testing.T) {
	a, s := newTestApp(t)
	seedSaved(t, a, s, "exported")

	press(a, tea.KeyCtrlL)
	typeText(a, "x")
	require.True(t, strings.HasPrefix(a.state.notice, "Exported to "))
	path := strings.TrimPrefix(a.state.notice, "Exported to ")
	_, err := os.Stat(path)
	require.NoError(t, err)

	b, other := newTestApp(t)
	press(b, tea.KeyCtrlL)
	typeText(b, "i")
	require.True(t, b.state.importing)
	typeText(b, path)
	press(b, tea.KeyEnter)

	assert.Equal(t, viewLibrary, b.view)
	assert.Equal(t, "Imported 1 prompt(s)", b.state.notice)
	assert.Len(t, other.Snapshot().SavedPrompts, 1)
}

func TestImportFailureAlerts(t *testing.T) {
	a, s := newTestApp(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"array"}`), 0644))

	press(a, tea.KeyCtrlL)
	typeText(a, "i")
	typeText(a, bad)
	press(a, tea.KeyEnter)

	assert.Equal(t, viewAlert, a.view)
	assert.Equal(t, "Failed to import prompts: Invalid JSON format: Not an array.", a.state.alert)
	assert.Contains(t, a.View(), "Something went wrong")
	assert.Empty(t, s.Snapshot().SavedPrompts)

	press(a, tea.KeyEnter)
	assert.Equal(t, viewLibrary, a.view)
}

func TestHelpAndSettingsNavigation(t *testing.T) {
	a, _ := newTestApp(t)

	press(a, tea.KeyF1)
	assert.Equal(t, viewHelp, a.view)
	assert.Contains(t, a.View(), "ctrl+g")
	press(a, tea.KeyEsc)
	assert.Equal(t, viewForm, a.view)

	press(a, tea.KeyCtrlO)
	assert.Equal(t, viewSettings, a.view)
	v := a.View()
	assert.Contains(t, v, "Provider: Gemini")
	assert.Contains(t, v, "gemini-2.5-pro")

	typeText(a, "m")
	assert.Equal(t, "model", a.state.settingsMode)
	press(a, tea.KeyEsc)
	press(a, tea.KeyEsc)
	assert.Equal(t, viewForm, a.view)
}

func TestSetupWizard(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.SetPath(filepath.Join(dir, "config.yaml"))

	s := app.New(store.New(store.NewMemoryKV()), nil)
	a := NewApp(cfg, s, true)
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, viewSetup, a.view)

	a.state.selectedProvider = providerIndex("openai")
	press(a, tea.KeyEnter)
	assert.Equal(t, 1, a.state.setupStep)
	assert.Contains(t, a.View(), "Enter your OpenAI API key")

	typeText(a, "sk-test")
	cmd := press(a, tea.KeyEnter)
	require.NotNil(t, cmd)
	msg := cmd()
	assert.IsType(t, setupCompleteMsg{}, msg)

	saved, err := config.LoadFrom(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "openai", saved.Provider)
	assert.Equal(t, "sk-test", saved.APIKey)
	assert.Equal(t, "gpt-4o-mini", saved.Model)

	a.Update(msg)
	assert.Equal(t, viewForm, a.view)
}
