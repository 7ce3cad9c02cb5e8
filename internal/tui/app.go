package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/promptmaster/internal/app"
	"github.com/sant0-9/promptmaster/internal/config"
	"github.com/sant0-9/promptmaster/internal/library"
	"github.com/sant0-9/promptmaster/internal/llm"
)

type view int

const (
	viewSetup view = iota
	viewForm
	viewLibrary
	viewSettings
	viewHelp
	viewAlert
)

const copiedFlash = 2 * time.Second

type App struct {
	width    int
	height   int
	view     view
	state    *state
	store    *app.Store
	log      *slog.Logger
	quitting bool
}

// NewApp builds the interface over store. When needsSetup is set the
// provider wizard runs first and writes cfg.
func NewApp(cfg *config.Config, store *app.Store, needsSetup bool) *App {
	s := newState()
	s.config = cfg
	s.needsSetup = needsSetup
	s.loadInputs(store.Snapshot().Inputs)

	return &App{
		view:  viewForm,
		state: s,
		store: store,
		log:   slog.Default().With("component", "tui"),
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	return tea.Batch(
		tea.WindowSize(),
		a.focusField(0),
		a.connectProvider(),
	)
}

// connectProvider builds the configured provider and checks it answers.
// A failed ping still installs the provider so the user can try anyway.
func (a *App) connectProvider() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		provider, err := llm.NewProvider(ctx, &cfg)
		if err != nil {
			return providerErrorMsg{err: err}
		}
		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{provider: provider, err: err}
		}
		return providerReadyMsg{provider: provider}
	}
}

func (a *App) installProvider(p llm.Provider) {
	a.store.SetGenerator(llm.NewClient(p, a.state.config.Model))
}

type setupCompleteMsg struct{}
type settingsSavedMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct{ provider llm.Provider }
type providerErrorMsg struct {
	provider llm.Provider
	err      error
}
type generatedMsg struct {
	output string
	err    error
}
type copiedMsg struct{ err error }
type clearCopiedMsg struct{ seq int }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := a.handleKey(msg)
		a.syncResults()
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()

	case spinner.TickMsg:
		if !a.store.Snapshot().IsLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.view = viewForm
		return a, tea.Batch(a.focusField(a.state.focus), a.connectProvider())

	case settingsSavedMsg:
		a.state.providerReady = false
		a.state.providerError = nil
		a.state.settingsMode = ""
		return a, a.connectProvider()

	case setupErrorMsg:
		a.showAlert(fmt.Sprintf("Failed to save config: %v", msg.error))
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		a.installProvider(msg.provider)
		return a, nil

	case providerErrorMsg:
		a.log.Warn("provider check failed", "provider", a.state.config.Provider, "error", msg.err)
		a.state.providerError = msg.err
		if msg.provider != nil {
			a.installProvider(msg.provider)
		}
		return a, nil

	case generatedMsg:
		if a.state.cancel != nil {
			a.state.cancel()
			a.state.cancel = nil
		}
		a.store.FinishSubmit(msg.output, msg.err)
		a.syncResults()
		return a, nil

	case copiedMsg:
		if msg.err != nil {
			a.state.notice = fmt.Sprintf("Copy failed: %v", msg.err)
			return a, nil
		}
		a.state.copied = true
		a.state.copySeq++
		seq := a.state.copySeq
		return a, tea.Tick(copiedFlash, func(time.Time) tea.Msg {
			return clearCopiedMsg{seq: seq}
		})

	case clearCopiedMsg:
		if msg.seq == a.state.copySeq {
			a.state.copied = false
		}
		return a, nil
	}

	// Cursor blink and other widget messages go to whatever is focused
	if cmd := a.updateWidgets(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) updateWidgets(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.view {
	case viewSetup:
		if a.state.setupStep == 1 {
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		}
	case viewSettings:
		if a.state.settingsMode == "apikey" {
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		}
	case viewForm:
		cmd = a.updateFocusedWidget(msg)
	case viewLibrary:
		switch {
		case a.state.importing:
			a.state.importInput, cmd = a.state.importInput.Update(msg)
		case a.store.Snapshot().EditingPromptID != library.NoID:
			a.state.editInput, cmd = a.state.editInput.Update(msg)
		}
	}
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) {
		return a.quit()
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewForm:
		return a.handleFormKey(msg)
	case viewLibrary:
		return a.handleLibraryKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Back, keys.Help, keys.Enter) {
			a.view = viewForm
			return a.focusField(a.state.focus)
		}
	case viewAlert:
		if key.Matches(msg, keys.Back, keys.Enter) {
			a.view = a.state.alertReturn
			a.state.alert = ""
		}
	}
	return nil
}

func (a *App) quit() tea.Cmd {
	if a.state.cancel != nil {
		a.state.cancel()
	}
	a.quitting = true
	return tea.Quit
}

func (a *App) showAlert(msg string) {
	if a.view != viewAlert {
		a.state.alertReturn = a.view
	}
	a.state.alert = msg
	a.view = viewAlert
}

// submit starts a generation. Validation failures and double submits are
// reported through the store snapshot, so nothing is returned for them.
func (a *App) submit() tea.Cmd {
	request, err := a.store.BeginSubmit()
	if err != nil {
		a.log.Debug("submit rejected", "error", err)
		return nil
	}
	a.state.copied = false
	a.state.notice = ""

	ctx, cancel := context.WithCancel(context.Background())
	a.state.cancel = cancel

	return tea.Batch(a.state.spinner.Tick, func() tea.Msg {
		out, err := a.store.Generate(ctx, request)
		return generatedMsg{output: out, err: err}
	})
}

// copyTierOne copies the Tier-1 prompt, or the whole output when the
// response had no sentinels.
func (a *App) copyTierOne() tea.Cmd {
	st := a.store.Snapshot()
	text := st.Segments().TierOne
	if text == "" {
		text = st.Output
	}
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func (a *App) resize() {
	w := a.contentWidth()
	a.state.goal.SetWidth(w - 4)
	a.state.constraints.SetWidth(w - 4)
	a.state.tone.Width = w - 6
	a.state.editInput.Width = w - 10
	a.state.importInput.Width = w - 6
	a.state.results.Width = w
	a.state.resultsOf = "\x00"
	a.syncResults()
}

func (a *App) contentWidth() int {
	w := min(100, a.width-4)
	if w < 30 {
		w = 30
	}
	return w
}

// syncResults re-renders the scrollable remainder when the output changes
// and scrolls it back to the top.
func (a *App) syncResults() {
	st := a.store.Snapshot()
	if st.Output == a.state.resultsOf {
		return
	}
	a.state.resultsOf = st.Output
	a.state.results.SetContent(renderRemainder(st.Segments().Remainder, a.state.results.Width))
	a.state.results.GotoTop()
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewLibrary:
		return a.renderLibrary()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	case viewAlert:
		return a.renderAlert()
	default:
		return a.renderForm()
	}
}
