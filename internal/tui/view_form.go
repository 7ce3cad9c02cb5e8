package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptmaster/internal/app"
	"github.com/sant0-9/promptmaster/internal/intent"
	"github.com/sant0-9/promptmaster/internal/prompts"
	"github.com/sant0-9/promptmaster/internal/response"
)

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		return a.quit()
	case key.Matches(msg, keys.Help):
		a.blurForm()
		a.view = viewHelp
		return nil
	case key.Matches(msg, keys.Library):
		a.blurForm()
		a.state.notice = ""
		a.state.clampCursor(a.store.Snapshot().SavedPrompts)
		a.view = viewLibrary
		return nil
	case key.Matches(msg, keys.Settings):
		a.blurForm()
		a.state.settingsMode = ""
		a.view = viewSettings
		return nil
	case key.Matches(msg, keys.Generate):
		return a.submit()
	case key.Matches(msg, keys.Save):
		a.store.Save()
		return nil
	case key.Matches(msg, keys.Copy):
		return a.copyTierOne()
	case key.Matches(msg, keys.Tab):
		return a.focusField(a.state.focus + 1)
	case key.Matches(msg, keys.ShiftTab):
		return a.focusField(a.state.focus - 1)
	case key.Matches(msg, keys.PageUp):
		a.state.results.HalfViewUp()
		return nil
	case key.Matches(msg, keys.PageDown):
		a.state.results.HalfViewDown()
		return nil
	}

	f := a.state.focusedField()
	if f.IsSelect() {
		switch {
		case key.Matches(msg, keys.Left), msg.String() == "h":
			a.cycle(f, -1)
		case key.Matches(msg, keys.Right), msg.String() == "l", msg.String() == " ":
			a.cycle(f, 1)
		case key.Matches(msg, keys.Enter):
			return a.submit()
		case msg.String() == "?":
			a.blurForm()
			a.view = viewHelp
		}
		return nil
	}

	if f == intent.FieldTone && key.Matches(msg, keys.Enter) {
		return a.submit()
	}

	cmd := a.updateFocusedWidget(msg)
	a.syncField(f)
	return cmd
}

// focusField moves focus to field i, wrapping around the form.
func (a *App) focusField(i int) tea.Cmd {
	n := len(intent.Fields)
	a.state.focus = ((i % n) + n) % n
	a.blurForm()

	switch a.state.focusedField() {
	case intent.FieldGoal:
		return a.state.goal.Focus()
	case intent.FieldTone:
		return a.state.tone.Focus()
	case intent.FieldConstraints:
		return a.state.constraints.Focus()
	}
	return nil
}

func (a *App) blurForm() {
	a.state.goal.Blur()
	a.state.tone.Blur()
	a.state.constraints.Blur()
}

func (a *App) updateFocusedWidget(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state.focusedField() {
	case intent.FieldGoal:
		a.state.goal, cmd = a.state.goal.Update(msg)
	case intent.FieldTone:
		a.state.tone, cmd = a.state.tone.Update(msg)
	case intent.FieldConstraints:
		a.state.constraints, cmd = a.state.constraints.Update(msg)
	}
	return cmd
}

// syncField pushes a text widget's value into the store when it changed.
func (a *App) syncField(f intent.Field) {
	v, ok := a.state.widgetValue(f)
	if !ok {
		return
	}
	if a.store.Snapshot().Inputs.Get(f) != v {
		a.store.SetField(f, v)
	}
}

func (a *App) cycle(f intent.Field, delta int) {
	cur := a.store.Snapshot().Inputs.Get(f)
	a.store.SetField(f, intent.Cycle(intent.Options(f), cur, delta))
}

func (a *App) renderForm() string {
	st := a.store.Snapshot()
	w := a.contentWidth()

	var top strings.Builder
	top.WriteString(a.renderHeader())
	top.WriteString("\n")
	top.WriteString(a.renderFields(st.Inputs, w))
	top.WriteString("\n")

	bottom := a.renderFormStatus(st)

	// An inline error sits above the previous result rather than replacing it
	var out strings.Builder
	if st.IsLoading {
		out.WriteString(renderLoading(a.state.spinner.View()))
	} else {
		if st.Error != "" {
			out.WriteString(renderError(st.Error, w))
			out.WriteString("\n")
		}
		if st.Output != "" {
			seg := st.Segments()
			if seg.HasTierOne() {
				out.WriteString(renderTierOne(seg.TierOne, st.IsSaved(), a.state.copied, w))
				out.WriteString("\n")
			}
			if line := renderScores(response.Scores(seg.Remainder)); line != "" {
				out.WriteString(line)
				out.WriteString("\n")
			}
			used := lipgloss.Height(top.String()) + lipgloss.Height(out.String()) + lipgloss.Height(bottom) + 1
			a.state.results.Height = max(3, a.height-used)
			out.WriteString(a.state.results.View())
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, top.String(), out.String())
	body = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, body)

	gap := a.height - lipgloss.Height(body) - lipgloss.Height(bottom)
	if gap < 1 {
		gap = 1
	}
	return body + strings.Repeat("\n", gap) + bottom
}

func (a *App) renderFields(in intent.Inputs, width int) string {
	var rows []string
	for i, f := range intent.Fields {
		focused := i == a.state.focus && a.view == viewForm
		label := styleLabel.Render(f.Label())
		if focused {
			label = styleLabelFocused.Render(f.Label())
		}

		var field string
		switch f {
		case intent.FieldGoal:
			field = a.state.goal.View()
		case intent.FieldTone:
			field = a.state.tone.View()
		case intent.FieldConstraints:
			field = a.state.constraints.View()
		default:
			field = renderSelect(in.Get(f), focused)
		}
		rows = append(rows, label+"\n"+field)
	}

	return styleBox.Copy().
		Width(width).
		BorderForeground(colorPrimary).
		Render(strings.Join(rows, "\n"))
}

// renderSelect shows a cyclic select as "< value >".
func renderSelect(value string, focused bool) string {
	if focused {
		return styleSelected.Render(fmt.Sprintf("< %s >", value))
	}
	return styleText.Render(fmt.Sprintf("  %s  ", value))
}

func (a *App) renderFormStatus(st app.State) string {
	var left string
	switch {
	case a.state.notice != "":
		left = styleError.Render(a.state.notice)
	case a.state.providerError != nil:
		left = styleError.Render(truncate("Provider: "+a.state.providerError.Error(), a.width/2))
	case !a.state.providerReady:
		left = styleStatusBar.Render("Connecting to " + a.state.config.Provider + "...")
	default:
		left = styleSuccess.Render("* ") + styleStatusBar.Render(a.state.config.Provider+" / "+a.state.config.Model)
	}

	tokens := a.requestTokens(st.Inputs)
	right := styleStatusBar.Render(formatTokens(tokens, a.state.config.Model))

	help := styleStatusBar.Render("[ctrl+g] Generate  [ctrl+s] Save  [ctrl+y] Copy  [ctrl+l] Library  [ctrl+o] Settings  [f1] Help  [esc] Quit")

	status := lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status),
		lipgloss.PlaceHorizontal(a.width, lipgloss.Center, help),
	)
}

// requestTokens counts the tokens of the request the inputs would build.
// The count is cached until the inputs change.
func (a *App) requestTokens(in intent.Inputs) int {
	if a.state.tokensValid && a.state.tokensFor == in {
		return a.state.tokenCount
	}
	a.state.tokenCount = a.state.tokens.count(prompts.Build(in))
	a.state.tokensFor = in
	a.state.tokensValid = true
	return a.state.tokenCount
}
