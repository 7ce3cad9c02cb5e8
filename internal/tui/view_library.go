package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptmaster/internal/library"
)

func (a *App) handleLibraryKey(msg tea.KeyMsg) tea.Cmd {
	st := a.store.Snapshot()

	if a.state.importing {
		switch {
		case key.Matches(msg, keys.Enter):
			a.state.importing = false
			a.state.importInput.Blur()
			a.importFile(strings.TrimSpace(a.state.importInput.Value()))
			return nil
		case key.Matches(msg, keys.Back):
			a.state.importing = false
			a.state.importInput.Blur()
			return nil
		}
		var cmd tea.Cmd
		a.state.importInput, cmd = a.state.importInput.Update(msg)
		return cmd
	}

	if st.EditingPromptID != library.NoID {
		switch {
		case key.Matches(msg, keys.Enter):
			a.store.CommitEdit(st.EditingPromptID, a.state.editInput.Value())
			a.state.editInput.Blur()
			return nil
		case key.Matches(msg, keys.Back):
			a.store.CancelEdit()
			a.state.editInput.Blur()
			return nil
		}
		var cmd tea.Cmd
		a.state.editInput, cmd = a.state.editInput.Update(msg)
		return cmd
	}

	saved := st.SavedPrompts
	var selected library.SavedPrompt
	if len(saved) > 0 {
		a.state.clampCursor(saved)
		selected = saved[a.state.cursor]
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.view = viewForm
		return a.focusField(a.state.focus)

	case key.Matches(msg, keys.Help), msg.String() == "?":
		a.view = viewHelp

	case key.Matches(msg, keys.Up):
		if a.state.cursor > 0 {
			a.state.cursor--
		}

	case key.Matches(msg, keys.Down):
		if a.state.cursor < len(saved)-1 {
			a.state.cursor++
		}

	case key.Matches(msg, keys.Use):
		if len(saved) == 0 {
			return nil
		}
		if a.store.Use(selected.ID) {
			a.state.loadInputs(a.store.Snapshot().Inputs)
			a.syncResults()
			a.state.results.GotoTop()
			a.state.copied = false
			a.view = viewForm
			return a.focusField(0)
		}

	case key.Matches(msg, keys.Edit):
		if len(saved) == 0 {
			return nil
		}
		if a.store.StartEdit(selected.ID) {
			a.state.editInput.SetValue(selected.Inputs.Goal)
			a.state.editInput.CursorEnd()
			return a.state.editInput.Focus()
		}

	case key.Matches(msg, keys.Delete):
		if len(saved) == 0 {
			return nil
		}
		a.store.Delete(selected.ID)
		a.state.clampCursor(a.store.Snapshot().SavedPrompts)

	case key.Matches(msg, keys.Import):
		a.state.notice = ""
		a.state.importing = true
		a.state.importInput.Reset()
		return tea.Batch(a.state.importInput.Focus(), textinput.Blink)

	case key.Matches(msg, keys.Export):
		a.exportLibrary()
	}

	return nil
}

// importFile reads an export and merges it. Any failure blocks with an
// alert and leaves the library untouched.
func (a *App) importFile(path string) {
	if path == "" {
		return
	}
	path, err := expandPath(path)
	if err != nil {
		a.showAlert(fmt.Sprintf("Failed to import prompts: %v", err))
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		a.showAlert(fmt.Sprintf("Failed to import prompts: %v", err))
		return
	}
	n, err := a.store.Import(data)
	if err != nil {
		a.showAlert(err.Error())
		return
	}
	a.state.cursor = 0
	a.state.notice = fmt.Sprintf("Imported %d prompt(s)", n)
}

func (a *App) exportLibrary() {
	dir, err := a.state.config.ExportPath()
	if err != nil {
		a.showAlert(fmt.Sprintf("Failed to export prompts: %v", err))
		return
	}
	path, err := a.store.ExportTo(dir)
	switch {
	case err != nil:
		a.showAlert(err.Error())
	case path == "":
		a.state.notice = "Nothing to export"
	default:
		a.state.notice = "Exported to " + path
	}
}

func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return home + p[1:], nil
	}
	return p, nil
}

func (a *App) renderLibrary() string {
	st := a.store.Snapshot()
	w := a.contentWidth()

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	title := styleTitle.Render(fmt.Sprintf("Saved Prompts (%d)", len(st.SavedPrompts)))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var rows []string
	if len(st.SavedPrompts) == 0 {
		rows = append(rows, styleSubtitle.Render("No saved prompts yet. Generate one and press ctrl+s to save it."))
	}

	// Keep the cursor row visible
	maxRows := max(3, a.height-12)
	first := 0
	if a.state.cursor >= maxRows {
		first = a.state.cursor - maxRows + 1
	}
	for i, p := range st.SavedPrompts {
		if i < first || i >= first+maxRows {
			continue
		}
		editing := st.Editing(p.ID)
		editView := ""
		if editing {
			editView = a.state.editInput.View()
		}
		rows = append(rows, renderSavedPrompt(p, i == a.state.cursor, editing, editView, w-4))
	}

	list := styleBox.Copy().
		Width(w).
		BorderForeground(colorPrimary).
		Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, list))
	b.WriteString("\n\n")

	if a.state.importing {
		prompt := styleBox.Copy().
			Width(w).
			BorderForeground(colorSecondary).
			Render("Import file:\n" + a.state.importInput.View())
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, prompt))
		b.WriteString("\n\n")
	}

	if a.state.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSuccess.Render(a.state.notice)))
		b.WriteString("\n\n")
	}

	var help string
	switch {
	case a.state.importing:
		help = "[Enter] Import  [Esc] Cancel"
	case st.EditingPromptID != library.NoID:
		help = "[Enter] Save goal  [Esc] Cancel"
	default:
		help = "[j/k] Navigate  [Enter/u] Use  [e] Edit  [d] Delete  [i] Import  [x] Export  [Esc] Back"
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(help)))

	return b.String()
}

// renderSavedPrompt draws one library row. An entry in edit mode shows the
// goal input in place of its title.
func renderSavedPrompt(p library.SavedPrompt, selected, editing bool, editView string, width int) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	if editing {
		return styleSelected.Render(cursor+"Editing: ") + editView
	}

	meta := fmt.Sprintf("  %s · %s · %s", p.Inputs.Category, p.Inputs.OutputFormat, p.Inputs.RefinementDepth)
	title := truncate(p.Title(), max(10, width-len(cursor)-lipgloss.Width(meta)))

	if selected {
		return styleSelected.Render(cursor+title) + styleSubtitle.Render(meta)
	}
	return styleText.Render(cursor+title) + styleSubtitle.Render(meta)
}
