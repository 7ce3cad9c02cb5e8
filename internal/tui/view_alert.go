package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderAlert blocks the screen with a message until dismissed.
func (a *App) renderAlert() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render("Something went wrong")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	msg := a.state.alert
	if msg == "" {
		msg = "Unknown error"
	}
	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(msg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	if hints := alertHints(msg); len(hints) > 0 {
		hintBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			Render("Suggestions:\n" + strings.Join(hints, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hintBox))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[Enter/Esc] Dismiss")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// alertHints suggests a fix for the common failures.
func alertHints(msg string) []string {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "not an array"):
		return []string{"Choose a file written by Export (a JSON list of prompts)"}
	case strings.Contains(lower, "invalid prompt structure"):
		return []string{"Every entry needs id, inputs (with a goal) and output"}
	case strings.Contains(lower, "no such file"), strings.Contains(lower, "cannot find"):
		return []string{"Check the file path is correct", "Paths starting with ~/ are expanded"}
	case strings.Contains(lower, "permission denied"):
		return []string{"Check the file or directory is readable and writable"}
	case strings.Contains(lower, "config"):
		return []string{"Check ~/.config/promptmaster is writable"}
	default:
		return nil
	}
}
