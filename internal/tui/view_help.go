package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func helpLine(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("  %-16s %s", h.Key, h.Desc)
}

func (a *App) renderHelp() string {
	var b strings.Builder

	title := styleTitle.Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	form := []string{
		helpLine(keys.Tab),
		helpLine(keys.ShiftTab),
		"  left/right       change option",
		helpLine(keys.Generate),
		helpLine(keys.Save),
		helpLine(keys.Copy),
		helpLine(keys.PageUp),
		helpLine(keys.PageDown),
		helpLine(keys.Library),
		helpLine(keys.Settings),
	}
	lib := []string{
		helpLine(keys.Use),
		helpLine(keys.Edit),
		helpLine(keys.Delete),
		helpLine(keys.Import),
		helpLine(keys.Export),
	}
	general := []string{
		helpLine(keys.Help),
		"  esc              back / quit",
		helpLine(keys.Quit),
	}

	for _, sec := range []struct {
		name  string
		lines []string
	}{
		{"Prompt form", form},
		{"Library", lib},
		{"General", general},
	} {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(sec.name)))
		b.WriteString("\n")
		box := styleBox.Copy().
			Width(50).
			Render(strings.Join(sec.lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
