package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptmaster/internal/response"
)

func renderLoading(spin string) string {
	return lipgloss.NewStyle().
		Foreground(colorPrimary).
		Render(spin + " Crafting your prompt...")
}

func renderError(msg string, width int) string {
	return styleBox.Copy().
		Width(width).
		BorderForeground(colorError).
		Foreground(colorError).
		Render(msg)
}

// renderTierOne draws the Tier-1 prompt box. The title carries the save
// marker and, for a moment after copying, a "Copied" flag.
func renderTierOne(tierOne string, saved, copied bool, width int) string {
	marker := "[ctrl+s] Save"
	if saved {
		marker = styleSuccess.Render("Saved")
	}
	copyLabel := "[ctrl+y] Copy"
	if copied {
		copyLabel = styleSuccess.Render("Copied!")
	}

	title := styleTitle.Render("Tier-1 Prompt")
	head := lipgloss.JoinHorizontal(lipgloss.Top,
		title, "   ", styleStatusBar.Render(marker), "  ", styleStatusBar.Render(copyLabel))

	return styleBox.Copy().
		Width(width).
		BorderForeground(colorSecondary).
		Render(head + "\n\n" + styleText.Render(tierOne))
}

// renderScores formats the score line, "" when the response had none.
func renderScores(scores []response.Score) string {
	if len(scores) == 0 {
		return ""
	}
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = s.String()
	}
	return styleSubtitle.Render("Scores: " + strings.Join(parts, "  |  "))
}

// renderRemainder lays out everything around the Tier-1 prompt, one block
// per markdown section.
func renderRemainder(remainder string, width int) string {
	if strings.TrimSpace(remainder) == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	wrap := lipgloss.NewStyle().Width(width)

	sections := response.Sections(remainder)
	if len(sections) == 0 {
		return wrap.Render(remainder)
	}

	var blocks []string
	for _, s := range sections {
		var b strings.Builder
		if s.Title != "" {
			b.WriteString(styleTitle.Render(s.Title))
			b.WriteString("\n")
		}
		b.WriteString(wrap.Render(s.Body))
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
