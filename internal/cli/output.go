package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/sant0-9/promptmaster/internal/response"
)

var (
	styleHeading = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	styleBox     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#06B6D4")).
			Padding(0, 1)
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

// printResponse writes a generated response. Terminals get the Tier-1
// prompt boxed and the sections titled; pipes get the raw text.
func printResponse(w io.Writer, raw string, tierOneOnly bool) {
	seg := response.Segment(raw)

	if tierOneOnly {
		text := seg.TierOne
		if text == "" {
			text = raw
		}
		fmt.Fprintln(w, text)
		return
	}

	if !isTerminal(w) {
		fmt.Fprintln(w, raw)
		return
	}

	width := min(100, terminalWidth(w)-2)
	if seg.HasTierOne() {
		fmt.Fprintln(w, styleHeading.Render("Tier-1 Prompt"))
		fmt.Fprintln(w, styleBox.Width(width).Render(seg.TierOne))
		fmt.Fprintln(w)
	}
	for _, s := range response.Sections(seg.Remainder) {
		if s.Title != "" {
			fmt.Fprintln(w, styleHeading.Render(s.Title))
		}
		fmt.Fprintln(w, lipgloss.NewStyle().Width(width).Render(s.Body))
		fmt.Fprintln(w)
	}
	if scores := response.Scores(seg.Remainder); len(scores) > 0 {
		parts := make([]string, len(scores))
		for i, s := range scores {
			parts[i] = s.String()
		}
		fmt.Fprintln(w, styleMuted.Render("Scores: "+strings.Join(parts, "  |  ")))
	}
}
