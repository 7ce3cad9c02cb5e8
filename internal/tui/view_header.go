package tui

import "github.com/charmbracelet/lipgloss"

const logo = `
 ╔═╗┬─┐┌─┐┌┬┐┌─┐┌┬┐  ╔╦╗┌─┐┌─┐┌┬┐┌─┐┬─┐
 ╠═╝├┬┘│ ││││├─┘ │   ║║║├─┤└─┐ │ ├┤ ├┬┘
 ╩  ┴└─└─┘┴ ┴┴   ┴   ╩ ╩┴ ┴└─┘ ┴ └─┘┴└─
`

// renderHeader is the one-line title used above the working views.
func (a *App) renderHeader() string {
	title := styleLogo.Render("Prompt Master")
	subtitle := styleSubtitle.Render("  Tier-1 prompts, refined")
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title+subtitle)
}
