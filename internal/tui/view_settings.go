package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/promptmaster/internal/config"
)

func (a *App) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	cfg := a.state.config

	switch a.state.settingsMode {
	case "provider":
		switch {
		case key.Matches(msg, keys.Back):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if a.state.settingsSelected > 0 {
				a.state.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if a.state.settingsSelected < len(config.Providers)-1 {
				a.state.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			p := config.Providers[a.state.settingsSelected]
			if p.ID != cfg.Provider {
				cfg.Provider = p.ID
				cfg.Model = p.DefaultModel
				cfg.BaseURL = ""
				cfg.APIKey = ""
			}
			if p.NeedsAPIKey && cfg.ResolveAPIKey() == "" {
				return a.enterAPIKeyMode()
			}
			return a.saveSettings()
		}

	case "model":
		provider := config.GetProvider(cfg.Provider)
		if provider == nil {
			a.state.settingsMode = ""
			return nil
		}
		switch {
		case key.Matches(msg, keys.Back):
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if a.state.settingsSelected > 0 {
				a.state.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if a.state.settingsSelected < len(provider.Models)-1 {
				a.state.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			cfg.Model = provider.Models[a.state.settingsSelected]
			return a.saveSettings()
		}

	case "apikey":
		switch {
		case key.Matches(msg, keys.Back):
			a.state.apiKeyInput.Blur()
			a.state.settingsMode = ""
		case key.Matches(msg, keys.Enter):
			apiKey := strings.TrimSpace(a.state.apiKeyInput.Value())
			if apiKey == "" {
				return nil
			}
			cfg.APIKey = apiKey
			a.state.apiKeyInput.Blur()
			return a.saveSettings()
		default:
			var cmd tea.Cmd
			a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
			return cmd
		}

	default:
		switch {
		case key.Matches(msg, keys.Back):
			a.view = viewForm
			return a.focusField(a.state.focus)
		case msg.String() == "p":
			a.state.settingsMode = "provider"
			a.state.settingsSelected = providerIndex(cfg.Provider)
		case msg.String() == "m":
			a.state.settingsMode = "model"
			a.state.settingsSelected = 0
			if p := config.GetProvider(cfg.Provider); p != nil {
				for i, m := range p.Models {
					if m == cfg.Model {
						a.state.settingsSelected = i
					}
				}
			}
		case msg.String() == "k":
			return a.enterAPIKeyMode()
		case msg.String() == "r":
			a.state.setupStep = 0
			a.state.selectedProvider = providerIndex(cfg.Provider)
			a.view = viewSetup
		}
	}

	return nil
}

func (a *App) enterAPIKeyMode() tea.Cmd {
	a.state.settingsMode = "apikey"
	a.state.apiKeyInput.Reset()
	return tea.Batch(a.state.apiKeyInput.Focus(), textinput.Blink)
}

func (a *App) saveSettings() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return settingsSavedMsg{}
	}
}

func providerIndex(id string) int {
	for i, p := range config.Providers {
		if p.ID == id {
			return i
		}
	}
	return 0
}

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderSettingsProvider()
	case "model":
		return a.renderSettingsModel()
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder
	cfg := a.state.config

	title := styleTitle.Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	if provider := config.GetProvider(cfg.Provider); provider != nil {
		providerName = provider.Name
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", cfg.Model),
		fmt.Sprintf("  API Key:  %s", cfg.MaskedAPIKey()),
	}
	if base := cfg.ResolveBaseURL(); base != "" {
		configLines = append(configLines, fmt.Sprintf("  Base URL: %s", base))
	}

	configLines = append(configLines, "", "  Storage:")
	configLines = append(configLines, fmt.Sprintf("    Backend: %s", cfg.Storage.Backend))
	if p, err := cfg.StoragePath(); err == nil {
		configLines = append(configLines, fmt.Sprintf("    Path:    %s", truncate(p, 36)))
	}
	if p, err := cfg.ExportPath(); err == nil {
		configLines = append(configLines, fmt.Sprintf("  Exports:  %s", truncate(p, 36)))
	}
	if p, err := cfg.Path(); err == nil {
		configLines = append(configLines, fmt.Sprintf("  Config:   %s", truncate(p, 36)))
	}

	configBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [r] Reset setup",
	}
	actionsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

// renderPicker draws a titled list with the selected row highlighted.
func (a *App) renderPicker(heading, subheading string, items []string) string {
	var b strings.Builder

	title := styleTitle.Render(heading)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if subheading != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(subheading)))
		b.WriteString("\n\n")
	}

	var lines []string
	for i, item := range items {
		if i == a.state.settingsSelected {
			lines = append(lines, styleTitle.Render("> "+item))
		} else {
			lines = append(lines, "  "+item)
		}
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	items := make([]string, len(config.Providers))
	for i, p := range config.Providers {
		items[i] = p.Name
	}
	return a.renderPicker("Select Provider", "", items)
}

func (a *App) renderSettingsModel() string {
	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		return a.centerVertically(lipgloss.PlaceHorizontal(a.width, lipgloss.Center,
			styleSubtitle.Render("No provider selected")))
	}

	items := make([]string, len(provider.Models))
	for i, m := range provider.Models {
		items[i] = m
		if m == a.state.config.Model {
			items[i] += " (current)"
		}
	}
	return a.renderPicker("Select Model", fmt.Sprintf("Provider: %s", provider.Name), items)
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := styleTitle.Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render("Enter your new API key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
