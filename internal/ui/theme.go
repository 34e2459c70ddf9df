package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the palette of the UI.
type Theme struct {
	Name string

	Text      string
	Muted     string
	Accent    string
	Success   string
	Warning   string
	Danger    string
	Selection string
	Border    string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Done      lipgloss.Style
	Warning   lipgloss.Style
	Selected  lipgloss.Style
	Banner    lipgloss.Style
	Panel     lipgloss.Style
	EditLabel lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		Done: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Strikethrough(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Selection)).
			Bold(true),
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Danger)).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		EditLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
	}
}

var themes = []Theme{
	{
		Name:      "Dracula",
		Text:      "#F8F8F2",
		Muted:     "#6272A4",
		Accent:    "#BD93F9",
		Success:   "#50FA7B",
		Warning:   "#F1FA8C",
		Danger:    "#FF5555",
		Selection: "#FF79C6",
		Border:    "#44475A",
	},
	{
		Name:      "Slate",
		Text:      "#E2E8F0",
		Muted:     "#64748B",
		Accent:    "#38BDF8",
		Success:   "#4ADE80",
		Warning:   "#FACC15",
		Danger:    "#EF4444",
		Selection: "#F472B6",
		Border:    "#334155",
	},
	{
		Name:      "Paper",
		Text:      "#1F2937",
		Muted:     "#9CA3AF",
		Accent:    "#2563EB",
		Success:   "#15803D",
		Warning:   "#B45309",
		Danger:    "#DC2626",
		Selection: "#7C3AED",
		Border:    "#D1D5DB",
	},
}

// GetTheme returns the theme called name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after name, wrapping around.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
