package report

import "github.com/charmbracelet/lipgloss"

// Colors used in console output.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Styles - стили отчёта и участков разницы.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Score   lipgloss.Style
	Dim     lipgloss.Style
	Error   lipgloss.Style
	Equal   lipgloss.Style
	Replace lipgloss.Style
	Delete  lipgloss.Style
	Insert  lipgloss.Style
}

// DefaultStyles стили консоли по умолчанию.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen),
		Header: lipgloss.NewStyle().
			Foreground(ColorMagenta),
		Label: lipgloss.NewStyle().
			Foreground(ColorCyan),
		Score: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow),
		Dim: lipgloss.NewStyle().
			Foreground(ColorGray),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed),
		Equal: lipgloss.NewStyle(),
		Replace: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed),
		Delete: lipgloss.NewStyle().
			Foreground(ColorRed),
		Insert: lipgloss.NewStyle().
			Foreground(ColorGreen),
	}
}
