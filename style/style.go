package style

import "github.com/charmbracelet/lipgloss"

// New returns an empty lipgloss.Style used as a foundation for visual composition.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a rendering function that applies the specified foreground color to a string.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a padded banner for view headings.
var Title = func(s string) string {
	return Colored("230", "62").Padding(0, 1).Render(s)
}

// ErrorTitle renders a banner using the error colors.
var ErrorTitle = func(s string) string {
	return Colored("230", ErrorColor).Padding(0, 1).Render(s)
}

// Box returns a rounded, padded border style tinted with c.
func Box(c lipgloss.Color) lipgloss.Style {
	return New().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 2)
}
