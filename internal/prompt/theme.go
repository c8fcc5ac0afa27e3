package prompt

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used to render prompts. Colors are ANSI codes so
// they follow the terminal palette.
type Theme struct {
	Question lipgloss.Style
	Answer   lipgloss.Style
	Error    lipgloss.Style
	Faint    lipgloss.Style
	Selected lipgloss.Style
	Bold     lipgloss.Style
}

// NewTheme builds the default theme for w. Color support is detected on w,
// so redirected output stays plain.
func NewTheme(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		Question: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Answer:   r.NewStyle().Foreground(lipgloss.Color("6")),
		Error:    r.NewStyle().Foreground(lipgloss.Color("1")),
		Faint:    r.NewStyle().Foreground(lipgloss.Color("8")),
		Selected: r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Bold:     r.NewStyle().Bold(true),
	}
}
