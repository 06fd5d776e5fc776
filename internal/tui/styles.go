package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by the terminal frontend.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Dim       lipgloss.Style
	Completed lipgloss.Style
	High      lipgloss.Style
	Medium    lipgloss.Style
	Low       lipgloss.Style
	Error     lipgloss.Style
	Notice    lipgloss.Style
	Help      lipgloss.Style
	FormBox   lipgloss.Style
	Label     lipgloss.Style
}

// NewStyles builds the default style set.
func NewStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c0caf5")),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("#33467c")).Foreground(lipgloss.Color("#c0caf5")),
		Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
		Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Strikethrough(true),
		High:      lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
		Medium:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")),
		Low:       lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3b4261")).
			Padding(1, 2),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")),
	}
}
