package ui

import "github.com/charmbracelet/lipgloss"

const (
	voidColor   = lipgloss.Color("233")
	accentColor = lipgloss.Color("214")
	mutedColor  = lipgloss.Color("240")
	dangerColor = lipgloss.Color("9")
)

// Styles are bound to one renderer so that SSH sessions get the colour
// profile of the remote terminal rather than the server's.
type Styles struct {
	renderer *lipgloss.Renderer

	Title          lipgloss.Style
	Accent         lipgloss.Style
	Muted          lipgloss.Style
	Danger         lipgloss.Style
	Button         lipgloss.Style
	SelectedButton lipgloss.Style
	Board          lipgloss.Style
	Panel          lipgloss.Style
	PanelHeading   lipgloss.Style
	Frame          lipgloss.Style
	TableHeader    lipgloss.Style
	TableRow       lipgloss.Style
	TableHighlight lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer) *Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	button := r.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 3).
		Margin(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedColor)

	return &Styles{
		renderer: r,

		Title:  r.NewStyle().Foreground(accentColor).Bold(true),
		Accent: r.NewStyle().Foreground(accentColor),
		Muted:  r.NewStyle().Foreground(mutedColor),
		Danger: r.NewStyle().Foreground(dangerColor).Bold(true),

		Button: button,
		SelectedButton: button.
			Background(accentColor).
			Foreground(lipgloss.Color("0")).
			BorderForeground(accentColor),

		Board: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(mutedColor),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(1, 2),
		PanelHeading: r.NewStyle().Bold(true),
		Frame:        r.NewStyle().Border(lipgloss.ThickBorder()).Padding(1, 2),

		TableHeader: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		TableRow:       r.NewStyle().Padding(0, 1),
		TableHighlight: r.NewStyle().Padding(0, 1).Foreground(accentColor).Bold(true),
	}
}

func (s *Styles) NewStyle() lipgloss.Style {
	return s.renderer.NewStyle()
}
