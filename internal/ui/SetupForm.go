package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mshel/typejumper/internal/highscore"
)

const defaultPlayerName = "anonymous"

// SetupModel asks for the name the run is recorded under.
type SetupModel struct {
	nameInput textinput.Model
	styles    *Styles
	width     int
	height    int
}

func NewSetupModel(styles *Styles, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.Focus()
	ti.CharLimit = highscore.MaxNameLength
	ti.PromptStyle = styles.Accent
	ti.TextStyle = styles.Accent

	return SetupModel{
		nameInput: ti,
		styles:    styles,
		width:     w,
		height:    h,
	}
}

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				name = defaultPlayerName
			}
			return m, func() tea.Msg { return SetupSubmitMsg{Name: name} }
		case "esc":
			return m, func() tea.Msg { return BackToMenuMsg{} }
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m SetupModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render("Who is jumping?"),
		"",
		m.nameInput.View(),
		"",
		m.styles.SelectedButton.Render("Start"),
		m.styles.Muted.Render("(enter to start, esc to go back)"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
