package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel is the main menu.
type IntroModel struct {
	selected IntroSubmitMsg
	styles   *Styles
	width    int
	height   int
}

func NewIntroModel(styles *Styles, w, h int) IntroModel {
	return IntroModel{selected: IntroPlay, styles: styles, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "l", "tab":
			m.selected = (m.selected + 1) % introOptionCount
		case "left", "h", "shift+tab":
			m.selected = (m.selected + introOptionCount - 1) % introOptionCount
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return selected }
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

var typejumperAscii = `
 _____                   _
|_   _|   _ _ __   ___  | |_   _ _ __ ___  _ __   ___ _ __
  | || | | | '_ \ / _ \ | | | | | '_ ' _ \| '_ \ / _ \ '__|
  | || |_| | |_) |  __/ | | |_| | | | | | | |_) |  __/ |
  |_| \__, | .__/ \___|_/ |\__,_|_| |_| |_| .__/ \___|_|
      |___/|_|       |__/                 |_|
`

var introLabels = [introOptionCount]string{
	IntroPlay:        "Play",
	IntroDemo:        "Watch Demo",
	IntroLeaderboard: "Leaderboard",
}

func (m IntroModel) View() string {
	buttons := make([]string, 0, introOptionCount)
	for option, label := range introLabels {
		if IntroSubmitMsg(option) == m.selected {
			buttons = append(buttons, m.styles.SelectedButton.Render(label))
			continue
		}
		buttons = append(buttons, m.styles.Button.Render(label))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render(typejumperAscii),
		m.styles.Muted.Render("type the letter on a neighbouring tile to jump onto it"),
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
		m.styles.Muted.Render("(arrows/tab to choose, enter to confirm, q to quit)"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
