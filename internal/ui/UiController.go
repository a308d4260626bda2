package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mshel/typejumper/internal/game"
	"github.com/Mshel/typejumper/internal/highscore"
	"github.com/Mshel/typejumper/internal/spectate"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	LeaderboardScreen
)

// Options carry what every screen of one terminal session shares.
// Store and Spectators are optional.
type Options struct {
	GameConfig game.Config
	Viewport   game.Viewport
	Seed       int64
	Store      highscore.Store
	Spectators *spectate.Hub
	Renderer   *lipgloss.Renderer
}

// Messages for screen transitions
type IntroSubmitMsg int

const (
	IntroPlay IntroSubmitMsg = iota
	IntroDemo
	IntroLeaderboard
	introOptionCount
)

type SetupSubmitMsg struct {
	Name string
}

type ShowLeaderboardMsg struct {
	Highlight string
}

type BackToMenuMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	Options       Options

	IntroModel       tea.Model
	SetupModel       tea.Model
	GameModel        tea.Model
	LeaderboardModel tea.Model

	styles       *Styles
	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(opts Options, screenWidth, screenHeight int) ControllerModel {
	styles := NewStyles(opts.Renderer)
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Options:       opts,

		IntroModel: NewIntroModel(styles, screenWidth, screenHeight),
		SetupModel: NewSetupModel(styles, screenWidth, screenHeight),

		styles:       styles,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case LeaderboardScreen:
		if m.LeaderboardModel != nil {
			return m.LeaderboardModel.View()
		}
		return "Loading leaderboard..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		// every screen keeps its own size, so forward to all of them
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		if m.LeaderboardModel != nil {
			m.LeaderboardModel, _ = m.LeaderboardModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		switch msg {
		case IntroPlay:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case IntroDemo:
			m.CurrentScreen = GameScreen
			m.GameModel = NewDemoModel(m.Options, m.styles, m.ScreenWidth, m.ScreenHeight)
			return m, m.GameModel.Init()
		case IntroLeaderboard:
			return m.showLeaderboard("")
		}

	case SetupSubmitMsg:
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(msg.Name, m.Options, m.styles, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case ShowLeaderboardMsg:
		return m.showLeaderboard(msg.Highlight)

	case BackToMenuMsg:
		m.CurrentScreen = IntroScreen
		m.GameModel = nil
		return m, m.IntroModel.Init()
	}

	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel, cmd = m.IntroModel.Update(msg)
	case SetupScreen:
		m.SetupModel, cmd = m.SetupModel.Update(msg)
	case GameScreen:
		if m.GameModel != nil {
			m.GameModel, cmd = m.GameModel.Update(msg)
		}
	case LeaderboardScreen:
		if m.LeaderboardModel != nil {
			m.LeaderboardModel, cmd = m.LeaderboardModel.Update(msg)
		}
	}
	return m, cmd
}

func (m ControllerModel) showLeaderboard(highlight string) (tea.Model, tea.Cmd) {
	m.CurrentScreen = LeaderboardScreen
	m.GameModel = nil
	m.LeaderboardModel = NewLeaderboardModel(m.Options.Store, m.styles, highlight, m.ScreenWidth, m.ScreenHeight)
	return m, m.LeaderboardModel.Init()
}
