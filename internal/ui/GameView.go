package ui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Mshel/typejumper/internal/game"
	"github.com/Mshel/typejumper/internal/highscore"
)

const (
	statusPanelWidth = 24
	maxFeedEntries   = 5
	saveTimeout      = 5 * time.Second
	demoPlayerName   = "autopilot"
)

// frameTickMsg drives one game frame.
type frameTickMsg time.Time

type scoreSavedMsg struct {
	ID  string
	Err error
}

// statusFeed is the session's UI sink. It turns stat changes into short
// lines for the status panel.
type statusFeed struct {
	last    game.Stats
	entries []string
}

func (f *statusFeed) record(stats game.Stats) {
	switch {
	case stats.State != f.last.State:
		switch stats.State {
		case game.StatePaused:
			f.push("paused")
		case game.StateRunning:
			f.push("resumed")
		case game.StateGameOver:
			f.push("game over")
		}
	case stats.Lives < f.last.Lives:
		f.push(fmt.Sprintf("fell! %d left", stats.Lives))
	case stats.Score > f.last.Score:
		f.push(fmt.Sprintf("+%d", stats.Score-f.last.Score))
	}
	f.last = stats
}

func (f *statusFeed) push(entry string) {
	f.entries = append(f.entries, entry)
	if len(f.entries) > maxFeedEntries {
		f.entries = f.entries[len(f.entries)-maxFeedEntries:]
	}
}

type GameViewModel struct {
	session    *game.Session
	keys       *game.KeyBuffer
	bot        *game.Bot
	feed       *statusFeed
	playerName string
	opts       Options
	styles     *Styles

	keyMap gameKeyMap
	help   help.Model

	lastTick time.Time
	saved    bool
	savedID  string
	saveErr  error

	ScreenWidth  int
	ScreenHeight int
}

func NewGameModel(playerName string, opts Options, styles *Styles, screenWidth, screenHeight int) GameViewModel {
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	keys := game.NewKeyBuffer(opts.GameConfig.KeyHoldTime)
	session := game.NewSession(opts.GameConfig, opts.Viewport, rng, keys)

	feed := &statusFeed{last: session.Stats()}
	session.OnStats = feed.record

	h := help.New()
	h.Styles.ShortKey = styles.Accent
	h.Styles.FullKey = styles.Accent

	log.Info("Session started", "session", session.ID, "player", playerName)
	return GameViewModel{
		session:      session,
		keys:         keys,
		feed:         feed,
		playerName:   playerName,
		opts:         opts,
		styles:       styles,
		keyMap:       newGameKeyMap(),
		help:         h,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// NewDemoModel is a game played by the autopilot. Demo runs are not saved.
func NewDemoModel(opts Options, styles *Styles, screenWidth, screenHeight int) GameViewModel {
	opts.Store = nil
	m := NewGameModel(demoPlayerName, opts, styles, screenWidth, screenHeight)
	m.bot = game.NewBot(game.ClimbStrategy{})
	m.keyMap.Jump.SetEnabled(false)
	return m
}

func (m GameViewModel) Session() *game.Session { return m.session }

func (m GameViewModel) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(game.FrameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameTickMsg:
		return m.advance(time.Time(msg))

	case scoreSavedMsg:
		m.savedID = msg.ID
		m.saveErr = msg.Err
		m.keyMap.Leaderboard.SetEnabled(true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keyMap.Leaderboard):
			highlight := m.savedID
			return m, func() tea.Msg { return ShowLeaderboardMsg{Highlight: highlight} }
		case key.Matches(msg, m.keyMap.Pause):
			m.session.TogglePause()
			m.publish()
		case key.Matches(msg, m.keyMap.Jump):
			for _, r := range msg.Runes {
				m.keys.Press(r)
			}
		}
		return m, nil
	}
	return m, nil
}

// advance runs one frame with the wall-clock time since the previous tick.
// Ticking stops once the session is over.
func (m GameViewModel) advance(now time.Time) (tea.Model, tea.Cmd) {
	dt := game.FrameInterval
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.session.Advance(dt)
	m.keys.Age(dt)
	if m.bot != nil {
		m.bot.Step(m.session, dt)
	}
	m.publish()

	if !m.session.IsGameOver() {
		return m, frameTick()
	}
	m.keyMap.Pause.SetEnabled(false)
	m.keyMap.Jump.SetEnabled(false)
	// with a store, the leaderboard waits for the save so the new run shows up
	if m.opts.Store == nil {
		m.keyMap.Leaderboard.SetEnabled(true)
	}
	if m.saved {
		return m, nil
	}
	m.saved = true
	return m, m.saveScore()
}

func (m GameViewModel) publish() {
	if m.opts.Spectators != nil {
		m.opts.Spectators.Publish(m.session.Frame())
	}
}

func (m GameViewModel) saveScore() tea.Cmd {
	store := m.opts.Store
	if store == nil {
		return nil
	}
	score := highscore.Score{
		ID:         m.session.ID,
		PlayerName: m.playerName,
		Points:     m.session.Score,
		CreatedAt:  time.Now(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := store.Save(ctx, score); err != nil {
			log.Error("Failed to save score", "session", score.ID, "err", err)
			return scoreSavedMsg{Err: err}
		}
		log.Info("Score saved", "session", score.ID, "player", score.PlayerName, "points", score.Points)
		return scoreSavedMsg{ID: score.ID}
	}
}

func (m GameViewModel) View() string {
	frame := m.session.Frame()

	var banner []string
	switch frame.Stats.State {
	case game.StatePaused:
		banner = []string{"PAUSED", "", "space to resume"}
	case game.StateGameOver:
		banner = []string{"Game Over!", "", fmt.Sprintf("score %d", frame.Stats.Score), "", "enter: leaderboard", "esc: quit"}
	}

	boardView := m.styles.Board.Render(renderFrame(frame, m.styles, banner))
	panel := m.styles.Panel.Width(statusPanelWidth).Render(m.renderStatusPanel(frame.Stats))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, boardView, panel),
		m.help.View(m.keyMap),
	)
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m GameViewModel) renderStatusPanel(stats game.Stats) string {
	var sb strings.Builder

	sb.WriteString(m.styles.PanelHeading.Render("TYPEJUMPER") + "\n\n")
	sb.WriteString(m.styles.Accent.Render(m.playerName) + "\n\n")
	sb.WriteString(fmt.Sprintf("Score: %d\n", stats.Score))
	sb.WriteString(fmt.Sprintf("Lives: %s\n", m.styles.Danger.Render(strings.Repeat("♥", stats.Lives))))
	sb.WriteString(fmt.Sprintf("Level: %d\n", stats.Level))
	sb.WriteString(fmt.Sprintf("State: %s\n", stats.State))

	if held := m.keys.PressedKeys(); len(held) > 0 {
		sb.WriteString(fmt.Sprintf("Keys:  %s\n", string(held)))
	}

	sb.WriteString("\n" + m.styles.PanelHeading.Render("Log") + "\n")
	for i := len(m.feed.entries) - 1; i >= 0; i-- {
		sb.WriteString(m.styles.Muted.Render(m.feed.entries[i]) + "\n")
	}

	if m.saveErr != nil {
		sb.WriteString("\n" + m.styles.Danger.Render("score not saved") + "\n")
	}
	return sb.String()
}
