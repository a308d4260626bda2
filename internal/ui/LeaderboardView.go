package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Mshel/typejumper/internal/highscore"
)

const (
	leaderboardPageSize = 10
	loadTimeout         = 5 * time.Second
)

type leaderboardLoadedMsg struct {
	Page   int
	Scores []highscore.Score
	Total  int
	Err    error
}

// LeaderboardModel pages through recorded runs. Highlight marks the run
// that was just finished, if any.
type LeaderboardModel struct {
	store     highscore.Store
	styles    *Styles
	highlight string

	page    int
	scores  []highscore.Score
	total   int
	loading bool
	err     error

	width  int
	height int
}

func NewLeaderboardModel(store highscore.Store, styles *Styles, highlight string, w, h int) LeaderboardModel {
	return LeaderboardModel{
		store:     store,
		styles:    styles,
		highlight: highlight,
		loading:   store != nil,
		width:     w,
		height:    h,
	}
}

func (m LeaderboardModel) Init() tea.Cmd {
	return m.load(0)
}

func (m LeaderboardModel) load(page int) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		total, err := store.Count(ctx)
		if err != nil {
			return leaderboardLoadedMsg{Page: page, Err: err}
		}
		scores, err := store.Top(ctx, leaderboardPageSize, page*leaderboardPageSize)
		if err != nil {
			return leaderboardLoadedMsg{Page: page, Err: err}
		}
		return leaderboardLoadedMsg{Page: page, Scores: scores, Total: total}
	}
}

func (m LeaderboardModel) pageCount() int {
	return max(1, (m.total+leaderboardPageSize-1)/leaderboardPageSize)
}

func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case leaderboardLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			log.Error("Failed to load leaderboard", "page", msg.Page, "err", msg.Err)
			return m, nil
		}
		m.page = msg.Page
		m.scores = msg.Scores
		m.total = msg.Total

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			return m, func() tea.Msg { return BackToMenuMsg{} }
		case "q":
			return m, tea.Quit
		case "left", "h":
			if m.page > 0 && !m.loading {
				m.loading = true
				return m, m.load(m.page - 1)
			}
		case "right", "l":
			if m.page+1 < m.pageCount() && !m.loading {
				m.loading = true
				return m, m.load(m.page + 1)
			}
		}
	}
	return m, nil
}

func (m LeaderboardModel) View() string {
	title := m.styles.Title.Padding(1, 0).Render("HIGH SCORES")

	var body string
	switch {
	case m.store == nil:
		body = m.styles.Muted.Render("No score store configured.")
	case m.err != nil:
		body = m.styles.Danger.Render("Could not load scores.")
	case m.loading:
		body = m.styles.Muted.Render("Loading...")
	case len(m.scores) == 0:
		body = m.styles.Muted.Render("No runs recorded yet.")
	default:
		body = m.renderTable()
	}

	footer := m.styles.Muted.Margin(1, 0).Render(fmt.Sprintf(
		"page %d/%d  (left/right to page, enter/esc for menu)", m.page+1, m.pageCount()))

	content := lipgloss.JoinVertical(lipgloss.Center, title, body, footer)
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		m.styles.Frame.Render(content),
	)
}

func (m LeaderboardModel) renderTable() string {
	const (
		rankWidth  = 5
		nameWidth  = highscore.MaxNameLength + 2
		scoreWidth = 8
		dateWidth  = 12
	)

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.TableHeader.Width(rankWidth).Render("#"),
		m.styles.TableHeader.Width(nameWidth).Render("Player"),
		m.styles.TableHeader.Width(scoreWidth).Render("Score"),
		m.styles.TableHeader.Width(dateWidth).Render("Date"),
	))
	sb.WriteString("\n")

	for i, score := range m.scores {
		style := m.styles.TableRow
		if score.ID == m.highlight {
			style = m.styles.TableHighlight
		}
		rank := m.page*leaderboardPageSize + i + 1
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			style.Width(rankWidth).Render(strconv.Itoa(rank)),
			style.Width(nameWidth).Render(score.PlayerName),
			style.Width(scoreWidth).Render(strconv.Itoa(score.Points)),
			style.Width(dateWidth).Render(score.CreatedAt.Format("2006-01-02")),
		))
		sb.WriteString("\n")
	}
	return sb.String()
}
