package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/Mshel/typejumper/internal/game"
)

// gameKeyMap holds the in-game bindings. Every letter jumps, so the
// controls live on keys that can never label a tile.
type gameKeyMap struct {
	Jump        key.Binding
	Pause       key.Binding
	Leaderboard key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newGameKeyMap() gameKeyMap {
	letters := strings.Split(game.Alphabet+strings.ToLower(game.Alphabet), "")
	return gameKeyMap{
		Jump: key.NewBinding(
			key.WithKeys(letters...),
			key.WithHelp("a-z", "jump to tile"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		Leaderboard: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "leaderboard"),
			key.WithDisabled(),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k gameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Pause, k.Leaderboard, k.Help}
}

func (k gameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Pause},
		{k.Leaderboard, k.Help, k.Quit},
	}
}
