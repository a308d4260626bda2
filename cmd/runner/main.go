package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Mshel/typejumper/internal/config"
	"github.com/Mshel/typejumper/internal/game"
	"github.com/Mshel/typejumper/internal/highscore"
	"github.com/Mshel/typejumper/internal/ui"
)

func main() {
	cfg := config.Load()

	// the TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetLevel(cfg.LogLevel)

	if err := cfg.Game.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}

	store, err := highscore.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		// playing without a leaderboard beats not playing
		log.Error("High scores disabled", "err", err)
	} else {
		defer store.Close()
	}

	opts := ui.Options{
		GameConfig: cfg.Game,
		Viewport:   game.DefaultViewport(),
		Seed:       cfg.Seed,
		Store:      store,
	}

	p := tea.NewProgram(ui.NewControllerModel(opts, 0, 0), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
