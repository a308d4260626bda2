package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/Mshel/typejumper/internal/game"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 6996, cfg.Port)
	assert.Equal(t, 2, cfg.MaxConnPerIP)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "highscores.db", cfg.DatabaseURL)
	assert.Empty(t, cfg.SpectateAddr)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, game.DefaultConfig(), cfg.Game)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TYPEJUMPER_PORT", "2222")
	t.Setenv("TYPEJUMPER_LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/typejumper")
	t.Setenv("TYPEJUMPER_SPECTATE_ADDR", ":8080")
	t.Setenv("TYPEJUMPER_SEED", "77")
	t.Setenv("TYPEJUMPER_SCROLL_SPEED", "35.5")
	t.Setenv("TYPEJUMPER_STARTING_LIVES", "3")
	t.Setenv("TYPEJUMPER_JUMP_DURATION", "250ms")
	t.Setenv("TYPEJUMPER_DISAPPEAR_DURATION", "400")

	cfg := Load()

	assert.Equal(t, 2222, cfg.Port)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/typejumper", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.SpectateAddr)
	assert.Equal(t, int64(77), cfg.Seed)
	assert.Equal(t, 35.5, cfg.Game.ScrollSpeed)
	assert.Equal(t, 3, cfg.Game.StartingLives)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.JumpDuration)
	assert.Equal(t, 400*time.Millisecond, cfg.Game.DisappearDuration)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("TYPEJUMPER_PORT", "not-a-port")
	t.Setenv("TYPEJUMPER_LOG_LEVEL", "chatty")
	t.Setenv("TYPEJUMPER_SCROLL_SPEED", "fast")
	t.Setenv("TYPEJUMPER_JUMP_DURATION", "soon")

	cfg := Load()

	assert.Equal(t, 6996, cfg.Port)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, game.DefaultConfig().ScrollSpeed, cfg.Game.ScrollSpeed)
	assert.Equal(t, game.DefaultConfig().JumpDuration, cfg.Game.JumpDuration)
}
