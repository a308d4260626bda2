package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Mshel/typejumper/internal/game"
	"github.com/charmbracelet/log"
)

// Config is everything the binaries read from the environment.
type Config struct {
	Host           string
	Port           int
	PrivateKeyPath string
	MaxConnPerIP   int
	LogLevel       log.Level
	LogFile        string
	DatabaseURL    string
	SpectateAddr   string
	Seed           int64
	Game           game.Config
}

// Load reads the environment, falling back to defaults for anything unset
// or malformed.
func Load() *Config {
	g := game.DefaultConfig()
	g.ScrollSpeed = getEnvFloat("TYPEJUMPER_SCROLL_SPEED", g.ScrollSpeed)
	g.StartingLives = getEnvInt("TYPEJUMPER_STARTING_LIVES", g.StartingLives)
	g.ScoreAward = getEnvInt("TYPEJUMPER_SCORE_AWARD", g.ScoreAward)
	g.JumpDuration = getEnvDuration("TYPEJUMPER_JUMP_DURATION", g.JumpDuration)
	g.DisappearDuration = getEnvDuration("TYPEJUMPER_DISAPPEAR_DURATION", g.DisappearDuration)

	return &Config{
		Host:           getEnv("TYPEJUMPER_HOST", "0.0.0.0"),
		Port:           getEnvInt("TYPEJUMPER_PORT", 6996),
		PrivateKeyPath: getEnv("TYPEJUMPER_PRIVATE_KEY_PATH", ".ssh/id_ed25519"),
		MaxConnPerIP:   getEnvInt("TYPEJUMPER_MAX_CONN_PER_IP", 2),
		LogLevel:       getEnvLevel("TYPEJUMPER_LOG_LEVEL", log.InfoLevel),
		LogFile:        getEnv("TYPEJUMPER_LOG_FILE", "typejumper.log"),
		DatabaseURL:    getEnv("DATABASE_URL", "highscores.db"),
		SpectateAddr:   getEnv("TYPEJUMPER_SPECTATE_ADDR", ""),
		Seed:           int64(getEnvInt("TYPEJUMPER_SEED", 0)),
		Game:           g,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Warn("Ignoring malformed integer setting", "key", key, "value", v)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn("Ignoring malformed number setting", "key", key, "value", v)
	}
	return fallback
}

// getEnvDuration accepts Go durations ("150ms") or bare milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Warn("Ignoring malformed duration setting", "key", key, "value", v)
	return fallback
}

func getEnvLevel(key string, fallback log.Level) log.Level {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	level, err := log.ParseLevel(v)
	if err != nil {
		log.Warn("Ignoring unknown log level", "key", key, "value", v)
		return fallback
	}
	return level
}
