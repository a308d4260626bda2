package game

import (
	"errors"
	"fmt"
	"time"
)

const (
	// FrameRate is the tick rate the terminal frame driver aims for.
	FrameRate        = 30
	FrameInterval    = time.Second / FrameRate
	DefaultLevel     = 1
	DefaultViewportW = 540.0
	DefaultViewportH = 450.0
	keyHoldTime      = 250 * time.Millisecond
)

// Config carries the tuning constants of a single session.
// Sizes are pixels, speeds pixels per second.
type Config struct {
	ScrollSpeed       float64
	TileSize          float64
	TileSpacing       float64
	JumpDuration      time.Duration
	JumpHeight        float64
	SagAmount         float64
	SagDuration       time.Duration
	DisappearDuration time.Duration
	ScoreAward        int
	StartingLives     int

	// MaxFrameDelta bounds a single advance after a stalled frame.
	MaxFrameDelta     time.Duration
	RiderScale        float64
	NeighborTolerance float64
	KeyHoldTime       time.Duration
}

func DefaultConfig() Config {
	return Config{
		ScrollSpeed:       20,
		TileSize:          90,
		TileSpacing:       24,
		JumpDuration:      100 * time.Millisecond,
		JumpHeight:        60,
		SagAmount:         5,
		SagDuration:       150 * time.Millisecond,
		DisappearDuration: 300 * time.Millisecond,
		ScoreAward:        10,
		StartingLives:     5,
		MaxFrameDelta:     100 * time.Millisecond,
		RiderScale:        0.6,
		NeighborTolerance: 0.3,
		KeyHoldTime:       keyHoldTime,
	}
}

// Step is the distance between the origins of two adjacent grid cells.
func (c Config) Step() float64 {
	return c.TileSize + c.TileSpacing
}

// RiderSize is the edge length of the rider sprite.
func (c Config) RiderSize() float64 {
	return c.TileSize * c.RiderScale
}

var ErrInvalidConfig = errors.New("invalid game config")

// Validate reports the first setting that would make the field or an animation degenerate.
func (c Config) Validate() error {
	switch {
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %v", ErrInvalidConfig, c.TileSize)
	case c.TileSpacing < 0:
		return fmt.Errorf("%w: tile spacing %v", ErrInvalidConfig, c.TileSpacing)
	case c.ScrollSpeed < 0:
		return fmt.Errorf("%w: scroll speed %v", ErrInvalidConfig, c.ScrollSpeed)
	case c.JumpDuration <= 0, c.SagDuration <= 0, c.DisappearDuration <= 0:
		return fmt.Errorf("%w: animation durations must be positive", ErrInvalidConfig)
	case c.MaxFrameDelta <= 0:
		return fmt.Errorf("%w: max frame delta %v", ErrInvalidConfig, c.MaxFrameDelta)
	case c.StartingLives <= 0:
		return fmt.Errorf("%w: starting lives %d", ErrInvalidConfig, c.StartingLives)
	case c.ScoreAward < 0:
		return fmt.Errorf("%w: score award %d", ErrInvalidConfig, c.ScoreAward)
	case c.RiderScale <= 0 || c.RiderScale > 1:
		return fmt.Errorf("%w: rider scale %v", ErrInvalidConfig, c.RiderScale)
	case c.NeighborTolerance <= 0 || c.NeighborTolerance >= 0.5:
		return fmt.Errorf("%w: neighbor tolerance %v", ErrInvalidConfig, c.NeighborTolerance)
	}
	return nil
}

// Viewport is the visible playfield in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

func DefaultViewport() Viewport {
	return Viewport{Width: DefaultViewportW, Height: DefaultViewportH}
}
