package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClimbStrategy_PicksHighestNeighbour(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, DefaultViewport(), rand.New(rand.NewSource(3)), nil)

	origin := s.Field.Occupied()
	require.NotNil(t, origin)

	letter, ok := ClimbStrategy{}.NextLetter(s)
	require.True(t, ok)

	var target *Tile
	for _, tile := range s.JumpableNeighbors() {
		if tile.Letter == letter {
			target = tile
		}
	}
	require.NotNil(t, target)
	assert.Less(t, target.Y, origin.Y)
}

func TestClimbStrategy_WaitsWithoutUpwardMove(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, DefaultViewport(), rand.New(rand.NewSource(3)), nil)

	var mid *Tile
	for _, tile := range s.Field.Tiles {
		if tile.Row == 1 && tile.Col == 1 {
			mid = tile
		}
	}
	require.NotNil(t, mid)
	s.Field.Occupied().Occupied = false
	mid.Occupied = true
	s.Rider.PlaceOn(mid)
	for _, tile := range s.Field.Tiles {
		if tile.Y < mid.Y {
			tile.StartFade()
		}
	}
	s.markJumpable()
	require.NotEmpty(t, s.JumpableNeighbors(), "the row below is still reachable")

	_, ok := ClimbStrategy{}.NextLetter(s)
	assert.False(t, ok, "far from the bottom the bot waits instead of descending")
}

func TestClimbStrategy_NoCandidates(t *testing.T) {
	s := NewSession(DefaultConfig(), DefaultViewport(), rand.New(rand.NewSource(3)), nil)
	for _, tile := range s.Field.Tiles {
		if !tile.Occupied {
			tile.StartFade()
		}
	}
	s.markJumpable()

	_, ok := ClimbStrategy{}.NextLetter(s)
	assert.False(t, ok)
}

func TestBot_Cadence(t *testing.T) {
	s := NewSession(DefaultConfig(), DefaultViewport(), rand.New(rand.NewSource(5)), nil)
	bot := NewBot(ClimbStrategy{})

	assert.False(t, bot.Step(s, BotCadence/2))
	assert.True(t, bot.Step(s, BotCadence/2))
	assert.True(t, s.Rider.IsAirborne())
	assert.False(t, bot.Step(s, BotCadence), "no second jump while airborne")
}

func TestBot_SurvivesLongRun(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession(cfg, DefaultViewport(), rand.New(rand.NewSource(11)), nil)
	bot := NewBot(ClimbStrategy{})

	for elapsed := time.Duration(0); elapsed < time.Minute; elapsed += FrameInterval {
		s.Advance(FrameInterval)
		bot.Step(s, FrameInterval)
		require.Equal(t, 1, countOccupied(s))
	}

	assert.Equal(t, cfg.StartingLives, s.Lives)
	assert.Equal(t, StateRunning, s.State())
	assert.GreaterOrEqual(t, s.Score, 5*cfg.ScoreAward)
}

func TestBot_IdleWhenPaused(t *testing.T) {
	s := NewSession(DefaultConfig(), DefaultViewport(), rand.New(rand.NewSource(5)), nil)
	bot := NewBot(ClimbStrategy{})
	s.Pause()

	assert.False(t, bot.Step(s, time.Second))
	assert.Zero(t, s.Score)
}
