package game

import (
	"math/rand"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestSession(cfg Config, seed int64) (*Session, *KeyBuffer) {
	keys := NewKeyBuffer(cfg.KeyHoldTime)
	s := NewSession(cfg, Viewport{Width: 540, Height: 450}, rand.New(rand.NewSource(seed)), keys)
	return s, keys
}

func findTile(s *Session, match func(*Tile) bool) *Tile {
	for _, tile := range s.Field.Tiles {
		if match(tile) {
			return tile
		}
	}
	return nil
}

func countOccupied(s *Session) int {
	count := 0
	for _, tile := range s.Field.Tiles {
		if tile.Occupied {
			count++
		}
	}
	return count
}

func TestSessionJumpScenario(t *testing.T) {
	Convey("Given a 540x450 session with default tuning", t, func() {
		cfg := DefaultConfig()
		s, keys := newTestSession(cfg, 21)
		var stats []Stats
		s.OnStats = func(st Stats) { stats = append(stats, st) }

		origin := s.Field.Occupied()

		Convey("The field is a 4x3 checkerboard of six tiles with the rider on the bottom row", func() {
			So(s.Field.Tiles, ShouldHaveLength, 6)
			So(origin, ShouldNotBeNil)
			So(origin.Row, ShouldEqual, 2)
			x, y := origin.RestingPosition(cfg.RiderSize())
			So(s.Rider.X, ShouldEqual, x)
			So(s.Rider.Y, ShouldEqual, y)
			So(s.Stats(), ShouldResemble, Stats{Score: 0, Lives: 5, Level: 1, State: StateRunning})
		})

		Convey("Its upper neighbours are flagged jumpable", func() {
			jumpable := 0
			for _, tile := range s.Field.Tiles {
				if tile.Jumpable {
					jumpable++
					So(tile.Occupied, ShouldBeFalse)
				}
			}
			So(jumpable, ShouldBeGreaterThan, 0)
		})

		Convey("When the letter of a diagonal neighbour is pressed", func() {
			target := findTile(s, func(tile *Tile) bool {
				return tile.Row == origin.Row-1 && (tile.Col == origin.Col-1 || tile.Col == origin.Col+1)
			})
			So(target, ShouldNotBeNil)
			keys.Press(target.Letter + ('a' - 'A'))
			s.Advance(10 * time.Millisecond)

			Convey("The rider takes off and the score goes up", func() {
				So(s.Rider.IsAirborne(), ShouldBeTrue)
				So(s.Rider.Jump.Target, ShouldEqual, target)
				So(s.Score, ShouldEqual, cfg.ScoreAward)
				So(target.Occupied, ShouldBeTrue)
				So(origin.Occupied, ShouldBeFalse)
				So(origin.Fade.Phase, ShouldEqual, FadeFading)
				So(keys.PressedKeys(), ShouldBeEmpty)
				So(countOccupied(s), ShouldEqual, 1)
				So(stats, ShouldHaveLength, 1)
				So(stats[0].Score, ShouldEqual, cfg.ScoreAward)
			})

			Convey("No tile is jumpable mid-flight and further jumps are refused", func() {
				for _, tile := range s.Field.Tiles {
					So(tile.Jumpable, ShouldBeFalse)
				}
				So(s.RequestJump(origin.Letter), ShouldBeFalse)
			})

			Convey("After exactly the jump duration the rider rests on the target", func() {
				s.Advance(cfg.JumpDuration)

				x, y := target.RestingPosition(cfg.RiderSize())
				So(s.Rider.IsAirborne(), ShouldBeFalse)
				So(s.Rider.X, ShouldEqual, x)
				So(s.Rider.Y, ShouldEqual, y)
				So(s.Sagging(), ShouldEqual, target)
				So(target.Sag.Phase, ShouldEqual, SagDescending)

				Convey("The rider rides the sag and the origin vanishes", func() {
					for i := 0; i < 6; i++ {
						s.Advance(50 * time.Millisecond)
						So(target.Sag.Amount, ShouldBeLessThanOrEqualTo, cfg.SagAmount)
						So(s.Rider.Y, ShouldAlmostEqual, target.Y-cfg.RiderSize()+target.Sag.Amount, 1e-9)
					}
					So(s.Sagging(), ShouldBeNil)
					So(target.Sag.Amount, ShouldEqual, 0.0)
					So(s.Field.Tiles, ShouldNotContain, origin)

					jumpable := findTile(s, func(tile *Tile) bool { return tile.Jumpable })
					So(jumpable, ShouldNotBeNil)
				})
			})
		})

		Convey("When a letter that is not a neighbour is pressed", func() {
			far := findTile(s, func(tile *Tile) bool { return tile.Row == 0 })
			So(far, ShouldNotBeNil)
			keys.Press(far.Letter)
			s.Advance(10 * time.Millisecond)

			Convey("The request is ignored and the key stays held", func() {
				So(s.Rider.IsAirborne(), ShouldBeFalse)
				So(s.Score, ShouldEqual, 0)
				So(far.Occupied, ShouldBeFalse)
				So(keys.PressedKeys(), ShouldResemble, []rune{far.Letter})
				So(stats, ShouldBeEmpty)
			})
		})

		Convey("When the session is paused", func() {
			s.Pause()
			before := s.Field.NextSpawnY
			s.Advance(50 * time.Millisecond)

			So(s.State(), ShouldEqual, StatePaused)
			So(s.Field.NextSpawnY, ShouldEqual, before)

			Convey("Resuming lets the field scroll again", func() {
				s.TogglePause()
				s.Advance(50 * time.Millisecond)
				So(s.State(), ShouldEqual, StateRunning)
				So(s.Field.NextSpawnY, ShouldNotEqual, before)
			})
		})
	})
}

func TestSessionFallScenarios(t *testing.T) {
	Convey("Given a fast-scrolling session", t, func() {
		cfg := DefaultConfig()
		cfg.ScrollSpeed = 1000

		Convey("With a single life, falling off the bottom ends the game", func() {
			cfg.StartingLives = 1
			s, _ := newTestSession(cfg, 31)
			var last Stats
			s.OnStats = func(st Stats) { last = st }

			for i := 0; i < 10 && !s.IsGameOver(); i++ {
				s.Advance(100 * time.Millisecond)
			}

			So(s.State(), ShouldEqual, StateGameOver)
			So(s.Lives, ShouldEqual, 0)
			So(last.State, ShouldEqual, StateGameOver)

			Convey("And nothing scrolls or spawns afterwards", func() {
				cursor := s.Field.NextSpawnY
				count := len(s.Field.Tiles)
				s.Advance(100 * time.Millisecond)
				s.Resume()
				s.Advance(100 * time.Millisecond)
				So(s.Field.NextSpawnY, ShouldEqual, cursor)
				So(s.Field.Tiles, ShouldHaveLength, count)
				So(s.State(), ShouldEqual, StateGameOver)
			})
		})

		Convey("With lives to spare, the rider recovers onto the topmost visible tile", func() {
			s, _ := newTestSession(cfg, 32)
			for i := 0; i < 3; i++ {
				s.Advance(100 * time.Millisecond)
			}

			So(s.Lives, ShouldEqual, cfg.StartingLives-1)
			So(s.State(), ShouldEqual, StateRunning)
			So(countOccupied(s), ShouldEqual, 1)

			landing := s.Field.Occupied()
			So(landing.Y, ShouldBeGreaterThanOrEqualTo, 0.0)
			So(landing.Y, ShouldBeLessThan, 450.0)
			for _, tile := range s.Field.Tiles {
				if tile.Y >= 0 && tile.Y < 450 && !tile.IsVanishing() {
					So(landing.Y, ShouldBeLessThanOrEqualTo, tile.Y)
				}
			}
			x, y := landing.RestingPosition(cfg.RiderSize())
			So(s.Rider.X, ShouldEqual, x)
			So(s.Rider.Y, ShouldEqual, y)
			So(s.Rider.IsAirborne(), ShouldBeFalse)
		})

		Convey("When the target of a slow jump scrolls away mid-flight", func() {
			cfg.ScrollSpeed = DefaultConfig().ScrollSpeed
			cfg.JumpDuration = 10 * time.Second
			s, _ := newTestSession(cfg, 33)

			targets := s.JumpableNeighbors()
			So(targets, ShouldNotBeEmpty)
			So(s.RequestJump(targets[0].Letter), ShouldBeTrue)
			target := s.Field.Occupied()
			So(s.Rider.IsAirborne(), ShouldBeTrue)

			target.Y = 449.9
			s.Advance(100 * time.Millisecond)

			Convey("The jump is cancelled and the rider stands on the topmost visible tile", func() {
				So(s.Lives, ShouldEqual, cfg.StartingLives-1)
				So(s.State(), ShouldEqual, StateRunning)
				So(s.Rider.IsAirborne(), ShouldBeFalse)
				So(s.Rider.Jump.Target, ShouldBeNil)
				So(s.Sagging(), ShouldBeNil)
				So(countOccupied(s), ShouldEqual, 1)

				landing := s.Field.Occupied()
				So(landing, ShouldNotEqual, target)
				So(landing, ShouldEqual, s.Field.TopmostVisible(s.Viewport()))
				x, y := landing.RestingPosition(cfg.RiderSize())
				So(s.Rider.X, ShouldEqual, x)
				So(s.Rider.Y, ShouldEqual, y)
			})
		})

		Convey("When the occupied tile scrolls away while sagging", func() {
			cfg.ScrollSpeed = DefaultConfig().ScrollSpeed
			s, _ := newTestSession(cfg, 34)

			targets := s.JumpableNeighbors()
			So(targets, ShouldNotBeEmpty)
			So(s.RequestJump(targets[0].Letter), ShouldBeTrue)
			target := s.Field.Occupied()
			s.Advance(cfg.JumpDuration)
			So(s.Sagging(), ShouldEqual, target)

			target.Y = 449.9
			s.Advance(100 * time.Millisecond)

			Convey("The sag is dropped and the rider recovers grounded", func() {
				So(s.Lives, ShouldEqual, cfg.StartingLives-1)
				So(s.State(), ShouldEqual, StateRunning)
				So(s.Rider.IsAirborne(), ShouldBeFalse)
				So(s.Rider.Jump.Target, ShouldBeNil)
				So(s.Sagging(), ShouldBeNil)
				So(countOccupied(s), ShouldEqual, 1)

				landing := s.Field.Occupied()
				So(landing, ShouldNotEqual, target)
				So(landing.Sag.Amount, ShouldEqual, 0.0)
				x, y := landing.RestingPosition(cfg.RiderSize())
				So(s.Rider.X, ShouldEqual, x)
				So(s.Rider.Y, ShouldEqual, y)
			})
		})

		Convey("When the occupied tile falls and nothing else is visible", func() {
			cfg.ScrollSpeed = DefaultConfig().ScrollSpeed
			s, _ := newTestSession(cfg, 35)
			var last Stats
			s.OnStats = func(st Stats) { last = st }

			occupied := s.Field.Occupied()
			s.Field.Tiles = []*Tile{occupied}
			occupied.Y = 449.9
			s.Advance(100 * time.Millisecond)

			Convey("The session ends instead of leaving the rider nowhere", func() {
				So(s.State(), ShouldEqual, StateGameOver)
				So(last.State, ShouldEqual, StateGameOver)
				So(s.Lives, ShouldEqual, cfg.StartingLives-1)
				So(s.Rider.IsAirborne(), ShouldBeFalse)
				So(s.Rider.Jump.Target, ShouldBeNil)
				So(s.Sagging(), ShouldBeNil)
				So(countOccupied(s), ShouldEqual, 0)
			})
		})
	})
}

func TestSessionSharedLetters(t *testing.T) {
	Convey("Given two jumpable neighbours labelled with the same letter", t, func() {
		s, _ := newTestSession(DefaultConfig(), 36)
		targets := s.JumpableNeighbors()
		So(len(targets), ShouldBeGreaterThanOrEqualTo, 2)

		first, second := targets[0], targets[1]
		first.Letter, second.Letter = 'Z', 'Z'

		var firstIndex, secondIndex int
		for i, tile := range s.Field.Tiles {
			switch tile {
			case first:
				firstIndex = i
			case second:
				secondIndex = i
			}
		}
		So(firstIndex, ShouldBeLessThan, secondIndex)

		Convey("The jump goes to the one that comes first in field order", func() {
			So(s.RequestJump('z'), ShouldBeTrue)
			So(s.Rider.Jump.Target, ShouldEqual, first)
			So(first.Occupied, ShouldBeTrue)
			So(second.Occupied, ShouldBeFalse)
		})
	})
}

func TestSessionOccupancyExclusivity(t *testing.T) {
	Convey("Across a long random run exactly one tile is occupied at every frame boundary", t, func() {
		cfg := DefaultConfig()
		cfg.ScrollSpeed = 60
		s, keys := newTestSession(cfg, 41)
		rng := rand.New(rand.NewSource(99))
		changes := 0
		s.OnStats = func(Stats) { changes++ }

		for frame := 0; frame < 2000 && !s.IsGameOver(); frame++ {
			if len(s.Field.Tiles) > 0 && rng.Intn(3) == 0 {
				keys.Press(s.Field.Tiles[rng.Intn(len(s.Field.Tiles))].Letter)
			}
			s.Advance(time.Duration(10+rng.Intn(40)) * time.Millisecond)
			keys.Age(30 * time.Millisecond)

			if !s.IsGameOver() {
				So(countOccupied(s), ShouldEqual, 1)
			}
			So(s.Score, ShouldBeGreaterThanOrEqualTo, 0)
			So(s.Lives, ShouldBeGreaterThanOrEqualTo, 0)
		}
		So(changes, ShouldBeGreaterThan, 0)
	})
}
