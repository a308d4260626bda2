package game

import (
	"math/rand"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Session is one run of the game. It owns the field, the rider and the
// counters, and is only mutated from Advance and the control methods, all
// called from the single goroutine that drives frames.
type Session struct {
	ID    string
	Field *TileField
	Rider *Rider
	Score int
	Lives int

	// OnStats is called after every change to score, lives or state.
	OnStats func(Stats)

	cfg      Config
	viewport Viewport
	resolver AdjacencyResolver
	input    InputProvider
	rng      *rand.Rand
	state    SessionState
	sagging  *Tile
}

// NewSession builds the initial grid and puts the rider on a random tile of
// the lowest row. A nil rng is seeded from the clock; a nil input gets a
// KeyBuffer.
func NewSession(cfg Config, vp Viewport, rng *rand.Rand, input InputProvider) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if input == nil {
		input = NewKeyBuffer(cfg.KeyHoldTime)
	}

	s := &Session{
		ID:       uuid.NewString(),
		Field:    NewTileField(cfg, rng),
		Rider:    NewRider(cfg.RiderSize()),
		Lives:    cfg.StartingLives,
		cfg:      cfg,
		viewport: vp,
		resolver: NewAdjacencyResolver(cfg),
		input:    input,
		rng:      rng,
		state:    StateRunning,
	}

	s.Field.BuildInitialGrid(vp)
	s.spawnRider()
	s.markJumpable()
	return s
}

func (s *Session) spawnRider() {
	lowest := s.Field.LowestRow()
	if len(lowest) == 0 {
		log.Warn("Viewport too small for a single tile", "session", s.ID,
			"width", s.viewport.Width, "height", s.viewport.Height)
		s.endGame("no tiles")
		return
	}
	start := lowest[s.rng.Intn(len(lowest))]
	start.Occupied = true
	s.Rider.PlaceOn(start)
}

func (s *Session) Config() Config       { return s.cfg }
func (s *Session) Viewport() Viewport   { return s.viewport }
func (s *Session) Input() InputProvider { return s.input }
func (s *Session) State() SessionState  { return s.state }

// Sagging is the tile currently playing its landing dip, if any.
func (s *Session) Sagging() *Tile { return s.sagging }

func (s *Session) IsGameOver() bool { return s.state == StateGameOver }

func (s *Session) Stats() Stats {
	return Stats{
		Score: s.Score,
		Lives: s.Lives,
		Level: DefaultLevel,
		State: s.state,
	}
}

// Advance runs one frame: scroll, fall handling, animations, jumpable
// marking and input, in that order. It does nothing unless running.
func (s *Session) Advance(dt time.Duration) {
	if s.state != StateRunning {
		return
	}
	dt = clampFrameDelta(dt, s.cfg.MaxFrameDelta)

	dy, fallen := s.Field.Advance(dt, s.viewport)
	s.Rider.Scroll(dy)
	if !s.handleFallen(fallen) {
		return
	}

	s.advanceAnimations(dt)
	s.markJumpable()
	s.applyInput()
}

// handleFallen charges a life when the occupied tile scrolled away and
// reports whether the session is still running.
func (s *Session) handleFallen(fallen []*Tile) bool {
	lost := false
	for _, tile := range fallen {
		if tile == s.sagging {
			s.sagging = nil
		}
		if tile.Occupied {
			lost = true
		}
	}
	if !lost {
		return true
	}

	s.Lives--
	log.Info("Rider fell off the bottom", "session", s.ID, "lives", s.Lives, "score", s.Score)
	if s.Lives <= 0 {
		s.Lives = 0
		s.endGame("out of lives")
		return false
	}

	landing := s.Field.TopmostVisible(s.viewport)
	if landing == nil {
		// Rows are always spawned before the bottom row leaves, so this
		// should not happen. Without a landing spot there is no position
		// to put the rider at.
		log.Error("No visible tile to recover onto", "session", s.ID)
		s.endGame("no landing tile")
		return false
	}

	if s.sagging != nil {
		s.sagging.StopSag()
		s.sagging = nil
	}
	if landing.IsVanishing() {
		landing.Fade = FadeState{}
	}
	landing.Occupied = true
	s.Rider.PlaceOn(landing)
	log.Debug("Rider recovered", "session", s.ID, "tile", string(landing.Letter), "y", landing.Y)
	s.notify()
	return true
}

func (s *Session) advanceAnimations(dt time.Duration) {
	if s.sagging != nil && s.sagging.AdvanceSag(dt, s.cfg.SagAmount, s.cfg.SagDuration) {
		s.sagging = nil
	}

	for _, tile := range s.Field.Tiles {
		tile.AdvanceFade(dt, s.cfg.DisappearDuration)
	}
	s.Field.RemoveDisappeared()

	if landed := s.Rider.Advance(dt); landed != nil {
		s.startSag(landed)
		return
	}
	if !s.Rider.IsAirborne() {
		if occupied := s.Field.Occupied(); occupied != nil {
			s.Rider.RestOn(occupied)
		}
	}
}

func (s *Session) startSag(tile *Tile) {
	if s.sagging != nil && s.sagging != tile {
		s.sagging.StopSag()
	}
	if tile.StartSag() {
		s.sagging = tile
	}
}

func (s *Session) markJumpable() {
	var from *Tile
	if !s.Rider.IsAirborne() && s.sagging == nil {
		from = s.Field.Occupied()
	}
	s.resolver.MarkJumpable(from, s.Field.Tiles)
}

// JumpableNeighbors lists the tiles a jump could target right now.
func (s *Session) JumpableNeighbors() []*Tile {
	if s.state != StateRunning || s.Rider.IsAirborne() || s.sagging != nil {
		return nil
	}
	origin := s.Field.Occupied()
	if origin == nil {
		return nil
	}
	return s.resolver.JumpableNeighbors(origin, s.Field.Tiles)
}

// applyInput looks at the first held key only. Keys are cleared on an
// accepted jump; a rejected key stays held and is retried next frame.
func (s *Session) applyInput() {
	keys := s.input.PressedKeys()
	if len(keys) == 0 {
		return
	}
	if s.RequestJump(keys[0]) {
		s.input.ClearPressedKeys()
	}
}

// RequestJump validates and starts a jump to the neighbour labelled letter.
// Letters repeat across shuffles of the bag, so when two neighbours carry
// it the first in field order wins.
func (s *Session) RequestJump(letter rune) bool {
	letter = unicode.ToUpper(letter)
	var target *Tile
	for _, candidate := range s.JumpableNeighbors() {
		if candidate.Letter == letter {
			target = candidate
			break
		}
	}
	if target == nil {
		return false
	}

	if !s.Rider.StartJump(target, s.cfg.JumpDuration, s.cfg.JumpHeight) {
		return false
	}
	origin := s.Field.Occupied()
	origin.Occupied = false
	target.Occupied = true
	origin.StartFade()
	s.Score += s.cfg.ScoreAward
	s.markJumpable()

	log.Debug("Jump accepted", "session", s.ID, "from", string(origin.Letter), "to", string(letter), "score", s.Score)
	s.notify()
	return true
}

// Pause freezes a running session.
func (s *Session) Pause() {
	if s.state == StateRunning {
		s.state = StatePaused
		s.notify()
	}
}

// Resume continues a paused session.
func (s *Session) Resume() {
	if s.state == StatePaused {
		s.state = StateRunning
		s.notify()
	}
}

func (s *Session) TogglePause() {
	if s.state == StatePaused {
		s.Resume()
		return
	}
	s.Pause()
}

func (s *Session) endGame(reason string) {
	if s.state == StateGameOver {
		return
	}
	s.state = StateGameOver
	for _, tile := range s.Field.Tiles {
		tile.Jumpable = false
	}
	log.Info("Game over", "session", s.ID, "reason", reason, "score", s.Score)
	s.notify()
}

func (s *Session) notify() {
	if s.OnStats != nil {
		s.OnStats(s.Stats())
	}
}

// Frame snapshots the session for a render sink.
func (s *Session) Frame() Frame {
	tiles := make([]TileView, 0, len(s.Field.Tiles))
	for _, tile := range s.Field.Tiles {
		tiles = append(tiles, newTileView(tile))
	}
	return Frame{
		SessionID: s.ID,
		Width:     s.viewport.Width,
		Height:    s.viewport.Height,
		Tiles:     tiles,
		Rider: RiderView{
			X:        s.Rider.X,
			Y:        s.Rider.Y,
			Size:     s.Rider.Size,
			Airborne: s.Rider.IsAirborne(),
		},
		Stats: s.Stats(),
	}
}
