package game

import "time"

// BotCadence is how long a bot waits between decisions.
const BotCadence = 120 * time.Millisecond

// Bot plays a session through RequestJump, deciding at a fixed cadence
// rather than every frame.
type Bot struct {
	Strategy Strategy
	Cadence  time.Duration

	since time.Duration
}

func NewBot(strategy Strategy) *Bot {
	return &Bot{Strategy: strategy, Cadence: BotCadence}
}

// Step lets the bot think after dt of frame time and reports whether it
// started a jump.
func (b *Bot) Step(s *Session, dt time.Duration) bool {
	if s.State() != StateRunning {
		return false
	}
	b.since += dt
	if b.since < b.Cadence {
		return false
	}

	letter, ok := b.Strategy.NextLetter(s)
	if !ok {
		return false
	}
	if !s.RequestJump(letter) {
		return false
	}
	b.since = 0
	return true
}
