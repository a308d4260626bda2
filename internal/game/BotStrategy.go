package game

import "math"

// Strategy picks the letter a bot should type next. ok is false when no
// jump is worth making this frame.
type Strategy interface {
	NextLetter(s *Session) (letter rune, ok bool)
}

// ClimbStrategy only jumps upwards, since the bottom edge is where lives
// are lost, and otherwise waits for rows to spawn above. Once the rider is
// inside the danger zone near the bottom it takes any jump on offer. Ties
// go to the tile nearest the horizontal centre.
type ClimbStrategy struct{}

func (ClimbStrategy) NextLetter(s *Session) (rune, bool) {
	origin := s.Field.Occupied()
	candidates := s.JumpableNeighbors()
	if origin == nil || len(candidates) == 0 {
		return 0, false
	}

	centre := s.viewport.Width / 2
	var best *Tile
	for _, tile := range candidates {
		switch {
		case best == nil || tile.Y < best.Y:
			best = tile
		case tile.Y == best.Y && centreDistance(tile, centre) < centreDistance(best, centre):
			best = tile
		}
	}

	inDanger := origin.Y+2*s.Field.Step() > s.viewport.Height
	if best.Y >= origin.Y && !inDanger {
		return 0, false
	}
	return best.Letter, true
}

func centreDistance(t *Tile, centre float64) float64 {
	return math.Abs(t.X + t.Size/2 - centre)
}
