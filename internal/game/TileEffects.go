package game

import "time"

// StartSag puts an idle tile into its descending phase. A tile that is
// already sagging keeps its current animation.
func (t *Tile) StartSag() bool {
	if t.Sag.Phase != SagIdle {
		return false
	}
	t.Sag = SagState{Phase: SagDescending}
	return true
}

// StopSag snaps the tile back to rest.
func (t *Tile) StopSag() {
	t.Sag = SagState{}
}

// AdvanceSag moves the sag animation forward by dt and reports whether it
// has returned to rest. Overshoot past a phase boundary carries into the
// next phase, so the whole dip lasts exactly 2*duration of frame time.
func (t *Tile) AdvanceSag(dt time.Duration, maxSag float64, duration time.Duration) bool {
	switch t.Sag.Phase {
	case SagIdle:
		return true

	case SagDescending:
		t.Sag.Elapsed += dt
		if t.Sag.Elapsed < duration {
			t.Sag.Amount = maxSag * ratio(t.Sag.Elapsed, duration)
			return false
		}
		t.Sag.Phase = SagAscending
		t.Sag.Elapsed -= duration
		if t.Sag.Elapsed >= duration {
			t.StopSag()
			return true
		}
		t.Sag.Amount = maxSag * (1 - ratio(t.Sag.Elapsed, duration))
		return false

	case SagAscending:
		t.Sag.Elapsed += dt
		if t.Sag.Elapsed >= duration {
			t.StopSag()
			return true
		}
		t.Sag.Amount = maxSag * (1 - ratio(t.Sag.Elapsed, duration))
		return false
	}
	return true
}

// StartFade begins the disappear animation on a solid tile.
func (t *Tile) StartFade() bool {
	if t.Fade.Phase != FadeSolid {
		return false
	}
	t.Fade = FadeState{Phase: FadeFading}
	return true
}

// AdvanceFade moves the disappear animation forward and reports whether
// the tile is gone.
func (t *Tile) AdvanceFade(dt time.Duration, duration time.Duration) bool {
	switch t.Fade.Phase {
	case FadeFading:
		t.Fade.Elapsed += dt
		t.Fade.Progress = ratio(t.Fade.Elapsed, duration)
		if t.Fade.Progress >= 1 {
			t.Fade.Progress = 1
			t.Fade.Phase = FadeGone
			return true
		}
		return false
	case FadeGone:
		return true
	default:
		return false
	}
}

// ratio is elapsed/total clamped to [0,1].
func ratio(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	r := float64(elapsed) / float64(total)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
