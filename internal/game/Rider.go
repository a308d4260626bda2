package game

import (
	"math"
	"time"
)

type RiderPhase int

const (
	RiderGrounded RiderPhase = iota
	RiderAirborne
)

func (p RiderPhase) String() string {
	switch p {
	case RiderGrounded:
		return "grounded"
	case RiderAirborne:
		return "airborne"
	default:
		return "unknown"
	}
}

const (
	upwardArcScale   = 1.5
	downwardArcScale = 0.5
)

// Jump is the in-flight state of an airborne rider. Target is a lookup of
// a tile owned by the field.
type Jump struct {
	OriginX  float64
	OriginY  float64
	Target   *Tile
	Elapsed  time.Duration
	Duration time.Duration
	Height   float64
}

// Rider is the character hopping between tiles.
type Rider struct {
	X     float64
	Y     float64
	Size  float64
	Phase RiderPhase
	Jump  Jump
}

func NewRider(size float64) *Rider {
	return &Rider{Size: size}
}

func (r *Rider) IsAirborne() bool {
	return r.Phase == RiderAirborne
}

// PlaceOn puts a grounded rider on top of tile, cancelling any jump.
func (r *Rider) PlaceOn(tile *Tile) {
	r.X, r.Y = tile.RestingPosition(r.Size)
	r.Phase = RiderGrounded
	r.Jump = Jump{}
}

// RestOn keeps a grounded rider glued to its tile, sag included.
func (r *Rider) RestOn(tile *Tile) {
	r.X, _ = tile.RestingPosition(r.Size)
	r.Y = tile.Y - r.Size + tile.Sag.Amount
}

// StartJump launches a grounded rider towards target. The arc height is
// fixed at take-off: 1.5x base when the target is level with or above the
// rider, 0.5x base when it is below.
func (r *Rider) StartJump(target *Tile, duration time.Duration, baseHeight float64) bool {
	if r.Phase != RiderGrounded || target == nil {
		return false
	}
	_, targetY := target.RestingPosition(r.Size)
	height := baseHeight * downwardArcScale
	if targetY <= r.Y {
		height = baseHeight * upwardArcScale
	}

	r.Phase = RiderAirborne
	r.Jump = Jump{
		OriginX:  r.X,
		OriginY:  r.Y,
		Target:   target,
		Duration: duration,
		Height:   height,
	}
	return true
}

// Scroll shifts the take-off point with the field so the arc stays anchored
// to the tiles it connects.
func (r *Rider) Scroll(dy float64) {
	if r.Phase == RiderAirborne {
		r.Jump.OriginY += dy
	}
}

// Advance moves an airborne rider along its arc. It returns the tile the
// rider landed on during this step, or nil.
func (r *Rider) Advance(dt time.Duration) *Tile {
	if r.Phase != RiderAirborne {
		return nil
	}
	r.Jump.Elapsed += dt
	progress := ratio(r.Jump.Elapsed, r.Jump.Duration)
	target := r.Jump.Target
	targetX, targetY := target.RestingPosition(r.Size)

	if progress >= 1 {
		r.PlaceOn(target)
		return target
	}

	r.X = r.Jump.OriginX + (targetX-r.Jump.OriginX)*progress

	peak := r.Jump.OriginY - r.Jump.Height
	if progress < 0.5 {
		rise := 1 - math.Pow(1-progress*2, 3)
		r.Y = r.Jump.OriginY - r.Jump.Height*rise
	} else {
		fall := math.Pow((progress-0.5)*2, 3)
		r.Y = peak + (targetY-peak)*fall
	}
	return nil
}
