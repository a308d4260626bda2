package game

import "time"

type SagPhase int

const (
	SagIdle SagPhase = iota
	SagDescending
	SagAscending
)

func (p SagPhase) String() string {
	switch p {
	case SagIdle:
		return "idle"
	case SagDescending:
		return "descending"
	case SagAscending:
		return "ascending"
	default:
		return "unknown"
	}
}

type FadePhase int

const (
	FadeSolid FadePhase = iota
	FadeFading
	FadeGone
)

func (p FadePhase) String() string {
	switch p {
	case FadeSolid:
		return "solid"
	case FadeFading:
		return "fading"
	case FadeGone:
		return "gone"
	default:
		return "unknown"
	}
}

// SagState is the landing dip of a tile.
type SagState struct {
	Phase   SagPhase
	Amount  float64
	Elapsed time.Duration
}

// FadeState is the disappear animation of a tile the rider jumped off.
type FadeState struct {
	Phase    FadePhase
	Progress float64
	Elapsed  time.Duration
}

// Tile is a letter-labelled platform. Row and Col are the grid indices it
// was created at; spawned rows get negative row numbers so that Row+Col
// stays even for every tile on the field.
type Tile struct {
	ID      int
	X       float64
	Y       float64
	Size    float64
	Letter  rune
	Row     int
	Col     int
	Palette int

	Occupied bool
	Jumpable bool

	Sag  SagState
	Fade FadeState
}

func CreateNewTile(id, row, col int, x, y, size float64, letter rune, palette int) *Tile {
	return &Tile{
		ID:      id,
		X:       x,
		Y:       y,
		Size:    size,
		Letter:  letter,
		Row:     row,
		Col:     col,
		Palette: palette,
	}
}

// IsVanishing is true once the tile has started fading out.
func (t *Tile) IsVanishing() bool {
	return t.Fade.Phase != FadeSolid
}

// Opacity is what the renderer should draw the tile with.
func (t *Tile) Opacity() float64 {
	switch t.Fade.Phase {
	case FadeFading:
		return 1 - t.Fade.Progress
	case FadeGone:
		return 0
	default:
		return 1
	}
}

// DrawY is the tile's top edge including the landing sag.
func (t *Tile) DrawY() float64 {
	return t.Y + t.Sag.Amount
}

// RestingPosition is where a rider of the given size stands on this tile.
func (t *Tile) RestingPosition(riderSize float64) (float64, float64) {
	return t.X + (t.Size-riderSize)/2, t.Y - riderSize
}
