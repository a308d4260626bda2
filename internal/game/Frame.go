package game

import "encoding/json"

type SessionState int

const (
	StateRunning SessionState = iota
	StatePaused
	StateGameOver
)

func (s SessionState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes SessionState as a string.
func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Stats is what the UI sink shows.
type Stats struct {
	Score int          `json:"score"`
	Lives int          `json:"lives"`
	Level int          `json:"level"`
	State SessionState `json:"state"`
}

// TileView is one tile as the render sink draws it. Y already includes the sag.
type TileView struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Letter   string  `json:"letter"`
	Jumpable bool    `json:"jumpable"`
	Occupied bool    `json:"occupied"`
	Opacity  float64 `json:"opacity"`
	Palette  int     `json:"palette"`
}

type RiderView struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Airborne bool    `json:"airborne"`
}

// Frame is a read-only snapshot of one session frame for render sinks.
type Frame struct {
	SessionID string     `json:"session_id"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Tiles     []TileView `json:"tiles"`
	Rider     RiderView  `json:"rider"`
	Stats     Stats      `json:"stats"`
}

func newTileView(t *Tile) TileView {
	return TileView{
		ID:       t.ID,
		X:        t.X,
		Y:        t.DrawY(),
		Size:     t.Size,
		Letter:   string(t.Letter),
		Jumpable: t.Jumpable,
		Occupied: t.Occupied,
		Opacity:  t.Opacity(),
		Palette:  t.Palette,
	}
}
