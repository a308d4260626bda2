package game

import (
	"math"
	"math/rand"
	"time"
)

// PaletteSize is the number of tile colours the renderer knows about.
const PaletteSize = 12

// TileField owns the live tiles and the spawn cursor that scrolls with them.
// Rows are spawned and removed purely from the cursor position, never from
// tile counts, so gaps left by vanished tiles do not shift the grid.
type TileField struct {
	Tiles []*Tile

	// NextSpawnY is the y of the next row to create, NextSpawnParity the
	// column parity that row uses.
	NextSpawnY      float64
	NextSpawnParity int

	cfg          Config
	nextSpawnRow int
	nextID       int
	letters      *LetterSource
	rng          *rand.Rand
}

func NewTileField(cfg Config, rng *rand.Rand) *TileField {
	return &TileField{
		cfg:     cfg,
		letters: NewLetterSource(rng),
		rng:     rng,
	}
}

func (f *TileField) Step() float64 {
	return f.cfg.Step()
}

// Columns is how many grid columns fit across the viewport.
func (f *TileField) Columns(vp Viewport) int {
	return int(math.Floor(vp.Width / f.Step()))
}

// Rows is how many grid rows fit down the viewport.
func (f *TileField) Rows(vp Viewport) int {
	return int(math.Floor(vp.Height / f.Step()))
}

// BuildInitialGrid lays out the starting checkerboard and parks the spawn
// cursor one step above the viewport with the opposite parity of row 0.
func (f *TileField) BuildInitialGrid(vp Viewport) {
	f.Tiles = f.Tiles[:0]
	step := f.Step()
	rows, cols := f.Rows(vp), f.Columns(vp)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if (row+col)%2 != 0 {
				continue
			}
			f.addTile(row, col, float64(col)*step, float64(row)*step)
		}
	}

	f.NextSpawnY = -step
	f.NextSpawnParity = 1
	f.nextSpawnRow = -1
}

// Advance scrolls every tile and the spawn cursor down by the distance
// covered in dt, spawns rows that have come within one step of the top
// edge and drops tiles that fell past the bottom edge. It returns the
// scroll offset applied and the tiles that fell off.
func (f *TileField) Advance(dt time.Duration, vp Viewport) (float64, []*Tile) {
	dt = clampFrameDelta(dt, f.cfg.MaxFrameDelta)
	dy := f.cfg.ScrollSpeed * dt.Seconds()
	step := f.Step()

	for _, tile := range f.Tiles {
		tile.Y += dy
	}
	f.NextSpawnY += dy

	cols := f.Columns(vp)
	for f.NextSpawnY+step >= 0 {
		f.spawnRow(cols)
	}

	var fallen []*Tile
	kept := f.Tiles[:0]
	for _, tile := range f.Tiles {
		if tile.Y > vp.Height {
			fallen = append(fallen, tile)
			continue
		}
		kept = append(kept, tile)
	}
	clearTail(f.Tiles, len(kept))
	f.Tiles = kept

	return dy, fallen
}

// RemoveDisappeared drops every tile whose fade has completed.
func (f *TileField) RemoveDisappeared() []*Tile {
	var gone []*Tile
	kept := f.Tiles[:0]
	for _, tile := range f.Tiles {
		if tile.Fade.Phase == FadeGone {
			gone = append(gone, tile)
			continue
		}
		kept = append(kept, tile)
	}
	clearTail(f.Tiles, len(kept))
	f.Tiles = kept
	return gone
}

// Occupied returns the tile currently supporting the rider, if any.
func (f *TileField) Occupied() *Tile {
	for _, tile := range f.Tiles {
		if tile.Occupied {
			return tile
		}
	}
	return nil
}

// LowestRow returns the tiles sharing the largest y on the field.
func (f *TileField) LowestRow() []*Tile {
	var lowest []*Tile
	maxY := math.Inf(-1)
	for _, tile := range f.Tiles {
		switch {
		case tile.Y > maxY:
			maxY = tile.Y
			lowest = append(lowest[:0], tile)
		case tile.Y == maxY:
			lowest = append(lowest, tile)
		}
	}
	return lowest
}

// TopmostVisible returns the solid tile with the smallest y inside
// [0, viewport height). Vanishing tiles are only used when nothing else is
// visible.
func (f *TileField) TopmostVisible(vp Viewport) *Tile {
	var best, fallback *Tile
	for _, tile := range f.Tiles {
		if tile.Y < 0 || tile.Y >= vp.Height || tile.Fade.Phase == FadeGone {
			continue
		}
		if tile.IsVanishing() {
			if fallback == nil || tile.Y < fallback.Y {
				fallback = tile
			}
			continue
		}
		if best == nil || tile.Y < best.Y {
			best = tile
		}
	}
	if best == nil {
		return fallback
	}
	return best
}

// FindByLetter returns the first tile carrying the letter that satisfies keep.
func (f *TileField) FindByLetter(letter rune, keep func(*Tile) bool) *Tile {
	for _, tile := range f.Tiles {
		if tile.Letter == letter && keep(tile) {
			return tile
		}
	}
	return nil
}

func (f *TileField) spawnRow(cols int) {
	for col := 0; col < cols; col++ {
		if col%2 != f.NextSpawnParity {
			continue
		}
		f.addTile(f.nextSpawnRow, col, float64(col)*f.Step(), f.NextSpawnY)
	}
	f.NextSpawnY -= f.Step()
	f.NextSpawnParity = 1 - f.NextSpawnParity
	f.nextSpawnRow--
}

func (f *TileField) addTile(row, col int, x, y float64) *Tile {
	f.nextID++
	tile := CreateNewTile(f.nextID, row, col, x, y, f.cfg.TileSize, f.letters.Draw(), f.rng.Intn(PaletteSize))
	f.Tiles = append(f.Tiles, tile)
	return tile
}

// clearTail nils out the slots past n so dropped tiles can be collected.
func clearTail(tiles []*Tile, n int) {
	for i := n; i < len(tiles); i++ {
		tiles[i] = nil
	}
}

func clampFrameDelta(dt, limit time.Duration) time.Duration {
	if dt < 0 {
		return 0
	}
	if limit > 0 && dt > limit {
		return limit
	}
	return dt
}
