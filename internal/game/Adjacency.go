package game

import "math"

// NeighborOffsets are the six same-parity checkerboard neighbours in grid
// steps: the four diagonals and the two horizontal skips.
var NeighborOffsets = [][]float64{
	{-1, -1},
	{1, -1},
	{-2, 0},
	{2, 0},
	{-1, 1},
	{1, 1},
}

// AdjacencyResolver matches neighbours in pixel space. Tiles scroll by
// fractional amounts, so a candidate counts as a neighbour when it lies
// within tolerance*step of an expected offset on both axes.
type AdjacencyResolver struct {
	step      float64
	tolerance float64
}

func NewAdjacencyResolver(cfg Config) AdjacencyResolver {
	return AdjacencyResolver{
		step:      cfg.Step(),
		tolerance: cfg.NeighborTolerance * cfg.Step(),
	}
}

// IsNeighbor reports whether b sits at one of the neighbour offsets from a.
func (ar AdjacencyResolver) IsNeighbor(a, b *Tile) bool {
	if a == b {
		return false
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	for _, offset := range NeighborOffsets {
		if math.Abs(dx-offset[0]*ar.step) <= ar.tolerance &&
			math.Abs(dy-offset[1]*ar.step) <= ar.tolerance {
			return true
		}
	}
	return false
}

// Neighbors is the raw adjacency of tile among candidates, vanishing tiles included.
func (ar AdjacencyResolver) Neighbors(tile *Tile, candidates []*Tile) []*Tile {
	var neighbors []*Tile
	for _, candidate := range candidates {
		if ar.IsNeighbor(tile, candidate) {
			neighbors = append(neighbors, candidate)
		}
	}
	return neighbors
}

// JumpableNeighbors narrows Neighbors to tiles a rider may land on:
// unoccupied and not vanishing.
func (ar AdjacencyResolver) JumpableNeighbors(tile *Tile, candidates []*Tile) []*Tile {
	var jumpable []*Tile
	for _, candidate := range ar.Neighbors(tile, candidates) {
		if candidate.Occupied || candidate.IsVanishing() {
			continue
		}
		jumpable = append(jumpable, candidate)
	}
	return jumpable
}

// MarkJumpable clears every jumpable flag and, when from is non-nil,
// flags its jumpable neighbours.
func (ar AdjacencyResolver) MarkJumpable(from *Tile, tiles []*Tile) {
	for _, tile := range tiles {
		tile.Jumpable = false
	}
	if from == nil {
		return
	}
	for _, tile := range ar.JumpableNeighbors(from, tiles) {
		tile.Jumpable = true
	}
}
