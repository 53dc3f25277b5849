// Package game implements the board: a dense 3D occupancy grid, one active
// falling piece, scoring and the controls that move the piece.
//
// # State machine
//
// A board spawns a piece on construction and after every cementing. A spawn
// that does not fit ends the game: the board has no active piece from then
// on and every control reports false.
//
// # Mutation
//
// Every control goes through one gate: the transformation is applied to a
// copy of the active piece, and the copy replaces the active piece only if
// all of its blocks are in bounds and on empty cells. A rejected move leaves
// the board untouched.
//
// # Layers
//
// Cells are indexed z*dx*dy + y*dx + x, so a layer is one contiguous z
// slice. After a piece is cemented, every full layer is removed from the
// bottom up and everything above slides down by one.
//
// # Concurrency
//
// A Board is not safe for concurrent use. Callers sharing a board across
// goroutines must serialise access.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/cubetris/pkg/catalog"
	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/geom"
	"github.com/matzehuels/cubetris/pkg/observability"
	"github.com/matzehuels/cubetris/pkg/piece"
)

type cell struct {
	block geom.Block
	ok    bool
}

// Board is one game session.
type Board struct {
	id    string
	dims  geom.Coord
	cfg   Config
	cells []cell

	active *piece.Piece // nil once the game is over

	score   int
	cleared int
	spawned int
	elapsed int

	gen   catalog.Generator
	rng   *rand.Rand
	hooks observability.GameHooks
}

// New creates a board of the given dimensions and spawns the first piece.
// Unless WithGenerator is given, pieces come from the default catalog.
func New(dims geom.Coord, opts ...Option) (*Board, error) {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.cfg
	cfg.Dims = dims
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	gen := o.generator
	if gen == nil {
		c := catalog.Default()
		if o.catalog != nil {
			if err := o.catalog.Validate(); err != nil {
				return nil, err
			}
			c = *o.catalog
		}
		gen = catalog.NewGenerator(c, cfg.Seed, cfg.Materials)
	}
	hooks := o.hooks
	if hooks == nil {
		hooks = observability.Game()
	}

	b := &Board{
		id:    uuid.NewString(),
		dims:  dims,
		cfg:   cfg,
		cells: make([]cell, dims.Volume()),
		gen:   gen,
		rng:   rand.New(rand.NewPCG(cfg.Seed+1, cfg.Seed)),
		hooks: hooks,
	}
	b.spawn()
	return b, nil
}

// ID returns the board's session ID.
func (b *Board) ID() string { return b.id }

// Config returns the effective configuration, including the resolved seed.
func (b *Board) Config() Config { return b.cfg }

// IsOver reports whether the game has ended.
func (b *Board) IsOver() bool { return b.active == nil }

// Score returns the current score.
func (b *Board) Score() int { return b.score }

// LayersCleared returns the number of layers removed so far.
func (b *Board) LayersCleared() int { return b.cleared }

// PiecesSpawned returns the number of pieces that became active.
func (b *Board) PiecesSpawned() int { return b.spawned }

// Dimensions returns (dx, dy, dz).
func (b *Board) Dimensions() geom.Coord { return b.dims }

// ActiveBlocks returns the active piece's world blocks, or an empty slice
// when the game is over.
func (b *Board) ActiveBlocks() []geom.Block {
	if b.active == nil {
		return []geom.Block{}
	}
	return b.active.WorldBlocks()
}

// ActivePiece returns a copy of the active piece.
func (b *Board) ActivePiece() (piece.Piece, bool) {
	if b.active == nil {
		return piece.Piece{}, false
	}
	return b.active.Copy(), true
}

// CementedBlocks returns every occupied cell in grid index order: by z, then
// y, then x.
func (b *Board) CementedBlocks() []geom.Block {
	var out []geom.Block
	for _, c := range b.cells {
		if c.ok {
			out = append(out, c.block)
		}
	}
	return out
}

// Occupied returns the block cemented at c, if any. Coordinates outside the
// board are never occupied.
func (b *Board) Occupied(c geom.Coord) (geom.Block, bool) {
	if !b.InBounds(c) {
		return geom.Block{}, false
	}
	cl := b.cells[b.index(c)]
	return cl.block, cl.ok
}

// LayerFill returns the number of occupied cells in layer z.
func (b *Board) LayerFill(z int) int {
	n := 0
	for y := range b.dims.Y {
		for x := range b.dims.X {
			if b.cells[b.index(geom.C(x, y, z))].ok {
				n++
			}
		}
	}
	return n
}

// InBounds reports whether c lies in [0, dim) on every axis.
func (b *Board) InBounds(c geom.Coord) bool {
	return c.X >= 0 && c.X < b.dims.X &&
		c.Y >= 0 && c.Y < b.dims.Y &&
		c.Z >= 0 && c.Z < b.dims.Z
}

// BlockFits reports whether c is in bounds and empty.
func (b *Board) BlockFits(c geom.Coord) bool {
	return b.InBounds(c) && !b.cells[b.index(c)].ok
}

// PieceFits reports whether every world block of p fits.
func (b *Board) PieceFits(p piece.Piece) bool {
	for _, blk := range p.WorldBlocks() {
		if !b.BlockFits(blk.Pos) {
			return false
		}
	}
	return true
}

func (b *Board) index(c geom.Coord) int {
	if !b.InBounds(c) {
		panic(fmt.Sprintf("game: cell %v outside board %v", c, b.dims))
	}
	return c.Z*b.dims.X*b.dims.Y + c.Y*b.dims.X + c.X
}

// spawn takes the next piece from the generator and places its lowest
// extent on the top layer at the spawn offset. A piece that does not fit
// ends the game.
func (b *Board) spawn() {
	p := b.gen.Next()
	if p.Len() == 0 {
		panic("game: generator returned an empty piece")
	}

	if b.cfg.RandomOrientation {
		for _, a := range geom.Axes {
			for range b.rng.IntN(4) {
				p.Rotate(a, 1)
			}
		}
	}

	p.ClampBeyond(geom.Z, b.dims.Z-1, 1)
	p.TranslateBy(b.spawnOffset())
	p.ClampIntoBounds(b.dims)

	if !b.PieceFits(p) {
		b.active = nil
		b.hooks.OnGameOver(b.id, b.score)
		return
	}
	b.active = &p
	b.spawned++
	b.score += b.cfg.SpawnBonus
	b.hooks.OnSpawn(b.id, p.WorldBlocks())
}

func (b *Board) spawnOffset() geom.Coord {
	if b.cfg.SpawnMode == SpawnRandom {
		return geom.C(b.rng.IntN(b.dims.X), b.rng.IntN(b.dims.Y), 0)
	}
	return geom.C((b.dims.X+1)/2, (b.dims.Y+1)/2, 0)
}

// cement writes the active piece into the grid.
func (b *Board) cement() {
	blocks := b.active.WorldBlocks()
	for _, blk := range blocks {
		i := b.index(blk.Pos)
		if b.cells[i].ok {
			panic(fmt.Sprintf("game: cementing onto occupied cell %v", blk.Pos))
		}
		b.cells[i] = cell{block: blk, ok: true}
	}
	b.active = nil
	b.hooks.OnCement(b.id, blocks)
}

// clearLayers removes every full layer, bottom up, and scores them.
func (b *Board) clearLayers() int {
	n := 0
	for z := range b.dims.Z {
		for b.layerFull(z) {
			b.removeLayer(z)
			n++
		}
	}
	if n > 0 {
		b.cleared += n
		b.score += n * b.cfg.LayerBonus
		b.hooks.OnLayersCleared(b.id, n, b.score)
	}
	return n
}

func (b *Board) layerFull(z int) bool {
	return b.LayerFill(z) == b.dims.X*b.dims.Y
}

// removeLayer shifts every layer above z down by one and empties the top.
func (b *Board) removeLayer(z int) {
	top := b.dims.Z - 1
	for y := range b.dims.Y {
		for x := range b.dims.X {
			for zz := z; zz <= top; zz++ {
				i := b.index(geom.C(x, y, zz))
				if zz == top {
					b.cells[i] = cell{}
					continue
				}
				above := b.cells[b.index(geom.C(x, y, zz+1))]
				if above.ok {
					above.block.Pos.Z--
				}
				b.cells[i] = above
			}
		}
	}
}

// errInvalidAxis is returned by RotateSign for axes outside x, y, z.
func errInvalidAxis(a geom.Axis) error {
	return errors.New(errors.ErrCodeInvalidAxis, "invalid axis %v", a)
}
