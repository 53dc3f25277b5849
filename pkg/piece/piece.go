// Package piece implements the falling polycube: a cluster of blocks in local
// coordinates plus a single center offset.
//
// World-space blocks are always local blocks + center, recomputed on every
// call to [Piece.WorldBlocks]. Rotation turns the local blocks about the
// local origin and leaves the center alone; translation moves only the
// center. A Piece is a value: [Piece.Copy] gives an independent duplicate,
// which is what lets a board try a move on a candidate before committing it.
//
// A Piece is not safe for concurrent use.
package piece

import (
	"fmt"
	"slices"

	"github.com/matzehuels/cubetris/pkg/geom"
)

// Piece is a polycube with a translation offset.
//
// The zero value is an empty piece at the origin. Most callers build pieces
// with New or get them from a catalog generator.
type Piece struct {
	blocks []geom.Block // local coordinates
	center geom.Coord
}

// New creates a piece from local blocks at the origin. The slice is copied.
func New(blocks []geom.Block) Piece {
	return Piece{blocks: slices.Clone(blocks)}
}

// At creates a piece from local blocks with the given center.
func At(center geom.Coord, blocks []geom.Block) Piece {
	return Piece{blocks: slices.Clone(blocks), center: center}
}

// FromCoords creates a piece at the origin whose blocks all carry material m.
func FromCoords(coords []geom.Coord, m geom.Material) Piece {
	blocks := make([]geom.Block, len(coords))
	for i, c := range coords {
		blocks[i] = geom.Block{Pos: c, Material: m}
	}
	return Piece{blocks: blocks}
}

// Len returns the number of blocks.
func (p Piece) Len() int { return len(p.blocks) }

// Center returns the translation offset.
func (p Piece) Center() geom.Coord { return p.center }

// LocalBlocks returns a copy of the blocks in local coordinates.
func (p Piece) LocalBlocks() []geom.Block { return slices.Clone(p.blocks) }

// WorldBlocks returns the blocks translated by the center. The result is a
// fresh slice; calling it has no side effects.
func (p Piece) WorldBlocks() []geom.Block {
	out := make([]geom.Block, len(p.blocks))
	for i, b := range p.blocks {
		out[i] = b.Translated(p.center)
	}
	return out
}

// Copy returns a deep duplicate sharing no state with p.
func (p Piece) Copy() Piece {
	return Piece{blocks: slices.Clone(p.blocks), center: p.center}
}

// WithMaterial returns a copy of p whose blocks all carry m.
func (p Piece) WithMaterial(m geom.Material) Piece {
	c := p.Copy()
	for i := range c.blocks {
		c.blocks[i].Material = m
	}
	return c
}

// Rotate turns every local block a quarter turn about axis through the local
// origin. The center is untouched.
func (p *Piece) Rotate(axis geom.Axis, sign int) {
	for i, b := range p.blocks {
		p.blocks[i] = b.Rotated(axis, sign)
	}
}

// Translate moves the center by (dx, dy, dz).
func (p *Piece) Translate(dx, dy, dz int) {
	p.TranslateBy(geom.C(dx, dy, dz))
}

// TranslateBy moves the center by d.
func (p *Piece) TranslateBy(d geom.Coord) {
	p.center = p.center.Add(d)
}

// Extent returns the minimum world coordinate along axis when direction is
// +1, or the maximum when direction is -1. It panics on an empty piece or a
// direction other than ±1.
func (p Piece) Extent(axis geom.Axis, direction int) int {
	if len(p.blocks) == 0 {
		panic("piece: extent of empty piece")
	}
	if direction != 1 && direction != -1 {
		panic(fmt.Sprintf("piece: invalid direction %d", direction))
	}
	extreme := p.blocks[0].Pos.Get(axis)
	for _, b := range p.blocks[1:] {
		if direction == 1 {
			extreme = min(extreme, b.Pos.Get(axis))
		} else {
			extreme = max(extreme, b.Pos.Get(axis))
		}
	}
	return extreme + p.center.Get(axis)
}

// ClampBeyond is a one-sided bounding-box translation along axis.
//
// With direction +1 it enforces min ≥ limit, pushing the piece forward only
// if it currently sits below the limit. With direction -1 it enforces
// max ≤ limit, pulling it back only if it sticks out. It reports whether the
// piece moved. Grid occupancy is not considered.
func (p *Piece) ClampBeyond(axis geom.Axis, limit, direction int) bool {
	extreme := p.Extent(axis, direction)
	diff := (limit - extreme) * direction
	if diff <= 0 {
		return false
	}
	p.TranslateBy(geom.Along(axis, diff*direction))
	return true
}

// ClampIntoBounds pulls the bounding box into [0, dims) on every axis, axis
// by axis: first min ≥ 0, then max ≤ dim-1. A piece larger than the box ends
// up flush with the upper bound. Occupancy is not checked, so the result may
// still overlap cemented blocks.
func (p *Piece) ClampIntoBounds(dims geom.Coord) {
	if len(p.blocks) == 0 {
		return
	}
	for _, a := range geom.Axes {
		p.ClampBeyond(a, 0, 1)
		p.ClampBeyond(a, dims.Get(a)-1, -1)
	}
}

func (p Piece) String() string {
	return fmt.Sprintf("piece{%d blocks @ %v}", len(p.blocks), p.center)
}
