package game

import (
	"github.com/matzehuels/cubetris/pkg/geom"
	"github.com/matzehuels/cubetris/pkg/piece"
)

// tryMove applies move to a copy of the active piece and commits the copy if
// it fits.
func (b *Board) tryMove(move func(p *piece.Piece)) bool {
	if b.active == nil {
		return false
	}
	candidate := b.active.Copy()
	move(&candidate)
	if !b.PieceFits(candidate) {
		return false
	}
	b.active = &candidate
	return true
}

// MoveXY shifts the active piece in the horizontal plane.
func (b *Board) MoveXY(dx, dy int) bool {
	return b.tryMove(func(p *piece.Piece) { p.Translate(dx, dy, 0) })
}

// MoveDown lowers the active piece by one layer. If it cannot move, the
// piece is cemented, full layers are cleared and the next piece spawns.
// It reports whether the piece moved.
func (b *Board) MoveDown() bool {
	if b.active == nil {
		return false
	}
	if b.tryMove(func(p *piece.Piece) { p.Translate(0, 0, -1) }) {
		return true
	}
	b.cement()
	b.clearLayers()
	b.spawn()
	return false
}

// Drop lowers the active piece until it cements. It always returns true.
func (b *Board) Drop() bool {
	for b.MoveDown() {
	}
	return true
}

// Rotate turns the active piece a quarter turn. axis is x, y or z and
// direction is cw or ccw (or one of their long forms or a raw sign), both
// case-insensitive. Invalid tokens return an error and leave the board
// untouched.
func (b *Board) Rotate(axis, direction string) (bool, error) {
	a, err := geom.ParseAxis(axis)
	if err != nil {
		return false, err
	}
	d, err := geom.ParseDirection(direction)
	if err != nil {
		return false, err
	}
	return b.RotateSign(a, d.Sign())
}

// RotateSign turns the active piece a quarter turn about axis; sign +1 is
// counter-clockwise and -1 clockwise. The rotated piece is clamped back into
// bounds and the pair is accepted or rejected as one move.
func (b *Board) RotateSign(axis geom.Axis, sign int) (bool, error) {
	if !axis.Valid() {
		return false, errInvalidAxis(axis)
	}
	if _, err := geom.DirectionFromSign(sign); err != nil {
		return false, err
	}
	return b.tryMove(func(p *piece.Piece) {
		p.Rotate(axis, sign)
		p.ClampIntoBounds(b.dims)
	}), nil
}

// Tick advances the auto-fall clock by dtMs milliseconds. Negative values
// count as zero and a single call never adds more than the configured max
// frame time. Once the fall interval has elapsed the clock resets and the
// piece moves down; Tick then returns true. Finished games never change.
func (b *Board) Tick(dtMs int) bool {
	if b.active == nil {
		return false
	}
	b.elapsed += min(max(dtMs, 0), b.cfg.MaxFrameMs)
	if b.elapsed < b.cfg.FallIntervalMs {
		return false
	}
	b.elapsed = 0
	b.MoveDown()
	return true
}
