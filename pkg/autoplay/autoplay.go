// Package autoplay drives boards without a human: a Player places one piece
// per call using only the public board controls, and Run plays a whole game.
//
// Players never touch the grid directly. They inspect the board, try moves on
// piece copies with [game.Board.PieceFits] and then issue the same moves
// through the controls, so every placement goes through the board's own
// validation.
package autoplay

import (
	"context"
	"slices"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/matzehuels/cubetris/pkg/game"
	"github.com/matzehuels/cubetris/pkg/observability"
)

// Player places the active piece of a board. Place must finish by
// cementing the piece (usually with Drop) unless the game is already over.
type Player interface {
	Name() string
	Place(b *game.Board)
}

// Stats summarises one run.
type Stats struct {
	Board    string
	Player   string
	Pieces   int
	Layers   int
	Score    int
	Over     bool
	Duration time.Duration

	clears *intmap.Map[int, int]
}

// Clears returns how many placements cleared exactly n layers.
func (s Stats) Clears(n int) int {
	if s.clears == nil {
		return 0
	}
	v, _ := s.clears.Get(n)
	return v
}

// ClearSizes returns the distinct numbers of layers cleared by a single
// placement, ascending.
func (s Stats) ClearSizes() []int {
	if s.clears == nil {
		return nil
	}
	sizes := slices.Collect(s.clears.Keys())
	slices.Sort(sizes)
	return sizes
}

// Run lets p place pieces on b until the game is over, maxPieces placements
// have been made (maxPieces <= 0 means no limit), or ctx is done. It returns
// the stats gathered so far together with ctx.Err() on cancellation.
func Run(ctx context.Context, b *game.Board, p Player, maxPieces int) (Stats, error) {
	hooks := observability.Run()
	hooks.OnRunStart(ctx, b.ID(), p.Name())
	start := time.Now()

	stats := Stats{
		Board:  b.ID(),
		Player: p.Name(),
		clears: intmap.New[int, int](8),
	}

	var err error
	for !b.IsOver() && (maxPieces <= 0 || stats.Pieces < maxPieces) {
		if err = ctx.Err(); err != nil {
			break
		}
		before := b.LayersCleared()
		p.Place(b)
		stats.Pieces++

		n := b.LayersCleared() - before
		if n > 0 {
			v, _ := stats.clears.Get(n)
			stats.clears.Put(n, v+1)
		}
	}

	stats.Layers = b.LayersCleared()
	stats.Score = b.Score()
	stats.Over = b.IsOver()
	stats.Duration = time.Since(start)
	hooks.OnRunComplete(ctx, b.ID(), stats.Pieces, stats.Score, stats.Duration, err)
	return stats, err
}
