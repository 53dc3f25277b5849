package autoplay

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/matzehuels/cubetris/pkg/game"
	"github.com/matzehuels/cubetris/pkg/geom"
	"github.com/matzehuels/cubetris/pkg/piece"
)

// Random makes a few random moves and rotations, then drops.
type Random struct {
	rng      *rand.Rand
	maxMoves int
}

// NewRandom creates a random player. The same seed replays the same moves.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, ^seed)), maxMoves: 6}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Place(b *game.Board) {
	for range r.rng.IntN(r.maxMoves + 1) {
		if r.rng.IntN(3) == 0 {
			b.MoveXY(r.rng.IntN(3)-1, r.rng.IntN(3)-1)
			continue
		}
		sign := 1
		if r.rng.IntN(2) == 0 {
			sign = -1
		}
		_, _ = b.RotateSign(geom.Axes[r.rng.IntN(len(geom.Axes))], sign)
	}
	b.Drop()
}

// Weights scores a landing position. Each feature is multiplied by its
// weight and the sum is maximised.
type Weights struct {
	Lines     float64 // full layers the piece completes
	Height    float64 // sum of column heights
	Holes     float64 // empty cells below a column's top
	Bumpiness float64 // height differences between neighbouring columns
}

// DefaultWeights are the classic line-clearing heuristic weights.
var DefaultWeights = Weights{Lines: 0.76, Height: -0.51, Holes: -0.36, Bumpiness: -0.18}

// Greedy tries every orientation and horizontal offset the active piece can
// reach from the spawn point, and plays the one whose landing scores best.
type Greedy struct {
	Weights Weights
}

// NewGreedy creates a greedy player with DefaultWeights.
func NewGreedy() *Greedy { return &Greedy{Weights: DefaultWeights} }

func (g *Greedy) Name() string { return "greedy" }

type placement struct {
	turns  []geom.Axis // quarter turns, all counter-clockwise
	dx, dy int
	score  float64
}

func (g *Greedy) Place(b *game.Board) {
	start, ok := b.ActivePiece()
	if !ok {
		return
	}
	if best, ok := g.best(b, start); ok {
		for _, a := range best.turns {
			_, _ = b.RotateSign(a, 1)
		}
		walk(b, best.dx, best.dy)
	}
	b.Drop()
}

func (g *Greedy) best(b *game.Board, start piece.Piece) (placement, bool) {
	dims := b.Dimensions()
	var (
		best  placement
		found bool
	)
	seen := map[string]bool{}
	for _, turns := range turnSequences() {
		p, ok := rotated(b, start, turns)
		if !ok {
			continue
		}
		for dx := -dims.X; dx <= dims.X; dx++ {
			for dy := -dims.Y; dy <= dims.Y; dy++ {
				q, ok := shifted(b, p, dx, dy)
				if !ok {
					continue
				}
				landed := land(b, q)
				key := landingKey(landed)
				if seen[key] {
					continue
				}
				seen[key] = true

				score := g.evaluate(b, landed)
				if !found || score > best.score {
					best = placement{turns: turns, dx: dx, dy: dy, score: score}
					found = true
				}
			}
		}
	}
	return best, found
}

// turnSequences lists 0-3 turns about x, then y, then z.
func turnSequences() [][]geom.Axis {
	var out [][]geom.Axis
	for rx := range 4 {
		for ry := range 4 {
			for rz := range 4 {
				var seq []geom.Axis
				for range rx {
					seq = append(seq, geom.X)
				}
				for range ry {
					seq = append(seq, geom.Y)
				}
				for range rz {
					seq = append(seq, geom.Z)
				}
				out = append(out, seq)
			}
		}
	}
	return out
}

// rotated replays the board's rotate control on a copy.
func rotated(b *game.Board, p piece.Piece, turns []geom.Axis) (piece.Piece, bool) {
	p = p.Copy()
	for _, a := range turns {
		next := p.Copy()
		next.Rotate(a, 1)
		next.ClampIntoBounds(b.Dimensions())
		if !b.PieceFits(next) {
			return p, false
		}
		p = next
	}
	return p, true
}

// shifted replays unit MoveXY steps, x first, on a copy.
func shifted(b *game.Board, p piece.Piece, dx, dy int) (piece.Piece, bool) {
	p = p.Copy()
	for _, step := range steps(dx, dy) {
		p.Translate(step.X, step.Y, 0)
		if !b.PieceFits(p) {
			return p, false
		}
	}
	return p, true
}

func walk(b *game.Board, dx, dy int) {
	for _, step := range steps(dx, dy) {
		b.MoveXY(step.X, step.Y)
	}
}

func steps(dx, dy int) []geom.Coord {
	var out []geom.Coord
	for range abs(dx) {
		out = append(out, geom.C(sign(dx), 0, 0))
	}
	for range abs(dy) {
		out = append(out, geom.C(0, sign(dy), 0))
	}
	return out
}

func land(b *game.Board, p piece.Piece) []geom.Block {
	for {
		next := p.Copy()
		next.Translate(0, 0, -1)
		if !b.PieceFits(next) {
			return p.WorldBlocks()
		}
		p = next
	}
}

func landingKey(blocks []geom.Block) string {
	coords := make([]string, len(blocks))
	for i, blk := range blocks {
		coords[i] = blk.Pos.String()
	}
	slices.Sort(coords)
	return strings.Join(coords, "")
}

func (g *Greedy) evaluate(b *game.Board, landed []geom.Block) float64 {
	dims := b.Dimensions()
	added := make(map[geom.Coord]bool, len(landed))
	perLayer := make([]int, dims.Z)
	for _, blk := range landed {
		added[blk.Pos] = true
		perLayer[blk.Pos.Z]++
	}
	occupied := func(c geom.Coord) bool {
		if added[c] {
			return true
		}
		_, ok := b.Occupied(c)
		return ok
	}

	lines := 0
	for z := range dims.Z {
		if perLayer[z] > 0 && b.LayerFill(z)+perLayer[z] == dims.X*dims.Y {
			lines++
		}
	}

	heights := make([]int, dims.X*dims.Y)
	holes := 0
	for y := range dims.Y {
		for x := range dims.X {
			h := 0
			for z := dims.Z - 1; z >= 0; z-- {
				if occupied(geom.C(x, y, z)) {
					if h == 0 {
						h = z + 1
					}
				} else if h > 0 {
					holes++
				}
			}
			heights[y*dims.X+x] = h
		}
	}

	aggregate, bumpiness := 0, 0
	for y := range dims.Y {
		for x := range dims.X {
			h := heights[y*dims.X+x]
			aggregate += h
			if x+1 < dims.X {
				bumpiness += abs(h - heights[y*dims.X+x+1])
			}
			if y+1 < dims.Y {
				bumpiness += abs(h - heights[(y+1)*dims.X+x])
			}
		}
	}

	// Every column is occupied in a full layer, so each clear lowers every
	// column by one.
	aggregate -= lines * dims.X * dims.Y

	w := g.Weights
	return w.Lines*float64(lines) + w.Height*float64(aggregate) +
		w.Holes*float64(holes) + w.Bumpiness*float64(bumpiness)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

var (
	_ Player = (*Random)(nil)
	_ Player = (*Greedy)(nil)
)
