package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cubetris/pkg/catalog"
	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/game"
	"github.com/matzehuels/cubetris/pkg/geom"
	"github.com/matzehuels/cubetris/pkg/observability"
	"github.com/matzehuels/cubetris/pkg/piece"
)

var stdDims = geom.C(5, 5, 14)

func lPiece() piece.Piece {
	return piece.FromCoords([]geom.Coord{
		geom.C(0, 0, 0), geom.C(1, 0, 0), geom.C(0, 1, 0), geom.C(0, 0, 1),
	}, 1)
}

func newBoard(t *testing.T, dims geom.Coord, gen catalog.Generator, opts ...game.Option) *game.Board {
	t.Helper()
	opts = append(opts, game.WithGenerator(gen), game.WithHooks(observability.NoopGameHooks{}))
	b, err := game.New(dims, opts...)
	require.NoError(t, err)
	return b
}

func positions(blocks []geom.Block) []geom.Coord {
	out := make([]geom.Coord, len(blocks))
	for i, b := range blocks {
		out[i] = b.Pos
	}
	return out
}

func extent(blocks []geom.Block, a geom.Axis) (lo, hi int) {
	lo, hi = blocks[0].Pos.Get(a), blocks[0].Pos.Get(a)
	for _, b := range blocks[1:] {
		lo = min(lo, b.Pos.Get(a))
		hi = max(hi, b.Pos.Get(a))
	}
	return lo, hi
}

// slab returns n full dx×dy layers from z=0 plus the given extra blocks.
func slab(dx, dy, n int, extra ...geom.Coord) piece.Piece {
	var coords []geom.Coord
	for z := range n {
		for y := range dy {
			for x := range dx {
				coords = append(coords, geom.C(x, y, z))
			}
		}
	}
	return piece.FromCoords(append(coords, extra...), 2)
}

func TestSpawnPosition(t *testing.T) {
	b := newBoard(t, stdDims, catalog.Repeat(lPiece()))

	active := b.ActiveBlocks()
	require.Len(t, active, 4)

	zlo, zhi := extent(active, geom.Z)
	assert.Equal(t, 12, zlo)
	assert.Equal(t, 13, zhi)

	xlo, xhi := extent(active, geom.X)
	assert.Equal(t, 3, xlo)
	assert.Equal(t, 4, xhi)

	assert.False(t, b.IsOver())
	assert.Equal(t, stdDims, b.Dimensions())
	assert.Empty(t, b.CementedBlocks())
	assert.Equal(t, 1, b.PiecesSpawned())
	assert.NotEmpty(t, b.ID())
}

func TestMoveDownThenSideways(t *testing.T) {
	b := newBoard(t, stdDims, catalog.Repeat(lPiece()))
	before := positions(b.ActiveBlocks())

	assert.True(t, b.MoveDown())
	assert.True(t, b.MoveXY(-1, 0))

	after := positions(b.ActiveBlocks())
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Add(geom.C(-1, 0, -1)), after[i])
	}
}

func TestMoveXYRejectsLeavingBoard(t *testing.T) {
	b := newBoard(t, stdDims, catalog.Repeat(lPiece()))
	before := b.ActiveBlocks()

	// The piece spans x 3..4, so it cannot move right at all.
	assert.False(t, b.MoveXY(1, 0))
	assert.Equal(t, before, b.ActiveBlocks())

	assert.True(t, b.MoveXY(-3, 0))
	assert.False(t, b.MoveXY(-1, 0))
	xlo, _ := extent(b.ActiveBlocks(), geom.X)
	assert.Equal(t, 0, xlo)
}

func TestDropUntilOverTerminates(t *testing.T) {
	b := newBoard(t, stdDims, catalog.Repeat(lPiece()))

	drops := 0
	for !b.IsOver() {
		require.True(t, b.Drop())
		drops++
		require.Less(t, drops, stdDims.Volume(), "game never ended")
	}

	assert.Empty(t, b.ActiveBlocks())
	assert.False(t, b.MoveDown())
	assert.False(t, b.MoveXY(1, 0))
	ok, err := b.Rotate("x", "cw")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, b.Drop())
}

func TestTwoFullLayersClearInOneCascade(t *testing.T) {
	gen := catalog.Repeat(slab(5, 5, 2, geom.C(1, 1, 2)))
	b := newBoard(t, stdDims, gen)

	b.Drop()
	cemented := b.CementedBlocks()
	require.Len(t, cemented, 1)
	assert.Equal(t, geom.C(1, 1, 0), cemented[0].Pos)
	assert.Equal(t, 2, b.LayersCleared())

	// The next slab rests on (1,1,0) at z 1..3; both of its full layers
	// clear and its extra block slides down onto the first one.
	b.Drop()
	assert.Equal(t, []geom.Coord{geom.C(1, 1, 0), geom.C(1, 1, 1)}, positions(b.CementedBlocks()))
	assert.Equal(t, 4, b.LayersCleared())
	assert.Equal(t, 3+4*game.DefaultLayerBonus, b.Score())
}

func TestLayerClearShiftsBlocksDown(t *testing.T) {
	p := slab(2, 2, 1)
	blocks := p.LocalBlocks()
	blocks = append(blocks,
		geom.Block{Pos: geom.C(0, 0, 1), Material: 5},
		geom.Block{Pos: geom.C(1, 1, 1), Material: 6},
		geom.Block{Pos: geom.C(1, 1, 2), Material: 7},
	)
	b := newBoard(t, geom.C(2, 2, 5), catalog.Repeat(piece.New(blocks)))

	b.Drop()

	assert.Equal(t, []geom.Block{
		{Pos: geom.C(0, 0, 0), Material: 5},
		{Pos: geom.C(1, 1, 0), Material: 6},
		{Pos: geom.C(1, 1, 1), Material: 7},
	}, b.CementedBlocks())
	assert.Equal(t, 0, b.LayerFill(4))
	assert.Equal(t, 2, b.LayerFill(0))
	assert.Equal(t, 1, b.LayersCleared())
	assert.Equal(t, 2*game.DefaultSpawnBonus+game.DefaultLayerBonus, b.Score())

	blk, ok := b.Occupied(geom.C(1, 1, 1))
	require.True(t, ok)
	assert.Equal(t, geom.Material(7), blk.Material)
	_, ok = b.Occupied(geom.C(0, 0, 1))
	assert.False(t, ok)
	_, ok = b.Occupied(geom.C(-1, 0, 0))
	assert.False(t, ok)
}

func TestCementingConservesMass(t *testing.T) {
	b, err := game.New(stdDims, game.WithSeed(99), game.WithHooks(observability.NoopGameHooks{}))
	require.NoError(t, err)

	moves := []int{-2, -1, 0, 1, 2}
	for i := 0; !b.IsOver(); i++ {
		require.Less(t, i, 1000)

		b.MoveXY(moves[i%len(moves)], moves[(i/2)%len(moves)])
		_, err := b.RotateSign(geom.Axes[i%3], 1)
		require.NoError(t, err)

		before := len(b.CementedBlocks())
		clearedBefore := b.LayersCleared()
		n := len(b.ActiveBlocks())

		b.Drop()

		cleared := b.LayersCleared() - clearedBefore
		assert.Equal(t, before+n-cleared*stdDims.X*stdDims.Y, len(b.CementedBlocks()))
	}
}

func TestCementedBlocksAreIndexOrdered(t *testing.T) {
	b, err := game.New(stdDims, game.WithSeed(5), game.WithHooks(observability.NoopGameHooks{}))
	require.NoError(t, err)
	for range 6 {
		b.Drop()
	}

	index := func(c geom.Coord) int { return c.Z*stdDims.X*stdDims.Y + c.Y*stdDims.X + c.X }
	cemented := b.CementedBlocks()
	require.NotEmpty(t, cemented)
	for i := 1; i < len(cemented); i++ {
		assert.Less(t, index(cemented[i-1].Pos), index(cemented[i].Pos))
	}
}

func TestGameOverWhenSpawnBlocked(t *testing.T) {
	rec := &recorder{}
	cube := piece.FromCoords([]geom.Coord{geom.C(0, 0, 0)}, 0)
	b, err := game.New(geom.C(2, 1, 2),
		game.WithGenerator(catalog.Repeat(cube)),
		game.WithHooks(rec))
	require.NoError(t, err)

	b.Drop() // lands at (1,0,0)
	assert.False(t, b.IsOver())
	b.Drop() // rests on it at (1,0,1), so the spawn cell is taken

	assert.True(t, b.IsOver())
	assert.Empty(t, b.ActiveBlocks())
	_, ok := b.ActivePiece()
	assert.False(t, ok)
	assert.Equal(t, 1, rec.overs)
	assert.Equal(t, 2, rec.cements)
	assert.Equal(t, 2, rec.spawns)
	assert.Equal(t, 2, b.Score())
}

func TestPieceFits(t *testing.T) {
	b := newBoard(t, geom.C(2, 2, 3), catalog.Repeat(slab(2, 2, 1, geom.C(0, 0, 1))))
	b.Drop() // leaves (0,0,0)

	tests := []struct {
		name string
		p    piece.Piece
		want bool
	}{
		{"empty cells", piece.At(geom.C(1, 1, 0), []geom.Block{{}}), true},
		{"occupied cell", piece.At(geom.C(0, 0, 0), []geom.Block{{}}), false},
		{"below floor", piece.At(geom.C(1, 1, -1), []geom.Block{{}}), false},
		{"above ceiling", piece.At(geom.C(1, 1, 3), []geom.Block{{}}), false},
		{"one block out", piece.At(geom.C(1, 1, 1), []geom.Block{{}, {Pos: geom.C(1, 0, 0)}}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.PieceFits(tt.p))
		})
	}
	assert.True(t, b.BlockFits(geom.C(1, 0, 0)))
	assert.False(t, b.BlockFits(geom.C(0, 0, 0)))
	assert.False(t, b.InBounds(geom.C(2, 0, 0)))
}

func TestRotate(t *testing.T) {
	b := newBoard(t, stdDims, catalog.Repeat(lPiece()))

	for _, tok := range []struct{ axis, dir string }{
		{"x", "cw"}, {"Y", "CCW"}, {"z", "clockwise"}, {"x", "counter-clockwise"}, {"y", "-1"}, {"z", "+1"},
	} {
		ok, err := b.Rotate(tok.axis, tok.dir)
		require.NoError(t, err)
		assert.True(t, ok, "%s %s", tok.axis, tok.dir)
		for _, blk := range b.ActiveBlocks() {
			assert.True(t, b.InBounds(blk.Pos))
		}
	}
}

func TestRotateInvalidTokens(t *testing.T) {
	b := newBoard(t, stdDims, catalog.Repeat(lPiece()))
	before := b.ActiveBlocks()

	_, err := b.Rotate("w", "cw")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidAxis))

	_, err = b.Rotate("x", "sideways")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDirection))

	_, err = b.RotateSign(geom.Axis(7), 1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidAxis))

	_, err = b.RotateSign(geom.Y, 0)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDirection))

	assert.Equal(t, before, b.ActiveBlocks())
}

func TestRotateRejectedWhenClampCannotFit(t *testing.T) {
	bar := piece.FromCoords([]geom.Coord{
		geom.C(-1, 0, 0), geom.C(0, 0, 0), geom.C(1, 0, 0), geom.C(2, 0, 0),
	}, 0)
	b := newBoard(t, geom.C(4, 1, 3), catalog.Repeat(bar))
	before := b.ActiveBlocks()

	// Standing the bar up along y needs depth 4 but the board has depth 1.
	ok, err := b.RotateSign(geom.Z, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, b.ActiveBlocks())

	// Standing it up along z needs height 4 but the board has height 3.
	ok, err = b.RotateSign(geom.Y, -1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTick(t *testing.T) {
	b := newBoard(t, stdDims, catalog.Repeat(lPiece()))
	zlo, _ := extent(b.ActiveBlocks(), geom.Z)

	// A huge frame counts as one max frame.
	assert.False(t, b.Tick(5000))
	assert.False(t, b.Tick(-40))
	for range 8 {
		assert.False(t, b.Tick(100))
	}
	assert.True(t, b.Tick(100))

	got, _ := extent(b.ActiveBlocks(), geom.Z)
	assert.Equal(t, zlo-1, got)

	// The accumulator restarted.
	assert.False(t, b.Tick(100))
}

func TestTickCementsAtTheBottom(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.FallIntervalMs = 10
	cfg.MaxFrameMs = 10
	b := newBoard(t, geom.C(3, 3, 4), catalog.Repeat(lPiece()), game.WithConfig(cfg))

	// The L spawns at z 2..3: two falls reach the floor, the third cements.
	assert.True(t, b.Tick(10))
	assert.True(t, b.Tick(10))
	assert.Empty(t, b.CementedBlocks())
	assert.True(t, b.Tick(10))
	assert.Len(t, b.CementedBlocks(), 4)
	assert.Equal(t, 2, b.PiecesSpawned())
	assert.False(t, b.IsOver())
}

func TestTickOnFinishedGame(t *testing.T) {
	cube := piece.FromCoords([]geom.Coord{geom.C(0, 0, 0)}, 0)
	b := newBoard(t, geom.C(2, 1, 1), catalog.Sequence(cube, slab(2, 1, 1)))
	b.Drop() // (1,0,0); the slab cannot spawn
	require.True(t, b.IsOver())
	assert.False(t, b.Tick(100000))
}

func TestRandomSpawnStaysInBounds(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.SpawnMode = game.SpawnRandom
	cfg.RandomOrientation = true
	b, err := game.New(stdDims, game.WithConfig(cfg), game.WithSeed(3), game.WithHooks(observability.NoopGameHooks{}))
	require.NoError(t, err)

	for i := 0; i < 200 && !b.IsOver(); i++ {
		for _, blk := range b.ActiveBlocks() {
			require.True(t, b.InBounds(blk.Pos))
		}
		b.Drop()
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() []geom.Block {
		b, err := game.New(stdDims, game.WithSeed(1234), game.WithHooks(observability.NoopGameHooks{}))
		require.NoError(t, err)
		for range 10 {
			b.MoveXY(-1, 1)
			b.Drop()
		}
		return b.CementedBlocks()
	}
	assert.Equal(t, play(), play())
}

func TestNewValidation(t *testing.T) {
	_, err := game.New(geom.C(0, 5, 5))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDimensions))

	cfg := game.DefaultConfig()
	cfg.LayerBonus = -1
	_, err = game.New(stdDims, game.WithConfig(cfg))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	cfg = game.DefaultConfig()
	cfg.SpawnMode = "corner"
	_, err = game.New(stdDims, game.WithConfig(cfg))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = game.New(stdDims, game.WithCatalog(catalog.Catalog{}))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidCatalog))
}

func TestCustomCatalog(t *testing.T) {
	c, err := catalog.Parse([]byte("shapes:\n  - name: dot\n    blocks: [[0,0,0]]\n"))
	require.NoError(t, err)

	b, err := game.New(stdDims, game.WithCatalog(c), game.WithSeed(1), game.WithHooks(observability.NoopGameHooks{}))
	require.NoError(t, err)
	assert.Len(t, b.ActiveBlocks(), 1)
	assert.NotZero(t, b.Config().Seed)
}

func TestActivePieceIsACopy(t *testing.T) {
	b := newBoard(t, stdDims, catalog.Repeat(lPiece()))
	p, ok := b.ActivePiece()
	require.True(t, ok)

	assert.Equal(t, b.ActiveBlocks(), p.WorldBlocks())

	p.Translate(-10, 0, 0)
	assert.NotEqual(t, p.WorldBlocks(), b.ActiveBlocks())
}

type recorder struct {
	spawns, cements, overs, layers int
}

func (r *recorder) OnSpawn(string, []geom.Block)       { r.spawns++ }
func (r *recorder) OnCement(string, []geom.Block)      { r.cements++ }
func (r *recorder) OnLayersCleared(_ string, n, _ int) { r.layers += n }
func (r *recorder) OnGameOver(string, int)             { r.overs++ }
