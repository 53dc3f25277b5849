package catalog

import (
	"math/rand/v2"

	"github.com/matzehuels/cubetris/pkg/geom"
	"github.com/matzehuels/cubetris/pkg/piece"
)

// DefaultMaterials is the number of material tags handed out by a generator
// when none is configured.
const DefaultMaterials = 10

// Generator produces the next piece to spawn. Each call returns a fresh piece
// the caller owns.
type Generator interface {
	Next() piece.Piece
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func() piece.Piece

// Next calls f.
func (f GeneratorFunc) Next() piece.Piece { return f() }

// Repeat returns a generator that hands out copies of p forever.
func Repeat(p piece.Piece) Generator {
	return GeneratorFunc(func() piece.Piece { return p.Copy() })
}

// Sequence returns a generator that cycles through pieces in order.
func Sequence(pieces ...piece.Piece) Generator {
	if len(pieces) == 0 {
		panic("catalog: empty sequence")
	}
	i := 0
	return GeneratorFunc(func() piece.Piece {
		p := pieces[i%len(pieces)].Copy()
		i++
		return p
	})
}

// RandomGenerator picks a shape uniformly at random per call and tags the
// piece with a uniformly random material. It keeps no state besides its
// random source.
type RandomGenerator struct {
	catalog   Catalog
	rng       *rand.Rand
	materials int
}

// NewGenerator creates a random generator over c. The same seed yields the
// same sequence of pieces. materials <= 0 selects DefaultMaterials.
func NewGenerator(c Catalog, seed uint64, materials int) *RandomGenerator {
	if materials <= 0 {
		materials = DefaultMaterials
	}
	return &RandomGenerator{
		catalog:   c,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		materials: materials,
	}
}

// Next returns a fresh piece at the origin.
func (g *RandomGenerator) Next() piece.Piece {
	s := g.catalog.Shapes[g.rng.IntN(len(g.catalog.Shapes))]
	return s.Piece(geom.Material(g.rng.IntN(g.materials)))
}

// Catalog returns the catalog the generator draws from.
func (g *RandomGenerator) Catalog() Catalog { return g.catalog }

var _ Generator = (*RandomGenerator)(nil)
