package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cubetris/pkg/catalog"
	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/geom"
)

func TestDefaultCatalog(t *testing.T) {
	c := catalog.Default()
	require.Equal(t, 8, c.Len())

	names := make([]string, 0, c.Len())
	for _, s := range c.Shapes {
		names = append(names, s.Name)
		assert.Len(t, s.Blocks, 4, s.Name)
	}
	assert.Equal(t, []string{"S", "I", "L", "T", "O", "screw-right", "screw-left", "branch"}, names)

	i, ok := c.Lookup("I")
	require.True(t, ok)
	assert.Equal(t, []geom.Coord{
		geom.C(-1, 0, 0), geom.C(0, 0, 0), geom.C(1, 0, 0), geom.C(2, 0, 0),
	}, i.Coords())

	_, ok = c.Lookup("Z")
	assert.False(t, ok)
}

func TestShapePiece(t *testing.T) {
	s, _ := catalog.Default().Lookup("O")
	p := s.Piece(4)
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, geom.C(0, 0, 0), p.Center())
	for _, b := range p.WorldBlocks() {
		assert.Equal(t, geom.Material(4), b.Material)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid",
			data: "shapes:\n  - name: bar\n    blocks: [[0,0,0],[0,0,1]]\n",
		},
		{
			name:    "not yaml",
			data:    "shapes: [",
			wantErr: true,
		},
		{
			name:    "no shapes",
			data:    "shapes: []\n",
			wantErr: true,
		},
		{
			name:    "unknown field",
			data:    "shapes:\n  - name: bar\n    blocks: [[0,0,0]]\n    colour: red\n",
			wantErr: true,
		},
		{
			name:    "offset with two components",
			data:    "shapes:\n  - name: bar\n    blocks: [[0,0]]\n",
			wantErr: true,
		},
		{
			name:    "fractional offset",
			data:    "shapes:\n  - name: bar\n    blocks: [[0,0.5,0]]\n",
			wantErr: true,
		},
		{
			name:    "duplicate names",
			data:    "shapes:\n  - name: a\n    blocks: [[0,0,0]]\n  - name: a\n    blocks: [[0,0,0]]\n",
			wantErr: true,
		},
		{
			name:    "bad name",
			data:    "shapes:\n  - name: \"1x\"\n    blocks: [[0,0,0]]\n",
			wantErr: true,
		},
		{
			name:    "repeated offset",
			data:    "shapes:\n  - name: a\n    blocks: [[0,0,0],[0,0,0]]\n",
			wantErr: true,
		},
		{
			name:    "disconnected",
			data:    "shapes:\n  - name: a\n    blocks: [[0,0,0],[2,0,0]]\n",
			wantErr: true,
		},
		{
			name:    "diagonal only",
			data:    "shapes:\n  - name: a\n    blocks: [[0,0,0],[1,1,0]]\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catalog.Parse([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidCatalog), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, c.Len())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shapes:\n  - name: dot\n    blocks: [[0,0,0]]\n"), 0o644))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dot", c.Shapes[0].Name)

	_, err = catalog.Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestRandomGeneratorIsDeterministic(t *testing.T) {
	c := catalog.Default()
	a := catalog.NewGenerator(c, 42, 0)
	b := catalog.NewGenerator(c, 42, 0)

	for range 50 {
		pa, pb := a.Next(), b.Next()
		assert.Equal(t, pa.WorldBlocks(), pb.WorldBlocks())
	}
}

func TestRandomGeneratorReturnsFreshPieces(t *testing.T) {
	g := catalog.NewGenerator(catalog.Default(), 7, 3)
	seen := map[string]bool{}
	for range 200 {
		p := g.Next()
		assert.Equal(t, geom.C(0, 0, 0), p.Center())
		assert.Equal(t, 4, p.Len())

		m := p.WorldBlocks()[0].Material
		assert.GreaterOrEqual(t, int(m), 0)
		assert.Less(t, int(m), 3)

		// Mutating one piece never affects the next.
		p.Translate(5, 5, 5)
		p.Rotate(geom.X, 1)
		seen[p.String()] = true
	}
	assert.NotEmpty(t, seen)
}

func TestRandomGeneratorCoversCatalog(t *testing.T) {
	c := catalog.Default()
	g := catalog.NewGenerator(c, 1, 1)

	shapes := map[string]bool{}
	for range 500 {
		p := g.Next()
		for _, s := range c.Shapes {
			if assert.ObjectsAreEqual(s.Piece(0).LocalBlocks(), p.LocalBlocks()) {
				shapes[s.Name] = true
			}
		}
	}
	assert.Len(t, shapes, c.Len())
}

func TestSequenceAndRepeat(t *testing.T) {
	c := catalog.Default()
	i, _ := c.Lookup("I")
	o, _ := c.Lookup("O")

	seq := catalog.Sequence(i.Piece(0), o.Piece(1))
	assert.Equal(t, i.Piece(0).LocalBlocks(), seq.Next().LocalBlocks())
	assert.Equal(t, o.Piece(1).LocalBlocks(), seq.Next().LocalBlocks())
	assert.Equal(t, i.Piece(0).LocalBlocks(), seq.Next().LocalBlocks())

	rep := catalog.Repeat(o.Piece(2))
	first := rep.Next()
	first.Rotate(geom.Z, 1)
	assert.Equal(t, o.Piece(2).LocalBlocks(), rep.Next().LocalBlocks())

	assert.Panics(t, func() { catalog.Sequence() })
}
