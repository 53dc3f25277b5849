// Package catalog defines the polycube shapes pieces are built from and the
// random generator that hands out one fresh piece per call.
//
// The default catalog is embedded static data (shapes.yaml): the five planar
// tetrominoes lifted into 3D plus three non-planar tetracubes. Custom
// catalogs use the same YAML layout:
//
//	shapes:
//	  - name: I
//	    blocks: [[-1, 0, 0], [0, 0, 0], [1, 0, 0], [2, 0, 0]]
//
// Catalog files are checked against an embedded JSON Schema before decoding,
// then validated for unique names, distinct offsets and face connectivity.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/geom"
	"github.com/matzehuels/cubetris/pkg/piece"
)

//go:embed shapes.yaml
var defaultShapes []byte

//go:embed catalog.schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("catalog.schema.json", schemaSource)

// Shape is a named polycube in local offsets.
type Shape struct {
	Name   string   `yaml:"name" json:"name"`
	Blocks [][3]int `yaml:"blocks" json:"blocks"`
}

// Coords returns the shape's offsets as coordinates.
func (s Shape) Coords() []geom.Coord {
	out := make([]geom.Coord, len(s.Blocks))
	for i, b := range s.Blocks {
		out[i] = geom.C(b[0], b[1], b[2])
	}
	return out
}

// Piece builds a fresh piece at the origin with every block tagged m.
func (s Shape) Piece(m geom.Material) piece.Piece {
	return piece.FromCoords(s.Coords(), m)
}

// Catalog is an ordered set of shapes.
type Catalog struct {
	Shapes []Shape `yaml:"shapes" json:"shapes"`
}

// Len returns the number of shapes.
func (c Catalog) Len() int { return len(c.Shapes) }

// Lookup returns the shape with the given name.
func (c Catalog) Lookup(name string) (Shape, bool) {
	for _, s := range c.Shapes {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}

// Default returns the embedded catalog. It panics if the embedded data is
// broken, which only a bad edit to shapes.yaml can cause.
func Default() Catalog {
	c, err := Parse(defaultShapes)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded shapes: %v", err))
	}
	return c
}

// Load reads and parses a YAML catalog file.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Catalog{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog, checks it against the catalog schema and
// validates the shapes.
func Parse(data []byte) (Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode yaml")
	}
	doc, err := toJSONValue(raw)
	if err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "convert yaml")
	}
	if err := schema.Validate(doc); err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "schema")
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode shapes")
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// toJSONValue round-trips a decoded YAML value through encoding/json so the
// schema validator sees the same types it would for a JSON document.
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks that the catalog is non-empty, names are valid and unique,
// and every shape is a face-connected set of distinct offsets.
func (c Catalog) Validate() error {
	if len(c.Shapes) == 0 {
		return errors.New(errors.ErrCodeInvalidCatalog, "catalog has no shapes")
	}
	seen := make(map[string]bool, len(c.Shapes))
	for _, s := range c.Shapes {
		if err := errors.ValidateShapeName(s.Name); err != nil {
			return err
		}
		if seen[s.Name] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate shape name %q", s.Name)
		}
		seen[s.Name] = true
		if err := validateShape(s); err != nil {
			return err
		}
	}
	return nil
}

func validateShape(s Shape) error {
	if len(s.Blocks) == 0 {
		return errors.New(errors.ErrCodeInvalidCatalog, "shape %q has no blocks", s.Name)
	}
	cells := make(map[geom.Coord]bool, len(s.Blocks))
	for _, c := range s.Coords() {
		if cells[c] {
			return errors.New(errors.ErrCodeInvalidCatalog, "shape %q repeats offset %v", s.Name, c)
		}
		cells[c] = true
	}
	if !connected(cells) {
		return errors.New(errors.ErrCodeInvalidCatalog, "shape %q is not face-connected", s.Name)
	}
	return nil
}

var neighbours = []geom.Coord{
	geom.C(1, 0, 0), geom.C(-1, 0, 0),
	geom.C(0, 1, 0), geom.C(0, -1, 0),
	geom.C(0, 0, 1), geom.C(0, 0, -1),
}

// connected reports whether cells form one face-connected component.
func connected(cells map[geom.Coord]bool) bool {
	var start geom.Coord
	for c := range cells {
		start = c
		break
	}
	visited := map[geom.Coord]bool{start: true}
	queue := []geom.Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range neighbours {
			n := cur.Add(d)
			if cells[n] && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(cells)
}
