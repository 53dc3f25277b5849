package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/geom"
)

// ReadJSON decodes a snapshot from r.
//
// ReadJSON returns an INVALID_SNAPSHOT error if:
//   - The JSON is malformed or has unknown fields
//   - The dimensions are not valid board dimensions
//   - A block lies outside the board
//   - Two cemented blocks share a cell
//   - An active block overlaps a cemented one, or the game is over but an
//     active piece is present
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Snapshot, error) {
	var data snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode")
	}

	dims := geom.C(data.Dims[0], data.Dims[1], data.Dims[2])
	if err := errors.ValidateDimensions(dims.X, dims.Y, dims.Z); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "dims")
	}

	s := &Snapshot{
		ID:            data.ID,
		Board:         data.Board,
		Dims:          dims,
		Score:         data.Score,
		LayersCleared: data.LayersCleared,
		Pieces:        data.Pieces,
		Over:          data.Over,
	}

	occupied := make(map[geom.Coord]bool, len(data.Cemented))
	for _, b := range data.Cemented {
		blk, err := fromWire(b, dims)
		if err != nil {
			return nil, fmt.Errorf("cemented: %w", err)
		}
		if occupied[blk.Pos] {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "cemented: two blocks at %v", blk.Pos)
		}
		occupied[blk.Pos] = true
		s.Cemented = append(s.Cemented, blk)
	}

	if data.Over && len(data.Active) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "finished game has an active piece")
	}
	for _, b := range data.Active {
		blk, err := fromWire(b, dims)
		if err != nil {
			return nil, fmt.Errorf("active: %w", err)
		}
		if occupied[blk.Pos] {
			return nil, errors.New(errors.ErrCodeInvalidSnapshot, "active: block at %v overlaps the stack", blk.Pos)
		}
		s.Active = append(s.Active, blk)
	}
	return s, nil
}

func fromWire(b block, dims geom.Coord) (geom.Block, error) {
	c := geom.C(b.Pos[0], b.Pos[1], b.Pos[2])
	for _, a := range geom.Axes {
		if v := c.Get(a); v < 0 || v >= dims.Get(a) {
			return geom.Block{}, errors.New(errors.ErrCodeInvalidSnapshot, "block %v outside board %v", c, dims)
		}
	}
	return geom.Block{Pos: c, Material: geom.Material(b.Material)}, nil
}

// ImportJSON reads a snapshot file at path.
//
// ImportJSON returns the same validation errors as [ReadJSON]. A missing
// file is reported as FILE_NOT_FOUND.
func ImportJSON(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
