package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/cubetris/pkg/game"
	"github.com/matzehuels/cubetris/pkg/geom"
)

// Snapshot is a decoded board dump.
type Snapshot struct {
	ID            string
	Board         string
	Dims          geom.Coord
	Score         int
	LayersCleared int
	Pieces        int
	Over          bool
	Active        []geom.Block
	Cemented      []geom.Block
}

type snapshot struct {
	ID            string  `json:"id"`
	Board         string  `json:"board"`
	Dims          [3]int  `json:"dims"`
	Score         int     `json:"score"`
	LayersCleared int     `json:"layers_cleared"`
	Pieces        int     `json:"pieces"`
	Over          bool    `json:"over"`
	Active        []block `json:"active"`
	Cemented      []block `json:"cemented"`
}

type block struct {
	Pos      [3]int `json:"pos"`
	Material int    `json:"material"`
}

// Capture takes a snapshot of b under a fresh ID.
func Capture(b *game.Board) Snapshot {
	return Snapshot{
		ID:            uuid.NewString(),
		Board:         b.ID(),
		Dims:          b.Dimensions(),
		Score:         b.Score(),
		LayersCleared: b.LayersCleared(),
		Pieces:        b.PiecesSpawned(),
		Over:          b.IsOver(),
		Active:        b.ActiveBlocks(),
		Cemented:      b.CementedBlocks(),
	}
}

func toWire(s Snapshot) snapshot {
	return snapshot{
		ID:            s.ID,
		Board:         s.Board,
		Dims:          [3]int{s.Dims.X, s.Dims.Y, s.Dims.Z},
		Score:         s.Score,
		LayersCleared: s.LayersCleared,
		Pieces:        s.Pieces,
		Over:          s.Over,
		Active:        toWireBlocks(s.Active),
		Cemented:      toWireBlocks(s.Cemented),
	}
}

func toWireBlocks(blocks []geom.Block) []block {
	out := make([]block, len(blocks))
	for i, b := range blocks {
		out[i] = block{Pos: [3]int{b.Pos.X, b.Pos.Y, b.Pos.Z}, Material: int(b.Material)}
	}
	return out
}

// WriteSnapshot encodes s as indented JSON and writes it to w.
func WriteSnapshot(s Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSON captures b and writes the snapshot to w.
// The output can be read back with [ReadJSON].
func WriteJSON(b *game.Board, w io.Writer) error {
	return WriteSnapshot(Capture(b), w)
}

// ExportJSON writes a snapshot of b to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(b *game.Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(b, f)
}
