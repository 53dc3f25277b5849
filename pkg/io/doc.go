// Package io provides JSON export and import of board snapshots.
//
// # Overview
//
// A snapshot is a point-in-time dump of a board: its dimensions, score,
// active piece and cemented blocks. The format is meant for:
//
//   - Inspecting the end state of headless simulations
//   - Feeding external renderers and analysis scripts
//   - Golden files in tests
//
// Snapshots are an output format. There is no way to resume a game from one.
//
// # JSON Format
//
//	{
//	  "id": "5f0c...",
//	  "board": "9b1e...",
//	  "dims": [5, 5, 14],
//	  "score": 204,
//	  "layers_cleared": 2,
//	  "pieces": 4,
//	  "over": false,
//	  "active": [{"pos": [3, 3, 12], "material": 4}],
//	  "cemented": [{"pos": [1, 1, 0], "material": 2}]
//	}
//
// id identifies the snapshot itself, board the game session it was taken
// from. Cemented blocks are listed in grid index order (by z, then y, then x).
//
// # Export
//
// Use [ExportJSON] to write a board to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	err := io.ExportJSON(board, "final.json")
//
// # Import
//
// Use [ImportJSON] or [ReadJSON] to load a snapshot back. Both validate that
// every block lies inside the board, that no two cemented blocks share a
// cell and that the active piece does not overlap the stack.
package io
