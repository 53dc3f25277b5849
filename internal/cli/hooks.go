package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cubetris/pkg/geom"
	"github.com/matzehuels/cubetris/pkg/observability"
)

// logHooks forwards board and autoplay events to the CLI logger at debug
// level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

// shortID trims a session UUID for log lines.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (h *logHooks) OnSpawn(board string, blocks []geom.Block) {
	h.logger.Debug("spawn", "board", shortID(board), "blocks", len(blocks))
}

func (h *logHooks) OnCement(board string, blocks []geom.Block) {
	h.logger.Debug("cement", "board", shortID(board), "blocks", len(blocks))
}

func (h *logHooks) OnLayersCleared(board string, layers, score int) {
	h.logger.Debug("layers cleared", "board", shortID(board), "layers", layers, "score", score)
}

func (h *logHooks) OnGameOver(board string, score int) {
	h.logger.Debug("game over", "board", shortID(board), "score", score)
}

func (h *logHooks) OnRunStart(_ context.Context, board, player string) {
	h.logger.Debug("run start", "board", shortID(board), "player", player)
}

func (h *logHooks) OnRunComplete(_ context.Context, board string, pieces, score int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("run stopped", "board", shortID(board), "pieces", pieces, "err", err)
		return
	}
	h.logger.Debug("run complete", "board", shortID(board), "pieces", pieces, "score", score,
		"duration", duration.Round(time.Millisecond))
}

var (
	_ observability.GameHooks = (*logHooks)(nil)
	_ observability.RunHooks  = (*logHooks)(nil)
)
