package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cubetris/pkg/autoplay"
	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/game"
	cubeio "github.com/matzehuels/cubetris/pkg/io"
)

// Players accepted by --player.
const (
	playerGreedy = "greedy"
	playerRandom = "random"
)

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	boardOpts
	games     int
	player    string
	maxPieces int
	export    string
}

// simulateCommand creates the simulate command for headless autoplay runs.
func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOpts{games: 1, player: playerGreedy}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run autoplay games and report statistics",
		Long: `Run autoplay games and report statistics.

Each game gets its own board. With a fixed --seed, game i uses seed+i so a
run is reproducible; otherwise every board picks a time-derived seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd.Context(), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&opts.games, "games", "n", opts.games, "number of games")
	cmd.Flags().StringVarP(&opts.player, "player", "p", opts.player, "player: greedy, random")
	cmd.Flags().IntVar(&opts.maxPieces, "max-pieces", 0, "stop each game after this many pieces (0 = until game over)")
	cmd.Flags().StringVarP(&opts.export, "export", "o", "", "write a JSON snapshot of the best board")

	return cmd
}

// gameResult is one finished simulation.
type gameResult struct {
	seed  uint64
	stats autoplay.Stats
	board *game.Board
}

func (c *CLI) runSimulate(ctx context.Context, opts *simulateOpts) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidatePositive("games", opts.games); err != nil {
		return err
	}
	if _, err := newPlayer(opts.player, 0); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(&cfg); err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Simulating %d %s game(s)...", opts.games, opts.player))
	spinner.Start()

	newBoard := func(seed uint64) (*game.Board, error) {
		gc := cfg
		gc.Game.Seed = seed
		return c.newBoard(gc)
	}
	report := func(done int) {
		spinner.SetMessage("Simulating %s games... %d/%d", opts.player, done, opts.games)
	}
	results, err := c.simulate(ctx, cfg.Game.Seed, opts, newBoard, report)
	if err != nil {
		spinner.StopWithError("Simulation stopped")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Simulated %d games", len(results)))

	fmt.Println(renderResults(results))
	printNewline()
	printSummary(results)
	if n := unfinished(results); n > 0 {
		printWarning("%d of %d games stopped at the piece limit", n, len(results))
	}

	best := bestResult(results)
	if opts.export != "" {
		if err := cubeio.ExportJSON(best.board, opts.export); err != nil {
			return err
		}
		printSuccess("Best board exported")
		printFile(opts.export)
	}
	printNewline()
	printNextStep("Replay the best seed", fmt.Sprintf("%s play --seed %d", appName, best.seed))
	return nil
}

// simulate plays opts.games games on boards from newBoard, calling report
// (if set) after each one. A zero base seed leaves seeding to the board.
func (c *CLI) simulate(ctx context.Context, base uint64, opts *simulateOpts,
	newBoard func(seed uint64) (*game.Board, error), report func(done int)) ([]gameResult, error) {
	logger := loggerFromContext(ctx)
	results := make([]gameResult, 0, opts.games)
	for i := range opts.games {
		seed := base
		if base != 0 {
			seed = base + uint64(i)
		}
		b, err := newBoard(seed)
		if err != nil {
			return nil, err
		}
		seed = b.Config().Seed

		p, err := newPlayer(opts.player, seed)
		if err != nil {
			return nil, err
		}
		stats, err := autoplay.Run(ctx, b, p, opts.maxPieces)
		if err != nil {
			return nil, err
		}
		logger.Debug("game finished", "game", i+1, "seed", seed, "score", stats.Score, "layers", stats.Layers)
		results = append(results, gameResult{seed: seed, stats: stats, board: b})
		if report != nil {
			report(len(results))
		}
	}
	return results, nil
}

// newPlayer builds the named autoplay player.
func newPlayer(name string, seed uint64) (autoplay.Player, error) {
	switch strings.ToLower(name) {
	case playerGreedy:
		return autoplay.NewGreedy(), nil
	case playerRandom:
		return autoplay.NewRandom(seed), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown player %q (want %s or %s)", name, playerGreedy, playerRandom)
	}
}

// bestResult returns the highest-scoring result, the first one on ties.
func bestResult(results []gameResult) gameResult {
	best := results[0]
	for _, r := range results[1:] {
		if r.stats.Score > best.stats.Score {
			best = r
		}
	}
	return best
}

// unfinished counts the games that stopped before game over.
func unfinished(results []gameResult) int {
	n := 0
	for _, r := range results {
		if !r.stats.Over {
			n++
		}
	}
	return n
}

// renderResults draws one table row per game.
func renderResults(results []gameResult) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		s := r.stats
		status := "—"
		if s.Over {
			status = "over"
		}
		rows[i] = []string{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.seed),
			fmt.Sprint(s.Pieces),
			fmt.Sprint(s.Layers),
			fmt.Sprint(s.Score),
			clearsString(s),
			status,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Seed", "Pieces", "Layers", "Score", "Clears", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 4:
				return StyleNumber
			case col == 1 || col == 6:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// clearsString formats a clear histogram as "1×4 2×1".
func clearsString(s autoplay.Stats) string {
	sizes := s.ClearSizes()
	if len(sizes) == 0 {
		return "—"
	}
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = fmt.Sprintf("%d×%d", n, s.Clears(n))
	}
	return strings.Join(parts, " ")
}

func printSummary(results []gameResult) {
	var score, layers, pieces int
	for _, r := range results {
		score += r.stats.Score
		layers += r.stats.Layers
		pieces += r.stats.Pieces
	}
	n := float64(len(results))
	best := bestResult(results)
	printKeyValue("Best", StyleNumber.Render(fmt.Sprint(best.stats.Score))+StyleDim.Render(fmt.Sprintf(" (seed %d)", best.seed)))
	printKeyValue("Mean score", fmt.Sprintf("%.1f", float64(score)/n))
	printKeyValue("Mean layers", fmt.Sprintf("%.1f", float64(layers)/n))
	printKeyValue("Mean pieces", fmt.Sprintf("%.1f", float64(pieces)/n))
}
