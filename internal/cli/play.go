package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cubetris/pkg/game"
	cubeio "github.com/matzehuels/cubetris/pkg/io"
)

// playTickInterval is how often the TUI feeds elapsed time to the board.
const playTickInterval = 50 * time.Millisecond

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	boardOpts
	export string // snapshot path written when the game ends
}

// playCommand creates the play command for the interactive terminal game.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play cubetris in the terminal",
		Long: `Play cubetris in the terminal.

Controls:
  a/d or ←/→   move along x
  w/s or ↑/↓   move along y
  q/e          rotate about y (cw/ccw)
  2/x          rotate about x (ccw/cw)
  r/t          rotate about z (cw/ccw)
  space        drop
  p            pause
  esc          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.export, "export", "o", "", "write a JSON snapshot of the final board")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, opts *playOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.apply(&cfg); err != nil {
		return err
	}
	b, err := c.newBoard(cfg)
	if err != nil {
		return err
	}
	logger.Debug("starting game", "board", shortID(b.ID()), "dims", dimsString(b.Dimensions()), "seed", b.Config().Seed)

	restore := mute(logger)
	final, err := tea.NewProgram(newPlayModel(b), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	restore()
	if err != nil {
		return err
	}

	m := final.(playModel)
	if m.board.IsOver() {
		printSuccess("Game over")
	} else {
		printInfo("Game abandoned")
	}
	printDetail("seed %d", b.Config().Seed)
	printKeyValue("Score", StyleNumber.Render(fmt.Sprint(m.board.Score())))
	printKeyValue("Layers", StyleNumber.Render(fmt.Sprint(m.board.LayersCleared())))
	printKeyValue("Pieces", StyleNumber.Render(fmt.Sprint(m.board.PiecesSpawned())))

	if opts.export != "" {
		if err := cubeio.ExportJSON(m.board, opts.export); err != nil {
			return err
		}
		printFile(opts.export)
	}
	return nil
}

// =============================================================================
// Key Map
// =============================================================================

// action is one control issued by a key.
type action func(b *game.Board) (bool, error)

func move(dx, dy int) action {
	return func(b *game.Board) (bool, error) { return b.MoveXY(dx, dy), nil }
}

func rotate(axis, direction string) action {
	return func(b *game.Board) (bool, error) { return b.Rotate(axis, direction) }
}

func drop(b *game.Board) (bool, error) { return b.Drop(), nil }

// playKeys maps bubbletea key names to controls.
var playKeys = map[string]action{
	"q": rotate("y", "cw"),
	"e": rotate("y", "ccw"),
	"2": rotate("x", "ccw"),
	"x": rotate("x", "cw"),
	"r": rotate("z", "cw"),
	"t": rotate("z", "ccw"),

	"a": move(-1, 0), "left": move(-1, 0),
	"d": move(1, 0), "right": move(1, 0),
	"w": move(0, -1), "up": move(0, -1),
	"s": move(0, 1), "down": move(0, 1),

	" ": drop,
}

// =============================================================================
// PlayModel - Interactive game
// =============================================================================

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(playTickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// playModel is the bubbletea model for the interactive game.
type playModel struct {
	board  *game.Board
	last   time.Time
	paused bool
	err    error
}

func newPlayModel(b *game.Board) playModel {
	return playModel{board: b}
}

func (m playModel) Init() tea.Cmd {
	return tickCmd()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
			return m, nil
		case "enter":
			if m.board.IsOver() {
				return m, tea.Quit
			}
		}
		if a, ok := playKeys[key]; ok && !m.paused {
			_, m.err = a(m.board)
		}
	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() && !m.paused {
			m.board.Tick(int(now.Sub(m.last).Milliseconds()))
		}
		m.last = now
		return m, tickCmd()
	}
	return m, nil
}

func (m playModel) View() string {
	var sb strings.Builder

	sb.WriteString(StyleTitle.Render(appName))
	sb.WriteString("  ")
	sb.WriteString(StyleDim.Render(dimsString(m.board.Dimensions())))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("score %s  layers %s  pieces %s\n\n",
		StyleNumber.Render(fmt.Sprint(m.board.Score())),
		StyleNumber.Render(fmt.Sprint(m.board.LayersCleared())),
		StyleNumber.Render(fmt.Sprint(m.board.PiecesSpawned()))))

	sb.WriteString(renderBoard(m.board))
	sb.WriteString("\n\n")

	switch {
	case m.board.IsOver():
		sb.WriteString(StyleWarning.Render("game over"))
		sb.WriteString(StyleDim.Render("  enter/esc: quit"))
	case m.paused:
		sb.WriteString(StyleWarning.Render("paused"))
		sb.WriteString(StyleDim.Render("  p: resume  esc: quit"))
	default:
		sb.WriteString(StyleDim.Render("wasd/arrows move  q/e 2/x r/t rotate  space drop  p pause  esc quit"))
	}
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(StyleWarning.Render(m.err.Error()))
	}
	return sb.String()
}
