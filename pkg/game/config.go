package game

import (
	"github.com/matzehuels/cubetris/pkg/catalog"
	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/geom"
)

// SpawnMode selects where new pieces appear in the x/y plane.
type SpawnMode string

const (
	// SpawnCenter spawns at (round(dx/2), round(dy/2)), rounding half up,
	// before the piece is clamped into bounds.
	SpawnCenter SpawnMode = "center"
	// SpawnRandom spawns at a uniformly random (x, y) in the board.
	SpawnRandom SpawnMode = "random"
)

// Valid reports whether m is a known spawn mode.
func (m SpawnMode) Valid() bool { return m == SpawnCenter || m == SpawnRandom }

// Default configuration values.
const (
	DefaultWidth          = 5
	DefaultDepth          = 5
	DefaultHeight         = 14
	DefaultFallIntervalMs = 1000
	DefaultMaxFrameMs     = 100
	DefaultLayerBonus     = 100
	DefaultSpawnBonus     = 1
)

// Config holds the tunables of a board.
//
// Dims is carried for front-ends that build a board from a config file; New
// takes the dimensions as an explicit argument and ignores this field.
type Config struct {
	Dims geom.Coord

	// FallIntervalMs is the accumulated Tick time that triggers one MoveDown.
	FallIntervalMs int
	// MaxFrameMs caps the dt of a single Tick call.
	MaxFrameMs int

	// LayerBonus is added per cleared layer, SpawnBonus per spawned piece.
	LayerBonus int
	SpawnBonus int

	SpawnMode         SpawnMode
	RandomOrientation bool

	// Seed drives piece generation and random spawning. Zero picks a
	// time-derived seed.
	Seed uint64
	// Materials is the number of material tags the default generator uses.
	Materials int
}

// DefaultConfig returns the stock configuration: a 5×5×14 board, a one
// second fall interval, 100 points per layer and 1 per spawned piece.
func DefaultConfig() Config {
	return Config{
		Dims:           geom.C(DefaultWidth, DefaultDepth, DefaultHeight),
		FallIntervalMs: DefaultFallIntervalMs,
		MaxFrameMs:     DefaultMaxFrameMs,
		LayerBonus:     DefaultLayerBonus,
		SpawnBonus:     DefaultSpawnBonus,
		SpawnMode:      SpawnCenter,
		Materials:      catalog.DefaultMaterials,
	}
}

// Validate checks every field. Both score bonuses must be non-negative so the
// score never decreases.
func (c Config) Validate() error {
	if err := errors.ValidateDimensions(c.Dims.X, c.Dims.Y, c.Dims.Z); err != nil {
		return err
	}
	if err := errors.ValidatePositive("fall interval", c.FallIntervalMs); err != nil {
		return err
	}
	if err := errors.ValidatePositive("max frame time", c.MaxFrameMs); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("layer bonus", c.LayerBonus); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("spawn bonus", c.SpawnBonus); err != nil {
		return err
	}
	if err := errors.ValidatePositive("materials", c.Materials); err != nil {
		return err
	}
	if !c.SpawnMode.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown spawn mode %q (want %q or %q)", c.SpawnMode, SpawnCenter, SpawnRandom)
	}
	return nil
}
