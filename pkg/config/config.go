// Package config loads cubetris settings from a TOML file.
//
// Values missing from the file keep their defaults, so an empty file (or no
// file at all) yields [game.DefaultConfig]. Unknown keys are rejected to
// catch typos:
//
//	[board]
//	width = 5
//	depth = 5
//	height = 14
//
//	[timing]
//	fall_interval_ms = 1000
//	max_frame_ms = 100
//
//	[scoring]
//	layer_bonus = 100
//	spawn_bonus = 1
//
//	[spawn]
//	mode = "center"
//	random_orientation = false
//	seed = 0
//	materials = 10
//	catalog = "shapes.yaml"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cubetris/pkg/catalog"
	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/game"
	"github.com/matzehuels/cubetris/pkg/geom"
)

// Config is a loaded configuration.
type Config struct {
	Game game.Config

	// CatalogPath is the shape catalog file, resolved relative to the config
	// file. Empty means the built-in catalog.
	CatalogPath string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Game: game.DefaultConfig()}
}

type file struct {
	Board struct {
		Width  int `toml:"width"`
		Depth  int `toml:"depth"`
		Height int `toml:"height"`
	} `toml:"board"`
	Timing struct {
		FallIntervalMs int `toml:"fall_interval_ms"`
		MaxFrameMs     int `toml:"max_frame_ms"`
	} `toml:"timing"`
	Scoring struct {
		LayerBonus int `toml:"layer_bonus"`
		SpawnBonus int `toml:"spawn_bonus"`
	} `toml:"scoring"`
	Spawn struct {
		Mode              string `toml:"mode"`
		RandomOrientation bool   `toml:"random_orientation"`
		Seed              int64  `toml:"seed"`
		Materials         int    `toml:"materials"`
		Catalog           string `toml:"catalog"`
	} `toml:"spawn"`
}

func fromConfig(c Config) file {
	var f file
	f.Board.Width = c.Game.Dims.X
	f.Board.Depth = c.Game.Dims.Y
	f.Board.Height = c.Game.Dims.Z
	f.Timing.FallIntervalMs = c.Game.FallIntervalMs
	f.Timing.MaxFrameMs = c.Game.MaxFrameMs
	f.Scoring.LayerBonus = c.Game.LayerBonus
	f.Scoring.SpawnBonus = c.Game.SpawnBonus
	f.Spawn.Mode = string(c.Game.SpawnMode)
	f.Spawn.RandomOrientation = c.Game.RandomOrientation
	f.Spawn.Seed = int64(c.Game.Seed)
	f.Spawn.Materials = c.Game.Materials
	f.Spawn.Catalog = c.CatalogPath
	return f
}

func (f file) config() Config {
	return Config{
		Game: game.Config{
			Dims:              geom.C(f.Board.Width, f.Board.Depth, f.Board.Height),
			FallIntervalMs:    f.Timing.FallIntervalMs,
			MaxFrameMs:        f.Timing.MaxFrameMs,
			LayerBonus:        f.Scoring.LayerBonus,
			SpawnBonus:        f.Scoring.SpawnBonus,
			SpawnMode:         game.SpawnMode(strings.ToLower(strings.TrimSpace(f.Spawn.Mode))),
			RandomOrientation: f.Spawn.RandomOrientation,
			Seed:              uint64(f.Spawn.Seed),
			Materials:         f.Spawn.Materials,
		},
		CatalogPath: f.Spawn.Catalog,
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, err
	}
	if cfg.CatalogPath != "" && !filepath.IsAbs(cfg.CatalogPath) {
		cfg.CatalogPath = filepath.Join(filepath.Dir(path), cfg.CatalogPath)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (Config, error) {
	f := fromConfig(Default())
	md, err := toml.Decode(text, &f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if f.Spawn.Seed < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "seed must not be negative, got %d", f.Spawn.Seed)
	}
	cfg := f.config()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the game settings.
func (c Config) Validate() error {
	return c.Game.Validate()
}

// Catalog loads the configured shape catalog, or the built-in one when none
// is set.
func (c Config) Catalog() (catalog.Catalog, error) {
	if c.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.CatalogPath)
}

// Encode renders c as TOML.
func (c Config) Encode() (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(fromConfig(c)); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return sb.String(), nil
}
