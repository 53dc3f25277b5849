package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/cubetris/pkg/errors"
	"github.com/matzehuels/cubetris/pkg/game"
	"github.com/matzehuels/cubetris/pkg/geom"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game != game.DefaultConfig() {
		t.Errorf("Game = %+v, want defaults", cfg.Game)
	}
	if cfg.CatalogPath != "" {
		t.Errorf("CatalogPath = %q, want empty", cfg.CatalogPath)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		check   func(t *testing.T, c Config)
		wantErr errors.Code
	}{
		{
			name: "empty keeps defaults",
			text: "",
			check: func(t *testing.T, c Config) {
				if c.Game != game.DefaultConfig() {
					t.Errorf("got %+v", c.Game)
				}
			},
		},
		{
			name: "partial override",
			text: "[board]\nheight = 20\n\n[scoring]\nspawn_bonus = 0\n",
			check: func(t *testing.T, c Config) {
				if c.Game.Dims != geom.C(5, 5, 20) {
					t.Errorf("Dims = %v", c.Game.Dims)
				}
				if c.Game.SpawnBonus != 0 || c.Game.LayerBonus != 100 {
					t.Errorf("bonuses = %d/%d", c.Game.SpawnBonus, c.Game.LayerBonus)
				}
			},
		},
		{
			name: "spawn section",
			text: "[spawn]\nmode = \"Random\"\nrandom_orientation = true\nseed = 42\nmaterials = 3\ncatalog = \"shapes.yaml\"\n",
			check: func(t *testing.T, c Config) {
				if c.Game.SpawnMode != game.SpawnRandom {
					t.Errorf("SpawnMode = %q", c.Game.SpawnMode)
				}
				if !c.Game.RandomOrientation || c.Game.Seed != 42 || c.Game.Materials != 3 {
					t.Errorf("spawn = %+v", c.Game)
				}
				if c.CatalogPath != "shapes.yaml" {
					t.Errorf("CatalogPath = %q", c.CatalogPath)
				}
			},
		},
		{name: "bad toml", text: "[board\n", wantErr: errors.ErrCodeInvalidConfig},
		{name: "unknown key", text: "[board]\ncolour = \"red\"\n", wantErr: errors.ErrCodeInvalidConfig},
		{name: "unknown section", text: "[network]\nport = 1\n", wantErr: errors.ErrCodeInvalidConfig},
		{name: "zero width", text: "[board]\nwidth = 0\n", wantErr: errors.ErrCodeInvalidDimensions},
		{name: "huge height", text: "[board]\nheight = 100000\n", wantErr: errors.ErrCodeInvalidDimensions},
		{name: "negative bonus", text: "[scoring]\nlayer_bonus = -5\n", wantErr: errors.ErrCodeInvalidConfig},
		{name: "zero interval", text: "[timing]\nfall_interval_ms = 0\n", wantErr: errors.ErrCodeInvalidConfig},
		{name: "bad mode", text: "[spawn]\nmode = \"corner\"\n", wantErr: errors.ErrCodeInvalidConfig},
		{name: "negative seed", text: "[spawn]\nseed = -1\n", wantErr: errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.text)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadResolvesCatalogPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cubetris.toml")
	if err := os.WriteFile(path, []byte("[spawn]\ncatalog = \"shapes.yaml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	shapes := "shapes:\n  - name: dot\n    blocks: [[0, 0, 0]]\n"
	if err := os.WriteFile(filepath.Join(dir, "shapes.yaml"), []byte(shapes), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "shapes.yaml"); cfg.CatalogPath != want {
		t.Errorf("CatalogPath = %q, want %q", cfg.CatalogPath, want)
	}

	c, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if c.Len() != 1 || c.Shapes[0].Name != "dot" {
		t.Errorf("catalog = %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := Default().Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if c.Len() != 8 {
		t.Errorf("Len = %d, want 8", c.Len())
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Game.Dims = geom.C(6, 4, 12)
	cfg.Game.SpawnMode = game.SpawnRandom

	text, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(text, "[board]") || !strings.Contains(text, "width = 6") {
		t.Errorf("unexpected TOML:\n%s", text)
	}

	back, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}
