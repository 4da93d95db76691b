package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

var (
	cfgFile = "termjigsaw/config.json"
	logFile = "termjigsaw/debug.log"
)

// Environment variables that override the config file.
const (
	EnvAssets = "TERMJIGSAW_ASSETS"
	EnvPieces = "TERMJIGSAW_PIECES"
	EnvSeed   = "TERMJIGSAW_SEED"
)

// MaxPieces bounds the piece count so both boards fit on a terminal.
const MaxPieces = 24

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor    int `json:"board"`
	BoardColorAlt int `json:"board_alt"`
	LabelColor    int `json:"label"`
	CursorColorBG int `json:"cursor_bg"`
	HeldColorBG   int `json:"held_bg"`
	HintColor     int `json:"hint"`
}

type ConfigSymbols struct {
	EmptySlot rune `json:"empty"`
	Cursor    rune `json:"cursor"`
	Held      rune `json:"held"`
}

type Theme struct {
	DrawLabels        bool          `json:"draw_labels"`
	DrawReferenceHint bool          `json:"draw_reference_hint"`
	HintOpacity       float64       `json:"hint_opacity"` // 0 hides the reference image, 1 draws it at full strength
	TileWidth         int           `json:"tile_width"`
	TileHeight        int           `json:"tile_height"`
	Colors            ConfigColors  `json:"colors"`
	Symbols           ConfigSymbols `json:"symbols"`
}

// PuzzleConfig holds the settings of a new puzzle session.
type PuzzleConfig struct {
	PieceCount int    `json:"piece_count"`
	Seed       int64  `json:"seed"` // 0 picks a new seed every session
	AssetDir   string `json:"asset_dir"`
	Ext        string `json:"fragment_ext"`
	Reference  string `json:"reference_image"`
}

type Config struct {
	Theme  Theme        `json:"theme"`
	Puzzle PuzzleConfig `json:"puzzle"`
}

// InitConfig loads defaults, then the XDG config file, then .env and the environment.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	// A missing .env is normal.
	_ = godotenv.Load()
	if err := config.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvAssets); v != "" {
		c.Puzzle.AssetDir = v
	}
	if v := getenv(EnvPieces); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %v", EnvPieces, err)}
		}
		c.Puzzle.PieceCount = n
	}
	if v := getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %v", EnvSeed, err)}
		}
		c.Puzzle.Seed = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Puzzle.PieceCount < 1 || c.Puzzle.PieceCount > MaxPieces {
		return &InvalidConfig{fmt.Sprintf("piece count must be between 1 and %d", MaxPieces)}
	}
	if c.Theme.TileWidth < 3 || c.Theme.TileHeight < 1 {
		return &InvalidConfig{"tiles must be at least 3 cells wide and 1 cell high"}
	}
	if c.Theme.HintOpacity < 0 || c.Theme.HintOpacity > 1 {
		return &InvalidConfig{"hint opacity must be between 0 and 1"}
	}
	for _, r := range []rune{c.Theme.Symbols.EmptySlot, c.Theme.Symbols.Cursor, c.Theme.Symbols.Held} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	return nil
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

// LogPath returns where the debug log is written.
func LogPath() (string, error) {
	return xdg.StateFile(logFile)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
