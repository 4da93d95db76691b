package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawLabels:        true,
		DrawReferenceHint: true,
		HintOpacity:       0.4,
		TileWidth:         8,
		TileHeight:        4,
		Colors: ConfigColors{
			BoardColor:    236,
			BoardColorAlt: 238,
			LabelColor:    255,
			CursorColorBG: 109,
			HeldColorBG:   179,
			HintColor:     244,
		},
		Symbols: ConfigSymbols{
			EmptySlot: '·',
			Cursor:    '▸',
			Held:      '◆',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Puzzle: PuzzleConfig{
			PieceCount: 8,
			Seed:       0,
			AssetDir:   "",
			Ext:        ".jpg",
			Reference:  "original.jpg",
		},
	}
}
