package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"termjigsaw/config"
	"termjigsaw/logging"
	"termjigsaw/puzzle"
	"termjigsaw/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	flagPieces int
	flagSeed   int64
	flagAssets string
	flagPlay   bool
	flagFocus  bool
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "termjigsaw",
	Short: "Solve a jigsaw puzzle in the terminal",
	Long: `Solve a jigsaw puzzle in the terminal.

The image is cut into pieces that start out shuffled. Pick a piece up with
Enter, move the cursor to a slot on the solved board and press Enter again.

Images are read from the asset folder as 1.jpg, 2.jpg, ... plus original.jpg
for the faint hint behind the solved board. Without images every piece gets a
colour of its own.

Examples:
  termjigsaw
  termjigsaw --play --pieces 12
  termjigsaw --assets ~/pictures/cat --seed 42`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.Flags().IntVarP(&flagPieces, "pieces", "n", 0, "Number of pieces")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Shuffle seed (0 = random)")
	rootCmd.Flags().StringVarP(&flagAssets, "assets", "a", "", "Folder holding the piece images")
	rootCmd.Flags().BoolVarP(&flagPlay, "play", "p", false, "Start immediately with defaults")
	rootCmd.Flags().BoolVarP(&flagFocus, "focus", "f", false, "Start in focus mode (boards only)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Write a debug log")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("pieces") {
		cfg.Puzzle.PieceCount = flagPieces
	}
	if cmd.Flags().Changed("seed") {
		cfg.Puzzle.Seed = flagSeed
	}
	if cmd.Flags().Changed("assets") {
		cfg.Puzzle.AssetDir = flagAssets
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLog() (*slog.Logger, func() error, error) {
	if !flagDebug {
		return logging.Open("")
	}
	path, err := config.LogPath()
	if err != nil {
		return nil, nil, err
	}
	return logging.Open(path)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog()
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer closeLog()

	quickStart := flagPlay || flagFocus || cmd.Flags().Changed("pieces") || cmd.Flags().Changed("seed")

	app := tview.NewApplication()
	rootPage := tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ◩ termjigsaw ")

	store := puzzle.NewStore(log)

	gameHint := tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	board := ui.NewPuzzleBoard(app, cfg, store, gameHint)
	gameFrame := ui.CreateGameLayout(board, gameHint)

	showError := func(text string) {
		modal := tview.NewModal().
			SetText(text).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
	}

	startGame := func(p config.PuzzleConfig) {
		if err := board.NewGame(p); err != nil {
			log.Error("new game", "err", err)
			showError(fmt.Sprintf("Failed to start puzzle:\n%s", err.Error()))
			return
		}
		ui.RebuildNormalLayout(gameFrame, board, gameHint)
		rootPage.SwitchToPage("gameview")
	}

	board.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			board.MoveSelection(0, -1)
		case tcell.KeyDown:
			board.MoveSelection(0, 1)
		case tcell.KeyLeft:
			board.MoveSelection(-1, 0)
		case tcell.KeyRight:
			board.MoveSelection(1, 0)
		case tcell.KeyTab:
			board.SwitchBoard()
		case tcell.KeyEnter:
			board.Select()
		case tcell.KeyEscape:
			board.Cancel()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				board.MoveSelection(-1, 0)
			case 'j':
				board.MoveSelection(0, 1)
			case 'k':
				board.MoveSelection(0, -1)
			case 'l':
				board.MoveSelection(1, 0)
			case ' ':
				board.Select()
			case 'u':
				board.Undo()
			case 'r':
				board.Redo()
			case '[':
				board.SwitchBranch(-1)
			case ']':
				board.SwitchBranch(1)
			case 'n':
				p := cfg.Puzzle
				p.Seed = 0
				startGame(p)
			case 'f':
				if board.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, board)
				} else {
					ui.RebuildNormalLayout(gameFrame, board, gameHint)
				}
			case 'q':
				if !board.Cancel() {
					rootPage.SwitchToPage("setup")
				}
			}
		}
		return nil
	})

	saveDefaults := func(p config.PuzzleConfig) {
		saved := *cfg
		saved.Puzzle = p
		if err := saved.Validate(); err != nil {
			showError(err.Error())
			return
		}
		if err := saved.Save(); err != nil {
			log.Error("save config", "err", err)
			showError(fmt.Sprintf("Failed to save settings:\n%s", err.Error()))
			return
		}
		cfg.Puzzle = p
		log.Info("saved defaults", "pieces", p.PieceCount, "assets", p.AssetDir)
	}

	setupUI := ui.NewGameSetup(cfg.Puzzle, startGame, saveDefaults, app.Stop)

	rootPage.AddPage("setup", setupUI.Form(), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)

	if quickStart {
		startGame(cfg.Puzzle)
		if flagFocus {
			board.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, board)
		}
	}

	log.Info("starting", "version", Version, "pieces", cfg.Puzzle.PieceCount, "assets", cfg.Puzzle.AssetDir)
	return app.SetRoot(rootPage, true).Run()
}
