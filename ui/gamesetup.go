package ui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termjigsaw/config"
)

// GameSetupUI provides a form for configuring a new puzzle.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	settings config.PuzzleConfig
}

// pieceCounts are the choices offered in the setup form.
var pieceCounts = []int{4, 6, 8, 12, 16, 24}

// NewGameSetup creates a new setup form starting from defaults.
// onSave may be nil, in which case the form offers no way to keep its settings.
func NewGameSetup(defaults config.PuzzleConfig, onStart, onSave func(config.PuzzleConfig), onCancel func()) *GameSetupUI {
	setup := &GameSetupUI{settings: defaults}

	counts := pieceChoices(defaults.PieceCount)
	labels := make([]string, len(counts))
	initial := 0
	for i, n := range counts {
		labels[i] = strconv.Itoa(n)
		if n == defaults.PieceCount {
			initial = i
		}
	}

	form := tview.NewForm()

	form.AddDropDown("Pieces", labels, initial, func(option string, index int) {
		setup.settings.PieceCount = counts[index]
	})

	seedText := ""
	if defaults.Seed != 0 {
		seedText = strconv.FormatInt(defaults.Seed, 10)
	}
	form.AddInputField("Seed (blank = random)", seedText, 20, func(text string, lastChar rune) bool {
		return (lastChar >= '0' && lastChar <= '9') || (lastChar == '-' && len(text) == 1)
	}, func(text string) {
		setup.settings.Seed = parseSeed(text)
	})

	form.AddInputField("Image folder", defaults.AssetDir, 40, nil, func(text string) {
		setup.settings.AssetDir = strings.TrimSpace(text)
	})

	form.AddButton("Start", func() {
		onStart(setup.settings)
	})

	if onSave != nil {
		form.AddButton("Save as default", func() {
			onSave(setup.settings)
		})
	}

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Puzzle ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// pieceChoices returns the offered piece counts, including current.
func pieceChoices(current int) []int {
	counts := append([]int(nil), pieceCounts...)
	for _, n := range counts {
		if n == current {
			return counts
		}
	}
	counts = append(counts, current)
	sort.Ints(counts)
	return counts
}

// parseSeed reads a seed field. Blank or unparsable input means a random seed.
func parseSeed(text string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// Settings returns the puzzle settings currently entered.
func (s *GameSetupUI) Settings() config.PuzzleConfig {
	return s.settings
}
