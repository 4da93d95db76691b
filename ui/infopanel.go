package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"termjigsaw/puzzle"
)

// InfoPanel displays session information and move history alongside the boards.
type InfoPanel struct {
	box   *tview.TextView
	store *puzzle.Store
	seed  int64
}

// NewInfoPanel creates a new info panel reading from store.
func NewInfoPanel(store *puzzle.Store) *InfoPanel {
	panel := &InfoPanel{
		box:   tview.NewTextView(),
		store: store,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *InfoPanel) Box() *tview.TextView {
	return p.box
}

// SetSeed sets the shuffle seed for display.
func (p *InfoPanel) SetSeed(seed int64) {
	p.seed = seed
	p.Refresh()
}

// Refresh rebuilds the panel text from the store.
func (p *InfoPanel) Refresh() {
	p.box.SetText(p.text())
}

func (p *InfoPanel) text() string {
	state := p.store.State()
	if state == nil {
		return ""
	}

	var text strings.Builder

	text.WriteString("[white::b]Puzzle[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]Session:[-:-:-] %s\n", p.store.SessionID().String()[:8])
	fmt.Fprintf(&text, "[white]Seed:[-:-:-] %d\n", p.seed)
	fmt.Fprintf(&text, "[white]Placed:[-:-:-] %d/%d\n", p.store.Placed(), state.Size())
	fmt.Fprintf(&text, "[white]Moves:[-:-:-] %d\n", p.store.Moves())
	fmt.Fprintf(&text, "[white]Blocked:[-:-:-] %d\n", p.store.Rejected())

	moves := p.store.History()
	if len(moves) == 0 {
		return text.String()
	}

	text.WriteString("\n[white::b]Moves[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

	// Show last N moves that fit, with scroll
	maxVisible := 12
	start := 0
	if len(moves) > maxVisible {
		start = len(moves) - maxVisible
	}
	for i := start; i < len(moves); i++ {
		marker := " "
		if i == len(moves)-1 {
			marker = "[white]>[-]"
		}
		fmt.Fprintf(&text, "%s[dimgray]%3d.[-] %s\n", marker, i+1, tview.Escape(moves[i].String()))
	}
	if start > 0 {
		fmt.Fprintf(&text, "[dimgray]  ··· %d earlier[-]\n", start)
	}
	if i, n := p.store.Branch(); n > 0 {
		fmt.Fprintf(&text, "[dimgray]  branch %d of %d[-]\n", i+1, n)
	}
	if p.store.CanRedo() {
		text.WriteString("[dimgray]  (r to redo)[-]\n")
	}
	return text.String()
}

// CreateGameLayout creates the main game layout with the boards and side panel.
func CreateGameLayout(board *PuzzleBoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// RebuildNormalLayout restores the normal game layout with boards, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *PuzzleBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewInfoPanel(board.store)
	infoPanel.seed = board.seed
	board.infoPanel = infoPanel
	infoPanel.Refresh()

	// Create horizontal flex: boards | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	// Main vertical flex: board area on top, compact status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
	board.refreshHint()
}

// BuildFocusLayout builds the focus mode layout with just the centred boards.
func BuildFocusLayout(gameFrame *tview.Flex, board *PuzzleBoardUI) {
	gameFrame.Clear()
	board.infoPanel = nil

	boardWidth, boardHeight := board.Size()

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false) // bottom spacer
}
