// Package ui specifies custom controls for tview to play the jigsaw in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"termjigsaw/art"
	"termjigsaw/config"
	"termjigsaw/puzzle"
	"termjigsaw/types"
)

const noPiece = -1

// PuzzleBoardUI draws the shuffled and solved boards and turns cursor
// gestures into moves: Grab picks up the piece under the cursor, Drop puts it
// into the slot under the cursor.
type PuzzleBoardUI struct {
	Box       *tview.Box
	store     *puzzle.Store
	hint      *tview.TextView
	cfg       *config.Config
	art       *art.Set
	grid      art.Grid
	cursor    types.BoardPos
	held      int
	status    string
	seed      int64
	redraw    func()
	styles    []tcell.Color
	infoPanel *InfoPanel
	focusMode bool
}

// BoardColumns returns how many slots a board row holds for n pieces.
func BoardColumns(n int) int {
	cols := n
	if cols > 4 {
		cols = 4
	}
	if half := (n + 1) / 2; half > cols {
		cols = half
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// NewPuzzleBoard creates the board widget for store. app may be nil in tests.
func NewPuzzleBoard(app *tview.Application, c *config.Config, store *puzzle.Store, hint *tview.TextView) *PuzzleBoardUI {
	board := &PuzzleBoardUI{
		Box:    tview.NewBox(),
		store:  store,
		hint:   hint,
		held:   noPiece,
		cursor: types.BoardPos{Board: types.Shuffled},
		redraw: func() {},
	}
	if app != nil {
		board.redraw = func() {
			// Spawn goroutine to avoid deadlock when called from main thread
			go app.QueueUpdateDraw(func() {})
		}
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)

	store.OnChange(func(puzzle.Change) {
		board.refreshHint()
		board.redraw()
	})
	return board
}

// SetConfig applies theme colours and reloads the artwork for the current puzzle.
func (b *PuzzleBoardUI) SetConfig(c *config.Config) {
	b.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),    // 0
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt), // 1
		tcell.PaletteColor(c.Theme.Colors.LabelColor),    // 2
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG), // 3
		tcell.PaletteColor(c.Theme.Colors.HeldColorBG),   // 4
		tcell.PaletteColor(c.Theme.Colors.HintColor),     // 5
	}
	b.cfg = c
	b.loadArt()
}

// NewGame shuffles a fresh puzzle from the puzzle settings.
func (b *PuzzleBoardUI) NewGame(p config.PuzzleConfig) error {
	shuffler := puzzle.NewShuffler(p.Seed)
	_, err := b.store.Dispatch(puzzle.InitializeAction{
		PieceCount: p.PieceCount,
		Ext:        p.Ext,
		Rand:       shuffler,
	})
	if err != nil {
		return err
	}
	b.cfg.Puzzle = p
	b.seed = shuffler.Seed()
	b.held = noPiece
	b.cursor = types.BoardPos{Board: types.Shuffled}
	b.status = ""
	b.loadArt()
	if b.infoPanel != nil {
		b.infoPanel.SetSeed(b.seed)
	}
	b.refreshHint()
	return nil
}

func (b *PuzzleBoardUI) loadArt() {
	state := b.store.State()
	if state == nil {
		return
	}
	n := state.Size()
	cols := BoardColumns(n)
	b.grid = art.Grid{
		Cols: cols,
		Rows: (n + cols - 1) / cols,
		W:    b.cfg.Theme.TileWidth,
		H:    b.cfg.Theme.TileHeight * 2,
	}
	names := make([]string, n)
	for i, p := range state.Pieces {
		names[i] = p.Filename
	}
	b.art = art.Load(b.cfg.Puzzle.AssetDir, names, b.cfg.Puzzle.Reference, b.grid)
	if len(b.art.Missing) > 0 && b.cfg.Puzzle.AssetDir != "" {
		b.status = fmt.Sprintf("%d image(s) missing, using placeholders", len(b.art.Missing))
	}
}

// Cursor returns the slot under the cursor.
func (b *PuzzleBoardUI) Cursor() types.BoardPos {
	return b.cursor
}

// Held returns the order of the piece being carried, or -1.
func (b *PuzzleBoardUI) Held() int {
	return b.held
}

// MoveSelection moves the cursor by whole slots. Moving past the bottom row
// of the shuffled board continues onto the solved board and back.
func (b *PuzzleBoardUI) MoveSelection(h, v int) {
	state := b.store.State()
	if state == nil {
		return
	}
	n := state.Size()
	cols := BoardColumns(n)
	rows := (n + cols - 1) / cols
	col, row := b.cursor.Index%cols, b.cursor.Index/cols

	col += h
	if col < 0 || col >= cols {
		return
	}
	row += v
	switch {
	case row < 0 && b.cursor.Board == types.Solved:
		b.cursor.Board = types.Shuffled
		row = rows - 1
	case row >= rows && b.cursor.Board == types.Shuffled:
		b.cursor.Board = types.Solved
		row = 0
	case row < 0 || row >= rows:
		return
	}
	idx := row*cols + col
	if idx >= n {
		idx = n - 1
	}
	b.cursor.Index = idx
}

// SwitchBoard jumps the cursor to the same slot on the other board.
func (b *PuzzleBoardUI) SwitchBoard() {
	b.cursor.Board = b.cursor.Board.Other()
}

// Grab picks up the piece under the cursor. Returns false on an empty slot.
func (b *PuzzleBoardUI) Grab() bool {
	state := b.store.State()
	if state == nil || b.held != noPiece {
		return false
	}
	p, ok := state.PieceAt(b.cursor.Board, b.cursor.Index)
	if !ok {
		b.setStatus("Nothing to pick up here")
		return false
	}
	b.held = p.Order
	b.setStatus("")
	return true
}

// Drop puts the held piece into the slot under the cursor.
// Returns true if the piece left the hand.
func (b *PuzzleBoardUI) Drop() bool {
	if b.held == noPiece {
		return false
	}
	before := b.store.State()
	after, err := b.store.Dispatch(puzzle.MoveAction{
		PieceID: b.held,
		Target:  b.cursor.Board,
		Index:   b.cursor.Index,
	})
	if err != nil {
		var ime *puzzle.InvalidMoveError
		if errors.As(err, &ime) {
			b.setStatus(fmt.Sprintf("Bad move: %s", ime.Field))
		} else {
			b.setStatus(err.Error())
		}
		return false
	}
	if after == before {
		// Dropping a piece back where it came from is not a rejection.
		if p, ok := before.PieceAt(b.cursor.Board, b.cursor.Index); ok && p.Order == b.held {
			b.held = noPiece
			b.setStatus("")
			return true
		}
		b.setStatus("Slot taken")
		return false
	}
	b.held = noPiece
	b.setStatus("")
	return true
}

// Select grabs or drops depending on whether a piece is held.
func (b *PuzzleBoardUI) Select() {
	if b.held == noPiece {
		b.Grab()
	} else {
		b.Drop()
	}
}

// Cancel returns the held piece to its slot. Returns false if nothing was held.
func (b *PuzzleBoardUI) Cancel() bool {
	if b.held == noPiece {
		return false
	}
	b.held = noPiece
	b.setStatus("")
	return true
}

// Undo reverts the last move and drops whatever is held.
func (b *PuzzleBoardUI) Undo() {
	b.held = noPiece
	if !b.store.Undo() {
		b.setStatus("Nothing to undo")
	}
}

// Redo replays the last undone move.
func (b *PuzzleBoardUI) Redo() {
	b.held = noPiece
	if !b.store.Redo() {
		b.setStatus("Nothing to redo")
	}
}

// SwitchBranch moves to another alternative of the last move: step > 0 for
// the next one, otherwise the previous one.
func (b *PuzzleBoardUI) SwitchBranch(step int) {
	b.held = noPiece
	var ok bool
	if step > 0 {
		ok = b.store.NextBranch()
	} else {
		ok = b.store.PrevBranch()
	}
	if !ok {
		b.setStatus("No other branch")
	}
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (b *PuzzleBoardUI) ToggleFocusMode() bool {
	b.focusMode = !b.focusMode
	b.refreshHint()
	return b.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (b *PuzzleBoardUI) SetFocusMode(enabled bool) {
	b.focusMode = enabled
	b.refreshHint()
}

// Size returns the cells needed to draw both boards.
func (b *PuzzleBoardUI) Size() (int, int) {
	cellW, cellH := b.cfg.Theme.TileWidth+1, b.cfg.Theme.TileHeight+1
	return b.grid.Cols*cellW + 1, 2 * (b.grid.Rows*cellH + 1)
}

func (b *PuzzleBoardUI) setStatus(s string) {
	b.status = s
	b.refreshHint()
}

func (b *PuzzleBoardUI) refreshHint() {
	if b.infoPanel != nil {
		b.infoPanel.Refresh()
	}
	if b.hint == nil {
		return
	}
	if b.focusMode {
		b.hint.SetText("  f to toggle")
		return
	}

	var statusLine string
	if b.status != "" {
		statusLine = fmt.Sprintf("  ! %s\n", b.status)
	} else if b.held != noPiece {
		statusLine = fmt.Sprintf("  %c Carrying piece #%d\n", b.cfg.Theme.Symbols.Held, b.held+1)
	} else {
		statusLine = "  Pick up a piece\n"
	}
	controlsLine := "  hjkl/↑↓←→ move  ⏎ grab/drop  tab board  esc cancel  u/r undo/redo  [/] branch  n new  f focus  q quit"
	b.hint.SetText(statusLine + controlsLine)
}

func (b *PuzzleBoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	state := b.store.State()
	if state == nil || b.art == nil || len(b.art.Pieces) != state.Size() {
		return x, y, 1, 1
	}
	top := y
	for _, name := range types.BoardNames {
		title := " Shuffled "
		if name == types.Solved {
			title = fmt.Sprintf(" Solved %d/%d ", state.Solved.Occupied(), state.Size())
		}
		drawText(screen, x+1, top, title, tcell.StyleDefault.Foreground(b.styles[5]).Bold(true))
		top++
		top = b.drawBoard(screen, state, name, x+1, top) + 1
	}
	w, h := b.Size()
	return x, y, w, h
}

// drawBoard draws one board with its top left corner at l, t and returns the
// first row below it.
func (b *PuzzleBoardUI) drawBoard(s tcell.Screen, state *types.State, name types.BoardName, l, t int) int {
	tw, th := b.cfg.Theme.TileWidth, b.cfg.Theme.TileHeight
	board := state.Board(name)
	for i, slot := range board {
		col, row := i%b.grid.Cols, i/b.grid.Cols
		left, upper := l+col*(tw+1), t+row*(th+1)
		pos := types.BoardPos{Board: name, Index: i}

		switch {
		case !slot.IsEmpty():
			drawTile(s, b.art.Pieces[slot], left, upper, th)
			if b.cfg.Theme.DrawLabels {
				b.drawLabel(s, fmt.Sprintf("#%d", int(slot)+1), left, upper+th-1, tw)
			}
		case name == types.Solved && b.cfg.Theme.DrawReferenceHint:
			hint := b.art.ReferenceSlot(i, b.grid).Dim(fromTcell(b.styles[0]), b.cfg.Theme.HintOpacity)
			drawTile(s, hint, left, upper, th)
		default:
			bgStyle := tcell.StyleDefault.Background(b.styles[(col+row)%2]).Foreground(b.styles[5])
			fillRect(s, left, upper, tw, th, ' ', bgStyle)
			s.SetContent(left+tw/2, upper+th/2, b.cfg.Theme.Symbols.EmptySlot, nil, bgStyle)
		}

		if !slot.IsEmpty() && int(slot) == b.held {
			heldStyle := tcell.StyleDefault.Background(b.styles[4]).Foreground(tcell.ColorBlack)
			s.SetContent(left+tw-1, upper, b.cfg.Theme.Symbols.Held, nil, heldStyle)
		}
		if pos == b.cursor {
			cursorStyle := tcell.StyleDefault.Background(b.styles[3]).Foreground(tcell.ColorWhite)
			s.SetContent(left, upper, b.cfg.Theme.Symbols.Cursor, nil, cursorStyle)
			// underline the slot so the cursor stays visible on busy images
			fillRect(s, left, upper+th, tw, 1, '▔', tcell.StyleDefault.Foreground(b.styles[3]))
		}
	}
	return t + b.grid.Rows*(th+1)
}

func (b *PuzzleBoardUI) drawLabel(s tcell.Screen, label string, left, row, width int) {
	w := runewidth.StringWidth(label)
	if w > width {
		return
	}
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(b.styles[2])
	drawText(s, left+(width-w)/2, row, label, style)
}

// drawTile draws a tile with upper half blocks: each cell shows two pixel rows.
func drawTile(s tcell.Screen, tile *art.Tile, left, upper, rows int) {
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < tile.W; cx++ {
			fg := toTcell(tile.At(cx, cy*2))
			bg := toTcell(tile.At(cx, cy*2+1))
			s.SetContent(left+cx, upper+cy, '▀', nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func fromTcell(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fillRect(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, r, nil, style)
		}
	}
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}
