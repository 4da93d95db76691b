// Package types contains shared data structures for termjigsaw.
package types

import (
	"encoding/json"
	"fmt"
)

// BoardName identifies one of the two boards a piece can sit on.
type BoardName string

const (
	Shuffled BoardName = "shuffled"
	Solved   BoardName = "solved"
)

// BoardNames lists every board in display order.
var BoardNames = []BoardName{Shuffled, Solved}

// Valid returns true if n names a known board.
func (n BoardName) Valid() bool {
	return n == Shuffled || n == Solved
}

// Other returns the board that is not n.
func (n BoardName) Other() BoardName {
	if n == Shuffled {
		return Solved
	}
	return Shuffled
}

// UnmarshalJSON rejects unknown board names.
func (n *BoardName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !BoardName(s).Valid() {
		return fmt.Errorf("unknown board %q", s)
	}
	*n = BoardName(s)
	return nil
}

// Slot holds the order of the piece occupying it, or Empty.
type Slot int

// Empty marks a slot with no piece in it.
const Empty Slot = -1

// IsEmpty returns true if no piece occupies the slot.
func (s Slot) IsEmpty() bool {
	return s == Empty
}

// Piece is one fragment of the puzzle image.
// Order and Filename never change after creation; Board tracks where it lives.
type Piece struct {
	Order    int       `json:"order"`
	Filename string    `json:"filename"`
	Board    BoardName `json:"board"`
}

// Board is a fixed-length sequence of slots.
// A Board that belongs to a published State must not be written to.
type Board []Slot

// NewBoard returns a board of size empty slots.
func NewBoard(size int) Board {
	b := make(Board, size)
	for i := range b {
		b[i] = Empty
	}
	return b
}

// Clone returns a copy of the board that is safe to modify.
func (b Board) Clone() Board {
	c := make(Board, len(b))
	copy(c, b)
	return c
}

// IndexOf returns the slot index holding the piece with the given order, or -1.
func (b Board) IndexOf(order int) int {
	for i, s := range b {
		if int(s) == order {
			return i
		}
	}
	return -1
}

// Occupied returns the number of non-empty slots.
func (b Board) Occupied() int {
	n := 0
	for _, s := range b {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

// State is the complete snapshot of the puzzle: the piece table plus both boards.
// The piece table is the single source of truth for which board a piece is on.
type State struct {
	Pieces   []Piece `json:"pieces"`
	Shuffled Board   `json:"shuffled"`
	Solved   Board   `json:"solved"`
}

// Size returns the number of pieces.
func (s *State) Size() int {
	return len(s.Pieces)
}

// Board returns the slot sequence of the named board.
func (s *State) Board(name BoardName) Board {
	switch name {
	case Shuffled:
		return s.Shuffled
	case Solved:
		return s.Solved
	}
	return nil
}

// PieceAt returns the piece in slot index of the named board.
// ok is false for empty slots and out-of-range positions.
func (s *State) PieceAt(name BoardName, index int) (p Piece, ok bool) {
	b := s.Board(name)
	if index < 0 || index >= len(b) || b[index].IsEmpty() {
		return Piece{}, false
	}
	return s.Pieces[b[index]], true
}

// Equal returns true if both snapshots have the same content.
func (s *State) Equal(o *State) bool {
	if len(s.Pieces) != len(o.Pieces) || len(s.Shuffled) != len(o.Shuffled) || len(s.Solved) != len(o.Solved) {
		return false
	}
	for i := range s.Pieces {
		if s.Pieces[i] != o.Pieces[i] {
			return false
		}
	}
	for i := range s.Shuffled {
		if s.Shuffled[i] != o.Shuffled[i] {
			return false
		}
	}
	for i := range s.Solved {
		if s.Solved[i] != o.Solved[i] {
			return false
		}
	}
	return true
}

// Check verifies that every piece sits in exactly one slot, on the board its
// Board field names, and that no slot references an unknown piece.
func (s *State) Check() error {
	seen := make([]int, len(s.Pieces))
	for _, name := range BoardNames {
		b := s.Board(name)
		if len(b) != len(s.Pieces) {
			return fmt.Errorf("%s board has %d slots, want %d", name, len(b), len(s.Pieces))
		}
		for i, slot := range b {
			if slot.IsEmpty() {
				continue
			}
			if int(slot) < 0 || int(slot) >= len(s.Pieces) {
				return fmt.Errorf("%s[%d] holds unknown piece %d", name, i, slot)
			}
			if s.Pieces[slot].Board != name {
				return fmt.Errorf("%s[%d] holds piece %d tagged %q", name, i, slot, s.Pieces[slot].Board)
			}
			seen[slot]++
		}
	}
	for order, n := range seen {
		if n != 1 {
			return fmt.Errorf("piece %d occupies %d slots", order, n)
		}
		if s.Pieces[order].Order != order {
			return fmt.Errorf("piece table entry %d has order %d", order, s.Pieces[order].Order)
		}
	}
	return nil
}

// BoardPos is a slot on a named board.
type BoardPos struct {
	Board BoardName
	Index int
}

// Move is a request to put piece PieceID into slot Index of board Target.
type Move struct {
	PieceID int       `json:"piece_id"`
	Target  BoardName `json:"target"`
	Index   int       `json:"index"`
}

func (m Move) String() string {
	return fmt.Sprintf("#%d → %s[%d]", m.PieceID+1, m.Target, m.Index)
}
