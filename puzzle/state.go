// Package puzzle implements the piece placement rules of the jigsaw:
// building a shuffled starting position and relocating pieces between slots.
package puzzle

import (
	"fmt"

	"termjigsaw/types"
)

// DefaultPieceCount is the number of pieces the image is cut into.
const DefaultPieceCount = 8

// DefaultExt is appended to fragment names when no extension is configured.
const DefaultExt = ".jpg"

// FragmentName returns the asset name of the piece with the given order.
// Fragments are numbered from 1: order 0 is "1.jpg".
func FragmentName(order int, ext string) string {
	if ext == "" {
		ext = DefaultExt
	}
	return fmt.Sprintf("%d%s", order+1, ext)
}

// Initialize builds the starting position: every piece on the shuffled board
// in random order, the solved board empty.
func Initialize(pieceCount int, ext string, rng Rand) (*types.State, error) {
	if pieceCount <= 0 {
		return nil, &InvalidMoveError{Field: "piece count", Value: pieceCount}
	}

	pieces := make([]types.Piece, pieceCount)
	orders := make([]types.Slot, pieceCount)
	for i := range pieces {
		pieces[i] = types.Piece{
			Order:    i,
			Filename: FragmentName(i, ext),
			Board:    types.Shuffled,
		}
		orders[i] = types.Slot(i)
	}

	return &types.State{
		Pieces:   pieces,
		Shuffled: types.Board(Shuffle(orders, rng)),
		Solved:   types.NewBoard(pieceCount),
	}, nil
}

// ApplyMove moves piece pieceID into slot targetIndex of the target board.
//
// A drop onto an occupied slot is not an error: state itself is returned and
// the caller can detect the rejection by pointer comparison. Out-of-range
// arguments return an error wrapping ErrInvalidArgument and no state.
//
// The returned state shares every board the move did not touch with state.
func ApplyMove(state *types.State, pieceID int, target types.BoardName, targetIndex int) (*types.State, error) {
	if pieceID < 0 || pieceID >= len(state.Pieces) {
		return nil, &InvalidMoveError{Field: "piece", Value: pieceID, Limit: len(state.Pieces)}
	}
	if !target.Valid() {
		return nil, &InvalidMoveError{Field: "board", Value: target}
	}
	targetBoard := state.Board(target)
	if targetIndex < 0 || targetIndex >= len(targetBoard) {
		return nil, &InvalidMoveError{Field: "slot", Value: targetIndex, Limit: len(targetBoard)}
	}
	if !targetBoard[targetIndex].IsEmpty() {
		return state, nil
	}

	origin := state.Pieces[pieceID].Board
	originBoard := state.Board(origin)
	from := originBoard.IndexOf(pieceID)
	if from < 0 {
		return nil, fmt.Errorf("piece %d tagged %s but missing from that board", pieceID, origin)
	}

	// Copy each board once. When origin and target are the same board both
	// writes below must land in the same copy, or one would undo the other.
	boards := map[types.BoardName]types.Board{}
	boards[target] = targetBoard.Clone()
	if origin != target {
		boards[origin] = originBoard.Clone()
	}

	pieces := make([]types.Piece, len(state.Pieces))
	copy(pieces, state.Pieces)
	pieces[pieceID].Board = target

	boards[origin][from] = types.Empty
	boards[target][targetIndex] = types.Slot(pieceID)

	next := *state
	next.Pieces = pieces
	for name, b := range boards {
		switch name {
		case types.Shuffled:
			next.Shuffled = b
		case types.Solved:
			next.Solved = b
		}
	}
	return &next, nil
}
