package puzzle

import "termjigsaw/types"

// Action is a request the store knows how to apply.
// The set is closed: InitializeAction and MoveAction are the only kinds.
type Action interface {
	reduce(state *types.State) (*types.State, error)
}

// InitializeAction replaces the whole state with a fresh shuffled position.
type InitializeAction struct {
	PieceCount int
	Ext        string
	Rand       Rand
}

func (a InitializeAction) reduce(*types.State) (*types.State, error) {
	rng := a.Rand
	if rng == nil {
		rng = NewShuffler(0)
	}
	return Initialize(a.PieceCount, a.Ext, rng)
}

// MoveAction drops a piece onto a slot.
type MoveAction types.Move

func (a MoveAction) reduce(state *types.State) (*types.State, error) {
	if state == nil {
		return nil, &InvalidMoveError{Field: "state", Value: "nil"}
	}
	return ApplyMove(state, a.PieceID, a.Target, a.Index)
}

// Reduce applies action to state and returns the next snapshot.
// state is never modified.
func Reduce(state *types.State, action Action) (*types.State, error) {
	if action == nil {
		return nil, &InvalidMoveError{Field: "action", Value: "nil"}
	}
	return action.reduce(state)
}
