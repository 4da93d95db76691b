package puzzle

import (
	"errors"
	"testing"

	"termjigsaw/types"
)

func newTestStore(t *testing.T, n int) *Store {
	t.Helper()
	s := NewStore(nil)
	if _, err := s.Dispatch(InitializeAction{PieceCount: n, Rand: identity{}}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return s
}

func TestReduceDispatchesByKind(t *testing.T) {
	s, err := Reduce(nil, InitializeAction{PieceCount: 3, Rand: identity{}})
	if err != nil {
		t.Fatalf("Reduce(initialize): %v", err)
	}
	if s.Size() != 3 {
		t.Fatalf("expected 3 pieces, got %d", s.Size())
	}
	next, err := Reduce(s, MoveAction{PieceID: 0, Target: types.Solved, Index: 0})
	if err != nil {
		t.Fatalf("Reduce(move): %v", err)
	}
	if next.Solved[0] != 0 {
		t.Fatalf("solved[0] = %d, want 0", next.Solved[0])
	}
	if _, err := Reduce(s, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil action error = %v", err)
	}
}

func TestStoreMoveBeforeInitialize(t *testing.T) {
	s := NewStore(nil)
	if _, err := s.Dispatch(MoveAction{PieceID: 0, Target: types.Solved}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("error = %v, want ErrNotInitialized", err)
	}
	if s.State() != nil {
		t.Fatal("state should be nil before initialize")
	}
}

func TestStoreDispatchAndCallbacks(t *testing.T) {
	s := newTestStore(t, 4)
	var changes []Change
	s.OnChange(func(c Change) { changes = append(changes, c) })

	if _, err := s.Dispatch(MoveAction{PieceID: 1, Target: types.Solved, Index: 0}); err != nil {
		t.Fatalf("move: %v", err)
	}
	// occupied
	before := s.State()
	got, err := s.Dispatch(MoveAction{PieceID: 2, Target: types.Solved, Index: 0})
	if err != nil {
		t.Fatalf("rejected move: %v", err)
	}
	if got != before {
		t.Fatal("rejected move should keep the current state")
	}

	if len(changes) != 2 {
		t.Fatalf("expected 2 callbacks, got %d", len(changes))
	}
	if !changes[0].Accepted || changes[1].Accepted {
		t.Fatalf("accepted flags = %v, %v", changes[0].Accepted, changes[1].Accepted)
	}
	if s.Moves() != 1 || s.Rejected() != 1 || s.Placed() != 1 {
		t.Fatalf("moves=%d rejected=%d placed=%d", s.Moves(), s.Rejected(), s.Placed())
	}
}

func TestStoreInvalidMoveKeepsState(t *testing.T) {
	s := newTestStore(t, 4)
	before := s.State()
	if _, err := s.Dispatch(MoveAction{PieceID: 9, Target: types.Solved}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
	if s.State() != before {
		t.Fatal("failed action replaced the state")
	}
}

func TestStoreUndoRedo(t *testing.T) {
	s := newTestStore(t, 4)
	start := s.State()

	if s.Undo() {
		t.Fatal("undo at start should fail")
	}
	s.Dispatch(MoveAction{PieceID: 0, Target: types.Solved, Index: 3})
	afterFirst := s.State()
	s.Dispatch(MoveAction{PieceID: 1, Target: types.Solved, Index: 2})

	if !s.Undo() {
		t.Fatal("undo should succeed")
	}
	if s.State() != afterFirst {
		t.Fatal("undo should restore the previous snapshot")
	}
	if !s.Undo() || s.State() != start {
		t.Fatal("second undo should restore the start")
	}
	if !s.CanRedo() || !s.Redo() {
		t.Fatal("redo should succeed")
	}
	if s.State() != afterFirst {
		t.Fatal("redo should restore the first move")
	}

	// A different move after undo starts a new branch; redo follows it.
	s.Undo()
	s.Dispatch(MoveAction{PieceID: 2, Target: types.Solved, Index: 0})
	branched := s.State()
	s.Undo()
	s.Redo()
	if s.State() != branched {
		t.Fatal("redo should follow the most recent branch")
	}
	hist := s.History()
	if len(hist) != 1 || hist[0] != (types.Move{PieceID: 2, Target: types.Solved, Index: 0}) {
		t.Fatalf("history = %v", hist)
	}
}

func TestStoreReinitializeResets(t *testing.T) {
	s := newTestStore(t, 4)
	s.Dispatch(MoveAction{PieceID: 0, Target: types.Solved, Index: 0})
	s.Dispatch(MoveAction{PieceID: 1, Target: types.Solved, Index: 0})

	if _, err := s.Dispatch(InitializeAction{PieceCount: 6, Rand: NewShuffler(3)}); err != nil {
		t.Fatalf("reinitialize: %v", err)
	}
	if s.Moves() != 0 || s.Rejected() != 0 || s.State().Size() != 6 {
		t.Fatalf("moves=%d rejected=%d size=%d", s.Moves(), s.Rejected(), s.State().Size())
	}
	if s.Undo() {
		t.Fatal("undo after reinitialize should fail")
	}
}

func TestStoreBranches(t *testing.T) {
	s := newTestStore(t, 4)
	if s.NextBranch() {
		t.Fatal("no branches at the start")
	}
	s.Dispatch(MoveAction{PieceID: 0, Target: types.Solved, Index: 0})
	first := s.State()
	s.Undo()
	s.Dispatch(MoveAction{PieceID: 0, Target: types.Solved, Index: 1})
	second := s.State()

	if i, n := s.Branch(); i != 1 || n != 2 {
		t.Fatalf("branch = %d/%d, want 1/2", i, n)
	}
	if !s.NextBranch() || s.State() != first {
		t.Fatal("next branch should wrap to the first alternative")
	}
	if !s.PrevBranch() || s.State() != second {
		t.Fatal("prev branch should return to the second alternative")
	}
	if s.Moves() != 1 {
		t.Fatalf("moves = %d, want 1", s.Moves())
	}
}
