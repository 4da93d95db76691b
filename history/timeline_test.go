package history

import (
	"testing"

	"termjigsaw/types"
)

func move(piece, index int) types.Move {
	return types.Move{PieceID: piece, Target: types.Solved, Index: index}
}

func state(n int) *types.State {
	return &types.State{Pieces: make([]types.Piece, n)}
}

func TestNewTimeline(t *testing.T) {
	start := state(1)
	tl := NewTimeline(start)
	if tl.Current != tl.Root {
		t.Fatal("current should be root")
	}
	if tl.State() != start {
		t.Fatal("root should hold the start state")
	}
	if tl.Depth() != 0 {
		t.Fatalf("depth at root should be 0, got %d", tl.Depth())
	}
}

func TestPush(t *testing.T) {
	tl := NewTimeline(state(0))
	s1 := state(1)
	node := tl.Push(move(0, 0), s1)
	if tl.Current != node || node.Parent != tl.Root {
		t.Fatal("push should advance to a child of root")
	}
	if tl.State() != s1 {
		t.Fatal("current state should be the pushed one")
	}
	if len(tl.Root.Children) != 1 {
		t.Fatalf("root should have 1 child, got %d", len(tl.Root.Children))
	}
}

func TestPushDedup(t *testing.T) {
	tl := NewTimeline(state(0))
	n1 := tl.Push(move(0, 0), state(1))
	tl.Back()
	n2 := tl.Push(move(0, 0), state(1))
	if n1 != n2 {
		t.Fatal("repeating a move should navigate to the existing node")
	}
	if len(tl.Root.Children) != 1 {
		t.Fatalf("root should still have 1 child, got %d", len(tl.Root.Children))
	}
}

func TestBackForward(t *testing.T) {
	tl := NewTimeline(state(0))
	if tl.Back() {
		t.Fatal("back at root should return false")
	}
	if tl.Forward(0) {
		t.Fatal("forward with no children should return false")
	}
	tl.Push(move(0, 0), state(1))
	tl.Push(move(1, 1), state(2))
	tl.Back()
	tl.Back()
	if !tl.Forward(0) || tl.Current.Move != move(0, 0) {
		t.Fatal("forward should reach the first move")
	}
	if tl.Forward(1) {
		t.Fatal("forward with invalid index should return false")
	}
}

func TestRedoFollowsLatestBranch(t *testing.T) {
	tl := NewTimeline(state(0))
	tl.Push(move(0, 0), state(1))
	tl.Back()
	latest := tl.Push(move(1, 0), state(1))
	tl.Back()
	if !tl.CanRedo() {
		t.Fatal("root should have children")
	}
	if !tl.Redo() || tl.Current != latest {
		t.Fatal("redo should go to the most recent branch")
	}
	if tl.Redo() {
		t.Fatal("redo at a leaf should return false")
	}
}

func TestVariations(t *testing.T) {
	tl := NewTimeline(state(0))
	if tl.NextVariation() || tl.PrevVariation() {
		t.Fatal("variation switching at root should return false")
	}
	tl.Push(move(0, 0), state(1))
	if tl.NextVariation() {
		t.Fatal("single child has no variations")
	}
	tl.Back()
	tl.Push(move(1, 0), state(1))
	tl.Back()
	tl.Push(move(2, 0), state(1))

	if tl.NumVariations() != 3 || tl.VariationIndex() != 2 {
		t.Fatalf("variations=%d index=%d", tl.NumVariations(), tl.VariationIndex())
	}
	tl.NextVariation()
	if tl.Current.Move != move(0, 0) {
		t.Fatalf("next variation should wrap to first, got %v", tl.Current.Move)
	}
	tl.PrevVariation()
	if tl.Current.Move != move(2, 0) {
		t.Fatalf("prev variation should wrap to last, got %v", tl.Current.Move)
	}
}

func TestPath(t *testing.T) {
	tl := NewTimeline(state(0))
	if len(tl.Path()) != 0 {
		t.Fatal("path at root should be empty")
	}
	want := []types.Move{move(0, 0), move(1, 1), move(2, 2)}
	for _, m := range want {
		tl.Push(m, state(1))
	}
	path := tl.Path()
	if len(path) != len(want) {
		t.Fatalf("path length %d, want %d", len(path), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
	if tl.Depth() != 3 {
		t.Fatalf("depth = %d, want 3", tl.Depth())
	}
}
