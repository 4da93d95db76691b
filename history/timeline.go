// Package history keeps a branching timeline of puzzle snapshots for undo and redo.
package history

import "termjigsaw/types"

// Node is one snapshot in the timeline.
type Node struct {
	Move     types.Move // move that produced State; zero for the root
	State    *types.State
	Parent   *Node
	Children []*Node // last child = most recent branch
}

// Timeline tracks the snapshots reachable from a starting position.
type Timeline struct {
	Root    *Node
	Current *Node
}

// NewTimeline creates a timeline rooted at the given starting position.
func NewTimeline(start *types.State) *Timeline {
	root := &Node{State: start}
	return &Timeline{Root: root, Current: root}
}

// Push records state as the result of move and advances to it.
// If the current node already has a child for the same move, navigates to it instead.
func (t *Timeline) Push(move types.Move, state *types.State) *Node {
	for _, child := range t.Current.Children {
		if child.Move == move {
			t.Current = child
			return child
		}
	}
	node := &Node{
		Move:   move,
		State:  state,
		Parent: t.Current,
	}
	t.Current.Children = append(t.Current.Children, node)
	t.Current = node
	return node
}

// Back moves current to its parent. Returns false if already at root.
func (t *Timeline) Back() bool {
	if t.Current == t.Root {
		return false
	}
	t.Current = t.Current.Parent
	return true
}

// Forward moves current to children[idx]. Returns false if no such child.
func (t *Timeline) Forward(idx int) bool {
	if idx < 0 || idx >= len(t.Current.Children) {
		return false
	}
	t.Current = t.Current.Children[idx]
	return true
}

// Redo moves to the most recently pushed child.
func (t *Timeline) Redo() bool {
	return t.Forward(len(t.Current.Children) - 1)
}

// NextVariation switches to the next sibling. Wraps around.
func (t *Timeline) NextVariation() bool {
	return t.shiftVariation(1)
}

// PrevVariation switches to the previous sibling. Wraps around.
func (t *Timeline) PrevVariation() bool {
	return t.shiftVariation(-1)
}

func (t *Timeline) shiftVariation(step int) bool {
	if t.Current.Parent == nil {
		return false
	}
	siblings := t.Current.Parent.Children
	if len(siblings) < 2 {
		return false
	}
	idx := t.childIndex()
	t.Current = siblings[(idx+step+len(siblings))%len(siblings)]
	return true
}

// State returns the snapshot at the current node.
func (t *Timeline) State() *types.State {
	return t.Current.State
}

// Path returns the moves from root to current.
func (t *Timeline) Path() []types.Move {
	var path []types.Move
	for node := t.Current; node != t.Root; node = node.Parent {
		path = append(path, node.Move)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Depth returns the number of moves between root and current.
func (t *Timeline) Depth() int {
	n := 0
	for node := t.Current; node != t.Root; node = node.Parent {
		n++
	}
	return n
}

// NumVariations returns the number of siblings at the current node's level.
// Returns 0 at root.
func (t *Timeline) NumVariations() int {
	if t.Current.Parent == nil {
		return 0
	}
	return len(t.Current.Parent.Children)
}

// VariationIndex returns which child of parent the current node is.
// Returns -1 at root.
func (t *Timeline) VariationIndex() int {
	return t.childIndex()
}

// CanRedo returns true if the current node has children.
func (t *Timeline) CanRedo() bool {
	return len(t.Current.Children) > 0
}

func (t *Timeline) childIndex() int {
	if t.Current.Parent == nil {
		return -1
	}
	for i, child := range t.Current.Parent.Children {
		if child == t.Current {
			return i
		}
	}
	return -1
}
