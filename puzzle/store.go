package puzzle

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"termjigsaw/history"
	"termjigsaw/types"
)

// ErrNotInitialized is returned when a move is dispatched before the first InitializeAction.
var ErrNotInitialized = errors.New("puzzle not initialized")

// Change describes the outcome of one dispatched action.
type Change struct {
	Action   Action
	State    *types.State
	Accepted bool // false when a drop hit an occupied slot
}

// Store owns the current snapshot of a puzzle session.
// Actions are applied one at a time; published snapshots are never modified,
// so readers may keep any snapshot they were handed.
type Store struct {
	mu       sync.RWMutex
	id       uuid.UUID
	log      *slog.Logger
	timeline *history.Timeline
	rejected int
	onChange []func(Change)
}

// NewStore creates an empty store. Dispatch an InitializeAction before any move.
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.New()
	return &Store{
		id:  id,
		log: log.With("session", id.String()),
	}
}

// OnChange registers a callback run after every dispatched action.
// Callbacks run on the dispatching goroutine, outside the store lock.
func (s *Store) OnChange(f func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, f)
}

// Dispatch applies action to the current state.
// The returned state is the new current state, which is the old one when a
// drop was rejected.
func (s *Store) Dispatch(action Action) (*types.State, error) {
	s.mu.Lock()
	var prev *types.State
	if s.timeline != nil {
		prev = s.timeline.State()
	}
	if _, ok := action.(MoveAction); ok && prev == nil {
		s.mu.Unlock()
		return nil, ErrNotInitialized
	}

	next, err := Reduce(prev, action)
	if err != nil {
		s.mu.Unlock()
		s.log.Error("action failed", "action", action, "err", err)
		return nil, err
	}

	change := Change{Action: action, State: next, Accepted: next != prev}
	switch a := action.(type) {
	case InitializeAction:
		s.timeline = history.NewTimeline(next)
		s.rejected = 0
		s.log.Info("initialized", "pieces", next.Size(), "shuffled", next.Shuffled)
	case MoveAction:
		if change.Accepted {
			s.timeline.Push(types.Move(a), next)
			s.log.Debug("move", "piece", a.PieceID, "target", a.Target, "index", a.Index)
		} else {
			s.rejected++
			s.log.Debug("drop rejected", "piece", a.PieceID, "target", a.Target, "index", a.Index)
		}
	}
	callbacks := s.onChange
	s.mu.Unlock()

	for _, f := range callbacks {
		f(change)
	}
	return next, nil
}

// Undo steps back one accepted move. Returns false if there is nothing to undo.
func (s *Store) Undo() bool {
	return s.navigate("undo", (*history.Timeline).Back)
}

// Redo replays the most recently undone move. Returns false if there is none.
func (s *Store) Redo() bool {
	return s.navigate("redo", (*history.Timeline).Redo)
}

// NextBranch switches to the following sibling of the current move, wrapping
// around. Returns false if the last move has no alternatives.
func (s *Store) NextBranch() bool {
	return s.navigate("next branch", (*history.Timeline).NextVariation)
}

// PrevBranch switches to the preceding sibling of the current move.
func (s *Store) PrevBranch() bool {
	return s.navigate("prev branch", (*history.Timeline).PrevVariation)
}

// Branch returns the position of the current move among its alternatives
// and how many there are. Both are 0 when there is nothing to choose from.
func (s *Store) Branch() (index, count int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.timeline == nil || s.timeline.NumVariations() < 2 {
		return 0, 0
	}
	return s.timeline.VariationIndex(), s.timeline.NumVariations()
}

func (s *Store) navigate(what string, step func(*history.Timeline) bool) bool {
	s.mu.Lock()
	if s.timeline == nil || !step(s.timeline) {
		s.mu.Unlock()
		return false
	}
	change := Change{State: s.timeline.State(), Accepted: true}
	callbacks := s.onChange
	s.mu.Unlock()

	s.log.Debug(what, "depth", s.Moves())
	for _, f := range callbacks {
		f(change)
	}
	return true
}

// State returns the current snapshot, or nil before initialization.
func (s *Store) State() *types.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.timeline == nil {
		return nil
	}
	return s.timeline.State()
}

// Moves returns the number of accepted moves leading to the current state.
func (s *Store) Moves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.timeline == nil {
		return 0
	}
	return s.timeline.Depth()
}

// History returns the accepted moves leading to the current state.
func (s *Store) History() []types.Move {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.timeline == nil {
		return nil
	}
	return s.timeline.Path()
}

// CanRedo returns true if Redo would succeed.
func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeline != nil && s.timeline.CanRedo()
}

// Rejected returns the number of drops onto occupied slots this session.
func (s *Store) Rejected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rejected
}

// Placed returns the number of pieces currently on the solved board.
func (s *Store) Placed() int {
	st := s.State()
	if st == nil {
		return 0
	}
	return st.Solved.Occupied()
}

// SessionID identifies this store in logs.
func (s *Store) SessionID() uuid.UUID {
	return s.id
}
