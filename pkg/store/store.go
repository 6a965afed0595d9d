// Package store holds the dashboard's UI state and applies named transitions
// to it.
//
// Reduce is a pure function from (State, Action) to State. Store wraps it with
// a mutex so one action is fully applied before any reader or subscriber
// observes the result. Snapshots are never mutated after publication: every
// transition copies the slices and maps it touches.
package store

import (
	"sync"

	"github.com/vanderheijden86/fleetdash/pkg/debug"
	"github.com/vanderheijden86/fleetdash/pkg/model"
	"github.com/vanderheijden86/fleetdash/pkg/selection"
)

// PillRef addresses one pill inside a category.
type PillRef struct {
	Category string
	ID       string
}

// IsZero reports whether no pill is referenced.
func (r PillRef) IsZero() bool { return r.Category == "" && r.ID == "" }

// State is an immutable snapshot of the dashboard.
type State struct {
	// Scenario is the loaded data set. Variables below start as a copy of
	// Scenario.Variables and diverge as the user edits them.
	Scenario model.Scenario

	Variables          []model.Variable
	SelectedVariableID string
	HoveredVariableID  string
	HoveredDataPoint   *model.DataPoint
	IsSlideOverOpen    bool
	Pills              selection.Groups

	ActiveTab       int
	FocusedPill     PillRef
	ResultsExpanded bool
	OpenAccordions  selection.Set
	Search          string
}

// New builds the initial state for a scenario.
func New(sc model.Scenario) State {
	return State{
		Scenario:        sc,
		Variables:       cloneVariables(sc.Variables),
		Pills:           selection.NewGroups(sc.DefaultSelections),
		ResultsExpanded: true,
	}
}

// Variable returns the variable with the given id, or false.
func (s State) Variable(id string) (model.Variable, bool) {
	if i := s.variableIndex(id); i >= 0 {
		return s.Variables[i], true
	}
	return model.Variable{}, false
}

// ActiveIDs lists the ids of active variables in declaration order.
func (s State) ActiveIDs() []string {
	var out []string
	for _, v := range s.Variables {
		if v.IsActive {
			out = append(out, v.ID)
		}
	}
	return out
}

func (s State) variableIndex(id string) int {
	for i := range s.Variables {
		if s.Variables[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneVariables(vs []model.Variable) []model.Variable {
	if vs == nil {
		return nil
	}
	out := make([]model.Variable, len(vs))
	copy(out, vs)
	return out
}

// Listener receives each new snapshot after it has been published.
type Listener func(State)

// Store serializes transitions over a State.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store holding initial.
func NewStore(initial State) *Store {
	return &Store{state: initial, listeners: make(map[int]Listener)}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies actions in order and returns the resulting snapshot.
// Listeners are notified once per dispatch, after the whole batch.
func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	next := s.state
	for _, a := range actions {
		next = Reduce(next, a)
		debug.Log("store: %s", a)
	}
	s.state = next
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	for _, l := range ls {
		l(next)
	}
	return next
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
