package store

import (
	"fmt"

	"github.com/vanderheijden86/fleetdash/pkg/model"
	"github.com/vanderheijden86/fleetdash/pkg/selection"
)

// Action is a named state transition. The set is closed.
type Action interface {
	fmt.Stringer
	action()
}

type (
	// OpenSlideOver shows the variables editor.
	OpenSlideOver struct{}
	// CloseSlideOver hides the variables editor. No-op when already closed.
	CloseSlideOver struct{}
	// SetHoveredDataPoint sets the point shown in the detail popover. A nil
	// Point clears it.
	SetHoveredDataPoint struct{ Point *model.DataPoint }
	// SetHoveredVariable sets the variable under the pointer. Empty clears it.
	SetHoveredVariable struct{ ID string }
	// SetSelectedVariable marks the variable being edited.
	SetSelectedVariable struct{ ID string }
	// ToggleVariable flips a variable's active flag. Unknown ids are ignored.
	ToggleVariable struct{ ID string }
	// UpdateVariable stores Value on the variable with ID. The value is not
	// clamped to the variable's range.
	UpdateVariable struct {
		ID    string
		Value float64
	}
	// TogglePill flips a pill inside its category.
	TogglePill PillRef
	// FocusPill moves keyboard focus to a pill.
	FocusPill PillRef
	// SetActiveTab selects a header tab. Out-of-range indexes are ignored.
	SetActiveTab struct{ Index int }
	// ToggleResults collapses or expands the scenario results banner.
	ToggleResults struct{}
	// ToggleAccordion opens or closes a named slide-over section.
	ToggleAccordion struct{ Name string }
	// SetSearch sets the slide-over search filter.
	SetSearch struct{ Query string }
	// ResetVariables restores variables and pills to the scenario defaults.
	ResetVariables struct{}
	// LoadScenario swaps in a reloaded scenario, keeping user edits and
	// selections whose ids still exist.
	LoadScenario struct{ Scenario model.Scenario }
)

func (OpenSlideOver) action()       {}
func (CloseSlideOver) action()      {}
func (SetHoveredDataPoint) action() {}
func (SetHoveredVariable) action()  {}
func (SetSelectedVariable) action() {}
func (ToggleVariable) action()      {}
func (UpdateVariable) action()      {}
func (TogglePill) action()          {}
func (FocusPill) action()           {}
func (SetActiveTab) action()        {}
func (ToggleResults) action()       {}
func (ToggleAccordion) action()     {}
func (SetSearch) action()           {}
func (ResetVariables) action()      {}
func (LoadScenario) action()        {}

func (OpenSlideOver) String() string  { return "openSlideOver" }
func (CloseSlideOver) String() string { return "closeSlideOver" }
func (a SetHoveredDataPoint) String() string {
	if a.Point == nil {
		return "setHoveredDataPoint(nil)"
	}
	return fmt.Sprintf("setHoveredDataPoint(%s)", a.Point.Time)
}
func (a SetHoveredVariable) String() string  { return fmt.Sprintf("setHoveredVariable(%q)", a.ID) }
func (a SetSelectedVariable) String() string { return fmt.Sprintf("setSelectedVariable(%q)", a.ID) }
func (a ToggleVariable) String() string      { return fmt.Sprintf("toggleVariable(%q)", a.ID) }
func (a UpdateVariable) String() string {
	return fmt.Sprintf("updateVariable(%q, %g)", a.ID, a.Value)
}
func (a TogglePill) String() string      { return fmt.Sprintf("togglePill(%s/%s)", a.Category, a.ID) }
func (a FocusPill) String() string       { return fmt.Sprintf("focusPill(%s/%s)", a.Category, a.ID) }
func (a SetActiveTab) String() string    { return fmt.Sprintf("setActiveTab(%d)", a.Index) }
func (ToggleResults) String() string     { return "toggleResults" }
func (a ToggleAccordion) String() string { return fmt.Sprintf("toggleAccordion(%q)", a.Name) }
func (a SetSearch) String() string       { return fmt.Sprintf("setSearch(%q)", a.Query) }
func (ResetVariables) String() string    { return "resetVariables" }
func (a LoadScenario) String() string    { return fmt.Sprintf("loadScenario(%q)", a.Scenario.Title) }

// Reduce applies a to s. It never mutates s and never fails: actions that
// reference unknown ids return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case OpenSlideOver:
		s.IsSlideOverOpen = true
	case CloseSlideOver:
		if !s.IsSlideOverOpen {
			return s
		}
		s.IsSlideOverOpen = false
	case SetHoveredDataPoint:
		s.HoveredDataPoint = a.Point.Clone()
	case SetHoveredVariable:
		s.HoveredVariableID = a.ID
	case SetSelectedVariable:
		s.SelectedVariableID = a.ID
	case ToggleVariable:
		i := s.variableIndex(a.ID)
		if i < 0 {
			return s
		}
		s.Variables = cloneVariables(s.Variables)
		s.Variables[i].IsActive = !s.Variables[i].IsActive
	case UpdateVariable:
		i := s.variableIndex(a.ID)
		if i < 0 {
			return s
		}
		s.Variables = cloneVariables(s.Variables)
		s.Variables[i].Value = a.Value
	case TogglePill:
		s.Pills = s.Pills.Toggle(a.Category, a.ID)
	case FocusPill:
		s.FocusedPill = PillRef(a)
	case SetActiveTab:
		if a.Index < 0 || a.Index >= len(s.Scenario.Tabs) {
			return s
		}
		s.ActiveTab = a.Index
	case ToggleResults:
		s.ResultsExpanded = !s.ResultsExpanded
	case ToggleAccordion:
		s.OpenAccordions = s.OpenAccordions.Toggle(a.Name)
	case SetSearch:
		s.Search = a.Query
	case ResetVariables:
		s.Variables = cloneVariables(s.Scenario.Variables)
		s.Pills = selection.NewGroups(s.Scenario.DefaultSelections)
	case LoadScenario:
		return reload(s, a.Scenario)
	}
	return s
}

func reload(s State, sc model.Scenario) State {
	prev := s.Variables
	s.Scenario = sc
	s.Variables = cloneVariables(sc.Variables)
	for i := range s.Variables {
		for _, old := range prev {
			if old.ID == s.Variables[i].ID {
				s.Variables[i].Value = old.Value
				s.Variables[i].IsActive = old.IsActive
				break
			}
		}
	}

	if s.variableIndex(s.SelectedVariableID) < 0 {
		s.SelectedVariableID = ""
	}
	if s.variableIndex(s.HoveredVariableID) < 0 {
		s.HoveredVariableID = ""
	}

	known := func(category, id string) bool {
		for _, c := range sc.Categories {
			if c.ID == category {
				return c.FindPill(id) != nil
			}
		}
		return false
	}
	s.Pills = s.Pills.Retain(known)
	if !s.FocusedPill.IsZero() && !known(s.FocusedPill.Category, s.FocusedPill.ID) {
		s.FocusedPill = PillRef{}
	}
	if s.ActiveTab >= len(sc.Tabs) {
		s.ActiveTab = 0
	}
	// The hovered point belongs to the old series.
	s.HoveredDataPoint = nil
	return s
}
