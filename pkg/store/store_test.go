package store

import (
	"sync"
	"testing"

	"github.com/vanderheijden86/fleetdash/pkg/model"

	"pgregory.net/rapid"
)

func testScenario() model.Scenario {
	return model.Scenario{
		Title:      "test",
		Tabs:       []string{"Charging Stations", "Fleet Sizing", "Parking"},
		SeriesName: "Unsatisfied Demand %",
		Series:     []model.SeriesPoint{{Label: "Apr", Value: 1}},
		Variables: []model.Variable{
			{ID: "a", Name: "A", Min: 0, Max: 10, Value: 5},
			{ID: "b", Name: "B", Min: 0, Max: 1, Value: 0.5, IsActive: true},
		},
		Categories: []model.Category{
			{ID: "cat1", Name: "Category 1", Pills: []model.Pill{{ID: "carbon"}, {ID: "co2"}}},
			{ID: "cat2", Name: "Category 2", Pills: []model.Pill{{ID: "parking"}}},
		},
		DefaultSelections: map[string][]string{"cat1": {"co2"}},
	}
}

func TestReduce_UpdateVariableIsNotClamped(t *testing.T) {
	s := New(model.Scenario{Variables: []model.Variable{{ID: "a", Min: 0, Max: 10, Value: 5}}})

	s = Reduce(s, UpdateVariable{ID: "a", Value: 15})

	v, ok := s.Variable("a")
	if !ok {
		t.Fatal("variable a missing")
	}
	// Values outside [min,max] are stored as entered; clamping is an open
	// product decision.
	if v.Value != 15 {
		t.Errorf("expected unclamped 15, got %g", v.Value)
	}
	if v.InRange() {
		t.Error("expected the stored value to be reported out of range")
	}
}

func TestReduce_UpdateUnknownVariable(t *testing.T) {
	s := New(testScenario())
	next := Reduce(s, UpdateVariable{ID: "zzz", Value: 1})
	if &next.Variables[0] != &s.Variables[0] {
		t.Error("unknown id should return the state unchanged")
	}
}

func TestReduce_ToggleVariable(t *testing.T) {
	s := New(testScenario())

	s = Reduce(s, ToggleVariable{ID: "a"})
	if got := s.ActiveIDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b] active, got %v", got)
	}
	s = Reduce(s, ToggleVariable{ID: "b"})
	if got := s.ActiveIDs(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected [a] active, got %v", got)
	}
}

func TestReduce_ToggleUnknownVariable(t *testing.T) {
	s := New(testScenario())
	before := len(s.ActiveIDs())

	s = Reduce(s, ToggleVariable{ID: "missing"})

	if got := len(s.ActiveIDs()); got != before {
		t.Errorf("active count changed from %d to %d", before, got)
	}
	if len(s.Variables) != 2 {
		t.Errorf("unknown id must not insert a variable, have %d", len(s.Variables))
	}
}

func TestReduce_SlideOver(t *testing.T) {
	s := New(testScenario())

	s = Reduce(s, OpenSlideOver{})
	if !s.IsSlideOverOpen {
		t.Fatal("expected slide-over open")
	}
	s = Reduce(s, CloseSlideOver{})
	if s.IsSlideOverOpen {
		t.Fatal("expected slide-over closed")
	}
	again := Reduce(s, CloseSlideOver{})
	if again.IsSlideOverOpen != s.IsSlideOverOpen {
		t.Error("closing a closed slide-over should be a no-op")
	}
}

func TestReduce_HoveredDataPoint(t *testing.T) {
	s := New(testScenario())
	p := &model.DataPoint{Time: "10:00", Variable: "load", Value: 42, Extra: map[string]float64{"x": 1}}

	s = Reduce(s, SetHoveredDataPoint{Point: p})
	if s.HoveredDataPoint == nil || s.HoveredDataPoint.Value != 42 {
		t.Fatalf("expected hovered point, got %+v", s.HoveredDataPoint)
	}
	p.Extra["x"] = 99
	if s.HoveredDataPoint.Extra["x"] != 1 {
		t.Error("state must not alias the caller's point")
	}

	s = Reduce(s, SetHoveredDataPoint{})
	if s.HoveredDataPoint != nil {
		t.Error("nil point should clear the hover")
	}
}

func TestReduce_HoverAndSelect(t *testing.T) {
	s := New(testScenario())
	s = Reduce(s, SetHoveredVariable{ID: "a"})
	s = Reduce(s, SetSelectedVariable{ID: "b"})
	if s.HoveredVariableID != "a" || s.SelectedVariableID != "b" {
		t.Fatalf("unexpected ids: hovered=%q selected=%q", s.HoveredVariableID, s.SelectedVariableID)
	}
	s = Reduce(s, SetHoveredVariable{})
	if s.HoveredVariableID != "" {
		t.Error("empty id should clear the hover")
	}
}

func TestReduce_PillsAreIndependentPerCategory(t *testing.T) {
	s := New(testScenario())

	s = Reduce(s, TogglePill{Category: "cat2", ID: "parking"})
	s = Reduce(s, TogglePill{Category: "cat1", ID: "co2"})

	if s.Pills.Selected("cat1", "co2") {
		t.Error("co2 should be deselected")
	}
	if !s.Pills.Selected("cat2", "parking") {
		t.Error("parking should be selected")
	}
}

func TestReduce_Tabs(t *testing.T) {
	s := New(testScenario())
	s = Reduce(s, SetActiveTab{Index: 2})
	if s.ActiveTab != 2 {
		t.Fatalf("expected tab 2, got %d", s.ActiveTab)
	}
	s = Reduce(s, SetActiveTab{Index: 7})
	if s.ActiveTab != 2 {
		t.Errorf("out-of-range tab should be ignored, got %d", s.ActiveTab)
	}
}

func TestReduce_AccordionResultsSearch(t *testing.T) {
	s := New(testScenario())
	if !s.ResultsExpanded {
		t.Fatal("results start expanded")
	}
	s = Reduce(s, ToggleResults{})
	s = Reduce(s, ToggleAccordion{Name: "primary"})
	s = Reduce(s, SetSearch{Query: "co2"})
	if s.ResultsExpanded || !s.OpenAccordions.Has("primary") || s.Search != "co2" {
		t.Fatalf("unexpected state: %+v", s)
	}
	s = Reduce(s, ToggleAccordion{Name: "primary"})
	if s.OpenAccordions.Has("primary") {
		t.Error("second toggle should close the accordion")
	}
}

func TestReduce_ResetVariables(t *testing.T) {
	s := New(testScenario())
	s = Reduce(s, UpdateVariable{ID: "a", Value: 9})
	s = Reduce(s, TogglePill{Category: "cat1", ID: "carbon"})

	s = Reduce(s, ResetVariables{})

	if v, _ := s.Variable("a"); v.Value != 5 {
		t.Errorf("expected reset value 5, got %g", v.Value)
	}
	if s.Pills.Selected("cat1", "carbon") || !s.Pills.Selected("cat1", "co2") {
		t.Error("pills should return to the default selection")
	}
}

func TestReduce_LoadScenarioKeepsSurvivingEdits(t *testing.T) {
	s := New(testScenario())
	s = Reduce(s, UpdateVariable{ID: "a", Value: 7})
	s = Reduce(s, SetSelectedVariable{ID: "b"})
	s = Reduce(s, TogglePill{Category: "cat2", ID: "parking"})
	s = Reduce(s, SetHoveredDataPoint{Point: &model.DataPoint{Time: "Apr"}})

	next := testScenario()
	next.Variables = next.Variables[:1]
	next.Categories = next.Categories[:1]

	s = Reduce(s, LoadScenario{Scenario: next})

	if v, _ := s.Variable("a"); v.Value != 7 {
		t.Errorf("edit to a should survive reload, got %g", v.Value)
	}
	if s.SelectedVariableID != "" {
		t.Error("selection of a removed variable should be cleared")
	}
	if s.Pills.Selected("cat2", "parking") {
		t.Error("pill of a removed category should be dropped")
	}
	if !s.Pills.Selected("cat1", "co2") {
		t.Error("surviving pill selection should be kept")
	}
	if s.HoveredDataPoint != nil {
		t.Error("hovered point should be cleared on reload")
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := New(testScenario())
	_ = Reduce(s, UpdateVariable{ID: "a", Value: 1})
	_ = Reduce(s, ToggleVariable{ID: "a"})
	_ = Reduce(s, TogglePill{Category: "cat1", ID: "carbon"})

	if v, _ := s.Variable("a"); v.Value != 5 || v.IsActive {
		t.Errorf("original state mutated: %+v", v)
	}
	if s.Pills.Selected("cat1", "carbon") {
		t.Error("original pill groups mutated")
	}
}

func TestStore_DispatchAndSubscribe(t *testing.T) {
	st := NewStore(New(testScenario()))
	var seen []State
	cancel := st.Subscribe(func(s State) { seen = append(seen, s) })

	st.Dispatch(OpenSlideOver{}, SetSelectedVariable{ID: "a"})
	if len(seen) != 1 {
		t.Fatalf("expected one notification per dispatch, got %d", len(seen))
	}
	if !seen[0].IsSlideOverOpen || seen[0].SelectedVariableID != "a" {
		t.Errorf("listener saw partial state: %+v", seen[0])
	}

	cancel()
	st.Dispatch(CloseSlideOver{})
	if len(seen) != 1 {
		t.Error("cancelled listener was notified")
	}
	if st.Snapshot().IsSlideOverOpen {
		t.Error("snapshot should reflect the last dispatch")
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	st := NewStore(New(testScenario()))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(ToggleVariable{ID: "a"})
		}()
	}
	wg.Wait()
	// 50 toggles cancel out.
	if v, _ := st.Snapshot().Variable("a"); v.IsActive {
		t.Error("expected an even number of toggles to leave a inactive")
	}
}

func TestReduce_ToggleVariableParity_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(testScenario())
		id := rapid.SampledFrom([]string{"a", "b", "missing"}).Draw(t, "id")
		n := rapid.IntRange(0, 20).Draw(t, "n")

		many := s
		for i := 0; i < n; i++ {
			many = Reduce(many, ToggleVariable{ID: id})
		}
		few := s
		for i := 0; i < n%2; i++ {
			few = Reduce(few, ToggleVariable{ID: id})
		}

		a, b := many.ActiveIDs(), few.ActiveIDs()
		if len(a) != len(b) {
			t.Fatalf("n=%d: %v vs %v", n, a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("n=%d: %v vs %v", n, a, b)
			}
		}
	})
}
