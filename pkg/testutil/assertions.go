package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/fleetdash/pkg/model"
)

// AssertValid verifies the scenario passes validation.
func AssertValid(t *testing.T, sc model.Scenario) {
	t.Helper()
	if err := sc.Validate(); err != nil {
		t.Fatalf("scenario invalid: %v", err)
	}
}

// AssertVariableValue verifies the variable with id holds want.
func AssertVariableValue(t *testing.T, vars []model.Variable, id string, want float64) {
	t.Helper()
	v := FindVariable(vars, id)
	if v == nil {
		t.Fatalf("variable %s not found", id)
	}
	if v.Value != want {
		t.Errorf("variable %s = %v, want %v", id, v.Value, want)
	}
}

// AssertActive verifies the active flag of the variable with id.
func AssertActive(t *testing.T, vars []model.Variable, id string, want bool) {
	t.Helper()
	v := FindVariable(vars, id)
	if v == nil {
		t.Fatalf("variable %s not found", id)
	}
	if v.IsActive != want {
		t.Errorf("variable %s active = %v, want %v", id, v.IsActive, want)
	}
}

// AssertContainsAll verifies every needle occurs in s.
func AssertContainsAll(t *testing.T, s string, needles ...string) {
	t.Helper()
	for _, n := range needles {
		if !strings.Contains(s, n) {
			t.Errorf("expected output to contain %q\n%s", n, s)
		}
	}
}

// AssertJSONEqual compares two values after JSON round-tripping.
func AssertJSONEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}
	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}
	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
// If GENERATE_GOLDEN is set, updates the golden file instead.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()
	if g.update {
		if err := os.MkdirAll(g.dir, 0755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}
	if string(expected) == actual {
		return
	}

	expectedLines := strings.Split(string(expected), "\n")
	actualLines := strings.Split(actual, "\n")
	for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
		var expLine, actLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actLine = actualLines[i]
		}
		if expLine != actLine {
			g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s", i+1, expLine, actLine)
			return
		}
	}
}

// WriteScenarioFile writes sc as YAML (or JSON for a .json name) into dir
// and returns the path.
func WriteScenarioFile(t *testing.T, dir, name string, sc model.Scenario) string {
	t.Helper()

	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(name, ".json") {
		data, err = json.MarshalIndent(sc, "", "  ")
	} else {
		data, err = yaml.Marshal(sc)
	}
	if err != nil {
		t.Fatalf("failed to marshal scenario: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}
	return path
}

// FindVariable finds a variable by id.
func FindVariable(vars []model.Variable, id string) *model.Variable {
	for i := range vars {
		if vars[i].ID == id {
			return &vars[i]
		}
	}
	return nil
}

// VariableIDs extracts all variable ids.
func VariableIDs(vars []model.Variable) []string {
	ids := make([]string, len(vars))
	for i, v := range vars {
		ids[i] = v.ID
	}
	return ids
}
