// Package loader reads dashboard scenarios from YAML or JSON files. With no
// file configured the embedded default scenario is used.
package loader

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/fleetdash/pkg/debug"
	"github.com/vanderheijden86/fleetdash/pkg/metrics"
	"github.com/vanderheijden86/fleetdash/pkg/model"
)

// ScenarioEnvVar names the environment variable that points at a scenario
// file when no path is passed explicitly.
const ScenarioEnvVar = "FLEETDASH_SCENARIO"

//go:embed default_scenario.yaml
var defaultScenario []byte

// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// Format identifies a scenario encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ResolvePath returns path, or the value of ScenarioEnvVar when path is
// empty. An empty result means "use the default scenario".
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return os.Getenv(ScenarioEnvVar)
}

// Default returns the embedded scenario.
func Default() model.Scenario {
	sc, err := Parse(bytes.NewReader(defaultScenario), FormatYAML)
	if err != nil {
		// The embedded file is covered by tests.
		panic(fmt.Sprintf("embedded scenario is invalid: %v", err))
	}
	return sc
}

// Load reads and validates the scenario at path. An empty path returns the
// embedded default.
func Load(path string) (model.Scenario, error) {
	if path == "" {
		return Default(), nil
	}
	defer debug.LogEnterExit("loader.Load " + path)()
	defer metrics.Timer(metrics.ScenarioLoad)()

	format, err := FormatFor(path)
	if err != nil {
		return model.Scenario{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()

	sc, err := Parse(f, format)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario from r.
func Parse(r io.Reader, format Format) (model.Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("reading scenario: %w", err)
	}
	data = stripBOM(data)

	var sc model.Scenario
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &sc)
	case FormatJSON:
		err = json.Unmarshal(data, &sc)
	default:
		return model.Scenario{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return model.Scenario{}, fmt.Errorf("parsing %s scenario: %w", format, err)
	}
	if err := sc.Validate(); err != nil {
		return model.Scenario{}, fmt.Errorf("invalid scenario: %w", err)
	}
	return sc, nil
}

// Save writes sc to path in the format implied by its extension. The file is
// written to a temp sibling and renamed so watchers never see a partial file.
func Save(path string, sc model.Scenario) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(sc)
	case FormatJSON:
		data, err = json.MarshalIndent(sc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
}
