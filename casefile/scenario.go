// Package casefile reads and writes installation cases: TOML scenario files
// and CSV batch tables.
package casefile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	toml "github.com/pelletier/go-toml/v2"
)

const currentSchemaVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported scenario schema version")
	ErrCaseNotFound       = errors.New("case not found")
	ErrDuplicateCase      = errors.New("duplicate case name")
)

type scenarioFile struct {
	Version int    `toml:"version"`
	Cases   []Case `toml:"case"`
}

// Case is a named installation.
type Case struct {
	Name string `toml:"name" csv:"name" json:"name"`
	pond.Params
}

func (s *scenarioFile) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	for i := range s.Cases {
		s.Cases[i].Params = s.Cases[i].Params.WithWaterDefaults()
		if s.Cases[i].Name == "" {
			s.Cases[i].Name = fmt.Sprintf("case-%d", i+1)
		}
	}
}

func (s scenarioFile) validate() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("version %d (current %d): %w", s.Version, currentSchemaVersion, ErrUnsupportedVersion)
	}

	seen := make(map[string]bool, len(s.Cases))
	for _, c := range s.Cases {
		if seen[c.Name] {
			return fmt.Errorf("%q: %w", c.Name, ErrDuplicateCase)
		}
		seen[c.Name] = true
		if err := c.Validate(); err != nil {
			return fmt.Errorf("case %q: %w", c.Name, err)
		}
	}
	return nil
}

// Scenarios is the content of a scenario file.
type Scenarios struct {
	cases []Case
}

// LoadScenarios reads a TOML scenario file.
func LoadScenarios(path string) (*Scenarios, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return ParseScenarios(data)
}

// ParseScenarios decodes a TOML scenario document, fills water defaults and
// validates every case.
func ParseScenarios(data []byte) (*Scenarios, error) {
	var file scenarioFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode scenario file: %w", err)
	}
	file.applyDefaults()
	if err := file.validate(); err != nil {
		return nil, err
	}
	return &Scenarios{cases: file.Cases}, nil
}

// SaveScenarios writes cases as a TOML scenario file.
func SaveScenarios(path string, cases []Case) error {
	data, err := toml.Marshal(scenarioFile{Version: currentSchemaVersion, Cases: cases})
	if err != nil {
		return fmt.Errorf("encode scenario file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scenario file: %w", err)
	}
	return nil
}

// Cases returns the cases in file order.
func (s *Scenarios) Cases() []Case {
	out := make([]Case, len(s.cases))
	copy(out, s.cases)
	return out
}

// Names returns the case names sorted.
func (s *Scenarios) Names() []string {
	names := make([]string, 0, len(s.cases))
	for _, c := range s.cases {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Get returns the case called name.
func (s *Scenarios) Get(name string) (Case, error) {
	for _, c := range s.cases {
		if c.Name == name {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("%q: %w", name, ErrCaseNotFound)
}
