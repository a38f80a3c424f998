package ggg

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed expectations.yaml
var expectationsYAML []byte

// Expectations holds the non-tabular Phase 2 expectations: the version
// string each processing stage must report, and the per-window variable
// templates that define the InGaAs variable census.
type Expectations struct {
	ProgramVersions         map[string]string `yaml:"program_versions"`
	WindowVariableTemplates []string          `yaml:"window_variable_templates"`
}

// LoadExpectations parses the embedded expectations document.
func LoadExpectations() (*Expectations, error) {
	var e Expectations
	if err := yaml.Unmarshal(expectationsYAML, &e); err != nil {
		return nil, fmt.Errorf("expectations document: %w", err)
	}
	if len(e.ProgramVersions) == 0 {
		return nil, fmt.Errorf("expectations document: no program versions")
	}
	if len(e.WindowVariableTemplates) == 0 {
		return nil, fmt.Errorf("expectations document: no window variable templates")
	}
	return &e, nil
}

// Stages returns the processing stage names in stable order.
func (e *Expectations) Stages() []string {
	stages := make([]string, 0, len(e.ProgramVersions))
	for s := range e.ProgramVersions {
		stages = append(stages, s)
	}
	sort.Strings(stages)
	return stages
}

// VersionAttr is the name of the global attribute carrying a stage's
// version string.
func VersionAttr(stage string) string {
	return stage + "_version"
}

// WindowVariables expands the census templates over the retained windows,
// yielding every variable name the Phase 2 file must contain. The result is
// sorted and duplicate-free.
func (e *Expectations) WindowVariables(windows []Window) []string {
	seen := make(map[string]bool)
	var names []string
	for _, w := range windows {
		for _, tmpl := range e.WindowVariableTemplates {
			name := fmt.Sprintf(tmpl, w.Name)
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
