// Package ggg holds the compiled-in Phase 2 reference data: embedded copies
// of the GGG post-processing input tables and the expected provenance
// metadata, parsed once at startup into immutable lookups.
//
// The tables are the upstream files verbatim. Window names follow the GGG
// convention <first-gas>_<integer center>, e.g. "co2_6220". Lines in the
// windows table prefixed with ':' are windows the Phase 1 schema carried but
// Phase 2 must have dropped.
package ggg

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

//go:embed tables/corrections_airmass_postavg.dat
var adcfTable string

//go:embed tables/corrections_insitu_postavg.dat
var aicfTable string

//go:embed tables/tccon.gnd
var windowsTable string

// ADCF is the airmass-dependent correction factor for one retrieval window,
// together with its uncertainty and the g/p airmass fit parameters.
type ADCF struct {
	Window string
	Value  float64
	Err    float64
	G      float64
	P      float64
}

// AICF is the airmass-independent correction factor for one gas.
type AICF struct {
	Gas   string
	Value float64
	Err   float64
}

// Window is one retained retrieval window and its window-to-window scale
// factor.
type Window struct {
	Name   string
	Gas    string
	Center int
	SF     float64
}

// Tables is the full set of Phase 2 reference values. All slices are sorted
// by window/gas name and must not be mutated after Load.
type Tables struct {
	ADCFs   []ADCF
	AICFs   []AICF
	Windows []Window
	Removed []string // windows Phase 2 must no longer carry
}

// Load parses the embedded reference tables. It only fails if the embedded
// data itself is malformed.
func Load() (*Tables, error) {
	adcfs, err := parseADCFs(adcfTable)
	if err != nil {
		return nil, fmt.Errorf("ADCF table: %w", err)
	}
	aicfs, err := parseAICFs(aicfTable)
	if err != nil {
		return nil, fmt.Errorf("AICF table: %w", err)
	}
	windows, removed, err := parseWindows(windowsTable)
	if err != nil {
		return nil, fmt.Errorf("windows table: %w", err)
	}
	return &Tables{ADCFs: adcfs, AICFs: aicfs, Windows: windows, Removed: removed}, nil
}

func tableLines(text string) []string {
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func parseADCFs(text string) ([]ADCF, error) {
	var out []ADCF
	for i, line := range tableLines(text) {
		if i == 0 {
			continue // column header
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, fmt.Errorf("line %d: want 5 fields, got %d", i+1, len(fields))
		}
		var vals [4]float64
		for j, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			vals[j] = v
		}
		out = append(out, ADCF{
			Window: strings.Trim(fields[0], `"`),
			Value:  vals[0],
			Err:    vals[1],
			G:      vals[2],
			P:      vals[3],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Window < out[j].Window })
	return out, nil
}

func parseAICFs(text string) ([]AICF, error) {
	var out []AICF
	for i, line := range tableLines(text) {
		if i == 0 {
			continue // column header
		}
		// The trailing WMO scale name may contain spaces; only the first
		// three fields matter here.
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: want at least 3 fields, got %d", i+1, len(fields))
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		aicfErr, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, AICF{Gas: strings.Trim(fields[0], `"`), Value: value, Err: aicfErr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Gas < out[j].Gas })
	return out, nil
}

// sfPattern extracts the window-to-window scale factor from a windows table
// line. Lines without an sf= bias default to 1.0.
var sfPattern = regexp.MustCompile(`sf=(\d\.\d+)`)

func parseWindows(text string) ([]Window, []string, error) {
	active := make(map[string]Window)
	var skipped []string
	for i, line := range tableLines(text) {
		if i == 0 {
			continue // column header
		}
		if rest, ok := strings.CutPrefix(line, ":"); ok {
			name, _, _, err := windowName(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			skipped = append(skipped, name)
			continue
		}
		name, gas, center, err := windowName(line)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		sf := 1.0
		if m := sfPattern.FindStringSubmatch(line); m != nil {
			sf, err = strconv.ParseFloat(m[1], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		}
		// Duplicate names (windows fit twice with different flags) collapse
		// to the last entry, matching how GGG itself resolves them.
		active[name] = Window{Name: name, Gas: gas, Center: center, SF: sf}
	}

	windows := make([]Window, 0, len(active))
	for _, w := range active {
		windows = append(windows, w)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Name < windows[j].Name })

	// A skipped window that also appears active was commented out as a
	// duplicate fit, not removed from the schema.
	seen := make(map[string]bool)
	var removed []string
	for _, name := range skipped {
		if _, ok := active[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		removed = append(removed, name)
	}
	sort.Strings(removed)
	return windows, removed, nil
}

// windowName derives the window name from one windows table line:
// the first gas listed after the ':' plus the integer part of the center
// wavenumber, e.g. "co2_6220".
func windowName(line string) (name, gas string, center int, err error) {
	cmd, gases, found := strings.Cut(line, ":")
	if !found {
		return "", "", 0, fmt.Errorf("no gas list in %q", line)
	}
	cmdFields := strings.Fields(cmd)
	gasFields := strings.Fields(gases)
	if len(cmdFields) == 0 || len(gasFields) == 0 {
		return "", "", 0, fmt.Errorf("malformed window line %q", line)
	}
	centerStr, _, _ := strings.Cut(cmdFields[0], ".")
	center, err = strconv.Atoi(centerStr)
	if err != nil {
		return "", "", 0, fmt.Errorf("window center in %q: %w", line, err)
	}
	gas = gasFields[0]
	return gas + "_" + centerStr, gas, center, nil
}
