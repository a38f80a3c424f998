// Package checker runs the Phase 2 migration checks against one open netCDF
// file and aggregates them into a layered pass/fail report.
//
// Every check is an independent read-compare-report function: a missing
// variable or attribute, a mismatched value, or a low-level read error
// degrades only that check to Fail with an explanatory detail. The only
// fatal error in the system is failing to open the file, which happens
// before the checker is ever involved.
package checker

import "fmt"

// Detail is one human-readable sub-reason inside a check, visible from
// verbosity Level upward.
type Detail struct {
	Level int
	OK    bool
	Text  string
}

// CheckResult is the outcome of one top-level check.
type CheckResult struct {
	Name    string // short check name, stable across runs
	Passed  bool
	Summary string // one-line outcome for the "* PASS:"/"* FAIL:" report line
	Details []Detail
}

func (r *CheckResult) add(level int, ok bool, format string, args ...any) {
	r.Details = append(r.Details, Detail{Level: level, OK: ok, Text: fmt.Sprintf(format, args...)})
}

// Report is the full outcome of checking one file.
type Report struct {
	Filename string
	Checks   []CheckResult
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}
