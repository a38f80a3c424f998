package checker

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/tccon-qc/phase2check/internal/ggg"
	"github.com/tccon-qc/phase2check/internal/ncdf"
)

// Float comparison tolerances. The correction factors are written to four
// decimal places upstream, so anything within 1e-4 absolute is the same
// value; the relative term covers re-serialization rounding of larger
// magnitudes.
const (
	absTol = 1e-4
	relTol = 1e-6
)

// Checker runs the fixed Phase 2 check sequence against a file.
type Checker struct {
	tables *ggg.Tables
	expect *ggg.Expectations
}

// New returns a Checker validating against the given reference data.
func New(tables *ggg.Tables, expect *ggg.Expectations) *Checker {
	return &Checker{tables: tables, expect: expect}
}

// Run executes all checks in display order and returns the report.
func (c *Checker) Run(f ncdf.File, filename string) *Report {
	return &Report{
		Filename: filename,
		Checks: []CheckResult{
			c.CheckADCFs(f),
			c.CheckAICFs(f),
			c.CheckWindowScaleFactors(f),
			c.CheckWindowsPresent(f),
			c.CheckWindowsRemoved(f),
			c.CheckProgramVersions(f),
			c.CheckVariablePresence(f),
		},
	}
}

// summarize fills the pass/fail summary and flag.
func summarize(res *CheckResult, ok bool, passText, failText string) CheckResult {
	res.Passed = ok
	if ok {
		res.Summary = passText
	} else {
		res.Summary = failText
	}
	return *res
}

// checkFloatVar verifies that every element of the named variable equals
// want within tolerance, appending a per-variable detail. Missing variables
// and read errors fail the variable rather than aborting anything.
func checkFloatVar(f ncdf.File, res *CheckResult, name string, want float64) bool {
	vals, err := f.FloatValues(name)
	switch {
	case errors.Is(err, ncdf.ErrNotFound):
		res.add(3, false, "variable '%s' is missing", name)
		return false
	case err != nil:
		res.add(3, false, "could not read variable '%s': %v", name, err)
		return false
	}

	wrong := 0
	for _, v := range vals {
		if !scalar.EqualWithinAbsOrRel(v, want, absTol, relTol) {
			wrong++
		}
	}
	if wrong > 0 {
		percent := float64(wrong) / float64(len(vals)) * 100
		res.add(3, false, "%d/%d (%.2f%%) of %s have incorrect values", wrong, len(vals), percent, name)
		return false
	}
	res.add(3, true, "%s", name)
	return true
}

// CheckADCFs verifies the airmass-dependent correction factors: for every
// window in the reference table, the <win>_adcf, <win>_adcf_error, <win>_g
// and <win>_p variables must hold the reference value in every element.
func (c *Checker) CheckADCFs(f ncdf.File) CheckResult {
	res := CheckResult{Name: "ADCF values"}
	allOK := true
	for _, a := range c.tables.ADCFs {
		var sub CheckResult
		winOK := true
		for _, v := range []struct {
			suffix string
			want   float64
		}{
			{"_adcf", a.Value},
			{"_adcf_error", a.Err},
			{"_g", a.G},
			{"_p", a.P},
		} {
			winOK = checkFloatVar(f, &sub, a.Window+v.suffix, v.want) && winOK
		}
		if winOK {
			res.add(2, true, "%s ADCFs are correct", a.Window)
		} else {
			res.add(2, false, "%s ADCFs are incorrect", a.Window)
		}
		res.Details = append(res.Details, sub.Details...)
		allOK = allOK && winOK
	}
	return summarize(&res, allOK,
		"ADCFs match expected values",
		"ADCFs do not match expected values")
}

// CheckAICFs verifies the airmass-independent correction factors per gas.
func (c *Checker) CheckAICFs(f ncdf.File) CheckResult {
	res := CheckResult{Name: "AICF values"}
	allOK := true
	for _, a := range c.tables.AICFs {
		var sub CheckResult
		gasOK := checkFloatVar(f, &sub, a.Gas+"_aicf", a.Value)
		gasOK = checkFloatVar(f, &sub, a.Gas+"_aicf_error", a.Err) && gasOK
		if gasOK {
			res.add(2, true, "%s AICFs are correct", a.Gas)
		} else {
			res.add(2, false, "%s AICFs are incorrect", a.Gas)
		}
		res.Details = append(res.Details, sub.Details...)
		allOK = allOK && gasOK
	}
	return summarize(&res, allOK,
		"AICFs match expected values",
		"AICFs do not match expected values")
}

// CheckWindowScaleFactors verifies the window-to-window scale factor
// variable vsw_sf_<win> of every retained window against the windows table.
func (c *Checker) CheckWindowScaleFactors(f ncdf.File) CheckResult {
	res := CheckResult{Name: "window-to-window scale factors"}
	allOK := true
	for _, w := range c.tables.Windows {
		var sub CheckResult
		winOK := checkFloatVar(f, &sub, "vsw_sf_"+w.Name, w.SF)
		if winOK {
			res.add(2, true, "%s window-to-window scale factors are correct", w.Name)
		} else {
			res.add(2, false, "%s window-to-window scale factors are incorrect", w.Name)
		}
		res.Details = append(res.Details, sub.Details...)
		allOK = allOK && winOK
	}
	return summarize(&res, allOK,
		"Window-to-window scale factors match expected values",
		"Window-to-window scale factors do not match expected values")
}

// CheckWindowsPresent verifies that every retained window appears in the
// file, detected by the presence of its vsw_ada_x<win> variable.
func (c *Checker) CheckWindowsPresent(f ncdf.File) CheckResult {
	res := CheckResult{Name: "windows present"}
	allOK := true
	for _, w := range c.tables.Windows {
		if f.HasVariable("vsw_ada_x" + w.Name) {
			res.add(2, true, "window '%s' is present as expected", w.Name)
		} else {
			res.add(2, false, "window '%s' is not present but should be", w.Name)
			allOK = false
		}
	}
	return summarize(&res, allOK,
		"All windows expected to be present are",
		"At least one window expected to be present is missing")
}

// CheckWindowsRemoved verifies that no window the Phase 1 schema carried
// but Phase 2 dropped is still in the file. This is a structural regression
// check: a present variable means the migration was not applied.
func (c *Checker) CheckWindowsRemoved(f ncdf.File) CheckResult {
	res := CheckResult{Name: "windows removed"}
	allOK := true
	for _, name := range c.tables.Removed {
		if f.HasVariable("vsw_ada_x" + name) {
			res.add(2, false, "window '%s' is present but should have been removed", name)
			allOK = false
		} else {
			res.add(2, true, "window '%s' is absent as expected", name)
		}
	}
	return summarize(&res, allOK,
		"All windows expected to be removed are",
		"At least one window expected to have been removed is present")
}

// CheckProgramVersions compares each processing stage's <stage>_version
// global attribute against the expected Phase 2 version string.
func (c *Checker) CheckProgramVersions(f ncdf.File) CheckResult {
	res := CheckResult{Name: "program versions"}
	allOK := true
	for _, stage := range c.expect.Stages() {
		attr := ggg.VersionAttr(stage)
		want := c.expect.ProgramVersions[stage]
		got, ok := f.GlobalAttr(attr)
		switch {
		case !ok:
			res.add(2, false, "%s: attribute '%s' not found", stage, attr)
			allOK = false
		case got != want:
			res.add(2, false, "%s: version is '%s', expected '%s'", stage, got, want)
			allOK = false
		default:
			res.add(2, true, "%s version is correct", stage)
		}
	}
	return summarize(&res, allOK,
		"Program version strings match expected Phase 2 values",
		"Program version strings do not match expected Phase 2 values")
}

// CheckVariablePresence counts how many of the expected InGaAs window
// variables are absent from the file. The level-2 detail carries the exact
// missing/total counts; individual names appear at level 4.
func (c *Checker) CheckVariablePresence(f ncdf.File) CheckResult {
	res := CheckResult{Name: "variable presence"}
	expected := c.expect.WindowVariables(c.tables.Windows)
	var missing []string
	for _, name := range expected {
		if !f.HasVariable(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		res.add(2, true, "all %d expected InGaAs window variables are present", len(expected))
		return summarize(&res, true,
			"All expected InGaAs window variables are present",
			"")
	}
	res.add(2, false, "%d/%d expected InGaAs window variables are missing", len(missing), len(expected))
	for _, name := range missing {
		res.add(4, false, "variable '%s' is missing", name)
	}
	return summarize(&res, false,
		"",
		fmt.Sprintf("%d/%d expected InGaAs window variables are missing", len(missing), len(expected)))
}
