// Package testutil provides an in-memory ncdf.File and fixture builders for
// checker and CLI tests.
package testutil

import (
	"fmt"
	"sort"

	"github.com/tccon-qc/phase2check/internal/ggg"
	"github.com/tccon-qc/phase2check/internal/ncdf"
)

// FakeFile is an in-memory ncdf.File.
type FakeFile struct {
	Vars     map[string][]float64
	Attrs    map[string]string
	ReadErrs map[string]error // forces FloatValues of a present variable to fail
	Closed   bool
}

// NewFakeFile returns an empty FakeFile.
func NewFakeFile() *FakeFile {
	return &FakeFile{
		Vars:     make(map[string][]float64),
		Attrs:    make(map[string]string),
		ReadErrs: make(map[string]error),
	}
}

func (f *FakeFile) HasVariable(name string) bool {
	if _, ok := f.Vars[name]; ok {
		return true
	}
	_, ok := f.ReadErrs[name]
	return ok
}

func (f *FakeFile) Variables() []string {
	names := make([]string, 0, len(f.Vars))
	for name := range f.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *FakeFile) FloatValues(name string) ([]float64, error) {
	if err, ok := f.ReadErrs[name]; ok {
		return nil, err
	}
	vals, ok := f.Vars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ncdf.ErrNotFound, name)
	}
	return vals, nil
}

func (f *FakeFile) GlobalAttr(name string) (string, bool) {
	val, ok := f.Attrs[name]
	return val, ok
}

func (f *FakeFile) Close() error {
	f.Closed = true
	return nil
}

// fill repeats a reference value the way a per-spectrum variable would.
func fill(value float64) []float64 {
	return []float64{value, value, value}
}

// PassingFile builds a fake file that satisfies every Phase 2 expectation in
// the given tables and expectations: all correction-factor variables at
// their reference values, every retained window's variables present, no
// removed window's variables, and matching stage version attributes.
func PassingFile(tables *ggg.Tables, expect *ggg.Expectations) *FakeFile {
	f := NewFakeFile()
	for _, a := range tables.ADCFs {
		f.Vars[a.Window+"_adcf"] = fill(a.Value)
		f.Vars[a.Window+"_adcf_error"] = fill(a.Err)
		f.Vars[a.Window+"_g"] = fill(a.G)
		f.Vars[a.Window+"_p"] = fill(a.P)
	}
	for _, a := range tables.AICFs {
		f.Vars[a.Gas+"_aicf"] = fill(a.Value)
		f.Vars[a.Gas+"_aicf_error"] = fill(a.Err)
	}
	for _, w := range tables.Windows {
		f.Vars["vsw_sf_"+w.Name] = fill(w.SF)
	}
	for _, name := range expect.WindowVariables(tables.Windows) {
		if _, ok := f.Vars[name]; !ok {
			f.Vars[name] = fill(0)
		}
	}
	for stage, version := range expect.ProgramVersions {
		f.Attrs[ggg.VersionAttr(stage)] = version
	}
	return f
}
