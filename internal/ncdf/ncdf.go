// Package ncdf is the narrow read surface the checker needs from a netCDF
// file: variable presence, flattened numeric values, and string global
// attributes. The production implementation wraps the pure-Go netcdf
// reader; tests substitute an in-memory fake.
package ncdf

import (
	"errors"
	"fmt"
	"sort"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// ErrNotFound reports that a named variable does not exist in the file.
var ErrNotFound = errors.New("variable not found")

// File is a read-only handle on one netCDF file. Implementations own the
// underlying resources until Close.
type File interface {
	// HasVariable reports whether the named variable exists.
	HasVariable(name string) bool

	// Variables returns all variable names, sorted.
	Variables() []string

	// FloatValues returns the named variable's values flattened to
	// float64, regardless of the stored element type. It returns an error
	// wrapping ErrNotFound if the variable does not exist.
	FloatValues(name string) ([]float64, error)

	// GlobalAttr returns the named global attribute rendered as a string.
	GlobalAttr(name string) (string, bool)

	Close() error
}

type ncFile struct {
	group api.Group
	names map[string]bool
}

// Open opens a netCDF file for reading. Failure here is the checker's only
// fatal error.
func Open(path string) (File, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	names := make(map[string]bool)
	for _, name := range group.ListVariables() {
		names[name] = true
	}
	return &ncFile{group: group, names: names}, nil
}

func (f *ncFile) HasVariable(name string) bool {
	return f.names[name]
}

func (f *ncFile) Variables() []string {
	names := make([]string, 0, len(f.names))
	for name := range f.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *ncFile) FloatValues(name string) ([]float64, error) {
	if !f.names[name] {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	v, err := f.group.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("reading variable %s: %w", name, err)
	}
	vals, err := flatten(v.Values)
	if err != nil {
		return nil, fmt.Errorf("variable %s: %w", name, err)
	}
	return vals, nil
}

func (f *ncFile) GlobalAttr(name string) (string, bool) {
	val, ok := f.group.Attributes().Get(name)
	if !ok {
		return "", false
	}
	switch s := val.(type) {
	case string:
		return s, true
	case []string:
		if len(s) == 0 {
			return "", true
		}
		return s[0], true
	}
	return fmt.Sprint(val), true
}

func (f *ncFile) Close() error {
	f.group.Close()
	return nil
}

// flatten converts the dynamically-typed value tree the netcdf reader
// returns into a flat []float64. Scalars become one-element slices;
// multi-dimensional variables are flattened row-major.
func flatten(values any) ([]float64, error) {
	switch v := values.(type) {
	case float64:
		return []float64{v}, nil
	case float32:
		return []float64{float64(v)}, nil
	case int32:
		return []float64{float64(v)}, nil
	case int16:
		return []float64{float64(v)}, nil
	case int8:
		return []float64{float64(v)}, nil
	case []float64:
		return v, nil
	case []float32:
		return convertSlice(v), nil
	case []int32:
		return convertSlice(v), nil
	case []int16:
		return convertSlice(v), nil
	case []int8:
		return convertSlice(v), nil
	case [][]float64:
		return flattenRows(v)
	case [][]float32:
		return flattenRows(v)
	case [][]int32:
		return flattenRows(v)
	default:
		return nil, fmt.Errorf("unsupported element type %T", values)
	}
}

func convertSlice[T float32 | float64 | int32 | int16 | int8](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func flattenRows[T float32 | float64 | int32](rows [][]T) ([]float64, error) {
	var out []float64
	for _, row := range rows {
		out = append(out, convertSlice(row)...)
	}
	return out, nil
}
