package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tccon-qc/phase2check/internal/ncdf"
)

func TestFakeFileMissingVariable(t *testing.T) {
	f := NewFakeFile()
	assert.False(t, f.HasVariable("xco2_6220_adcf"))

	_, err := f.FloatValues("xco2_6220_adcf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ncdf.ErrNotFound))
}

func TestFakeFileReadError(t *testing.T) {
	f := NewFakeFile()
	f.ReadErrs["vsw_sf_co2_6220"] = errors.New("corrupt chunk")

	assert.True(t, f.HasVariable("vsw_sf_co2_6220"))
	_, err := f.FloatValues("vsw_sf_co2_6220")
	assert.EqualError(t, err, "corrupt chunk")
}

func TestFakeFileImplementsFile(t *testing.T) {
	var _ ncdf.File = NewFakeFile()
	f := NewFakeFile()
	f.Vars["b"] = []float64{1}
	f.Vars["a"] = []float64{2}
	assert.Equal(t, []string{"a", "b"}, f.Variables())
	require.NoError(t, f.Close())
	assert.True(t, f.Closed)
}
