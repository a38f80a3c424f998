package ncdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenSlices(t *testing.T) {
	vals, err := flatten([]float32{1.5, 2.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, vals)

	vals, err = flatten([]int16{-3, 7})
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, 7}, vals)
}

func TestFlattenScalar(t *testing.T) {
	vals, err := flatten(float32(1.001))
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.InDelta(t, 1.001, vals[0], 1e-6)
}

func TestFlattenRowMajor(t *testing.T) {
	vals, err := flatten([][]float32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, vals)
}

func TestFlattenUnsupportedType(t *testing.T) {
	_, err := flatten("spectrum_name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported element type")
}
