package ggg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExpectations(t *testing.T) {
	e, err := LoadExpectations()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"airmass_correction",
		"collate_results",
		"gfit",
		"gsetup",
		"insitu_correction",
	}, e.Stages())
	assert.NotEmpty(t, e.ProgramVersions["gfit"])
	assert.NotEmpty(t, e.WindowVariableTemplates)
}

func TestVersionAttr(t *testing.T) {
	assert.Equal(t, "gfit_version", VersionAttr("gfit"))
}

func TestWindowVariables(t *testing.T) {
	e := &Expectations{
		WindowVariableTemplates: []string{"vsw_%s", "vsw_ada_x%s"},
	}
	windows := []Window{
		{Name: "co2_6220"},
		{Name: "ch4_6002"},
	}

	names := e.WindowVariables(windows)
	assert.Equal(t, []string{
		"vsw_ada_xch4_6002",
		"vsw_ada_xco2_6220",
		"vsw_ch4_6002",
		"vsw_co2_6220",
	}, names)
}

func TestWindowVariablesDeduplicates(t *testing.T) {
	e := &Expectations{
		WindowVariableTemplates: []string{"vsw_%s", "vsw_%s"},
	}
	names := e.WindowVariables([]Window{{Name: "co2_6220"}})
	assert.Equal(t, []string{"vsw_co2_6220"}, names)
}

func TestWindowVariablesFullCensusSize(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)
	e, err := LoadExpectations()
	require.NoError(t, err)

	names := e.WindowVariables(tables.Windows)
	assert.Len(t, names, len(tables.Windows)*len(e.WindowVariableTemplates))
}
