package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tccon-qc/phase2check/internal/ggg"
	"github.com/tccon-qc/phase2check/internal/ncdf"
	"github.com/tccon-qc/phase2check/internal/testutil"
)

// withFile routes openFile to an in-memory file for the duration of a test.
func withFile(t *testing.T, f ncdf.File) {
	t.Helper()
	orig := openFile
	openFile = func(string) (ncdf.File, error) { return f, nil }
	t.Cleanup(func() { openFile = orig })
}

func withOpenError(t *testing.T, err error) {
	t.Helper()
	orig := openFile
	openFile = func(string) (ncdf.File, error) { return nil, err }
	t.Cleanup(func() { openFile = orig })
}

func passingFile(t *testing.T) *testutil.FakeFile {
	t.Helper()
	tables, err := ggg.Load()
	require.NoError(t, err)
	expect, err := ggg.LoadExpectations()
	require.NoError(t, err)
	return testutil.PassingFile(tables, expect)
}

func execute(t *testing.T, args ...string) (*cobra.Command, string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cmd, buf.String(), err
}

func TestPassingFileSummaryLine(t *testing.T) {
	withFile(t, passingFile(t))

	_, out, err := execute(t, "test.nc")
	require.NoError(t, err)
	assert.Equal(t, "test.nc PASSES all checks - it appears to be a correct Phase 2 file\n", out)
}

func TestFailingFileExitCode(t *testing.T) {
	f := passingFile(t)
	f.Vars["xco2_6220_adcf"] = []float64{-0.5}
	withFile(t, f)

	_, out, err := execute(t, "test.nc")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "test.nc FAILS at least one check - it may be a Phase 1 file\n", out)
}

func TestQuietFailingFilePrintsNothing(t *testing.T) {
	f := passingFile(t)
	delete(f.Vars, "xco2_6220_adcf")
	withFile(t, f)

	_, out, err := execute(t, "--quiet", "test.nc")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, out)
}

func TestVerboseFailuresOnly(t *testing.T) {
	f := passingFile(t)
	f.Attrs["gfit_version"] = "GFIT Version 0.00"
	withFile(t, f)

	_, out, err := execute(t, "-vvvv", "-f", "test.nc")
	require.Error(t, err)
	assert.NotContains(t, out, "* PASS:")
	assert.Contains(t, out, "* FAIL: Program version strings do not match expected Phase 2 values\n")
	assert.Contains(t, out, "expected")
}

func TestVerboseShowsAllChecks(t *testing.T) {
	withFile(t, passingFile(t))

	_, out, err := execute(t, "-v", "test.nc")
	require.NoError(t, err)
	assert.Contains(t, out, "* PASS: ADCFs match expected values\n")
	assert.Contains(t, out, "* PASS: AICFs match expected values\n")
	assert.Contains(t, out, "* PASS: Window-to-window scale factors match expected values\n")
	assert.Contains(t, out, "* PASS: All windows expected to be present are\n")
	assert.Contains(t, out, "* PASS: All windows expected to be removed are\n")
	assert.Contains(t, out, "* PASS: Program version strings match expected Phase 2 values\n")
	assert.Contains(t, out, "* PASS: All expected InGaAs window variables are present\n")
}

func TestOpenErrorIsFatal(t *testing.T) {
	withOpenError(t, errors.New("not a netCDF file"))

	_, out, err := execute(t, "bad.nc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unable to open bad.nc")
	assert.Empty(t, out, "no checks may run when the file cannot be opened")
}

func TestFileHandleClosedOnFailure(t *testing.T) {
	f := passingFile(t)
	delete(f.Vars, "xco2_6220_adcf")
	withFile(t, f)

	_, _, err := execute(t, "-q", "test.nc")
	require.Error(t, err)
	assert.True(t, f.Closed)
}

func TestVerboseAndQuietAreMutuallyExclusive(t *testing.T) {
	withFile(t, passingFile(t))

	_, _, err := execute(t, "-v", "-q", "test.nc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMissingFileArgument(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
