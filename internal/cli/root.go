// Package cli implements the phase2check command-line surface: one root
// command taking the netCDF file to check, with verbosity and filtering
// flags controlling how much of the report is printed.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tccon-qc/phase2check/internal/checker"
	"github.com/tccon-qc/phase2check/internal/ggg"
	"github.com/tccon-qc/phase2check/internal/ncdf"
)

// Version of the checker.
const Version = "1.1.0"

// Options holds the root command flags.
type Options struct {
	Verbosity    int  // -v count, 1-4
	Quiet        bool // suppress all stdout
	FailuresOnly bool // drop passing checks' lines from verbose output
}

// openFile opens the file under test; tests substitute an in-memory file.
var openFile = ncdf.Open

// NewRootCommand creates the phase2check root command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "phase2check <netcdf-file>",
		Short: "Check that a TCCON netCDF file was migrated to the Phase 2 schema",
		Long: `Check that a TCCON netCDF file was migrated to the Phase 2 schema.

Runs a fixed set of checks against compiled-in Phase 2 reference data:
correction factors (ADCF/AICF), window-to-window scale factors, the set of
retained and removed retrieval windows, processing-stage program versions,
and the InGaAs variable census. Exit code 0 means every check passed, 1
means at least one failed, 2 means the file could not be checked at all.`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args[0], cmd)
		},
	}

	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "print more of the report (repeatable, up to -vvvv)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "print nothing; the exit code carries the result")
	cmd.Flags().BoolVarP(&opts.FailuresOnly, "failures-only", "f", false, "omit passing checks from verbose output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

func run(opts *Options, path string, cmd *cobra.Command) error {
	tables, err := ggg.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "loading reference tables", err)
	}
	expect, err := ggg.LoadExpectations()
	if err != nil {
		return WrapExitError(ExitCommandError, "loading expectations", err)
	}

	f, err := openFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("unable to open %s", path), err)
	}
	defer f.Close()

	report := checker.New(tables, expect).Run(f, path)

	verbosity := opts.Verbosity
	if opts.Quiet {
		verbosity = checker.Quiet
	}
	report.Render(cmd.OutOrStdout(), verbosity, opts.FailuresOnly)

	if !report.Passed() {
		// The report (or, under --quiet, the exit code) already carries
		// the outcome; no extra error text.
		return NewExitError(ExitFailure, "")
	}
	return nil
}
