package checker

import (
	"fmt"
	"io"
	"strings"
)

// Quiet is the verbosity that suppresses all output; the result is carried
// by the exit code alone.
const Quiet = -1

// Render writes the report to w at the given verbosity:
//
//	-1  nothing
//	 0  the one-line summary only
//	 1  one "* PASS:"/"* FAIL:" line per check, then the summary
//	2-4 progressively deeper detail lines, each gated by its own level
//
// With failuresOnly, passing checks contribute no lines at all; the summary
// line is always printed (unless quiet).
func (r *Report) Render(w io.Writer, verbosity int, failuresOnly bool) {
	if verbosity < 0 {
		return
	}

	if verbosity >= 1 {
		for _, chk := range r.Checks {
			if failuresOnly && chk.Passed {
				continue
			}
			fmt.Fprintf(w, "* %s: %s\n", passFail(chk.Passed), chk.Summary)
			for _, d := range chk.Details {
				if d.Level > verbosity {
					continue
				}
				indent := strings.Repeat("  ", d.Level-1)
				fmt.Fprintf(w, "%s- %s: %s\n", indent, passFail(d.OK), d.Text)
			}
		}
		fmt.Fprintln(w)
	}

	if r.Passed() {
		fmt.Fprintf(w, "%s PASSES all checks - it appears to be a correct Phase 2 file\n", r.Filename)
	} else {
		fmt.Fprintf(w, "%s FAILS at least one check - it may be a Phase 1 file\n", r.Filename)
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
