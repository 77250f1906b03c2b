package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/verdict/internal/compare"
	"github.com/roach88/verdict/internal/result"
)

// PrintOptions controls terminal rendering.
type PrintOptions struct {
	SummaryOnly  bool // suppress per-test lines
	PrintPassing bool // include passing tests in per-test lines
	DescrOnFail  bool // show output blocks for failing tests
	DescrOnPass  bool // show output blocks for passing tests
}

// DefaultPrintOptions shows failing tests with their output.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{DescrOnFail: true, DescrOnPass: true}
}

// FormatEntryResult renders an entry verdict: green PASS, or red FAIL with
// the reason code.
func FormatEntryResult(e *compare.Entry) string {
	if e.IsPassing() {
		return Color("PASS", OKGreen)
	}
	return Color(fmt.Sprintf("FAIL (%s)", e.Reason), Fail)
}

// FormatTestResult renders a plain test verdict.
func FormatTestResult(t *result.Test) string {
	if t.IsPassing() {
		return Color("PASS", OKGreen)
	}
	return Color("FAIL", Fail)
}

// PrintComparison writes the per-test verdict lines and the reconciliation
// footer. Returns whether every entry passed.
func PrintComparison(w io.Writer, r *compare.Result, opts PrintOptions) bool {
	total, passed, failed := 0, 0, 0

	for _, e := range r.Entries() {
		if !opts.SummaryOnly {
			if opts.PrintPassing || !e.IsPassing() {
				fmt.Fprintf(w, "%-10s  %s\n", e.Name, FormatEntryResult(e))
				show := (e.IsPassing() && opts.DescrOnPass) || (!e.IsPassing() && opts.DescrOnFail)
				if show {
					fmt.Fprintf(w, "\t%s\n", indent(e.Output))
				}
			}
		}
		if e.IsPassing() {
			passed++
		} else {
			failed++
		}
		total++
	}

	if total > 0 {
		failedStr := ""
		if failed > 0 {
			failedStr = fmt.Sprintf("(%d failed)", failed)
		}
		fmt.Fprintf(w, "=== Check expected results ===\n  Matched: %d / %d tests %s %30s\n",
			passed, total, failedStr, FormatStatusBool(r.IsPassing()))
	} else {
		fmt.Fprintln(w, "No tests found")
	}

	return failed == 0
}

// PrintSet writes a result-set summary: per-test verdicts, pass counts, a
// score line when the set carries points, and any grading notes.
func PrintSet(w io.Writer, s *result.Set, printTests bool, opts PrintOptions) {
	total, passed, failed := 0, 0, 0

	for _, t := range s.Tests() {
		if printTests {
			fmt.Fprintf(w, "%s: %-10s  %s\n", FormatTestResult(t), scoreStr(t), t.Name)
			show := (t.IsPassing() && opts.DescrOnPass) || (!t.IsPassing() && opts.DescrOnFail)
			if show {
				fmt.Fprintf(w, "\t%s\n", indent(t.Output))
			}
		}
		if t.IsPassing() {
			passed++
		} else {
			failed++
		}
		total++
	}

	if total > 0 {
		failedStr := ""
		if failed > 0 {
			failedStr = fmt.Sprintf("(%d failed)", failed)
		}
		fmt.Fprintf(w, "=== Tests ===\n  Passed: %d / %d tests %s %31s\n",
			passed, total, failedStr, FormatStatusBool(failed == 0))
	} else {
		fmt.Fprintln(w, "No per-test results found")
	}

	if s.MaxScore() != 0 {
		fmt.Fprintf(w, "  Score: %v/%v\n", s.Score(), s.MaxScore())
	}

	PrintNotes(w, s)
}

// PrintNotes writes the grading-notes block when notes are attached.
func PrintNotes(w io.Writer, s *result.Set) {
	if !s.HasNotes() {
		return
	}
	specs, err := s.GradedSpecs()
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", Color("Error:", Fail), err)
		return
	}
	fmt.Fprintln(w, "=== Grading notes ===")
	for _, spec := range specs {
		fmt.Fprintf(w, "  %s:  %s\n", spec.Name, spec.FormatResult())
	}
}

// scoreStr renders a test's score fraction when its extra bag carries
// points, empty otherwise.
func scoreStr(t *result.Test) string {
	extra := t.Extra()
	max, ok := extra["max_score"]
	if !ok {
		return ""
	}
	score := extra["score"]
	if score == nil {
		score = 0
	}
	return fmt.Sprintf("%v/%v", score, max)
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n\t")
}
