// Package report renders comparison and result-set verdicts for humans:
// ANSI-colored terminal summaries and a standalone HTML document. It
// consumes only the comparison model's public read interface.
package report

import "fmt"

// ANSI escape codes used in terminal output.
const (
	Header    = "\033[95m"
	OKBlue    = "\033[94m"
	OKCyan    = "\033[96m"
	OKGreen   = "\033[92m"
	Warning   = "\033[93m"
	Fail      = "\033[91m"
	EndC      = "\033[0m"
	Bold      = "\033[1m"
	Underline = "\033[4m"
)

// Color wraps a string in the given escape code.
func Color(s, code string) string {
	return code + s + EndC
}

// FormatStatusBool renders a bracketed, colored PASS/FAIL marker.
func FormatStatusBool(ok bool) string {
	if ok {
		return fmt.Sprintf("[%s]", Color("PASS", OKGreen))
	}
	return fmt.Sprintf("[%s]", Color("FAIL", Fail))
}
