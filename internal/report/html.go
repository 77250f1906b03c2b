package report

import (
	"html/template"
	"io"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/verdict/internal/compare"
)

// htmlTemplate is the standalone comparison report document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<title>Results for run {{.RunID}}</title>
<style>
table { border-collapse: collapse; width: 100%; }
td, th { padding: 0.3em; border: 1px solid #dddddd; }
tr:nth-child(even) { background-color: #f2f2f2; }
tr:hover { background-color: #dddddd; }
th { padding-top: 0.5em; padding-bottom: 0.5em; text-align: left; background-color: #2286f4; color: white; }
.fail { color: #ff0000; }
.pass { color: #4caf50; }
.bar-outer { background-color: #eeeeee; border-radius: 1px; overflow: hidden; border: 1px solid #2222; height: 1.2em; width: 150px; position: relative; }
.bar-inner { height: 100%; text-align: right; padding-right: 1px; font-weight: bold; line-height: 1.2em; }
.bar-green { background-color: #4caf50; }
.bar-red { background-color: #f44336; }
.container { width: 800px; }
.test-output summary { font-size: 0.9em; }
.test-output pre { color: white; background-color: black; }
</style>
</head>
<body>
<div class="container">
<h1 class="title">Results for run {{.RunID}}</h1>
<p>Matched: {{.Passed}} / {{.Total}} tests
<span class="{{if .Passing}}pass{{else}}fail{{end}}">{{if .Passing}}PASS{{else}}FAIL{{end}}</span></p>
<div class="bar-outer"><div class="bar-inner {{.BarClass}}" style="width: {{.Percent}}%"></div></div>
<table class="test-summary">
<tr><th>Test</th><th>Verdict</th><th>Reason</th><th>Output</th></tr>
{{range .Entries}}<tr>
<td>{{.Name}}</td>
<td class="{{if .Passing}}pass{{else}}fail{{end}}">{{if .Passing}}PASS{{else}}FAIL{{end}}</td>
<td>{{.Reason}}</td>
<td class="test-output"><details><summary>output</summary><pre>{{.Output}}</pre></details></td>
</tr>{{end}}
</table>
</div>
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(htmlTemplate))

type htmlEntry struct {
	Name    string
	Passing bool
	Reason  string
	Output  string
}

type htmlData struct {
	RunID    string
	Passed   int
	Total    int
	Percent  int
	Passing  bool
	BarClass string
	Entries  []htmlEntry
}

// RenderHTML writes a standalone HTML report of one comparison. Rendered
// strings are NFC normalized so visually identical names collate the same
// in the document.
func RenderHTML(w io.Writer, r *compare.Result, runID string) error {
	sum := r.Summarize()
	data := htmlData{
		RunID:   norm.NFC.String(runID),
		Passed:  sum.Passed,
		Total:   sum.Tests,
		Passing: r.IsPassing(),
	}
	if sum.Tests > 0 {
		data.Percent = sum.Passed * 100 / sum.Tests
	}
	data.BarClass = "bar-red"
	if r.IsPassing() {
		data.BarClass = "bar-green"
	}
	for _, e := range r.Entries() {
		data.Entries = append(data.Entries, htmlEntry{
			Name:    norm.NFC.String(e.Name),
			Passing: e.IsPassing(),
			Reason:  string(e.Reason),
			Output:  norm.NFC.String(e.Output),
		})
	}
	return htmlTmpl.Execute(w, data)
}
