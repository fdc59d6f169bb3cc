package report

import (
	"bufio"
	"html/template"
	"io"
	"os"
	"time"

	"confstats/internal/errors"
)

// Document is everything rendered into the HTML report
type Document struct {
	Conference string
	Updated    time.Time

	// Columns are the scale headings shared by all tables
	Columns []string

	Reviewers *Table
	Batches   *Table

	// Topics is nil when no review could be attributed to a topic
	Topics *Table

	// FieldValuesResource names the resource the topics come from, quoted
	// in the placeholder shown instead of the topic table
	FieldValuesResource string
}

// HasTopics reports whether the topic table is rendered
func (d Document) HasTopics() bool {
	return d.Topics != nil
}

var funcs = template.FuncMap{
	"timestamp": func(t time.Time) string {
		return t.Format(time.RFC3339)
	},
	"text": text,
}

// text escapes s for element content only, so signed headings such as +3
// keep their literal plus sign
func text(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}

var reportTemplate = template.Must(template.New("scores").Funcs(funcs).Parse(reportTemplateHTML))

// Render writes the HTML report for doc to w
func Render(w io.Writer, doc Document) error {
	if err := reportTemplate.Execute(w, doc); err != nil {
		return errors.NewStorageError("failed to render report", err)
	}
	return nil
}

// WriteFile renders doc to path, replacing any previous report
func WriteFile(path string, doc Document) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create report file", err).WithContext("path", path)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	if err := Render(buf, doc); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return errors.NewStorageError("failed to write report file", err).WithContext("path", path)
	}
	if err := file.Close(); err != nil {
		return errors.NewStorageError("failed to close report file", err).WithContext("path", path)
	}
	return nil
}

const reportTemplateHTML = `{{define "rows"}}{{range .Records}}<tr>{{range .}}<td>{{text .}}</td>{{end}}</tr>
{{end}}{{end}}{{define "header"}}{{range .}}<th>{{text .}}</th>{{end}}{{end}}<html><head>
<meta charset="UTF-8">
<style>
    table, th, td {
    border: 1px solid black;
    border-collapse: collapse;
    }
</style>
</head>
<body>
<h1> {{text .Conference}} score statistics</h1>
Last update: {{timestamp .Updated}}
<h2>Score distribution by PC member</h2>
<table>
<tr><th>Accept rate</th><th>Reviews</th><th>Name</th>{{template "header" .Columns}}</tr>
{{template "rows" .Reviewers}}</table><br/><hr/><br/>
<h2>Score distribution for batch, by PC member</h2>
<p>This is the combined distribution of scores for the batch of papers that this PC member reviewed (including their own scores)</p>
<table>
<tr><th>Batch accept rate</th><th>Reviews in batch</th><th>Name</th>{{template "header" .Columns}}</tr>
{{template "rows" .Batches}}</table><br/><hr/><br/>
<h2>Score distribution by area</h2>
{{if .HasTopics}}<table>
<tr><th>Accept rate</th><th>Scores</th><th>Area</th>{{template "header" .Columns}}</tr>
{{template "rows" .Topics}}</table>
{{else}}<p>No topic information found in conference data (file {{.FieldValuesResource}})</p>
{{end}}</body></html>
`
