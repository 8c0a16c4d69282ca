// Package markup writes rendered tables as html.
package markup

import (
	"html/template"
	"io"

	"github.com/pkg/errors"

	lt "logan/table"
)

var page = template.Must(template.New("table").Parse(
	`<table class="log analyzer">` +
		`<thead><tr>{{range .Header.Cells}}<th class="log {{.Key}}">{{.Title}}</th>{{end}}</tr></thead>` +
		`<tbody>{{range .Rows}}{{if eq .Class "text"}}<tr class="text">` +
		`{{range .Cells}}<td colspan="{{.Span}}">{{.Text}}</td>{{end}}` +
		`{{else}}<tr class="log {{.Class}}">` +
		`{{range .Cells}}<td class="{{.Key}}">{{.Text}}</td>{{end}}` +
		`{{end}}</tr>
{{end}}</tbody></table>
`))

// Write writes the table as escaped html.
func Write(w io.Writer, tbl lt.Table) (err error) {

	err = page.Execute(w, tbl)
	err = errors.Wrapf(err, "failed to write html table")
	return
}
