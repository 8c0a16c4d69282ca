// Package table projects records through columns into a render-ready structure.
package table

// TextClass tags rows holding pass-through fragments.
const TextClass = "text"

// NoTitle stands in for a column without a title.
const NoTitle = "notitle"

// Blank is shown for an empty fragment so the row stays visible.
const Blank = " "

// HeaderCell is one column heading.
type HeaderCell struct {
	Key   string
	Title string
}

// Header is the heading row.
type Header struct {
	Cells []HeaderCell
}

// Cell is one rendered value.  Span is the number of columns it covers.
type Cell struct {
	Key  string
	Text string
	Span int
}

// Row is one rendered record tagged with a style class.
type Row struct {
	Class string
	Cells []Cell
}

// Table is the header followed by one row per record.
type Table struct {
	Header Header
	Rows   []Row
}
