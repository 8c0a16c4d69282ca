package table

import (
	nt "logan/entity"
)

// Model holds columns and records and renders them on demand.
type Model struct {
	Columns []nt.Column
	Records []nt.Record
}

// New creates a Model, with default columns when none are given.
func New(columns []nt.Column, records []nt.Record) Model {

	if len(columns) == 0 {
		columns = DefaultColumns()
	}

	return Model{
		Columns: columns,
		Records: records,
	}
}

// Render renders the model's records through its columns.
func (mdl Model) Render() Table {
	return Render(mdl.Records, mdl.Columns)
}

// Render renders a header and one row per record, in order.
func Render(records []nt.Record, columns []nt.Column) Table {

	columns = Visible(columns)
	tbl := Table{
		Header: RenderHeader(columns),
		Rows:   make([]Row, 0, len(records)),
	}

	for _, rec := range records {
		tbl.Rows = append(tbl.Rows, RenderRow(rec, columns))
	}

	return tbl
}

// RenderHeader renders one heading per visible column.
func RenderHeader(columns []nt.Column) Header {

	columns = Visible(columns)
	hdr := Header{Cells: make([]HeaderCell, 0, len(columns))}
	for _, col := range columns {
		title := col.Title
		if title == "" {
			title = NoTitle
		}
		hdr.Cells = append(hdr.Cells, HeaderCell{Key: col.Key, Title: title})
	}

	return hdr
}

// RenderRow renders a record as one cell per visible column, tagged by level,
// or a fragment as a single text cell spanning them.
func RenderRow(rec nt.Record, columns []nt.Column) Row {

	columns = Visible(columns)
	if rec.IsFragment() {
		text := rec.Source
		if text == "" {
			text = Blank
		}

		return Row{
			Class: TextClass,
			Cells: []Cell{{Key: nt.SourceKey, Text: text, Span: len(columns)}},
		}
	}

	row := Row{
		Class: rec.Level.Class(),
		Cells: make([]Cell, 0, len(columns)),
	}

	for _, col := range columns {
		row.Cells = append(row.Cells, Cell{
			Key:  col.Key,
			Text: cellText(rec, col),
			Span: 1,
		})
	}

	return row
}

// Visible returns the columns not marked hidden, in order.
func Visible(columns []nt.Column) []nt.Column {

	visible := make([]nt.Column, 0, len(columns))
	for _, col := range columns {
		if !col.Hidden {
			visible = append(visible, col)
		}
	}
	return visible
}

// unexported

func cellText(rec nt.Record, col nt.Column) string {

	if col.Formatter != nil {
		return col.Formatter(rec)
	}
	return rec.Field(col.Key).String()
}
