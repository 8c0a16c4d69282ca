package table

import (
	nt "logan/entity"
)

// FilterMeta is what a UI needs to offer a filter on a column.
// Options holds the distinct cell texts of select columns, in first-seen order.
type FilterMeta struct {
	Key     string
	Title   string
	Kind    nt.FilterKind
	Options []string
}

// Filters returns filter metadata for each visible column of the model.
func (mdl Model) Filters() []FilterMeta {

	columns := Visible(mdl.Columns)
	metas := make([]FilterMeta, 0, len(columns))
	for _, col := range columns {
		meta := FilterMeta{
			Key:   col.Key,
			Title: col.Title,
			Kind:  col.Filter,
		}
		if col.Filter == nt.Select {
			meta.Options = mdl.options(col)
		}
		metas = append(metas, meta)
	}

	return metas
}

func (mdl Model) options(col nt.Column) []string {

	seen := map[string]bool{}
	options := []string{}
	for _, rec := range mdl.Records {
		if rec.IsFragment() {
			continue
		}
		text := cellText(rec, col)
		if seen[text] {
			continue
		}
		seen[text] = true
		options = append(options, text)
	}

	return options
}
