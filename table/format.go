package table

import (
	nt "logan/entity"
)

// GMTFormat is the RFC 1123 layout pinned to GMT.
const GMTFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatDate renders the date as a fixed, locale independent GMT string.
func FormatDate(rec nt.Record) string {
	return rec.Date.UTC().Format(GMTFormat)
}

// FormatLevel renders the level name.
func FormatLevel(rec nt.Record) string {
	return rec.Level.String()
}

// FormatCode renders qualified name or file, and line.
func FormatCode(rec nt.Record) string {
	return rec.Code()
}

// Formatters are the built-in formatters by column key.
var Formatters = map[string]func(nt.Record) string{
	nt.DateKey:  FormatDate,
	nt.LevelKey: FormatLevel,
	nt.CodeKey:  FormatCode,
}

// DefaultColumns returns the six stock columns.
func DefaultColumns() []nt.Column {
	return []nt.Column{
		{Key: nt.LoggerKey, Title: "Logger", Filter: nt.Select},
		{Key: nt.DateKey, Title: "Date", Filter: nt.Like, Formatter: FormatDate},
		{Key: nt.LevelKey, Title: "Level", Filter: nt.Select, Formatter: FormatLevel},
		{Key: nt.ThreadKey, Title: "Thread", Filter: nt.Select},
		{Key: nt.CodeKey, Title: "Code", Filter: nt.Like, Formatter: FormatCode},
		{Key: nt.MessageKey, Title: "Message", Filter: nt.Like},
	}
}

// Resolve attaches built-in formatters to columns that have none.
func Resolve(columns []nt.Column) []nt.Column {

	resolved := make([]nt.Column, len(columns))
	for i, col := range columns {
		if col.Formatter == nil {
			col.Formatter = Formatters[col.Key]
		}
		resolved[i] = col
	}

	return resolved
}
