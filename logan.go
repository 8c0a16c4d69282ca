// Package logan parses line oriented logs with ordered rules and projects
// the records through columns for display.
package logan

import (
	"context"

	"github.com/pkg/errors"

	nt "logan/entity"
	"logan/parse"
	"logan/table"
)

// CatchAll is the rule used when none are configured: every line is a message.
var CatchAll = parse.RuleConfig{
	Logger:  "All",
	Pattern: `(.*)`,
	Fields:  []string{nt.MessageKey},
}

// Pipeline parses text into records and renders records into tables.
type Pipeline struct {
	parser  *parse.Parser
	columns []nt.Column
	logger  nt.Logger
}

// BuildPipeline compiles rules and resolves columns.
// No rules means the catch-all rule, no columns means the default columns.
func BuildPipeline(rules []parse.RuleConfig, columns []nt.Column, lgr nt.Logger, opts ...parse.Option) (pl *Pipeline, err error) {

	if lgr == nil {
		lgr = nt.NopLogger{}
	}
	if len(rules) == 0 {
		rules = []parse.RuleConfig{CatchAll}
	}
	if len(columns) == 0 {
		columns = table.DefaultColumns()
	}

	opts = append([]parse.Option{parse.WithLogger(lgr)}, opts...)

	psr, err := parse.FromConfig(rules, opts...)
	if err != nil {
		err = errors.Wrapf(err, "failed to build parser")
		return
	}

	pl = &Pipeline{
		parser:  psr,
		columns: table.Resolve(columns),
		logger:  lgr,
	}
	return
}

// Parse converts already split lines into records.
func (pl *Pipeline) Parse(lines []string) []nt.Record {
	return pl.parser.Parse(lines)
}

// ParseText splits a text blob into lines and parses them as is.
func (pl *Pipeline) ParseText(ctx context.Context, text string) []nt.Record {

	records, _ := pl.parser.ParseStats(ctx, parse.SplitLines(text))
	return records
}

// ParseMarkup is ParseText for text captured from html, parsing the text content of each line.
func (pl *Pipeline) ParseMarkup(ctx context.Context, text string) []nt.Record {

	records, _ := pl.parser.ParseStats(ctx, parse.DecodeMarkup(parse.SplitLines(text)))
	return records
}

// Render projects records through the pipeline's columns.
func (pl *Pipeline) Render(records []nt.Record) table.Table {
	return table.Render(records, pl.columns)
}

// Model pairs records with the pipeline's columns.
func (pl *Pipeline) Model(records []nt.Record) table.Model {
	return table.New(pl.columns, records)
}

// Columns returns the resolved columns.
func (pl *Pipeline) Columns() []nt.Column {
	return append([]nt.Column{}, pl.columns...)
}
