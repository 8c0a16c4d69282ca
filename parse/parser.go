package parse

import (
	"context"
	"time"

	"github.com/pkg/errors"

	nt "logan/entity"
)

// Stats summarizes a parse.
type Stats struct {
	Lines     int
	Fragments int
	Hits      map[string]int // by rule logger label
}

// Parser applies ordered rules to lines, first match wins.
type Parser struct {
	rules  []Rule
	now    func() time.Time
	logger nt.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the time used for records without a usable date.
func WithClock(now func() time.Time) Option {
	return func(psr *Parser) {
		psr.now = now
	}
}

// WithLogger sets the logger used for parse summaries.
func WithLogger(lgr nt.Logger) Option {
	return func(psr *Parser) {
		psr.logger = lgr
	}
}

// New creates a Parser holding the given rules in order.
func New(rules []Rule, opts ...Option) *Parser {

	psr := &Parser{
		rules:  append([]Rule{}, rules...),
		now:    time.Now,
		logger: nt.NopLogger{},
	}

	for _, opt := range opts {
		opt(psr)
	}

	return psr
}

// FromConfig compiles rule configs and creates a Parser.
func FromConfig(cfgs []RuleConfig, opts ...Option) (psr *Parser, err error) {

	rules := make([]Rule, 0, len(cfgs))
	for i, cfg := range cfgs {
		var rule Rule
		rule, err = NewRule(cfg)
		if err != nil {
			err = errors.Wrapf(err, "rule %d", i)
			return
		}
		rules = append(rules, rule)
	}

	psr = New(rules, opts...)
	return
}

// Rules returns a copy of the parser's rules.
func (psr *Parser) Rules() []Rule {
	return append([]Rule{}, psr.rules...)
}

// Parse converts each line to exactly one record, in order.
func (psr *Parser) Parse(lines []string) []nt.Record {

	records, _ := psr.parse(lines)
	return records
}

// ParseStats parses like Parse, logs a summary, and returns it.
func (psr *Parser) ParseStats(ctx context.Context, lines []string) ([]nt.Record, Stats) {

	records, stats := psr.parse(lines)

	psr.logger.Info(ctx, "parsed lines",
		"lines", stats.Lines,
		"fragments", stats.Fragments,
		"rules", len(psr.rules),
	)

	return records, stats
}

// ParseLine converts a single line, a fragment when no rule matches.
func (psr *Parser) ParseLine(line string) nt.Record {

	rec, _ := psr.parseLine(line)
	return rec
}

// unexported

func (psr *Parser) parse(lines []string) ([]nt.Record, Stats) {

	stats := Stats{
		Lines: len(lines),
		Hits:  map[string]int{},
	}

	records := make([]nt.Record, 0, len(lines))
	for _, line := range lines {
		rec, rule := psr.parseLine(line)
		if rule == nil {
			stats.Fragments++
		} else {
			stats.Hits[rule.Logger]++
		}
		records = append(records, rec)
	}

	return records, stats
}

func (psr *Parser) parseLine(line string) (nt.Record, *Rule) {

	for i := range psr.rules {
		rule := &psr.rules[i]
		if rule.Matches(line) {
			return rule.ToRecord(line, psr.now), rule
		}
	}

	return nt.NewFragment(line, psr.now), nil
}
