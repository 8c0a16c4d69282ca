// Package parse turns raw log lines into records by way of ordered rules.
package parse

import (
	"regexp"
	"time"

	"github.com/pkg/errors"

	nt "logan/entity"
)

// RuleConfig describes a rule as found in config.
type RuleConfig struct {
	Logger  string   `yaml:"logger" toml:"logger"`
	Pattern string   `yaml:"pattern" toml:"pattern"`
	Fields  []string `yaml:"fields" toml:"fields"`
}

// Rule binds the capture groups of a pattern to record fields.
// Group i is bound to Fields[i-1].  A nil Pattern matches nothing.
type Rule struct {
	Logger  string
	Pattern *regexp.Regexp
	Fields  []string
}

// NewRule compiles a rule from config.  An empty pattern is legal and never matches.
func NewRule(cfg RuleConfig) (rule Rule, err error) {

	rule = Rule{
		Logger: cfg.Logger,
		Fields: append([]string{}, cfg.Fields...),
	}

	if cfg.Pattern == "" {
		return
	}

	rule.Pattern, err = regexp.Compile(cfg.Pattern)
	err = errors.Wrapf(err, "failed to compile pattern for rule %q", cfg.Logger)
	return
}

// Matches reports whether the line satisfies the pattern.
func (rule Rule) Matches(line string) bool {

	if rule.Pattern == nil {
		return false
	}
	return rule.Pattern.MatchString(line)
}

// Extract returns the full match followed by the captured groups,
// or just the line itself when there is no match.
func (rule Rule) Extract(line string) []string {

	idx := rule.submatch(line)
	if idx == nil {
		return []string{line}
	}

	groups := make([]string, len(idx)/2)
	for i := range groups {
		groups[i], _ = group(line, idx, i)
	}
	return groups
}

// ToRecord extracts fields from the line and builds a record from them.
func (rule Rule) ToRecord(line string, now func() time.Time) nt.Record {

	return nt.NewRecord(rule.fields(line), now)
}

// unexported

func (rule Rule) fields(line string) map[string]string {

	fields := map[string]string{}

	idx := rule.submatch(line)
	if idx != nil {
		for i, name := range rule.Fields {
			if name == "" {
				continue
			}
			val, ok := group(line, idx, i+1)
			if ok {
				fields[name] = val
			}
		}
	}

	_, bound := fields[nt.LoggerKey]
	if !bound && rule.Logger != "" {
		fields[nt.LoggerKey] = rule.Logger
	}

	fields[nt.SourceKey] = line
	return fields
}

func (rule Rule) submatch(line string) []int {

	if rule.Pattern == nil {
		return nil
	}
	return rule.Pattern.FindStringSubmatchIndex(line)
}

// group returns the text of the i'th group, false when the group did not participate.
func group(line string, idx []int, i int) (string, bool) {

	if 2*i+1 >= len(idx) || idx[2*i] < 0 {
		return "", false
	}
	return line[idx[2*i]:idx[2*i+1]], true
}
