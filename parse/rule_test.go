package parse

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "logan/entity"
)

var fixed = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func clock() time.Time { return fixed }

func TestRule_ToRecord(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Pattern: regexp.MustCompile(`^(\d+) (\w+): (.*)$`),
		Fields:  []string{"line", "logger", "message"},
	}

	line := "42 auth: login failed"
	rec := rule.ToRecord(line, clock)

	assert.Equal(t, 42, rec.Line)
	assert.Equal(t, "auth", rec.Logger)
	require.NotNil(t, rec.Message)
	assert.Equal(t, "login failed", *rec.Message)
	assert.Equal(t, line, rec.Source)
}

func TestRule_NilPattern(t *testing.T) {
	t.Parallel()

	rule := Rule{Fields: []string{"message"}}

	assert.False(t, rule.Matches("anything"))
	assert.Equal(t, []string{"anything"}, rule.Extract("anything"))
}

func TestRule_Extract(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"abc"}, Rule{Pattern: regexp.MustCompile(`^\d+$`)}.Extract("abc"))
	assert.Equal(t, []string{"a=b", "a", "b"}, Rule{Pattern: regexp.MustCompile(`^(\w+)=(\w+)$`)}.Extract("a=b"))
}

func TestRule_UnmatchedOptionalGroupIsAbsent(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Pattern: regexp.MustCompile(`^(\w+)(?: \[(\w+)\])?: (.*)$`),
		Fields:  []string{"logger", "thread", "message"},
	}

	rec := rule.ToRecord("db: slow query", clock)

	assert.Equal(t, nt.Unknown, rec.Thread)
	require.NotNil(t, rec.Message)
	assert.Equal(t, "slow query", *rec.Message)
}

func TestRule_LoggerLabelFillsUnboundLogger(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Logger:  "All",
		Pattern: regexp.MustCompile(`(.*)`),
		Fields:  []string{"message"},
	}

	assert.Equal(t, "All", rule.ToRecord("hello", clock).Logger)
}

func TestRule_ExtraFieldNamesIgnored(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Pattern: regexp.MustCompile(`^(\w+)$`),
		Fields:  []string{"message", "thread", "line"},
	}

	rec := rule.ToRecord("solo", clock)
	assert.Equal(t, nt.Unknown, rec.Thread)
	assert.Equal(t, 0, rec.Line)
}

func TestNewRule(t *testing.T) {
	t.Parallel()

	rule, err := NewRule(RuleConfig{Logger: "x", Pattern: `^(.*)$`, Fields: []string{"message"}})
	require.NoError(t, err)
	assert.True(t, rule.Matches("y"))

	rule, err = NewRule(RuleConfig{Logger: "empty"})
	require.NoError(t, err)
	assert.Nil(t, rule.Pattern)

	_, err = NewRule(RuleConfig{Logger: "bad", Pattern: `[invalid`})
	assert.Error(t, err)
}
