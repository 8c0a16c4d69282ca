package logan

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "logan/entity"
	"logan/parse"
)

var fixed = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func clock() time.Time { return fixed }

func TestBuildPipeline_Defaults(t *testing.T) {
	t.Parallel()

	pl, err := BuildPipeline(nil, nil, nil, parse.WithClock(clock))
	require.NoError(t, err)

	records := pl.Parse([]string{"hello"})
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Message)
	assert.Equal(t, "hello", *records[0].Message)
	assert.Equal(t, nt.All, records[0].Level)
	assert.Equal(t, "All", records[0].Logger)

	tbl := pl.Render(records)
	assert.Len(t, tbl.Header.Cells, 6)
	assert.Equal(t, "all", tbl.Rows[0].Class)
	assert.Equal(t, "Mon, 19 Oct 2026 08:30:00 GMT", tbl.Rows[0].Cells[1].Text)
}

func TestBuildPipeline_ConfiguredRules(t *testing.T) {
	t.Parallel()

	rules := []parse.RuleConfig{
		{Logger: "app", Pattern: `^(\w+) (\w+): (.*)$`, Fields: []string{"level", "logger", "message"}},
	}
	columns := []nt.Column{
		{Key: "level", Title: "Level", Filter: nt.Select},
		{Key: "message", Title: "Message", Filter: nt.Like},
	}

	pl, err := BuildPipeline(rules, columns, nil, parse.WithClock(clock))
	require.NoError(t, err)

	tbl := pl.Render(pl.ParseText(context.Background(), "WARN db: slow\n  at somewhere"))
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "warn", tbl.Rows[0].Class)
	assert.Equal(t, "WARN", tbl.Rows[0].Cells[0].Text)
	assert.Equal(t, "text", tbl.Rows[1].Class)
	assert.Equal(t, 2, tbl.Rows[1].Cells[0].Span)
}

func TestBuildPipeline_BadRule(t *testing.T) {
	t.Parallel()

	_, err := BuildPipeline([]parse.RuleConfig{{Pattern: `(`}}, nil, nil)
	assert.Error(t, err)
}

func TestPipeline_Independent(t *testing.T) {
	t.Parallel()

	one, err := BuildPipeline(nil, nil, nil)
	require.NoError(t, err)
	two, err := BuildPipeline([]parse.RuleConfig{{Pattern: `^x$`}}, nil, nil)
	require.NoError(t, err)

	assert.False(t, one.Parse([]string{"y"})[0].IsFragment())
	assert.True(t, two.Parse([]string{"y"})[0].IsFragment())
}

func TestPipeline_Model(t *testing.T) {
	t.Parallel()

	pl, err := BuildPipeline(nil, nil, nil, parse.WithClock(clock))
	require.NoError(t, err)

	mdl := pl.Model(pl.Parse([]string{"a", "b"}))
	assert.Len(t, mdl.Records, 2)
	assert.Equal(t, pl.Render(mdl.Records), mdl.Render())
}

func TestPipeline_ParseTextKeepsRawLines(t *testing.T) {
	t.Parallel()

	pl, err := BuildPipeline([]parse.RuleConfig{{Pattern: `^(INFO|WARN) (.*)$`, Fields: []string{"level", "message"}}}, nil, nil)
	require.NoError(t, err)

	lines := []string{
		"\tat com.acme.Foo.<init>(Foo.java:10)",
		"GET /a?x=1&amp;y=2 if a<b then",
		"WARN a<b &amp; <c>",
	}
	records := pl.ParseText(context.Background(), strings.Join(lines, "\n")+"\n")

	require.Len(t, records, len(lines))
	for i, rec := range records {
		assert.Equal(t, lines[i], rec.Source)
	}
	assert.True(t, records[0].IsFragment())
	require.NotNil(t, records[2].Message)
	assert.Equal(t, "a<b &amp; <c>", *records[2].Message)
}

func TestPipeline_ParseMarkup(t *testing.T) {
	t.Parallel()

	pl, err := BuildPipeline(nil, nil, nil)
	require.NoError(t, err)

	records := pl.ParseMarkup(context.Background(), "<b>WARN</b> x &lt; y\n")
	require.Len(t, records, 1)
	assert.Equal(t, "WARN x < y", records[0].Source)
}
