package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "logan/entity"
	lt "logan/table"
)

func TestRows_FragmentInLastColumn(t *testing.T) {
	t.Parallel()

	columns := []nt.Column{{Key: "level"}, {Key: "message"}}
	rows := []lt.Row{
		{Class: "warn", Cells: []lt.Cell{{Key: "level", Text: "WARN", Span: 1}, {Key: "message", Text: "hi", Span: 1}}},
		{Class: lt.TextClass, Cells: []lt.Cell{{Key: "source", Text: "  at x", Span: 2}}},
	}

	cells, classes := Rows(rows, columns)

	require.Len(t, cells, 2)
	assert.Equal(t, []string{"WARN", "hi"}, cells[0])
	assert.Equal(t, []string{"", "  at x"}, cells[1])
	assert.Equal(t, []string{"warn", lt.TextClass}, classes)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncate("abc", 0))
	assert.Equal(t, "abc", truncate("abc", 5))

	got := truncate("abcdef", 4)
	assert.Contains(t, got, "abc")
	assert.NotContains(t, got, "d")
}

func TestRender_ContainsCells(t *testing.T) {
	t.Parallel()

	columns := []nt.Column{{Key: "level", Title: "Level"}, {Key: "message", Title: "Message"}}
	tbl := lt.Table{
		Header: lt.Header{Cells: []lt.HeaderCell{{Key: "level", Title: "Level"}, {Key: "message", Title: "Message"}}},
		Rows: []lt.Row{
			{Class: "error", Cells: []lt.Cell{{Key: "level", Text: "ERROR", Span: 1}, {Key: "message", Text: "boom", Span: 1}}},
		},
	}

	out := Render(tbl, columns)
	for _, want := range []string{"Level", "Message", "ERROR", "boom"} {
		assert.Contains(t, out, want)
	}
}

func TestClassStyle_Unknown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x", ClassStyle("nope").Render("x"))
}

func TestRows_ExpandsTabs(t *testing.T) {
	t.Parallel()

	columns := []nt.Column{{Key: "level"}, {Key: "message"}}
	rows := []lt.Row{
		{Class: lt.TextClass, Cells: []lt.Cell{{Key: "source", Text: "\tat com.acme.Foo.bar(Foo.java:12)\x1b\r", Span: 2}}},
	}

	cells, _ := Rows(rows, columns)
	require.Len(t, cells, 1)
	assert.Equal(t, "    at com.acme.Foo.bar(Foo.java:12)", cells[0][1])
}

func TestRender_TabIndentedFragment(t *testing.T) {
	t.Parallel()

	columns := []nt.Column{{Key: "level", Title: "Level"}, {Key: "message", Title: "Message"}}
	tbl := lt.Table{
		Header: lt.Header{Cells: []lt.HeaderCell{{Key: "level", Title: "Level"}, {Key: "message", Title: "Message"}}},
		Rows: []lt.Row{
			{Class: lt.TextClass, Cells: []lt.Cell{{Key: "source", Text: "\tat com.acme.Foo.bar(Foo.java:12)", Span: 2}}},
		},
	}

	out := Render(tbl, columns)
	assert.Contains(t, out, "    at com.acme.Foo.bar(Foo.java:12)")
	assert.NotContains(t, out, "\t")
}

func TestRows_SkipsHidden(t *testing.T) {
	t.Parallel()

	columns := []nt.Column{{Key: "level"}, {Key: "thread", Hidden: true}, {Key: "message", Width: 3}}
	rows := []lt.Row{
		{Class: "info", Cells: []lt.Cell{{Key: "level", Text: "INFO", Span: 1}, {Key: "message", Text: "hi", Span: 1}}},
	}

	cells, _ := Rows(rows, columns)
	require.Len(t, cells, 1)
	assert.Equal(t, []string{"INFO", "hi"}, cells[0])
}
