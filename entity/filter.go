package entity

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FilterKind describes how a column would let a user narrow it.
type FilterKind int

const (
	// Select narrows to one of the distinct values seen in the column.
	Select FilterKind = iota
	// Like narrows by substring.
	Like
)

var filterKindNames = []string{"select", "like"}

// String returns the config name of the kind.
func (kind FilterKind) String() string {
	if kind < Select || int(kind) >= len(filterKindNames) {
		return filterKindNames[Select]
	}
	return filterKindNames[kind]
}

// ParseFilterKind converts a config name to a FilterKind.
func ParseFilterKind(text string) (kind FilterKind, err error) {

	text = strings.ToLower(strings.TrimSpace(text))
	for i, name := range filterKindNames {
		if text == name {
			kind = FilterKind(i)
			return
		}
	}

	err = errors.Errorf("unknown filter kind %q", text)
	return
}

// Op is the comparison a filter of this kind applies.
func (kind FilterKind) Op() FilterOp {
	if kind == Like {
		return Contains
	}
	return Eq
}

func (kind FilterKind) MarshalText() ([]byte, error) {
	return []byte(kind.String()), nil
}

func (kind *FilterKind) UnmarshalText(text []byte) (err error) {
	*kind, err = ParseFilterKind(string(text))
	return
}

func (kind FilterKind) MarshalYAML() (any, error) {
	return kind.String(), nil
}

func (kind *FilterKind) UnmarshalYAML(node *yaml.Node) (err error) {

	var text string
	err = node.Decode(&text)
	if err != nil {
		return
	}

	*kind, err = ParseFilterKind(text)
	return
}

// FilterOp represents a filter operation type.
type FilterOp int

const (
	// Logical operators
	And FilterOp = iota
	Or

	// Comparison operators
	Eq       // ==
	Contains // substring match
)

// Filter represents a composable filter over record fields.
type Filter struct {
	Op       FilterOp // Operation type
	Field    string   // Field name for comparison (empty for logical ops)
	Value    any      // Comparison value (nil for logical ops)
	Children []Filter // Child filters for logical ops
}

// ParseWhere builds a filter requiring every key=value term to hold.
// Each term compares with the op of its column's filter kind.
func ParseWhere(columns []Column, terms []string) (filter Filter, err error) {

	filter = Filter{Op: And}
	for _, term := range terms {
		key, value, ok := strings.Cut(term, "=")
		if !ok {
			err = errors.Errorf("where term %q is not key=value", term)
			return
		}

		col, found := findColumn(columns, strings.TrimSpace(key))
		if !found {
			err = errors.Errorf("where term %q names no column", term)
			return
		}

		filter.Children = append(filter.Children, Filter{
			Op:    col.Filter.Op(),
			Field: col.Key,
			Value: value,
		})
	}

	return
}

func findColumn(columns []Column, key string) (Column, bool) {

	for _, col := range columns {
		if col.Key == key && !col.Hidden {
			return col, true
		}
	}
	return Column{}, false
}
