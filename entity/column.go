package entity

// Column describes one presentable record field.
type Column struct {
	Key    string     `yaml:"key" toml:"key"`
	Title  string     `yaml:"title,omitempty" toml:"title,omitempty"`
	Filter FilterKind `yaml:"filter" toml:"filter"`
	Width  int        `yaml:"width,omitempty" toml:"width,omitempty"`
	Hidden bool       `yaml:"hidden,omitempty" toml:"hidden,omitempty"`

	// Formatter renders the cell, raw field value when nil.
	Formatter func(Record) string `yaml:"-" toml:"-"`
}
