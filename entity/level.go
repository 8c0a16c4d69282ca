package entity

import (
	"strconv"
	"strings"
)

// Level is an index into the severity scale, least to most severe.
type Level int

const (
	All Level = iota
	Trace
	Debug
	Info
	Warn
	Error
	Fatal
)

// Levels is the severity scale in order.
var Levels = []string{"ALL", "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

var levelAliases = map[string]Level{
	"WARNING":  Warn,
	"ERR":      Error,
	"CRITICAL": Fatal,
	"CRIT":     Fatal,
}

// String returns the scale name, ALL when out of range.
func (lvl Level) String() string {

	if lvl < All || int(lvl) >= len(Levels) {
		return Levels[All]
	}
	return Levels[lvl]
}

// Class is the lower-cased level name used to tag rows.
func (lvl Level) Class() string {
	return strings.ToLower(lvl.String())
}

// ParseLevel converts a level name or a numeric index to a Level.
// Anything unrecognized is All.
func ParseLevel(text string) Level {

	text = strings.ToUpper(strings.TrimSpace(text))

	for i, name := range Levels {
		if text == name {
			return Level(i)
		}
	}

	lvl, ok := levelAliases[text]
	if ok {
		return lvl
	}

	idx, err := strconv.Atoi(text)
	if err == nil && idx >= 0 && idx < len(Levels) {
		return Level(idx)
	}

	return All
}
