package entity

import (
	"strconv"
	"strings"
	"time"
)

const (
	// Unknown stands in for a missing logger, thread or code location.
	Unknown = "unknown"
)

// Field keys understood by NewRecord and Record.Field.
const (
	LoggerKey    = "logger"
	DateKey      = "date"
	LevelKey     = "level"
	ThreadKey    = "thread"
	FileKey      = "file"
	QualifiedKey = "qualified"
	LineKey      = "line"
	MessageKey   = "message"
	SourceKey    = "source"
	CodeKey      = "code"
)

// dateLayouts are tried in order when parsing a captured date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02 15:04:05,000",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/Jan/2006:15:04:05 -0700",
	time.ANSIC,
	time.Stamp,
}

// Record is one log line normalized into fields.
// A nil Message marks a pass-through fragment, such as a stack trace continuation.
type Record struct {
	Logger    string
	Date      time.Time
	Level     Level
	Thread    string
	File      *string
	Qualified *string
	Line      int
	Message   *string
	Source    string
}

// NewRecord builds a Record from captured fields, defaulting by presence rather than value.
// Now supplies the date when none is captured or it will not parse, time.Now when nil.
func NewRecord(fields map[string]string, now func() time.Time) Record {

	if now == nil {
		now = time.Now
	}

	rec := Record{
		Logger: Unknown,
		Thread: Unknown,
		Source: fields[SourceKey],
	}

	if val, ok := fields[LoggerKey]; ok {
		rec.Logger = val
	}
	if val, ok := fields[ThreadKey]; ok {
		rec.Thread = val
	}
	if val, ok := fields[LevelKey]; ok {
		rec.Level = ParseLevel(val)
	}
	if val, ok := fields[FileKey]; ok {
		rec.File = &val
	}
	if val, ok := fields[QualifiedKey]; ok {
		rec.Qualified = &val
	}
	if val, ok := fields[LineKey]; ok {
		rec.Line = parseLine(val)
	}
	if val, ok := fields[MessageKey]; ok {
		rec.Message = &val
	}

	rec.Date = now()
	if val, ok := fields[DateKey]; ok {
		if date, ok := parseDate(val); ok {
			rec.Date = date
		}
	}

	return rec
}

// NewFragment builds a pass-through record carrying only its raw text.
func NewFragment(line string, now func() time.Time) Record {
	return NewRecord(map[string]string{SourceKey: line}, now)
}

// IsFragment is true for records that matched no rule.
func (rec Record) IsFragment() bool {
	return rec.Message == nil
}

// Code is the source location, qualified name over file, and line number.
func (rec Record) Code() string {

	where := Unknown
	switch {
	case rec.Qualified != nil:
		where = *rec.Qualified
	case rec.File != nil:
		where = *rec.File
	}

	return where + ":" + strconv.Itoa(rec.Line)
}

// Field returns the raw value at key, or an empty Value for an unknown key.
func (rec Record) Field(key string) Value {

	switch key {
	case LoggerKey:
		return Value{Raw: rec.Logger}
	case DateKey:
		return Value{Raw: rec.Date}
	case LevelKey:
		return Value{Raw: int64(rec.Level)}
	case ThreadKey:
		return Value{Raw: rec.Thread}
	case FileKey:
		return optional(rec.File)
	case QualifiedKey:
		return optional(rec.Qualified)
	case LineKey:
		return Value{Raw: int64(rec.Line)}
	case MessageKey:
		return optional(rec.Message)
	case SourceKey:
		return Value{Raw: rec.Source}
	case CodeKey:
		return Value{Raw: rec.Code()}
	}

	return Value{}
}

// unexported

func optional(str *string) Value {

	if str == nil {
		return Value{}
	}
	return Value{Raw: *str}
}

func parseLine(text string) int {

	line, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return line
}

func parseDate(text string) (date time.Time, ok bool) {

	text = strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		var err error
		date, err = time.Parse(layout, text)
		if err == nil {
			ok = true
			return
		}
	}
	return
}
