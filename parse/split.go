package parse

import (
	"strings"

	"golang.org/x/net/html"
)

// SplitLines splits a text blob into lines, dropping a trailing carriage return from each.
// A final newline does not start another line.  Line text is otherwise untouched.
func SplitLines(text string) []string {

	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// DecodeMarkup replaces each line with its text content: tags stripped and entities unescaped.
// It is for input captured from html, plain logs should not go through it.
func DecodeMarkup(lines []string) []string {

	decoded := make([]string, len(lines))
	for i, line := range lines {
		decoded[i] = textContent(line)
	}

	return decoded
}

// textContent strips tags and unescapes entities.
func textContent(line string) string {

	if !strings.ContainsAny(line, "<&") {
		return line
	}

	var bld strings.Builder
	tkz := html.NewTokenizer(strings.NewReader(line))
	for {
		switch tkz.Next() {
		case html.ErrorToken:
			return bld.String()
		case html.TextToken:
			bld.Write(tkz.Text())
		}
	}
}
