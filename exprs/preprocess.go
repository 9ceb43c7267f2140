package exprs

import (
	"strings"

	"github.com/quill-lang/quill/value"
)

// Preprocess implements spec §4.2: whitespace outside double-quoted
// strings is elided; empty input is an error. Escape processing
// inside strings happens during the string-literal atom parse
// (parseString in atom.go), not here, so quoted content survives the
// strip verbatim.
func Preprocess(raw string) (string, error) {
	var b strings.Builder
	inQuote := false
	i := 0
	for i < len(raw) {
		ch := raw[i]
		if inQuote {
			b.WriteByte(ch)
			if ch == '\\' && i+1 < len(raw) {
				b.WriteByte(raw[i+1])
				i += 2
				continue
			}
			if ch == '"' {
				inQuote = false
			}
			i++
			continue
		}
		switch ch {
		case '"':
			inQuote = true
			b.WriteByte(ch)
			i++
		case ' ', '\t', '\n', '\r':
			i++
		default:
			b.WriteByte(ch)
			i++
		}
	}
	if inQuote {
		value.Errorf(value.ErrDanglingQuote, "dangling quote")
	}
	out := b.String()
	if out == "" {
		return "", errEmpty
	}
	return out, nil
}

// SplitStatements splits raw on top-level semicolons, i.e. those
// outside double-quoted strings (spec §4.2: "a trailing semicolon is
// permitted at end of expression; additional semicolons separate
// multiple expressions" — the same separator the teacher's own eval
// loop documents, run/run.go: "Expressions are separated by ; in the
// input."). Quote-tracking mirrors Preprocess so a ';' inside a string
// literal is never mistaken for a separator.
func SplitStatements(raw string) []string {
	var parts []string
	var b strings.Builder
	inQuote := false
	i := 0
	for i < len(raw) {
		ch := raw[i]
		if inQuote {
			b.WriteByte(ch)
			if ch == '\\' && i+1 < len(raw) {
				b.WriteByte(raw[i+1])
				i += 2
				continue
			}
			if ch == '"' {
				inQuote = false
			}
			i++
			continue
		}
		switch ch {
		case '"':
			inQuote = true
			b.WriteByte(ch)
			i++
		case ';':
			parts = append(parts, b.String())
			b.Reset()
			i++
		default:
			b.WriteByte(ch)
			i++
		}
	}
	parts = append(parts, b.String())
	return parts
}

var errEmpty = emptyExprError{}

type emptyExprError struct{}

func (emptyExprError) Error() string { return "empty expression" }
