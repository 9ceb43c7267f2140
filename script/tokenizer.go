package script

import "strings"

// Tokenize implements spec §4.6: split a single logical line into
// tokens on ASCII space or tab, except inside double-quoted strings (kept
// intact, quotes included, backslash escapes retained literally so
// the expression parser re-processes them later) and except that
// '(', ')' and ',' always end the current token and become tokens of
// their own, however they're spaced. An unquoted "//" begins a line
// comment and everything from it to end of line is dropped.
func Tokenize(line string) []string {
	var tokens []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, buf.String())
			buf.Reset()
		}
	}

	i := 0
	for i < len(line) {
		ch := line[i]
		if ch == '"' {
			buf.WriteByte(ch)
			i++
			for i < len(line) {
				c := line[i]
				buf.WriteByte(c)
				if c == '\\' && i+1 < len(line) {
					i++
					buf.WriteByte(line[i])
					i++
					continue
				}
				i++
				if c == '"' {
					break
				}
			}
			continue
		}
		if ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			break
		}
		switch ch {
		case ' ', '\t':
			flush()
			i++
		case '(', ')', ',':
			flush()
			tokens = append(tokens, string(ch))
			i++
		default:
			buf.WriteByte(ch)
			i++
		}
	}
	flush()
	return tokens
}
