// Package lexer implements the two cursor primitives spec.md §4.1
// describes: ConsumeChar over a character set and ConsumeRegex
// anchored at the cursor. It is component C from spec.md §2.
//
// The teacher's own scanner (robpike.io/ivy/scan/scan.go) is a
// state-function machine built around next/peek/backup/accept/
// acceptRun over a rune cursor — appropriate for ivy's APL grammar,
// which has to disambiguate reductions, scans, and inner/outer
// products character by character. Quill's grammar has no such
// ambiguity, so this package collapses the teacher's five cursor
// primitives down to the two the spec actually needs, while keeping
// the same "mutable (input, index) cursor" shape and the same
// accept-or-rewind discipline (ivy's accept/backup pair becomes
// ConsumeChar's try-then-restore).
package lexer

import "regexp"

// Cursor is the mutable (input, index) position spec §4.1 describes.
type Cursor struct {
	input string
	index int
}

// New returns a Cursor positioned at the start of input.
func New(input string) *Cursor {
	return &Cursor{input: input}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.index }

// SetPos restores a previously saved offset — used by the expression
// evaluator to save/rewind across failed alternatives (spec §4.3's
// "save cursor ... if ... fails, restore cursor") and across
// re-entrant calls into a host callback that may itself parse (spec
// §5, §9 "Parser re-entrancy").
func (c *Cursor) SetPos(i int) { c.index = i }

// AtEnd reports whether the cursor has consumed all input.
func (c *Cursor) AtEnd() bool { return c.index >= len(c.input) }

// Remaining returns the unconsumed suffix of the input.
func (c *Cursor) Remaining() string { return c.input[c.index:] }

// Peek returns the byte at the cursor without consuming it, or 0 at
// end of input.
func (c *Cursor) Peek() byte {
	if c.AtEnd() {
		return 0
	}
	return c.input[c.index]
}

// ConsumeChar advances past input[index] and returns it if it is a
// member of set; otherwise it leaves the cursor unchanged and returns
// (0, false) — spec §4.1's "consume char(set)".
func (c *Cursor) ConsumeChar(set string) (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	ch := c.input[c.index]
	for i := 0; i < len(set); i++ {
		if set[i] == ch {
			c.index++
			return ch, true
		}
	}
	return 0, false
}

// ConsumeRegex matches pat anchored at the cursor; on success it
// advances past the match and returns the matched text; on failure it
// leaves the cursor unchanged — spec §4.1's "consume regex(pat)". pat
// must already be anchored with a leading '^' (the identifier/number
// patterns below are).
func (c *Cursor) ConsumeRegex(pat *regexp.Regexp) (string, bool) {
	loc := pat.FindStringIndex(c.Remaining())
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	match := c.Remaining()[loc[0]:loc[1]]
	c.index += loc[1]
	return match, true
}

// Identifier, Number and FuncStart are the three anchored patterns
// spec §4.1 names explicitly.
var (
	Identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	Number     = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?`)
	FuncStart  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\(`)
)
