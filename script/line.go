// Package script implements the Python-style indented imperative
// layer spec.md §3.4/§4.6-4.9 describes: a tokenizer, a loader that
// turns indentation into a line array with structural validation, and
// a tree-walking executor over that array with lexical scoping,
// iterator dispatch and resource bounds.
//
// It is grounded on the teacher's parse package (robpike.io/ivy/parse),
// which also turns a token stream into executable statements one line
// at a time and tracks a small amount of per-statement state — but the
// teacher has no block/indentation structure (ivy is an expression
// calculator with an optional `op` definition, not an indented
// language), so the frame stack, sentinel-based control flow and
// iterator protocol here are new, built in the teacher's idiom
// (sentinel ints returned up a call stack, exec.Context-style frame
// list) rather than ported from a specific teacher file.
package script

// Line is spec §3.4's Line record: one statement plus the structural
// bookkeeping the loader computes once at load time.
type Line struct {
	LineNo        int
	Tokens        []string
	Raw           string // tokens rejoined with single spaces, for bare-expression execution
	Type          string // first token, or "" for blank lines
	Level         int
	NumChildLines int
}
