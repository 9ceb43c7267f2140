package exprs

import (
	"strings"

	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// Eval implements the full pipeline spec §4 describes for a single
// line of input: split on top-level ';' (spec §4.2 — a trailing ';'
// is permitted, additional ones separate multiple expressions), then
// for each resulting statement preprocess (strip whitespace, validate
// quoting), parse and evaluate via the six precedence levels, and
// check that nothing is left over — any junk after a complete
// expression is ErrJunkAfterExpr. Every statement shares scope, and
// the value of the last one is returned, mirroring the teacher's own
// eval loop (run/run.go: "prints every value but the last, and
// returns the last"). The single recover() here is the boundary spec
// §2.2 and §9 describe: every Errorf panic inside the parser is
// caught here and turned into a terminal error Value instead of
// propagating out of the package.
func Eval(raw string, reg *registry.Registry, scope Scope) (result value.Value) {
	defer func() {
		if r := recover(); r != nil {
			v, ok := value.Recover(r)
			if !ok {
				panic(r)
			}
			result = v
		}
	}()

	stmts := SplitStatements(raw)
	// A trailing ';' leaves one empty final statement; drop it rather
	// than evaluating it as an empty expression.
	if len(stmts) > 1 && strings.TrimSpace(stmts[len(stmts)-1]) == "" {
		stmts = stmts[:len(stmts)-1]
	}

	for _, stmt := range stmts {
		result = evalOne(stmt, reg, scope)
	}
	return result
}

func evalOne(raw string, reg *registry.Registry, scope Scope) value.Value {
	clean, err := Preprocess(raw)
	if err != nil {
		return value.ErrorValue(value.ErrEmptyExpression, err.Error())
	}

	p := NewParser(clean, reg, scope)
	v, _ := p.parseLevel1()
	if !p.cur.AtEnd() {
		value.Errorf(value.ErrJunkAfterExpr, "unexpected trailing input: %q", p.cur.Remaining())
	}
	return v
}

// EvalAll evaluates each of exprs in order against a single shared
// scope, returning the list of results, so a sequence of expressions
// shares one scope without reconstructing it per expression. The
// script executor does not use it; it calls Eval once per line.
func EvalAll(rawExprs []string, reg *registry.Registry, scope Scope) []value.Value {
	results := make([]value.Value, len(rawExprs))
	for i, raw := range rawExprs {
		results[i] = Eval(raw, reg, scope)
	}
	return results
}
