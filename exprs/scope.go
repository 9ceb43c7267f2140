package exprs

import "github.com/quill-lang/quill/value"

// Scope is the variable-table surface the expression evaluator needs
// from whatever owns lexical scoping (spec §4.9). The script package
// implements Scope over its frame stack; exprs stays independent of
// script so the call-bridge dependency (component I) runs the other
// way — script depends on exprs, not the reverse.
//
// Ref must return a stable, shared handle: spec §4.4 requires
// assignment to mutate "the LHS Value's tag and payload in place"
// through "a shared, mutable handle bound to the name", which is why
// this returns *value.Value rather than a plain value.Value — the
// pointer is the binding reference spec §9's design notes describe.
type Scope interface {
	// Ref resolves name to a mutable binding, auto-creating a
	// number-0 binding on the top frame if it doesn't already exist
	// (spec §4.9's read rule: "If not found, create an
	// auto-initialized number 0 ... so reads always succeed").
	Ref(name string) *value.Value
	// Check reports whether name is already bound, without creating
	// it (spec §4.9's "Check" rule).
	Check(name string) bool
}

// mapScope is the trivial Scope used when the engine evaluates a bare
// expression with no enclosing script (spec §4.3.1's atom rule still
// requires "script variable tables" as the final fallback even for a
// one-shot expression).
type mapScope struct {
	vars map[string]*value.Value
}

// NewMapScope returns a flat, single-frame Scope backed by a plain map
// — used for standalone expression evaluation outside any script.
func NewMapScope() Scope {
	return &mapScope{vars: make(map[string]*value.Value)}
}

func (s *mapScope) Ref(name string) *value.Value {
	if ref, ok := s.vars[name]; ok {
		return ref
	}
	v := value.Zero()
	s.vars[name] = &v
	return &v
}

func (s *mapScope) Check(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// assignRef is the binding-reference handle the parser carries
// alongside a Value while the parsed expression is still something
// assignable (a bare variable, or a DOT-chain ending in an in-range
// array index or a dict key; an object property is not assignable).
// Any binary operator
// application clears it, because the result becomes a fresh
// temporary (spec §4.4: only "a binding reference, not a fresh
// temporary" can sit on the left of '=').
type assignRef struct {
	get func() value.Value
	set func(value.Value)
}

func varRef(ref *value.Value) *assignRef {
	return &assignRef{
		get: func() value.Value { return *ref },
		set: func(v value.Value) { *ref = v },
	}
}
