// Package registry implements the host-facing registration surface
// described in spec.md §3.2 and §6.1: named constants, functions and
// objects, plus the variable and operator-overload callbacks a host
// installs at construction time. It is grounded on the teacher's
// exec.Context (robpike.io/ivy/exec/context.go), whose Symtab/UnaryFn/
// BinaryFn maps and Lookup/Assign/Define shape generalize directly to
// spec §3.2's constants/functions/objects tables — the one addition
// Quill makes is that ivy's single "variable" namespace splits here
// into three (constants, functions, objects) because the spec gives
// each its own lookup order (spec §4.3.1's atom rule: "try constants,
// then the host variable callback ..., then script variable tables").
package registry

import (
	"fmt"
	"regexp"

	"github.com/quill-lang/quill/config"
	"github.com/quill-lang/quill/value"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// VarOp identifies which operation the host's variablefn callback is
// being asked to perform (spec §6.1).
type VarOp int

const (
	VarRead VarOp = iota
	VarSet
	VarCheck
)

// VariableFunc is the host callback shape from spec §6.1:
// (op, name, value, arg, engine) -> Value?. The teacher's host
// callbacks are plain Go funcs too (e.g. value.IvyEval); Quill keeps
// that shape and uses a (Value, bool) pair instead of a nullable
// return to express "handled or not", matching Go idiom rather than a
// sentinel nil-or-Value union.
type VariableFunc func(op VarOp, name string, val value.Value, arg interface{}, reg *Registry) (value.Value, bool)

// OverloadFunc is the host callback shape for overloadfn[op] (spec
// §6.1): (l, op, r, arg, engine). A false second return defers to the
// built-in operator (spec: "returning sentinel false defers to
// built-in" — Quill expresses that sentinel as an explicit bool rather
// than relying on the callback returning a particular Value).
type OverloadFunc func(left value.Value, op string, right value.Value, arg interface{}, reg *Registry) (value.Value, bool)

// Registry holds everything a host registers before handing expression
// text to the engine: constants, functions, objects, and the two
// optional callback hooks.
type Registry struct {
	cfg *config.Config

	constants map[string]value.Value
	functions map[string]*value.FuncInfo
	objects   map[string]value.ObjectHandle

	variableFn  VariableFunc
	variableArg interface{}

	overloadFn  map[string]OverloadFunc
	overloadArg map[string]interface{}
}

// New returns an empty Registry bound to cfg. Built-in constants (PI,
// e, true, false) are installed by the caller via InstallDefaultConstants so that
// a host can override them before the engine starts evaluating, the
// same ordering the teacher's Context.SetConstants uses (exec/
// context.go).
func New(cfg *config.Config) *Registry {
	return &Registry{
		cfg:         cfg,
		constants:   make(map[string]value.Value),
		functions:   make(map[string]*value.FuncInfo),
		objects:     make(map[string]value.ObjectHandle),
		overloadFn:  make(map[string]OverloadFunc),
		overloadArg: make(map[string]interface{}),
	}
}

// Config returns the shared engine configuration.
func (r *Registry) Config() *config.Config { return r.cfg }

// SetConstant registers a named constant (spec §3.2). Constant names
// follow the same identifier rule as functions.
func (r *Registry) SetConstant(name string, v value.Value) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid constant name %q", name)
	}
	r.constants[name] = v
	return nil
}

// Constant looks up a registered constant.
func (r *Registry) Constant(name string) (value.Value, bool) {
	v, ok := r.constants[name]
	return v, ok
}

// InstallDefaultConstants installs PI, e, true and false. false is
// number 0 (spec §9's Open Question resolution — the original source
// defines both true and false as 1; Quill corrects false, see
// SPEC_FULL.md §9).
func (r *Registry) InstallDefaultConstants() {
	r.constants["PI"] = value.Num(3.14159265358979323846)
	r.constants["e"] = value.Num(2.71828182845904523536)
	r.constants["true"] = value.True()
	r.constants["false"] = value.False()
}

// RegisterFunction registers a named host function with an inclusive
// arity range (spec §3.2). max < 0 means unbounded.
func (r *Registry) RegisterFunction(name string, min, max int, call value.Callable) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid function name %q", name)
	}
	r.functions[name] = &value.FuncInfo{Name: name, Min: min, Max: max, Call: call}
	return nil
}

// Function looks up a registered function.
func (r *Registry) Function(name string) (*value.FuncInfo, bool) {
	f, ok := r.functions[name]
	return f, ok
}

// DisableFunctions removes the named functions after registration
// (spec §6.1 disabledfns).
func (r *Registry) DisableFunctions(names []string) {
	for _, n := range names {
		delete(r.functions, n)
	}
}

// RegisterObject registers a host object under name (spec §3.2/§3.3).
func (r *Registry) RegisterObject(name string, obj value.ObjectHandle) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid object name %q", name)
	}
	r.objects[name] = obj
	return nil
}

// Object looks up a registered object.
func (r *Registry) Object(name string) (value.ObjectHandle, bool) {
	o, ok := r.objects[name]
	return o, ok
}

// IsKnownName reports whether name is bound to a constant, function or
// object. The expression atom rule (exprs.parseReference) does not call
// it; it looks up objects and constants directly.
func (r *Registry) IsKnownName(name string) bool {
	if _, ok := r.constants[name]; ok {
		return true
	}
	if _, ok := r.functions[name]; ok {
		return true
	}
	if _, ok := r.objects[name]; ok {
		return true
	}
	return false
}

// SetVariableFunc installs the host variable callback and its opaque
// argument (spec §6.1 variablefn / variablefn_arg).
func (r *Registry) SetVariableFunc(fn VariableFunc, arg interface{}) {
	r.variableFn = fn
	r.variableArg = arg
}

// CallVariableFunc invokes the host variable callback, if one is
// installed. ok is false when no callback is installed or the
// callback itself reports "not handled".
func (r *Registry) CallVariableFunc(op VarOp, name string, val value.Value) (value.Value, bool) {
	if r.variableFn == nil {
		return value.Value{}, false
	}
	return r.variableFn(op, name, val, r.variableArg, r)
}

// SetOverloadFunc installs a per-operator overload callback (spec
// §6.1 overloadfn[op] / overloadfn_arg[op]).
func (r *Registry) SetOverloadFunc(op string, fn OverloadFunc, arg interface{}) {
	r.overloadFn[op] = fn
	r.overloadArg[op] = arg
}

// CallOverloadFunc invokes the overload callback for op, if one is
// installed (spec §4.5 dispatch rule 1).
func (r *Registry) CallOverloadFunc(left value.Value, op string, right value.Value) (value.Value, bool) {
	fn, ok := r.overloadFn[op]
	if !ok {
		return value.Value{}, false
	}
	return fn(left, op, right, r.overloadArg[op], r)
}
