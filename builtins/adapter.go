// Package builtins implements the optional helper function families
// spec §1 calls out as "external collaborators" (math, string, time,
// misc) and §6.1's gating config keys. They're registered through
// the same registry.RegisterFunction surface a host uses for its own
// functions — nothing here is privileged. Grounded on the teacher's
// lib/*.go helper functions (robpike.io/ivy/lib), which register a
// family of op definitions the same way: small adapters wrapping a Go
// func as a callable, gated by a config flag before registration.
package builtins

import (
	"fmt"

	"github.com/quill-lang/quill/value"
)

// Func adapts a plain Go function to value.Callable so registering a
// builtin doesn't need a dedicated type per function.
type Func func(args []value.Value) (value.Value, error)

func (f Func) Call(args []value.Value) (value.Value, error) { return f(args) }

func wantNumber(args []value.Value, i int) (float64, error) {
	if i >= len(args) || !args[i].IsNumber() {
		return 0, fmt.Errorf("argument %d must be a number", i+1)
	}
	return args[i].AsNumber(), nil
}

func wantString(args []value.Value, i int) (string, error) {
	if i >= len(args) || !args[i].IsString() {
		return "", fmt.Errorf("argument %d must be a string", i+1)
	}
	return args[i].AsString(), nil
}
