package builtins

import (
	"fmt"

	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// registerMisc installs typeof, caseof and the chart/table builders
// (spec §6.1 enablemiscfns).
func registerMisc(reg *registry.Registry) {
	reg.RegisterFunction("typeof", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		if len(a) < 1 {
			return value.Value{}, fmt.Errorf("typeof requires one argument")
		}
		return value.Str(a[0].Tag().String()), nil
	}))

	// caseof(v, case1, result1, case2, result2, ..., [default]):
	// returns resultN for the first caseN that loose-equals v, or the
	// trailing default argument (if the arg count is even) when none
	// match, else number 0.
	reg.RegisterFunction("caseof", 1, -1, Func(func(a []value.Value) (value.Value, error) {
		if len(a) < 1 {
			return value.Value{}, fmt.Errorf("caseof requires at least one argument")
		}
		subject := a[0]
		rest := a[1:]
		pairs := len(rest) / 2
		for i := 0; i < pairs; i++ {
			if value.LooseEqual(subject, rest[2*i]) {
				return rest[2*i+1], nil
			}
		}
		if len(rest)%2 == 1 {
			return rest[len(rest)-1], nil
		}
		return value.Num(0), nil
	}))

	reg.RegisterFunction("table", 1, -1, Func(func(a []value.Value) (value.Value, error) {
		return value.DataTagged(&value.DataValue{Kind: "table", Payload: a}), nil
	}))
	reg.RegisterFunction("chart", 1, -1, Func(func(a []value.Value) (value.Value, error) {
		return value.DataTagged(&value.DataValue{Kind: "chart", Payload: a}), nil
	}))
}
