package builtins

import (
	"math"

	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// registerMaths installs the math helper family (spec §6.1
// enablemathsfns), grounded on the teacher's lib/unary.go trig/sqrt/
// exp wrappers — Quill's numbers are a single float64, so each
// wrapper here is a direct math.* call rather than ivy's BigFloat/
// Complex dispatch.
func registerMaths(reg *registry.Registry) {
	reg.RegisterFunction("sin", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		x, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Sin(x)), nil
	}))
	reg.RegisterFunction("cos", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		x, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Cos(x)), nil
	}))
	reg.RegisterFunction("sqrt", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		x, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Sqrt(x)), nil
	}))
	reg.RegisterFunction("abs", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		x, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Abs(x)), nil
	}))
	reg.RegisterFunction("floor", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		x, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Floor(x)), nil
	}))
	reg.RegisterFunction("ceil", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		x, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Ceil(x)), nil
	}))
	reg.RegisterFunction("pow", 2, 2, Func(func(a []value.Value) (value.Value, error) {
		x, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		y, err := wantNumber(a, 1)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Pow(x, y)), nil
	}))
	// min/max take a variadic list, matching spec §8's
	// min(10,11,12*4,-4-7,15) example directly.
	reg.RegisterFunction("min", 1, -1, Func(func(a []value.Value) (value.Value, error) {
		best, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		for i := 1; i < len(a); i++ {
			x, err := wantNumber(a, i)
			if err != nil {
				return value.Value{}, err
			}
			if x < best {
				best = x
			}
		}
		return value.Num(best), nil
	}))
	reg.RegisterFunction("max", 1, -1, Func(func(a []value.Value) (value.Value, error) {
		best, err := wantNumber(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		for i := 1; i < len(a); i++ {
			x, err := wantNumber(a, i)
			if err != nil {
				return value.Value{}, err
			}
			if x > best {
				best = x
			}
		}
		return value.Num(best), nil
	}))
}
