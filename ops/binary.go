// Package ops implements the built-in binary-operator dispatch (spec
// §4.5), container indexing and property access (spec §4.3.2), and the
// range generator (spec §3.1, §4.5 rule 4). It is component E from
// spec.md §2 and is grounded on the teacher's value/binary.go (the
// dispatch-table-of-functions-by-type shape) and value/index.go
// (bounds handling), collapsed from the teacher's numeric type lattice
// (Int/BigInt/BigRat/BigFloat/Complex/Vector) down to the spec's single
// float64 number type, and reordered so the host overload hook always
// runs first (spec §4.5 rule 1), which the teacher's own BinaryFn
// lookup in exec.Context.Binary mirrors for user-defined ops.
package ops

import (
	"math"
	"strconv"

	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// inNumberOrString reports whether v's tag is number or string (spec
// §4.5 rule 3's universe).
func inNumberOrString(v value.Value) bool {
	return v.IsNumber() || v.IsString()
}

// arithConv converts a Value to a float64 for arithmetic: numbers pass
// through; strings try strconv.ParseFloat and fall back to 0 on
// failure (spec §9's "x"+1 scenario). This is separate from the
// blanket number-0 result of rule 3, which applies only when an
// operand is neither a number nor a string.
func arithConv(v value.Value) float64 {
	if v.IsNumber() {
		return v.AsNumber()
	}
	if v.IsString() {
		f, err := strconv.ParseFloat(v.AsString(), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func boolNum(b bool) value.Value {
	if b {
		return value.Num(1)
	}
	return value.Num(0)
}

// Binary dispatches a binary operator per spec §4.5:
//  1. host overload hook, if installed, short-circuits.
//  2. '+' on two strings concatenates.
//  3. ':' builds a range via Range; operands that are not integral
//     numbers with start <= end are an ErrInvalidArgument error.
//  4. '===' and '!==' are identity comparisons over every tag and run
//     ahead of the number-or-string gate below.
//  5. if either operand's tag isn't number or string, the result is
//     number 0.
//  6. otherwise convert to double (and to int for bitwise) and apply
//     the operator.
func Binary(reg *registry.Registry, left value.Value, op string, right value.Value) value.Value {
	if v, handled := reg.CallOverloadFunc(left, op, right); handled {
		return v
	}
	if op == "+" && left.IsString() && right.IsString() {
		return value.Str(left.AsString() + right.AsString())
	}
	if op == ":" {
		v, err := Range(left, right)
		if err != nil {
			value.Errorf(value.ErrInvalidArgument, "%s", err.Error())
		}
		return v
	}
	// StrictEqual is defined over every tag (spec §4.5's identity
	// comparison, value/equal.go's recursive array/dict/object cases),
	// so === and !== must dispatch before the number-or-string gate
	// below — otherwise an Array/Dict/Object operand would never reach
	// value.StrictEqual at all.
	switch op {
	case "===":
		return boolNum(value.StrictEqual(left, right))
	case "!==":
		return boolNum(!value.StrictEqual(left, right))
	}
	if !inNumberOrString(left) || !inNumberOrString(right) {
		return value.Num(0)
	}
	switch op {
	case "||":
		return boolNum(arithConv(left) != 0 || arithConv(right) != 0)
	case "&&":
		return boolNum(arithConv(left) != 0 && arithConv(right) != 0)
	case "|":
		return value.Num(float64(toInt(left) | toInt(right)))
	case "&":
		return value.Num(float64(toInt(left) & toInt(right)))
	case "^":
		return value.Num(float64(toInt(left) ^ toInt(right)))
	case "==":
		return boolNum(value.LooseEqual(left, right))
	case "!=":
		return boolNum(!value.LooseEqual(left, right))
	case "<", "<=", ">", ">=":
		cmp, ok := value.Compare(left, right)
		if !ok {
			return value.Num(0)
		}
		switch op {
		case "<":
			return boolNum(cmp < 0)
		case "<=":
			return boolNum(cmp <= 0)
		case ">":
			return boolNum(cmp > 0)
		case ">=":
			return boolNum(cmp >= 0)
		}
	case "+":
		return value.Num(arithConv(left) + arithConv(right))
	case "-":
		return value.Num(arithConv(left) - arithConv(right))
	case "*":
		return value.Num(arithConv(left) * arithConv(right))
	case "/":
		return divide(arithConv(left), arithConv(right))
	case "%":
		return modulo(arithConv(left), arithConv(right))
	}
	value.Errorf(value.ErrParseFailure, "unknown operator %q", op)
	return value.Value{}
}

func toInt(v value.Value) int64 {
	return int64(arithConv(v))
}

// divide implements spec §3.1/§4.5's signed-infinity-sentinel rule for
// division by zero.
func divide(a, b float64) value.Value {
	if b == 0 {
		if a == 0 {
			return value.Num(0)
		}
		if a < 0 {
			return value.Num(-value.InfinitySentinel)
		}
		return value.Num(value.InfinitySentinel)
	}
	return value.Num(a / b)
}

// modulo applies the same signed-infinity treatment as division for a
// zero divisor, since spec.md leaves '%' by zero unspecified and this
// keeps both division-family operators consistent.
func modulo(a, b float64) value.Value {
	if b == 0 {
		if a == 0 {
			return value.Num(0)
		}
		if a < 0 {
			return value.Num(-value.InfinitySentinel)
		}
		return value.Num(value.InfinitySentinel)
	}
	return value.Num(math.Mod(a, b))
}
