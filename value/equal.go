package value

import "math"

// round10 rounds to 10 decimal places, the precision spec §4.5 mandates
// for == and != (and for the numeric leg of === / !==).
func round10(f float64) float64 {
	const scale = 1e10
	return math.Round(f*scale) / scale
}

// LooseEqual implements == (spec §4.5): numbers compare with 10-decimal
// rounding and strings by byte equality; any other pairing, including a
// number against a string, is unequal. StrictEqual applies the same
// number and string rules on its own.
func LooseEqual(a, b Value) bool {
	if a.tag == Number && b.tag == Number {
		return round10(a.num) == round10(b.num)
	}
	if a.tag == String && b.tag == String {
		return a.str == b.str
	}
	return false
}

// StrictEqual implements === (spec §4.5): identical tags and exact
// value equality; number still uses 10-decimal rounding, string uses
// byte equality.
func StrictEqual(a, b Value) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case Number:
		return round10(a.num) == round10(b.num)
	case String:
		return a.str == b.str
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !StrictEqual(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Dict:
		if a.dict == nil || b.dict == nil {
			return a.dict == b.dict
		}
		if a.dict.Size() != b.dict.Size() {
			return false
		}
		for _, k := range a.dict.Keys() {
			av, _ := a.dict.Get(k)
			bv, ok := b.dict.Get(k)
			if !ok {
				return false
			}
			if !StrictEqual(av.(Value), bv.(Value)) {
				return false
			}
		}
		return true
	case Object:
		return a.obj == b.obj
	default:
		return false
	}
}

// Compare implements lexicographic-by-byte-order comparison for
// strings and numeric comparison for numbers, per spec §9's resolution
// of the "comparison on non-numeric types" open question. Returns
// -1/0/1, or (0, false) when the operands aren't comparable (the
// caller then falls through to the general number-0 fallback, spec
// §4.5 rule 3).
func Compare(a, b Value) (int, bool) {
	if a.tag == Number && b.tag == Number {
		x, y := round10(a.num), round10(b.num)
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		default:
			return 0, true
		}
	}
	if a.tag == String && b.tag == String {
		switch {
		case a.str < b.str:
			return -1, true
		case a.str > b.str:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}
