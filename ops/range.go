package ops

import (
	"fmt"
	"math"

	"github.com/quill-lang/quill/value"
)

// Range implements the ':' range constructor (spec §3.1, §4.3 level
// 6): both operands must be integral with equal int/float
// representation, and a <= b; the result is an array of sequential
// integers inclusive of both bounds.
func Range(a, b value.Value) (value.Value, error) {
	if !a.IsNumber() || !b.IsNumber() {
		return value.Value{}, fmt.Errorf("range operands must be numbers")
	}
	af, bf := a.AsNumber(), b.AsNumber()
	if af != math.Trunc(af) || bf != math.Trunc(bf) {
		return value.Value{}, fmt.Errorf("range operands must be integral")
	}
	lo, hi := int64(af), int64(bf)
	if lo > hi {
		return value.Value{}, fmt.Errorf("range start %d is greater than end %d", lo, hi)
	}
	n := hi - lo + 1
	out := make([]value.Value, n)
	for i := int64(0); i < n; i++ {
		out[i] = value.Num(float64(lo + i))
	}
	return value.Arr(out), nil
}
