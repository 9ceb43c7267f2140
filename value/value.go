// Package value implements the tagged runtime Value described in
// spec.md §3.1: a sum type over number, string, array, dict, object,
// function, data and error payloads. The teacher (robpike.io/ivy)
// represents values as an interface implemented by several concrete
// numeric/array types; spec §9's design notes ask explicitly for
// "tagged values over inheritance" instead, so this package departs
// from the teacher's polymorphism and uses one struct with a tag, the
// way several languages in the retrieval pack do it, while keeping the
// teacher's naming and error-handling idioms (Errorf panics an Error,
// recovered by the caller — see value/context.go in the teacher).
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Tag identifies which payload field of a Value is meaningful.
type Tag int

const (
	Number Tag = iota
	String
	Array
	Dict
	Object
	Function
	Data
	ErrorTag
)

func (t Tag) String() string {
	switch t {
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Dict:
		return "dict"
	case Object:
		return "object"
	case Function:
		return "function"
	case Data:
		return "data"
	case ErrorTag:
		return "error"
	}
	return "<unknown>"
}

// InfinitySentinel is the magnitude returned by integer division by
// zero (spec §3.1), signed to match the dividend.
const InfinitySentinel = 2_100_776_655

// ObjectHandle is the capability interface a host-registered object
// must implement (spec §3.3). GetProperty returns (value, true) when
// the name resolves to a fixed-table entry or the dynamic hook
// produces one; (zero, false) signals "no such property".
type ObjectHandle interface {
	GetProperty(name string) (Value, bool)
}

// Callable is a host or script-defined function reachable through the
// registry or through a bound method on an ObjectHandle.
type Callable interface {
	Call(args []Value) (Value, error)
}

// FuncInfo is the payload of a Function-tagged Value: a bound
// invocable property discovered on an object, or a registered host/
// script function (spec §3.1).
type FuncInfo struct {
	Name     string
	Min, Max int // arity bounds, inclusive; Max < 0 means unbounded
	Call     Callable
}

// Value is the tagged runtime datum every expression produces.
type Value struct {
	tag    Tag
	num    float64
	str    string
	arr    []Value
	dict   *linkedhashmap.Map
	obj    ObjectHandle
	fn     *FuncInfo
	data   *DataValue
	errVal *Err
}

// DataValue is the payload of the data tag (spec §3.1): tagged
// structured output produced by helper functions (e.g. chart/table
// builders), opaque to the core operators.
type DataValue struct {
	Kind    string
	Payload interface{}
}

// --- constructors -----------------------------------------------------

// Num constructs a number Value.
func Num(f float64) Value { return Value{tag: Number, num: f} }

// Str constructs a string Value.
func Str(s string) Value { return Value{tag: String, str: s} }

// Arr constructs an array Value from a slice (copied defensively so the
// caller's slice and the Value's payload don't alias).
func Arr(vs []Value) Value {
	cp := make([]Value, len(vs))
	copy(cp, vs)
	return Value{tag: Array, arr: cp}
}

// NewDict constructs an empty, insertion-ordered dict Value.
func NewDict() Value {
	return Value{tag: Dict, dict: linkedhashmap.New()}
}

// Obj wraps a host object handle as an object Value.
func Obj(o ObjectHandle) Value { return Value{tag: Object, obj: o} }

// Fn wraps a FuncInfo as a function Value.
func Fn(f *FuncInfo) Value { return Value{tag: Function, fn: f} }

// DataTagged wraps a DataValue as a data Value.
func DataTagged(d *DataValue) Value { return Value{tag: Data, data: d} }

// Zero is the auto-created default value for unbound reads (spec §4.9).
func Zero() Value { return Num(0) }

// True and False are the canonical boolean-ish numbers. Per spec §9's
// Open Question resolution (see SPEC_FULL.md §9), Quill corrects the
// original's false=1 bug: False is number 0, not number 1.
func True() Value  { return Num(1) }
func False() Value { return Num(0) }

// --- tag predicates -----------------------------------------------------

func (v Value) Tag() Tag        { return v.tag }
func (v Value) IsNumber() bool  { return v.tag == Number }
func (v Value) IsString() bool  { return v.tag == String }
func (v Value) IsArray() bool   { return v.tag == Array }
func (v Value) IsDict() bool    { return v.tag == Dict }
func (v Value) IsObject() bool  { return v.tag == Object }
func (v Value) IsFunction() bool { return v.tag == Function }
func (v Value) IsData() bool    { return v.tag == Data }
func (v Value) IsError() bool   { return v.tag == ErrorTag }

// --- payload accessors -----------------------------------------------

func (v Value) AsNumber() float64 { return v.num }
func (v Value) AsString() string { return v.str }
func (v Value) AsArray() []Value { return v.arr }
func (v Value) AsDict() *linkedhashmap.Map { return v.dict }
func (v Value) AsObject() ObjectHandle { return v.obj }
func (v Value) AsFunc() *FuncInfo { return v.fn }
func (v Value) AsData() *DataValue { return v.data }
func (v Value) AsError() *Err { return v.errVal }

// --- conversion (spec §4.5 rule 3/4) -----------------------------------

// ToFloat converts a Value to a double the way binary-op dispatch does:
// numbers pass through, everything else that reaches here (after the
// caller has already special-cased string-concat) is treated as 0.
func (v Value) ToFloat() float64 {
	if v.tag == Number {
		return v.num
	}
	return 0
}

// ToDisplayString renders a Value for string concatenation and for
// printing, never for internal dict/object keys.
func (v Value) ToDisplayString() string {
	switch v.tag {
	case Number:
		return formatNumber(v.num)
	case String:
		return v.str
	case Array:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.ToDisplayString()
		}
		return "[" + strings.Join(parts, ",") + "]"
	case Dict:
		if v.dict == nil {
			return "{}"
		}
		var b strings.Builder
		b.WriteByte('{')
		first := true
		for _, k := range v.dict.Keys() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			val, _ := v.dict.Get(k)
			b.WriteString(fmt.Sprintf("%v", k))
			b.WriteByte(':')
			b.WriteString(val.(Value).ToDisplayString())
		}
		b.WriteByte('}')
		return b.String()
	case ErrorTag:
		if v.errVal != nil {
			return v.errVal.Message
		}
		return "<error>"
	default:
		return fmt.Sprintf("<%s>", v.tag)
	}
}

func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return strconv.FormatInt(InfinitySentinel, 10)
	}
	if math.IsInf(f, -1) {
		return strconv.FormatInt(-InfinitySentinel, 10)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Truthy implements spec §4.8's truthiness rule: only number and
// string are truthy-tested; truthy iff non-zero / non-empty.
func (v Value) Truthy() bool {
	switch v.tag {
	case Number:
		return v.num != 0
	case String:
		return v.str != ""
	default:
		return false
	}
}
