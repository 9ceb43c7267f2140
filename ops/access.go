package ops

import (
	"math"

	"github.com/quill-lang/quill/value"
)

// IndexArray implements array subscript (spec §4.3.2): an in-range
// integer index returns the element; an out-of-range index returns
// the empty string — a documented quirk carried over deliberately
// (spec §4.3.2: "documented quirk, preserved").
func IndexArray(arr []value.Value, idx value.Value) value.Value {
	if !idx.IsNumber() {
		value.Errorf(value.ErrBadIndex, "array index must be a number")
	}
	f := idx.AsNumber()
	i := int(math.Trunc(f))
	if i < 0 || i >= len(arr) {
		return value.Str("")
	}
	return arr[i]
}

// DictGet implements dict member access by key (spec §4.3.2). A
// missing key is ErrKey (code 16).
func DictGet(d value.Value, key string) value.Value {
	m := d.AsDict()
	if m == nil {
		value.Errorf(value.ErrKeyNotInDict, "key %q not in dict", key)
	}
	v, ok := m.Get(key)
	if !ok {
		value.Errorf(value.ErrKeyNotInDict, "key %q not in dict", key)
	}
	return v.(value.Value)
}

// DictSet sets (or creates) a keyed entry, used by dict literal
// construction and by assignment through a DOT chain ending in a
// dict key (spec §4.4).
func DictSet(d value.Value, key string, v value.Value) {
	m := d.AsDict()
	if m == nil {
		return
	}
	m.Put(key, v)
}

// ObjectProperty implements object property lookup (spec §3.3,
// §4.3.2): a fixed property table is tried through GetProperty; the
// object itself is responsible for falling back to its dynamic hook
// if it has one, since ObjectHandle has one GetProperty method that
// the host implementation may wire either way (spec §3.3 describes
// both routes as the same capability from the evaluator's point of
// view).
func ObjectProperty(obj value.ObjectHandle, name string) (value.Value, bool) {
	if obj == nil {
		return value.Value{}, false
	}
	return obj.GetProperty(name)
}
