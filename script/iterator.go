package script

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/quill-lang/quill/value"
)

// Iterator is spec §9's "trait returning Option<Value>" for the
// string, array and dict iterators below (a range such as 1:4 is
// already an array, so it uses the array iterator) plus whatever a
// host object supplies through Iterable.
type Iterator interface {
	Next() (value.Value, bool)
}

// Iterable is the optional capability a host-registered object can
// implement so a `for NAME in obj` loop drives it directly (spec
// §4.8: "object whose payload is iterable → use directly").
type Iterable interface {
	NewIterator() Iterator
}

func buildIterator(v value.Value) (Iterator, error) {
	switch {
	case v.IsObject():
		if it, ok := v.AsObject().(Iterable); ok {
			return it.NewIterator(), nil
		}
		return nil, fmt.Errorf("object is not iterable")
	case v.IsString():
		return newStringIterator(v.AsString()), nil
	case v.IsArray():
		return newArrayIterator(v.AsArray()), nil
	case v.IsDict():
		return newDictIterator(v.AsDict()), nil
	default:
		return nil, fmt.Errorf("value of tag %s is not iterable", v.Tag())
	}
}

// stringIterator yields one Value per Unicode codepoint (spec §4.8:
// "string → per-codepoint iterator").
type stringIterator struct {
	runes []rune
	idx   int
}

func newStringIterator(s string) *stringIterator {
	return &stringIterator{runes: []rune(s)}
}

func (it *stringIterator) Next() (value.Value, bool) {
	if it.idx >= len(it.runes) {
		return value.Value{}, false
	}
	r := it.runes[it.idx]
	it.idx++
	return value.Str(string(r)), true
}

// arrayIterator yields each element in order.
type arrayIterator struct {
	items []value.Value
	idx   int
}

func newArrayIterator(items []value.Value) *arrayIterator {
	return &arrayIterator{items: items}
}

func (it *arrayIterator) Next() (value.Value, bool) {
	if it.idx >= len(it.items) {
		return value.Value{}, false
	}
	v := it.items[it.idx]
	it.idx++
	return v, true
}

// dictIterator yields each value in insertion order, re-reading the
// key list on every step so it "tolerates mid-iteration inserts"
// (spec §4.8) instead of freezing a snapshot.
type dictIterator struct {
	dict *linkedhashmap.Map
	idx  int
}

func newDictIterator(d *linkedhashmap.Map) *dictIterator {
	return &dictIterator{dict: d}
}

func (it *dictIterator) Next() (value.Value, bool) {
	if it.dict == nil {
		return value.Value{}, false
	}
	keys := it.dict.Keys()
	if it.idx >= len(keys) {
		return value.Value{}, false
	}
	k := keys[it.idx]
	it.idx++
	v, ok := it.dict.Get(k)
	if !ok {
		return value.Value{}, false
	}
	return v.(value.Value), true
}
