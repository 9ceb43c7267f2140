package ops

import (
	"testing"

	"github.com/quill-lang/quill/value"
)

func TestIndexArray(t *testing.T) {
	arr := []value.Value{value.Num(10), value.Num(20), value.Num(30)}
	if got := IndexArray(arr, value.Num(1)); got.AsNumber() != 20 {
		t.Errorf("arr[1] = %v, want 20", got)
	}
	// Out-of-range index is a documented quirk: empty string, not a panic.
	if got := IndexArray(arr, value.Num(10)); got.AsString() != "" {
		t.Errorf("arr[10] = %v, want empty string", got)
	}
}

func TestDictGetSet(t *testing.T) {
	d := value.NewDict()
	DictSet(d, "a", value.Num(1))
	DictSet(d, "b", value.Num(2))
	if got := DictGet(d, "a"); got.AsNumber() != 1 {
		t.Errorf("d.a = %v, want 1", got)
	}
	if got := DictGet(d, "b"); got.AsNumber() != 2 {
		t.Errorf("d.b = %v, want 2", got)
	}
}

func TestDictGetMissingKeyPanics(t *testing.T) {
	d := value.NewDict()
	DictSet(d, "a", value.Num(1))
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("DictGet on missing key did not panic")
		}
		v, ok := value.Recover(r)
		if !ok || v.AsError().Code != value.ErrKeyNotInDict {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	DictGet(d, "missing")
}

type stubObject struct {
	props map[string]value.Value
}

func (o *stubObject) GetProperty(name string) (value.Value, bool) {
	v, ok := o.props[name]
	return v, ok
}

func TestObjectProperty(t *testing.T) {
	obj := &stubObject{props: map[string]value.Value{"x": value.Num(42)}}
	v, ok := ObjectProperty(obj, "x")
	if !ok || v.AsNumber() != 42 {
		t.Errorf("ObjectProperty(obj, \"x\") = (%v, %v), want (42, true)", v, ok)
	}
	_, ok = ObjectProperty(obj, "y")
	if ok {
		t.Errorf("ObjectProperty(obj, \"y\") should report not found")
	}
}
