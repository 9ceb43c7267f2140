package builtins

import (
	"fmt"
	"strings"

	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

// registerStrings installs the string helper family (spec §6.1
// enablestringfns), grounded on the teacher's lib/text.go string
// wrappers. sprintf/substr/strlen/replace are named directly in
// spec §8's acceptance table and §9's Open Questions.
func registerStrings(reg *registry.Registry) {
	reg.RegisterFunction("sprintf", 1, -1, Func(func(a []value.Value) (value.Value, error) {
		format, err := wantString(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		rest := make([]interface{}, len(a)-1)
		for i, v := range a[1:] {
			rest[i] = toPrintfArg(v)
		}
		return value.Str(fmt.Sprintf(format, rest...)), nil
	}))

	// substr(s, start, length): spec §8 — substr("--Str"+"ing--",2,6)
	// == "String".
	reg.RegisterFunction("substr", 3, 3, Func(func(a []value.Value) (value.Value, error) {
		s, err := wantString(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		start, err := wantNumber(a, 1)
		if err != nil {
			return value.Value{}, err
		}
		length, err := wantNumber(a, 2)
		if err != nil {
			return value.Value{}, err
		}
		runes := []rune(s)
		lo := clampIndex(int(start), len(runes))
		hi := clampIndex(int(start)+int(length), len(runes))
		if hi < lo {
			hi = lo
		}
		return value.Str(string(runes[lo:hi])), nil
	}))

	// replace(a,b,c): source returns a bare string (a bug per the
	// Open Questions); Quill wraps it as a proper string Value.
	reg.RegisterFunction("replace", 3, 3, Func(func(a []value.Value) (value.Value, error) {
		s, err := wantString(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		from, err := wantString(a, 1)
		if err != nil {
			return value.Value{}, err
		}
		to, err := wantString(a, 2)
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(strings.ReplaceAll(s, from, to)), nil
	}))

	reg.RegisterFunction("upper", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		s, err := wantString(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(strings.ToUpper(s)), nil
	}))
	reg.RegisterFunction("lower", 1, 1, Func(func(a []value.Value) (value.Value, error) {
		s, err := wantString(a, 0)
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(strings.ToLower(s)), nil
	}))

	// strlen/length: spec §9 Open Question — on a dict, count keys;
	// on an object, undefined (Quill treats that as ErrInvalidArgument
	// rather than a silent 0).
	reg.RegisterFunction("strlen", 1, 1, Func(lengthOf))
	reg.RegisterFunction("length", 1, 1, Func(lengthOf))
}

func lengthOf(a []value.Value) (value.Value, error) {
	if len(a) < 1 {
		return value.Value{}, fmt.Errorf("length requires one argument")
	}
	v := a[0]
	switch {
	case v.IsString():
		return value.Num(float64(len([]rune(v.AsString())))), nil
	case v.IsArray():
		return value.Num(float64(len(v.AsArray()))), nil
	case v.IsDict():
		return value.Num(float64(v.AsDict().Size())), nil
	case v.IsObject():
		return value.Value{}, fmt.Errorf("length is undefined on an object")
	default:
		return value.Num(0), nil
	}
}

func toPrintfArg(v value.Value) interface{} {
	switch {
	case v.IsNumber():
		return v.AsNumber()
	case v.IsString():
		return v.AsString()
	default:
		return v.ToDisplayString()
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
