package exprs

import (
	"testing"

	"github.com/quill-lang/quill/config"
	"github.com/quill-lang/quill/registry"
	"github.com/quill-lang/quill/value"
)

func newEvalRegistry() *registry.Registry {
	cfg := config.New()
	reg := registry.New(cfg)
	reg.InstallDefaultConstants()
	return reg
}

func evalNum(t *testing.T, expr string) float64 {
	t.Helper()
	reg := newEvalRegistry()
	v := Eval(expr, reg, NewMapScope())
	if v.IsError() {
		t.Fatalf("Eval(%q) returned error: %s", expr, v.AsError().Message)
	}
	if !v.IsNumber() {
		t.Fatalf("Eval(%q) = %v, want a number", expr, v)
	}
	return v.AsNumber()
}

// TestOperatorPrecedence exercises spec §8's precedence example: without
// parens '*' binds tighter than '-', with parens the grouping wins.
func TestOperatorPrecedence(t *testing.T) {
	if got := evalNum(t, "1+2*3"); got != 7 {
		t.Errorf("1+2*3 = %v, want 7", got)
	}
	if got := evalNum(t, "(1+2)*3"); got != 9 {
		t.Errorf("(1+2)*3 = %v, want 9", got)
	}
}

func TestStringConcatenation(t *testing.T) {
	reg := newEvalRegistry()
	got := Eval(`"ab"+"cd"`, reg, NewMapScope())
	if got.AsString() != "abcd" {
		t.Errorf(`"ab"+"cd" = %q, want "abcd"`, got.AsString())
	}
	got2 := Eval(`"x"+1`, reg, NewMapScope())
	if got2.ToDisplayString() != "1" {
		t.Errorf(`"x"+1 = %q, want "1"`, got2.ToDisplayString())
	}
}

func TestDivisionByZeroInfinitySentinel(t *testing.T) {
	if got := evalNum(t, "1/0"); got != value.InfinitySentinel {
		t.Errorf("1/0 = %v, want %v", got, value.InfinitySentinel)
	}
	if got := evalNum(t, "-1/0"); got != -value.InfinitySentinel {
		t.Errorf("-1/0 = %v, want %v", got, -value.InfinitySentinel)
	}
}

func TestRangeOperator(t *testing.T) {
	reg := newEvalRegistry()
	got := Eval("2:5", reg, NewMapScope())
	arr := got.AsArray()
	want := []float64{2, 3, 4, 5}
	if len(arr) != len(want) {
		t.Fatalf("2:5 = %v, want length %d", arr, len(want))
	}
	for i, w := range want {
		if arr[i].AsNumber() != w {
			t.Errorf("2:5[%d] = %v, want %v", i, arr[i].AsNumber(), w)
		}
	}

	failed := Eval("5:2", reg, NewMapScope())
	if !failed.IsError() {
		t.Errorf("5:2 should fail (descending range), got %v", failed)
	}
}

func TestArrayIndexing(t *testing.T) {
	reg := newEvalRegistry()
	got := Eval("[10,20,30][1]", reg, NewMapScope())
	if got.AsNumber() != 20 {
		t.Errorf("[10,20,30][1] = %v, want 20", got)
	}
	outOfRange := Eval("[10,20,30][99]", reg, NewMapScope())
	if outOfRange.AsString() != "" {
		t.Errorf("[10,20,30][99] = %v, want empty string", outOfRange)
	}
}

func TestDictAccess(t *testing.T) {
	reg := newEvalRegistry()
	got := Eval("{a:1,b:2}.a", reg, NewMapScope())
	if got.AsNumber() != 1 {
		t.Errorf("{a:1,b:2}.a = %v, want 1", got)
	}
	got2 := Eval(`{a:1,b:2}["b"]`, reg, NewMapScope())
	if got2.AsNumber() != 2 {
		t.Errorf(`{a:1,b:2}["b"] = %v, want 2`, got2)
	}
	missing := Eval("{a:1}.nope", reg, NewMapScope())
	if !missing.IsError() || missing.AsError().Code != value.ErrKeyNotInDict {
		t.Errorf("{a:1}.nope should be ErrKey(16), got %v", missing)
	}
}

func TestAssignmentAsReference(t *testing.T) {
	reg := newEvalRegistry()
	scope := NewMapScope()
	Eval("a=5", reg, scope)
	Eval("a+=3", reg, scope)
	got := Eval("a", reg, scope)
	if got.AsNumber() != 8 {
		t.Errorf("after a=5;a+=3, a = %v, want 8", got)
	}
}

func TestArrayElementAssignment(t *testing.T) {
	reg := newEvalRegistry()
	scope := NewMapScope()
	Eval("a=[1,2,3]", reg, scope)
	Eval("a[1]=99", reg, scope)
	got := Eval("a[1]", reg, scope)
	if got.AsNumber() != 99 {
		t.Errorf("after a[1]=99, a[1] = %v, want 99", got)
	}
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"5*4-3*2", 14},
		{"5*(4-3)*2", 10},
	}
	for _, test := range tests {
		if got := evalNum(t, test.expr); got != test.want {
			t.Errorf("%s = %v, want %v", test.expr, got, test.want)
		}
	}
}

// TestSemicolonSeparatedExpressions covers spec §4.2: multiple
// semicolon-separated expressions share scope and evaluate in order,
// with the last one's value returned.
func TestSemicolonSeparatedExpressions(t *testing.T) {
	reg := newEvalRegistry()
	scope := NewMapScope()
	got := Eval("a=1;a=a+2;a", reg, scope)
	if got.AsNumber() != 3 {
		t.Errorf(`"a=1;a=a+2;a" = %v, want 3`, got.AsNumber())
	}
}

// TestTrailingSemicolonIsPermitted covers spec §4.2's "a trailing
// semicolon is permitted at end of expression" rule.
func TestTrailingSemicolonIsPermitted(t *testing.T) {
	got := Eval("1+2;", newEvalRegistry(), NewMapScope())
	if got.AsNumber() != 3 {
		t.Errorf(`"1+2;" = %v, want 3`, got.AsNumber())
	}
}

// TestSemicolonInsideStringIsNotASeparator makes sure the split
// respects quoting the same way Preprocess does.
func TestSemicolonInsideStringIsNotASeparator(t *testing.T) {
	got := Eval(`"a;b"`, newEvalRegistry(), NewMapScope())
	if got.AsString() != "a;b" {
		t.Errorf(`"a;b" = %q, want "a;b"`, got.AsString())
	}
}

func TestJunkAfterExpressionIsAnError(t *testing.T) {
	reg := newEvalRegistry()
	got := Eval("1+2abc", reg, NewMapScope())
	if !got.IsError() || got.AsError().Code != value.ErrJunkAfterExpr {
		t.Errorf("\"1+2abc\" should be ErrJunkAfterExpr, got %v", got)
	}
}
