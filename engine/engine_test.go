package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/quill-lang/quill/config"
)

func newFullEngine() *Engine {
	cfg := config.New()
	cfg.SetEnableMathsFns(true)
	cfg.SetEnableStringFns(true)
	cfg.SetEnableMiscFns(true)
	return New(cfg)
}

// TestAcceptanceExpressions runs the full spec §8 acceptance table
// through Engine.Eval, end to end: lexer -> exprs -> ops -> builtins.
func TestAcceptanceExpressions(t *testing.T) {
	e := newFullEngine()

	tests := []struct {
		expr string
		want float64
	}{
		{"5*4-3*2", 14},
		{"5*(4-3)*2", 10},
		{"min(10,11,12*4,-4-7,15)", -11},
	}
	for _, test := range tests {
		got := e.Eval(test.expr)
		if got.IsError() {
			t.Errorf("Eval(%q) returned error: %s", test.expr, got.AsError().Message)
			continue
		}
		if got.AsNumber() != test.want {
			t.Errorf("Eval(%q) = %v, want %v", test.expr, got.AsNumber(), test.want)
		}
	}

	sinResult := e.Eval("sin(PI/4)")
	if sinResult.IsError() {
		t.Fatalf("Eval(sin(PI/4)) returned error: %s", sinResult.AsError().Message)
	}
	if math.Abs(sinResult.AsNumber()-0.7071067811865) > 1e-9 {
		t.Errorf("sin(PI/4) = %v, want ~0.7071067811865", sinResult.AsNumber())
	}

	sprintfResult := e.Eval(`sprintf("%.2f",5/3)`)
	if sprintfResult.AsString() != "1.67" {
		t.Errorf(`sprintf("%%.2f",5/3) = %q, want "1.67"`, sprintfResult.AsString())
	}

	substrResult := e.Eval(`substr("--Str"+"ing--",2,6)`)
	if substrResult.AsString() != "String" {
		t.Errorf(`substr("--Str"+"ing--",2,6) = %q, want "String"`, substrResult.AsString())
	}

	indexResult := e.Eval("[10,20,30][1]")
	if indexResult.AsNumber() != 20 {
		t.Errorf("[10,20,30][1] = %v, want 20", indexResult.AsNumber())
	}

	dictResult := e.Eval("{a:1,b:2}.b+10")
	if dictResult.AsNumber() != 12 {
		t.Errorf("{a:1,b:2}.b+10 = %v, want 12", dictResult.AsNumber())
	}
}

// TestAcceptanceForLoopScript runs spec §8's for-loop script scenario
// through Engine.Run.
func TestAcceptanceForLoopScript(t *testing.T) {
	e := newFullEngine()
	src := strings.Join([]string{
		"s = 0",
		"for i in 1:4",
		"  s = s + i",
		"return s",
	}, "\n")
	got, err := e.Run(src)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got.AsNumber() != 10 {
		t.Errorf("for-loop script result = %v, want 10", got.AsNumber())
	}
}

// TestRunCachesLoadedScript exercises the LoadScript cache (SPEC_FULL
// §4.11): running the same source text twice must not fail the second
// time around and must return the same result.
func TestRunCachesLoadedScript(t *testing.T) {
	e := newFullEngine()
	src := "return 1+1"
	first, err := e.Run(src)
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second, err := e.Run(src)
	if err != nil {
		t.Fatalf("second (cached) Run: %v", err)
	}
	if first.AsNumber() != second.AsNumber() {
		t.Errorf("cached run result %v differs from first run result %v", second.AsNumber(), first.AsNumber())
	}
}

// TestLoadScriptErrorsAreNotCached verifies a script that fails to
// load is re-validated on resubmission rather than served a cached
// failure forever.
func TestLoadScriptErrorsAreNotCached(t *testing.T) {
	e := newFullEngine()
	bad := "if 1\nx = 2\n" // empty if-block, rejected by the loader
	if _, err := e.LoadScript(bad); err == nil {
		t.Fatal("expected a load error for an empty if-block")
	}
	if _, err := e.LoadScript(bad); err == nil {
		t.Fatal("expected the same load error on resubmission, not a cached success")
	}
}

func TestEngineIDIsStable(t *testing.T) {
	e := newFullEngine()
	id1 := e.ID()
	id2 := e.ID()
	if id1 != id2 {
		t.Error("Engine.ID() should be stable across calls")
	}
}
