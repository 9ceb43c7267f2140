package script

import (
	"strings"
	"testing"

	"github.com/quill-lang/quill/config"
	"github.com/quill-lang/quill/registry"
)

func newTestExecutor(t *testing.T, src string) (*Executor, error) {
	t.Helper()
	cfg := config.New()
	reg := registry.New(cfg)
	reg.InstallDefaultConstants()
	prog, err := Load(src, cfg)
	if err != nil {
		return nil, err
	}
	return NewExecutor(prog, reg), nil
}

func runScript(t *testing.T, src string) (float64, error) {
	t.Helper()
	exec, err := newTestExecutor(t, src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	v, err := exec.Run()
	if err != nil {
		return 0, err
	}
	return v.AsNumber(), nil
}

// TestForLoopOverRange is spec §8's canonical for-loop scenario:
// s=0; for i in 1:4: s=s+i should yield s==10.
func TestForLoopOverRange(t *testing.T) {
	src := strings.Join([]string{
		"s = 0",
		"for i in 1:4",
		"  s = s + i",
		"return s",
	}, "\n")
	got, err := runScript(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got != 10 {
		t.Errorf("for i in 1:4 accumulation = %v, want 10", got)
	}
}

func TestForLoopOverArray(t *testing.T) {
	src := strings.Join([]string{
		"s = 0",
		"for x in [10,20,30]",
		"  s = s + x",
		"return s",
	}, "\n")
	got, err := runScript(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got != 60 {
		t.Errorf("for x in [10,20,30] accumulation = %v, want 60", got)
	}
}

// TestBreakExitsOnlyInnermostLoop checks that "break" inside a nested
// while only terminates the loop it's lexically inside.
func TestBreakExitsOnlyInnermostLoop(t *testing.T) {
	src := strings.Join([]string{
		"outer = 0",
		"inner = 0",
		"i = 0",
		"while i < 3",
		"  j = 0",
		"  while j < 3",
		"    if j == 1",
		"      break",
		"    inner = inner + 1",
		"    j = j + 1",
		"  outer = outer + 1",
		"  i = i + 1",
		"return outer*100+inner",
	}, "\n")
	got, err := runScript(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got != 303 {
		t.Errorf("outer*100+inner = %v, want 303 (outer=3, inner=3)", got)
	}
}

func TestContinueSkipsRestOfLoopBody(t *testing.T) {
	src := strings.Join([]string{
		"s = 0",
		"i = 0",
		"while i < 5",
		"  i = i + 1",
		"  if i == 3",
		"    continue",
		"  s = s + i",
		"return s",
	}, "\n")
	// i runs 1,2,3,4,5; s accumulates every i except 3: 1+2+4+5=12.
	got, err := runScript(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got != 12 {
		t.Errorf("continue-skip accumulation = %v, want 12", got)
	}
}

// TestGlobalLetsFunctionMutateOuterScope verifies spec §4.9's scoping
// rule: a name declared with "global" inside a def resolves to the
// bottom frame instead of creating a fresh local binding.
func TestGlobalLetsFunctionMutateOuterScope(t *testing.T) {
	src := strings.Join([]string{
		"def addone()",
		"  global counter",
		"  counter = counter + 1",
		"counter = 0",
		"addone()",
		"addone()",
		"return counter",
	}, "\n")
	got, err := runScript(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got != 2 {
		t.Errorf("counter after two addone() calls = %v, want 2", got)
	}
}

// TestWithoutGlobalFunctionLocalDoesNotLeak mirrors the previous test
// but omits "global": the function's own write must not be visible to
// the caller.
func TestWithoutGlobalFunctionLocalDoesNotLeak(t *testing.T) {
	src := strings.Join([]string{
		"def addone()",
		"  counter = counter + 1",
		"  return counter",
		"counter = 0",
		"addone()",
		"addone()",
		"return counter",
	}, "\n")
	got, err := runScript(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got != 0 {
		t.Errorf("counter after two addone() calls without global = %v, want 0 (unchanged)", got)
	}
}

func TestFunctionArgumentsAndReturn(t *testing.T) {
	src := strings.Join([]string{
		"def add(a, b)",
		"  return a + b",
		"return add(3, 4)",
	}, "\n")
	got, err := runScript(t, src)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got != 7 {
		t.Errorf("add(3,4) = %v, want 7", got)
	}
}

func TestIfElseifElseChain(t *testing.T) {
	classify := func(n int) (float64, error) {
		src := strings.Join([]string{
			"n = " + itoa(n),
			"if n < 0",
			"  return -1",
			"elseif n == 0",
			"  return 0",
			"else",
			"  return 1",
		}, "\n")
		return runScript(t, src)
	}
	cases := map[int]float64{-5: -1, 0: 0, 5: 1}
	for n, want := range cases {
		got, err := classify(n)
		if err != nil {
			t.Fatalf("run error for n=%d: %v", n, err)
		}
		if got != want {
			t.Errorf("classify(%d) = %v, want %v", n, got, want)
		}
	}
}

func itoa(n int) string {
	if n < 0 {
		return "-" + itoa(-n)
	}
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

// TestResourceBoundTerminatesRunawayLoop checks spec §4.10: a script
// that would otherwise loop forever is aborted once max_lines is hit.
func TestResourceBoundTerminatesRunawayLoop(t *testing.T) {
	cfg := config.New()
	cfg.SetMaxLines(1000)
	reg := registry.New(cfg)
	reg.InstallDefaultConstants()
	src := strings.Join([]string{
		"x = 0",
		"while 1",
		"  x = x + 1",
	}, "\n")
	prog, err := Load(src, cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	exec := NewExecutor(prog, reg)
	_, err = exec.Run()
	if err == nil {
		t.Fatal("runaway while-1 loop should abort once max_lines is exceeded")
	}
}

func TestStopScriptAbortsCooperatively(t *testing.T) {
	cfg := config.New()
	cfg.SetStopScript(true)
	reg := registry.New(cfg)
	reg.InstallDefaultConstants()
	prog, err := Load("x = 1\nx = 2\n", cfg)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	exec := NewExecutor(prog, reg)
	_, err = exec.Run()
	if err == nil {
		t.Fatal("Run should abort immediately when StopScript is already set")
	}
}
