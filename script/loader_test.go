package script

import (
	"strings"
	"testing"

	"github.com/quill-lang/quill/config"
)

func load(t *testing.T, src string) (*Program, error) {
	t.Helper()
	return Load(src, config.New())
}

func TestLoadComputesChildCounts(t *testing.T) {
	src := strings.Join([]string{
		"if 1",
		"  a = 1",
		"  b = 2",
		"c = 3",
	}, "\n")
	prog, err := load(t, src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if prog.Lines[0].NumChildLines != 2 {
		t.Errorf("if line NumChildLines = %d, want 2", prog.Lines[0].NumChildLines)
	}
	if prog.Lines[3].NumChildLines != 0 {
		t.Errorf("c=3 NumChildLines = %d, want 0", prog.Lines[3].NumChildLines)
	}
}

func TestLoadRejectsTabIndentation(t *testing.T) {
	src := "if 1\n\tx = 1\n"
	if _, err := load(t, src); err == nil {
		t.Error("tab-indented body should be rejected")
	}
}

func TestLoadRejectsNonMultipleIndentation(t *testing.T) {
	src := "if 1\n   x = 1\n"
	if _, err := load(t, src); err == nil {
		t.Error("3-space indentation (not a multiple of 2) should be rejected")
	}
}

func TestLoadRejectsEmptyBlock(t *testing.T) {
	src := "if 1\nx = 2\n"
	if _, err := load(t, src); err == nil {
		t.Error("if with no indented body should be rejected as an empty block")
	}
}

func TestLoadRejectsElseifWithNoPrecedingIf(t *testing.T) {
	src := "elseif 1\n  x = 1\n"
	if _, err := load(t, src); err == nil {
		t.Error("elseif with no preceding if should be rejected")
	}
}

func TestLoadRejectsElseifAfterElse(t *testing.T) {
	src := strings.Join([]string{
		"if 1",
		"  a = 1",
		"else",
		"  a = 2",
		"elseif 2",
		"  a = 3",
	}, "\n")
	if _, err := load(t, src); err == nil {
		t.Error("elseif following else in the same chain should be rejected")
	}
}

func TestLoadAcceptsIfElseifElse(t *testing.T) {
	src := strings.Join([]string{
		"if 1",
		"  a = 1",
		"elseif 2",
		"  a = 2",
		"else",
		"  a = 3",
	}, "\n")
	if _, err := load(t, src); err != nil {
		t.Errorf("valid if/elseif/else chain was rejected: %v", err)
	}
}

func TestLoadRejectsGlobalOutsideDef(t *testing.T) {
	src := "global x\n"
	if _, err := load(t, src); err == nil {
		t.Error("global outside a def should be rejected")
	}
}

func TestLoadAcceptsGlobalInsideDef(t *testing.T) {
	src := strings.Join([]string{
		"def f()",
		"  global x",
		"  return x",
	}, "\n")
	if _, err := load(t, src); err != nil {
		t.Errorf("global inside a def was rejected: %v", err)
	}
}

func TestLoadRejectsReservedArgName(t *testing.T) {
	src := strings.Join([]string{
		"def f(for)",
		"  return 1",
	}, "\n")
	if _, err := load(t, src); err == nil {
		t.Error("a def argument named after a reserved word should be rejected")
	}
}

func TestLoadRejectsDuplicateFunctionName(t *testing.T) {
	src := strings.Join([]string{
		"def f()",
		"  return 1",
		"def f()",
		"  return 2",
	}, "\n")
	if _, err := load(t, src); err == nil {
		t.Error("duplicate function names should be rejected")
	}
}

func TestLoadRejectsNestedDef(t *testing.T) {
	src := strings.Join([]string{
		"if 1",
		"  def f()",
		"    return 1",
	}, "\n")
	if _, err := load(t, src); err == nil {
		t.Error("def must be at top level")
	}
}

func TestLoadRegistersFunctionArgs(t *testing.T) {
	src := strings.Join([]string{
		"def add(a, b)",
		"  return a + b",
	}, "\n")
	prog, err := load(t, src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	fd, ok := prog.Functions["add"]
	if !ok {
		t.Fatal("function add was not registered")
	}
	if len(fd.Args) != 2 || fd.Args[0] != "a" || fd.Args[1] != "b" {
		t.Errorf("add args = %v, want [a b]", fd.Args)
	}
}
