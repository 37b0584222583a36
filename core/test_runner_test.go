package core

import "testing"

func TestRunSuiteAllPass(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def solution(a, b):\n    return a + b\n"
	cases := []TestCase{
		{Input: map[string]DynamicValue{"a": IntValue(1), "b": IntValue(2)}, Expected: IntValue(3)},
		{Input: map[string]DynamicValue{"a": IntValue(4), "b": IntValue(5)}, Expected: IntValue(9)},
	}
	verdict := RunSuite(src, cases, "solution", 2000, sup)
	if verdict.Fatal != nil {
		t.Fatalf("unexpected fatal: %v", verdict.Fatal)
	}
	if !verdict.Success {
		t.Fatalf("expected suite success, got %+v", verdict)
	}
	if len(verdict.TestResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(verdict.TestResults))
	}
}

func TestRunSuiteStopsAtFirstWrongAnswer(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def solution(a, b):\n    return a + b\n"
	cases := []TestCase{
		{Input: map[string]DynamicValue{"a": IntValue(1), "b": IntValue(2)}, Expected: IntValue(999)},
		{Input: map[string]DynamicValue{"a": IntValue(4), "b": IntValue(5)}, Expected: IntValue(9)},
	}
	verdict := RunSuite(src, cases, "solution", 2000, sup)
	if verdict.Success {
		t.Fatalf("expected suite failure")
	}
	if len(verdict.TestResults) != 1 {
		t.Fatalf("expected early stop after 1 result, got %d", len(verdict.TestResults))
	}
	got := verdict.TestResults[0]
	if got.Passed {
		t.Fatalf("expected first case to fail")
	}
	want := "Expected " + Repr(IntValue(999)) + ", got " + Repr(IntValue(3))
	if got.ErrorMessage != want {
		t.Fatalf("unexpected message: %q, want %q", got.ErrorMessage, want)
	}
}

func TestRunSuiteSyntaxFault(t *testing.T) {
	sup := NewSupervisor(100)
	verdict := RunSuite("def broken(:\n", nil, "solution", 2000, sup)
	if verdict.Fatal == nil || verdict.Fatal.Kind != FaultSyntax {
		t.Fatalf("expected a syntax fatal, got %+v", verdict.Fatal)
	}
}

func TestRunSuiteEmptyCode(t *testing.T) {
	sup := NewSupervisor(100)
	verdict := RunSuite("   ", nil, "solution", 2000, sup)
	if verdict.Fatal == nil || verdict.Fatal.Error() != "line 0: code is empty" {
		t.Fatalf("expected empty-code fatal, got %+v", verdict.Fatal)
	}
}

func TestRunSuiteFloatTolerance(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def solution(a, b):\n    return a + b\n"
	cases := []TestCase{
		{Input: map[string]DynamicValue{"a": FloatValue(0.1), "b": FloatValue(0.2)}, Expected: FloatValue(0.3)},
	}
	verdict := RunSuite(src, cases, "solution", 2000, sup)
	if !verdict.Success {
		t.Fatalf("expected suite success with float tolerance, got %+v", verdict)
	}
}

func TestRunSuiteTimeout(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def solution():\n    while True:\n        pass\n"
	cases := []TestCase{{Input: nil, Expected: IntValue(1)}}
	verdict := RunSuite(src, cases, "solution", 300, sup)
	if verdict.Success {
		t.Fatalf("expected suite failure on timeout")
	}
	if len(verdict.TestResults) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(verdict.TestResults))
	}
	r := verdict.TestResults[0]
	if r.HasActual {
		t.Fatalf("expected no actual on timeout")
	}
	if r.ErrorMessage != "Timeout: exceeded 1 seconds" {
		t.Fatalf("unexpected message: %q", r.ErrorMessage)
	}
}

func TestRunSuiteMissingEntryPoint(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def other(x):\n    return x\n"
	cases := []TestCase{{Input: map[string]DynamicValue{"x": IntValue(1)}, Expected: IntValue(1)}}
	verdict := RunSuite(src, cases, "solution", 2000, sup)
	if verdict.Success {
		t.Fatalf("expected suite failure on missing entry point")
	}
	if verdict.TestResults[0].ErrorMessage != "Function 'solution' not found in code" {
		t.Fatalf("unexpected message: %q", verdict.TestResults[0].ErrorMessage)
	}
}

func TestRunSuiteForbiddenImport(t *testing.T) {
	sup := NewSupervisor(100)
	src := "import os\ndef solution():\n    return 1\n"
	cases := []TestCase{{Input: nil, Expected: IntValue(1)}}
	verdict := RunSuite(src, cases, "solution", 2000, sup)
	if verdict.Success {
		t.Fatalf("expected suite failure for forbidden import")
	}
}
