package lang

import "testing"

func runSolution(t *testing.T, src string, kwargs map[string]Value) (Value, error) {
	t.Helper()
	program, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	interp := NewInterp(NewSandboxEnv())
	if err := interp.Load(program); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	return interp.CallEntryPoint("solution", kwargs)
}

func TestInterpCorrectSolution(t *testing.T) {
	v, err := runSolution(t, "def solution(a, b):\n    return a + b\n", map[string]Value{"a": Int(2), "b": Int(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt || v.Int != 5 {
		t.Fatalf("expected 5, got %+v", v)
	}
}

func TestInterpZeroDivisionError(t *testing.T) {
	_, err := runSolution(t, "def solution(a, b):\n    return a / b\n", map[string]Value{"a": Int(1), "b": Int(0)})
	pe, ok := err.(*PyError)
	if !ok {
		t.Fatalf("expected *PyError, got %T (%v)", err, err)
	}
	if pe.Class != "ZeroDivisionError" {
		t.Fatalf("expected ZeroDivisionError, got %s", pe.Class)
	}
}

func TestInterpMissingEntryPoint(t *testing.T) {
	program, err := Parse("def other():\n    return 1\n")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	interp := NewInterp(NewSandboxEnv())
	if err := interp.Load(program); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	_, err = interp.CallEntryPoint("solution", nil)
	if _, ok := err.(MissingEntryError); !ok {
		t.Fatalf("expected MissingEntryError, got %T", err)
	}
}

func TestInterpForbiddenImport(t *testing.T) {
	program, err := Parse("import os\ndef solution():\n    return 1\n")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	err = NewInterp(NewSandboxEnv()).Load(program)
	pe, ok := err.(*PyError)
	if !ok {
		t.Fatalf("expected *PyError, got %T", err)
	}
	if pe.Class != "ImportError" {
		t.Fatalf("expected ImportError, got %s", pe.Class)
	}
}

func TestInterpWhileLoopAndBreak(t *testing.T) {
	src := "def solution():\n    i = 0\n    while True:\n        i += 1\n        if i >= 5:\n            break\n    return i\n"
	v, err := runSolution(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int != 5 {
		t.Fatalf("expected 5, got %+v", v)
	}
}

func TestInterpForLoopOverRange(t *testing.T) {
	src := "def solution():\n    total = 0\n    for i in range(5):\n        total += i\n    return total\n"
	v, err := runSolution(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int != 10 {
		t.Fatalf("expected 10, got %+v", v)
	}
}

func TestInterpTryExceptCatchesRaised(t *testing.T) {
	src := "def solution():\n    try:\n        raise ValueError(\"bad\")\n    except ValueError as e:\n        return 1\n    return 0\n"
	v, err := runSolution(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Int != 1 {
		t.Fatalf("expected 1, got %+v", v)
	}
}

func TestInterpUncaughtExceptionPropagates(t *testing.T) {
	src := "def solution():\n    try:\n        raise KeyError(\"missing\")\n    except ValueError:\n        return 1\n    return 0\n"
	_, err := runSolution(t, src, nil)
	pe, ok := err.(*PyError)
	if !ok {
		t.Fatalf("expected *PyError for an unmatched except clause, got %T", err)
	}
	if pe.Class != "KeyError" {
		t.Fatalf("expected KeyError, got %s", pe.Class)
	}
}

func TestInterpFloatToleranceAtLanguageLevel(t *testing.T) {
	src := "def solution(a, b):\n    return a + b == 0.3\n"
	v, err := runSolution(t, src, map[string]Value{"a": Float(0.1), "b": Float(0.2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindBool || v.Bool {
		t.Fatalf("expected 0.1+0.2==0.3 to be false under exact language equality, got %+v", v)
	}
}

func TestInterpListOperationsAndIndexing(t *testing.T) {
	src := "def solution():\n    xs = [1, 2, 3]\n    xs[0] = 10\n    return xs\n"
	v, err := runSolution(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindList || len(v.Items) != 3 || v.Items[0].Int != 10 {
		t.Fatalf("unexpected result: %+v", v)
	}
}

func TestInterpRecursionDepthLimit(t *testing.T) {
	src := "def solution(n):\n    if n <= 0:\n        return 0\n    return 1 + solution(n - 1)\n"
	_, err := runSolution(t, src, map[string]Value{"n": Int(10000)})
	pe, ok := err.(*PyError)
	if !ok {
		t.Fatalf("expected a recursion-limit *PyError, got %T (%v)", err, err)
	}
	if pe.Class != "RuntimeError" {
		t.Fatalf("expected RuntimeError, got %s", pe.Class)
	}
}

func TestInterpAttributeAccessUnsupported(t *testing.T) {
	src := "def solution():\n    x = \"abc\"\n    return x.upper\n"
	_, err := runSolution(t, src, nil)
	pe, ok := err.(*PyError)
	if !ok {
		t.Fatalf("expected *PyError, got %T", err)
	}
	if pe.Class != "AttributeError" {
		t.Fatalf("expected AttributeError, got %s", pe.Class)
	}
}
