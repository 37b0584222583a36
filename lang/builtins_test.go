package lang

import "testing"

func TestBuiltinSetDedupAndEquality(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    return set([1, 2, 2, 3])\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindSet || len(v.Items) != 3 {
		t.Fatalf("expected a 3-element set, got %+v", v)
	}
	if !valuesEqual(v, SetVal([]Value{Int(3), Int(2), Int(1)})) {
		t.Fatalf("expected set equality regardless of order, got %s", v.Repr())
	}
}

func TestBuiltinFrozensetIsHashable(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    return hash(frozenset([1, 2]))\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt {
		t.Fatalf("expected an int hash, got %+v", v)
	}
}

func TestBuiltinHashRejectsUnhashable(t *testing.T) {
	_, err := runSolution(t, "def solution():\n    return hash([1, 2])\n", nil)
	pe, ok := err.(*PyError)
	if !ok || pe.Class != "TypeError" {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestBuiltinBytesConstructorsAndEquality(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    return bytes([104, 105]) == bytearray([104, 105])\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindBool || !v.Bool {
		t.Fatalf("expected bytes == bytearray by content, got %+v", v)
	}
}

func TestBuiltinComplexArithmetic(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    return complex(1, 2) + complex(3, -1)\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindComplex || v.Flt != 4 || v.Im != 1 {
		t.Fatalf("expected (4+1j), got %s", v.Repr())
	}
}

func TestBuiltinComplexDivisionByZero(t *testing.T) {
	_, err := runSolution(t, "def solution():\n    return complex(1, 1) / complex(0, 0)\n", nil)
	pe, ok := err.(*PyError)
	if !ok || pe.Class != "ZeroDivisionError" {
		t.Fatalf("expected ZeroDivisionError, got %v", err)
	}
}

func TestBuiltinIterNext(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    it = iter([10, 20])\n    a = next(it)\n    b = next(it)\n    return a + b\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt || v.Int != 30 {
		t.Fatalf("expected 30, got %+v", v)
	}
}

func TestBuiltinNextExhaustedRaisesStopIteration(t *testing.T) {
	_, err := runSolution(t, "def solution():\n    it = iter([])\n    return next(it)\n", nil)
	pe, ok := err.(*PyError)
	if !ok || pe.Class != "StopIteration" {
		t.Fatalf("expected StopIteration, got %v", err)
	}
}

func TestBuiltinNextWithDefault(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    it = iter([])\n    return next(it, -1)\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt || v.Int != -1 {
		t.Fatalf("expected -1, got %+v", v)
	}
}

func TestBuiltinIdIsStableAcrossRebinding(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    a = [1, 2]\n    b = a\n    return id(a) == id(b)\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindBool || !v.Bool {
		t.Fatalf("expected id(a) == id(b) for the same underlying list, got %+v", v)
	}
}

func TestBuiltinFormatNumeric(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    return format(3.14159, '.2f')\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindString || v.Str != "3.14" {
		t.Fatalf("expected '3.14', got %+v", v)
	}
}

func TestBuiltinFormatZeroPaddedWidth(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    return format(7, '03d')\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindString || v.Str != "007" {
		t.Fatalf("expected '007', got %+v", v)
	}
}

func TestBuiltinFormatRejectsBadSpec(t *testing.T) {
	_, err := runSolution(t, "def solution():\n    return format(7, '!!not-a-spec')\n", nil)
	pe, ok := err.(*PyError)
	if !ok || pe.Class != "ValueError" {
		t.Fatalf("expected ValueError, got %v", err)
	}
}

func TestBuiltinsTableResolvesToItself(t *testing.T) {
	v, err := runSolution(t, "def solution():\n    return __builtins__['len']([1, 2, 3])\n", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != KindInt || v.Int != 3 {
		t.Fatalf("expected len via __builtins__ to return 3, got %+v", v)
	}
}

func TestSandboxDoesNotExposeInternalExceptionClasses(t *testing.T) {
	_, err := runSolution(t, "def solution():\n    return NameError(\"x\")\n", nil)
	pe, ok := err.(*PyError)
	if !ok || pe.Class != "NameError" {
		t.Fatalf("expected NameError for unresolvable name, got %v", err)
	}
	_, err = runSolution(t, "def solution():\n    return ImportError(\"x\")\n", nil)
	pe, ok = err.(*PyError)
	if !ok || pe.Class != "NameError" {
		t.Fatalf("expected NameError for unresolvable name, got %v", err)
	}
}
