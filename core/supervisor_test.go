package core

import "testing"

func TestSupervisorRunOneCorrectSolution(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def solution(a, b):\n    return a + b\n"
	input := map[string]DynamicValue{"a": IntValue(2), "b": IntValue(3)}
	resp, fault := sup.RunOne(src, input, "solution", 2000)
	if fault != nil {
		t.Fatalf("unexpected supervisor fault: %v", fault)
	}
	if resp.Fault != nil {
		t.Fatalf("unexpected child fault: %v", resp.Fault)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}
	if !Compare(resp.Actual, IntValue(5)) {
		t.Fatalf("expected 5, got %v", Repr(resp.Actual))
	}
}

func TestSupervisorRunOneZeroDivision(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def solution(a, b):\n    return a / b\n"
	input := map[string]DynamicValue{"a": IntValue(1), "b": IntValue(0)}
	resp, fault := sup.RunOne(src, input, "solution", 2000)
	if fault != nil {
		t.Fatalf("unexpected supervisor fault: %v", fault)
	}
	if resp.Fault == nil || resp.Fault.Kind != FaultRuntime {
		t.Fatalf("expected a runtime fault, got %v", resp.Fault)
	}
	if resp.Fault.ExceptionClass != "ZeroDivisionError" {
		t.Fatalf("expected ZeroDivisionError, got %s", resp.Fault.ExceptionClass)
	}
}

func TestSupervisorRunOneMissingEntry(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def other(x):\n    return x\n"
	resp, fault := sup.RunOne(src, nil, "solution", 2000)
	if fault != nil {
		t.Fatalf("unexpected supervisor fault: %v", fault)
	}
	if resp.Fault == nil || resp.Fault.Kind != FaultMissingEntry {
		t.Fatalf("expected a missing-entry fault, got %v", resp.Fault)
	}
	if resp.Fault.Error() != "Function 'solution' not found in code" {
		t.Fatalf("unexpected message: %q", resp.Fault.Error())
	}
}

func TestSupervisorRunOneTimeout(t *testing.T) {
	sup := NewSupervisor(100)
	src := "def solution():\n    while True:\n        pass\n"
	_, fault := sup.RunOne(src, nil, "solution", 300)
	if fault == nil || fault.Kind != FaultTimeout {
		t.Fatalf("expected a timeout fault, got %v", fault)
	}
	if fault.Error() != "Timeout: exceeded 1 seconds" {
		t.Fatalf("unexpected message: %q", fault.Error())
	}
}
