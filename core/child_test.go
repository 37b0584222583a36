package core

import "testing"

func TestToLangFromLangRoundTrip(t *testing.T) {
	original := SeqValue([]DynamicValue{
		IntValue(1),
		TextValue("x"),
		MapValue([]string{"k"}, []DynamicValue{BoolValue(true)}),
	})
	roundTripped := fromLang(toLang(original))
	if !Compare(original, roundTripped) {
		t.Fatalf("round trip mismatch: %v vs %v", Repr(original), Repr(roundTripped))
	}
}

func TestExecuteChildCorrectSolution(t *testing.T) {
	req := ChildRequest{
		Source:     "def solution(a, b):\n    return a + b\n",
		Input:      map[string]DynamicValue{"a": IntValue(2), "b": IntValue(3)},
		EntryPoint: "solution",
	}
	resp := executeChild(req)
	if resp.Fault != nil {
		t.Fatalf("unexpected fault: %v", resp.Fault)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}
	if !Compare(resp.Actual, IntValue(5)) {
		t.Fatalf("expected 5, got %v", Repr(resp.Actual))
	}
}

func TestExecuteChildSyntaxFault(t *testing.T) {
	req := ChildRequest{Source: "def broken(:\n", EntryPoint: "solution"}
	resp := executeChild(req)
	if resp.Fault == nil || resp.Fault.Kind != FaultSyntax {
		t.Fatalf("expected a syntax fault, got %v", resp.Fault)
	}
}
