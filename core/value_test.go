package core

import "testing"

func TestCompareFloatTolerance(t *testing.T) {
	a := FloatValue(0.1 + 0.2)
	b := FloatValue(0.3)
	if !Compare(a, b) {
		t.Fatalf("expected 0.1+0.2 to compare equal to 0.3 within tolerance")
	}
}

func TestCompareNaNNeverEqual(t *testing.T) {
	nan := FloatValue(nanValue())
	if Compare(nan, nan) {
		t.Fatalf("NaN must not compare equal to itself")
	}
}

func TestCompareListTupleCrossType(t *testing.T) {
	list := SeqValue([]DynamicValue{IntValue(1), IntValue(2)})
	other := SeqValue([]DynamicValue{IntValue(1), IntValue(2)})
	if !Compare(list, other) {
		t.Fatalf("expected equal-length ordered sequences to compare equal")
	}
}

func TestCompareMapKeySet(t *testing.T) {
	a := MapValue([]string{"x", "y"}, []DynamicValue{IntValue(1), IntValue(2)})
	b := MapValue([]string{"y", "x"}, []DynamicValue{IntValue(2), IntValue(1)})
	if !Compare(a, b) {
		t.Fatalf("expected maps with same key set and values to compare equal regardless of order")
	}
}

func TestCompareIntAgainstFloat(t *testing.T) {
	if !Compare(IntValue(5), FloatValue(5)) {
		t.Fatalf("expected 5 to compare equal to 5.0")
	}
	if Compare(IntValue(5), FloatValue(5.5)) {
		t.Fatalf("expected 5 to compare unequal to 5.5")
	}
	if Compare(BoolValue(true), IntValue(1)) {
		t.Fatalf("booleans compare only to booleans")
	}
}

func TestCompareReflexiveOnFiniteValues(t *testing.T) {
	v := SeqValue([]DynamicValue{IntValue(1), TextValue("a"), BoolValue(true)})
	if !Compare(v, v) {
		t.Fatalf("compare(v, v) must be true for finite values")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}
