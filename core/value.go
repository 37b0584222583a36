package core

import (
	"math"

	"github.com/A1eksMa/PracticeRaptor/lang"
)

// ValueKind tags a DynamicValue's variant: unit, boolean, integer,
// floating-point, text, ordered sequence, mapping.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueText
	ValueSeq
	ValueMap
)

// DynamicValue is the type-tagged variant that crosses the process boundary
// between Supervisor and Child Worker, carries test inputs/expected values
// from the caller, and carries the entry point's return value back. It is
// deliberately a plain, gob-friendly struct (no interfaces, no pointers
// inside the recursive fields) so it round-trips losslessly over the
// supervisor<->child pipe.
type DynamicValue struct {
	Kind ValueKind

	B bool
	I int64
	F float64
	S string

	Seq []DynamicValue
	// Map keys and values are parallel slices (not a Go map) so that
	// iteration order is stable across the gob round trip; key-set equality
	// is what the comparator actually cares about, not insertion order.
	MapKeys []string
	MapVals []DynamicValue
}

func NoneValue() DynamicValue           { return DynamicValue{Kind: ValueNone} }
func BoolValue(b bool) DynamicValue     { return DynamicValue{Kind: ValueBool, B: b} }
func IntValue(i int64) DynamicValue     { return DynamicValue{Kind: ValueInt, I: i} }
func FloatValue(f float64) DynamicValue { return DynamicValue{Kind: ValueFloat, F: f} }
func TextValue(s string) DynamicValue   { return DynamicValue{Kind: ValueText, S: s} }

func SeqValue(items []DynamicValue) DynamicValue {
	return DynamicValue{Kind: ValueSeq, Seq: items}
}

func MapValue(keys []string, vals []DynamicValue) DynamicValue {
	return DynamicValue{Kind: ValueMap, MapKeys: keys, MapVals: vals}
}

// toLang converts a DynamicValue into the lang package's runtime Value, for
// handing test input to the interpreter as keyword arguments.
func toLang(v DynamicValue) lang.Value {
	switch v.Kind {
	case ValueBool:
		return lang.Bool(v.B)
	case ValueInt:
		return lang.Int(v.I)
	case ValueFloat:
		return lang.Float(v.F)
	case ValueText:
		return lang.Str(v.S)
	case ValueSeq:
		items := make([]lang.Value, len(v.Seq))
		for i, it := range v.Seq {
			items[i] = toLang(it)
		}
		return lang.List(items)
	case ValueMap:
		vals := make([]lang.Value, len(v.MapVals))
		for i, it := range v.MapVals {
			vals[i] = toLang(it)
		}
		return lang.Dict(append([]string{}, v.MapKeys...), vals)
	default:
		return lang.None()
	}
}

// fromLang converts the interpreter's return value back into the wire
// representation carried back to the Supervisor.
func fromLang(v lang.Value) DynamicValue {
	switch v.Kind {
	case lang.KindBool:
		return BoolValue(v.Bool)
	case lang.KindInt:
		return IntValue(v.Int)
	case lang.KindFloat:
		return FloatValue(v.Flt)
	case lang.KindString:
		return TextValue(v.Str)
	case lang.KindList, lang.KindTuple:
		items := make([]DynamicValue, len(v.Items))
		for i, it := range v.Items {
			items[i] = fromLang(it)
		}
		return SeqValue(items)
	case lang.KindDict:
		vals := make([]DynamicValue, len(v.Vals))
		for i, it := range v.Vals {
			vals[i] = fromLang(it)
		}
		return MapValue(append([]string{}, v.Keys...), vals)
	default:
		return NoneValue()
	}
}

// Compare decides whether actual equals expected under four ordered rules:
// float tolerance, ordered-sequence cross-type equality, mapping key-set
// equality, and native equality as the fallback.
func Compare(actual, expected DynamicValue) bool {
	if actual.Kind == ValueFloat && expected.Kind == ValueFloat {
		if math.IsNaN(actual.F) || math.IsNaN(expected.F) {
			return false
		}
		return math.Abs(actual.F-expected.F) < 1e-9
	}
	if isSeqLike(actual.Kind) && isSeqLike(expected.Kind) {
		if len(actual.Seq) != len(expected.Seq) {
			return false
		}
		for i := range actual.Seq {
			if !Compare(actual.Seq[i], expected.Seq[i]) {
				return false
			}
		}
		return true
	}
	if actual.Kind == ValueMap && expected.Kind == ValueMap {
		if len(actual.MapKeys) != len(expected.MapKeys) {
			return false
		}
		for i, k := range actual.MapKeys {
			ev, ok := mapGet(expected, k)
			if !ok || !Compare(actual.MapVals[i], ev) {
				return false
			}
		}
		return true
	}
	return nativeEqual(actual, expected)
}

// isSeqLike treats list-like and tuple-like as the same "ordered sequence"
// variant at the wire level (both encode as ValueSeq), so rule 2's
// "mixing list with tuple is allowed" falls out for free.
func isSeqLike(k ValueKind) bool { return k == ValueSeq }

func mapGet(v DynamicValue, key string) (DynamicValue, bool) {
	for i, k := range v.MapKeys {
		if k == key {
			return v.MapVals[i], true
		}
	}
	return DynamicValue{}, false
}

// nativeEqual mirrors the submission language's own `==` (see
// lang.valuesEqual): an integer and a float holding the same number compare
// equal. JSON-decoded expected values arrive as floats, so this is what
// keeps them comparable against integer return values.
func nativeEqual(a, b DynamicValue) bool {
	if af, aok := numericOf(a); aok {
		bf, bok := numericOf(b)
		if !bok {
			return false
		}
		if math.IsNaN(af) || math.IsNaN(bf) {
			return false
		}
		return af == bf
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValueNone:
		return true
	case ValueBool:
		return a.B == b.B
	case ValueText:
		return a.S == b.S
	default:
		return false
	}
}

func numericOf(v DynamicValue) (float64, bool) {
	switch v.Kind {
	case ValueInt:
		return float64(v.I), true
	case ValueFloat:
		return v.F, true
	default:
		return 0, false
	}
}

// Repr renders a DynamicValue the way the comparator's diagnostic messages
// need it (e.g. "Expected 10, got 6").
func Repr(v DynamicValue) string {
	return toLang(v).Repr()
}
