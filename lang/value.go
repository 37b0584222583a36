// Package lang implements the submission language: a small, Python-flavored
// scripting language with an indentation-based grammar, evaluated by a
// tree-walking interpreter inside a sandboxed global namespace. It is the
// single target language chosen at build time for PracticeRaptor's
// execution core.
package lang

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind tags the dynamic runtime representation of every value the
// interpreter produces or consumes.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindTuple
	KindDict
	KindFunction
	KindBuiltin
	KindException // an exception class (callable) or instance
	KindType      // the value returned by type(x)
	KindRange
	KindComplex
	KindBytes     // immutable byte string
	KindByteArray // mutable byte string
	KindSet
	KindFrozenSet
	KindIterator
)

// Value is the dynamic value representation used throughout the
// interpreter: function arguments, return values, locals, and literals.
type Value struct {
	Kind Kind

	Bool bool
	Int  int64
	Flt  float64
	Str  string

	Items []Value // list/tuple/set/frozenset elements, in order

	// Dict keys are always text (per DynamicValue's mapping semantics);
	// Keys/Vals are parallel slices that preserve insertion order.
	Keys []string
	Vals []Value

	Func    *Function
	Builtin *Builtin

	ExcClass string // exception class name, set when Kind == KindException
	ExcMsg   string // exception message, set on an exception instance

	TypeName string // set when Kind == KindType

	RangeStart, RangeStop, RangeStep int64

	Im    float64 // imaginary part, set when Kind == KindComplex (Flt holds the real part)
	Bytes []byte  // set when Kind == KindBytes or KindByteArray

	Iter *IteratorState // set when Kind == KindIterator
}

// IteratorState is the mutable cursor behind an iterator value. It is held
// by pointer so every copy of the Value produced by assignment or argument
// passing advances the same cursor, matching Python's iterator identity.
type IteratorState struct {
	Items []Value
	Pos   int
}

// Function is a user-defined function captured from a `def` statement.
type Function struct {
	Name   string
	Params []string
	Body   []Stmt
	Env    *Env // the (single, global) enclosing scope
}

// Builtin is a whitelisted sandbox function.
type Builtin struct {
	Name string
	Call func(in *Interp, args []Value) (Value, error)
}

func None() Value           { return Value{Kind: KindNone} }
func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func Int(i int64) Value     { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, Flt: f} }
func Str(s string) Value    { return Value{Kind: KindString, Str: s} }

func List(items []Value) Value  { return Value{Kind: KindList, Items: items} }
func Tuple(items []Value) Value { return Value{Kind: KindTuple, Items: items} }

func Dict(keys []string, vals []Value) Value {
	return Value{Kind: KindDict, Keys: keys, Vals: vals}
}

func Complex(re, im float64) Value { return Value{Kind: KindComplex, Flt: re, Im: im} }

func BytesVal(b []byte) Value     { return Value{Kind: KindBytes, Bytes: b} }
func ByteArrayVal(b []byte) Value { return Value{Kind: KindByteArray, Bytes: b} }

// SetVal builds a mutable-in-name-only set: duplicate elements (by
// valuesEqual) are dropped, first occurrence wins.
func SetVal(items []Value) Value { return Value{Kind: KindSet, Items: dedupValues(items)} }

// FrozenSetVal is SetVal's immutable counterpart.
func FrozenSetVal(items []Value) Value { return Value{Kind: KindFrozenSet, Items: dedupValues(items)} }

// IterVal wraps items in a fresh iterator cursor positioned before the first element.
func IterVal(items []Value) Value { return Value{Kind: KindIterator, Iter: &IteratorState{Items: items}} }

func dedupValues(items []Value) []Value {
	var out []Value
	for _, it := range items {
		dup := false
		for _, seen := range out {
			if valuesEqual(seen, it) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, it)
		}
	}
	return out
}

// DictGet returns the value for key and whether it was present.
func (v Value) DictGet(key string) (Value, bool) {
	for i, k := range v.Keys {
		if k == key {
			return v.Vals[i], true
		}
	}
	return Value{}, false
}

// DictSet returns a copy of v with key set to val (inserted at the end if new).
func (v Value) DictSet(key string, val Value) Value {
	keys := make([]string, len(v.Keys))
	vals := make([]Value, len(v.Vals))
	copy(keys, v.Keys)
	copy(vals, v.Vals)
	for i, k := range keys {
		if k == key {
			vals[i] = val
			return Value{Kind: KindDict, Keys: keys, Vals: vals}
		}
	}
	keys = append(keys, key)
	vals = append(vals, val)
	return Value{Kind: KindDict, Keys: keys, Vals: vals}
}

// Truthy implements Python-like truthiness for the subset of kinds we support.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNone:
		return false
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindFloat:
		return v.Flt != 0
	case KindString:
		return v.Str != ""
	case KindList, KindTuple, KindSet, KindFrozenSet:
		return len(v.Items) > 0
	case KindDict:
		return len(v.Keys) > 0
	case KindComplex:
		return v.Flt != 0 || v.Im != 0
	case KindBytes, KindByteArray:
		return len(v.Bytes) > 0
	default:
		return true
	}
}

// TypeOf returns the Python-style type name of v.
func (v Value) TypeOf() string {
	switch v.Kind {
	case KindNone:
		return "NoneType"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindDict:
		return "dict"
	case KindFunction, KindBuiltin:
		return "function"
	case KindException:
		return v.ExcClass
	case KindType:
		return "type"
	case KindRange:
		return "range"
	case KindComplex:
		return "complex"
	case KindBytes:
		return "bytes"
	case KindByteArray:
		return "bytearray"
	case KindSet:
		return "set"
	case KindFrozenSet:
		return "frozenset"
	case KindIterator:
		return "iterator"
	default:
		return "object"
	}
}

// Repr renders v the way Python's repr() would for the kinds we support.
func (v Value) Repr() string {
	switch v.Kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return formatFloat(v.Flt)
	case KindString:
		return "'" + strings.ReplaceAll(v.Str, "'", "\\'") + "'"
	case KindList:
		return "[" + joinRepr(v.Items) + "]"
	case KindTuple:
		inner := joinRepr(v.Items)
		if len(v.Items) == 1 {
			inner += ","
		}
		return "(" + inner + ")"
	case KindDict:
		parts := make([]string, len(v.Keys))
		for i, k := range v.Keys {
			parts[i] = "'" + k + "': " + v.Vals[i].Repr()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.Func.Name)
	case KindBuiltin:
		return fmt.Sprintf("<built-in function %s>", v.Builtin.Name)
	case KindException:
		if v.ExcMsg != "" {
			return fmt.Sprintf("%s(%s)", v.ExcClass, strconv.Quote(v.ExcMsg))
		}
		return v.ExcClass + "()"
	case KindComplex:
		return formatComplex(v.Flt, v.Im)
	case KindBytes:
		return "b'" + escapeBytes(v.Bytes) + "'"
	case KindByteArray:
		return "bytearray(b'" + escapeBytes(v.Bytes) + "')"
	case KindSet:
		if len(v.Items) == 0 {
			return "set()"
		}
		return "{" + joinRepr(v.Items) + "}"
	case KindFrozenSet:
		if len(v.Items) == 0 {
			return "frozenset()"
		}
		return "frozenset({" + joinRepr(v.Items) + "})"
	case KindIterator:
		return "<iterator object>"
	default:
		return "<object>"
	}
}

// formatComplex renders a complex value the way Python's repr() does:
// "(re+imj)" when both parts are present, "imj" alone when re is zero.
func formatComplex(re, im float64) string {
	part := func(f float64) string { return strings.TrimSuffix(formatFloat(f), ".0") }
	imPart := part(im) + "j"
	if im >= 0 || math.IsNaN(im) {
		imPart = "+" + imPart
	}
	if re == 0 {
		return part(im) + "j"
	}
	return "(" + part(re) + imPart + ")"
}

func escapeBytes(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		switch c {
		case '\\':
			sb.WriteString("\\\\")
		case '\'':
			sb.WriteString("\\'")
		case '\n':
			sb.WriteString("\\n")
		case '\t':
			sb.WriteString("\\t")
		case '\r':
			sb.WriteString("\\r")
		default:
			if c >= 0x20 && c < 0x7f {
				sb.WriteByte(c)
			} else {
				fmt.Fprintf(&sb, "\\x%02x", c)
			}
		}
	}
	return sb.String()
}

// AsString renders v the way Python's str() would (same as Repr for most kinds
// except top-level strings, which are unquoted).
func (v Value) AsString() string {
	if v.Kind == KindString {
		return v.Str
	}
	return v.Repr()
}

func joinRepr(items []Value) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Repr()
	}
	return strings.Join(parts, ", ")
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// sortValues sorts a slice of Values with the given less function, returning
// a new slice (the input is not mutated).
func sortValues(items []Value, less func(a, b Value) bool) []Value {
	out := make([]Value, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
