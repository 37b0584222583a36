package lang

import (
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// exceptionClasses is the whitelist of exception class names the sandbox
// exposes as callables (e.g. `raise ValueError("bad")`). NameError and
// ImportError are raised by the interpreter itself but are not part of the
// whitelist; user code can still catch them by name (except-clause matching
// is textual) without being able to construct them.
var exceptionClasses = []string{
	"Exception",
	"ValueError",
	"TypeError",
	"KeyError",
	"IndexError",
	"AttributeError",
	"RuntimeError",
	"StopIteration",
	"ZeroDivisionError",
}

// typeConstructors is the whitelist of type-conversion callables.
var typeConstructors = []string{
	"bool", "int", "float", "str", "list", "tuple", "dict", "set", "frozenset", "bytes", "bytearray", "range", "complex",
}

// NewSandboxEnv builds the global namespace a submission runs against: the
// whitelisted builtins plus exception classes and type constructors, with no
// access to anything the host process exposes.
func NewSandboxEnv() *Env {
	env := NewEnv()
	for _, name := range exceptionClasses {
		env.Set(name, Value{Kind: KindException, ExcClass: name})
	}
	for _, name := range typeConstructors {
		env.Set(name, Value{Kind: KindType, TypeName: name})
	}
	env.Set("True", Bool(true))
	env.Set("False", Bool(false))
	env.Set("None", None())
	for name, fn := range builtinFuncs {
		env.Set(name, Value{Kind: KindBuiltin, Builtin: &Builtin{Name: name, Call: fn}})
	}
	// The builtin-table name resolves to the table itself; __builtins__
	// lookups stay inside the sandbox.
	keys := make([]string, 0, len(env.vars))
	vals := make([]Value, 0, len(env.vars))
	for k, v := range env.vars {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	env.Set("__builtins__", Dict(keys, vals))
	return env
}

type builtinFunc func(in *Interp, args []Value) (Value, error)

var builtinFuncs map[string]builtinFunc

func init() {
	builtinFuncs = map[string]builtinFunc{
		"abs":        biAbs,
		"all":        biAll,
		"any":        biAny,
		"bin":        biBin,
		"hex":        biHex,
		"oct":        biOct,
		"chr":        biChr,
		"ord":        biOrd,
		"divmod":     biDivmod,
		"enumerate":  biEnumerate,
		"len":        biLen,
		"max":        biMaxMin(true),
		"min":        biMaxMin(false),
		"pow":        biPow,
		"print":      biPrint,
		"repr":       biRepr,
		"round":      biRound,
		"sorted":     biSorted,
		"sum":        biSum,
		"reversed":   biReversed,
		"isinstance": biIsinstance,
		"issubclass": biIssubclass,
		"type":       biType,
		"zip":        biZip,
		"map":        biMap,
		"filter":     biFilter,
		"list":       biListCtor,
		"str":        biStrCtor,
		"int":        biIntCtor,
		"float":      biFloatCtor,
		"bool":       biBoolCtor,
		"tuple":      biTupleCtor,
		"dict":       biDictCtor,
		"range":      biRange,
		"set":        biSetCtor,
		"frozenset":  biFrozensetCtor,
		"bytes":      biBytesCtor,
		"bytearray":  biBytearrayCtor,
		"complex":    biComplexCtor,
		"hash":       biHash,
		"id":         biID,
		"iter":       biIter,
		"next":       biNext,
		"format":     biFormat,
	}
}

func argErr(fn string, want, got int) error {
	return raisef("TypeError", "%s() takes %d argument(s) but %d were given", fn, want, got)
}

func biAbs(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, argErr("abs", 1, len(args))
	}
	switch args[0].Kind {
	case KindInt:
		if args[0].Int < 0 {
			return Int(-args[0].Int), nil
		}
		return args[0], nil
	case KindFloat:
		return Float(math.Abs(args[0].Flt)), nil
	}
	return Value{}, raisef("TypeError", "bad operand type for abs(): '%s'", args[0].TypeOf())
}

func biAll(in *Interp, args []Value) (Value, error) {
	items, err := iterable1(args, "all")
	if err != nil {
		return Value{}, err
	}
	for _, it := range items {
		if !it.Truthy() {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func biAny(in *Interp, args []Value) (Value, error) {
	items, err := iterable1(args, "any")
	if err != nil {
		return Value{}, err
	}
	for _, it := range items {
		if it.Truthy() {
			return Bool(true), nil
		}
	}
	return Bool(false), nil
}

func iterable1(args []Value, fn string) ([]Value, error) {
	if len(args) != 1 {
		return nil, argErr(fn, 1, len(args))
	}
	return iterate(args[0], 0)
}

func biBin(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindInt {
		return Value{}, raisef("TypeError", "bin() requires an int argument")
	}
	n := args[0].Int
	if n < 0 {
		return Str("-0b" + strconv.FormatInt(-n, 2)), nil
	}
	return Str("0b" + strconv.FormatInt(n, 2)), nil
}

func biHex(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindInt {
		return Value{}, raisef("TypeError", "hex() requires an int argument")
	}
	n := args[0].Int
	if n < 0 {
		return Str("-0x" + strconv.FormatInt(-n, 16)), nil
	}
	return Str("0x" + strconv.FormatInt(n, 16)), nil
}

func biOct(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindInt {
		return Value{}, raisef("TypeError", "oct() requires an int argument")
	}
	n := args[0].Int
	if n < 0 {
		return Str("-0o" + strconv.FormatInt(-n, 8)), nil
	}
	return Str("0o" + strconv.FormatInt(n, 8)), nil
}

func biChr(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindInt {
		return Value{}, raisef("TypeError", "chr() requires an int argument")
	}
	if args[0].Int < 0 || args[0].Int > 0x10FFFF {
		return Value{}, raisef("ValueError", "chr() arg not in range(0x110000)")
	}
	return Str(string(rune(args[0].Int))), nil
}

func biOrd(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 || args[0].Kind != KindString {
		return Value{}, raisef("TypeError", "ord() expected a string of length 1")
	}
	runes := []rune(args[0].Str)
	if len(runes) != 1 {
		return Value{}, raisef("TypeError", "ord() expected a character, but string of length %d found", len(runes))
	}
	return Int(int64(runes[0])), nil
}

func biDivmod(in *Interp, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, argErr("divmod", 2, len(args))
	}
	q, err := binaryOp(TokDoubleSlash, args[0], args[1], 0)
	if err != nil {
		return Value{}, err
	}
	r, err := binaryOp(TokPercent, args[0], args[1], 0)
	if err != nil {
		return Value{}, err
	}
	return Tuple([]Value{q, r}), nil
}

func biEnumerate(in *Interp, args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, argErr("enumerate", 1, len(args))
	}
	start := int64(0)
	if len(args) > 1 {
		if args[1].Kind != KindInt {
			return Value{}, raisef("TypeError", "enumerate() start must be an int")
		}
		start = args[1].Int
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(items))
	for i, it := range items {
		out[i] = Tuple([]Value{Int(start + int64(i)), it})
	}
	return List(out), nil
}

func biLen(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, argErr("len", 1, len(args))
	}
	switch args[0].Kind {
	case KindString:
		return Int(int64(len([]rune(args[0].Str)))), nil
	case KindList, KindTuple, KindSet, KindFrozenSet:
		return Int(int64(len(args[0].Items))), nil
	case KindDict:
		return Int(int64(len(args[0].Keys))), nil
	case KindBytes, KindByteArray:
		return Int(int64(len(args[0].Bytes))), nil
	default:
		return Value{}, raisef("TypeError", "object of type '%s' has no len()", args[0].TypeOf())
	}
}

func biMaxMin(wantMax bool) builtinFunc {
	name := "min"
	if wantMax {
		name = "max"
	}
	return func(in *Interp, args []Value) (Value, error) {
		var items []Value
		if len(args) == 1 {
			var err error
			items, err = iterate(args[0], 0)
			if err != nil {
				return Value{}, err
			}
		} else {
			items = args
		}
		if len(items) == 0 {
			return Value{}, raisef("ValueError", "%s() arg is an empty sequence", name)
		}
		best := items[0]
		for _, it := range items[1:] {
			ok, err := compareOp(TokGt, it, best)
			if err != nil {
				return Value{}, err
			}
			if ok == wantMax {
				best = it
			}
		}
		return best, nil
	}
}

func biPow(in *Interp, args []Value) (Value, error) {
	if len(args) < 2 {
		return Value{}, argErr("pow", 2, len(args))
	}
	result, err := binaryOp(TokDoubleStar, args[0], args[1], 0)
	if err != nil {
		return Value{}, err
	}
	if len(args) == 3 {
		return binaryOp(TokPercent, result, args[2], 0)
	}
	return result, nil
}

func biPrint(in *Interp, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.AsString()
	}
	fmt.Println(strings.Join(parts, " "))
	return None(), nil
}

func biRepr(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, argErr("repr", 1, len(args))
	}
	return Str(args[0].Repr()), nil
}

func biRound(in *Interp, args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, argErr("round", 1, len(args))
	}
	f, ok := asFloat(args[0])
	if !ok {
		return Value{}, raisef("TypeError", "type %s doesn't define __round__ method", args[0].TypeOf())
	}
	if len(args) == 1 || args[1].Int == 0 {
		if len(args) == 1 {
			return Int(int64(math.RoundToEven(f))), nil
		}
	}
	if len(args) > 1 {
		n := args[1].Int
		mult := math.Pow(10, float64(n))
		return Float(math.RoundToEven(f*mult) / mult), nil
	}
	return Int(int64(math.RoundToEven(f))), nil
}

func biSorted(in *Interp, args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, argErr("sorted", 1, len(args))
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	sorted := sortValues(items, func(a, b Value) bool {
		ok, _ := compareOp(TokLt, a, b)
		return ok
	})
	return List(sorted), nil
}

func biSum(in *Interp, args []Value) (Value, error) {
	if len(args) < 1 {
		return Value{}, argErr("sum", 1, len(args))
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	total := Int(0)
	if len(args) > 1 {
		total = args[1]
	}
	for _, it := range items {
		total, err = binaryOp(TokPlus, total, it, 0)
		if err != nil {
			return Value{}, err
		}
	}
	return total, nil
}

func biReversed(in *Interp, args []Value) (Value, error) {
	items, err := iterable1(args, "reversed")
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return List(out), nil
}

func biIsinstance(in *Interp, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, argErr("isinstance", 2, len(args))
	}
	if args[1].Kind != KindType {
		return Value{}, raisef("TypeError", "isinstance() arg 2 must be a type")
	}
	return Bool(args[0].TypeOf() == args[1].TypeName), nil
}

func biIssubclass(in *Interp, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, argErr("issubclass", 2, len(args))
	}
	return Bool(args[0].TypeName == args[1].TypeName), nil
}

func biType(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, argErr("type", 1, len(args))
	}
	return Value{Kind: KindType, TypeName: args[0].TypeOf()}, nil
}

func biZip(in *Interp, args []Value) (Value, error) {
	var cols [][]Value
	minLen := -1
	for _, a := range args {
		items, err := iterate(a, 0)
		if err != nil {
			return Value{}, err
		}
		cols = append(cols, items)
		if minLen == -1 || len(items) < minLen {
			minLen = len(items)
		}
	}
	if minLen < 0 {
		minLen = 0
	}
	out := make([]Value, minLen)
	for i := 0; i < minLen; i++ {
		row := make([]Value, len(cols))
		for j, col := range cols {
			row[j] = col[i]
		}
		out[i] = Tuple(row)
	}
	return List(out), nil
}

func biMap(in *Interp, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, argErr("map", 2, len(args))
	}
	items, err := iterate(args[1], 0)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(items))
	for i, it := range items {
		v, err := callValue(in, args[0], []Value{it})
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return List(out), nil
}

func biFilter(in *Interp, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, argErr("filter", 2, len(args))
	}
	items, err := iterate(args[1], 0)
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for _, it := range items {
		if args[0].Kind == KindNone {
			if it.Truthy() {
				out = append(out, it)
			}
			continue
		}
		v, err := callValue(in, args[0], []Value{it})
		if err != nil {
			return Value{}, err
		}
		if v.Truthy() {
			out = append(out, it)
		}
	}
	return List(out), nil
}

func callValue(in *Interp, fn Value, args []Value) (Value, error) {
	switch fn.Kind {
	case KindBuiltin:
		return fn.Builtin.Call(in, args)
	case KindFunction:
		return in.callFunction(fn.Func, args, nil)
	default:
		return Value{}, raisef("TypeError", "'%s' object is not callable", fn.TypeOf())
	}
}

func biListCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return List(nil), nil
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(items))
	copy(out, items)
	return List(out), nil
}

func biTupleCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return Tuple(nil), nil
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	return Tuple(items), nil
}

func biDictCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return Dict(nil, nil), nil
	}
	if args[0].Kind == KindDict {
		return args[0], nil
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	out := Dict(nil, nil)
	for _, it := range items {
		if it.Kind != KindList && it.Kind != KindTuple || len(it.Items) != 2 {
			return Value{}, raisef("ValueError", "dictionary update sequence element is not a pair")
		}
		out = out.DictSet(it.Items[0].AsString(), it.Items[1])
	}
	return out, nil
}

func biStrCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return Str(""), nil
	}
	return Str(args[0].AsString()), nil
}

func biIntCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return Int(0), nil
	}
	switch args[0].Kind {
	case KindInt:
		return args[0], nil
	case KindFloat:
		return Int(int64(args[0].Flt)), nil
	case KindBool:
		return Int(intOf(args[0])), nil
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(args[0].Str), 10, 64)
		if err != nil {
			return Value{}, raisef("ValueError", "invalid literal for int() with base 10: %s", strconv.Quote(args[0].Str))
		}
		return Int(i), nil
	}
	return Value{}, raisef("TypeError", "int() argument must be a string or a number")
}

func biFloatCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return Float(0), nil
	}
	if f, ok := asFloat(args[0]); ok {
		return Float(f), nil
	}
	if args[0].Kind == KindString {
		f, err := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
		if err != nil {
			return Value{}, raisef("ValueError", "could not convert string to float: %s", strconv.Quote(args[0].Str))
		}
		return Float(f), nil
	}
	return Value{}, raisef("TypeError", "float() argument must be a string or a number")
}

func biBoolCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return Bool(false), nil
	}
	return Bool(args[0].Truthy()), nil
}

func biRange(in *Interp, args []Value) (Value, error) {
	var start, stop, step int64 = 0, 0, 1
	switch len(args) {
	case 1:
		stop = args[0].Int
	case 2:
		start, stop = args[0].Int, args[1].Int
	case 3:
		start, stop, step = args[0].Int, args[1].Int, args[2].Int
		if step == 0 {
			return Value{}, raisef("ValueError", "range() arg 3 must not be zero")
		}
	default:
		return Value{}, raisef("TypeError", "range expected 1 to 3 arguments, got %d", len(args))
	}
	return Value{Kind: KindRange, RangeStart: start, RangeStop: stop, RangeStep: step}, nil
}

// constructType implements calling a type-conversion name directly, e.g.
// `int("3")`, for type values obtained dynamically (not the common literal
// call path, which resolves to the builtinFuncs entries above).
func constructType(typeName string, args []Value) (Value, error) {
	switch typeName {
	case "int":
		return biIntCtor(nil, args)
	case "float":
		return biFloatCtor(nil, args)
	case "str":
		return biStrCtor(nil, args)
	case "bool":
		return biBoolCtor(nil, args)
	case "list":
		return biListCtor(nil, args)
	case "tuple":
		return biTupleCtor(nil, args)
	case "dict":
		return biDictCtor(nil, args)
	case "range":
		return biRange(nil, args)
	case "set":
		return biSetCtor(nil, args)
	case "frozenset":
		return biFrozensetCtor(nil, args)
	case "bytes":
		return biBytesCtor(nil, args)
	case "bytearray":
		return biBytearrayCtor(nil, args)
	case "complex":
		return biComplexCtor(nil, args)
	default:
		return Value{}, raisef("TypeError", "'%s' is not callable", typeName)
	}
}

func biSetCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return SetVal(nil), nil
	}
	if len(args) != 1 {
		return Value{}, argErr("set", 1, len(args))
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	return SetVal(items), nil
}

func biFrozensetCtor(in *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return FrozenSetVal(nil), nil
	}
	if len(args) != 1 {
		return Value{}, argErr("frozenset", 1, len(args))
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	return FrozenSetVal(items), nil
}

func bytesFromArg(fn string, args []Value) ([]byte, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if len(args) != 1 {
		return nil, argErr(fn, 1, len(args))
	}
	switch args[0].Kind {
	case KindInt:
		if args[0].Int < 0 {
			return nil, raisef("ValueError", "negative count")
		}
		return make([]byte, args[0].Int), nil
	case KindBytes, KindByteArray:
		return append([]byte{}, args[0].Bytes...), nil
	case KindString:
		return nil, raisef("TypeError", "string argument without an encoding")
	default:
		items, err := iterate(args[0], 0)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(items))
		for i, it := range items {
			if it.Kind != KindInt || it.Int < 0 || it.Int > 255 {
				return nil, raisef("ValueError", "bytes must be in range(0, 256)")
			}
			out[i] = byte(it.Int)
		}
		return out, nil
	}
}

func biBytesCtor(in *Interp, args []Value) (Value, error) {
	b, err := bytesFromArg("bytes", args)
	if err != nil {
		return Value{}, err
	}
	return BytesVal(b), nil
}

func biBytearrayCtor(in *Interp, args []Value) (Value, error) {
	b, err := bytesFromArg("bytearray", args)
	if err != nil {
		return Value{}, err
	}
	return ByteArrayVal(b), nil
}

func biComplexCtor(in *Interp, args []Value) (Value, error) {
	switch len(args) {
	case 0:
		return Complex(0, 0), nil
	case 1:
		if args[0].Kind == KindComplex {
			return args[0], nil
		}
		re, ok := asFloat(args[0])
		if !ok {
			return Value{}, raisef("TypeError", "complex() first argument must be a number")
		}
		return Complex(re, 0), nil
	case 2:
		re, reOk := asFloat(args[0])
		im, imOk := asFloat(args[1])
		if !reOk || !imOk {
			return Value{}, raisef("TypeError", "complex() arguments must be numbers")
		}
		return Complex(re, im), nil
	default:
		return Value{}, raisef("TypeError", "complex() takes at most 2 arguments")
	}
}

func fnvHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func biHash(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, argErr("hash", 1, len(args))
	}
	switch args[0].Kind {
	case KindList, KindDict, KindSet, KindByteArray:
		return Value{}, raisef("TypeError", "unhashable type: '%s'", args[0].TypeOf())
	}
	return Int(int64(fnvHash(args[0].Repr()))), nil
}

// identityOf derives a stable-for-the-object's-lifetime identity, backed by
// the Go pointer behind the value's mutable storage where one exists
// (matching CPython's id() being a memory address), falling back to a
// content hash for value kinds that carry no such pointer.
func identityOf(v Value) int64 {
	var p string
	switch v.Kind {
	case KindList, KindTuple, KindSet, KindFrozenSet:
		p = fmt.Sprintf("%p", v.Items)
	case KindDict:
		p = fmt.Sprintf("%p", v.Keys)
	case KindBytes, KindByteArray:
		p = fmt.Sprintf("%p", v.Bytes)
	case KindFunction:
		p = fmt.Sprintf("%p", v.Func)
	case KindBuiltin:
		p = fmt.Sprintf("%p", v.Builtin)
	case KindIterator:
		p = fmt.Sprintf("%p", v.Iter)
	}
	if p != "" && p != "<nil>" {
		if n, err := strconv.ParseInt(strings.TrimPrefix(p, "0x"), 16, 64); err == nil {
			return n
		}
	}
	return int64(fnvHash(v.Repr()))
}

func biID(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, argErr("id", 1, len(args))
	}
	return Int(identityOf(args[0])), nil
}

func biIter(in *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, argErr("iter", 1, len(args))
	}
	if args[0].Kind == KindIterator {
		return args[0], nil
	}
	items, err := iterate(args[0], 0)
	if err != nil {
		return Value{}, err
	}
	return IterVal(items), nil
}

func biNext(in *Interp, args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return Value{}, raisef("TypeError", "next expected at most 2 arguments, got %d", len(args))
	}
	it := args[0]
	if it.Kind != KindIterator {
		return Value{}, raisef("TypeError", "'%s' object is not an iterator", it.TypeOf())
	}
	if it.Iter.Pos < len(it.Iter.Items) {
		v := it.Iter.Items[it.Iter.Pos]
		it.Iter.Pos++
		return v, nil
	}
	if len(args) == 2 {
		return args[1], nil
	}
	return Value{}, raisef("StopIteration", "")
}

var formatSpecPattern = regexp.MustCompile(`^(0)?(\d*)(,)?(?:\.(\d+))?([bdxXoeEfF%])?$`)

func biFormat(in *Interp, args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return Value{}, raisef("TypeError", "format() takes 1 or 2 arguments")
	}
	v := args[0]
	spec := ""
	if len(args) == 2 {
		if args[1].Kind != KindString {
			return Value{}, raisef("TypeError", "format spec must be a string")
		}
		spec = args[1].Str
	}
	if spec == "" {
		return Str(v.AsString()), nil
	}
	s, err := applyFormatSpec(v, spec)
	if err != nil {
		return Value{}, err
	}
	return Str(s), nil
}

func applyFormatSpec(v Value, spec string) (string, error) {
	m := formatSpecPattern.FindStringSubmatch(spec)
	if m == nil {
		return "", raisef("ValueError", "invalid format specifier '%s'", spec)
	}
	zeroPad, width, comma, prec, typ := m[1] == "0", m[2], m[3] == ",", m[4], m[5]

	f, isNum := asFloat(v)
	var body string
	switch typ {
	case "d":
		if v.Kind != KindInt && v.Kind != KindBool {
			return "", raisef("ValueError", "unknown format code 'd' for object of type '%s'", v.TypeOf())
		}
		body = strconv.FormatInt(intOf(v), 10)
		if comma {
			body = addThousands(body)
		}
	case "x", "X":
		if v.Kind != KindInt && v.Kind != KindBool {
			return "", raisef("ValueError", "unknown format code for object of type '%s'", v.TypeOf())
		}
		body = strconv.FormatInt(intOf(v), 16)
		if typ == "X" {
			body = strings.ToUpper(body)
		}
	case "o":
		if v.Kind != KindInt && v.Kind != KindBool {
			return "", raisef("ValueError", "unknown format code 'o' for object of type '%s'", v.TypeOf())
		}
		body = strconv.FormatInt(intOf(v), 8)
	case "b":
		if v.Kind != KindInt && v.Kind != KindBool {
			return "", raisef("ValueError", "unknown format code 'b' for object of type '%s'", v.TypeOf())
		}
		body = strconv.FormatInt(intOf(v), 2)
	case "f", "F":
		if !isNum {
			return "", raisef("ValueError", "unknown format code for object of type '%s'", v.TypeOf())
		}
		p := 6
		if prec != "" {
			p, _ = strconv.Atoi(prec)
		}
		body = strconv.FormatFloat(f, 'f', p, 64)
		if comma {
			body = addThousandsFloat(body)
		}
	case "e", "E":
		if !isNum {
			return "", raisef("ValueError", "unknown format code for object of type '%s'", v.TypeOf())
		}
		p := 6
		if prec != "" {
			p, _ = strconv.Atoi(prec)
		}
		body = strconv.FormatFloat(f, byte(typ[0]), p, 64)
	case "%":
		if !isNum {
			return "", raisef("ValueError", "unknown format code for object of type '%s'", v.TypeOf())
		}
		p := 6
		if prec != "" {
			p, _ = strconv.Atoi(prec)
		}
		body = strconv.FormatFloat(f*100, 'f', p, 64) + "%"
	default:
		if isNum && prec != "" {
			p, _ := strconv.Atoi(prec)
			body = strconv.FormatFloat(f, 'g', p, 64)
		} else {
			body = v.AsString()
		}
	}

	if width != "" {
		w, _ := strconv.Atoi(width)
		pad := w - len([]rune(body))
		if pad > 0 {
			padChar := " "
			if zeroPad {
				padChar = "0"
			}
			if zeroPad && len(body) > 0 && (body[0] == '-' || body[0] == '+') {
				body = string(body[0]) + strings.Repeat(padChar, pad) + body[1:]
			} else {
				body = strings.Repeat(padChar, pad) + body
			}
		}
	}
	return body, nil
}

func addThousands(intPart string) string {
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	if neg {
		intPart = "-" + intPart
	}
	return intPart
}

func addThousandsFloat(s string) string {
	parts := strings.SplitN(s, ".", 2)
	parts[0] = addThousands(parts[0])
	return strings.Join(parts, ".")
}
