package lang

import (
	"fmt"
	"math"
)

// PyError is a raised exception, carrying the sandbox's exception-class name
// and message; callers promote it into a runtime fault.
type PyError struct {
	Class   string
	Message string
}

func (e *PyError) Error() string { return fmt.Sprintf("%s: %s", e.Class, e.Message) }

func raisef(class, format string, args ...any) error {
	return &PyError{Class: class, Message: fmt.Sprintf(format, args...)}
}

// control-flow signals, propagated through the same error channel as
// exceptions but never surfaced to the caller.
type returnSignal struct{ Value Value }
type breakSignal struct{}
type continueSignal struct{}

func (returnSignal) Error() string   { return "return" }
func (breakSignal) Error() string    { return "break" }
func (continueSignal) Error() string { return "continue" }

const maxCallDepth = 200

// Interp evaluates a parsed program against a sandbox global Env. One Interp
// is used for exactly one entry-point invocation.
type Interp struct {
	Globals *Env
	depth   int
}

// NewInterp builds an interpreter whose globals start from the sandbox
// builtin table (see NewSandboxEnv in builtins.go) plus whatever `def`s and
// top-level assignments the source declares.
func NewInterp(globals *Env) *Interp {
	return &Interp{Globals: globals}
}

// Load executes top-level statements (function definitions and any
// module-level code) against the globals, in source order.
func (in *Interp) Load(program []Stmt) error {
	for _, s := range program {
		if err := in.execStmt(s, in.Globals); err != nil {
			switch err.(type) {
			case returnSignal, breakSignal, continueSignal:
				return raisef("RuntimeError", "'return'/'break'/'continue' outside of a function or loop")
			default:
				return err
			}
		}
	}
	return nil
}

// CallEntryPoint looks up name in globals and invokes it with kwargs bound
// as keyword arguments.
func (in *Interp) CallEntryPoint(name string, kwargs map[string]Value) (Value, error) {
	fnVal, ok := in.Globals.Get(name)
	if !ok || fnVal.Kind != KindFunction {
		return Value{}, errMissingEntry(name)
	}
	return in.callFunction(fnVal.Func, nil, kwargs)
}

// MissingEntryError is a sentinel so callers can distinguish "entry point
// absent" from an ordinary runtime failure without string-matching.
type MissingEntryError struct{ Name string }

func (m MissingEntryError) Error() string { return fmt.Sprintf("function %q not found", m.Name) }

func errMissingEntry(name string) error { return MissingEntryError{Name: name} }

func (in *Interp) callFunction(f *Function, args []Value, kwargs map[string]Value) (Value, error) {
	in.depth++
	defer func() { in.depth-- }()
	if in.depth > maxCallDepth {
		return Value{}, raisef("RuntimeError", "maximum recursion depth exceeded")
	}

	local := NewEnv()
	if len(args) > len(f.Params) {
		return Value{}, raisef("TypeError", "%s() takes %d positional arguments but %d were given", f.Name, len(f.Params), len(args))
	}
	for i, p := range f.Params {
		if i < len(args) {
			local.Set(p, args[i])
			continue
		}
		if v, ok := kwargs[p]; ok {
			local.Set(p, v)
			continue
		}
		return Value{}, raisef("TypeError", "%s() missing required argument: '%s'", f.Name, p)
	}

	err := in.execBlock(f.Body, local)
	if err == nil {
		return None(), nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.Value, nil
	}
	return Value{}, err
}

func (in *Interp) execBlock(body []Stmt, env *Env) error {
	for _, s := range body {
		if err := in.execStmt(s, env); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) execStmt(s Stmt, env *Env) error {
	switch n := s.(type) {
	case *PassStmt:
		return nil
	case *FuncDef:
		env.Set(n.Name, Value{Kind: KindFunction, Func: &Function{Name: n.Name, Params: n.Params, Body: n.Body, Env: env}})
		return nil
	case *ReturnStmt:
		if n.Value == nil {
			return returnSignal{Value: None()}
		}
		v, err := in.eval(n.Value, env)
		if err != nil {
			return err
		}
		return returnSignal{Value: v}
	case *BreakStmt:
		return breakSignal{}
	case *ContinueStmt:
		return continueSignal{}
	case *ExprStmt:
		_, err := in.eval(n.X, env)
		return err
	case *AssignStmt:
		return in.execAssign(n, env)
	case *IndexAssignStmt:
		return in.execIndexAssign(n, env)
	case *IfStmt:
		return in.execIf(n, env)
	case *WhileStmt:
		return in.execWhile(n, env)
	case *ForStmt:
		return in.execFor(n, env)
	case *RaiseStmt:
		return in.execRaise(n, env)
	case *TryStmt:
		return in.execTry(n, env)
	case *ImportStmt:
		return raisef("ImportError", "import of %q is not permitted in the sandbox", n.Module)
	default:
		return raisef("RuntimeError", "unsupported statement")
	}
}

func (in *Interp) execAssign(n *AssignStmt, env *Env) error {
	rhs, err := in.eval(n.Value, env)
	if err != nil {
		return err
	}
	if n.Op == TokEq {
		env.Set(n.Target, rhs)
		return nil
	}
	cur, ok := env.Get(n.Target)
	if !ok {
		return raisef("RuntimeError", "name '%s' is not defined", n.Target)
	}
	var op TokKind
	switch n.Op {
	case TokPlusEq:
		op = TokPlus
	case TokMinusEq:
		op = TokMinus
	case TokStarEq:
		op = TokStar
	case TokSlashEq:
		op = TokSlash
	}
	result, err := binaryOp(op, cur, rhs, n.Line)
	if err != nil {
		return err
	}
	env.Set(n.Target, result)
	return nil
}

func (in *Interp) execIndexAssign(n *IndexAssignStmt, env *Env) error {
	sub := n.Target.(*SubscriptExpr)
	target, err := in.eval(sub.X, env)
	if err != nil {
		return err
	}
	idx, err := in.eval(sub.Index, env)
	if err != nil {
		return err
	}
	val, err := in.eval(n.Value, env)
	if err != nil {
		return err
	}
	switch target.Kind {
	case KindList:
		i, err := indexOf(target, idx, n.Line)
		if err != nil {
			return err
		}
		target.Items[i] = val
		return in.assignBack(sub.X, target, env)
	case KindDict:
		if idx.Kind != KindString {
			return raisef("TypeError", "dict keys must be strings")
		}
		updated := target.DictSet(idx.Str, val)
		return in.assignBack(sub.X, updated, env)
	default:
		return raisef("TypeError", "'%s' object does not support item assignment", target.TypeOf())
	}
}

// assignBack writes a mutated container back to the variable it came from,
// when the subscripted expression is a plain name (the only supported case).
func (in *Interp) assignBack(x Expr, v Value, env *Env) error {
	if name, ok := x.(*NameExpr); ok {
		env.Set(name.Name, v)
		return nil
	}
	return nil
}

func (in *Interp) execIf(n *IfStmt, env *Env) error {
	cond, err := in.eval(n.Cond, env)
	if err != nil {
		return err
	}
	if cond.Truthy() {
		return in.execBlock(n.Body, env)
	}
	for _, elif := range n.ElseIf {
		c, err := in.eval(elif.Cond, env)
		if err != nil {
			return err
		}
		if c.Truthy() {
			return in.execBlock(elif.Body, env)
		}
	}
	return in.execBlock(n.Else, env)
}

func (in *Interp) execWhile(n *WhileStmt, env *Env) error {
	for {
		cond, err := in.eval(n.Cond, env)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		if err := in.execBlock(n.Body, env); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
}

func (in *Interp) execFor(n *ForStmt, env *Env) error {
	iterVal, err := in.eval(n.Iter, env)
	if err != nil {
		return err
	}
	items, err := iterate(iterVal, n.Line)
	if err != nil {
		return err
	}
	for _, item := range items {
		env.Set(n.Var, item)
		if err := in.execBlock(n.Body, env); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func (in *Interp) execRaise(n *RaiseStmt, env *Env) error {
	if n.Exc == nil {
		return raisef("RuntimeError", "no active exception to re-raise")
	}
	v, err := in.eval(n.Exc, env)
	if err != nil {
		return err
	}
	if v.Kind != KindException {
		return raisef("TypeError", "exceptions must derive from a sandbox exception class")
	}
	return &PyError{Class: v.ExcClass, Message: v.ExcMsg}
}

func (in *Interp) execTry(n *TryStmt, env *Env) error {
	err := in.execBlock(n.Body, env)
	if err != nil {
		if pe, ok := err.(*PyError); ok {
			for _, clause := range n.Handler {
				if clause.matches(pe.Class) {
					if clause.As != "" {
						env.Set(clause.As, Value{Kind: KindException, ExcClass: pe.Class, ExcMsg: pe.Message})
					}
					err = in.execBlock(clause.Body, env)
					break
				}
			}
		}
	}
	if len(n.Finally) > 0 {
		if ferr := in.execBlock(n.Finally, env); ferr != nil {
			return ferr
		}
	}
	return err
}

func (c ExceptClause) matches(class string) bool {
	if len(c.Types) == 0 {
		return true
	}
	for _, t := range c.Types {
		if t == class || t == "Exception" {
			return true
		}
	}
	return false
}

// iterate realizes an iterable Value into a concrete slice of elements.
func iterate(v Value, line int) ([]Value, error) {
	switch v.Kind {
	case KindList, KindTuple, KindSet, KindFrozenSet:
		return v.Items, nil
	case KindBytes, KindByteArray:
		out := make([]Value, len(v.Bytes))
		for i, b := range v.Bytes {
			out[i] = Int(int64(b))
		}
		return out, nil
	case KindIterator:
		rest := v.Iter.Items[v.Iter.Pos:]
		v.Iter.Pos = len(v.Iter.Items)
		return rest, nil
	case KindString:
		runes := []rune(v.Str)
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = Str(string(r))
		}
		return out, nil
	case KindDict:
		out := make([]Value, len(v.Keys))
		for i, k := range v.Keys {
			out[i] = Str(k)
		}
		return out, nil
	case KindRange:
		return rangeItems(v), nil
	default:
		return nil, raisef("TypeError", "'%s' object is not iterable", v.TypeOf())
	}
}

func rangeItems(v Value) []Value {
	var out []Value
	if v.RangeStep > 0 {
		for i := v.RangeStart; i < v.RangeStop; i += v.RangeStep {
			out = append(out, Int(i))
		}
	} else if v.RangeStep < 0 {
		for i := v.RangeStart; i > v.RangeStop; i += v.RangeStep {
			out = append(out, Int(i))
		}
	}
	return out
}

func indexOf(container Value, idx Value, line int) (int, error) {
	if idx.Kind != KindInt {
		return 0, raisef("TypeError", "indices must be integers")
	}
	n := len(container.Items)
	i := int(idx.Int)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, raisef("IndexError", "%s index out of range", container.TypeOf())
	}
	return i, nil
}

// ---- expression evaluation ----

func (in *Interp) eval(e Expr, env *Env) (Value, error) {
	switch n := e.(type) {
	case *IntLit:
		return Int(n.Value), nil
	case *FloatLit:
		return Float(n.Value), nil
	case *StringLit:
		return Str(n.Value), nil
	case *BoolLit:
		return Bool(n.Value), nil
	case *NoneLit:
		return None(), nil
	case *NameExpr:
		if v, ok := env.Get(n.Name); ok {
			return v, nil
		}
		if v, ok := in.Globals.Get(n.Name); ok {
			return v, nil
		}
		return Value{}, raisef("NameError", "name '%s' is not defined", n.Name)
	case *ListLit:
		items := make([]Value, len(n.Items))
		for i, it := range n.Items {
			v, err := in.eval(it, env)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return List(items), nil
	case *TupleLit:
		items := make([]Value, len(n.Items))
		for i, it := range n.Items {
			v, err := in.eval(it, env)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Tuple(items), nil
	case *DictLit:
		var keys []string
		var vals []Value
		for i := range n.Keys {
			k, err := in.eval(n.Keys[i], env)
			if err != nil {
				return Value{}, err
			}
			if k.Kind != KindString {
				return Value{}, raisef("TypeError", "dict keys must be strings")
			}
			v, err := in.eval(n.Values[i], env)
			if err != nil {
				return Value{}, err
			}
			keys = append(keys, k.Str)
			vals = append(vals, v)
		}
		return Dict(keys, vals), nil
	case *UnaryExpr:
		return in.evalUnary(n, env)
	case *BinaryExpr:
		left, err := in.eval(n.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := in.eval(n.Right, env)
		if err != nil {
			return Value{}, err
		}
		return binaryOp(n.Op, left, right, n.Line)
	case *BoolOpExpr:
		left, err := in.eval(n.Left, env)
		if err != nil {
			return Value{}, err
		}
		if n.Op == TokAnd {
			if !left.Truthy() {
				return left, nil
			}
			return in.eval(n.Right, env)
		}
		if left.Truthy() {
			return left, nil
		}
		return in.eval(n.Right, env)
	case *CompareExpr:
		return in.evalCompare(n, env)
	case *CallExpr:
		return in.evalCall(n, env)
	case *SubscriptExpr:
		return in.evalSubscript(n, env)
	case *AttributeExpr:
		return Value{}, raisef("AttributeError", "attribute access is not supported in the sandbox")
	default:
		return Value{}, raisef("RuntimeError", "unsupported expression")
	}
}

func (in *Interp) evalUnary(n *UnaryExpr, env *Env) (Value, error) {
	x, err := in.eval(n.X, env)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case TokNot:
		return Bool(!x.Truthy()), nil
	case TokMinus:
		switch x.Kind {
		case KindInt:
			return Int(-x.Int), nil
		case KindFloat:
			return Float(-x.Flt), nil
		case KindComplex:
			return Complex(-x.Flt, -x.Im), nil
		}
		return Value{}, raisef("TypeError", "bad operand type for unary -: '%s'", x.TypeOf())
	case TokPlus:
		if x.Kind == KindInt || x.Kind == KindFloat || x.Kind == KindComplex {
			return x, nil
		}
		return Value{}, raisef("TypeError", "bad operand type for unary +: '%s'", x.TypeOf())
	default:
		return Value{}, raisef("RuntimeError", "unsupported unary operator")
	}
}

func asFloat(v Value) (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Flt, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func binaryOp(op TokKind, left, right Value, line int) (Value, error) {
	if op == TokPlus && left.Kind == KindString && right.Kind == KindString {
		return Str(left.Str + right.Str), nil
	}
	if op == TokPlus && (left.Kind == KindList && right.Kind == KindList) {
		return List(append(append([]Value{}, left.Items...), right.Items...)), nil
	}
	if op == TokStar && left.Kind == KindString && right.Kind == KindInt {
		out := ""
		for i := int64(0); i < right.Int; i++ {
			out += left.Str
		}
		return Str(out), nil
	}
	if op == TokPlus && left.Kind == KindBytes && right.Kind == KindBytes {
		return BytesVal(append(append([]byte{}, left.Bytes...), right.Bytes...)), nil
	}
	if op == TokPlus && left.Kind == KindByteArray && right.Kind == KindByteArray {
		return ByteArrayVal(append(append([]byte{}, left.Bytes...), right.Bytes...)), nil
	}
	if isComplexLike(left) || isComplexLike(right) {
		return complexBinaryOp(op, left, right)
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return Value{}, raisef("TypeError", "unsupported operand type(s) for %s: '%s' and '%s'", opSymbol(op), left.TypeOf(), right.TypeOf())
	}
	bothInt := (left.Kind == KindInt || left.Kind == KindBool) && (right.Kind == KindInt || right.Kind == KindBool)

	switch op {
	case TokPlus:
		if bothInt {
			return Int(intOf(left) + intOf(right)), nil
		}
		return Float(lf + rf), nil
	case TokMinus:
		if bothInt {
			return Int(intOf(left) - intOf(right)), nil
		}
		return Float(lf - rf), nil
	case TokStar:
		if bothInt {
			return Int(intOf(left) * intOf(right)), nil
		}
		return Float(lf * rf), nil
	case TokSlash:
		if rf == 0 {
			return Value{}, raisef("ZeroDivisionError", "division by zero")
		}
		return Float(lf / rf), nil
	case TokDoubleSlash:
		if rf == 0 {
			return Value{}, raisef("ZeroDivisionError", "integer division or modulo by zero")
		}
		if bothInt {
			return Int(int64(math.Floor(float64(intOf(left)) / float64(intOf(right))))), nil
		}
		return Float(math.Floor(lf / rf)), nil
	case TokPercent:
		if rf == 0 {
			return Value{}, raisef("ZeroDivisionError", "integer division or modulo by zero")
		}
		if bothInt {
			a, b := intOf(left), intOf(right)
			m := a % b
			if m != 0 && (m < 0) != (b < 0) {
				m += b
			}
			return Int(m), nil
		}
		m := math.Mod(lf, rf)
		if m != 0 && (m < 0) != (rf < 0) {
			m += rf
		}
		return Float(m), nil
	case TokDoubleStar:
		if bothInt && intOf(right) >= 0 {
			return Int(intPow(intOf(left), intOf(right))), nil
		}
		return Float(math.Pow(lf, rf)), nil
	default:
		return Value{}, raisef("RuntimeError", "unsupported binary operator")
	}
}

// complexBinaryOp covers +, -, *, / between two complex-or-numeric operands.
// Python raises TypeError for //, %, and ** between complex numbers, so
// those fall through to the same error the generic path would produce.
func complexBinaryOp(op TokKind, left, right Value) (Value, error) {
	are, aim, aok := asComplex(left)
	bre, bim, bok := asComplex(right)
	if !aok || !bok {
		return Value{}, raisef("TypeError", "unsupported operand type(s) for %s: '%s' and '%s'", opSymbol(op), left.TypeOf(), right.TypeOf())
	}
	switch op {
	case TokPlus:
		return Complex(are+bre, aim+bim), nil
	case TokMinus:
		return Complex(are-bre, aim-bim), nil
	case TokStar:
		return Complex(are*bre-aim*bim, are*bim+aim*bre), nil
	case TokSlash:
		denom := bre*bre + bim*bim
		if denom == 0 {
			return Value{}, raisef("ZeroDivisionError", "complex division by zero")
		}
		return Complex((are*bre+aim*bim)/denom, (aim*bre-are*bim)/denom), nil
	default:
		return Value{}, raisef("TypeError", "unsupported operand type(s) for %s: '%s' and '%s'", opSymbol(op), left.TypeOf(), right.TypeOf())
	}
}

func intOf(v Value) int64 {
	if v.Kind == KindBool {
		if v.Bool {
			return 1
		}
		return 0
	}
	return v.Int
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func opSymbol(op TokKind) string {
	switch op {
	case TokPlus:
		return "+"
	case TokMinus:
		return "-"
	case TokStar:
		return "*"
	case TokSlash:
		return "/"
	case TokDoubleSlash:
		return "//"
	case TokPercent:
		return "%"
	case TokDoubleStar:
		return "**"
	default:
		return "?"
	}
}

func (in *Interp) evalCompare(n *CompareExpr, env *Env) (Value, error) {
	left, err := in.eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	for i, op := range n.Ops {
		right, err := in.eval(n.Comps[i], env)
		if err != nil {
			return Value{}, err
		}
		ok, err := compareOp(op, left, right)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			return Bool(false), nil
		}
		left = right
	}
	return Bool(true), nil
}

func compareOp(op TokKind, a, b Value) (bool, error) {
	if op == TokEqEq {
		return valuesEqual(a, b), nil
	}
	if op == TokNotEq {
		return !valuesEqual(a, b), nil
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if a.Kind == KindString && b.Kind == KindString {
		switch op {
		case TokLt:
			return a.Str < b.Str, nil
		case TokLtEq:
			return a.Str <= b.Str, nil
		case TokGt:
			return a.Str > b.Str, nil
		case TokGtEq:
			return a.Str >= b.Str, nil
		}
	}
	if !aok || !bok {
		return false, raisef("TypeError", "'%s' not supported between instances of '%s' and '%s'", opSymbol(op), a.TypeOf(), b.TypeOf())
	}
	switch op {
	case TokLt:
		return af < bf, nil
	case TokLtEq:
		return af <= bf, nil
	case TokGt:
		return af > bf, nil
	case TokGtEq:
		return af >= bf, nil
	}
	return false, raisef("RuntimeError", "unsupported comparison operator")
}

// valuesEqual implements the language's `==`: mixing list/tuple is allowed,
// dict compares by key set, float uses exact equality. The 1e-9 tolerance
// belongs to the result comparator between actual/expected, not to `==`.
func valuesEqual(a, b Value) bool {
	if isComplexLike(a) || isComplexLike(b) {
		are, aim, aok := asComplex(a)
		bre, bim, bok := asComplex(b)
		return aok && bok && are == bre && aim == bim
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok && a.Kind != KindString && b.Kind != KindString {
		if math.IsNaN(af) || math.IsNaN(bf) {
			return false
		}
		return af == bf
	}
	if a.Kind == KindString && b.Kind == KindString {
		return a.Str == b.Str
	}
	if (a.Kind == KindList || a.Kind == KindTuple) && (b.Kind == KindList || b.Kind == KindTuple) {
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !valuesEqual(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	}
	if a.Kind == KindDict && b.Kind == KindDict {
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i, k := range a.Keys {
			bv, ok := b.DictGet(k)
			if !ok || !valuesEqual(a.Vals[i], bv) {
				return false
			}
		}
		return true
	}
	if a.Kind == KindNone && b.Kind == KindNone {
		return true
	}
	if isBytesLike(a) && isBytesLike(b) {
		if len(a.Bytes) != len(b.Bytes) {
			return false
		}
		for i := range a.Bytes {
			if a.Bytes[i] != b.Bytes[i] {
				return false
			}
		}
		return true
	}
	if isSetLike(a) && isSetLike(b) {
		if len(a.Items) != len(b.Items) {
			return false
		}
		for _, av := range a.Items {
			found := false
			for _, bv := range b.Items {
				if valuesEqual(av, bv) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return false
}

func isBytesLike(v Value) bool   { return v.Kind == KindBytes || v.Kind == KindByteArray }
func isSetLike(v Value) bool     { return v.Kind == KindSet || v.Kind == KindFrozenSet }
func isComplexLike(v Value) bool { return v.Kind == KindComplex }

// asComplex extracts a (real, imaginary) pair from any numeric kind,
// treating non-complex numbers as having a zero imaginary part.
func asComplex(v Value) (re, im float64, ok bool) {
	if v.Kind == KindComplex {
		return v.Flt, v.Im, true
	}
	f, ok := asFloat(v)
	return f, 0, ok
}

func (in *Interp) evalSubscript(n *SubscriptExpr, env *Env) (Value, error) {
	x, err := in.eval(n.X, env)
	if err != nil {
		return Value{}, err
	}
	idx, err := in.eval(n.Index, env)
	if err != nil {
		return Value{}, err
	}
	switch x.Kind {
	case KindList, KindTuple, KindString:
		if idx.Kind != KindInt {
			return Value{}, raisef("TypeError", "indices must be integers")
		}
		if x.Kind == KindString {
			runes := []rune(x.Str)
			i := int(idx.Int)
			if i < 0 {
				i += len(runes)
			}
			if i < 0 || i >= len(runes) {
				return Value{}, raisef("IndexError", "string index out of range")
			}
			return Str(string(runes[i])), nil
		}
		i, err := indexOf(x, idx, n.Line)
		if err != nil {
			return Value{}, err
		}
		return x.Items[i], nil
	case KindDict:
		if idx.Kind != KindString {
			return Value{}, raisef("TypeError", "dict keys must be strings")
		}
		v, ok := x.DictGet(idx.Str)
		if !ok {
			return Value{}, raisef("KeyError", "%s", idx.Str)
		}
		return v, nil
	default:
		return Value{}, raisef("TypeError", "'%s' object is not subscriptable", x.TypeOf())
	}
}

func (in *Interp) evalCall(n *CallExpr, env *Env) (Value, error) {
	fnVal, err := in.eval(n.Fn, env)
	if err != nil {
		return Value{}, err
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	kwargs := map[string]Value{}
	for i, name := range n.KwNames {
		v, err := in.eval(n.KwValues[i], env)
		if err != nil {
			return Value{}, err
		}
		kwargs[name] = v
	}

	switch fnVal.Kind {
	case KindBuiltin:
		return fnVal.Builtin.Call(in, args)
	case KindFunction:
		return in.callFunction(fnVal.Func, args, kwargs)
	case KindException:
		msg := ""
		if len(args) > 0 {
			msg = args[0].AsString()
		}
		return Value{Kind: KindException, ExcClass: fnVal.ExcClass, ExcMsg: msg}, nil
	case KindType:
		return constructType(fnVal.TypeName, args)
	default:
		return Value{}, raisef("TypeError", "'%s' object is not callable", fnVal.TypeOf())
	}
}
