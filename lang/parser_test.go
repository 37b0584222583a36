package lang

import "testing"

func TestParseFuncDefAndReturn(t *testing.T) {
	prog, err := Parse("def add(a, b):\n    return a + b\n")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(prog) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog))
	}
	fn, ok := prog[0].(*FuncDef)
	if !ok {
		t.Fatalf("expected *FuncDef, got %T", prog[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected func def: %+v", fn)
	}
	ret, ok := fn.Body[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("expected *ReturnStmt, got %T", fn.Body[0])
	}
	bin, ok := ret.Value.(*BinaryExpr)
	if !ok || bin.Op != TokPlus {
		t.Fatalf("expected a + binary expr, got %+v", ret.Value)
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "def f(x):\n    if x > 0:\n        return 1\n    elif x < 0:\n        return -1\n    else:\n        return 0\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := prog[0].(*FuncDef)
	ifs, ok := fn.Body[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected *IfStmt, got %T", fn.Body[0])
	}
	if len(ifs.ElseIf) != 1 {
		t.Fatalf("expected 1 elif clause, got %d", len(ifs.ElseIf))
	}
	if len(ifs.Else) != 1 {
		t.Fatalf("expected an else body, got %d stmts", len(ifs.Else))
	}
}

func TestParseWhileAndFor(t *testing.T) {
	src := "def f():\n    while True:\n        break\n    for x in range(10):\n        continue\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := prog[0].(*FuncDef)
	if _, ok := fn.Body[0].(*WhileStmt); !ok {
		t.Fatalf("expected *WhileStmt, got %T", fn.Body[0])
	}
	forStmt, ok := fn.Body[1].(*ForStmt)
	if !ok {
		t.Fatalf("expected *ForStmt, got %T", fn.Body[1])
	}
	if forStmt.Var != "x" {
		t.Fatalf("unexpected loop variable: %s", forStmt.Var)
	}
}

func TestParseTryExceptFinally(t *testing.T) {
	src := "def f():\n    try:\n        raise ValueError(\"bad\")\n    except ValueError as e:\n        pass\n    finally:\n        pass\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := prog[0].(*FuncDef)
	try, ok := fn.Body[0].(*TryStmt)
	if !ok {
		t.Fatalf("expected *TryStmt, got %T", fn.Body[0])
	}
	if len(try.Handler) != 1 || try.Handler[0].Types[0] != "ValueError" {
		t.Fatalf("unexpected except clause: %+v", try.Handler)
	}
	if len(try.Finally) != 1 {
		t.Fatalf("expected a finally body")
	}
}

func TestParseListDictLiterals(t *testing.T) {
	src := "def f():\n    x = [1, 2, 3]\n    y = {\"a\": 1}\n"
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	fn := prog[0].(*FuncDef)
	assign1 := fn.Body[0].(*AssignStmt)
	if _, ok := assign1.Value.(*ListLit); !ok {
		t.Fatalf("expected *ListLit, got %T", assign1.Value)
	}
	assign2 := fn.Body[1].(*AssignStmt)
	dict, ok := assign2.Value.(*DictLit)
	if !ok || len(dict.Keys) != 1 {
		t.Fatalf("expected 1-entry *DictLit, got %+v", assign2.Value)
	}
}

func TestParseMalformedFunctionSignature(t *testing.T) {
	_, err := Parse("def broken(:\n    return 1\n")
	if err == nil {
		t.Fatalf("expected a parse error for malformed signature")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}

func TestParseImportStatement(t *testing.T) {
	prog, err := Parse("import os\n")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, ok := prog[0].(*ImportStmt); !ok {
		t.Fatalf("expected *ImportStmt, got %T", prog[0])
	}
}
