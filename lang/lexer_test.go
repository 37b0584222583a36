package lang

import "testing"

func kinds(tokens []Token) []TokKind {
	out := make([]TokKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexerIndentDedent(t *testing.T) {
	src := "def f():\n    return 1\nx = 2\n"
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	ks := kinds(toks)
	foundIndent, foundDedent := false, false
	for _, k := range ks {
		if k == TokIndent {
			foundIndent = true
		}
		if k == TokDedent {
			foundDedent = true
		}
	}
	if !foundIndent || !foundDedent {
		t.Fatalf("expected both INDENT and DEDENT tokens, got %v", ks)
	}
}

func TestLexerInconsistentIndentation(t *testing.T) {
	src := "if True:\n   x = 1\n  y = 2\n"
	_, err := NewLexer(src).Tokenize()
	if err == nil {
		t.Fatalf("expected a syntax error for inconsistent indentation")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if se.Line != 3 {
		t.Fatalf("expected error on line 3, got %d", se.Line)
	}
}

func TestLexerKeywordsAndOperators(t *testing.T) {
	src := "x += 1\ny //= 2\nz == 3 != 4 <= 5 >= 6\n"
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	ks := kinds(toks)
	want := []TokKind{TokName, TokPlusEq, TokInt, TokNewline}
	for i, k := range want {
		if ks[i] != k {
			t.Fatalf("token %d: got %v, want %v", i, ks[i], k)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	src := `"a\nb"` + "\n"
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if toks[0].Kind != TokString || toks[0].Text != "a\nb" {
		t.Fatalf("unexpected string token: %+v", toks[0])
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := NewLexer("\"abc\n").Tokenize()
	if err == nil {
		t.Fatalf("expected a syntax error for unterminated string")
	}
}
