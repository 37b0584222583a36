package lang

// Parser is a recursive-descent parser over the lexer's token stream,
// producing the statement list the interpreter walks.
type Parser struct {
	toks []Token
	pos  int
}

// Parse lexes and parses source into a top-level statement list, or a
// *SyntaxError describing the first problem encountered.
func Parse(src string) ([]Stmt, error) {
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseProgram()
}

func (p *Parser) cur() Token        { return p.toks[p.pos] }
func (p *Parser) at(k TokKind) bool { return p.cur().Kind == k }

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k TokKind, what string) (Token, error) {
	if !p.at(k) {
		return Token{}, &SyntaxError{Line: p.cur().Line, Message: "expected " + what}
	}
	return p.advance(), nil
}

func (p *Parser) skipNewlines() {
	for p.at(TokNewline) {
		p.advance()
	}
}

func (p *Parser) parseProgram() ([]Stmt, error) {
	var out []Stmt
	p.skipNewlines()
	for !p.at(TokEOF) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		out = append(out, s...)
		p.skipNewlines()
	}
	return out, nil
}

// parseStmt returns a slice because simple_stmt lines may hold several
// semicolon-separated statements.
func (p *Parser) parseStmt() ([]Stmt, error) {
	switch p.cur().Kind {
	case TokDef:
		s, err := p.parseFuncDef()
		return []Stmt{s}, err
	case TokIf:
		s, err := p.parseIf()
		return []Stmt{s}, err
	case TokWhile:
		s, err := p.parseWhile()
		return []Stmt{s}, err
	case TokFor:
		s, err := p.parseFor()
		return []Stmt{s}, err
	case TokTry:
		s, err := p.parseTry()
		return []Stmt{s}, err
	default:
		return p.parseSimpleLine()
	}
}

func (p *Parser) parseSimpleLine() ([]Stmt, error) {
	var out []Stmt
	for {
		s, err := p.parseSmallStmt()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		if p.at(TokSemicolon) {
			p.advance()
			if p.at(TokNewline) || p.at(TokEOF) {
				break
			}
			continue
		}
		break
	}
	if !p.at(TokEOF) {
		if _, err := p.expect(TokNewline, "newline"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *Parser) parseSmallStmt() (Stmt, error) {
	line := p.cur().Line
	switch p.cur().Kind {
	case TokPass:
		p.advance()
		return &PassStmt{Line: line}, nil
	case TokBreak:
		p.advance()
		return &BreakStmt{Line: line}, nil
	case TokContinue:
		p.advance()
		return &ContinueStmt{Line: line}, nil
	case TokReturn:
		p.advance()
		if p.at(TokNewline) || p.at(TokSemicolon) || p.at(TokEOF) {
			return &ReturnStmt{Line: line}, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: e, Line: line}, nil
	case TokRaise:
		p.advance()
		if p.at(TokNewline) || p.at(TokSemicolon) || p.at(TokEOF) {
			return &RaiseStmt{Line: line}, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &RaiseStmt{Exc: e, Line: line}, nil
	case TokImport:
		p.advance()
		name, err := p.expect(TokName, "module name")
		if err != nil {
			return nil, err
		}
		mod := name.Text
		for p.at(TokDot) {
			p.advance()
			part, err := p.expect(TokName, "module name")
			if err != nil {
				return nil, err
			}
			mod += "." + part.Text
		}
		return &ImportStmt{Module: mod, Line: line}, nil
	case TokFrom:
		p.advance()
		name, err := p.expect(TokName, "module name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokImport, "import"); err != nil {
			return nil, err
		}
		// consume the imported names; sandbox rejects the module regardless.
		for !p.at(TokNewline) && !p.at(TokSemicolon) && !p.at(TokEOF) {
			p.advance()
		}
		return &ImportStmt{Module: name.Text, Line: line}, nil
	case TokGlobal:
		p.advance()
		for !p.at(TokNewline) && !p.at(TokSemicolon) && !p.at(TokEOF) {
			p.advance()
		}
		return &PassStmt{Line: line}, nil
	default:
		return p.parseAssignOrExpr()
	}
}

func (p *Parser) parseAssignOrExpr() (Stmt, error) {
	line := p.cur().Line
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch p.cur().Kind {
	case TokEq, TokPlusEq, TokMinusEq, TokStarEq, TokSlashEq:
		op := p.advance().Kind
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		switch target := e.(type) {
		case *NameExpr:
			return &AssignStmt{Target: target.Name, Op: op, Value: rhs, Line: line}, nil
		case *SubscriptExpr:
			if op != TokEq {
				return nil, &SyntaxError{Line: line, Message: "augmented assignment to subscript is not supported"}
			}
			return &IndexAssignStmt{Target: target, Value: rhs, Line: line}, nil
		default:
			return nil, &SyntaxError{Line: line, Message: "invalid assignment target"}
		}
	default:
		return &ExprStmt{X: e, Line: line}, nil
	}
}

func (p *Parser) parseBlock() ([]Stmt, error) {
	if _, err := p.expect(TokColon, "':'"); err != nil {
		return nil, err
	}
	if p.at(TokNewline) {
		p.advance()
		if _, err := p.expect(TokIndent, "indented block"); err != nil {
			return nil, err
		}
		var out []Stmt
		for !p.at(TokDedent) && !p.at(TokEOF) {
			s, err := p.parseStmt()
			if err != nil {
				return nil, err
			}
			out = append(out, s...)
		}
		if _, err := p.expect(TokDedent, "dedent"); err != nil {
			return nil, err
		}
		return out, nil
	}
	return p.parseSimpleLine()
}

func (p *Parser) parseFuncDef() (Stmt, error) {
	line := p.cur().Line
	p.advance() // def
	name, err := p.expect(TokName, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen, "'('"); err != nil {
		return nil, err
	}
	var params []string
	for !p.at(TokRParen) {
		pn, err := p.expect(TokName, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, pn.Text)
		if p.at(TokColon) { // tolerate type annotations: `x: int`
			p.advance()
			if err := p.skipAnnotation(); err != nil {
				return nil, err
			}
		}
		if p.at(TokEq) { // tolerate default values, evaluated lazily is not needed: skip expr
			p.advance()
			if _, err := p.parseExpr(); err != nil {
				return nil, err
			}
		}
		if p.at(TokComma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokRParen, "')'"); err != nil {
		return nil, err
	}
	if p.at(TokMinus) { // return-type annotation `-> T`
		p.advance()
		if _, err := p.expect(TokGt, "'>'"); err != nil {
			return nil, err
		}
		if err := p.skipAnnotation(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDef{Name: name.Text, Params: params, Body: body, Line: line}, nil
}

// skipAnnotation consumes a single type-annotation expression, tolerated but
// not type-checked.
func (p *Parser) skipAnnotation() error {
	_, err := p.parseExpr()
	return err
}

func (p *Parser) parseIf() (Stmt, error) {
	line := p.cur().Line
	p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Body: body, Line: line}
	cur := stmt
	for p.at(TokElif) {
		eline := p.cur().Line
		p.advance()
		econd, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ebody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		cur.ElseIf = append(cur.ElseIf, IfStmt{Cond: econd, Body: ebody, Line: eline})
	}
	if p.at(TokElse) {
		p.advance()
		ebody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		cur.Else = ebody
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	line := p.cur().Line
	p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, Line: line}, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	line := p.cur().Line
	p.advance()
	name, err := p.expect(TokName, "loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokIn, "'in'"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Var: name.Text, Iter: iter, Body: body, Line: line}, nil
}

func (p *Parser) parseTry() (Stmt, error) {
	line := p.cur().Line
	p.advance()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &TryStmt{Body: body, Line: line}
	for p.at(TokExcept) {
		p.advance()
		var clause ExceptClause
		if !p.at(TokColon) {
			name, err := p.expect(TokName, "exception type")
			if err != nil {
				return nil, err
			}
			clause.Types = append(clause.Types, name.Text)
			for p.at(TokComma) {
				p.advance()
				n, err := p.expect(TokName, "exception type")
				if err != nil {
					return nil, err
				}
				clause.Types = append(clause.Types, n.Text)
			}
			if p.at(TokName) && p.cur().Text == "as" {
				p.advance()
				asName, err := p.expect(TokName, "exception binding name")
				if err != nil {
					return nil, err
				}
				clause.As = asName.Text
			}
		}
		cbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		clause.Body = cbody
		stmt.Handler = append(stmt.Handler, clause)
	}
	if p.at(TokFinally) {
		p.advance()
		fbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Finally = fbody
	}
	return stmt, nil
}

// ---- expressions, lowest to highest precedence ----

func (p *Parser) parseExpr() (Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(TokOr) {
		line := p.cur().Line
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BoolOpExpr{Op: TokOr, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.at(TokAnd) {
		line := p.cur().Line
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BoolOpExpr{Op: TokAnd, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.at(TokNot) {
		line := p.cur().Line
		p.advance()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: TokNot, X: x, Line: line}, nil
	}
	return p.parseCompare()
}

var compareOps = map[TokKind]bool{
	TokEqEq: true, TokNotEq: true, TokLt: true, TokLtEq: true, TokGt: true, TokGtEq: true,
}

func (p *Parser) parseCompare() (Expr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	if !compareOps[p.cur().Kind] {
		return left, nil
	}
	line := p.cur().Line
	var ops []TokKind
	var comps []Expr
	for compareOps[p.cur().Kind] {
		op := p.advance().Kind
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comps = append(comps, right)
	}
	return &CompareExpr{Left: left, Ops: ops, Comps: comps, Line: line}, nil
}

func (p *Parser) parseAddSub() (Expr, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.at(TokPlus) || p.at(TokMinus) {
		op := p.advance().Kind
		line := p.toks[p.pos-1].Line
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseMulDiv() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(TokStar) || p.at(TokSlash) || p.at(TokDoubleSlash) || p.at(TokPercent) {
		op := p.advance().Kind
		line := p.toks[p.pos-1].Line
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.at(TokMinus) || p.at(TokPlus) {
		op := p.advance().Kind
		line := p.toks[p.pos-1].Line
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, X: x, Line: line}, nil
	}
	return p.parsePow()
}

func (p *Parser) parsePow() (Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.at(TokDoubleStar) {
		line := p.cur().Line
		p.advance()
		right, err := p.parseUnary() // right-assoc
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: TokDoubleStar, Left: left, Right: right, Line: line}, nil
	}
	return left, nil
}

func (p *Parser) parsePostfix() (Expr, error) {
	x, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case TokLParen:
			line := p.cur().Line
			p.advance()
			var args []Expr
			var kwNames []string
			var kwValues []Expr
			for !p.at(TokRParen) {
				if p.at(TokName) && p.toks[p.pos+1].Kind == TokEq {
					name := p.advance().Text
					p.advance() // '='
					v, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					kwNames = append(kwNames, name)
					kwValues = append(kwValues, v)
				} else {
					a, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
				}
				if p.at(TokComma) {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expect(TokRParen, "')'"); err != nil {
				return nil, err
			}
			x = &CallExpr{Fn: x, Args: args, KwNames: kwNames, KwValues: kwValues, Line: line}
		case TokLBracket:
			line := p.cur().Line
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRBracket, "']'"); err != nil {
				return nil, err
			}
			x = &SubscriptExpr{X: x, Index: idx, Line: line}
		case TokDot:
			line := p.cur().Line
			p.advance()
			name, err := p.expect(TokName, "attribute name")
			if err != nil {
				return nil, err
			}
			x = &AttributeExpr{X: x, Name: name.Text, Line: line}
		default:
			return x, nil
		}
	}
}

func (p *Parser) parseAtom() (Expr, error) {
	t := p.cur()
	switch t.Kind {
	case TokInt:
		p.advance()
		return &IntLit{Value: t.Int, Line: t.Line}, nil
	case TokFloat:
		p.advance()
		return &FloatLit{Value: t.Flt, Line: t.Line}, nil
	case TokString:
		p.advance()
		s := t.Text
		for p.at(TokString) { // implicit adjacent-string concatenation
			s += p.advance().Text
		}
		return &StringLit{Value: s, Line: t.Line}, nil
	case TokTrue:
		p.advance()
		return &BoolLit{Value: true, Line: t.Line}, nil
	case TokFalse:
		p.advance()
		return &BoolLit{Value: false, Line: t.Line}, nil
	case TokNone:
		p.advance()
		return &NoneLit{Line: t.Line}, nil
	case TokName:
		p.advance()
		return &NameExpr{Name: t.Text, Line: t.Line}, nil
	case TokLParen:
		p.advance()
		if p.at(TokRParen) {
			p.advance()
			return &TupleLit{Line: t.Line}, nil
		}
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.at(TokComma) {
			items := []Expr{first}
			for p.at(TokComma) {
				p.advance()
				if p.at(TokRParen) {
					break
				}
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				items = append(items, e)
			}
			if _, err := p.expect(TokRParen, "')'"); err != nil {
				return nil, err
			}
			return &TupleLit{Items: items, Line: t.Line}, nil
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		return first, nil
	case TokLBracket:
		p.advance()
		var items []Expr
		for !p.at(TokRBracket) {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, e)
			if p.at(TokComma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(TokRBracket, "']'"); err != nil {
			return nil, err
		}
		return &ListLit{Items: items, Line: t.Line}, nil
	case TokLBrace:
		p.advance()
		var keys, vals []Expr
		for !p.at(TokRBrace) {
			k, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokColon, "':'"); err != nil {
				return nil, err
			}
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			vals = append(vals, v)
			if p.at(TokComma) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(TokRBrace, "'}'"); err != nil {
			return nil, err
		}
		return &DictLit{Keys: keys, Values: vals, Line: t.Line}, nil
	default:
		return nil, &SyntaxError{Line: t.Line, Message: "unexpected token in expression"}
	}
}
