package parse

import (
	"github.com/fur-lang/furc/internal/reserved"
	"github.com/fur-lang/furc/lex"
)

// Parser is a hand-written recursive predictive parser over a token slice,
// following the "(success, next_index, value)" discipline of the original
// implementation, adapted to Go's stateful-cursor idiom.
type Parser struct {
	tokens []lex.Token
	pos    int
}

// NewParser creates a parser over tokens, which must end with an EOF token.
func NewParser(tokens []lex.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a whole program. It returns the first fatal error
// encountered, after accumulating and reporting only that first one — the
// Program result may still be partially populated for tooling that wants a
// best-effort tree.
func (p *Parser) Parse() (*Program, error) {
	var prog Program

	for !p.atEnd() {
		p.skipNewlines()
		if p.atEnd() {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return &prog, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}

	return &prog, nil
}

// ---- token cursor primitives ----

func (p *Parser) peek() lex.Token  { return p.tokens[p.pos] }
func (p *Parser) atEnd() bool      { return p.peek().Kind == lex.EOF }
func (p *Parser) advance() lex.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(kind lex.Kind) bool { return p.peek().Kind == kind }

func (p *Parser) checkLexeme(kind lex.Kind, lexeme string) bool {
	t := p.peek()
	return t.Kind == kind && t.Lexeme == lexeme
}

func (p *Parser) match(kind lex.Kind) (lex.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	return lex.Token{}, false
}

func (p *Parser) matchLexeme(kind lex.Kind, lexeme string) bool {
	if p.checkLexeme(kind, lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) skipNewlines() {
	for p.check(lex.Newline) {
		p.advance()
	}
}

// mark/reset implement backtracking for alternatives that fail partway
// through without consuming a hard error.
type mark struct{ pos int }

func (p *Parser) mark() mark       { return mark{pos: p.pos} }
func (p *Parser) reset(m mark)     { p.pos = m.pos }

func (p *Parser) expectDelimiter(kind lex.Kind, lexeme string) error {
	if p.check(kind) {
		p.advance()
		return nil
	}
	return newExpectedDelimiter(p.peek().Line, lexeme, p.peek().Lexeme)
}

// ---- statements ----

func (p *Parser) statement() (Stmt, error) {
	p.skipNewlines()

	if s, ok, err := p.tryAssignStmt(); err != nil {
		return nil, err
	} else if ok {
		return s, nil
	}

	if s, ok, err := p.tryFnDefStmt(); err != nil {
		return nil, err
	} else if ok {
		return s, nil
	}

	return p.exprStmt()
}

func (p *Parser) tryAssignStmt() (Stmt, bool, error) {
	m := p.mark()
	if !p.check(lex.Symbol) {
		return nil, false, nil
	}
	nameTok := p.advance()
	if !p.check(lex.AssignOp) {
		p.reset(m)
		return nil, false, nil
	}
	if !reserved.IsAssignable(nameTok.Lexeme) {
		return nil, true, newAssignToBuiltin(nameTok.Line, nameTok.Lexeme)
	}
	p.advance() // consume '='
	expr, err := p.expression()
	if err != nil {
		return nil, true, newExpectedExpression(nameTok.Line, "after '='")
	}
	return &AssignStmt{Target: nameTok.Lexeme, Expr: expr, Meta: metaOf(nameTok)}, true, nil
}

func (p *Parser) tryFnDefStmt() (Stmt, bool, error) {
	m := p.mark()
	if !p.checkLexeme(lex.Keyword, "def") {
		return nil, false, nil
	}
	defTok := p.advance()

	nameTok, ok := p.match(lex.Symbol)
	if !ok {
		p.reset(m)
		return nil, false, nil
	}
	if !reserved.IsAssignable(nameTok.Lexeme) {
		return nil, true, newAssignToBuiltin(nameTok.Line, nameTok.Lexeme)
	}

	if err := p.expectDelimiter(lex.OpenParen, "("); err != nil {
		return nil, true, err
	}

	var args []string
	if !p.check(lex.CloseParen) {
		for {
			a, ok := p.match(lex.Symbol)
			if !ok {
				return nil, true, newExpectedExpression(p.peek().Line, "in argument list")
			}
			if !reserved.IsAssignable(a.Lexeme) {
				return nil, true, newAssignToBuiltin(a.Line, a.Lexeme)
			}
			args = append(args, a.Lexeme)
			if !p.matchLexeme(lex.Comma, ",") {
				break
			}
		}
	}

	if err := p.expectDelimiter(lex.CloseParen, ")"); err != nil {
		return nil, true, err
	}

	if !p.matchLexeme(lex.Symbol, "do") {
		return nil, true, newExpectedDelimiter(p.peek().Line, "do", p.peek().Lexeme)
	}

	body, err := p.statementList()
	if err != nil {
		return nil, true, err
	}

	if !p.checkLexeme(lex.Keyword, "end") {
		return nil, true, newExpectedDelimiter(p.peek().Line, "end", p.peek().Lexeme)
	}
	p.advance()

	return &FnDefStmt{Name: nameTok.Lexeme, ArgNames: args, Body: body, Meta: metaOf(defTok)}, true, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	m := p.mark()
	expr, err := p.expression()
	if err != nil {
		return nil, newUnexpectedToken(p.peek().Line, p.peek().Lexeme)
	}
	return &ExprStmt{Expr: expr, Meta: Meta{Index: p.tokens[m.pos].Index, Line: p.tokens[m.pos].Line}}, nil
}

// statementList parses zero or more statements up to (but not consuming) a
// closing "else" or "end" keyword/symbol.
func (p *Parser) statementList() ([]Stmt, error) {
	var stmts []Stmt
	for {
		p.skipNewlines()
		if p.checkLexeme(lex.Symbol, "else") || p.checkLexeme(lex.Keyword, "end") || p.atEnd() {
			return stmts, nil
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// ---- expressions: precedence chain, loosest first ----

func (p *Parser) expression() (Expr, error) {
	if p.checkLexeme(lex.Symbol, "if") {
		return p.ifExpr()
	}
	if p.checkLexeme(lex.Symbol, "lambda") {
		return p.lambdaExpr()
	}
	return p.orExpr()
}

func (p *Parser) lambdaExpr() (Expr, error) {
	lambdaTok := p.advance() // 'lambda'

	if err := p.expectDelimiter(lex.OpenParen, "("); err != nil {
		return nil, err
	}

	var args []string
	if !p.check(lex.CloseParen) {
		for {
			a, ok := p.match(lex.Symbol)
			if !ok {
				return nil, newExpectedExpression(p.peek().Line, "in argument list")
			}
			if !reserved.IsAssignable(a.Lexeme) {
				return nil, newAssignToBuiltin(a.Line, a.Lexeme)
			}
			args = append(args, a.Lexeme)
			if !p.matchLexeme(lex.Comma, ",") {
				break
			}
		}
	}

	if err := p.expectDelimiter(lex.CloseParen, ")"); err != nil {
		return nil, err
	}

	if !p.matchLexeme(lex.Symbol, "do") {
		return nil, newExpectedDelimiter(p.peek().Line, "do", p.peek().Lexeme)
	}

	body, err := p.statementList()
	if err != nil {
		return nil, err
	}

	if !p.checkLexeme(lex.Keyword, "end") {
		return nil, newExpectedDelimiter(p.peek().Line, "end", p.peek().Lexeme)
	}
	p.advance()

	return &LambdaExpr{ArgNames: args, Body: body, Meta: metaOf(lambdaTok)}, nil
}

func (p *Parser) ifExpr() (Expr, error) {
	ifTok := p.advance() // 'if'

	cond, err := p.orExpr()
	if err != nil {
		return nil, newExpectedExpression(ifTok.Line, "after \"if\"")
	}

	if !p.matchLexeme(lex.Symbol, "do") {
		return nil, newExpectedDelimiter(p.peek().Line, "do", p.peek().Lexeme)
	}

	thenStmts, err := p.statementList()
	if err != nil {
		return nil, err
	}

	var elseStmts []Stmt
	if p.matchLexeme(lex.Symbol, "else") {
		elseStmts, err = p.statementList()
		if err != nil {
			return nil, err
		}
	}

	if !p.checkLexeme(lex.Keyword, "end") {
		return nil, newExpectedDelimiter(p.peek().Line, "end", p.peek().Lexeme)
	}
	p.advance()

	return &IfExpr{Cond: cond, Then: thenStmts, Else: elseStmts, Meta: metaOf(ifTok)}, nil
}

func (p *Parser) orExpr() (Expr, error)  { return p.infixLevel(LevelOr, p.isOr, p.andExpr) }
func (p *Parser) andExpr() (Expr, error) { return p.infixLevel(LevelAnd, p.isAnd, p.comparisonExpr) }

func (p *Parser) isOr(t lex.Token) bool  { return t.Kind == lex.Symbol && t.Lexeme == "or" }
func (p *Parser) isAnd(t lex.Token) bool { return t.Kind == lex.Symbol && t.Lexeme == "and" }

func (p *Parser) comparisonExpr() (Expr, error) {
	return p.infixLevel(LevelCompare, func(t lex.Token) bool { return t.Kind == lex.CompareOp }, p.additionExpr)
}

func (p *Parser) additionExpr() (Expr, error) {
	return p.infixLevel(LevelAdd, func(t lex.Token) bool { return t.Kind == lex.AddOp }, p.multiplicationExpr)
}

func (p *Parser) multiplicationExpr() (Expr, error) {
	return p.infixLevel(LevelMul, func(t lex.Token) bool { return t.Kind == lex.MulOp || t.Kind == lex.ConcatOp }, p.unaryExpr)
}

// infixLevel is the generic left-recursive infix parser parameterized by an
// operator predicate, an operand parser, and the precedence level to tag
// the resulting node with.
func (p *Parser) infixLevel(level InfixLevel, isOp func(lex.Token) bool, operand func() (Expr, error)) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for isOp(p.peek()) {
		opTok := p.advance()
		right, err := operand()
		if err != nil {
			return nil, newExpectedExpression(opTok.Line, "after operator")
		}
		left = &InfixExpr{Level: level, Op: opTok.Lexeme, Left: left, Right: right, Meta: metaOf(opTok)}
	}

	return left, nil
}

func (p *Parser) unaryExpr() (Expr, error) {
	if p.check(lex.AddOp) && p.peek().Lexeme == "-" {
		minusTok := p.advance()
		inner, err := p.dotExpr()
		if err != nil {
			return nil, newExpectedExpression(minusTok.Line, "after unary \"-\"")
		}
		return &NegationExpr{Inner: inner, Meta: metaOf(minusTok)}, nil
	}
	return p.dotExpr()
}

func (p *Parser) dotExpr() (Expr, error) {
	left, err := p.postfixExpr()
	if err != nil {
		return nil, err
	}

	for p.check(lex.Period) {
		dotTok := p.advance()
		nameTok, ok := p.match(lex.Symbol)
		if !ok {
			return nil, newExpectedExpression(dotTok.Line, "after \".\"")
		}
		left = &InfixExpr{
			Level: LevelDot,
			Op:    ".",
			Left:  left,
			Right: &SymbolExpr{Name: nameTok.Lexeme, Meta: metaOf(nameTok)},
			Meta:  metaOf(dotTok),
		}
	}

	return left, nil
}

// postfixExpr parses a primary expression, then greedily consumes any
// immediately following "(args)" or "[index]" chains: f(x)(y)[0].
func (p *Parser) postfixExpr() (Expr, error) {
	expr, err := p.primaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(lex.OpenParen):
			openTok := p.advance()
			args, err := p.exprList(lex.CloseParen)
			if err != nil {
				return nil, err
			}
			if err := p.expectDelimiter(lex.CloseParen, ")"); err != nil {
				return nil, err
			}
			expr = &CallExpr{Fn: expr, Args: args, Meta: metaOf(openTok)}
		case p.check(lex.OpenBracket):
			openTok := p.advance()
			idx, err := p.expression()
			if err != nil {
				return nil, newExpectedExpression(openTok.Line, "inside \"[...]\"")
			}
			if err := p.expectDelimiter(lex.CloseBracket, "]"); err != nil {
				return nil, err
			}
			expr = &ListIndexExpr{List: expr, Index: idx, Meta: metaOf(openTok)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) exprList(end lex.Kind) ([]Expr, error) {
	var items []Expr
	p.skipNewlines()
	if p.check(end) {
		return items, nil
	}
	for {
		p.skipNewlines()
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		p.skipNewlines()
		if !p.matchLexeme(lex.Comma, ",") {
			return items, nil
		}
	}
}

func (p *Parser) primaryExpr() (Expr, error) {
	tok := p.peek()

	switch {
	case tok.Kind == lex.IntegerLit:
		p.advance()
		return &IntegerLit{Value: parseInt(tok.Lexeme), Meta: metaOf(tok)}, nil

	case tok.Kind == lex.SingleQuotedString || tok.Kind == lex.DoubleQuotedString:
		p.advance()
		return &StringLit{Value: tok.Lexeme[1 : len(tok.Lexeme)-1], Meta: metaOf(tok)}, nil

	case tok.Kind == lex.Symbol:
		p.advance()
		return &SymbolExpr{Name: tok.Lexeme, Meta: metaOf(tok)}, nil

	case tok.Kind == lex.OpenParen:
		return p.parenOrStruct()

	case tok.Kind == lex.OpenBracket:
		p.advance()
		items, err := p.exprList(lex.CloseBracket)
		if err != nil {
			return nil, err
		}
		if err := p.expectDelimiter(lex.CloseBracket, "]"); err != nil {
			return nil, err
		}
		return &ListLiteral{Items: items, Meta: metaOf(tok)}, nil

	default:
		return nil, newUnexpectedToken(tok.Line, tok.Lexeme)
	}
}

// parenOrStruct disambiguates "(" expr ")" from a struct literal
// "(name: expr, ...)" by trying the struct-field form first.
func (p *Parser) parenOrStruct() (Expr, error) {
	openTok := p.advance() // '('

	if fields, ok := p.tryStructFields(); ok {
		if err := p.expectDelimiter(lex.CloseParen, ")"); err != nil {
			return nil, err
		}
		return &StructLiteral{Fields: fields, Meta: metaOf(openTok)}, nil
	}

	if p.check(lex.CloseParen) {
		p.advance()
		return &StructLiteral{Meta: metaOf(openTok)}, nil
	}

	inner, err := p.expression()
	if err != nil {
		return nil, newExpectedExpression(openTok.Line, "after \"(\"")
	}
	if err := p.expectDelimiter(lex.CloseParen, ")"); err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *Parser) tryStructFields() ([]StructField, bool) {
	m := p.mark()

	first, ok := p.tryStructField()
	if !ok {
		p.reset(m)
		return nil, false
	}
	fields := []StructField{first}

	for p.matchLexeme(lex.Comma, ",") {
		f, ok := p.tryStructField()
		if !ok {
			p.reset(m)
			return nil, false
		}
		fields = append(fields, f)
	}

	return fields, true
}

func (p *Parser) tryStructField() (StructField, bool) {
	m := p.mark()
	nameTok, ok := p.match(lex.Symbol)
	if !ok || !p.check(lex.Colon) {
		p.reset(m)
		return StructField{}, false
	}
	p.advance() // ':'
	expr, err := p.expression()
	if err != nil {
		p.reset(m)
		return StructField{}, false
	}
	return StructField{Name: nameTok.Lexeme, Expr: expr}, true
}

func parseInt(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
