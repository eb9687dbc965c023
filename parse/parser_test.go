package parse

import (
	"testing"

	"github.com/fur-lang/furc/lex"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) *Program {
	t.Helper()
	toks, err := lex.NewLexer(src).Tokenize()
	require.NoError(t, err)
	prog, err := NewParser(toks).Parse()
	require.NoError(t, err)
	return prog
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := parseSource(t, "x = 1 + 2 * 3")
	require.Len(t, prog.Stmts, 1)
	assign := prog.Stmts[0].(*AssignStmt)
	add := assign.Expr.(*InfixExpr)
	require.Equal(t, LevelAdd, add.Level)
	require.Equal(t, "+", add.Op)
	_, leftIsInt := add.Left.(*IntegerLit)
	require.True(t, leftIsInt)
	mul := add.Right.(*InfixExpr)
	require.Equal(t, LevelMul, mul.Level)
}

func TestParseComparisonChainIsLeftAssociative(t *testing.T) {
	prog := parseSource(t, "x = 1 < 2 < 3")
	assign := prog.Stmts[0].(*AssignStmt)
	outer := assign.Expr.(*InfixExpr)
	require.Equal(t, LevelCompare, outer.Level)
	_, innerIsInfix := outer.Left.(*InfixExpr)
	require.True(t, innerIsInfix)
}

func TestParseIfExpressionAsAssignmentRHS(t *testing.T) {
	prog := parseSource(t, "x = if y do 1 else 2 end")
	assign := prog.Stmts[0].(*AssignStmt)
	ifExpr := assign.Expr.(*IfExpr)
	require.Len(t, ifExpr.Then, 1)
	require.Len(t, ifExpr.Else, 1)
}

func TestParseFnDef(t *testing.T) {
	prog := parseSource(t, "def add(a, b) do a + b end")
	fn := prog.Stmts[0].(*FnDefStmt)
	require.Equal(t, "add", fn.Name)
	require.Equal(t, []string{"a", "b"}, fn.ArgNames)
	require.Len(t, fn.Body, 1)
}

func TestParseLambdaExpression(t *testing.T) {
	prog := parseSource(t, "f = lambda(x) do x end")
	assign := prog.Stmts[0].(*AssignStmt)
	lam := assign.Expr.(*LambdaExpr)
	require.Equal(t, []string{"x"}, lam.ArgNames)
}

func TestParseStructLiteralVsParenExpr(t *testing.T) {
	prog := parseSource(t, "p = (x: 1, y: 2)\nq = (1 + 2)")
	pStruct := prog.Stmts[0].(*AssignStmt).Expr.(*StructLiteral)
	require.Len(t, pStruct.Fields, 2)
	require.Equal(t, "x", pStruct.Fields[0].Name)

	qExpr := prog.Stmts[1].(*AssignStmt).Expr.(*InfixExpr)
	require.Equal(t, LevelAdd, qExpr.Level)
}

func TestParseListIndexAndCallChain(t *testing.T) {
	prog := parseSource(t, "r = f(1)[0]")
	idx := prog.Stmts[0].(*AssignStmt).Expr.(*ListIndexExpr)
	_, callIsCall := idx.List.(*CallExpr)
	require.True(t, callIsCall)
}

func TestAssignToBuiltinIsRejected(t *testing.T) {
	toks, err := lex.NewLexer("print = 1").Tokenize()
	require.NoError(t, err)
	_, err = NewParser(toks).Parse()
	require.Error(t, err)
}

func TestFnDefNameMatchingReservedBuiltinIsRejected(t *testing.T) {
	toks, err := lex.NewLexer("def __add__(a, b) do a end").Tokenize()
	require.NoError(t, err)
	_, err = NewParser(toks).Parse()
	require.Error(t, err)
}

func TestFnDefArgMatchingReservedBuiltinIsRejected(t *testing.T) {
	toks, err := lex.NewLexer("def add(print, b) do b end").Tokenize()
	require.NoError(t, err)
	_, err = NewParser(toks).Parse()
	require.Error(t, err)
}

func TestLambdaArgMatchingReservedBuiltinIsRejected(t *testing.T) {
	toks, err := lex.NewLexer("f = lambda(print) do print end").Tokenize()
	require.NoError(t, err)
	_, err = NewParser(toks).Parse()
	require.Error(t, err)
}

func TestDotChainIsLeftAssociative(t *testing.T) {
	prog := parseSource(t, "z = a.b.c")
	outer := prog.Stmts[0].(*AssignStmt).Expr.(*InfixExpr)
	require.Equal(t, LevelDot, outer.Level)
	right := outer.Right.(*SymbolExpr)
	require.Equal(t, "c", right.Name)
	_, leftIsDot := outer.Left.(*InfixExpr)
	require.True(t, leftIsDot)
}
