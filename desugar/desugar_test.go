package desugar

import (
	"testing"

	"github.com/fur-lang/furc/lex"
	"github.com/fur-lang/furc/parse"
	"github.com/stretchr/testify/require"
)

func desugarSource(t *testing.T, src string) *Program {
	t.Helper()
	toks, err := lex.NewLexer(src).Tokenize()
	require.NoError(t, err)
	prog, err := parse.NewParser(toks).Parse()
	require.NoError(t, err)
	return Desugar(prog)
}

func TestDesugarArithmeticOperatorBecomesCall(t *testing.T) {
	prog := desugarSource(t, "x = 1 + 2")
	assign := prog.Stmts[0].(*AssignStmt)
	call := assign.Expr.(*CallExpr)
	fn := call.Fn.(*SymbolExpr)
	require.Equal(t, "__add__", fn.Name)
	require.Len(t, call.Args, 2)
}

func TestDesugarOrBecomesIfExpr(t *testing.T) {
	prog := desugarSource(t, "x = a or b")
	assign := prog.Stmts[0].(*AssignStmt)
	ifExpr := assign.Expr.(*IfExpr)
	cond := ifExpr.Cond.(*SymbolExpr)
	require.Equal(t, "a", cond.Name)
	then := ifExpr.Then[0].(*ExprStmt).Expr.(*SymbolExpr)
	require.Equal(t, "true", then.Name)
	els := ifExpr.Else[0].(*ExprStmt).Expr.(*SymbolExpr)
	require.Equal(t, "b", els.Name)
}

func TestDesugarOrDoesNotDuplicateLeftOperand(t *testing.T) {
	// `print('hi') or b` must evaluate the left operand exactly once: the
	// condition and the then-branch must not share the same subtree.
	prog := desugarSource(t, "x = print('hi') or b")
	assign := prog.Stmts[0].(*AssignStmt)
	ifExpr := assign.Expr.(*IfExpr)
	_, condIsCall := ifExpr.Cond.(*CallExpr)
	require.True(t, condIsCall)
	then := ifExpr.Then[0].(*ExprStmt).Expr.(*SymbolExpr)
	require.Equal(t, "true", then.Name)
}

func TestDesugarAndBecomesIfExpr(t *testing.T) {
	prog := desugarSource(t, "x = a and b")
	assign := prog.Stmts[0].(*AssignStmt)
	ifExpr := assign.Expr.(*IfExpr)
	cond := ifExpr.Cond.(*SymbolExpr)
	require.Equal(t, "a", cond.Name)
	then := ifExpr.Then[0].(*ExprStmt).Expr.(*SymbolExpr)
	require.Equal(t, "b", then.Name)
	els := ifExpr.Else[0].(*ExprStmt).Expr.(*SymbolExpr)
	require.Equal(t, "false", els.Name)
}

func TestDesugarAndDoesNotDuplicateLeftOperand(t *testing.T) {
	prog := desugarSource(t, "x = print('hi') and b")
	assign := prog.Stmts[0].(*AssignStmt)
	ifExpr := assign.Expr.(*IfExpr)
	_, condIsCall := ifExpr.Cond.(*CallExpr)
	require.True(t, condIsCall)
	els := ifExpr.Else[0].(*ExprStmt).Expr.(*SymbolExpr)
	require.Equal(t, "false", els.Name)
}

func TestDesugarDotBecomesFieldCall(t *testing.T) {
	prog := desugarSource(t, "x = a.name")
	assign := prog.Stmts[0].(*AssignStmt)
	call := assign.Expr.(*CallExpr)
	fn := call.Fn.(*SymbolExpr)
	require.Equal(t, "__field__", fn.Name)
	lit := call.Args[1].(*StringLit)
	require.Equal(t, "name", lit.Value)
}

func TestDesugarComparisonChainFlattens(t *testing.T) {
	prog := desugarSource(t, "x = 1 < 2 < 3")
	assign := prog.Stmts[0].(*AssignStmt)
	chain := assign.Expr.(*ChainCompareExpr)
	require.Len(t, chain.Operands, 3)
	require.Equal(t, []string{"<", "<"}, chain.Ops)
}

func TestDesugarListIndexBecomesGetCall(t *testing.T) {
	prog := desugarSource(t, "x = a[0]")
	assign := prog.Stmts[0].(*AssignStmt)
	call := assign.Expr.(*CallExpr)
	fn := call.Fn.(*SymbolExpr)
	require.Equal(t, "__get__", fn.Name)
}

func TestDesugarNegationBecomesCall(t *testing.T) {
	prog := desugarSource(t, "x = -a")
	assign := prog.Stmts[0].(*AssignStmt)
	call := assign.Expr.(*CallExpr)
	fn := call.Fn.(*SymbolExpr)
	require.Equal(t, "__negate__", fn.Name)
}
