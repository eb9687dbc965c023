package convert

import (
	"testing"

	"github.com/fur-lang/furc/desugar"
	"github.com/fur-lang/furc/internal/reserved"
	"github.com/fur-lang/furc/lex"
	"github.com/fur-lang/furc/normalize"
	"github.com/fur-lang/furc/parse"
	"github.com/stretchr/testify/require"
)

func convertSource(t *testing.T, src string) *Program {
	t.Helper()
	toks, err := lex.NewLexer(src).Tokenize()
	require.NoError(t, err)
	surface, err := parse.NewParser(toks).Parse()
	require.NoError(t, err)
	return Convert(normalize.Normalize(desugar.Desugar(surface)))
}

func TestConvertAssignsAnonymousNameToNamelessLambda(t *testing.T) {
	prog := convertSource(t, "f = lambda(x) do x end")
	assign := prog.Stmts[0].(*AssignStmt)
	lam := assign.Expr.(*LambdaExpr)
	require.Equal(t, reserved.Anonymous, lam.Name)
}

func TestConvertPreservesFnDefName(t *testing.T) {
	prog := convertSource(t, "def add(a, b) do a + b end")
	fn := prog.Stmts[0].(*FnDefStmt)
	require.Equal(t, "add", fn.Name)
}

func TestConvertKeepsCallArgcAndMeta(t *testing.T) {
	prog := convertSource(t, "x = 1 + 2")
	var call *CallExpr
	for _, s := range prog.Stmts {
		if a, ok := s.(*AssignStmt); ok {
			if c, ok := a.Expr.(*CallExpr); ok {
				call = c
			}
		}
	}
	require.NotNil(t, call)
	require.Equal(t, 2, call.Argc)
	require.NotZero(t, call.Meta.Line)
}

func TestConvertIfElseStmtStructurePreserved(t *testing.T) {
	prog := convertSource(t, "x = if y do 1 else 2 end")
	var ifElse *IfElseStmt
	for _, s := range prog.Stmts {
		if ie, ok := s.(*IfElseStmt); ok {
			ifElse = ie
		}
	}
	require.NotNil(t, ifElse)
	require.Len(t, ifElse.Then, 1)
	require.Len(t, ifElse.Else, 1)
}
