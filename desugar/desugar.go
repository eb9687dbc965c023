package desugar

import (
	"github.com/fur-lang/furc/internal/ierr"
	"github.com/fur-lang/furc/parse"
)

// OperatorBuiltins maps surface operator lexemes to the reserved builtin
// function name they desugar to. Exported so normalize can reuse it when
// expanding a ChainCompareExpr into pairwise comparison calls.
var OperatorBuiltins = map[string]string{
	"+":  "__add__",
	"-":  "__subtract__",
	"*":  "__multiply__",
	"//": "__integer_divide__",
	"%":  "__modular_divide__",
	"++": "__concat__",
	"<":  "__lt__",
	">":  "__gt__",
	"<=": "__lte__",
	">=": "__gte__",
	"==": "__eq__",
	"!=": "__neq__",
}

// Desugar lowers a surface program into the desugared tree: operators
// become dunder-named calls, "and"/"or" become explicit if/else, field
// access becomes `__field__`, and indexing becomes `__get__`.
func Desugar(prog *parse.Program) *Program {
	out := &Program{Stmts: make([]Stmt, 0, len(prog.Stmts))}
	for _, s := range prog.Stmts {
		out.Stmts = append(out.Stmts, desugarStmt(s))
	}
	return out
}

func desugarStmts(stmts []parse.Stmt) []Stmt {
	if stmts == nil {
		return nil
	}
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, desugarStmt(s))
	}
	return out
}

func desugarStmt(s parse.Stmt) Stmt {
	switch s := s.(type) {
	case *parse.ExprStmt:
		return &ExprStmt{Expr: desugarExpr(s.Expr), Meta: s.Meta}
	case *parse.AssignStmt:
		return &AssignStmt{Target: s.Target, Expr: desugarExpr(s.Expr), Meta: s.Meta}
	case *parse.FnDefStmt:
		return &FnDefStmt{
			Name:     s.Name,
			ArgNames: s.ArgNames,
			Body:     desugarStmts(s.Body),
			Meta:     s.Meta,
		}
	default:
		ierr.Fail("desugar", "unhandled statement node")
		return nil
	}
}

func desugarExpr(e parse.Expr) Expr {
	switch e := e.(type) {
	case *parse.IntegerLit:
		return &IntegerLit{Value: e.Value, Meta: e.Meta}

	case *parse.StringLit:
		return &StringLit{Value: e.Value, Meta: e.Meta}

	case *parse.SymbolExpr:
		return &SymbolExpr{Name: e.Name, Meta: e.Meta}

	case *parse.NegationExpr:
		return &CallExpr{
			Fn:   &SymbolExpr{Name: "__negate__", Meta: e.Meta},
			Args: []Expr{desugarExpr(e.Inner)},
			Meta: e.Meta,
		}

	case *parse.ListLiteral:
		items := make([]Expr, len(e.Items))
		for i, it := range e.Items {
			items[i] = desugarExpr(it)
		}
		return &ListLiteral{Items: items, Meta: e.Meta}

	case *parse.StructLiteral:
		fields := make([]StructField, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = StructField{Name: f.Name, Expr: desugarExpr(f.Expr)}
		}
		return &StructLiteral{Fields: fields, Meta: e.Meta}

	case *parse.ListIndexExpr:
		return &CallExpr{
			Fn:   &SymbolExpr{Name: "__get__", Meta: e.Meta},
			Args: []Expr{desugarExpr(e.List), desugarExpr(e.Index)},
			Meta: e.Meta,
		}

	case *parse.CallExpr:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = desugarExpr(a)
		}
		return &CallExpr{Fn: desugarExpr(e.Fn), Args: args, Meta: e.Meta}

	case *parse.LambdaExpr:
		return &LambdaExpr{ArgNames: e.ArgNames, Body: desugarStmts(e.Body), Meta: e.Meta}

	case *parse.IfExpr:
		return &IfExpr{
			Cond: desugarExpr(e.Cond),
			Then: desugarStmts(e.Then),
			Else: desugarStmts(e.Else),
			Meta: e.Meta,
		}

	case *parse.InfixExpr:
		if e.Level == parse.LevelCompare {
			operands, ops := flattenCompareChain(e)
			dOperands := make([]Expr, len(operands))
			for i, o := range operands {
				dOperands[i] = desugarExpr(o)
			}
			return &ChainCompareExpr{Operands: dOperands, Ops: ops, Meta: e.Meta}
		}
		return desugarInfix(e)

	default:
		ierr.Fail("desugar", "unhandled expression node")
		return nil
	}
}

// flattenCompareChain walks the left spine of a left-associative run of
// comparison-level infix nodes (as produced by the parser's generic
// infixLevel climber) and returns the flat list of operands and the
// operators between them, e.g. `a < b < c` => ([a,b,c], ["<","<"]).
func flattenCompareChain(e *parse.InfixExpr) ([]parse.Expr, []string) {
	var operands []parse.Expr
	var ops []string

	if left, ok := e.Left.(*parse.InfixExpr); ok && left.Level == parse.LevelCompare {
		operands, ops = flattenCompareChain(left)
	} else {
		operands = []parse.Expr{e.Left}
	}

	ops = append(ops, e.Op)
	operands = append(operands, e.Right)
	return operands, ops
}

func desugarInfix(e *parse.InfixExpr) Expr {
	switch e.Level {
	case parse.LevelOr:
		// `a or b` => if a do true else b end
		return &IfExpr{
			Cond: desugarExpr(e.Left),
			Then: []Stmt{&ExprStmt{Expr: &SymbolExpr{Name: "true", Meta: e.Meta}, Meta: e.Meta}},
			Else: []Stmt{&ExprStmt{Expr: desugarExpr(e.Right), Meta: e.Meta}},
			Meta: e.Meta,
		}

	case parse.LevelAnd:
		// `a and b` => if a do b else false end
		return &IfExpr{
			Cond: desugarExpr(e.Left),
			Then: []Stmt{&ExprStmt{Expr: desugarExpr(e.Right), Meta: e.Meta}},
			Else: []Stmt{&ExprStmt{Expr: &SymbolExpr{Name: "false", Meta: e.Meta}, Meta: e.Meta}},
			Meta: e.Meta,
		}

	case parse.LevelDot:
		// `a.name` => __field__(a, "name")
		name, ok := e.Right.(*parse.SymbolExpr)
		if !ok {
			ierr.Fail("desugar", "dot right-hand side is not a symbol")
			return nil
		}
		return &CallExpr{
			Fn:   &SymbolExpr{Name: "__field__", Meta: e.Meta},
			Args: []Expr{desugarExpr(e.Left), &StringLit{Value: name.Name, Meta: name.Meta}},
			Meta: e.Meta,
		}

	default:
		builtin, ok := OperatorBuiltins[e.Op]
		if !ok {
			ierr.Fail("desugar", "unknown operator "+e.Op)
		return nil
		}
		return &CallExpr{
			Fn:   &SymbolExpr{Name: builtin, Meta: e.Meta},
			Args: []Expr{desugarExpr(e.Left), desugarExpr(e.Right)},
			Meta: e.Meta,
		}
	}
}
