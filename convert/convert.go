package convert

import (
	"github.com/fur-lang/furc/internal/ierr"
	"github.com/fur-lang/furc/internal/reserved"
	"github.com/fur-lang/furc/normalize"
)

// Convert narrows a normalized program into the CPS-shaped tree the
// remaining stages consume, assigning every nameless lambda the reserved
// anonymous name.
func Convert(prog *normalize.Program) *Program {
	return &Program{Stmts: convertStmts(prog.Stmts)}
}

func convertStmts(in []normalize.Stmt) []Stmt {
	out := make([]Stmt, len(in))
	for i, s := range in {
		out[i] = convertStmt(s)
	}
	return out
}

func convertStmt(in normalize.Stmt) Stmt {
	switch s := in.(type) {
	case *normalize.ExprStmt:
		return &ExprStmt{Expr: convertExpr(s.Expr), Meta: s.Meta}

	case *normalize.AssignStmt:
		return &AssignStmt{Target: s.Target, Expr: convertExpr(s.Expr), Meta: s.Meta}

	case *normalize.PushStmt:
		return &PushStmt{Expr: convertExpr(s.Expr), Meta: s.Meta}

	case *normalize.ListAppendStmt:
		return &ListAppendStmt{List: s.List, Item: convertExpr(s.Item), Meta: s.Meta}

	case *normalize.ArrayVarInit:
		items := make([]Expr, len(s.Items))
		for i, it := range s.Items {
			items[i] = convertExpr(it)
		}
		return &ArrayVarInit{Name: s.Name, Items: items, Meta: s.Meta}

	case *normalize.SymbolArrayVarInit:
		return &SymbolArrayVarInit{Name: s.Name, Symbols: s.Symbols, Meta: s.Meta}

	case *normalize.FnDefStmt:
		return &FnDefStmt{Name: s.Name, ArgNames: s.ArgNames, Body: convertStmts(s.Body), Meta: s.Meta}

	case *normalize.IfElseStmt:
		return &IfElseStmt{
			Cond: convertExpr(s.Cond),
			Then: convertStmts(s.Then),
			Else: convertStmts(s.Else),
			Meta: s.Meta,
		}

	default:
		ierr.Fail("convert", "unhandled statement node")
		return nil
	}
}

func convertExpr(in normalize.Expr) Expr {
	switch e := in.(type) {
	case *normalize.IntegerLit:
		return &IntegerLit{Value: e.Value, Meta: e.Meta}

	case *normalize.StringLit:
		return &StringLit{Value: e.Value, Meta: e.Meta}

	case *normalize.SymbolExpr:
		return &SymbolExpr{Name: e.Name, Meta: e.Meta}

	case *normalize.LambdaExpr:
		name := e.Name
		if name == "" {
			name = reserved.Anonymous
		}
		return &LambdaExpr{Name: name, ArgNames: e.ArgNames, Body: convertStmts(e.Body), Meta: e.Meta}

	case *normalize.ListConstructExpr:
		return &ListConstructExpr{Capacity: e.Capacity, Meta: e.Meta}

	case *normalize.StructLiteralExpr:
		return &StructLiteralExpr{FieldCount: e.FieldCount, SymbolsVar: e.SymbolsVar, ValuesVar: e.ValuesVar, Meta: e.Meta}

	case *normalize.CallExpr:
		return &CallExpr{Fn: convertExpr(e.Fn), Argc: e.Argc, Meta: e.Meta}

	default:
		ierr.Fail("convert", "unhandled expression node")
		return nil
	}
}
