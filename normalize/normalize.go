package normalize

import (
	"github.com/fur-lang/furc/desugar"
	"github.com/fur-lang/furc/internal/ierr"
	"github.com/fur-lang/furc/internal/reserved"
	"github.com/fur-lang/furc/parse"
)

// scope threads a fresh-temporary counter through one lexical body. Each
// top-level program, each named function body, and each lambda body gets
// its own scope, matching the desugared tree's own lexical boundaries.
type scope struct {
	counter int
}

func (s *scope) fresh() string {
	name := reserved.Temp(s.counter)
	s.counter++
	return name
}

// Normalize lowers a desugared program into A-normal form.
func Normalize(prog *desugar.Program) *Program {
	s := &scope{}
	return &Program{Stmts: s.stmts(prog.Stmts)}
}

func (s *scope) stmts(in []desugar.Stmt) []Stmt {
	var out []Stmt
	for _, st := range in {
		out = append(out, s.stmt(st)...)
	}
	return out
}

func (s *scope) stmt(in desugar.Stmt) []Stmt {
	switch st := in.(type) {
	case *desugar.ExprStmt:
		pre, e := s.expr(st.Expr)
		return append(pre, &ExprStmt{Expr: e, Meta: st.Meta})

	case *desugar.AssignStmt:
		pre, e := s.expr(st.Expr)
		return append(pre, &AssignStmt{Target: st.Target, Expr: e, Meta: st.Meta})

	case *desugar.FnDefStmt:
		fnScope := &scope{}
		body := fnScope.resultBody(st.Body, st.Meta)
		return []Stmt{&FnDefStmt{
			Name:     st.Name,
			ArgNames: st.ArgNames,
			Body:     body,
			Meta:     st.Meta,
		}}

	default:
		ierr.Fail("normalize", "unhandled statement node")
		return nil
	}
}

// expr normalizes e into zero or more prelude statements plus a simple
// result expression.
func (s *scope) expr(in desugar.Expr) ([]Stmt, Expr) {
	switch e := in.(type) {
	case *desugar.IntegerLit:
		return nil, &IntegerLit{Value: e.Value, Meta: e.Meta}

	case *desugar.StringLit:
		return nil, &StringLit{Value: e.Value, Meta: e.Meta}

	case *desugar.SymbolExpr:
		return nil, &SymbolExpr{Name: e.Name, Meta: e.Meta}

	case *desugar.LambdaExpr:
		lambdaScope := &scope{}
		body := lambdaScope.resultBody(e.Body, e.Meta)
		return nil, &LambdaExpr{ArgNames: e.ArgNames, Body: body, Meta: e.Meta}

	case *desugar.CallExpr:
		return s.normalizeCall(e)

	case *desugar.ListLiteral:
		var pre []Stmt
		items := make([]Expr, len(e.Items))
		for i, it := range e.Items {
			itemPre, itemExpr := s.expr(it)
			pre = append(pre, itemPre...)
			items[i] = itemExpr
		}
		listVar := s.fresh()
		pre = append(pre, &AssignStmt{Target: listVar, Expr: &ListConstructExpr{Capacity: len(items), Meta: e.Meta}, Meta: e.Meta})
		for _, item := range items {
			pre = append(pre, &ListAppendStmt{List: listVar, Item: item, Meta: e.Meta})
		}
		return pre, &SymbolExpr{Name: listVar, Meta: e.Meta}

	case *desugar.StructLiteral:
		var pre []Stmt
		names := make([]string, len(e.Fields))
		values := make([]Expr, len(e.Fields))
		for i, f := range e.Fields {
			names[i] = f.Name
			fPre, fExpr := s.expr(f.Expr)
			pre = append(pre, fPre...)
			values[i] = fExpr
		}
		symbolsVar := s.fresh()
		valuesVar := s.fresh()
		pre = append(pre, &SymbolArrayVarInit{Name: symbolsVar, Symbols: names, Meta: e.Meta})
		pre = append(pre, &ArrayVarInit{Name: valuesVar, Items: values, Meta: e.Meta})
		temp := s.fresh()
		pre = append(pre, &AssignStmt{
			Target: temp,
			Expr:   &StructLiteralExpr{FieldCount: len(e.Fields), SymbolsVar: symbolsVar, ValuesVar: valuesVar, Meta: e.Meta},
			Meta:   e.Meta,
		})
		return pre, &SymbolExpr{Name: temp, Meta: e.Meta}

	case *desugar.IfExpr:
		return s.normalizeIfValue(e.Cond, e.Then, e.Else, e.Meta)

	case *desugar.ChainCompareExpr:
		return s.normalizeChainCompare(e)

	default:
		ierr.Fail("normalize", "unhandled expression node")
		return nil, nil
	}
}

// resultBody normalizes a function/lambda body, rewriting its trailing
// expression-statement (if any) to assign the reserved result variable
// instead of discarding its value, per the "assign_result_to" convention.
func (s *scope) resultBody(in []desugar.Stmt, meta parse.Meta) []Stmt {
	return s.branchStmts(in, reserved.Result, meta)
}

func (s *scope) normalizeCall(e *desugar.CallExpr) ([]Stmt, Expr) {
	var pre []Stmt

	argSimples := make([]Expr, len(e.Args))
	for i, a := range e.Args {
		argPre, argExpr := s.expr(a)
		pre = append(pre, argPre...)
		argSimples[i] = argExpr
	}
	for _, arg := range argSimples {
		pre = append(pre, &PushStmt{Expr: arg, Meta: e.Meta})
	}

	fnPre, fnExpr := s.expr(e.Fn)
	pre = append(pre, fnPre...)
	fnExpr = s.ensureVar(fnExpr, e.Meta, &pre)

	temp := s.fresh()
	pre = append(pre, &AssignStmt{Target: temp, Expr: &CallExpr{Fn: fnExpr, Argc: len(argSimples), Meta: e.Meta}, Meta: e.Meta})
	return pre, &SymbolExpr{Name: temp, Meta: e.Meta}
}

// ensureVar lifts a non-symbol callee expression (e.g. a lambda literal
// called immediately) into a fresh variable first.
func (s *scope) ensureVar(e Expr, meta parse.Meta, pre *[]Stmt) Expr {
	if _, ok := e.(*SymbolExpr); ok {
		return e
	}
	temp := s.fresh()
	*pre = append(*pre, &AssignStmt{Target: temp, Expr: e, Meta: meta})
	return &SymbolExpr{Name: temp, Meta: meta}
}

// normalizeIfValue lowers an if used in expression position: both
// branches are normalized as statement lists whose trailing expression
// (if any) is rebound into a shared result temporary, initialized first
// to the reserved absence-of-value so a branch that falls through without
// producing a value still leaves a defined result.
func (s *scope) normalizeIfValue(cond desugar.Expr, then, els []desugar.Stmt, meta parse.Meta) ([]Stmt, Expr) {
	condPre, condExpr := s.expr(cond)
	result := s.fresh()

	thenStmts := s.branchStmts(then, result, meta)
	elseStmts := s.branchStmts(els, result, meta)

	pre := append(condPre, &AssignStmt{Target: result, Expr: &SymbolExpr{Name: reserved.AbsenceOfValue, Meta: meta}, Meta: meta})
	pre = append(pre, &IfElseStmt{Cond: condExpr, Then: thenStmts, Else: elseStmts, Meta: meta})
	return pre, &SymbolExpr{Name: result, Meta: meta}
}

// branchStmts normalizes one branch's statement list, rebinding the
// trailing expression statement (the branch's value, if it has one) into
// result.
func (s *scope) branchStmts(in []desugar.Stmt, result string, meta parse.Meta) []Stmt {
	var out []Stmt
	for i, st := range in {
		if i == len(in)-1 {
			if tail, ok := st.(*desugar.ExprStmt); ok {
				pre, e := s.expr(tail.Expr)
				out = append(out, pre...)
				out = append(out, &AssignStmt{Target: result, Expr: e, Meta: tail.Meta})
				continue
			}
		}
		out = append(out, s.stmt(st)...)
	}
	return out
}

// normalizeChainCompare expands `a < b < c` into pairwise comparisons
// joined by short-circuit "and", evaluating each operand exactly once.
func (s *scope) normalizeChainCompare(e *desugar.ChainCompareExpr) ([]Stmt, Expr) {
	var pre []Stmt

	operands := make([]Expr, len(e.Operands))
	for i, o := range e.Operands {
		opPre, opExpr := s.expr(o)
		pre = append(pre, opPre...)
		operands[i] = opExpr
	}

	var acc Expr
	for i, op := range e.Ops {
		builtin := desugar.OperatorBuiltins[op]
		callPre, cmp := s.normalizeBuiltinCall(builtin, []Expr{operands[i], operands[i+1]}, e.Meta)
		pre = append(pre, callPre...)

		if acc == nil {
			acc = cmp
			continue
		}

		andPre, andResult := s.foldAnd(acc, cmp, e.Meta)
		pre = append(pre, andPre...)
		acc = andResult
	}

	return pre, acc
}

// normalizeBuiltinCall emits the push/call sequence for a call to a
// reserved builtin symbol whose arguments are already simple.
func (s *scope) normalizeBuiltinCall(name string, args []Expr, meta parse.Meta) ([]Stmt, Expr) {
	var pre []Stmt
	for _, a := range args {
		pre = append(pre, &PushStmt{Expr: a, Meta: meta})
	}
	temp := s.fresh()
	pre = append(pre, &AssignStmt{
		Target: temp,
		Expr:   &CallExpr{Fn: &SymbolExpr{Name: name, Meta: meta}, Argc: len(args), Meta: meta},
		Meta:   meta,
	})
	return pre, &SymbolExpr{Name: temp, Meta: meta}
}

// foldAnd lowers `left and right` for two already-simple boolean
// expressions, reusing the same if/else shape the desugar pass builds
// for a source-level "and".
func (s *scope) foldAnd(left, right Expr, meta parse.Meta) ([]Stmt, Expr) {
	result := s.fresh()
	thenStmt := &AssignStmt{Target: result, Expr: right, Meta: meta}
	elseStmt := &AssignStmt{Target: result, Expr: left, Meta: meta}
	return []Stmt{&IfElseStmt{Cond: left, Then: []Stmt{thenStmt}, Else: []Stmt{elseStmt}, Meta: meta}}, &SymbolExpr{Name: result, Meta: meta}
}
