// Package normalize lowers the desugared tree (D) into A-normal form (N):
// every non-trivial subexpression is named by a fresh temporary, so a
// "simple" N expression is always a literal, a symbol reference, or one of
// the handful of flat construction/call forms below.
package normalize

import "github.com/fur-lang/furc/parse"

type Node interface {
	Pos() parse.Meta
}

// Expr is always "simple" by construction.
type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Program struct {
	Stmts []Stmt
}

type IntegerLit struct {
	Value int
	Meta  parse.Meta
}

func (n *IntegerLit) Pos() parse.Meta { return n.Meta }
func (*IntegerLit) exprNode()         {}

type StringLit struct {
	Value string
	Meta  parse.Meta
}

func (n *StringLit) Pos() parse.Meta { return n.Meta }
func (*StringLit) exprNode()         {}

// SymbolExpr is a reference to a local, temporary, or global binding by
// name. The source tree distinguishes compiler temporaries from
// user-written names only by spelling (the reserved-name protocol); both
// render identically downstream, so furc collapses what the original
// pipeline tracked as two historically-separate variants (VarExpr and
// SymbolExpr) into this one, the same way it already treats push_value as
// the canonical literal opcode in preference to a retired push_integer.
type SymbolExpr struct {
	Name string
	Meta parse.Meta
}

func (n *SymbolExpr) Pos() parse.Meta { return n.Meta }
func (*SymbolExpr) exprNode()         {}

// LambdaExpr is a function value: a flat argument list plus a body
// normalized in its own lexical scope, whose implicit return value has
// already been bound to the reserved result variable (internal/reserved.Result).
type LambdaExpr struct {
	Name     string // empty until Convert assigns a stable name
	ArgNames []string
	Body     []Stmt
	Meta     parse.Meta
}

func (n *LambdaExpr) Pos() parse.Meta { return n.Meta }
func (*LambdaExpr) exprNode()         {}

// ListConstructExpr allocates an empty list with the given capacity; the
// items themselves arrive via a following run of ListAppendStmts.
type ListConstructExpr struct {
	Capacity int
	Meta     parse.Meta
}

func (n *ListConstructExpr) Pos() parse.Meta { return n.Meta }
func (*ListConstructExpr) exprNode()         {}

// StructLiteralExpr references a pair of already-built arrays: one of
// field-name symbols, one of field values.
type StructLiteralExpr struct {
	FieldCount int
	SymbolsVar string
	ValuesVar  string
	Meta       parse.Meta
}

func (n *StructLiteralExpr) Pos() parse.Meta { return n.Meta }
func (*StructLiteralExpr) exprNode()         {}

// CallExpr invokes the closure bound to Fn with Argc arguments, which have
// already been pushed by preceding PushStmts.
type CallExpr struct {
	Fn   Expr
	Argc int
	Meta parse.Meta
}

func (n *CallExpr) Pos() parse.Meta { return n.Meta }
func (*CallExpr) exprNode()         {}

// ExprStmt evaluates Expr for effect and discards the result.
type ExprStmt struct {
	Expr Expr
	Meta parse.Meta
}

func (n *ExprStmt) Pos() parse.Meta { return n.Meta }
func (*ExprStmt) stmtNode()         {}

// AssignStmt binds the (already-simple) result of Expr to Target, whether
// this is the name's first binding or a rebinding. The runtime's
// Environment_set does not distinguish the two, so furc merges what the
// source pipeline modeled as separate VarInit/VarReassign/Assign variants.
type AssignStmt struct {
	Target string
	Expr   Expr
	Meta   parse.Meta
}

func (n *AssignStmt) Pos() parse.Meta { return n.Meta }
func (*AssignStmt) stmtNode()         {}

// PushStmt pushes one already-simple argument value onto the call stack,
// in the order the eventual call instruction expects to pop them.
type PushStmt struct {
	Expr Expr
	Meta parse.Meta
}

func (n *PushStmt) Pos() parse.Meta { return n.Meta }
func (*PushStmt) stmtNode()         {}

// ListAppendStmt appends Item to the list bound to List.
type ListAppendStmt struct {
	List string
	Item Expr
	Meta parse.Meta
}

func (n *ListAppendStmt) Pos() parse.Meta { return n.Meta }
func (*ListAppendStmt) stmtNode()         {}

// ArrayVarInit binds Name to a fixed-size array of already-simple values,
// used for a struct literal's field values.
type ArrayVarInit struct {
	Name  string
	Items []Expr
	Meta  parse.Meta
}

func (n *ArrayVarInit) Pos() parse.Meta { return n.Meta }
func (*ArrayVarInit) stmtNode()         {}

// SymbolArrayVarInit binds Name to a fixed-size array of field-name
// strings, used for a struct literal's field names.
type SymbolArrayVarInit struct {
	Name    string
	Symbols []string
	Meta    parse.Meta
}

func (n *SymbolArrayVarInit) Pos() parse.Meta { return n.Meta }
func (*SymbolArrayVarInit) stmtNode()         {}

type FnDefStmt struct {
	Name     string
	ArgNames []string
	Body     []Stmt
	Meta     parse.Meta
}

func (n *FnDefStmt) Pos() parse.Meta { return n.Meta }
func (*FnDefStmt) stmtNode()         {}

// IfElseStmt is the only branching construct left after normalization. A
// desugared if used as an expression is lowered into one of these, with
// each branch ending in an AssignStmt to the shared result temporary.
type IfElseStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Meta parse.Meta
}

func (n *IfElseStmt) Pos() parse.Meta { return n.Meta }
func (*IfElseStmt) stmtNode()         {}
