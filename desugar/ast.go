// Package desugar lowers the surface tree (S) into the desugared tree (D):
// every arithmetic and concatenation operator, unary minus, dotted field
// access, and list index becomes an ordinary call to a reserved
// dunder-named function, a comparison chain becomes a ChainCompareExpr,
// and "and"/"or" become explicit if/else. List and struct literals and
// lambdas remain as their own forms.
package desugar

import "github.com/fur-lang/furc/parse"

// Node, Expr and Stmt mirror the parse package's marker-interface shape.
type Node interface {
	Pos() parse.Meta
}

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

type SymbolExpr struct {
	Name string
	Meta parse.Meta
}

func (n *SymbolExpr) Pos() parse.Meta { return n.Meta }
func (*SymbolExpr) exprNode()         {}

type ListLiteral struct {
	Items []Expr
	Meta  parse.Meta
}

func (n *ListLiteral) Pos() parse.Meta { return n.Meta }
func (*ListLiteral) exprNode()         {}

type StructField struct {
	Name string
	Expr Expr
}

type StructLiteral struct {
	Fields []StructField
	Meta   parse.Meta
}

func (n *StructLiteral) Pos() parse.Meta { return n.Meta }
func (*StructLiteral) exprNode()         {}

// CallExpr is `fn(args...)`. Desugared operators, field access and
// indexing all become CallExpr nodes naming a reserved builtin.
type CallExpr struct {
	Fn   Expr
	Args []Expr
	Meta parse.Meta
}

func (n *CallExpr) Pos() parse.Meta { return n.Meta }
func (*CallExpr) exprNode()         {}

type IfExpr struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Meta parse.Meta
}

func (n *IfExpr) Pos() parse.Meta { return n.Meta }
func (*IfExpr) exprNode()         {}

// LambdaExpr is an anonymous function value; its body is desugared like
// any other statement list.
type LambdaExpr struct {
	ArgNames []string
	Body     []Stmt
	Meta     parse.Meta
}

func (n *LambdaExpr) Pos() parse.Meta { return n.Meta }
func (*LambdaExpr) exprNode()         {}

// ChainCompareExpr preserves a source comparison chain (`a < b < c`) as a
// flat operand/operator list instead of nesting it as ordinary binary
// calls, so normalize can evaluate each shared middle operand exactly
// once when expanding it into pairwise comparisons joined by "and".
type ChainCompareExpr struct {
	Operands []Expr
	Ops      []string
	Meta     parse.Meta
}

func (n *ChainCompareExpr) Pos() parse.Meta { return n.Meta }
func (*ChainCompareExpr) exprNode()         {}

type ExprStmt struct {
	Expr Expr
	Meta parse.Meta
}

func (n *ExprStmt) Pos() parse.Meta { return n.Meta }
func (*ExprStmt) stmtNode()         {}

type AssignStmt struct {
	Target string
	Expr   Expr
	Meta   parse.Meta
}

func (n *AssignStmt) Pos() parse.Meta { return n.Meta }
func (*AssignStmt) stmtNode()         {}

type FnDefStmt struct {
	Name     string
	ArgNames []string
	Body     []Stmt
	Meta     parse.Meta
}

func (n *FnDefStmt) Pos() parse.Meta { return n.Meta }
func (*FnDefStmt) stmtNode()         {}
