// Package parse turns a token stream into the surface syntax tree (S).
package parse

import "github.com/fur-lang/furc/lex"

// Meta carries source-location provenance for diagnostics.
type Meta struct {
	Index int
	Line  int
}

// InfixLevel names the precedence tier an InfixExpr was parsed at.
type InfixLevel uint8

const (
	LevelMul InfixLevel = iota
	LevelAdd
	LevelCompare
	LevelDot
	LevelAnd
	LevelOr
)

// Node is the base interface every surface tree node satisfies.
type Node interface {
	Pos() Meta
}

// Expr is any surface expression.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any surface statement.
type Stmt interface {
	Node
	stmtNode()
}

// Program is a whole parsed fur source file.
type Program struct {
	Stmts []Stmt
}

// IntegerLit is an integer literal.
type IntegerLit struct {
	Value int
	Meta  Meta
}

func (n *IntegerLit) Pos() Meta { return n.Meta }
func (*IntegerLit) exprNode()   {}

// StringLit is a string literal (quotes already stripped).
type StringLit struct {
	Value string
	Meta  Meta
}

func (n *StringLit) Pos() Meta { return n.Meta }
func (*StringLit) exprNode()   {}

// SymbolExpr references an identifier.
type SymbolExpr struct {
	Name string
	Meta Meta
}

func (n *SymbolExpr) Pos() Meta { return n.Meta }
func (*SymbolExpr) exprNode()   {}

// NegationExpr is a unary prefix minus.
type NegationExpr struct {
	Inner Expr
	Meta  Meta
}

func (n *NegationExpr) Pos() Meta { return n.Meta }
func (*NegationExpr) exprNode()   {}

// InfixExpr is a binary operator application at a given precedence level.
type InfixExpr struct {
	Level InfixLevel
	Op    string
	Left  Expr
	Right Expr
	Meta  Meta
}

func (n *InfixExpr) Pos() Meta { return n.Meta }
func (*InfixExpr) exprNode()   {}

// ListLiteral is a `[a, b, c]` expression.
type ListLiteral struct {
	Items []Expr
	Meta  Meta
}

func (n *ListLiteral) Pos() Meta { return n.Meta }
func (*ListLiteral) exprNode()   {}

// StructField is one `name: expr` pair inside a struct literal.
type StructField struct {
	Name string
	Expr Expr
}

// StructLiteral is a `(name: expr, ...)` expression.
type StructLiteral struct {
	Fields []StructField
	Meta   Meta
}

func (n *StructLiteral) Pos() Meta { return n.Meta }
func (*StructLiteral) exprNode()   {}

// ListIndexExpr is `list[index]`.
type ListIndexExpr struct {
	List  Expr
	Index Expr
	Meta  Meta
}

func (n *ListIndexExpr) Pos() Meta { return n.Meta }
func (*ListIndexExpr) exprNode()   {}

// CallExpr is `fn(args...)`.
type CallExpr struct {
	Fn   Expr
	Args []Expr
	Meta Meta
}

func (n *CallExpr) Pos() Meta { return n.Meta }
func (*CallExpr) exprNode()   {}

// LambdaExpr is `lambda(args...) do stmts... end`, an anonymous function
// value usable anywhere an expression is expected.
type LambdaExpr struct {
	ArgNames []string
	Body     []Stmt
	Meta     Meta
}

func (n *LambdaExpr) Pos() Meta { return n.Meta }
func (*LambdaExpr) exprNode()   {}

// IfExpr is `if cond do stmts... [else stmts...] end`, usable as either a
// statement or an expression.
type IfExpr struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Meta Meta
}

func (n *IfExpr) Pos() Meta { return n.Meta }
func (*IfExpr) exprNode()   {}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Expr Expr
	Meta Meta
}

func (n *ExprStmt) Pos() Meta { return n.Meta }
func (*ExprStmt) stmtNode()   {}

// AssignStmt is `target = expr`.
type AssignStmt struct {
	Target string
	Expr   Expr
	Meta   Meta
}

func (n *AssignStmt) Pos() Meta { return n.Meta }
func (*AssignStmt) stmtNode()   {}

// FnDefStmt is `def name(args...) do stmts... end`.
type FnDefStmt struct {
	Name     string
	ArgNames []string
	Body     []Stmt
	Meta     Meta
}

func (n *FnDefStmt) Pos() Meta { return n.Meta }
func (*FnDefStmt) stmtNode()   {}

func metaOf(t lex.Token) Meta { return Meta{Index: t.Index, Line: t.Line} }
