package sir

import (
	"strconv"

	"github.com/fur-lang/furc/convert"
	"github.com/fur-lang/furc/internal/ierr"
	"github.com/fur-lang/furc/internal/reserved"
)

// generatorState names the three states of the generator's state machine.
// Entering or leaving a lambda body or an if-branch saves and restores the
// enclosing state; neither resets the if-counter, which is shared
// monotonically across the whole program.
type generatorState uint8

const (
	stateTopLevel generatorState = iota
	stateInsideLambda
	stateInsideIfBranch
)

// Generator holds the mutable accumulators threaded through SIR
// generation: a per-lambda-name counter used to disambiguate closure
// labels, and one if-counter shared monotonically across the whole
// program.
type Generator struct {
	lambdaCounters map[string]int
	ifCounter      int
	state          generatorState
}

// NewGenerator creates a Generator ready to walk a converted program.
func NewGenerator() *Generator {
	return &Generator{lambdaCounters: make(map[string]int)}
}

// Generate lowers a converted program into the final linear SIR: every
// closure body hoisted ahead of Label("__main__"), followed by the
// top-level instruction stream and a trailing end.
func Generate(prog *convert.Program) []Entry {
	g := NewGenerator()
	referenced, instrs := g.genStmts(prog.Stmts)

	out := make([]Entry, 0, len(referenced)+len(instrs)+2)
	out = append(out, referenced...)
	out = append(out, Label{Name: "__main__"})
	out = append(out, instrs...)
	out = append(out, Instruction{Op: OpEnd})
	return out
}

func (g *Generator) genStmts(stmts []convert.Stmt) (referenced, instrs []Entry) {
	for _, st := range stmts {
		r, ins := g.genStmt(st)
		referenced = append(referenced, r...)
		instrs = append(instrs, ins...)
	}
	return referenced, instrs
}

func (g *Generator) genStmt(st convert.Stmt) (referenced, instrs []Entry) {
	switch s := st.(type) {
	case *convert.ExprStmt:
		ref, push := g.genExprPush(s.Expr)
		instrs = append(push, Instruction{Op: OpDrop})
		return ref, instrs

	case *convert.AssignStmt:
		ref, push := g.genExprPush(s.Expr)
		if g.state == stateInsideLambda && s.Target == reserved.Result {
			// Leave the value on the stack: the enclosing lambda body
			// returns it directly instead of binding and re-reading it.
			return ref, push
		}
		instrs = append(push, Instruction{Op: OpPop, Arg: SymArg{Name: s.Target}})
		return ref, instrs

	case *convert.PushStmt:
		return g.genExprPush(s.Expr)

	case *convert.ListAppendStmt:
		ref, push := g.genExprPush(s.Item)
		instrs = append(push,
			Instruction{Op: OpPush, Arg: SymArg{Name: s.List}},
			Instruction{Op: OpPush, Arg: SymArg{Name: "__append__"}},
			Instruction{Op: OpCall, Arg: IntArg{Value: 2}},
			Instruction{Op: OpDrop},
		)
		return ref, instrs

	case *convert.ArrayVarInit:
		return g.genArrayBuild(s.Name, s.Items)

	case *convert.SymbolArrayVarInit:
		items := make([]convert.Expr, len(s.Symbols))
		for i, name := range s.Symbols {
			items[i] = &convert.StringLit{Value: name}
		}
		return g.genArrayBuild(s.Name, items)

	case *convert.FnDefStmt:
		return g.genClosureDef(s.Name, s.ArgNames, s.Body)

	case *convert.IfElseStmt:
		return g.genIfElse(s.Cond, s.Then, s.Else)

	default:
		ierr.Fail("sir", "unhandled statement node")
		return nil, nil
	}
}

// genArrayBuild lowers a fixed-size array binding (struct literal field
// names or field values) to list-construction followed by one append call
// per item, the same shape a source-level list literal uses.
func (g *Generator) genArrayBuild(name string, items []convert.Expr) (referenced, instrs []Entry) {
	instrs = append(instrs,
		Instruction{Op: OpList, Arg: IntArg{Value: len(items)}},
		Instruction{Op: OpPop, Arg: SymArg{Name: name}},
	)
	for _, item := range items {
		ref, push := g.genExprPush(item)
		referenced = append(referenced, ref...)
		instrs = append(instrs, push...)
		instrs = append(instrs,
			Instruction{Op: OpPush, Arg: SymArg{Name: name}},
			Instruction{Op: OpPush, Arg: SymArg{Name: "__append__"}},
			Instruction{Op: OpCall, Arg: IntArg{Value: 2}},
			Instruction{Op: OpDrop},
		)
	}
	return referenced, instrs
}

// genIfElse emits the condition inline, a conditional branch to the else
// arm, the then-body, an unconditional jump past the else arm, and the
// else arm itself. The if-counter is shared and monotonic across the
// whole program, never reset per branch or lambda.
func (g *Generator) genIfElse(cond convert.Expr, then, els []convert.Stmt) (referenced, instrs []Entry) {
	k := g.ifCounter
	g.ifCounter++
	elseLabel := "__else$" + strconv.Itoa(k) + "__"
	endifLabel := "__endif$" + strconv.Itoa(k) + "__"

	condRef, condPush := g.genExprPush(cond)
	referenced = append(referenced, condRef...)
	instrs = append(instrs, condPush...)
	instrs = append(instrs, Instruction{Op: OpJumpIfFalse, Arg: LabelArg{Name: elseLabel}})

	outerState := g.state
	g.state = stateInsideIfBranch
	thenRef, thenInstrs := g.genStmts(then)
	elseRef, elseInstrs := g.genStmts(els)
	g.state = outerState

	referenced = append(referenced, thenRef...)
	referenced = append(referenced, elseRef...)

	instrs = append(instrs, thenInstrs...)
	instrs = append(instrs, Instruction{Op: OpJump, Arg: LabelArg{Name: endifLabel}})
	instrs = append(instrs, Label{Name: elseLabel})
	instrs = append(instrs, elseInstrs...)
	instrs = append(instrs, Label{Name: endifLabel})

	return referenced, instrs
}

// genClosureDef lowers a named function definition: a hoisted label whose
// body pops its arguments in reverse push order and returns, plus an
// inline close+bind at the definition site.
func (g *Generator) genClosureDef(name string, argNames []string, body []convert.Stmt) (referenced, instrs []Entry) {
	label := g.closureLabel(name)

	bodyEntries := g.genClosureBody(label, argNames, body)
	referenced = append(referenced, bodyEntries...)

	instrs = append(instrs,
		Instruction{Op: OpClose, Arg: LabelArg{Name: label}},
		Instruction{Op: OpPop, Arg: SymArg{Name: name}},
	)
	return referenced, instrs
}

// closureLabel allocates a unique label for a closure name, disambiguating
// repeats (always needed for the reserved anonymous lambda name, never
// needed in practice for a named def in this language) with a per-name
// counter.
func (g *Generator) closureLabel(name string) string {
	k := g.lambdaCounters[name]
	g.lambdaCounters[name]++
	return name + "$" + strconv.Itoa(k)
}

func (g *Generator) genClosureBody(label string, argNames []string, body []convert.Stmt) []Entry {
	outerState := g.state
	g.state = stateInsideLambda

	bodyRef, bodyInstrs := g.genStmts(body)

	g.state = outerState

	entries := make([]Entry, 0, len(bodyRef)+len(argNames)+len(bodyInstrs)+2)
	entries = append(entries, bodyRef...)
	entries = append(entries, Label{Name: label})
	for i := len(argNames) - 1; i >= 0; i-- {
		entries = append(entries, Instruction{Op: OpPop, Arg: SymArg{Name: argNames[i]}})
	}
	entries = append(entries, bodyInstrs...)
	entries = append(entries, Instruction{Op: OpReturn})
	return entries
}

// genExprPush emits the instructions that leave exactly one value on top
// of the stack.
func (g *Generator) genExprPush(e convert.Expr) (referenced, instrs []Entry) {
	switch expr := e.(type) {
	case *convert.IntegerLit:
		return nil, []Entry{Instruction{Op: OpPushValue, Arg: IntArg{Value: expr.Value}}}

	case *convert.StringLit:
		return nil, []Entry{Instruction{Op: OpPushValue, Arg: StrArg{Value: expr.Value}}}

	case *convert.SymbolExpr:
		return nil, []Entry{Instruction{Op: OpPush, Arg: SymArg{Name: expr.Name}}}

	case *convert.ListConstructExpr:
		return nil, []Entry{Instruction{Op: OpList, Arg: IntArg{Value: expr.Capacity}}}

	case *convert.StructLiteralExpr:
		instrs = []Entry{
			Instruction{Op: OpPush, Arg: SymArg{Name: expr.SymbolsVar}},
			Instruction{Op: OpPush, Arg: SymArg{Name: expr.ValuesVar}},
			Instruction{Op: OpPushValue, Arg: IntArg{Value: expr.FieldCount}},
			Instruction{Op: OpPush, Arg: SymArg{Name: "__struct__"}},
			Instruction{Op: OpCall, Arg: IntArg{Value: 3}},
		}
		return nil, instrs

	case *convert.CallExpr:
		ref, fnPush := g.genExprPush(expr.Fn)
		instrs = append(fnPush, Instruction{Op: OpCall, Arg: IntArg{Value: expr.Argc}})
		return ref, instrs

	case *convert.LambdaExpr:
		label := g.closureLabel(expr.Name)
		body := g.genClosureBody(label, expr.ArgNames, expr.Body)
		return body, []Entry{Instruction{Op: OpClose, Arg: LabelArg{Name: label}}}

	default:
		ierr.Fail("sir", "unhandled expression node")
		return nil, nil
	}
}
