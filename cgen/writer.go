// Package cgen renders a converted program directly into a single C
// translation unit, the same strings.Builder-based textual-backend shape
// glsl.Writer and spirv.Writer use for their own targets. It consumes the
// converted tree rather than the flattened SIR so that if/else can be
// emitted as ordinary structured C instead of reconstructed from jumps.
package cgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fur-lang/furc/convert"
	"github.com/fur-lang/furc/internal/ierr"
	"github.com/fur-lang/furc/internal/reserved"
)

// standardLibraries maps a builtin name to the #include lines its runtime
// implementation depends on.
var standardLibraries = map[string][]string{
	"print": {"<stdio.h>"},
	"pow":   {"<math.h>"},
}

// operatorDecl describes one dunder operator's dispatch entry: the operand
// and result tags the runtime's typed dispatch table needs, and the native
// C operator (where one exists) implementing it.
type operatorDecl struct {
	name       string
	inType     string
	outType    string
	cOperator  string
}

var operatorTable = map[string]operatorDecl{
	"__add__":             {"__add__", "integer", "integer", "+"},
	"__subtract__":        {"__subtract__", "integer", "integer", "-"},
	"__multiply__":        {"__multiply__", "integer", "integer", "*"},
	"__integer_divide__":  {"__integer_divide__", "integer", "integer", "/"},
	"__modular_divide__":  {"__modular_divide__", "integer", "integer", "%"},
	"__lt__":              {"__lt__", "integer", "boolean", "<"},
	"__gt__":              {"__gt__", "integer", "boolean", ">"},
	"__lte__":             {"__lte__", "integer", "boolean", "<="},
	"__gte__":             {"__gte__", "integer", "boolean", ">="},
	"__eq__":              {"__eq__", "integer", "boolean", "=="},
	"__neq__":             {"__neq__", "integer", "boolean", "!="},
	"__concat__":          {"__concat__", "string", "string", ""},
	"__negate__":          {"__negate__", "integer", "integer", "-"},
}

type function struct {
	cName string
	body  string
}

// writer accumulates the named slots spec.md's C backend contract lists:
// the symbol table, the string literal table, the builtin and operator
// sets referenced by the program, and one rendered C function per closure
// (named def or lambda).
type writer struct {
	symbols   *namer
	literals  *namer
	builtins  map[string]bool
	operators map[string]bool
	funcs     []function
	counters  map[string]int
}

func newWriter() *writer {
	return &writer{
		symbols:   newNamer(),
		literals:  newNamer(),
		builtins:  make(map[string]bool),
		operators: make(map[string]bool),
		counters:  make(map[string]int),
	}
}

// Write renders prog as a complete .c source file.
func Write(prog *convert.Program) (string, error) {
	w := newWriter()
	statements := w.block(prog.Stmts)

	var b strings.Builder

	for _, inc := range w.sortedIncludes() {
		b.WriteString("#include ")
		b.WriteString(inc)
		b.WriteByte('\n')
	}
	b.WriteString("#include \"furc_runtime.h\"\n\n")

	b.WriteString("static const char *SYMBOL_LIST[] = {\n")
	for _, s := range w.symbols.order {
		fmt.Fprintf(&b, "    %s,\n", strconv.Quote(s))
	}
	b.WriteString("};\n\n")

	b.WriteString("static const char *STRING_LITERAL_LIST[] = {\n")
	for _, s := range w.literals.order {
		fmt.Fprintf(&b, "    %s,\n", strconv.Quote(s))
	}
	b.WriteString("};\n\n")

	for _, name := range w.sortedBuiltins() {
		fmt.Fprintf(&b, "// builtin: %s\n", name)
	}
	for _, decl := range w.sortedOperators() {
		fmt.Fprintf(&b, "// operator: %s(%s) -> %s via `%s`\n", decl.name, decl.inType, decl.outType, decl.cOperator)
	}
	if len(w.builtins) > 0 || len(w.operators) > 0 {
		b.WriteByte('\n')
	}

	for _, fn := range w.funcs {
		b.WriteString(fn.body)
		b.WriteByte('\n')
	}

	b.WriteString("static Object *furc_main(EnvironmentPool *pool, Environment *environment, Stack *stack) {\n")
	b.WriteString(statements)
	b.WriteString("    return Object_none();\n")
	b.WriteString("}\n\n")

	b.WriteString("int main(void) {\n")
	b.WriteString("    Runtime *runtime = Runtime_create();\n")
	b.WriteString("    EnvironmentPool *pool = Runtime_pool(runtime);\n")
	b.WriteString("    Environment *environment = Environment_create(pool, NULL);\n")
	b.WriteString("    Stack *stack = Stack_create();\n")
	b.WriteString("    Object_deinitialize(furc_main(pool, environment, stack));\n")
	b.WriteString("    Runtime_destroy(runtime);\n")
	b.WriteString("    return 0;\n")
	b.WriteString("}\n")

	return b.String(), nil
}

func (w *writer) sortedIncludes() []string {
	set := make(map[string]bool)
	for name := range w.builtins {
		for _, inc := range standardLibraries[name] {
			set[inc] = true
		}
	}
	out := make([]string, 0, len(set))
	for inc := range set {
		out = append(out, inc)
	}
	sort.Strings(out)
	return out
}

func (w *writer) sortedBuiltins() []string {
	out := make([]string, 0, len(w.builtins))
	for name := range w.builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (w *writer) sortedOperators() []operatorDecl {
	out := make([]operatorDecl, 0, len(w.operators))
	for name := range w.operators {
		out = append(out, operatorTable[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (w *writer) symRef(name string) string {
	return fmt.Sprintf("Environment_get(environment, SYMBOL_LIST[%d])", w.symbols.id(name))
}

func (w *writer) block(stmts []convert.Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		w.stmt(&b, s)
	}
	return b.String()
}

func (w *writer) stmt(b *strings.Builder, in convert.Stmt) {
	switch s := in.(type) {
	case *convert.ExprStmt:
		fmt.Fprintf(b, "    Object_deinitialize(%s);\n", w.expr(s.Expr))

	case *convert.AssignStmt:
		fmt.Fprintf(b, "    Environment_set(environment, SYMBOL_LIST[%d], %s);\n", w.symbols.id(s.Target), w.expr(s.Expr))

	case *convert.PushStmt:
		fmt.Fprintf(b, "    Stack_push(stack, %s);\n", w.expr(s.Expr))

	case *convert.ListAppendStmt:
		fmt.Fprintf(b, "    List_append(%s, %s);\n", w.symRef(s.List), w.expr(s.Item))

	case *convert.ArrayVarInit:
		w.writeArrayInit(b, s.Name, s.Items)

	case *convert.SymbolArrayVarInit:
		items := make([]convert.Expr, len(s.Symbols))
		for i, name := range s.Symbols {
			items[i] = &convert.StringLit{Value: name}
		}
		w.writeArrayInit(b, s.Name, items)

	case *convert.FnDefStmt:
		cName := w.defineClosure(s.Name, s.ArgNames, s.Body)
		fmt.Fprintf(b, "    Environment_set(environment, SYMBOL_LIST[%d], make_closure(pool, environment, %s));\n",
			w.symbols.id(s.Name), cName)

	case *convert.IfElseStmt:
		w.writeIfElse(b, s)

	default:
		ierr.Fail("cgen", "unhandled statement node")
	}
}

func (w *writer) writeArrayInit(b *strings.Builder, name string, items []convert.Expr) {
	fmt.Fprintf(b, "    Environment_set(environment, SYMBOL_LIST[%d], List_construct(%d));\n", w.symbols.id(name), len(items))
	for _, item := range items {
		fmt.Fprintf(b, "    List_append(%s, %s);\n", w.symRef(name), w.expr(item))
	}
}

func (w *writer) writeIfElse(b *strings.Builder, s *convert.IfElseStmt) {
	cond := w.expr(s.Cond)
	thenEmpty := len(s.Then) == 0
	elseEmpty := len(s.Else) == 0

	if thenEmpty {
		fmt.Fprintf(b, "    if (!Object_truthy(%s)) {\n", cond)
		b.WriteString(indent(w.block(s.Else)))
		b.WriteString("    }\n")
		return
	}

	fmt.Fprintf(b, "    if (Object_truthy(%s)) {\n", cond)
	b.WriteString(indent(w.block(s.Then)))
	if elseEmpty {
		b.WriteString("    }\n")
		return
	}
	b.WriteString("    } else {\n")
	b.WriteString(indent(w.block(s.Else)))
	b.WriteString("    }\n")
}

func indent(body string) string {
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString("    ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

func (w *writer) expr(in convert.Expr) string {
	switch e := in.(type) {
	case *convert.IntegerLit:
		return fmt.Sprintf("integerLiteral(%d)", e.Value)

	case *convert.StringLit:
		return fmt.Sprintf("stringLiteral(runtime, STRING_LITERAL_LIST[%d])", w.literals.id(e.Value))

	case *convert.SymbolExpr:
		if op, ok := operatorTable[e.Name]; ok {
			w.operators[op.name] = true
		} else if reserved.IsBuiltin(e.Name) {
			w.builtins[e.Name] = true
		}
		return w.symRef(e.Name)

	case *convert.LambdaExpr:
		cName := w.defineClosure(e.Name, e.ArgNames, e.Body)
		return fmt.Sprintf("make_closure(pool, environment, %s)", cName)

	case *convert.ListConstructExpr:
		return fmt.Sprintf("List_construct(%d)", e.Capacity)

	case *convert.StructLiteralExpr:
		return fmt.Sprintf("Structure_construct(%d, %s, %s)", e.FieldCount, w.symRef(e.SymbolsVar), w.symRef(e.ValuesVar))

	case *convert.CallExpr:
		return fmt.Sprintf("call_closure(pool, environment, stack, %s, %d, %d)", w.expr(e.Fn), e.Argc, e.Meta.Line)

	default:
		ierr.Fail("cgen", "unhandled expression node")
		return ""
	}
}

// defineClosure renders a named def or lambda body as its own C function
// and returns the generated function's name. Arguments are popped in
// reverse push order, matching the runtime's calling convention; the
// reserved result variable is returned explicitly at the end.
func (w *writer) defineClosure(name string, argNames []string, body []convert.Stmt) string {
	k := w.counters[name]
	w.counters[name]++
	cName := fmt.Sprintf("furc_closure_%s_%d", sanitizeIdent(name), k)

	var b strings.Builder
	fmt.Fprintf(&b, "static Object *%s(EnvironmentPool *pool, Environment *outer, Stack *stack) {\n", cName)
	b.WriteString("    Environment *environment = Environment_create(pool, outer);\n")
	for i := len(argNames) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "    Environment_set(environment, SYMBOL_LIST[%d], Stack_pop(stack));\n", w.symbols.id(argNames[i]))
	}
	b.WriteString(w.block(body))
	fmt.Fprintf(&b, "    return %s;\n", w.symRef(reserved.Result))
	b.WriteString("}\n")

	w.funcs = append(w.funcs, function{cName: cName, body: b.String()})
	return cName
}

func sanitizeIdent(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	if b.Len() == 0 {
		return "anon"
	}
	return b.String()
}
