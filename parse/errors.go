package parse

import "fmt"

// SyntaxError is a fatal parser error carrying a source line for the
// diagnostic message required by spec.md's error table.
type SyntaxError struct {
	Kind    SyntaxErrorKind
	Message string
	Line    int
}

// SyntaxErrorKind distinguishes the parser error categories of spec.md §7.
type SyntaxErrorKind uint8

const (
	UnexpectedToken SyntaxErrorKind = iota
	ExpectedDelimiter
	ExpectedExpression
	AssignToBuiltin
)

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Line, e.Message)
}

func newUnexpectedToken(line int, lexeme string) *SyntaxError {
	return &SyntaxError{
		Kind:    UnexpectedToken,
		Message: fmt.Sprintf("unexpected token %q", lexeme),
		Line:    line,
	}
}

func newExpectedDelimiter(line int, expected, found string) *SyntaxError {
	return &SyntaxError{
		Kind:    ExpectedDelimiter,
		Message: fmt.Sprintf("expected %q, found %q", expected, found),
		Line:    line,
	}
}

func newExpectedExpression(line int, context string) *SyntaxError {
	return &SyntaxError{
		Kind:    ExpectedExpression,
		Message: fmt.Sprintf("expected expression %s", context),
		Line:    line,
	}
}

func newAssignToBuiltin(line int, name string) *SyntaxError {
	return &SyntaxError{
		Kind:    AssignToBuiltin,
		Message: fmt.Sprintf("cannot assign to builtin %q", name),
		Line:    line,
	}
}

// SyntaxErrors accumulates multiple recoverable syntax errors across a
// parse, the way wgsl.Parser gathers declaration-level errors before
// failing the whole parse.
type SyntaxErrors []*SyntaxError

func (es SyntaxErrors) Error() string {
	if len(es) == 0 {
		return "no errors"
	}
	if len(es) == 1 {
		return es[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", es[0].Error(), len(es)-1)
}
