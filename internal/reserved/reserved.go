// Package reserved implements the compiler's reserved-name protocol: the
// rules that decide which identifiers are compiler-internal and therefore
// forbidden as the target of a user assignment.
package reserved

import (
	"strconv"
	"strings"
)

// Builtins are the names the compiler knows about a priori; their
// implementation is supplied by the runtime library linked into emitted C.
var Builtins = map[string]bool{
	"print": true,
	"pow":   true,
}

// IsCompilerName reports whether name matches the reserved-name protocol:
// it is a fresh temporary ($<digits>), a dunder-wrapped internal symbol
// (__add__, __field__, ...), or simply contains a '$'.
func IsCompilerName(name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(name, "$") {
		return true
	}
	return strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4
}

// IsBuiltin reports whether name is a builtin the runtime provides.
func IsBuiltin(name string) bool {
	return Builtins[name]
}

// IsAssignable reports whether the user program may assign to name.
func IsAssignable(name string) bool {
	return !IsBuiltin(name) && !IsCompilerName(name)
}

// Temp formats a normalization temporary for counter n: $0, $1, ...
func Temp(n int) string {
	return "$" + strconv.Itoa(n)
}

// Result is the reserved variable name that a lambda or function body's
// normalized form assigns its implicit return value to.
const Result = "$result"

// AbsenceOfValue is the reserved variable naming the runtime's
// absence-of-value singleton, used to initialize an if-expression's
// result variable before either branch has run.
const AbsenceOfValue = "$none"

// Anonymous is the name Convert assigns to a lambda with no
// programmer-supplied name.
const Anonymous = "__lambda"
