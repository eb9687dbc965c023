package furc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileToSIRHelloWorld(t *testing.T) {
	out, err := CompileToSIR("print('Hello, world')")
	require.NoError(t, err)
	require.Contains(t, out, "__main__:")
	require.Contains(t, out, "end")
}

func TestCompileToCHelloWorld(t *testing.T) {
	out, err := CompileToC("print('Hello, world')")
	require.NoError(t, err)
	require.Contains(t, out, "int main(void)")
	require.Contains(t, out, "<stdio.h>")
}

func TestCompileToSIRFnDefAndCall(t *testing.T) {
	out, err := CompileToSIR("def add(a, b) do a + b end\nadd(3, 4)")
	require.NoError(t, err)
	require.Contains(t, out, "add$0:")
	require.Contains(t, out, "close add$0")
}

func TestCompileReportsSyntaxError(t *testing.T) {
	_, err := CompileToSIR("x = ")
	require.Error(t, err)
}

func TestCompileToSIRWithoutOptimization(t *testing.T) {
	withOpt, err := CompileToSIRWithOptions("a = 1\nb = a\nb", CompileOptions{Optimize: true})
	require.NoError(t, err)
	withoutOpt, err := CompileToSIRWithOptions("a = 1\nb = a\nb", CompileOptions{Optimize: false})
	require.NoError(t, err)
	require.NotEqual(t, withOpt, withoutOpt)
}
