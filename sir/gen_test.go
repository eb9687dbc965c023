package sir

import (
	"testing"

	"github.com/fur-lang/furc/convert"
	"github.com/fur-lang/furc/desugar"
	"github.com/fur-lang/furc/lex"
	"github.com/fur-lang/furc/normalize"
	"github.com/fur-lang/furc/parse"
	"github.com/stretchr/testify/require"
)

func generateSource(t *testing.T, src string) []Entry {
	t.Helper()
	toks, err := lex.NewLexer(src).Tokenize()
	require.NoError(t, err)
	surface, err := parse.NewParser(toks).Parse()
	require.NoError(t, err)
	prog := convert.Convert(normalize.Normalize(desugar.Desugar(surface)))
	return Generate(prog)
}

func TestGenerateEndsWithMainLabelAndEnd(t *testing.T) {
	entries := generateSource(t, "x = 1")
	var sawMain bool
	for _, e := range entries {
		if l, ok := e.(Label); ok && l.Name == "__main__" {
			sawMain = true
		}
	}
	require.True(t, sawMain)

	last, ok := entries[len(entries)-1].(Instruction)
	require.True(t, ok)
	require.Equal(t, OpEnd, last.Op)
}

func TestGenerateFnDefHoistsClosureBeforeMain(t *testing.T) {
	entries := generateSource(t, "def add(a, b) do a + b end\nadd(1, 2)")

	mainIdx := -1
	labelIdx := -1
	for i, e := range entries {
		switch v := e.(type) {
		case Label:
			if v.Name == "__main__" {
				mainIdx = i
			} else if labelIdx == -1 {
				labelIdx = i
			}
		}
	}
	require.NotEqual(t, -1, labelIdx)
	require.Less(t, labelIdx, mainIdx)
}

func TestGenerateIfElseInline(t *testing.T) {
	entries := generateSource(t, "x = if y do 1 else 2 end")

	var sawJumpIfFalse, sawElseLabel, sawEndifLabel bool
	for _, e := range entries {
		switch v := e.(type) {
		case Instruction:
			if v.Op == OpJumpIfFalse {
				sawJumpIfFalse = true
			}
		case Label:
			if len(v.Name) > 6 && v.Name[:6] == "__else" {
				sawElseLabel = true
			}
			if len(v.Name) > 7 && v.Name[:7] == "__endif" {
				sawEndifLabel = true
			}
		}
	}
	require.True(t, sawJumpIfFalse)
	require.True(t, sawElseLabel)
	require.True(t, sawEndifLabel)
}

func TestGenerateListAppendUsesReservedBuiltin(t *testing.T) {
	entries := generateSource(t, "x = [1, 2]")
	var sawAppendCall bool
	for i, e := range entries {
		ins, ok := e.(Instruction)
		if !ok || ins.Op != OpPush {
			continue
		}
		if sym, ok := ins.Arg.(SymArg); ok && sym.Name == "__append__" {
			if next, ok := entries[i+1].(Instruction); ok && next.Op == OpCall {
				sawAppendCall = true
			}
		}
	}
	require.True(t, sawAppendCall)
}
