package sir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintLeadingLabelHasNoBlankLineBefore(t *testing.T) {
	out := Print([]Entry{
		Label{Name: "__main__"},
		Instruction{Op: OpPushValue, Arg: IntArg{Value: 1}},
		Instruction{Op: OpDrop},
		Instruction{Op: OpEnd},
	})
	require.Equal(t, "__main__:\n    push_value 1\n    drop\n    end nil\n", out)
}

func TestPrintBlankLineBeforeSubsequentLabels(t *testing.T) {
	out := Print([]Entry{
		Label{Name: "add$0"},
		Instruction{Op: OpReturn},
		Label{Name: "__main__"},
		Instruction{Op: OpEnd},
	})
	require.Equal(t, "add$0:\n    return\n\n__main__:\n    end nil\n", out)
}

func TestPrintSymAndStrArgs(t *testing.T) {
	out := Print([]Entry{
		Label{Name: "__main__"},
		Instruction{Op: OpPush, Arg: SymArg{Name: "x"}},
		Instruction{Op: OpPushValue, Arg: StrArg{Value: "hi\n"}},
	})
	require.Equal(t, "__main__:\n    push sym(x)\n    push_value \"hi\\n\"\n", out)
}
