package sir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushDropElisionRemovesPairs(t *testing.T) {
	entries := []Entry{
		Instruction{Op: OpPush, Arg: SymArg{Name: "a"}},
		Instruction{Op: OpDrop},
		Instruction{Op: OpPushValue, Arg: IntArg{Value: 1}},
	}
	out := pushDropElision(entries)
	require.Len(t, out, 1)
	require.Equal(t, OpPushValue, out[0].(Instruction).Op)
}

func TestPushDropElisionLeavesPushValueAlone(t *testing.T) {
	entries := []Entry{
		Instruction{Op: OpPushValue, Arg: IntArg{Value: 1}},
		Instruction{Op: OpDrop},
	}
	out := pushDropElision(entries)
	require.Len(t, out, 2)
}

func TestUnusedPopToDropRewritesUnreadSymbols(t *testing.T) {
	entries := []Entry{
		Instruction{Op: OpPushValue, Arg: IntArg{Value: 1}},
		Instruction{Op: OpPop, Arg: SymArg{Name: "a"}},
		Instruction{Op: OpPushValue, Arg: IntArg{Value: 2}},
		Instruction{Op: OpPop, Arg: SymArg{Name: "b"}},
		Instruction{Op: OpPush, Arg: SymArg{Name: "b"}},
	}
	out := unusedPopToDrop(entries)
	require.Equal(t, OpDrop, out[1].(Instruction).Op)
	require.Equal(t, OpPop, out[3].(Instruction).Op)
}

func TestOptimizeElidesTrivialRebinding(t *testing.T) {
	// a = 1; b = a; b  ->  the trailing `push sym(b); drop` collapses,
	// which leaves b unread, so `pop sym(b)` becomes a drop; a is still
	// read, so its pop survives.
	entries := []Entry{
		Label{Name: "__main__"},
		Instruction{Op: OpPushValue, Arg: IntArg{Value: 1}},
		Instruction{Op: OpPop, Arg: SymArg{Name: "a"}},
		Instruction{Op: OpPush, Arg: SymArg{Name: "a"}},
		Instruction{Op: OpPop, Arg: SymArg{Name: "b"}},
		Instruction{Op: OpPush, Arg: SymArg{Name: "b"}},
		Instruction{Op: OpDrop},
		Instruction{Op: OpEnd},
	}
	out := Optimize(entries)
	var popCount int
	for _, e := range out {
		if ins, ok := e.(Instruction); ok && ins.Op == OpPop {
			popCount++
		}
	}
	require.Equal(t, 1, popCount)
}
