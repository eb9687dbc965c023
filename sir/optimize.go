package sir

// Optimize applies the compiler's two linear peepholes, composed left to
// right: push/drop elision, then unused-pop-to-drop rewriting. Neither
// pass changes labels or branch targets.
func Optimize(entries []Entry) []Entry {
	return unusedPopToDrop(pushDropElision(entries))
}

// pushDropElision deletes every `push sym(X); drop` pair. Only push is
// eligible: push_value, call, list, and close all either allocate or may
// trap and must be preserved.
func pushDropElision(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for i := 0; i < len(entries); i++ {
		if i+1 < len(entries) && isPush(entries[i]) && isDrop(entries[i+1]) {
			i++
			continue
		}
		out = append(out, entries[i])
	}
	return out
}

func isPush(e Entry) bool {
	ins, ok := e.(Instruction)
	return ok && ins.Op == OpPush
}

func isDrop(e Entry) bool {
	ins, ok := e.(Instruction)
	return ok && ins.Op == OpDrop
}

// unusedPopToDrop computes the set of symbols read by any instruction
// other than pop, then rewrites every pop of a symbol outside that set
// into a drop. This is conservative: it treats the linear program as a
// whole, so it is unsound in the presence of dynamic name lookup (the
// source language has none).
func unusedPopToDrop(entries []Entry) []Entry {
	read := make(map[string]bool)
	for _, e := range entries {
		ins, ok := e.(Instruction)
		if !ok || ins.Op == OpPop {
			continue
		}
		if sym, ok := ins.Arg.(SymArg); ok {
			read[sym.Name] = true
		}
	}

	out := make([]Entry, len(entries))
	for i, e := range entries {
		ins, ok := e.(Instruction)
		if !ok || ins.Op != OpPop {
			out[i] = e
			continue
		}
		sym, ok := ins.Arg.(SymArg)
		if ok && !read[sym.Name] {
			out[i] = Instruction{Op: OpDrop}
		} else {
			out[i] = e
		}
	}
	return out
}
