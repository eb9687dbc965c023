package sir

import "strings"

// Print renders entries as SIR text: each label preceded by a blank line
// (the file's leading blank line is stripped) followed by its
// instructions indented four spaces. drop and return render without an
// argument; any other instruction with a nil argument renders "nil".
func Print(entries []Entry) string {
	var b strings.Builder
	first := true

	for _, e := range entries {
		switch v := e.(type) {
		case Label:
			if !first {
				b.WriteByte('\n')
			}
			first = false
			b.WriteString(v.Name)
			b.WriteString(":\n")

		case Instruction:
			first = false
			b.WriteString("    ")
			b.WriteString(v.Op.String())
			if v.Arg != nil {
				b.WriteByte(' ')
				b.WriteString(v.Arg.String())
			} else if v.Op != OpDrop && v.Op != OpReturn {
				b.WriteString(" nil")
			}
			b.WriteByte('\n')
		}
	}

	return b.String()
}
