// Package furc provides a Pure Go compiler for the fur language.
//
// furc compiles fur source through a pipeline of small, explicit stages —
// lex, parse, desugar, normalize, convert — down to either a stack IR
// (SIR) text listing or a single C translation unit meant to be linked
// against the fur runtime library.
//
// Example usage:
//
//	c, err := furc.CompileToC(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
package furc

import (
	"fmt"

	"github.com/fur-lang/furc/cgen"
	"github.com/fur-lang/furc/convert"
	"github.com/fur-lang/furc/desugar"
	"github.com/fur-lang/furc/internal/ierr"
	"github.com/fur-lang/furc/lex"
	"github.com/fur-lang/furc/normalize"
	"github.com/fur-lang/furc/parse"
	"github.com/fur-lang/furc/sir"
)

// InternalError is raised when a later compiler pass receives a tree shape
// an earlier pass should never have produced. It indicates a bug in furc
// itself, not a mistake in the input program.
type InternalError = ierr.InternalError

// CompileOptions configures compilation.
type CompileOptions struct {
	// Optimize runs the SIR peephole passes before emission.
	Optimize bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{Optimize: true}
}

// CompileToC compiles fur source to a single C translation unit using
// default options.
func CompileToC(source string) (out string, err error) {
	return CompileToCWithOptions(source, DefaultOptions())
}

// CompileToCWithOptions compiles fur source to C with custom options.
//
// The compilation pipeline is:
//  1. Lex source to tokens
//  2. Parse tokens to the surface tree
//  3. Desugar the surface tree (operators and control-flow sugar become
//     ordinary calls and if/else)
//  4. Normalize to A-normal form
//  5. Convert to the narrowed tree the backends consume
//  6. Render the converted tree as C
func CompileToCWithOptions(source string, opts CompileOptions) (out string, err error) {
	defer func() { err = recoverInternal(recover(), err) }()

	prog, err := convertProgram(source)
	if err != nil {
		return "", err
	}

	c, err := cgen.Write(prog)
	if err != nil {
		return "", fmt.Errorf("codegen error: %w", err)
	}
	return c, nil
}

// CompileToSIR compiles fur source to the textual SIR listing using
// default options.
func CompileToSIR(source string) (out string, err error) {
	return CompileToSIRWithOptions(source, DefaultOptions())
}

// CompileToSIRWithOptions compiles fur source to the textual SIR listing
// with custom options.
//
// The pipeline is the same as CompileToCWithOptions through step 5, then:
//  6. Generate SIR from the converted tree
//  7. Optimize SIR (if requested)
//  8. Print SIR as text
func CompileToSIRWithOptions(source string, opts CompileOptions) (out string, err error) {
	defer func() { err = recoverInternal(recover(), err) }()

	prog, err := convertProgram(source)
	if err != nil {
		return "", err
	}

	entries := sir.Generate(prog)
	if opts.Optimize {
		entries = sir.Optimize(entries)
	}
	return sir.Print(entries), nil
}

// Lex tokenizes fur source.
func Lex(source string) ([]lex.Token, error) {
	return lex.NewLexer(source).Tokenize()
}

// Parse lexes and parses fur source to the surface tree.
func Parse(source string) (*parse.Program, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, fmt.Errorf("lex error: %w", err)
	}
	prog, err := parse.NewParser(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return prog, nil
}

func convertProgram(source string) (prog *convert.Program, err error) {
	surface, err := Parse(source)
	if err != nil {
		return nil, err
	}
	d := desugar.Desugar(surface)
	n := normalize.Normalize(d)
	return convert.Convert(n), nil
}

// recoverInternal turns an *ierr.InternalError panic raised by a later
// pass into a regular error, and re-panics anything else.
func recoverInternal(r any, existing error) error {
	if r == nil {
		return existing
	}
	if ie, ok := r.(*ierr.InternalError); ok {
		return fmt.Errorf("%w", ie)
	}
	panic(r)
}
