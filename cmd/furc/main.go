// Command furc is the fur language compiler CLI.
//
// Usage:
//
//	furc <source-path>
//
// furc reads a .fur source file, writes the generated C translation unit
// alongside it as <source-path>.c, and prints the optimized SIR listing to
// stdout.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fur-lang/furc"
)

const sourceExt = ".fur"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	inputPath := os.Args[1]
	if strings.ToLower(filepath.Ext(inputPath)) != sourceExt {
		fmt.Fprintf(os.Stderr, "Error: expected a %s source file, got %s\n", sourceExt, inputPath)
		os.Exit(1)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	c, err := furc.CompileToC(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}

	sirText, err := furc.CompileToSIR(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}

	outputPath := inputPath + ".c"
	if err := os.WriteFile(outputPath, []byte(c), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(sirText)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: furc <source-path.fur>\n")
}
