// Command whythonc lexes and compiles Why source files into .cwhy
// bytecode files, and can optionally run the result immediately.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Robert-M-Lucas/whython-6/compiler"
	"github.com/Robert-M-Lucas/whython-6/lexer"
	"github.com/Robert-M-Lucas/whython-6/runtime"
)

var (
	runAfterCompile = flag.Bool("run", false, "Execute each program immediately after compiling it")
)

func init() {
	flag.Parse()
}

func main() {
	args := os.Args[len(os.Args)-flag.NArg():]

	if len(args) == 0 {
		fmt.Println("Usage: whythonc [-run] <file 1> [file 2] [file 3] ... [file N]")
		return
	}

	for _, path := range args {
		if err := compileFile(path); err != nil {
			fmt.Println(path+":", err)
			os.Exit(1)
		}
	}
}

func compileFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines, err := lexer.Lex(path, string(source))
	if err != nil {
		return err
	}

	memory, err := compiler.Compile(lines)
	if err != nil {
		return err
	}

	outPath := outputPath(path)
	if err := os.WriteFile(outPath, memory.Bytes(), 0644); err != nil {
		return err
	}

	if !*runAfterCompile {
		return nil
	}

	machine, closer, err := runtime.LoadFile(outPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := machine.Run(); err != nil {
		return err
	}
	return nil
}

// outputPath applies spec.md section 6's file suffix rule: the
// compiled file sits next to the source, named after it with the
// pointer width (in bits) baked into the suffix, since the wire format
// itself is not cross-platform portable.
func outputPath(sourcePath string) string {
	dir := filepath.Dir(sourcePath)
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	name := fmt.Sprintf("%s - %d.cwhy", base, compiler.USizeBytes*8)
	return filepath.Join(dir, name)
}
