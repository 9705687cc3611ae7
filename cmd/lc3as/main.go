// Command lc3as assembles LC-3 assembly source into an LC-3 object
// image.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lookbusy1344/lc3-toolchain/assembler"
	"github.com/lookbusy1344/lc3-toolchain/config"
	"github.com/lookbusy1344/lc3-toolchain/object"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		outPath     = flag.String("o", "", "Output object file, when not given as the second positional argument (default: <input base>.obj)")
		listing     = flag.Bool("listing", false, "Print an address/word listing of the assembled program")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("lc3as %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() < 1 || flag.NArg() > 2 {
		printHelp()
		if *showHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3as: %v\n", err)
		os.Exit(1)
	}

	// spec.md §6: "<tool> <input> <output>" — the second positional
	// argument is the output path, taking precedence over -o.
	inPath := flag.Arg(0)
	out := *outPath
	if flag.NArg() == 2 {
		out = flag.Arg(1)
	}

	if err := assemble(inPath, out, *listing || cfg.Assembler.EmitListing, cfg.Assembler.WarningsAsErrors); err != nil {
		fmt.Fprintf(os.Stderr, "lc3as: %v\n", err)
		os.Exit(1)
	}
}

func assemble(inPath, outPath string, listing, warningsAsErrors bool) error {
	src, err := os.ReadFile(inPath) // #nosec G304 -- user-supplied source path
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	prog, err := assembler.Parse(inPath, string(src))
	if err != nil {
		return err
	}

	if prog.Warnings.HasWarnings() {
		if warningsAsErrors {
			return prog.Warnings.AsError()
		}
		fmt.Fprint(os.Stderr, prog.Warnings.PrintWarnings())
	}

	words, err := assembler.Encode(prog)
	if err != nil {
		return err
	}

	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
		outPath = base + ".obj"
	}

	out, err := os.Create(outPath) // #nosec G304 -- user-supplied output path
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := object.Encode(out, words); err != nil {
		return err
	}

	if listing {
		printListing(words, prog.Symbols)
	}

	fmt.Printf("lc3as: wrote %s (%d words)\n", outPath, len(words))
	return nil
}

func printListing(words []uint16, symbols *assembler.SymbolTable) {
	if len(words) == 0 {
		return
	}
	origin := words[0]
	for i, w := range words[1:] {
		fmt.Printf("%04X: %04X\n", origin+uint16(i), w)
	}

	fmt.Println("\nSymbol table:")
	symbols.Each(func(label string, address uint16, _ assembler.Position) {
		fmt.Printf("%-32s %04X\n", label, address)
	})
}

func printHelp() {
	fmt.Println(`lc3as - LC-3 assembler

Usage:
  lc3as [flags] <source.asm> [output.obj]

  output.obj defaults to <source base>.obj, or the -o flag, when omitted.

Flags:
  -o <file>     Output object file, when not given positionally
  -listing      Print an address/word listing of the assembled program
  -version      Show version information
  -help         Show this help`)
}
