// Command lc3vm loads and runs an LC-3 object image.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/lc3-toolchain/config"
	"github.com/lookbusy1344/lc3-toolchain/ioprovider"
	"github.com/lookbusy1344/lc3-toolchain/loader"
	"github.com/lookbusy1344/lc3-toolchain/vm"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

// defaultImagePath is used when no image argument is given.
const defaultImagePath = "./bin/out.obj"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		maxCycles   = flag.Uint64("max-cycles", 0, "Maximum CPU cycles before forced halt (default: from config)")
		showStats   = flag.Bool("stats", false, "Print execution statistics after HALT")
		traceFile   = flag.String("trace", "", "Write a per-instruction execution trace to this file (default: from config)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("lc3vm %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() > 1 {
		printHelp()
		if *showHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		os.Exit(1)
	}

	limit := cfg.Execution.MaxCycles
	if *maxCycles != 0 {
		limit = *maxCycles
	}

	imagePath := defaultImagePath
	if flag.NArg() == 1 {
		imagePath = flag.Arg(0)
	}

	trace := *traceFile
	if trace == "" {
		trace = cfg.Execution.TraceFile
	}

	if err := run(imagePath, limit, *showStats || cfg.Execution.EnableStats, trace); err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		os.Exit(1)
	}
}

func run(objPath string, maxCycles uint64, showStats bool, traceFile string) error {
	f, err := os.Open(objPath) // #nosec G304 -- user-supplied object path
	if err != nil {
		return fmt.Errorf("open %s: %w", objPath, err)
	}
	defer f.Close()

	term, err := ioprovider.NewTerminalIO()
	if err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	defer term.Close()

	machine := vm.New(term)

	if traceFile != "" {
		tf, err := os.Create(traceFile) // #nosec G304 -- user-supplied trace path
		if err != nil {
			return fmt.Errorf("create trace file %s: %w", traceFile, err)
		}
		defer tf.Close()
		machine.Trace = vm.NewTrace(tf, 0)
	}

	if err := loader.Load(machine, f); err != nil {
		return err
	}
	machine.Reg.SetPC(machine.LoadedOrigin)

	runErr := machine.Run(maxCycles)

	term.Close()

	if showStats {
		printStats(&machine.Stats)
	}

	return runErr
}

func printStats(stats *vm.Statistics) {
	fmt.Printf("\ncycles: %d\ninstructions: %d\n", stats.Cycles, stats.Instructions)
	for op, n := range stats.ByOpcode {
		fmt.Printf("  opcode %#x: %d\n", op, n)
	}
	for vec, n := range stats.TrapCalls {
		fmt.Printf("  trap %#x: %d\n", vec, n)
	}
}

func printHelp() {
	fmt.Println(`lc3vm - LC-3 virtual machine

Usage:
  lc3vm [flags] [program.obj]

  program.obj defaults to ./bin/out.obj when omitted.

Flags:
  -max-cycles <n>   Maximum CPU cycles before forced halt (default: from config)
  -stats            Print execution statistics after HALT
  -trace <file>     Write a per-instruction execution trace to this file
  -version          Show version information
  -help             Show this help`)
}
