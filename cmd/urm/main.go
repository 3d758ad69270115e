// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"

	"github.com/ezrec/urm/emulator"
	"github.com/ezrec/urm/internal/numfmt"
	"github.com/ezrec/urm/translate"
	"github.com/ezrec/urm/urm"
)

var ErrStepLimit = errors.New("step limit reached")

// Options are the resolved command line settings.
type Options struct {
	Config
	Compile     string // Listing to assemble.
	Program     string // Program number.
	K           int    // Declared register count.
	Tuple       string // Register tuple number.
	Disassemble bool   // Print the listing, do not execute.
}

func main() {
	var opts Options
	var config string

	flag.StringVar(&config, "config", "", "urm.toml configuration file")
	flag.StringVar(&opts.Compile, "c", "", "listing file to assemble")
	flag.StringVar(&opts.Program, "n", "", "program number")
	flag.IntVar(&opts.K, "k", 1, "number of input registers")
	flag.StringVar(&opts.Tuple, "m", "1", "register tuple number")
	flag.BoolVar(&opts.Disassemble, "d", false, "print the decoded listing, do not execute")
	steps := flag.Int("steps", 0, "stop after this many steps (0: until halt)")
	sieve := flag.Int("sieve", 0, "largest prime the decoder may sieve")
	verbose := flag.Bool("v", false, "verbose mode")
	format := flag.String("f", "", "number output notation (dec, hex, b58)")
	lang := flag.String("lang", "", "message locale (default: system locale)")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(config) != 0 {
		cfg, err := LoadConfig(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
		opts.Config = cfg
	}

	// Flags override the configuration file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "steps":
			opts.MaxSteps = *steps
		case "sieve":
			opts.SieveLimit = *sieve
		case "v":
			opts.Verbose = *verbose
		case "f":
			opts.Format = *format
		case "lang":
			opts.Language = *lang
		}
	})

	err := execute(opts, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

// programNumber returns the program number from a listing or the -n flag.
func programNumber(opts Options) (n *big.Int, err error) {
	if len(opts.Compile) == 0 {
		if len(opts.Program) == 0 {
			err = errors.New("one of -c or -n is required")
			return
		}
		return numfmt.Parse(opts.Program)
	}

	inf, err := os.Open(opts.Compile)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &urm.Assembler{Verbose: opts.Verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", opts.Compile, err)
		return
	}

	return prog.Number()
}

// execute decodes, and unless disassembling, runs the program.
func execute(opts Options, out io.Writer) (err error) {
	if len(opts.Language) != 0 {
		tag := translate.SetLanguage(opts.Language)
		if opts.Verbose {
			log.Printf("urm: language %v", tag)
		}
	}

	style, ok := numfmt.ParseStyle(opts.Format)
	if !ok {
		return fmt.Errorf("unknown number format %q", opts.Format)
	}

	n, err := programNumber(opts)
	if err != nil {
		return
	}

	dec := &urm.Decoder{Verbose: opts.Verbose, SieveLimit: opts.SieveLimit}

	table, err := dec.Program(n)
	if err != nil {
		return
	}

	if opts.Disassemble {
		fmt.Fprintf(out, "; n = %v\n", numfmt.Format(n, style))
		fmt.Fprint(out, table.Listing())
		return
	}

	m, err := numfmt.Parse(opts.Tuple)
	if err != nil {
		return
	}

	regs, err := dec.Registers(m, opts.K)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator(table, regs)
	emu.Verbose = opts.Verbose

	for step, err := range emu.Steps() {
		if err != nil {
			return err
		}
		if opts.MaxSteps > 0 && step.Tick >= opts.MaxSteps && !emu.Halted() {
			fmt.Fprintf(out, "%v\n", emu.Registers)
			return fmt.Errorf("%w: %d steps, state %d", ErrStepLimit, step.Tick, emu.State)
		}
	}

	fmt.Fprintf(out, "%v\n", emu.Registers)
	fmt.Fprintf(out, "r1 = %v\n", numfmt.Format(emu.Registers.Get(1), style))

	return
}
