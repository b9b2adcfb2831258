// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
)

// patchList collects repeated -p flags.
type patchList []string

func (pl *patchList) String() string {
	return strings.Join(*pl, " ")
}

func (pl *patchList) Set(value string) error {
	*pl = append(*pl, value)
	return nil
}

func main() {
	var program string
	var input string
	var output string
	var ascii bool
	var verbose bool
	var patches patchList

	flag.StringVar(&program, "c", "", "Program file to run")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&ascii, "a", false, "ASCII tapes")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(&patches, "p", "Memory patch addr=value, may be repeated")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(program) == 0 {
		log.Fatalf("%v: -c program is required", os.Args[0])
	}

	inf, err := os.Open(program)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}
	defer inf.Close()

	prog, err := cpu.ParseProgram(inf)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose

	for _, text := range patches {
		patch, err := emu.ParsePatch(text)
		if err != nil {
			log.Fatalf("-p %v: %v", text, err)
		}
		emu.Patches = append(emu.Patches, patch)
	}

	in := &io.Tape{Ascii: ascii}
	if input == "-" {
		in.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		in.Input = inf
	}
	emu.Input = in

	out := &io.Tape{Ascii: ascii}
	if output == "-" {
		out.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		out.Output = ouf
	}
	emu.Output = out

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			log.Fatal(err)
		}
	}

	if verbose {
		log.Printf("%v: %d ticks\n%v", program, emu.Cpu.Ticks, emu.Cpu.String())
	}
}
