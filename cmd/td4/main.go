// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/ezrec/td4/cpu"
	"github.com/ezrec/td4/emulator"
)

func main() {
	var compile string
	var rom string
	var save bool
	var disassemble bool
	var input string
	var output string
	var hz int
	var limit int
	var compat bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".td4 file to compile")
	flag.StringVar(&rom, "r", "", "ROM image file to use")
	flag.BoolVar(&save, "s", false, "Save compiled program to ROM image, do not execute")
	flag.BoolVar(&disassemble, "d", false, "Disassemble program, do not execute")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.IntVar(&hz, "hz", 0, "Clock rate in ticks per second (0 is unpaced)")
	flag.IntVar(&limit, "n", 0, "Stop after this many ticks (0 is forever)")
	flag.BoolVar(&compat, "compat", false, "Execute unassigned opcodes as ADD.A")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Limit = limit
	emu.Cpu.Compat = compat

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if save {
		if len(compile) == 0 || len(rom) == 0 {
			log.Fatalf("%v: -s requires -c and -r", os.Args[0])
		}

		ouf, err := os.Create(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		defer ouf.Close()

		emu.Rom.Data = emu.Program.Binary()
		_, err = emu.Rom.WriteTo(ouf)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		return
	}

	// Load a ROM image, if there is no compiled program.
	if len(compile) == 0 && len(rom) != 0 {
		inf, err := os.Open(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		defer inf.Close()

		_, err = emu.Rom.ReadFrom(inf)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if disassemble {
		for address, text := range cpu.Disassemble(emu.Rom.Data) {
			fmt.Printf("%X: %v\n", uint8(address), text)
		}
		return
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
		if term.IsTerminal(int(os.Stdout.Fd())) {
			emu.Channel = &leds{Tape: &emu.Tape, Display: os.Stdout}
			defer fmt.Println()
		}
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx, hz)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}

	if verbose {
		log.Printf("%v", emu.Cpu.String())
	}
}
