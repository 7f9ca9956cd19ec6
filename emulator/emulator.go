// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a TD4 cpu from an assembled program or a ROM
// image, feeding its port from an I/O channel.
package emulator

import (
	"context"
	"errors"
	goio "io"
	"iter"
	"log"
	"time"

	"github.com/ezrec/td4/cpu"
	"github.com/ezrec/td4/io"
)

// Emulator state. CPU + ROM image + port channel.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape    io.Tape    // Tape IO channel.
	Rom     io.Rom     // ROM image, used when the program is empty.
	Channel io.Channel // Port device; defaults to the tape.

	Limit int // If non-zero, the number of ticks to run before done.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Channel = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return emu.Cpu.Defines()
}

// Reset loads the program (or, if there is none, the ROM image) into the
// cpu, and resets the cpu state.
func (emu *Emulator) Reset() (err error) {
	var binary []uint8
	if emu.Program != nil {
		binary = emu.Program.Binary()
	}

	if len(binary) == 0 {
		binary = emu.Rom.Data
	} else {
		emu.Rom.Data = binary
	}

	if len(binary) == 0 {
		err = cpu.ErrRomEmpty
		return
	}

	if emu.Channel == nil {
		err = io.ErrChannelInvalid
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Load(binary)
	emu.Cpu.Reset()
	emu.Channel.Rewind()

	return
}

// Address returns the address of the next instruction.
func (emu *Emulator) Address() cpu.Nibble {
	return emu.Cpu.Registers.Pc()
}

// LineNo returns the current line number for the executing opcode,
// or 0 if the address was not generated by the program.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Address())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// peek returns the op that the next tick will execute, or OP_UNDEFINED
// if it cannot be fetched or decoded.
func (emu *Emulator) peek() cpu.Op {
	word, err := emu.Cpu.Fetch()
	if err != nil {
		return cpu.OP_UNDEFINED
	}

	inst, err := emu.Cpu.Decode(word)
	if err != nil {
		return cpu.OP_UNDEFINED
	}

	return inst.Op
}

// Tick performs a single tick of the emulator.
// The channel is read only before an IN instruction, and written only after
// an OUT instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Limit > 0 && emu.Cpu.Ticks >= emu.Limit {
		done = true
		return
	}

	address := emu.Address()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: address, LineNo: lineno, Err: err}
		}
	}()

	op := emu.peek()

	switch op {
	case cpu.OP_IN_A, cpu.OP_IN_B:
		var value uint8
		value, err = emu.Channel.Receive()
		if errors.Is(err, goio.EOF) {
			err = nil
		}
		if err != nil {
			return
		}
		emu.Cpu.SetInput(cpu.MakeNibble(value))
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	switch op {
	case cpu.OP_OUT_B, cpu.OP_OUT_IM:
		err = emu.Channel.Send(uint8(emu.Cpu.Output()))
		if err != nil {
			return
		}
	}

	if emu.Limit > 0 && emu.Cpu.Ticks >= emu.Limit {
		done = true
	}

	return
}

// Run ticks the emulator at hz ticks per second until it is done, fails,
// or the context is cancelled. A hz of 0 runs unpaced.
func (emu *Emulator) Run(ctx context.Context, hz int) (err error) {
	var clock <-chan time.Time
	if hz > 0 {
		period := time.Second / time.Duration(hz)
		if period > 0 {
			ticker := time.NewTicker(period)
			defer ticker.Stop()
			clock = ticker.C
		}
	}

	if emu.Verbose {
		log.Printf("emulator: run at %v hz", hz)
	}

	for {
		if clock != nil {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			case <-clock:
			}
		} else if err = ctx.Err(); err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
