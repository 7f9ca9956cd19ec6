package cpu

import (
	"slices"
)

const (
	ROM_SIZE = NIBBLE_SIZE // Number of addressable ROM words.
)

// Rom is the instruction store.
type Rom struct {
	Data []uint8
}

// Load replaces the ROM contents with a copy of program.
func (rom *Rom) Load(program []uint8) {
	rom.Data = slices.Clone(program)
}

// Len returns the number of loaded words.
func (rom *Rom) Len() int {
	return len(rom.Data)
}

// Read returns the word at address.
func (rom *Rom) Read(address Nibble) (word uint8, err error) {
	if int(address) >= len(rom.Data) {
		err = &ErrAddressOutOfRange{Address: address, Length: len(rom.Data)}
		return
	}

	word = rom.Data[address]
	return
}
