package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	ROM_SIZE     = 16 // Number of words in a ROM image.
	ROM_PER_LINE = 8  // Words per record when writing an image.
)

// Rom is a ROM image in the TD4 monitor format.
//
// Each record is a line 'S ADDR WORD WORD...', storing consecutive words
// starting at ADDR. Values may be written in any Go integer base, and
// may be separated by spaces or commas. Text after ';' is a comment.
type Rom struct {
	Data []uint8
}

var _ io.ReaderFrom = (*Rom)(nil)
var _ io.WriterTo = (*Rom)(nil)

// ReadFrom replaces the image with the records read from r.
func (rom *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	scanner := bufio.NewScanner(r)

	var lineno int
	var line string

	defer func() {
		if err != nil {
			err = &ErrImage{LineNo: lineno, Line: line, Err: err}
		}
	}()

	rom.Data = nil

	for scanner.Scan() {
		text := scanner.Text()
		n += int64(len(text)) + 1
		lineno += 1

		line = strings.TrimSpace(strings.Split(text, ";")[0])
		line = strings.ReplaceAll(line, ",", " ")
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		if strings.ToUpper(words[0]) != "S" || len(words) < 3 {
			err = ErrImageSyntax
			return
		}

		var address uint64
		address, err = strconv.ParseUint(words[1], 0, 8)
		if err != nil || address >= ROM_SIZE {
			err = ErrImageAddress
			return
		}

		for _, word := range words[2:] {
			if address >= ROM_SIZE {
				err = ErrImageAddress
				return
			}
			var value uint64
			value, err = strconv.ParseUint(word, 0, 8)
			if err != nil {
				err = ErrImageValue
				return
			}
			for len(rom.Data) <= int(address) {
				rom.Data = append(rom.Data, 0)
			}
			rom.Data[address] = uint8(value)
			address++
		}
	}

	err = scanner.Err()

	return
}

// WriteTo writes the image as records of up to ROM_PER_LINE words.
func (rom *Rom) WriteTo(w io.Writer) (n int64, err error) {
	for base := 0; base < len(rom.Data); base += ROM_PER_LINE {
		end := min(base+ROM_PER_LINE, len(rom.Data))

		record := fmt.Sprintf("S 0x%02X", base)
		for _, word := range rom.Data[base:end] {
			record += fmt.Sprintf(" 0x%02X", word)
		}
		record += "\n"

		var count int
		count, err = io.WriteString(w, record)
		n += int64(count)
		if err != nil {
			return
		}
	}

	return
}
