// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"ROM_SIZE":    fmt.Sprintf("%v", ROM_SIZE),
	"NIBBLE_MASK": fmt.Sprintf("%#v", NIBBLE_MASK),
}

// Assembler is a single pass macro assembler for the TD4 system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to ROM addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names.
var regMap = map[string]bool{
	"a": true,
	"b": true,
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	invert := false
	if len(word) > 0 && word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		if len(word) < 2 {
			err = ErrParseCharacter(word)
			return
		}
		err = ErrParseCharacter(word[1 : len(word)-1])
		return
	}
	value, err = strconv.ParseInt(word, 0, 33)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// immediate parses a 4-bit immediate. Negative values down to -15
// are accepted as their two's complement nibble.
func (asm *Assembler) immediate(word string) (imm Nibble, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if value < -(NIBBLE_SIZE-1) || value > NIBBLE_MASK {
		err = ErrImmediateRange(word)
		return
	}

	imm = MakeNibble(int(value))
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	// Operands may be separated by commas.
	line = strings.ReplaceAll(line, ",", " ")

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, ROM_SIZE)
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the current ROM address
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Codes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}

		if asm.currentIp() > ROM_SIZE {
			err = ErrProgramTooLong
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		ip, ok := asm.Label[label]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		if ip >= ROM_SIZE {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrImmediateRange(label)
			return
		}
		if len(op.Codes) < 1 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", label, op.LineNo, op.Words)
		}
		linked := &op.Codes[len(op.Codes)-1]
		*linked |= uint8(MakeNibble(ip))
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// register validates a register name.
func (asm *Assembler) register(word string) (reg string, err error) {
	reg = strings.ToLower(word)
	if !regMap[reg] {
		err = ErrRegisterInvalid
		return
	}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Codes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	argc := func(n int) error {
		switch {
		case len(words) < n:
			return ErrOpcodeValueMissing
		case len(words) > n:
			return ErrOpcodeExtraArgs
		}
		return nil
	}

	switch strings.ToLower(words[0]) {
	case "nop":
		if err = argc(1); err != nil {
			return
		}
		codes = append(codes, Encode(OP_ADD_A, 0))
	case "add":
		if err = argc(3); err != nil {
			return
		}
		var reg string
		reg, err = asm.register(words[1])
		if err != nil {
			return
		}
		var imm Nibble
		imm, err = asm.immediate(words[2])
		if err != nil {
			return
		}
		op := OP_ADD_A
		if reg == "b" {
			op = OP_ADD_B
		}
		codes = append(codes, Encode(op, imm))
	case "mov":
		if err = argc(3); err != nil {
			return
		}
		var dst string
		dst, err = asm.register(words[1])
		if err != nil {
			return
		}
		src, src_err := asm.register(words[2])
		if src_err == nil {
			switch {
			case dst == "a" && src == "b":
				codes = append(codes, Encode(OP_MOV_BA, 0))
			case dst == "b" && src == "a":
				codes = append(codes, Encode(OP_MOV_AB, 0))
			default:
				err = ErrRegisterInvalid
			}
			return
		}
		var imm Nibble
		imm, err = asm.immediate(words[2])
		if err != nil {
			return
		}
		op := OP_MOV_A
		if dst == "b" {
			op = OP_MOV_B
		}
		codes = append(codes, Encode(op, imm))
	case "in":
		if err = argc(2); err != nil {
			return
		}
		var reg string
		reg, err = asm.register(words[1])
		if err != nil {
			return
		}
		op := OP_IN_A
		if reg == "b" {
			op = OP_IN_B
		}
		codes = append(codes, Encode(op, 0))
	case "out":
		if err = argc(2); err != nil {
			return
		}
		if strings.ToLower(words[1]) == "b" {
			codes = append(codes, Encode(OP_OUT_B, 0))
			return
		}
		var imm Nibble
		imm, err = asm.immediate(words[1])
		if err != nil {
			return
		}
		codes = append(codes, Encode(OP_OUT_IM, imm))
	case "jmp", "jnc":
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		if err = argc(2); err != nil {
			return
		}
		op := OP_JMP
		if strings.ToLower(words[0]) == "jnc" {
			op = OP_JNC
		}
		imm, imm_err := asm.immediate(words[1])
		var pe ErrParseNumber
		switch {
		case imm_err == nil:
			codes = append(codes, Encode(op, imm))
		case errors.As(imm_err, &pe):
			// Resolved after the whole program is parsed.
			codes = append(codes, Encode(op, 0))
			label = words[1]
		default:
			err = imm_err
		}
	case ".byte":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value int64
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if value < 0 || value > 0xff {
				err = ErrImmediateRange(word)
				return
			}
			codes = append(codes, uint8(value))
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}
