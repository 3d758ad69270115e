// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package urm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/urm/internal/numfmt"
	"github.com/ezrec/urm/prime"
)

// Statement is a line of listing assembled into a program state.
type Statement struct {
	LineNo      int         // Source line number.
	State       int         // State index, 1 or more.
	Words       []string    // Words after equate and expression expansion.
	Instruction Instruction // Assembled instruction.
	Code        *big.Int    // Raw instruction code of a .code state; nil otherwise.
}

// code returns the instruction code of the statement.
func (stmt *Statement) code() *big.Int {
	if stmt.Code != nil {
		return stmt.Code
	}
	return stmt.Instruction.Code()
}

// Program is an assembled listing.
type Program struct {
	Statements []Statement
}

// Instructions iterates over the program states in order. States whose
// .code does not decode are skipped.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(state int, ins Instruction) bool) {
		for _, stmt := range prog.Statements {
			st := newState(stmt.State, nil, stmt.code())
			if st.Instruction == nil {
				continue
			}
			if !yield(stmt.State, *st.Instruction) {
				return
			}
		}
	}
}

// Table returns the unvalidated state table of the program.
func (prog *Program) Table() *StateTable {
	table := &StateTable{States: make([]State, 1, len(prog.Statements)+1)}
	for _, stmt := range prog.Statements {
		table.States = append(table.States, newState(stmt.State, nil, stmt.code()))
	}
	return table
}

// Number returns the program number, the product of the i-th prime raised
// to the code of state i.
func (prog *Program) Number() (n *big.Int, err error) {
	primes, err := prime.Sieve{}.First(len(prog.Statements))
	if err != nil {
		return
	}

	n = big.NewInt(1)
	for index, stmt := range prog.Statements {
		n.Mul(n, new(big.Int).Exp(primes[index], stmt.code(), nil))
	}

	return
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"STATE":  "1",
	"HALT":   "0",
}

// Assembler is a two pass assembler for URM listings.
//
// Each non-empty line assembles into the next program state:
//
//	[label:] inc REG NEXT
//	[label:] dec REG NONZERO ZERO
//	[label:] (REG, +, NEXT)
//	[label:] (REG, -, NONZERO, ZERO)
//
// Registers are written rN or as numbers. States are labels, sN, numbers
// or halt; labels may not take the form of the latter three.
// `.equ NAME VALUE` defines an equate, `.code CODE` assembles a state from
// its raw instruction code (zero for an absent state), $(expr) is evaluated
// at assembly time, and ';' starts a comment.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to state indexes.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
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

// $(...) with at most one level of nested parentheses.
var reParen = regexp.MustCompile(`\$\((?:[^()]|\([^()]*\))*\)`)

// parseLine expands a single line into words, recording labels and equates.
func (asm *Assembler) parseLine(line string, lineno int, state int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
	asm.Equate["STATE"] = fmt.Sprintf("%v", state)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

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

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if isStateName(label) {
			err = ErrLabelReserved
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = state
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// (REG, OP, TARGET...) tuple notation
	if strings.HasPrefix(words[0], "(") {
		tuple := strings.Join(words, "")
		if !strings.HasSuffix(tuple, ")") {
			err = ErrOpcodeInvalid
			return
		}
		fields := strings.Split(tuple[1:len(tuple)-1], ",")
		if len(fields) < 2 {
			err = ErrOpcodeInvalid
			return
		}
		words = append([]string{fields[1], fields[0]}, fields[2:]...)
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// register decodes a register word.
func (asm *Assembler) register(word string) (register int, err error) {
	word = strings.TrimPrefix(word, "r")
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value < 1 || value > int64(^uint(0)>>1) {
		err = ErrRegisterInvalid
		return
	}
	register = int(value)
	return
}

// isStateName returns true for words that target reads as a state index.
func isStateName(word string) bool {
	if word == "halt" {
		return true
	}

	_, err := strconv.ParseInt(strings.TrimPrefix(word, "s"), 0, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// target decodes a state word.
func (asm *Assembler) target(word string) (state int, err error) {
	state, ok := asm.Label[word]
	if ok {
		return
	}

	if word == "halt" {
		return 0, nil
	}

	text := word
	if len(word) > 1 && word[0] == 's' {
		text = word[1:]
	}

	value, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		err = ErrLabelMissing(word)
		return
	}

	if value < 0 || value > int64(^uint(0)>>1) {
		err = ErrTargetInvalid
		return
	}

	state = int(value)
	return
}

// parseCode assembles a .code state from its raw instruction code.
func (asm *Assembler) parseCode(words []string) (code *big.Int, ins Instruction, err error) {
	if len(words) != 2 {
		err = ErrCodeSyntax
		return
	}

	code, err = numfmt.Parse(words[1])
	if err != nil {
		return
	}

	st := newState(0, nil, code)
	if st.Instruction != nil {
		ins = *st.Instruction
	}
	return
}

// parseWords assembles an instruction from its words.
func (asm *Assembler) parseWords(words []string) (ins Instruction, err error) {
	switch words[0] {
	case "inc", "+":
		ins.Kind = OP_INC
	case "dec", "-":
		ins.Kind = OP_DEC
	default:
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) < 1+ins.Kind.Targets() {
		err = ErrTargetMissing
		return
	}
	if len(args) > 1+ins.Kind.Targets() {
		err = ErrOpcodeExtraArgs
		return
	}

	ins.Register, err = asm.register(args[0])
	if err != nil {
		return
	}

	for _, word := range args[1:] {
		var state int
		state, err = asm.target(word)
		if err != nil {
			return
		}
		ins.Targets = append(ins.Targets, state)
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	prog = &Program{}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("urm: %v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno, len(prog.Statements)+1)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		prog.Statements = append(prog.Statements, Statement{
			LineNo: lineno,
			State:  len(prog.Statements) + 1,
			Words:  words,
		})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Labels may be referenced before they are defined.
	for n := range prog.Statements {
		stmt := &prog.Statements[n]
		lineno = stmt.LineNo
		line = strings.Join(stmt.Words, " ")

		if stmt.Words[0] == ".code" {
			stmt.Code, stmt.Instruction, err = asm.parseCode(stmt.Words)
		} else {
			stmt.Instruction, err = asm.parseWords(stmt.Words)
		}
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Printf("urm: %v: %v", stateName(stmt.State), stmt.Instruction)
		}
	}

	return
}
