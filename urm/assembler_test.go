package urm

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var doubleListing = []string{
	"; double r2 into r1",
	".equ ACC r1",
	"start:  dec ACC start add  ; empty r1",
	"add:    dec r2 $(STATE+1) halt",
	"        inc ACC $(STATE+1)",
	"        (1, +, add)",
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0", asm.Equate["HALT"])
}

func TestAssembler_Double(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(doubleListing, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(map[string]int{"start": 1, "add": 2}, asm.Label)

	expected := []Statement{
		{3, 1, []string{"dec", "r1", "start", "add"}, MakeDec(1, 1, 2), nil},
		{4, 2, []string{"dec", "r2", "3", "halt"}, MakeDec(2, 3, 0), nil},
		{5, 3, []string{"inc", "r1", "4"}, MakeInc(1, 4), nil},
		{6, 4, []string{"+", "1", "add"}, MakeInc(1, 2), nil},
	}
	assert.Equal(expected, prog.Statements)

	n, err := prog.Number()
	assert.NoError(err)
	assert.Equal(0, number(t, "2^1470 * 3^1500 * 5^1250 * 7^50").Cmp(n))

	assert.NoError(prog.Table().Validate())

	count := 0
	for state, ins := range prog.Instructions() {
		count++
		assert.Equal(count, state)
		assert.True(expected[state-1].Instruction.Equal(ins))
	}
	assert.Equal(4, count)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("N", "3")
	asm.Predefine("LOOP", "s1")

	prog, err := asm.Parse(strings.NewReader("inc r$(N) LOOP\ndec r$(N*2) s$(LINENO) HALT"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.True(MakeInc(3, 1).Equal(prog.Statements[0].Instruction))
	assert.True(MakeDec(6, 2, 0).Equal(prog.Statements[1].Instruction))
}

func TestAssembler_LabelOnlyLine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("inc r1 next\nnext:\n\nfinal: dec r1 next halt"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(2, asm.Label["next"])
	assert.Equal(2, asm.Label["final"])
	assert.True(MakeInc(1, 2).Equal(prog.Statements[0].Instruction))
	assert.True(MakeDec(1, 2, 0).Equal(prog.Statements[1].Instruction))
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		lineno int
		err    error
	}){
		{"opcode", "frob r1 s1", 1, ErrOpcodeInvalid},
		{"target_missing", "inc r1", 1, ErrTargetMissing},
		{"extra_args", "inc r1 s1 s2", 1, ErrOpcodeExtraArgs},
		{"register_zero", "inc r0 s1", 1, ErrRegisterInvalid},
		{"target_negative", "inc r1 s-1", 1, ErrTargetInvalid},
		{"label_duplicate", "a: inc r1 a\na: inc r1 a", 2, ErrLabelDuplicate},
		{"equ_syntax", ".equ X", 1, ErrEquateSyntax},
		{"equ_duplicate", ".equ X 1\n.equ X 2", 2, ErrEquateDuplicate},
		{"tuple_open", "(1, +", 1, ErrOpcodeInvalid},
		{"tuple_short", "(1)", 1, ErrOpcodeInvalid},
		{"label_state", "s2: inc r1 halt", 1, ErrLabelReserved},
		{"label_number", "inc r1 halt\n7: inc r1 halt", 2, ErrLabelReserved},
		{"label_halt", "halt: inc r1 halt", 1, ErrLabelReserved},
		{"code_syntax", ".code", 1, ErrCodeSyntax},
		{"code_extra", ".code 1 2", 1, ErrCodeSyntax},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.text))
		assert.Nil(prog, entry.name)
		assert.True(errors.Is(err, entry.err), entry.name)

		var syn *ErrSyntax
		if assert.True(errors.As(err, &syn), entry.name) {
			assert.Equal(entry.lineno, syn.LineNo, entry.name)
		}
	}
}

func TestAssembler_Code(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"entry: .code 2^3*3*5^2",
		"gap:   .code 0",
		"       .code 7",
		"       inc r1 gap",
	}, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(map[string]int{"entry": 1, "gap": 2}, asm.Label)
	assert.True(MakeDec(3, 2, 0).Equal(prog.Statements[0].Instruction))
	assert.Equal(0, big.NewInt(600).Cmp(prog.Statements[0].Code))
	assert.Equal(0, prog.Statements[1].Code.Sign())
	assert.True(MakeInc(1, 2).Equal(prog.Statements[3].Instruction))
	assert.Nil(prog.Statements[3].Code)

	states := []int{}
	for state := range prog.Instructions() {
		states = append(states, state)
	}
	assert.Equal([]int{1, 4}, states)

	table := prog.Table()
	assert.Equal(4, table.Len())
	st, _ := table.State(2)
	assert.True(errors.Is(st.Err, ErrStateAbsent))
	st, _ = table.State(3)
	assert.True(errors.Is(st.Err, ErrMissingRegisterField))

	// State 1 targets state 2, which is absent.
	err = table.Validate()
	assert.True(errors.Is(err, ErrInvalidStateReference))

	n, err := prog.Number()
	assert.NoError(err)
	assert.Equal(0, number(t, "2^600 * 5^7 * 7^50").Cmp(n))

	_, err = asm.Parse(strings.NewReader(".code x"))
	assert.Error(err)
}

func TestAssembler_ParseErrors(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	_, err := asm.Parse(strings.NewReader("inc rx s1"))
	var pn ErrParseNumber
	assert.True(errors.As(err, &pn))
	assert.Equal(ErrParseNumber("x"), pn)

	_, err = asm.Parse(strings.NewReader("inc r1 nowhere"))
	var lm ErrLabelMissing
	assert.True(errors.As(err, &lm))
	assert.Equal(ErrLabelMissing("nowhere"), lm)

	_, err = asm.Parse(strings.NewReader(`inc r1 $("a")`))
	var pe ErrParseExpression
	assert.True(errors.As(err, &pe))

	_, err = asm.Parse(strings.NewReader("inc r1 $(1 +)"))
	assert.Error(err)
}

func TestListing_Golden(t *testing.T) {
	g := goldie.New(t)

	table := [](struct {
		name    string
		program string
	}){
		{"listing_double", "2^1470 * 3^1500 * 5^1250 * 7^50"},
		{"listing_invalid", "2^300 * 3^10 * 5^7"},
		{"listing_absent", "2^30 * 11"},
	}

	for _, entry := range table {
		decoded, err := DecodeProgram(number(t, entry.program))
		require.NoError(t, err, entry.name)
		g.Assert(t, entry.name, []byte(decoded.Listing()))
	}
}

func TestListing_Reassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program string
	}){
		{"double", "2^1470 * 3^1500 * 5^1250 * 7^50"},
		{"gap", "2^250 * 5^2"},
		{"absent", "2^30 * 11"},
		{"invalid", "2^300 * 3^10 * 5^7"},
	}

	for _, entry := range table {
		n := number(t, entry.program)
		decoded, err := DecodeProgram(n)
		if !assert.NoError(err, entry.name) {
			continue
		}

		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(decoded.Listing()))
		if !assert.NoError(err, entry.name) {
			continue
		}

		back, err := prog.Number()
		assert.NoError(err, entry.name)
		assert.Equal(n.String(), back.String(), entry.name)

		reassembled := prog.Table()
		assert.NoError(reassembled.Validate(), entry.name)
		assert.Equal(decoded.Listing(), reassembled.Listing(), entry.name)
	}
}
