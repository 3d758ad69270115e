// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"iter"
	"log"
	"math/big"

	"github.com/ezrec/urm/urm"
)

const (
	STATE_HALT  = 0 // Reaching this state stops the machine.
	STATE_ENTRY = 1 // Execution starts here.
)

var bigOne = big.NewInt(1)

// Emulator state. State table + register file.
//
// The emulator has no step limit: a program that never reaches the halt
// state runs forever under Run. Callers that need a bound drive Tick or
// Steps themselves.
type Emulator struct {
	Verbose   bool             // If set, enables verbose logging.
	Table     *urm.StateTable  // Program being executed.
	Registers urm.RegisterFile // Current register values.
	State     int              // Current state.
	Ticks     int              // Instructions executed since reset.
}

// Step is a single executed transition.
type Step struct {
	Tick        int             // Tick count after the step.
	From        int             // State executed.
	To          int             // State reached.
	Instruction urm.Instruction // Instruction executed.
	Value       *big.Int        // Register value after the step.
}

// NewEmulator creates a new emulator for a state table, starting at the
// entry state with a copy of regs.
func NewEmulator(table *urm.StateTable, regs urm.RegisterFile) (emu *Emulator) {
	emu = &Emulator{
		Table: table,
	}

	emu.Reset(regs)

	return
}

// Reset the emulator to the entry state with a copy of regs.
func (emu *Emulator) Reset(regs urm.RegisterFile) {
	if regs == nil {
		regs = urm.RegisterFile{}
	}

	emu.Registers = regs.Clone()
	emu.State = STATE_ENTRY
	emu.Ticks = 0

	if emu.Verbose {
		log.Printf("emulator: reset %v", emu.Registers)
	}
}

// Halted returns true once the halt state is reached.
func (emu *Emulator) Halted() bool {
	return emu.State == STATE_HALT
}

// step executes the current instruction.
func (emu *Emulator) step() (step Step, err error) {
	var st *urm.State
	ok := false
	if emu.Table != nil {
		st, ok = emu.Table.State(emu.State)
	}
	if !ok || !st.Valid() || st.Instruction == nil {
		err = &ErrRuntime{State: emu.State, Err: ErrStateInvalid}
		return
	}

	ins := *st.Instruction
	err = ins.Validate()
	if err != nil {
		err = &ErrRuntime{State: emu.State, Err: err}
		return
	}

	if emu.Registers == nil {
		emu.Registers = urm.RegisterFile{}
	}

	value, ok := emu.Registers[ins.Register]
	if !ok {
		value = new(big.Int)
		emu.Registers[ins.Register] = value
	}

	step.From = emu.State
	step.Instruction = ins

	switch ins.Kind {
	case urm.OP_INC:
		value.Add(value, bigOne)
		emu.State = ins.Targets[0]
	case urm.OP_DEC:
		if value.Sign() == 0 {
			emu.State = ins.Targets[1]
		} else {
			value.Sub(value, bigOne)
			emu.State = ins.Targets[0]
		}
	}

	emu.Ticks++

	step.To = emu.State
	step.Tick = emu.Ticks
	step.Value = new(big.Int).Set(value)

	if emu.Verbose {
		log.Printf("emulator: %d: s%d %v r%d=%v -> s%d", step.Tick, step.From, ins, ins.Register, step.Value, step.To)
	}

	return
}

// Tick performs a single instruction of the emulator, returning true once
// the machine has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Halted() {
		done = true
		return
	}

	_, err = emu.step()
	if err != nil {
		return
	}

	done = emu.Halted()
	return
}

// Steps iterates over each executed transition until the machine halts or
// fails. Breaking out of the loop leaves the emulator at the next state.
func (emu *Emulator) Steps() iter.Seq2[Step, error] {
	return func(yield func(Step, error) bool) {
		for !emu.Halted() {
			step, err := emu.step()
			if !yield(step, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// Run executes until the halt state is reached, and may never return.
func (emu *Emulator) Run() (regs urm.RegisterFile, err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return nil, err
		}
	}

	regs = emu.Registers.Clone()
	return
}

// Run decodes the program number n and the k-register tuple m, then
// executes the program. Register 1 holds the conventional result.
// Run does not return if the program does not halt on its input.
func Run(n *big.Int, k int, m *big.Int) (regs urm.RegisterFile, err error) {
	dec := &urm.Decoder{}

	table, err := dec.Program(n)
	if err != nil {
		return
	}

	input, err := dec.Registers(m, k)
	if err != nil {
		return
	}

	regs, err = NewEmulator(table, input).Run()
	return
}
