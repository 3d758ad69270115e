package urm

// Kind is an instruction operation.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	OP_INC = Kind(0) // +
	OP_DEC = Kind(1) // -
)

// Mnemonic returns the assembler name of the operation.
func (kind Kind) Mnemonic() string {
	switch kind {
	case OP_INC:
		return "inc"
	case OP_DEC:
		return "dec"
	}
	return kind.String()
}

// Targets returns the number of state targets the operation carries.
func (kind Kind) Targets() int {
	switch kind {
	case OP_INC:
		return 1
	case OP_DEC:
		return 2
	}
	return 0
}
