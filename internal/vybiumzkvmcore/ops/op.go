// Package ops defines the primitive VM operations the assembler lowers
// instructions into and the execution core dispatches: the flat instruction
// set that sits beneath the Join/Split/Loop/Span code-block tree.
package ops

import (
	"fmt"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
)

// NumOpBits is the number of bits an opcode occupies when packed into an
// op-group field element.
const NumOpBits = 7

// OpBatchSize is the maximum number of op-groups in a single OpBatch.
const OpBatchSize = 8

// MaxOpsPerGroup is the maximum number of non-immediate opcodes that fit in
// one op-group: floor(63 bits usable / NumOpBits), chosen so that 9 opcodes
// of NumOpBits bits (63 bits) never wrap a field whose modulus exceeds 2^63.
const MaxOpsPerGroup = 9

// Kind identifies which primitive operation an Op represents.
type Kind uint8

const (
	Noop Kind = iota
	Pad
	Incr
	Drop
	MovUp4
	Push
	Read
	ReadW
	LoadW
	StoreW
	SDepth
	Join
	Split
	Loop
	Span
	Respan
	End
	Halt
)

var kindNames = map[Kind]string{
	Noop: "noop", Pad: "pad", Incr: "incr", Drop: "drop", MovUp4: "movup4",
	Push: "push", Read: "read", ReadW: "readw", LoadW: "loadw", StoreW: "storew",
	SDepth: "sdepth", Join: "join", Split: "split", Loop: "loop", Span: "span",
	Respan: "respan", End: "end", Halt: "halt",
}

// opcodes assigns every Kind a value that fits in NumOpBits bits. The
// numbering must be total, injective, and stable; Halt is 0 so that trace
// padding rows decode to it with all-zero op bits. Every packable opcode is
// non-zero, which is what lets the decoder treat a ZERO op-group as empty.
var opcodes = map[Kind]uint64{
	Halt: 0, Noop: 1, Pad: 2, Incr: 3, Drop: 4, MovUp4: 5,
	Read: 6, ReadW: 7, LoadW: 8, StoreW: 9, SDepth: 10,
	Push: 11, Join: 12, Split: 13, Loop: 14, Span: 15, Respan: 16, End: 17,
}

// Op is a single primitive operation. Value only carries meaning when Kind
// is Push, which is the only primitive that carries an immediate.
type Op struct {
	Kind  Kind
	Value field.Element
}

// NewPush builds a Push operation carrying the given immediate value.
func NewPush(v field.Element) Op { return Op{Kind: Push, Value: v} }

// Simple builds an Op for any Kind that carries no immediate.
func Simple(k Kind) Op { return Op{Kind: k} }

// String renders the operation's mnemonic, including its immediate for Push.
func (o Op) String() string {
	if o.Kind == Push {
		return fmt.Sprintf("push(%s)", o.Value)
	}
	return kindNames[o.Kind]
}

// Opcode returns the operation's numeric opcode.
func (o Op) Opcode() uint64 { return opcodes[o.Kind] }

// HasImmediate reports whether the operation carries a constant that
// consumes an extra op-group slot (true only for Push).
func (o Op) HasImmediate() bool { return o.Kind == Push }

// IsDecorator reports whether the operation is executed but never decoded
// into the trace. No primitive in this instruction set is a decorator; the
// predicate exists so batch execution can treat decorators uniformly if a
// future assembler front-end introduces one.
func (o Op) IsDecorator() bool { return false }
