package vybiumzkvmcore

import (
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/assembly"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/blocks"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/processor"
)

// FieldElement is the public alias for the VM's 64-bit prime-field type.
type FieldElement = field.Element

// Word is a group of four FieldElements: the unit of memory and
// advice-tape reads/writes.
type Word = field.Word

// Token is a single dot-separated instruction literal together with its
// source position, exposed for callers that want to drive the assembler
// one instruction at a time instead of through Assemble.
type Token = assembly.Token

// Op is a primitive operation the assembler lowers instructions into and
// the execution engine dispatches.
type Op = ops.Op

// CodeBlock is a node of the immutable program tree (Join/Split/Loop/
// Span/Proxy), exposed for callers that want to build block trees
// programmatically instead of through the assembler.
type CodeBlock = blocks.CodeBlock

// ProgramInputs bundles the stack and advice-tape contents a program
// executes against.
type ProgramInputs = processor.ProgramInputs

// VMConfig carries the execution engine's tunables: trace-length floor,
// advice-tape enforcement, and range-check/step-log instrumentation
// toggles.
type VMConfig = processor.Config

// DefaultVMConfig returns the VMConfig this module executes with unless a
// caller overrides it.
func DefaultVMConfig() *VMConfig { return processor.DefaultConfig() }

// ExecutionTrace is the finished output of running a program: the
// decoder's column-major trace matrix, the program's content digest
// (its root Merkle hash, exposed for a recursive-verification caller),
// and, when VMConfig.RecordStepLog was enabled, the debug step log.
type ExecutionTrace struct {
	// Columns is the decoder trace's column-major matrix: address, op-bit,
	// in-span, hasher-state, and group-count columns, one row per decoder
	// event (block start/end, respan, or executed span operation),
	// padded to a power-of-two length no smaller than
	// processor.MinTraceLen.
	Columns [][]FieldElement

	// ProgramDigest is the executed program's root Merkle hash.
	ProgramDigest Word

	// StepLog is the optional debug breadcrumb trail recorded when
	// VMConfig.RecordStepLog is set; nil otherwise.
	StepLog []processor.StepEntry
}
