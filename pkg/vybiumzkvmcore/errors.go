package vybiumzkvmcore

import (
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/assembly"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/processor"
)

// AssemblyError is returned by Assemble when a source instruction fails to
// parse or validate. Parse errors are recoverable by higher layers; the
// sink's partial contents must be discarded.
type AssemblyError = assembly.AssemblyError

// AssemblyErrorCode identifies which member of the assembler's error
// taxonomy an AssemblyError represents.
type AssemblyErrorCode = assembly.ErrorCode

const (
	ErrInvalidOp              = assembly.ErrInvalidOp
	ErrUnexpectedToken        = assembly.ErrUnexpectedToken
	ErrInvalidParam           = assembly.ErrInvalidParam
	ErrInvalidParamWithReason = assembly.ErrInvalidParamWithReason
	ErrMissingParam           = assembly.ErrMissingParam
	ErrExtraParam             = assembly.ErrExtraParam
	ErrAssemblyNotImplemented = assembly.ErrNotImplemented
)

// ExecutionError is returned by Execute when a run-time failure is hit.
// It is always fatal for the run that raised it.
type ExecutionError = processor.ExecutionError

// ExecutionErrorCode identifies which member of the execution engine's
// error taxonomy an ExecutionError represents.
type ExecutionErrorCode = processor.ErrorCode

const (
	ErrNotBinaryValue         = processor.ErrNotBinaryValue
	ErrUnexecutableCodeBlock  = processor.ErrUnexecutableCodeBlock
	ErrUnsupportedCodeBlock   = processor.ErrUnsupportedCodeBlock
	ErrAdviceTapeEmpty        = processor.ErrAdviceTapeEmpty
	ErrMemoryOutOfBounds      = processor.ErrMemoryOutOfBounds
	ErrLoopCorruptedCondition = processor.ErrLoopCorruptedCondition
)
