package vybiumzkvmcore_test

import (
	"errors"
	"testing"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/blocks"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
	vybiumzkvmcore "github.com/vybium/vybium-zkvm-core/pkg/vybiumzkvmcore"
)

// Assembling "push.0 push.1 push.135 push.0x7b" yields
// [Pad, Pad, Incr, Push(135), Push(123)]: zero and one are constant-folded
// into Pad/Pad+Incr, larger literals push their value directly.
func TestAssembleConstantPushLowering(t *testing.T) {
	block, err := vybiumzkvmcore.Assemble("push.0 push.1 push.135 push.0x7b")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	span, ok := block.(*blocks.Span)
	if !ok {
		t.Fatalf("Assemble did not return a *blocks.Span")
	}

	want := []ops.Op{
		ops.Simple(ops.Pad),
		ops.Simple(ops.Pad),
		ops.Simple(ops.Incr),
		ops.NewPush(field.New(135)),
		ops.NewPush(field.New(123)),
	}
	if len(span.Ops) != len(want) {
		t.Fatalf("got %d ops, want %d: %v", len(span.Ops), len(want), span.Ops)
	}
	for i, op := range span.Ops {
		if op != want[i] {
			t.Errorf("op[%d] = %v, want %v", i, op, want[i])
		}
	}
}

func TestAssembleInvalidOpSurfacesAssemblyError(t *testing.T) {
	_, err := vybiumzkvmcore.Assemble("push.adv.0")
	var assemblyErr *vybiumzkvmcore.AssemblyError
	if !errors.As(err, &assemblyErr) || assemblyErr.Code != vybiumzkvmcore.ErrInvalidParamWithReason {
		t.Fatalf("err = %v, want InvalidParamWithReason", err)
	}
}

func TestExecuteEndToEnd(t *testing.T) {
	program, err := vybiumzkvmcore.Assemble("push.2 push.3")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	trace, err := vybiumzkvmcore.Execute(program, vybiumzkvmcore.ProgramInputs{}, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(trace.Columns) == 0 {
		t.Fatalf("trace has no columns")
	}
	colLen := len(trace.Columns[0])
	for i, col := range trace.Columns {
		if len(col) != colLen {
			t.Fatalf("column %d has length %d, want %d", i, len(col), colLen)
		}
	}
	if trace.ProgramDigest != program.Hash() {
		t.Fatalf("ProgramDigest does not match program's own hash")
	}
}

func TestExecuteReportsExecutionError(t *testing.T) {
	onTrue := blocks.NewSpan([]ops.Op{ops.Simple(ops.Pad)})
	onFalse := blocks.NewSpan([]ops.Op{ops.Simple(ops.Incr)})
	split := blocks.NewSplit(onTrue, onFalse)

	inputs := vybiumzkvmcore.ProgramInputs{StackInit: []field.Element{field.New(7)}}
	_, err := vybiumzkvmcore.Execute(split, inputs, nil)

	var execErr *vybiumzkvmcore.ExecutionError
	if !errors.As(err, &execErr) || execErr.Code != vybiumzkvmcore.ErrNotBinaryValue {
		t.Fatalf("err = %v, want NotBinaryValue", err)
	}
}
