package vybiumzkvmcore

import "github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/processor"

// Execute runs program against inputs and returns its finished
// ExecutionTrace. cfg may be nil, in which case DefaultVMConfig() applies.
// A non-nil error is always an *ExecutionError and is fatal for the run;
// no trace is returned in that case.
func Execute(program CodeBlock, inputs ProgramInputs, cfg *VMConfig) (*ExecutionTrace, error) {
	p := processor.New(inputs, cfg)
	if err := p.ExecuteCodeBlock(program); err != nil {
		return nil, err
	}
	return &ExecutionTrace{
		Columns:       p.Finalize(),
		ProgramDigest: processor.ProgramDigest(program),
		StepLog:       p.StepLog,
	}, nil
}
