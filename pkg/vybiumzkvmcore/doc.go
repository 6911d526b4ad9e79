// Package vybiumzkvmcore is the public façade over the Vybium zkVM core:
// the assembler front-end and execution engine that lower a structured
// assembly source into a code-block tree and then interpret that tree
// while emitting an algebraic execution trace.
//
// # Quick start
//
//	program, err := vybiumzkvmcore.Assemble("push.2\npush.3\npush.env.sdepth")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	trace, err := vybiumzkvmcore.Execute(program, vybiumzkvmcore.ProgramInputs{}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
//   - pkg/vybiumzkvmcore/: public API (this package)
//   - internal/vybiumzkvmcore/: assembler, code-block tree, field arithmetic,
//     hasher, and execution engine (not importable outside this module)
//
// Out of scope (external collaborators): the command-line harness, the
// STARK prover/verifier backend, and Merkle-set advice structures. This
// package only builds and interprets the code-block tree and emits the
// decoder trace a STARK prover would consume.
package vybiumzkvmcore
