package processor

import "github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"

// Bitwise is the side table the prover consumes to certify bitwise
// operations. The current primitive-operation set contains no bitwise op,
// so this type carries no behavior today; it exists so Process owns
// exactly one instance of every subsystem, drivable or not.
type Bitwise struct{}

// NewBitwise returns an empty Bitwise side table.
func NewBitwise() *Bitwise { return &Bitwise{} }

// RangeChecker is the side table the prover consumes to certify that
// values fit within expected bit widths. Like Bitwise, no primitive
// operation in this instruction set drives it yet; Track exists so a
// future range-checked operation has somewhere to register a value.
type RangeChecker struct {
	tracked []field.Element
}

// NewRangeChecker returns an empty RangeChecker.
func NewRangeChecker() *RangeChecker { return &RangeChecker{} }

// Track records v as a value the prover should range-check.
func (r *RangeChecker) Track(v field.Element) {
	r.tracked = append(r.tracked, v)
}

// Tracked returns every value recorded so far.
func (r *RangeChecker) Tracked() []field.Element { return r.tracked }
