package processor

import "github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"

// AdviceProvider is the VM's non-deterministic input tape: an ordered,
// consumed-once sequence of field elements fed to Read/ReadW.
type AdviceProvider struct {
	tape []field.Element
	pos  int
}

// NewAdviceProvider builds an AdviceProvider over tape, consumed front to
// back.
func NewAdviceProvider(tape []field.Element) *AdviceProvider {
	cp := make([]field.Element, len(tape))
	copy(cp, tape)
	return &AdviceProvider{tape: cp}
}

// Remaining returns the number of unconsumed elements left on the tape.
func (a *AdviceProvider) Remaining() int { return len(a.tape) - a.pos }

// Read consumes and returns the next element on the tape, failing with
// AdviceTapeEmpty if none remain.
func (a *AdviceProvider) Read() (field.Element, error) {
	if a.Remaining() < 1 {
		return field.Zero, adviceTapeEmpty()
	}
	v := a.tape[a.pos]
	a.pos++
	return v, nil
}

// ReadWord consumes and returns the next four elements as a Word, failing
// with AdviceTapeEmpty if fewer than four remain.
func (a *AdviceProvider) ReadWord() (field.Word, error) {
	if a.Remaining() < 4 {
		return field.ZeroWord, adviceTapeEmpty()
	}
	var w field.Word
	copy(w[:], a.tape[a.pos:a.pos+4])
	a.pos += 4
	return w, nil
}
