package processor

import "github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"

// MaxMemoryAddr is the highest addressable word slot. Addresses are field
// elements, but the addressable space is 32-bit: any canonical value above
// this bound is out of bounds rather than silently truncated.
const MaxMemoryAddr = (1 << 32) - 1

// Memory is the VM's addressable word store: sparse address -> 4-element
// word, with an absent read returning the zero word rather than erroring.
type Memory struct {
	words map[uint64]field.Word
}

// NewMemory returns an empty memory.
func NewMemory() *Memory {
	return &Memory{words: make(map[uint64]field.Word)}
}

// Read returns the word stored at addr, or the zero word if nothing has
// been written there yet. Addresses above MaxMemoryAddr fail with
// MemoryOutOfBounds.
func (m *Memory) Read(addr field.Element) (field.Word, error) {
	if addr.Value() > MaxMemoryAddr {
		return field.ZeroWord, memoryOutOfBounds(addr)
	}
	w, ok := m.words[addr.Value()]
	if !ok {
		return field.ZeroWord, nil
	}
	return w, nil
}

// Write stores word at addr, overwriting any previous value. Addresses
// above MaxMemoryAddr fail with MemoryOutOfBounds.
func (m *Memory) Write(addr field.Element, word field.Word) error {
	if addr.Value() > MaxMemoryAddr {
		return memoryOutOfBounds(addr)
	}
	m.words[addr.Value()] = word
	return nil
}
