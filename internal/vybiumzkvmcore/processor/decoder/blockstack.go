// Package decoder tracks block nesting and builds the algebraic decoder
// trace: one row per block transition or primitive operation, together
// with the block-stack and span-cursor bookkeeping those rows depend on.
package decoder

import "github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"

// BlockInfo is one entry of the decoder's block stack: a block's own
// runtime address and the address of the block that contains it.
type BlockInfo struct {
	Addr       field.Element
	ParentAddr field.Element
}

// BlockStack is the decoder's LIFO record of in-progress blocks, used to
// recover a parent's address when a child block starts.
type BlockStack struct {
	items []BlockInfo
}

// NewBlockStack returns an empty block stack.
func NewBlockStack() *BlockStack {
	return &BlockStack{}
}

// Push records a new block at addr, returning the address of whichever
// block currently contains it (ZERO if the stack was empty, i.e. addr is
// the program root).
func (bs *BlockStack) Push(addr field.Element) field.Element {
	parent := field.Zero
	if len(bs.items) > 0 {
		parent = bs.items[len(bs.items)-1].Addr
	}
	bs.items = append(bs.items, BlockInfo{Addr: addr, ParentAddr: parent})
	return parent
}

// Pop removes and returns the innermost block. Popping an empty stack is an
// assembler/processor bug, not a user-input error, so it panics rather than
// returning an error.
func (bs *BlockStack) Pop() BlockInfo {
	if len(bs.items) == 0 {
		panic("decoder: block stack pop on empty stack")
	}
	top := bs.items[len(bs.items)-1]
	bs.items = bs.items[:len(bs.items)-1]
	return top
}

// Empty reports whether the block stack currently holds no in-progress
// blocks. It must be true exactly when the outermost block has ended.
func (bs *BlockStack) Empty() bool { return len(bs.items) == 0 }
