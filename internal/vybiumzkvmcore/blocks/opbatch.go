// Package blocks implements the immutable code-block tree the assembler
// builds and the processor walks: Join, Split, Loop, and Span nodes, each
// precomputing its own Merkle hash at construction time, plus the op-group
// packing that turns a Span's flat operation list into OpBatch rows.
package blocks

import (
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/hasher"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
)

// shiftFactor is 2^NumOpBits, the multiplier by which each successive
// opcode's field-element weight grows within a group.
var shiftFactor = field.New(1 << ops.NumOpBits)

// OpBatch is one row's worth of packed operations: up to OpBatchSize
// op-groups, each a single field element holding up to MaxOpsPerGroup
// 7-bit opcodes, plus the per-group decoded-op counts the decoder's span
// cursor needs to know when to advance to the next group, and the actual
// operations (in order) that this batch's groups were packed from.
type OpBatch struct {
	ops       []ops.Op
	groups    [ops.OpBatchSize]field.Element
	opCounts  [ops.OpBatchSize]int
	numGroups int
}

// Ops returns the operations packed into this batch, in execution order.
func (b OpBatch) Ops() []ops.Op { return b.ops }

// Groups returns the batch's op-groups, unpadded (only the first NumGroups
// entries are meaningful).
func (b OpBatch) Groups() [ops.OpBatchSize]field.Element { return b.groups }

// OpCounts returns the decoded-op count for each group (only the first
// NumGroups entries are meaningful).
func (b OpBatch) OpCounts() [ops.OpBatchSize]int { return b.opCounts }

// NumGroups returns the number of groups actually populated in this batch,
// before any power-of-two padding the processor applies at execution time.
func (b OpBatch) NumGroups() int { return b.numGroups }

// packedGroup is an op-group under construction: a field element accumulator
// together with the count of opcodes folded into it so far.
type packedGroup struct {
	value field.Element
	count int
}

// packOps folds opsList into a flat sequence of op-groups, and records
// which global group index each operation's opcode landed in (needed to
// later split ops back out per OpBatch). Non-immediate operations are
// packed up to MaxOpsPerGroup per group; an operation that carries an
// immediate (only Push) never occupies the last slot of a group — if it
// would, the group is closed early — and is immediately followed by a
// group holding only its raw immediate value.
func packOps(opsList []ops.Op) (groups []field.Element, counts []int, groupOfOp []int) {
	groupOfOp = make([]int, len(opsList))
	cur := packedGroup{}

	flush := func() {
		if cur.count > 0 {
			groups = append(groups, cur.value)
			counts = append(counts, cur.count)
			cur = packedGroup{}
		}
	}

	for i, op := range opsList {
		if op.HasImmediate() {
			if cur.count >= ops.MaxOpsPerGroup-1 {
				flush()
			}
			groupOfOp[i] = len(groups)
			cur.value = cur.value.Add(field.New(op.Opcode()).Mul(weight(cur.count)))
			cur.count++
			flush()
			groups = append(groups, op.Value)
			counts = append(counts, 0)
			continue
		}

		if cur.count == ops.MaxOpsPerGroup {
			flush()
		}
		groupOfOp[i] = len(groups)
		cur.value = cur.value.Add(field.New(op.Opcode()).Mul(weight(cur.count)))
		cur.count++
	}
	flush()
	return groups, counts, groupOfOp
}

// weight returns shiftFactor^slot, the field-element weight of the opcode
// occupying the slot-th position (0-indexed) within a group.
func weight(slot int) field.Element {
	w := field.One
	for i := 0; i < slot; i++ {
		w = w.Mul(shiftFactor)
	}
	return w
}

// batchOps chunks a flat group/count sequence into OpBatches of at most
// OpBatchSize groups each, and partitions opsList back out per batch using
// groupOfOp. An empty opsList still yields a single empty batch, since a
// Span must expose at least one batch to hash and execute.
func batchOps(opsList []ops.Op, groups []field.Element, counts []int, groupOfOp []int) []OpBatch {
	if len(groups) == 0 {
		return []OpBatch{{}}
	}
	var batches []OpBatch
	opStart := 0
	for start := 0; start < len(groups); {
		end := start + ops.OpBatchSize
		if end > len(groups) {
			end = len(groups)
		}
		// An immediate group (op count 0) may not be split away from the
		// opcode group before it; cut the batch one group short when the
		// boundary would land between the two.
		if end < len(groups) && counts[end] == 0 {
			end--
		}
		var b OpBatch
		copy(b.groups[:], groups[start:end])
		copy(b.opCounts[:], counts[start:end])
		b.numGroups = end - start

		opEnd := opStart
		for opEnd < len(opsList) && groupOfOp[opEnd] < end {
			opEnd++
		}
		b.ops = opsList[opStart:opEnd]
		opStart = opEnd

		batches = append(batches, b)
		start = end
	}
	return batches
}

// batchGroupBlocks returns each batch's groups zero-padded to the
// sponge's rate, in batch order: the absorption blocks a Span's content
// hash chains over.
func batchGroupBlocks(batches []OpBatch) [][hasher.Rate]field.Element {
	blocks := make([][hasher.Rate]field.Element, len(batches))
	for i, b := range batches {
		copy(blocks[i][:], b.groups[:])
	}
	return blocks
}
