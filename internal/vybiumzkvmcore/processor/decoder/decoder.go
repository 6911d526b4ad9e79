package decoder

import (
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/hasher"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
)

// Row is one event's worth of decoder trace columns:
// (addr, op_bits, in_span, hasher_state, group_count).
type Row struct {
	Addr        field.Element
	Opcode      uint64
	InSpan      bool
	HasherState [hasher.Width]field.Element
	GroupCount  field.Element
}

// OpBits decomposes the row's opcode into its NumOpBits binary digits,
// least-significant first.
func (r Row) OpBits() [ops.NumOpBits]bool {
	var bits [ops.NumOpBits]bool
	for i := range bits {
		bits[i] = (r.Opcode>>uint(i))&1 == 1
	}
	return bits
}

// spanCursor is the decoder's reading head over the current batch's
// op-groups.
type spanCursor struct {
	opGroups [hasher.Rate]field.Element
	groupIdx int
}

// Decoder builds the decoder trace row by row as the processor walks the
// code-block tree, and maintains the block stack and span cursor needed to
// compute each row's values.
type Decoder struct {
	Blocks *BlockStack

	rows []Row

	cursor     spanCursor
	groupCount int

	havePrevUserOp     bool
	prevWasSpanOrRespan bool
	prevHadImmediate    bool
	prevNewGroupZero    bool
	lastHasherReg0      field.Element
}

// New returns an empty Decoder with a fresh block stack.
func New() *Decoder {
	return &Decoder{Blocks: NewBlockStack()}
}

// Rows returns the rows appended so far.
func (d *Decoder) Rows() []Row { return d.rows }

// GroupCount returns the current span group-count column value; callers use
// this to assert it has reached zero before ending a span.
func (d *Decoder) GroupCount() int { return d.groupCount }

func (d *Decoder) appendRaw(row Row) {
	d.rows = append(d.rows, row)
	d.lastHasherReg0 = row.HasherState[0]
}

// AppendRow appends a control-flow transition row (Join/Split/End-style):
// in_span=0, group_count=0, hasher-state = h1 ‖ h2.
func (d *Decoder) AppendRow(addr field.Element, opcode uint64, h1, h2 field.Word) {
	var state [hasher.Width]field.Element
	copy(state[0:4], h1[:])
	copy(state[4:8], h2[:])
	d.appendRaw(Row{Addr: addr, Opcode: opcode, InSpan: false, HasherState: state})
	d.resetSpanCursorState()
}

// AppendSpanStart appends the row that begins a Span: hasher-state holds the
// first batch's op-groups (padded with the capacity's four zeros),
// group_count is the span's total group count, and in_span is 0 on this row
// (it flips to 1 starting with the first AppendUserOp call).
func (d *Decoder) AppendSpanStart(addr field.Element, firstBatchGroups [hasher.Rate]field.Element, numSpanGroups int) {
	var state [hasher.Width]field.Element
	copy(state[:hasher.Rate], firstBatchGroups[:])
	d.appendRaw(Row{Addr: addr, Opcode: ops.Simple(ops.Span).Opcode(), InSpan: false, HasherState: state, GroupCount: field.New(uint64(numSpanGroups))})
	d.cursor = spanCursor{opGroups: firstBatchGroups, groupIdx: 0}
	d.groupCount = numSpanGroups
	d.prevWasSpanOrRespan = true
	d.prevHadImmediate = false
	d.prevNewGroupZero = false
	d.havePrevUserOp = false
}

// AppendRespan appends the row that carries a Span's execution into its
// next batch: address and group_count are carried forward, hasher-state
// holds the new batch's op-groups, and the span cursor is re-seeded.
func (d *Decoder) AppendRespan(addr field.Element, batchGroups [hasher.Rate]field.Element) {
	var state [hasher.Width]field.Element
	copy(state[:hasher.Rate], batchGroups[:])
	d.appendRaw(Row{Addr: addr, Opcode: ops.Simple(ops.Respan).Opcode(), InSpan: true, HasherState: state, GroupCount: field.New(uint64(d.groupCount))})
	d.cursor = spanCursor{opGroups: batchGroups, groupIdx: 0}
	d.prevWasSpanOrRespan = true
	d.prevHadImmediate = false
	d.prevNewGroupZero = false
	d.havePrevUserOp = false
}

// currentOpGroup resolves the op-group value the next opcode should be
// decoded from: the previous row's first hasher register if it is
// non-zero, otherwise a fresh read of the next group from the span
// cursor. A fresh read advances the cursor, since it only happens once
// the previously current group has been fully decoded. Reads past the
// last batch slot yield ZERO: those are the empty groups padding Noops
// execute against.
func (d *Decoder) currentOpGroup() field.Element {
	if !d.havePrevUserOp {
		return d.cursor.opGroups[d.cursor.groupIdx]
	}
	if !d.lastHasherReg0.IsZero() {
		return d.lastHasherReg0
	}
	if d.cursor.groupIdx+1 >= len(d.cursor.opGroups) {
		return field.Zero
	}
	d.cursor.groupIdx++
	return d.cursor.opGroups[d.cursor.groupIdx]
}

// AppendUserOp appends one executed operation's row while in a span,
// peeling the op's code off the current group:
// new_op_group = (current_op_group - opcode) >> NumOpBits, computed with an
// unsigned integer shift on the element's canonical representation rather
// than field division.
func (d *Decoder) AppendUserOp(addr field.Element, op ops.Op) {
	curGroup := d.currentOpGroup()

	// A group that still holds opcodes carries the current one in its low
	// bits (every packable opcode is non-zero, so a populated group is
	// never ZERO). An already-empty group only ever decodes padding Noops
	// and stays empty.
	var newGroup field.Element
	if !curGroup.IsZero() {
		diff := curGroup.Sub(field.New(op.Opcode()))
		newGroup = field.New(diff.Value() >> ops.NumOpBits)
	}

	decrement := d.prevWasSpanOrRespan || d.prevHadImmediate || d.prevNewGroupZero
	if decrement && d.groupCount > 0 {
		d.groupCount--
	}

	var state [hasher.Width]field.Element
	state[0] = newGroup
	d.appendRaw(Row{Addr: addr, Opcode: op.Opcode(), InSpan: true, HasherState: state, GroupCount: field.New(uint64(d.groupCount))})

	if op.HasImmediate() {
		// The immediate occupies the group slot directly after the op's own
		// group; consume it now so the next fresh read lands on a real
		// opcode group.
		d.cursor.groupIdx++
	}

	d.prevWasSpanOrRespan = false
	d.prevHadImmediate = op.HasImmediate()
	d.prevNewGroupZero = newGroup.IsZero()
	d.havePrevUserOp = true
}

// AppendSpanEnd appends the row that closes a Span: hasher-state holds the
// span's content hash concatenated with a loop-body flag, and group_count
// is carried forward (it must already be zero).
func (d *Decoder) AppendSpanEnd(addr field.Element, spanHash field.Word, isLoopBody bool) {
	var state [hasher.Width]field.Element
	copy(state[0:4], spanHash[:])
	if isLoopBody {
		state[4] = field.One
	}
	d.appendRaw(Row{Addr: addr, Opcode: ops.Simple(ops.End).Opcode(), InSpan: false, HasherState: state, GroupCount: field.New(uint64(d.groupCount))})
	d.resetSpanCursorState()
}

func (d *Decoder) resetSpanCursorState() {
	d.cursor = spanCursor{}
	d.groupCount = 0
	d.havePrevUserOp = false
	d.prevWasSpanOrRespan = false
	d.prevHadImmediate = false
	d.prevNewGroupZero = false
}
