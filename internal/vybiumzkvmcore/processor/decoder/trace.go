package decoder

import (
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/hasher"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
)

// NumColumns is the decoder trace's column count: one address column,
// NumOpBits op-bit columns, one in_span flag column, HasherWidth hasher
// columns, and one group-count column.
const NumColumns = 1 + ops.NumOpBits + 1 + hasher.Width + 1

// haltRow decodes to Halt; Halt is numbered 0 in this implementation
// so its bit decomposition is all-zero, matching a simple zero-fill pad.
var haltRow = Row{Opcode: ops.Simple(ops.Halt).Opcode()}

// Finalize pads the decoder's rows to traceLen with Halt rows (address,
// in_span, hasher-state, and group-count all ZERO; op-bits the bits of the
// Halt opcode) and returns the resulting column-major matrix.
func (d *Decoder) Finalize(traceLen int) [][]field.Element {
	rows := make([]Row, traceLen)
	copy(rows, d.rows)
	for i := len(d.rows); i < traceLen; i++ {
		rows[i] = haltRow
	}

	cols := make([][]field.Element, NumColumns)
	for c := range cols {
		cols[c] = make([]field.Element, traceLen)
	}

	for i, row := range rows {
		col := 0
		cols[col][i] = row.Addr
		col++
		bits := row.OpBits()
		for b := 0; b < ops.NumOpBits; b++ {
			if bits[b] {
				cols[col][i] = field.One
			}
			col++
		}
		if row.InSpan {
			cols[col][i] = field.One
		}
		col++
		for h := 0; h < hasher.Width; h++ {
			cols[col][i] = row.HasherState[h]
			col++
		}
		cols[col][i] = row.GroupCount
	}
	return cols
}
