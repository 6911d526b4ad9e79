package vybiumzkvmcore

import (
	"strings"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/assembly"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/blocks"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
)

// Assemble tokenizes source — whitespace-separated instruction literals,
// one or more per line, `#` starting a line comment — and lowers each
// instruction into a single flat Span. Control-flow block construction
// (Join, Split, Loop) is outside the assembler's mnemonic set and is left
// to callers building a CodeBlock tree directly out of Assemble'd Spans.
func Assemble(source string) (CodeBlock, error) {
	var sink []ops.Op
	pos := 0
	for _, line := range strings.Split(source, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, word := range strings.Fields(line) {
			tok := assembly.NewToken(word, pos)
			if err := assembly.Parse(&sink, tok); err != nil {
				return nil, err
			}
			pos++
		}
	}
	return blocks.NewSpan(sink), nil
}
