package processor

import (
	"fmt"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/blocks"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/hasher"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/processor/decoder"
)

// ProgramInputs bundles the material a Process is seeded with: the initial
// stack contents and the non-deterministic advice tape. Merkle advice sets
// belong to an external collaborator and have no representation here.
type ProgramInputs struct {
	StackInit  []field.Element
	AdviceTape []field.Element
}

// StepEntry is one breadcrumb of the optional StepLog debug ring.
type StepEntry struct {
	Cycle int
	Block blocks.Kind
	Addr  field.Element
}

// Process is the top-level orchestrator. It owns exactly one instance of
// each coupled subsystem (clock, decoder, stack, memory, advice provider,
// hasher, bitwise, range checker) and recursively walks a CodeBlock tree,
// dispatching primitive operations while the decoder appends rows to the
// trace. A Process that returns an error from ExecuteCodeBlock is left in
// an unspecified state and must be discarded; there is no partial-recovery
// path.
type Process struct {
	cfg *Config

	clock   int
	Decoder *decoder.Decoder
	Stack   *Stack
	Memory  *Memory
	Advice  *AdviceProvider
	Hasher  *hasher.Hasher
	Bitwise *Bitwise
	Ranges  *RangeChecker

	StepLog []StepEntry
}

// New builds a Process seeded with inputs and ready to execute a program
// rooted at any CodeBlock. cfg may be nil, in which case DefaultConfig()
// applies.
func New(inputs ProgramInputs, cfg *Config) *Process {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Process{
		cfg:     cfg,
		Decoder: decoder.New(),
		Stack:   NewStack(inputs.StackInit),
		Memory:  NewMemory(),
		Advice:  NewAdviceProvider(inputs.AdviceTape),
		Hasher:  hasher.New(),
		Bitwise: NewBitwise(),
		Ranges:  NewRangeChecker(),
	}
}

// tick advances the system clock by one cycle.
func (p *Process) tick() { p.clock++ }

func (p *Process) record(block blocks.Kind, addr field.Element) {
	if p.cfg.RecordStepLog {
		p.StepLog = append(p.StepLog, StepEntry{Cycle: p.clock, Block: block, Addr: addr})
	}
}

// ExecuteCodeBlock recursively descends block, dispatching by its Kind.
// It is the engine's single public entry point.
func (p *Process) ExecuteCodeBlock(block blocks.CodeBlock) error {
	switch b := block.(type) {
	case *blocks.Join:
		return p.executeJoin(b)
	case *blocks.Split:
		return p.executeSplit(b)
	case *blocks.Loop:
		return p.executeLoop(b)
	case *blocks.Span:
		return p.executeSpan(b, false)
	case *blocks.Proxy:
		return unexecutableCodeBlock(blocks.KindProxy)
	default:
		return unsupportedCodeBlock(block.Kind())
	}
}

// executeLoopBody runs block as a Loop's direct body, threading the
// loop-body flag through to a Span's closing End row when block is itself
// a Span; any other block kind is dispatched normally, since the flag only
// matters to the Span End row.
func (p *Process) executeLoopBody(block blocks.CodeBlock) error {
	if span, ok := block.(*blocks.Span); ok {
		return p.executeSpan(span, true)
	}
	return p.ExecuteCodeBlock(block)
}

// executeJoin runs first then second, bracketed by start_join/end_join.
func (p *Process) executeJoin(b *blocks.Join) error {
	addr := p.startJoin(b)
	if err := p.ExecuteCodeBlock(b.First); err != nil {
		return err
	}
	if err := p.ExecuteCodeBlock(b.Second); err != nil {
		return err
	}
	return p.endJoin(addr)
}

// startJoin executes a Noop (to advance the clock) and hashes an all-zero
// state purely to obtain a fresh block address, then pushes the block
// stack and appends the decoder's start-of-block row.
func (p *Process) startJoin(b *blocks.Join) field.Element {
	p.tick()
	addr, _ := p.Hasher.Hash([hasher.Width]field.Element{})
	p.Decoder.Blocks.Push(addr)
	p.Decoder.AppendRow(addr, ops.Simple(ops.Join).Opcode(), b.First.Hash(), b.Second.Hash())
	p.record(blocks.KindJoin, addr)
	return addr
}

func (p *Process) endJoin(addr field.Element) error {
	info := p.Decoder.Blocks.Pop()
	p.Decoder.AppendRow(info.Addr, ops.Simple(ops.End).Opcode(), field.ZeroWord, field.ZeroWord)
	return nil
}

// executeSplit peeks the branch condition, executes exactly one branch,
// and fails with NotBinaryValue if the condition is neither ZERO nor ONE.
func (p *Process) executeSplit(b *blocks.Split) error {
	cond := p.Stack.Peek()
	if !cond.Equal(field.Zero) && !cond.Equal(field.One) {
		return notBinaryValue(cond)
	}

	addr := p.startSplit(b)
	p.Stack.Drop()

	var branchErr error
	if cond.Equal(field.One) {
		branchErr = p.ExecuteCodeBlock(b.OnTrue)
	} else {
		branchErr = p.ExecuteCodeBlock(b.OnFalse)
	}
	if branchErr != nil {
		return branchErr
	}
	return p.endSplit(addr)
}

func (p *Process) startSplit(b *blocks.Split) field.Element {
	p.tick()
	addr, _ := p.Hasher.HashWords(b.OnTrue.Hash(), b.OnFalse.Hash())
	p.Decoder.Blocks.Push(addr)
	p.Decoder.AppendRow(addr, ops.Simple(ops.Split).Opcode(), b.OnTrue.Hash(), b.OnFalse.Hash())
	p.record(blocks.KindSplit, addr)
	return addr
}

func (p *Process) endSplit(addr field.Element) error {
	info := p.Decoder.Blocks.Pop()
	p.Decoder.AppendRow(info.Addr, ops.Simple(ops.End).Opcode(), field.ZeroWord, field.ZeroWord)
	return nil
}

// executeLoop peeks the entry condition, always records the loop's start
// row, and then repeats body for as long as the closing condition reads
// back ONE. A closing condition that is neither ZERO nor ONE fails with
// NotBinaryValue; one that reads ONE after the repeat check fails with
// LoopCorruptedCondition.
func (p *Process) executeLoop(b *blocks.Loop) error {
	cond := p.Stack.Peek()
	if !cond.Equal(field.Zero) && !cond.Equal(field.One) {
		return notBinaryValue(cond)
	}

	addr := p.startLoop(b, cond)

	if cond.Equal(field.One) {
		p.Stack.Drop()
		if err := p.executeLoopBody(b.Body); err != nil {
			return err
		}
		for p.Stack.Peek().Equal(field.One) {
			p.Stack.Drop()
			p.Decoder.AppendRow(addr, ops.Simple(ops.Respan).Opcode(), field.ZeroWord, field.ZeroWord)
			if err := p.executeLoopBody(b.Body); err != nil {
				return err
			}
		}
	} else {
		if err := p.execOp(ops.Simple(ops.Noop)); err != nil {
			return err
		}
	}

	closing := p.Stack.Peek()
	switch {
	case closing.Equal(field.Zero):
		p.Stack.Drop()
		return p.endLoop(addr)
	case closing.Equal(field.One):
		// The repeat-while above only exits once the top no longer reads
		// ONE, so reaching ONE here means the body left the stack corrupted.
		return loopCorruptedCondition(closing)
	default:
		return notBinaryValue(closing)
	}
}

func (p *Process) startLoop(b *blocks.Loop, cond field.Element) field.Element {
	p.tick()
	addr, _ := p.Hasher.HashWords(b.Body.Hash(), field.ZeroWord)
	p.Decoder.Blocks.Push(addr)
	p.Decoder.AppendRow(addr, ops.Simple(ops.Loop).Opcode(), b.Body.Hash(), field.ZeroWord)
	p.record(blocks.KindLoop, addr)
	return addr
}

func (p *Process) endLoop(addr field.Element) error {
	info := p.Decoder.Blocks.Pop()
	p.Decoder.AppendRow(info.Addr, ops.Simple(ops.End).Opcode(), field.ZeroWord, field.ZeroWord)
	return nil
}

// executeSpan runs every batch of b in order: the first batch directly,
// each subsequent batch after a respan row and a clock-advancing Noop,
// padding each batch's group count to the next power of two with Noops as
// it goes.
func (p *Process) executeSpan(b *blocks.Span, isLoopBody bool) error {
	addr := p.startSpan(b)

	if err := p.executeBatch(addr, b.Batches[0]); err != nil {
		return err
	}
	for _, batch := range b.Batches[1:] {
		p.Decoder.AppendRespan(addr, padGroups(batch.Groups(), batch.NumGroups()))
		p.tick()
		if err := p.executeBatch(addr, batch); err != nil {
			return err
		}
	}

	return p.endSpan(addr, b, isLoopBody)
}

func (p *Process) startSpan(b *blocks.Span) field.Element {
	p.tick()
	first := b.Batches[0]
	groups := padGroups(first.Groups(), first.NumGroups())
	addr, _ := p.Hasher.HashGroups(groups)
	p.Decoder.Blocks.Push(addr)
	p.Decoder.AppendSpanStart(addr, groups, b.NumGroups())
	p.record(blocks.KindSpan, addr)
	return addr
}

func (p *Process) endSpan(addr field.Element, b *blocks.Span, isLoopBody bool) error {
	if p.Decoder.GroupCount() != 0 {
		panic("processor: span ended with non-zero group count")
	}
	info := p.Decoder.Blocks.Pop()
	p.Decoder.AppendSpanEnd(info.Addr, b.Hash(), isLoopBody)
	return nil
}

// executeBatch walks a single OpBatch's operations in order, calling
// execOp for each one's effect and the decoder's AppendUserOp for its
// trace row — the decoder's own span cursor derives group boundaries
// purely from the sequence of ops it is handed, so the processor does not
// track op/group indices itself. Once every real operation has run, the
// batch's group count is padded up to the next power of two with Noops.
func (p *Process) executeBatch(spanAddr field.Element, batch blocks.OpBatch) error {
	immediates := 0
	for _, op := range batch.Ops() {
		if op.IsDecorator() {
			if err := p.execOp(op); err != nil {
				return err
			}
			continue
		}
		p.Decoder.AppendUserOp(spanAddr, op)
		if err := p.execOp(op); err != nil {
			return err
		}
		if op.HasImmediate() {
			immediates++
		}
	}

	// The decoder decrements the group count at most once per row, so the
	// row after an immediate-bearing op accounts for only one of the two
	// groups it moves past (the immediate's group and the next opcode
	// group, or, at the end of the batch, the immediate's group alone).
	// One Noop per immediate, run before group padding, makes up the
	// difference.
	for i := 0; i < immediates; i++ {
		p.Decoder.AppendUserOp(spanAddr, ops.Simple(ops.Noop))
		if err := p.execOp(ops.Simple(ops.Noop)); err != nil {
			return err
		}
	}

	target := nextPowerOfTwo(batch.NumGroups())
	for g := batch.NumGroups(); g < target; g++ {
		p.Decoder.AppendUserOp(spanAddr, ops.Simple(ops.Noop))
		if err := p.execOp(ops.Simple(ops.Noop)); err != nil {
			return err
		}
	}
	return nil
}

// padGroups zero-pads a batch's populated groups out to the sponge's rate,
// the shape both HashGroups and AppendSpanStart/AppendRespan expect.
func padGroups(groups [ops.OpBatchSize]field.Element, n int) [hasher.Rate]field.Element {
	var out [hasher.Rate]field.Element
	copy(out[:], groups[:n])
	return out
}

// execOp applies a single primitive operation's effect on the stack,
// memory, and advice tape. Control-flow and span-structural ops (Join,
// Split, Loop, Span, Respan, End, Halt) never reach here; they are
// dispatched by ExecuteCodeBlock/executeSpan instead.
func (p *Process) execOp(op ops.Op) error {
	p.tick()
	switch op.Kind {
	case ops.Noop:
		return nil
	case ops.Pad:
		p.Stack.Push(field.Zero)
		return nil
	case ops.Incr:
		p.Stack.Push(p.Stack.Pop().Add(field.One))
		return nil
	case ops.Drop:
		p.Stack.Drop()
		return nil
	case ops.MovUp4:
		p.Stack.MoveUp4()
		return nil
	case ops.Push:
		p.Stack.Push(op.Value)
		return nil
	case ops.Read:
		v, err := p.readAdvice()
		if err != nil {
			return err
		}
		p.Stack.Push(v)
		return nil
	case ops.ReadW:
		w, err := p.readAdviceWord()
		if err != nil {
			return err
		}
		p.Stack.PushWord(w)
		return nil
	case ops.LoadW:
		word, err := p.Memory.Read(p.Stack.Pop())
		if err != nil {
			return err
		}
		p.Stack.PushWord(word)
		return nil
	case ops.StoreW:
		addr := p.Stack.Pop()
		return p.Memory.Write(addr, p.Stack.PeekWord())
	case ops.SDepth:
		p.Stack.Push(p.Stack.Depth())
		return nil
	default:
		// Join/Split/Loop/Span/Respan/End/Halt are dispatched by
		// ExecuteCodeBlock/executeSpan and never reach execOp; seeing one
		// here is an assembler/processor bug, not a user-input error.
		panic(fmt.Sprintf("processor: %s cannot be executed as a primitive op", op))
	}
}

// readAdvice consumes one advice-tape element, honoring the
// EnforceAdviceTape toggle: when disabled, an exhausted tape yields ZERO
// instead of AdviceTapeEmpty.
func (p *Process) readAdvice() (field.Element, error) {
	v, err := p.Advice.Read()
	if err != nil {
		if !p.cfg.EnforceAdviceTape {
			return field.Zero, nil
		}
		return field.Zero, err
	}
	return v, nil
}

func (p *Process) readAdviceWord() (field.Word, error) {
	w, err := p.Advice.ReadWord()
	if err != nil {
		if !p.cfg.EnforceAdviceTape {
			return field.ZeroWord, nil
		}
		return field.ZeroWord, err
	}
	return w, nil
}

// Finalize consumes the Process and returns its finished decoder trace
// column matrix, padded up to the configured TraceLen (rounded up to the
// next power of two no smaller than MinTraceLen). The Process must not be
// used after Finalize returns.
func (p *Process) Finalize() [][]field.Element {
	traceLen := nextPowerOfTwo(p.cfg.TraceLen)
	if traceLen < MinTraceLen {
		traceLen = MinTraceLen
	}
	if len(p.Decoder.Rows()) > traceLen {
		traceLen = nextPowerOfTwo(len(p.Decoder.Rows()))
	}
	return p.Decoder.Finalize(traceLen)
}

// ProgramDigest returns root's precomputed Merkle hash, exposed as the
// program's content digest for recursive-verification callers.
func ProgramDigest(root blocks.CodeBlock) field.Word {
	return root.Hash()
}
