package blocks

import (
	"fmt"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/hasher"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
)

// Kind identifies which of the five code-block variants a CodeBlock is.
type Kind uint8

const (
	KindJoin Kind = iota
	KindSplit
	KindLoop
	KindSpan
	KindProxy
)

func (k Kind) String() string {
	switch k {
	case KindJoin:
		return "join"
	case KindSplit:
		return "split"
	case KindLoop:
		return "loop"
	case KindSpan:
		return "span"
	case KindProxy:
		return "proxy"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// CodeBlock is a node of the immutable program tree. Every node precomputes
// its Merkle hash at construction time; the tree never mutates afterward, so
// Hash is cheap to call repeatedly and structurally identical subtrees
// always compare equal.
type CodeBlock interface {
	Kind() Kind
	Hash() field.Word
}

// Join executes First followed by Second.
type Join struct {
	First, Second CodeBlock
	hash          field.Word
}

// NewJoin builds a Join node, deriving its hash from its two children's
// content digests: hash(left_hash ‖ right_hash).
func NewJoin(first, second CodeBlock) *Join {
	return &Join{First: first, Second: second, hash: hasher.DigestWords(first.Hash(), second.Hash())}
}

func (j *Join) Kind() Kind      { return KindJoin }
func (j *Join) Hash() field.Word { return j.hash }

// Split executes OnTrue when the branch condition is ONE, OnFalse when ZERO.
type Split struct {
	OnTrue, OnFalse CodeBlock
	hash            field.Word
}

// NewSplit builds a Split node. Like Join, it hashes its two branch
// digests side by side, but it also sets the first capacity element to the
// Split opcode, so a Split never hashes equal to a Join over the same
// children.
func NewSplit(onTrue, onFalse CodeBlock) *Split {
	var state [hasher.Width]field.Element
	t, f := onTrue.Hash(), onFalse.Hash()
	copy(state[0:4], t[:])
	copy(state[4:8], f[:])
	state[hasher.Rate] = field.New(ops.Simple(ops.Split).Opcode())
	return &Split{OnTrue: onTrue, OnFalse: onFalse, hash: hasher.Digest(state)}
}

func (s *Split) Kind() Kind      { return KindSplit }
func (s *Split) Hash() field.Word { return s.hash }

// Loop repeatedly executes Body while the top-of-stack condition is ONE.
type Loop struct {
	Body CodeBlock
	hash field.Word
}

// NewLoop builds a Loop node. Its hash is derived from the body's digest
// paired with the zero word, mirroring Join/Split's two-word input shape
// with no second child to supply.
func NewLoop(body CodeBlock) *Loop {
	return &Loop{Body: body, hash: hasher.DigestWords(body.Hash(), field.ZeroWord)}
}

func (l *Loop) Kind() Kind      { return KindLoop }
func (l *Loop) Hash() field.Word { return l.hash }

// Span is a leaf block: a straight-line sequence of primitive operations,
// packed into OpBatches.
type Span struct {
	Ops     []ops.Op
	Batches []OpBatch
	hash    field.Word
}

// NewSpan packs opsList into op-groups and batches, and derives the span's
// content hash by absorbing every batch's groups through the sponge in
// order, so the hash binds the whole span and not just its first batch.
func NewSpan(opsList []ops.Op) *Span {
	groups, counts, groupOfOp := packOps(opsList)
	batches := batchOps(opsList, groups, counts, groupOfOp)
	return &Span{
		Ops:     opsList,
		Batches: batches,
		hash:    hasher.DigestGroupBatches(batchGroupBlocks(batches)),
	}
}

func (s *Span) Kind() Kind      { return KindSpan }
func (s *Span) Hash() field.Word { return s.hash }

// NumGroups returns the total number of populated op-groups across all of
// the span's batches: the value the decoder's group-count column starts
// from.
func (s *Span) NumGroups() int {
	n := 0
	for _, b := range s.Batches {
		n += b.NumGroups()
	}
	return n
}

// Proxy is a placeholder for a block whose body is not linked into the
// tree; it carries only the hash an unresolved reference is known to have.
// Executing a Proxy is always an error (UnexecutableCodeBlock).
type Proxy struct {
	hash field.Word
}

// NewProxy builds a Proxy carrying a precomputed hash, typically copied
// from the real block it stands in for.
func NewProxy(hash field.Word) *Proxy {
	return &Proxy{hash: hash}
}

func (p *Proxy) Kind() Kind      { return KindProxy }
func (p *Proxy) Hash() field.Word { return p.hash }
