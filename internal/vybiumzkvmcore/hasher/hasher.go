// Package hasher implements the fixed algebraic permutation used to derive
// code-block addresses and Merkle digests: a width-12, rate-8/capacity-4
// sponge with Poseidon-style full/partial rounds, deterministic round
// constants, and a Cauchy MDS matrix, fixed to the single width the
// decoder needs instead of being field/security-level generic.
package hasher

import (
	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
)

// Width is the sponge's full state width: the number of hasher-state
// columns the decoder trace carries.
const Width = 12

// Rate is the number of state elements absorbed/squeezed per call; the
// remaining Width-Rate elements are the capacity.
const Rate = 8

const (
	roundsFull    = 8
	roundsPartial = 22
	sboxPower     = 7
)

var (
	roundConstants [roundsFull + roundsPartial][Width]field.Element
	mdsMatrix      [Width][Width]field.Element
)

func init() {
	roundConstants = generateRoundConstants()
	mdsMatrix = generateCauchyMDS()
}

// generateRoundConstants derives round constants deterministically by
// chaining sha3 over a fixed domain-separated seed. The constants only
// need to be fixed, unstructured, and reproducible across builds; they
// carry no secret.
func generateRoundConstants() [roundsFull + roundsPartial][Width]field.Element {
	var constants [roundsFull + roundsPartial][Width]field.Element
	block := sha3.Sum256([]byte("vybium-zkvm-core/hasher/round-constants/v1"))
	for r := range constants {
		for i := 0; i < Width; i++ {
			block = sha3.Sum256(block[:])
			v := uint64(0)
			for b := 0; b < 8; b++ {
				v = v<<8 | uint64(block[b])
			}
			constants[r][i] = field.New(v)
		}
	}
	return constants
}

// generateCauchyMDS builds a Cauchy matrix, which is guaranteed to be an MDS
// matrix: mds[i][j] = 1 / (x_i - y_j) for distinct x_i, y_j.
func generateCauchyMDS() [Width][Width]field.Element {
	var m [Width][Width]field.Element
	for i := 0; i < Width; i++ {
		xi := field.New(uint64(i))
		for j := 0; j < Width; j++ {
			yj := field.New(uint64(Width + j))
			diff := xi.Sub(yj)
			inv, err := diff.Inverse()
			if err != nil {
				panic("hasher: degenerate Cauchy matrix entry")
			}
			m[i][j] = inv
		}
	}
	return m
}

func sbox(x field.Element) field.Element {
	x2 := x.Mul(x)
	x4 := x2.Mul(x2)
	x6 := x4.Mul(x2)
	return x6.Mul(x)
}

func applyMDS(state [Width]field.Element) [Width]field.Element {
	var out [Width]field.Element
	for i := 0; i < Width; i++ {
		acc := field.Zero
		for j := 0; j < Width; j++ {
			acc = acc.Add(mdsMatrix[i][j].Mul(state[j]))
		}
		out[i] = acc
	}
	return out
}

func fullRound(state [Width]field.Element, round int) [Width]field.Element {
	for i := range state {
		state[i] = sbox(state[i].Add(roundConstants[round][i]))
	}
	return applyMDS(state)
}

func partialRound(state [Width]field.Element, round int) [Width]field.Element {
	for i := range state {
		state[i] = state[i].Add(roundConstants[round][i])
	}
	state[0] = sbox(state[0])
	return applyMDS(state)
}

// Permute applies the fixed width-12 permutation to state and returns the
// result. It is a pure function: identical inputs always yield identical
// outputs, and distinct inputs yield distinct outputs with overwhelming
// probability.
func Permute(state [Width]field.Element) [Width]field.Element {
	round := 0
	for r := 0; r < roundsFull/2; r++ {
		state = fullRound(state, round)
		round++
	}
	for r := 0; r < roundsPartial; r++ {
		state = partialRound(state, round)
		round++
	}
	for r := 0; r < roundsFull/2; r++ {
		state = fullRound(state, round)
		round++
	}
	return state
}

// Digest permutes state and extracts its four-element content digest (the
// last four elements of the permuted state). It is pure: it never touches
// any address counter, so it is what code-block construction uses to
// compute a structural Merkle hash.
func Digest(state [Width]field.Element) field.Word {
	out := Permute(state)
	return field.Word{out[Width-4], out[Width-3], out[Width-2], out[Width-1]}
}

// DigestWords is the pure content-hash counterpart to Hasher.HashWords: it
// combines two children digests into their parent's digest without
// advancing any address counter.
func DigestWords(left, right field.Word) field.Word {
	var state [Width]field.Element
	copy(state[0:4], left[:])
	copy(state[4:8], right[:])
	return Digest(state)
}

// DigestGroups is the pure content-hash counterpart to Hasher.HashGroups,
// used to hash a single rate-sized block of op-groups.
func DigestGroups(groups [Rate]field.Element) field.Word {
	var state [Width]field.Element
	copy(state[:Rate], groups[:])
	return Digest(state)
}

// DigestGroupBatches absorbs successive rate-sized blocks of op-groups
// into one sponge, permuting between blocks, and returns the final
// content digest. Every block's contents fold into the result, so two
// inputs differing in any block hash differently. A single block reduces
// to DigestGroups.
func DigestGroupBatches(blocks [][Rate]field.Element) field.Word {
	var state [Width]field.Element
	for _, groups := range blocks {
		for i := 0; i < Rate; i++ {
			state[i] = state[i].Add(groups[i])
		}
		state = Permute(state)
	}
	return field.Word{state[Width-4], state[Width-3], state[Width-2], state[Width-1]}
}

// Hasher is the process-owned, stateful half of the subsystem: each call
// to Hash issues the next block address in the chain in addition to the
// content digest. Two Hash calls on identical state still yield distinct
// addresses, which is what lets a starting Join obtain a fresh address
// from hashing an all-zero state every time.
//
// Code-block content hashes (the Merkle hash a tree node precomputes once at
// construction, independent of any execution) must NOT go through this
// counter — they use the package-level pure Digest/DigestWords/DigestGroups
// functions instead, so that two structurally identical blocks always hash equal.
type Hasher struct {
	nextAddr field.Element
}

// New returns a Hasher with its address counter at zero.
func New() *Hasher {
	return &Hasher{nextAddr: field.Zero}
}

// Hash advances the address counter and returns (this call's address, the
// content digest of state).
func (h *Hasher) Hash(state [Width]field.Element) (field.Element, field.Word) {
	addr := h.nextAddr
	h.nextAddr = h.nextAddr.Add(field.One)
	return addr, Digest(state)
}

// HashWords is Hash over the concatenation of two digests, used to derive a
// Join/Split node's runtime start address from its children's content
// hashes.
func (h *Hasher) HashWords(left, right field.Word) (field.Element, field.Word) {
	var state [Width]field.Element
	copy(state[0:4], left[:])
	copy(state[4:8], right[:])
	return h.Hash(state)
}

// HashGroups is Hash over a Span's op-groups (padded with zero capacity
// elements), used to derive a Span's runtime start address from its first
// batch.
func (h *Hasher) HashGroups(groups [Rate]field.Element) (field.Element, field.Word) {
	var state [Width]field.Element
	copy(state[:Rate], groups[:])
	return h.Hash(state)
}
