package hasher

import (
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
)

func TestDigestIsDeterministic(t *testing.T) {
	var state [Width]field.Element
	for i := range state {
		state[i] = field.New(uint64(i + 1))
	}
	d1 := Digest(state)
	d2 := Digest(state)
	if d1 != d2 {
		t.Errorf("Digest is not deterministic: %v != %v", d1, d2)
	}
}

func TestDigestDistinguishesInputs(t *testing.T) {
	var a, b [Width]field.Element
	b[Width-1] = field.One
	if Digest(a) == Digest(b) {
		t.Errorf("distinct inputs collided")
	}
}

func TestHasherAddressesAreFresh(t *testing.T) {
	h := New()
	var zero [Width]field.Element
	addr1, d1 := h.Hash(zero)
	addr2, d2 := h.Hash(zero)
	if addr1 == addr2 {
		t.Errorf("hashing identical state twice produced the same address: %v", addr1)
	}
	if d1 != d2 {
		t.Errorf("hashing identical state twice produced different digests")
	}
}

func TestHashWordsMatchesDigestWords(t *testing.T) {
	left := field.Word{field.New(1), field.New(2), field.New(3), field.New(4)}
	right := field.Word{field.New(5), field.New(6), field.New(7), field.New(8)}

	h := New()
	_, got := h.HashWords(left, right)
	want := DigestWords(left, right)
	if got != want {
		t.Errorf("HashWords digest = %v, want %v", got, want)
	}
}

func TestDigestGroupBatchesChains(t *testing.T) {
	var a, b [Rate]field.Element
	a[0] = field.New(3)
	b[0] = field.New(5)

	single := DigestGroupBatches([][Rate]field.Element{a})
	if single != DigestGroups(a) {
		t.Errorf("single-block DigestGroupBatches = %v, want DigestGroups result %v", single, DigestGroups(a))
	}

	ab := DigestGroupBatches([][Rate]field.Element{a, b})
	if ab == single {
		t.Errorf("appending a second block did not change the digest")
	}
	var c [Rate]field.Element
	c[0] = field.New(6)
	if ab == DigestGroupBatches([][Rate]field.Element{a, c}) {
		t.Errorf("distinct second blocks collided")
	}
}

// seedFromVector derives a deterministic fuzz seed by hashing the vector
// name, exercising the same sha3 chaining used in round-constant
// generation.
func seedFromVector(vector string) uint64 {
	sum := sha3.Sum256([]byte(vector))
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(sum[i])
	}
	return v
}

func TestDigestFuzzSeeds(t *testing.T) {
	vectors := []string{"vector-a", "vector-b", "vector-c"}
	seen := make(map[field.Word]bool)
	for _, v := range vectors {
		seed := seedFromVector(v)
		var state [Width]field.Element
		state[0] = field.New(seed)
		d := Digest(state)
		if seen[d] {
			t.Errorf("fuzz seed %q collided with a previous digest", v)
		}
		seen[d] = true
	}
}
