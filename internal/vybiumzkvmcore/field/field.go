// Package field implements arithmetic over the Goldilocks prime field used
// throughout the Vybium zkVM core: the stack, memory words, advice tape, and
// decoder trace columns are all vectors of field.Element.
package field

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// Modulus is the Goldilocks prime p = 2^64 - 2^32 + 1.
const Modulus uint64 = 18446744069414584321

var modulusBig = new(big.Int).SetUint64(Modulus)

// Element is a residue modulo Modulus. The zero value is the field's zero.
type Element uint64

// Zero and One are the additive and multiplicative identities.
const (
	Zero Element = 0
	One  Element = 1
)

// New reduces v modulo the field and returns the corresponding Element.
func New(v uint64) Element {
	if v < Modulus {
		return Element(v)
	}
	return Element(v % Modulus)
}

// FromUint64 converts v losslessly, failing if v does not already represent
// a canonical residue (v >= Modulus).
func FromUint64(v uint64) (Element, error) {
	if v >= Modulus {
		return Zero, fmt.Errorf("field: value %d is not less than the modulus %d", v, Modulus)
	}
	return Element(v), nil
}

// Value returns the canonical uint64 representation of e.
func (e Element) Value() uint64 { return uint64(e) }

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool { return e == Zero }

// Equal reports whether e and o represent the same residue.
func (e Element) Equal(o Element) bool { return e == o }

// Add returns e + o.
func (e Element) Add(o Element) Element {
	sum, carry := bits.Add64(uint64(e), uint64(o), 0)
	if carry != 0 {
		// 2^64 mod p == 2^32 - 1 for the Goldilocks prime.
		sum += (1<<32 - 1)
	}
	if sum >= Modulus {
		sum -= Modulus
	}
	return Element(sum)
}

// Sub returns e - o.
func (e Element) Sub(o Element) Element {
	if uint64(e) >= uint64(o) {
		return Element(uint64(e) - uint64(o))
	}
	return Element(Modulus - (uint64(o) - uint64(e)))
}

// Neg returns -e.
func (e Element) Neg() Element {
	return Zero.Sub(e)
}

// Mul returns e * o.
func (e Element) Mul(o Element) Element {
	hi, lo := bits.Mul64(uint64(e), uint64(o))
	val := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
	val.Or(val, new(big.Int).SetUint64(lo))
	val.Mod(val, modulusBig)
	return Element(val.Uint64())
}

// Inverse returns the multiplicative inverse of e. It fails for the zero
// element, which has none.
func (e Element) Inverse() (Element, error) {
	if e.IsZero() {
		return Zero, fmt.Errorf("field: zero has no multiplicative inverse")
	}
	v := new(big.Int).SetUint64(uint64(e))
	inv := new(big.Int).ModInverse(v, modulusBig)
	return Element(inv.Uint64()), nil
}

// String renders the element's canonical residue.
func (e Element) String() string {
	return fmt.Sprintf("%d", uint64(e))
}

// ParseDecimal parses a decimal literal into a field element, failing if the
// value does not fit in a u64 or is not a canonical residue.
func ParseDecimal(s string) (Element, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Zero, fmt.Errorf("field: %q is not a decimal integer", s)
	}
	return bigToElement(v, s)
}

// ParseHex parses a "0x"-prefixed hexadecimal literal into a field element.
func ParseHex(s string) (Element, error) {
	v, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
	if !ok {
		return Zero, fmt.Errorf("field: %q is not a hexadecimal integer", s)
	}
	return bigToElement(v, s)
}

// ParseLiteral parses a decimal or "0x"-prefixed hexadecimal literal.
func ParseLiteral(s string) (Element, error) {
	if strings.HasPrefix(s, "0x") {
		return ParseHex(s)
	}
	return ParseDecimal(s)
}

func bigToElement(v *big.Int, original string) (Element, error) {
	if v.Sign() < 0 {
		return Zero, fmt.Errorf("field: %q is negative", original)
	}
	if !v.IsUint64() {
		return Zero, fmt.Errorf("field: %q does not fit in 64 bits", original)
	}
	return FromUint64(v.Uint64())
}

// Word is a group of four field elements: the unit of memory and advice-tape
// reads/writes, and of Merkle digests produced by the hasher.
type Word [4]Element

// ZeroWord is the all-zero word.
var ZeroWord = Word{Zero, Zero, Zero, Zero}
