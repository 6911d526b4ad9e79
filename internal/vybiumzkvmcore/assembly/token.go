// Package assembly is the assembler front-end: it tokenizes and validates
// stack-manipulation, memory, and advice-tape instructions, lowering them
// into the primitive operations the execution core understands.
package assembly

import "strings"

// Token is a single dot-separated instruction literal together with its
// source position, e.g. "push.adv.4" at column 12.
type Token struct {
	text  string
	pos   int
	parts []string
}

// NewToken builds a Token from its raw source text and position.
func NewToken(text string, pos int) Token {
	return Token{text: text, pos: pos, parts: strings.Split(text, ".")}
}

// Text returns the token's original source text.
func (t Token) Text() string { return t.text }

// Pos returns the token's source position.
func (t Token) Pos() int { return t.pos }

// NumParts returns the number of dot-separated segments in the token.
func (t Token) NumParts() int { return len(t.parts) }

// Part returns the i-th dot-separated segment.
func (t Token) Part(i int) string { return t.parts[i] }

// Parts returns all dot-separated segments.
func (t Token) Parts() []string { return t.parts }
