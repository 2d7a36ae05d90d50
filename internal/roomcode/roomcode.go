// Package roomcode generates short human-typable room ids
package roomcode

import (
	"crypto/rand"
	"math/big"
)

// Alphabet omits letters that are easily confused (I, O)
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// DefaultLength is the length of generated codes
const DefaultLength = 6

// Source provides random ints in [0, n)
type Source interface {
	Intn(n int) int
}

// CryptoSource implements Source using crypto/rand
type CryptoSource struct{}

// Intn returns a cryptographically random int in [0, n)
func (CryptoSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

// Generator produces room codes
type Generator struct {
	src    Source
	length int
}

// New creates a generator backed by crypto/rand
func New() *Generator {
	return NewWithSource(CryptoSource{}, DefaultLength)
}

// NewWithSource creates a generator with a custom source (for testing)
func NewWithSource(src Source, length int) *Generator {
	return &Generator{src: src, length: length}
}

// Generate returns a new code
func (g *Generator) Generate() string {
	code := make([]byte, g.length)
	for i := range code {
		code[i] = Alphabet[g.src.Intn(len(Alphabet))]
	}
	return string(code)
}
