package roomcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sequenceSource returns queued values, then 0
type sequenceSource struct {
	values []int
}

func (s *sequenceSource) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0] % n
	s.values = s.values[1:]
	return v
}

func TestGenerateFromSource(t *testing.T) {
	g := NewWithSource(&sequenceSource{values: []int{0, 1, 2, 23}}, 4)
	assert.Equal(t, "ABCZ", g.Generate())
}

func TestGenerateUsesAlphabet(t *testing.T) {
	g := New()
	for i := 0; i < 50; i++ {
		code := g.Generate()
		assert.Len(t, code, DefaultLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q in %s", r, code)
		}
	}
}

func TestCryptoSourceBounds(t *testing.T) {
	src := CryptoSource{}
	assert.Equal(t, 0, src.Intn(0))
	for i := 0; i < 100; i++ {
		v := src.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
}
