// Package ident generates short opaque record identifiers.
package ident

import (
	"math/rand"
	"time"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length is the fixed identifier length.
	Length = 6
)

// Generator produces 6-character identifiers drawn from [a-zA-Z0-9].
type Generator struct {
	rnd *rand.Rand
}

// New returns a time-seeded generator.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a generator with a fixed seed, for deterministic tests.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// NewID returns a fresh identifier. Uniqueness is not guaranteed here;
// callers that need it must check against their live collection and retry.
func (g *Generator) NewID() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[g.rnd.Intn(len(alphabet))]
	}
	return string(b)
}
