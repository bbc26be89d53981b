// Package idgen provides ID generation utilities
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// ShortCodeAlphabet is the character set of share short codes
const ShortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultShortCodeLength gives 62^6 (about 5.7e10) possible codes
const DefaultShortCodeLength = 6

// ShortCodeGenerator generates fixed-length alphanumeric codes
type ShortCodeGenerator struct {
	length int
}

// NewShortCode creates a short code generator, non-positive lengths use the default
func NewShortCode(length int) *ShortCodeGenerator {
	if length <= 0 {
		length = DefaultShortCodeLength
	}
	return &ShortCodeGenerator{length: length}
}

// Length returns the length of generated codes
func (g *ShortCodeGenerator) Length() int {
	return g.length
}

// Generate creates a new random code
func (g *ShortCodeGenerator) Generate() string {
	alphabetSize := big.NewInt(int64(len(ShortCodeAlphabet)))
	code := make([]byte, g.length)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand only fails when the system entropy source is broken
			panic(fmt.Sprintf("crypto/rand.Int failed: %v", err))
		}
		code[i] = ShortCodeAlphabet[n.Int64()]
	}
	return string(code)
}

// IsShortCode reports whether s has the given length and only uses the short code alphabet
func IsShortCode(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isAlnum := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
		if !isAlnum {
			return false
		}
	}
	return true
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}
