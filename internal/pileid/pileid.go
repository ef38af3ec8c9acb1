// Package pileid generates the caller-supplied identifiers for piles and
// games: UUIDv7 values encoded as 26-character Crockford base32 strings, so
// ids sort by creation time and stay copy-paste friendly.
package pileid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random portion of ids, for deterministic tests.
type RandSource interface {
	Intn(n int) int
}

// Generator creates ids with configurable randomness. A nil RandSource uses
// crypto/rand.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator with an optional RandSource.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate returns a new id from the default crypto/rand-backed generator.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate returns a new id.
func (g *Generator) Generate() string {
	return encodeBase32(g.uuidv7())
}

// uuidv7 builds a 128-bit UUIDv7: 48-bit unix-millisecond timestamp, version
// and variant bits, and 74 random bits.
func (g *Generator) uuidv7() [16]byte {
	var u [16]byte

	now := time.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		u[i] = byte(now >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			u[i] = byte(g.randSource.Intn(256))
		}
	} else {
		if _, err := rand.Read(u[6:]); err != nil {
			panic("pileid: failed to read random bytes: " + err.Error())
		}
	}

	u[6] = (u[6] & 0x0f) | 0x70 // version 7
	u[8] = (u[8] & 0x3f) | 0x80 // variant 10

	return u
}

// encodeBase32 encodes 128 bits as 26 base32 characters. The value is
// right-aligned in 130 bits, so the first character is always 0-7.
func encodeBase32(u [16]byte) string {
	var b strings.Builder
	b.Grow(26)

	acc := uint(0)
	bits := 2 // two leading zero pad bits
	for _, octet := range u {
		acc = acc<<8 | uint(octet)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(alphabet[(acc>>uint(bits))&0x1f])
			acc &= (1 << uint(bits)) - 1
		}
	}
	return b.String()
}

// Validate checks that an id is 26 characters of valid base32 with an
// in-range leading character.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("id must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
