// Package id provides injected identifier generation.
//
// Default identifiers are UUIDv4 bytes encoded as base32 (RFC 4648) with no
// padding: 26 characters, lowercase, safe for URLs and file paths. Seeded
// generation paths use a Sequence generator instead so that identifiers are
// reproducible alongside the rest of the generated content.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator produces unique identifiers. Implementations must be safe to
// call repeatedly within one generation pass; they are not required to be
// goroutine-safe.
type Generator interface {
	NewID() string
}

// UUID generates random 26-character base32 identifiers.
type UUID struct{}

// NewUUID returns the default random identifier generator.
func NewUUID() UUID {
	return UUID{}
}

// NewID returns a new random identifier.
func (UUID) NewID() string {
	u := uuid.New()
	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(u[:])
	return strings.ToLower(encoded)
}

// Sequence generates deterministic identifiers with a fixed prefix and an
// incrementing counter. Used by seeded generation and tests.
type Sequence struct {
	prefix string
	next   int
}

// NewSequence returns a deterministic identifier generator.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}
