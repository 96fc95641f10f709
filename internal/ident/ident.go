// Package ident provides unique-identifier generation as an injectable
// capability, so services can take deterministic generators in tests.
package ident

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces opaque unique identifiers for members and sites.
type Generator interface {
	NewID() string
}

// UUID generates random UUIDv4 identifiers. The zero value is ready to use.
type UUID struct{}

// NewID returns a fresh UUID string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates "prefix-1", "prefix-2", ... identifiers. Intended for
// tests that need stable, creation-ordered IDs. Safe for concurrent use.
type Sequence struct {
	Prefix string
	n      atomic.Int64
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.Prefix, s.n.Add(1))
}
