package engine

import (
	"crypto/rand"
	"math"

	"golang.org/x/crypto/scrypt"

	"github.com/fanatid/scrypt-bridge/params"
)

// Native scrypt status codes. Descriptions live in the errors package table.
const (
	StatusOK            = 0
	StatusResourceLimit = 1
	StatusClock         = 2
	StatusDeriveKey     = 3
	StatusSaltRead      = 4
	StatusCryptoLib     = 5
	StatusAlloc         = 6
	StatusInvalidBlock  = 7
	StatusBadFormat     = 8
	StatusTooMuchMemory = 9
	StatusTooLong       = 10
	StatusBadPassword   = 11
	StatusWriteOutput   = 12
	StatusReadInput     = 13
)

// Engine is the native key-derivation routine as the binding layer sees it:
// an opaque function taking password, salt and cost parameters and returning
// a derived key or a numeric status code.
type Engine interface {
	DeriveKey(password, salt []byte, p params.Params, keyLen int) ([]byte, int)
}

// Scrypt derives keys with the scrypt algorithm.
//
// MaxMem bounds the memory the derivation may use, in bytes; zero means
// unbounded. Derivations that would exceed it fail with StatusTooMuchMemory
// before any allocation happens.
type Scrypt struct {
	MaxMem uint64
}

// DeriveKey runs the scrypt routine. Parameter rejection by the underlying
// implementation surfaces as StatusDeriveKey, a working set too large to
// size as StatusAlloc, and a MaxMem overrun as StatusTooMuchMemory.
func (s *Scrypt) DeriveKey(password, salt []byte, p params.Params, keyLen int) ([]byte, int) {
	// scrypt.Key divides by r while range-checking; reject non-positive
	// values here with the same status its own rejections get.
	if p.N < 2 || p.R < 1 || p.P < 1 || keyLen < 1 {
		return nil, StatusDeriveKey
	}

	// The 128*N*r working set must be representable before it can be
	// bounded; overflow is an allocation-scale failure, not a budget one.
	required, ok := memoryRequired(p)
	if !ok {
		return nil, StatusAlloc
	}
	if s.MaxMem > 0 && required > s.MaxMem {
		return nil, StatusTooMuchMemory
	}

	key, err := scrypt.Key(password, salt, p.N, p.R, p.P, keyLen)
	if err != nil {
		return nil, StatusDeriveKey
	}
	return key, StatusOK
}

// memoryRequired reports the 128*N*r working-set size, or false on overflow.
func memoryRequired(p params.Params) (uint64, bool) {
	if p.N <= 0 || p.R <= 0 {
		return 0, false
	}
	n, r := uint64(p.N), uint64(p.R)
	if n > math.MaxUint64/128/r {
		return 0, false
	}
	return 128 * n * r, true
}

// RandomSalt reads n bytes from the process entropy source. Failure reports
// StatusSaltRead, the native code for an unreadable salt source.
func RandomSalt(n int) ([]byte, int) {
	salt := make([]byte, n)
	if _, err := rand.Read(salt); err != nil {
		return nil, StatusSaltRead
	}
	return salt, StatusOK
}
