// Package pow implements the toy proof-of-work puzzle that gates block sealing.
//
// A candidate proof is accepted when the 64-bit xxhash digest of
// (lastProof + candidate) is divisible by the puzzle modulus. The test is fast
// and deterministic; it is a difficulty knob, not a security property.
package pow

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DefaultModulus is the acceptance modulus. The expected number of candidates
// tested by Search is roughly equal to it.
const DefaultModulus uint64 = 23

// cancelCheckInterval is how many candidates Search tests between context checks.
const cancelCheckInterval = 1 << 12

// ErrProofNotFound is returned when the search exhausts its iteration ceiling
// without finding an accepted candidate.
var ErrProofNotFound = errors.New("proof not found")

// Puzzle is a stateless proof-of-work puzzle. The zero value is not usable; build
// one with New.
type Puzzle struct {
	modulus       uint64
	maxIterations uint64 // 0 means unbounded
}

// Option configures a Puzzle.
type Option func(*Puzzle)

// WithModulus sets the acceptance modulus. Values below 1 are ignored.
func WithModulus(m uint64) Option {
	return func(p *Puzzle) {
		if m >= 1 {
			p.modulus = m
		}
	}
}

// WithMaxIterations caps how many candidates Search tests before failing with
// ErrProofNotFound. Zero keeps the search unbounded.
func WithMaxIterations(n uint64) Option {
	return func(p *Puzzle) {
		p.maxIterations = n
	}
}

// New returns a Puzzle using DefaultModulus and no iteration ceiling unless
// overridden by opts.
func New(opts ...Option) *Puzzle {
	p := &Puzzle{modulus: DefaultModulus}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Modulus returns the acceptance modulus.
func (p *Puzzle) Modulus() uint64 {
	return p.modulus
}

// MaxIterations returns the configured ceiling, 0 when unbounded.
func (p *Puzzle) MaxIterations() uint64 {
	return p.maxIterations
}

// digest hashes the little-endian encoding of v. The sum lastProof+candidate
// wraps around on overflow.
func digest(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// IsValid reports whether candidate solves the puzzle for lastProof.
func (p *Puzzle) IsValid(lastProof, candidate uint64) bool {
	return digest(lastProof+candidate)%p.modulus == 0
}

// Search returns the smallest candidate, counting up from zero, accepted by
// IsValid for lastProof. It honours the configured iteration ceiling and
// returns ctx.Err() if the context is cancelled mid-search.
func (p *Puzzle) Search(ctx context.Context, lastProof uint64) (uint64, error) {
	return p.SearchN(ctx, lastProof, p.maxIterations)
}

// SearchN is Search with an explicit ceiling: candidates 0..n-1 are tested.
// A ceiling of zero means unbounded.
func (p *Puzzle) SearchN(ctx context.Context, lastProof, n uint64) (uint64, error) {
	for candidate := uint64(0); n == 0 || candidate < n; candidate++ {
		if candidate%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		if p.IsValid(lastProof, candidate) {
			return candidate, nil
		}

		// the whole uint64 space has been tested
		if candidate == ^uint64(0) {
			break
		}
	}

	return 0, fmt.Errorf("%w: last proof %d, %d candidates tested", ErrProofNotFound, lastProof, n)
}
