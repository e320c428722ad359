package pow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("uses the default modulus and no ceiling", func(t *testing.T) {
		p := New()

		assert.Equal(t, DefaultModulus, p.Modulus())
		assert.Zero(t, p.MaxIterations())
	})

	t.Run("applies options", func(t *testing.T) {
		p := New(WithModulus(7), WithMaxIterations(100))

		assert.Equal(t, uint64(7), p.Modulus())
		assert.Equal(t, uint64(100), p.MaxIterations())
	})

	t.Run("ignores a zero modulus", func(t *testing.T) {
		p := New(WithModulus(0))

		assert.Equal(t, DefaultModulus, p.Modulus())
	})
}

func TestPuzzle_IsValid(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		p := New()
		for candidate := uint64(0); candidate < 500; candidate++ {
			assert.Equal(t, p.IsValid(100, candidate), p.IsValid(100, candidate))
		}
	})

	t.Run("depends only on the sum of both proofs", func(t *testing.T) {
		p := New()
		for i := uint64(0); i < 200; i++ {
			assert.Equal(t, p.IsValid(i, 200-i), p.IsValid(0, 200))
		}
	})

	t.Run("modulus one accepts every candidate", func(t *testing.T) {
		p := New(WithModulus(1))
		for candidate := uint64(0); candidate < 50; candidate++ {
			assert.True(t, p.IsValid(42, candidate))
		}
	})

	t.Run("accepts roughly one in modulus candidates", func(t *testing.T) {
		p := New()
		accepted := 0
		const total = 23 * 2000
		for candidate := uint64(0); candidate < total; candidate++ {
			if p.IsValid(100, candidate) {
				accepted++
			}
		}

		assert.InDelta(t, 2000, accepted, 400)
	})
}

func TestPuzzle_Search(t *testing.T) {
	t.Run("finds the smallest accepted candidate", func(t *testing.T) {
		p := New()

		proof, err := p.Search(t.Context(), 100)
		require.NoError(t, err)
		assert.True(t, p.IsValid(100, proof))

		for candidate := uint64(0); candidate < proof; candidate++ {
			assert.False(t, p.IsValid(100, candidate), "candidate %d should be rejected", candidate)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		p := New()
		for _, last := range []uint64{0, 1, 100, 12345, ^uint64(0)} {
			first, err := p.Search(t.Context(), last)
			require.NoError(t, err)

			second, err := p.Search(t.Context(), last)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.True(t, p.IsValid(last, first))
		}
	})

	t.Run("fails with ErrProofNotFound when the ceiling is exhausted", func(t *testing.T) {
		p := New()

		// a ceiling of zero means unbounded, so pick a last proof whose solution is not 0
		var last, proof uint64
		for last = 100; ; last++ {
			var err error
			proof, err = p.Search(t.Context(), last)
			require.NoError(t, err)
			if proof > 0 {
				break
			}
		}

		bounded := New(WithMaxIterations(proof))
		_, err := bounded.Search(t.Context(), last)
		assert.ErrorIs(t, err, ErrProofNotFound)

		bounded = New(WithMaxIterations(proof + 1))
		got, err := bounded.Search(t.Context(), last)
		require.NoError(t, err)
		assert.Equal(t, proof, got)
	})

	t.Run("explicit ceiling overrides the configured one", func(t *testing.T) {
		p := New(WithMaxIterations(1))
		expected, err := New().Search(t.Context(), 7)
		require.NoError(t, err)

		got, err := p.SearchN(t.Context(), 7, 0)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("returns the context error when cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := New().Search(ctx, 100)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
