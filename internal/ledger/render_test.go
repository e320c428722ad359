package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_String(t *testing.T) {
	tx := Transaction{Sender: GenesisAccount, Recipient: "minerB", Amount: amount("0.8")}

	assert.Equal(t, "Transaction for 0.8: GENESIS (sender) -> minerB (recipient)", tx.String())
}

func TestBlock_String(t *testing.T) {
	b := Block{
		Index:     3,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Transactions: []Transaction{
			{Sender: "senderA", Recipient: "recipientA", Amount: amount("32")},
		},
		Proof:        17,
		PreviousHash: "111",
		Hash:         "222",
	}

	expected := strings.Join([]string{
		"------ Block: 3 ------",
		"| Time: 2024-01-01T12:00:00Z",
		"| Proof: 17",
		"| Current Hash: 222",
		"| Previous Hash: 111",
		"| #Transactions: 1",
		"|-| Transaction for 32: senderA (sender) -> recipientA (recipient)",
		"----------------------",
	}, "\n")

	assert.Equal(t, expected, b.String())
}

func TestLedger_String(t *testing.T) {
	newLedger := func() *Ledger {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		return New(WithProofValidator(acceptAll), WithClock(tickingClock(start)))
	}

	build := func(t *testing.T) *Ledger {
		l := newLedger()
		_, err := l.AdmitTransaction(t.Context(), "senderA", "recipientA", amount("5"))
		require.NoError(t, err)
		_, err = l.SealBlock(t.Context(), 1)
		require.NoError(t, err)
		_, err = l.AdmitTransaction(t.Context(), "senderC", "recipientC", amount("12"))
		require.NoError(t, err)
		return l
	}

	t.Run("renders blocks then the pending pool", func(t *testing.T) {
		l := build(t)
		chain := l.Chain()

		expected := chain[0].String() + "\n|\nv\n" +
			chain[1].String() + "\n|\nv\n" +
			"Current transactions pending: 1\n" +
			"Transaction for 12: senderC (sender) -> recipientC (recipient)\n"

		assert.Equal(t, expected, l.String())
	})

	t.Run("is deterministic for the same state", func(t *testing.T) {
		assert.Equal(t, build(t).String(), build(t).String())
	})

	t.Run("renders an empty pending pool", func(t *testing.T) {
		out := newLedger().String()

		assert.True(t, strings.HasSuffix(out, "Current transactions pending: 0\n"))
		assert.Contains(t, out, "------ Block: 0 ------")
	})
}
