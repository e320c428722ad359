package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Human-readable renderings used by the shell and the demo. They are
// deterministic for a given state but are not a stable format.

// String renders the transaction on a single line.
func (t Transaction) String() string {
	return fmt.Sprintf("Transaction for %s: %s (sender) -> %s (recipient)", t.Amount, t.Sender, t.Recipient)
}

// String renders the block header followed by one line per transaction.
func (b Block) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "------ Block: %d ------\n", b.Index)
	fmt.Fprintf(&sb, "| Time: %s\n", b.Timestamp.Format(time.RFC3339Nano))
	fmt.Fprintf(&sb, "| Proof: %d\n", b.Proof)
	fmt.Fprintf(&sb, "| Current Hash: %s\n", b.Hash)
	fmt.Fprintf(&sb, "| Previous Hash: %s\n", b.PreviousHash)
	fmt.Fprintf(&sb, "| #Transactions: %d\n", len(b.Transactions))
	for _, tx := range b.Transactions {
		fmt.Fprintf(&sb, "|-| %s\n", tx)
	}
	sb.WriteString("----------------------")

	return sb.String()
}

// String renders every block linked by arrows, then the pending pool.
func (l *Ledger) String() string {
	var sb strings.Builder

	for _, b := range l.chain {
		sb.WriteString(b.String())
		sb.WriteString("\n|\nv\n")
	}

	fmt.Fprintf(&sb, "Current transactions pending: %d\n", len(l.pending))
	for _, tx := range l.pending {
		fmt.Fprintf(&sb, "%s\n", tx)
	}

	return sb.String()
}
