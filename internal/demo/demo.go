// Package demo runs a fixed script against a fresh ledger and prints the
// chain at each stage.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/gabapcia/minichain/internal/ledger"
	"github.com/gabapcia/minichain/internal/pkg/logger"
	"github.com/gabapcia/minichain/internal/pkg/types"

	"github.com/shopspring/decimal"
)

// Ledger is the subset of *ledger.Ledger the script drives.
type Ledger interface {
	AdmitTransaction(ctx context.Context, sender, recipient string, amount decimal.Decimal) (int, error)
	Mint(ctx context.Context, recipient string, amount decimal.Decimal) (int, error)
	SealBlock(ctx context.Context, proof uint64) (ledger.Block, error)
	LastProof() (uint64, error)
	Balances() map[string]decimal.Decimal
	Accounts() types.Set[string]
	String() string
}

// Solver finds a proof for the block following lastProof.
type Solver interface {
	Search(ctx context.Context, lastProof uint64) (uint64, error)
}

var _ Ledger = (*ledger.Ledger)(nil)

type transfer struct {
	sender, recipient string
	amount            decimal.Decimal
}

// Run executes the script on l, solving proofs with s, and writes every stage
// to w. The first failing step aborts the run.
func Run(ctx context.Context, w io.Writer, l Ledger, s Solver) error {
	fmt.Fprintln(w, "(1) INITIAL BLOCKCHAIN")
	fmt.Fprintln(w, l)

	if err := admit(ctx, l,
		transfer{"senderA", "recipientA", decimal.NewFromInt(5)},
		transfer{"senderC", "recipientC", decimal.NewFromInt(12)},
	); err != nil {
		return err
	}

	fmt.Fprintln(w, "(2) BLOCKCHAIN WITH TRANSACTIONS")
	fmt.Fprintln(w, l)

	if err := mine(ctx, l, s, "minerA", decimal.NewFromInt(1)); err != nil {
		return err
	}

	fmt.Fprintln(w, "(3) BLOCKCHAIN WITH NEW BLOCKS")
	if err := admit(ctx, l, transfer{"senderA", "recipientA", decimal.NewFromInt(32)}); err != nil {
		return err
	}

	if err := mine(ctx, l, s, "minerB", decimal.RequireFromString("0.8")); err != nil {
		return err
	}
	fmt.Fprintln(w, l)

	fmt.Fprintln(w, "(4) BALANCES AT END")
	balances := l.Balances()
	for _, account := range types.Sorted(l.Accounts()) {
		fmt.Fprintf(w, "%s: %s\n", account, balances[account])
	}

	return nil
}

func admit(ctx context.Context, l Ledger, transfers ...transfer) error {
	for _, t := range transfers {
		if _, err := l.AdmitTransaction(ctx, t.sender, t.recipient, t.amount); err != nil {
			return fmt.Errorf("admit %s -> %s: %w", t.sender, t.recipient, err)
		}
	}

	return nil
}

// mine solves the puzzle for the last block, credits reward to miner and seals.
func mine(ctx context.Context, l Ledger, s Solver, miner string, reward decimal.Decimal) error {
	lastProof, err := l.LastProof()
	if err != nil {
		return err
	}

	proof, err := s.Search(ctx, lastProof)
	if err != nil {
		return err
	}

	if _, err := l.Mint(ctx, miner, reward); err != nil {
		return err
	}

	block, err := l.SealBlock(ctx, proof)
	if err != nil {
		return err
	}

	logger.Debug(ctx, "demo block sealed", "index", block.Index, "miner", miner)
	return nil
}
