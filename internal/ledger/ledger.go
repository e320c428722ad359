// Package ledger implements an in-memory, append-only chain of blocks together
// with the pool of transactions waiting to be sealed.
//
// Balances are never stored: they are folded from every transaction of every
// sealed block. The GENESIS account mints value and may go negative; every other
// account must be able to cover a transfer out of its sealed balance.
//
// A Ledger has no internal locking. Callers must serialize AdmitTransaction,
// Mint and SealBlock against a given instance.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gabapcia/minichain/internal/pkg/logger"
	"github.com/gabapcia/minichain/internal/pkg/types"
	"github.com/gabapcia/minichain/internal/pow"

	"github.com/shopspring/decimal"
)

// GenesisAccount is the minting account. It is exempt from the balance check.
const GenesisAccount = "GENESIS"

// GenesisProof is the proof stored in the genesis block.
const GenesisProof uint64 = 100

// genesisCredits are the transactions of the genesis block.
var genesisCredits = []Transaction{
	{Sender: GenesisAccount, Recipient: "senderA", Amount: decimal.NewFromInt(5000)},
	{Sender: GenesisAccount, Recipient: "senderC", Amount: decimal.NewFromInt(5000)},
}

// ProofValidator decides whether a proof may seal the block following one
// sealed with lastProof.
type ProofValidator interface {
	IsValid(lastProof, proof uint64) bool
}

// Ledger owns the sealed chain and the pending transaction pool.
type Ledger struct {
	chain   []Block       // never empty once built with New
	pending []Transaction // admitted, not yet sealed, in admission order

	validator  ProofValidator
	clock      func() time.Time
	digestMode DigestMode
}

// Option configures a Ledger at construction time.
type Option func(*Ledger)

// WithProofValidator replaces the default pow.Puzzle used by SealBlock.
func WithProofValidator(v ProofValidator) Option {
	return func(l *Ledger) {
		l.validator = v
	}
}

// WithClock sets the source of block timestamps.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithDigest selects what block digests commit to. Defaults to DigestTimestamp.
func WithDigest(mode DigestMode) Option {
	return func(l *Ledger) {
		l.digestMode = mode
	}
}

// New returns a ledger holding only the genesis block.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		validator: pow.New(),
		clock:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}

	genesis := Block{
		Index:        0,
		Timestamp:    l.clock(),
		Transactions: slices.Clone(genesisCredits),
		Proof:        GenesisProof,
		PreviousHash: "",
	}
	genesis.Hash = digest(l.digestMode, genesis)

	l.chain = []Block{genesis}
	return l
}

// lastBlock returns the last sealed block without copying it.
func (l *Ledger) lastBlock() (*Block, error) {
	if len(l.chain) == 0 {
		return nil, ErrEmptyChain
	}

	return &l.chain[len(l.chain)-1], nil
}

// LastBlock returns a copy of the last sealed block.
func (l *Ledger) LastBlock() (Block, error) {
	last, err := l.lastBlock()
	if err != nil {
		return Block{}, err
	}

	return last.clone(), nil
}

// LastProof returns the proof stored in the last sealed block.
func (l *Ledger) LastProof() (uint64, error) {
	last, err := l.lastBlock()
	if err != nil {
		return 0, err
	}

	return last.Proof, nil
}

// Len returns the number of sealed blocks, which is also the index the next
// sealed block will take.
func (l *Ledger) Len() int {
	return len(l.chain)
}

// Chain returns a copy of the sealed blocks in chain order.
func (l *Ledger) Chain() []Block {
	chain := make([]Block, len(l.chain))
	for i, b := range l.chain {
		chain[i] = b.clone()
	}

	return chain
}

// Pending returns a copy of the transactions waiting to be sealed.
func (l *Ledger) Pending() []Transaction {
	return slices.Clone(l.pending)
}

// Balances folds every sealed transaction, in chain order, into a running
// total per account. Pending transactions are not included.
func (l *Ledger) Balances() map[string]decimal.Decimal {
	totals := types.NewDefaultMap[string](func() decimal.Decimal { return decimal.Zero })

	for _, block := range l.chain {
		for _, tx := range block.Transactions {
			totals.Update(tx.Sender, func(v decimal.Decimal) decimal.Decimal { return v.Sub(tx.Amount) })
			totals.Update(tx.Recipient, func(v decimal.Decimal) decimal.Decimal { return v.Add(tx.Amount) })
		}
	}

	return totals.ToMap()
}

// Accounts returns every account that appears in a sealed transaction.
func (l *Ledger) Accounts() types.Set[string] {
	accounts := types.NewSet[string]()
	for _, block := range l.chain {
		for _, tx := range block.Transactions {
			accounts.Add(tx.Sender, tx.Recipient)
		}
	}

	return accounts
}

// AdmitTransaction adds a transfer to the pending pool and returns the index of
// the block that will hold it once sealed.
//
// Unless the sender is GenesisAccount, its sealed balance must cover amount,
// otherwise ErrInsufficientBalance is returned and nothing is recorded. Unknown
// accounts hold a balance of zero.
func (l *Ledger) AdmitTransaction(ctx context.Context, sender, recipient string, amount decimal.Decimal) (int, error) {
	tx, err := newTransaction(sender, recipient, amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	if sender != GenesisAccount {
		balance := l.Balances()[sender]
		if balance.Sub(amount).IsNegative() {
			logger.Warn(ctx, "transaction rejected",
				"sender", sender,
				"recipient", recipient,
				"amount", amount.String(),
				"balance", balance.String(),
			)

			return 0, fmt.Errorf("%w: %s holds %s, transfer needs %s", ErrInsufficientBalance, sender, balance, amount)
		}
	}

	l.pending = append(l.pending, tx)

	index := len(l.chain)
	logger.Debug(ctx, "transaction admitted",
		"sender", sender,
		"recipient", recipient,
		"amount", amount.String(),
		"blockIndex", index,
		"pending", len(l.pending),
	)

	return index, nil
}

// Mint credits amount to recipient from GenesisAccount.
func (l *Ledger) Mint(ctx context.Context, recipient string, amount decimal.Decimal) (int, error) {
	return l.AdmitTransaction(ctx, GenesisAccount, recipient, amount)
}

// SealBlock moves every pending transaction into a new block sealed with proof.
//
// The proof is checked against the proof of the last sealed block; on
// ErrInvalidProof neither the chain nor the pending pool is modified.
func (l *Ledger) SealBlock(ctx context.Context, proof uint64) (Block, error) {
	last, err := l.lastBlock()
	if err != nil {
		return Block{}, err
	}

	if !l.validator.IsValid(last.Proof, proof) {
		logger.Warn(ctx, "proof rejected", "proof", proof, "lastProof", last.Proof)
		return Block{}, fmt.Errorf("%w: %d does not solve the puzzle for last proof %d", ErrInvalidProof, proof, last.Proof)
	}

	block := Block{
		Index:        len(l.chain),
		Timestamp:    l.clock(),
		Transactions: slices.Clone(l.pending),
		Proof:        proof,
		PreviousHash: last.Hash,
	}
	block.Hash = digest(l.digestMode, block)

	l.chain = append(l.chain, block)
	l.pending = nil

	logger.Info(ctx, "block sealed",
		"index", block.Index,
		"proof", block.Proof,
		"hash", block.Hash,
		"transactions", len(block.Transactions),
	)

	return block.clone(), nil
}
