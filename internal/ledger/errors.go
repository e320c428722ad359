package ledger

import "errors"

var (
	// ErrInsufficientBalance is returned when a non-genesis sender's sealed
	// balance cannot cover the requested amount. The ledger is left unchanged.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidProof is returned when the supplied proof does not solve the
	// puzzle against the last sealed block. The ledger is left unchanged.
	ErrInvalidProof = errors.New("invalid proof")

	// ErrEmptyChain is returned when the chain has no blocks. A ledger built
	// with New always holds the genesis block, so this only guards the zero value.
	ErrEmptyChain = errors.New("empty chain")

	// ErrInvalidTransaction is returned when a transfer is malformed: missing
	// accounts or a negative amount.
	ErrInvalidTransaction = errors.New("invalid transaction")
)
