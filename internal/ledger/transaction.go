package ledger

import (
	"github.com/gabapcia/minichain/internal/pkg/validator"

	"github.com/shopspring/decimal"
)

// Transaction moves Amount from Sender to Recipient. It is created by the
// ledger on admission and never mutated afterwards.
type Transaction struct {
	Sender    string          `validate:"required,account"` // account debited
	Recipient string          `validate:"required,account"` // account credited
	Amount    decimal.Decimal `validate:"decimal_gte=0"`    // non-negative exact amount
}

// newTransaction builds and validates a Transaction.
func newTransaction(sender, recipient string, amount decimal.Decimal) (Transaction, error) {
	tx := Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	return tx, validator.Validate(tx)
}
