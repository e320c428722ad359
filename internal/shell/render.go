package shell

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gabapcia/minichain/internal/ledger"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// renderBalances renders balances as a table sorted by account.
func renderBalances(balances map[string]decimal.Decimal) string {
	data := pterm.TableData{{"Account", "Balance"}}
	for _, account := range slices.Sorted(maps.Keys(balances)) {
		data = append(data, []string{account, balances[account].String()})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// the table renderer only fails on malformed data, fall back to plain lines
		var sb strings.Builder
		for _, row := range data {
			fmt.Fprintf(&sb, "%s\t%s\n", row[0], row[1])
		}
		return sb.String()
	}

	return table
}

// renderPending renders the pending pool inside a titled box.
func renderPending(pending []ledger.Transaction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current transactions pending: %d", len(pending))
	for _, tx := range pending {
		fmt.Fprintf(&sb, "\n%s", tx)
	}

	return pterm.DefaultBox.WithTitle("Pending").Sprint(sb.String())
}
