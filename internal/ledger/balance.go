package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/enums"
)

// BalanceState labels the sign of a balance from the vendor's perspective.
type BalanceState string

const (
	// BalanceDue means the customer owes the vendor.
	BalanceDue BalanceState = "Due"
	// BalanceAdvance means the customer has overpaid.
	BalanceAdvance BalanceState = "Advance"
	// BalanceSettled means nothing is owed either way.
	BalanceSettled BalanceState = "Settled"
)

// Balance folds a transaction slice into the net owed amount: credits add,
// payments subtract. Positive means the customer owes the vendor.
func Balance(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case enums.TransactionTypeCredit:
			total = total.Add(tx.Amount)
		case enums.TransactionTypePayment:
			total = total.Sub(tx.Amount)
		}
	}
	return total
}

// StateOf maps a balance to its sign label.
func StateOf(balance decimal.Decimal) BalanceState {
	switch balance.Sign() {
	case 1:
		return BalanceDue
	case -1:
		return BalanceAdvance
	default:
		return BalanceSettled
	}
}

// SortNewestFirst orders transactions most-recent-first, with the id as a
// tiebreaker so the order is deterministic.
func SortNewestFirst(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].CreatedAt.After(txs[j].CreatedAt)
		}
		return txs[i].ID.String() > txs[j].ID.String()
	})
}
