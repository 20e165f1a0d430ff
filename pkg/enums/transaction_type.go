package enums

import "fmt"

// TransactionType distinguishes ledger entries that raise a customer's owed
// balance from those that settle it.
type TransactionType string

const (
	TransactionTypeCredit  TransactionType = "Credit"
	TransactionTypePayment TransactionType = "Payment"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeCredit,
	TransactionTypePayment,
}

// IsValid checks whether the given type matches the canonical enum.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw strings into TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
