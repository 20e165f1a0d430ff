package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/enums"
)

func credit(amount string, at time.Time) models.Transaction {
	return models.Transaction{
		ID:        uuid.New(),
		Type:      enums.TransactionTypeCredit,
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: at,
	}
}

func payment(amount string, at time.Time) models.Transaction {
	return models.Transaction{
		ID:        uuid.New(),
		Type:      enums.TransactionTypePayment,
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: at,
	}
}

func TestBalance_SignLaw(t *testing.T) {
	now := time.Now()
	txs := []models.Transaction{
		credit("50.00", now),
		payment("20.00", now),
		credit("10.50", now),
	}

	got := Balance(txs)
	want := decimal.RequireFromString("40.50")
	if !got.Equal(want) {
		t.Fatalf("expected balance %s, got %s", want, got)
	}

	txs = append(txs, credit("5.25", now))
	if next := Balance(txs); !next.Equal(want.Add(decimal.RequireFromString("5.25"))) {
		t.Fatalf("credit of 5.25 should raise balance by exactly 5.25, got %s", next)
	}

	txs = append(txs, payment("45.75", now))
	if next := Balance(txs); !next.Equal(decimal.Zero) {
		t.Fatalf("expected settled balance, got %s", next)
	}
}

func TestBalance_Empty(t *testing.T) {
	if got := Balance(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("expected zero balance for empty log, got %s", got)
	}
}

func TestStateOf(t *testing.T) {
	cases := []struct {
		balance string
		want    BalanceState
	}{
		{"30.00", BalanceDue},
		{"-12.50", BalanceAdvance},
		{"0", BalanceSettled},
	}
	for _, tc := range cases {
		if got := StateOf(decimal.RequireFromString(tc.balance)); got != tc.want {
			t.Fatalf("balance %s: expected %s, got %s", tc.balance, tc.want, got)
		}
	}
}

func TestSortNewestFirst(t *testing.T) {
	now := time.Now()
	oldest := credit("1.00", now.Add(-2*time.Hour))
	middle := payment("2.00", now.Add(-time.Hour))
	newest := credit("3.00", now)

	txs := []models.Transaction{oldest, newest, middle}
	SortNewestFirst(txs)

	if txs[0].ID != newest.ID || txs[1].ID != middle.ID || txs[2].ID != oldest.ID {
		t.Fatalf("expected newest-first order, got %v %v %v", txs[0].CreatedAt, txs[1].CreatedAt, txs[2].CreatedAt)
	}
}
