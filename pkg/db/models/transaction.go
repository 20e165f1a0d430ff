package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/pkg/enums"
)

// Transaction is an immutable ledger entry for a (vendor, customer) pair, both
// referenced by phone number. Amount is always positive; the type decides the
// sign during balance folds.
type Transaction struct {
	ID            uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Type          enums.TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Amount        decimal.Decimal       `gorm:"type:numeric;not null" json:"amount"`
	Description   string                `gorm:"type:text;not null" json:"description"`
	VendorPhone   string                `gorm:"type:varchar(8);not null;index:idx_tx_vendor_customer" json:"vendor_phone"`
	CustomerPhone string                `gorm:"type:varchar(8);not null;index:idx_tx_vendor_customer" json:"customer_phone"`
	CreatedAt     time.Time             `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
