package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorCustomerLink marks a customer as known to a vendor independent of any
// transaction history. At most one link exists per pair.
type VendorCustomerLink struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VendorPhone   string    `gorm:"type:varchar(8);not null;index:idx_link_pair,unique" json:"vendor_phone"`
	CustomerPhone string    `gorm:"type:varchar(8);not null;index:idx_link_pair,unique" json:"customer_phone"`
	CreatedAt     time.Time `json:"created_at"`
}

func (l *VendorCustomerLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
