package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/pkg/enums"
)

// Notification is an append-only message to a customer. ReadAt is the only
// mutable field; nil means unread.
type Notification struct {
	ID             uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerPhone  string                 `gorm:"type:varchar(8);not null;index" json:"customer_phone"`
	VendorPhone    string                 `gorm:"type:varchar(8);not null" json:"vendor_phone"`
	VendorShopName string                 `gorm:"type:text;not null" json:"vendor_shop_name"`
	Type           enums.NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Message        string                 `gorm:"type:text;not null" json:"message"`
	ReadAt         *time.Time             `json:"read_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
