package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/pkg/enums"
)

// Vendor is a registered shop. Status toggles and detail edits both write this
// row in place; vendors are never deleted.
type Vendor struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	FullName        string           `gorm:"type:text;not null" json:"full_name"`
	PhoneNumber     string           `gorm:"type:varchar(8);uniqueIndex;not null" json:"phone_number"`
	PasswordHash    string           `gorm:"type:text;not null" json:"-"`
	ShopName        string           `gorm:"type:text;not null" json:"shop_name"`
	ShopType        enums.ShopType   `gorm:"type:varchar(20);not null" json:"shop_type"`
	ShopLocation    string           `gorm:"type:text;not null" json:"shop_location"`
	ShopDescription string           `gorm:"type:text" json:"shop_description,omitempty"`
	ShopStatus      enums.ShopStatus `gorm:"type:varchar(10);not null;default:'Open'" json:"shop_status"`
	ShopLogo        string           `gorm:"type:text" json:"shop_logo,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.ShopStatus == "" {
		v.ShopStatus = enums.ShopStatusOpen
	}
	return nil
}
