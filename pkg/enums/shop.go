package enums

import "fmt"

// ShopType categorizes a registered shop.
type ShopType string

const (
	ShopTypeGrocery      ShopType = "Grocery"
	ShopTypeHardware     ShopType = "Hardware"
	ShopTypePharmacy     ShopType = "Pharmacy"
	ShopTypeGeneralStore ShopType = "General Store"
	ShopTypeOther        ShopType = "Other"
)

var validShopTypes = []ShopType{
	ShopTypeGrocery,
	ShopTypeHardware,
	ShopTypePharmacy,
	ShopTypeGeneralStore,
	ShopTypeOther,
}

// IsValid checks whether the given type matches the canonical enum.
func (s ShopType) IsValid() bool {
	for _, candidate := range validShopTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShopType converts raw strings into ShopType.
func ParseShopType(value string) (ShopType, error) {
	for _, candidate := range validShopTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop type %q", value)
}

// ShopStatus toggles whether a shop is currently trading.
type ShopStatus string

const (
	ShopStatusOpen   ShopStatus = "Open"
	ShopStatusClosed ShopStatus = "Closed"
)

// IsValid checks whether the given status matches the canonical enum.
func (s ShopStatus) IsValid() bool {
	return s == ShopStatusOpen || s == ShopStatusClosed
}

// ParseShopStatus converts raw strings into ShopStatus.
func ParseShopStatus(value string) (ShopStatus, error) {
	switch ShopStatus(value) {
	case ShopStatusOpen:
		return ShopStatusOpen, nil
	case ShopStatusClosed:
		return ShopStatusClosed, nil
	}
	return "", fmt.Errorf("invalid shop status %q", value)
}
