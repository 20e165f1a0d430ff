package notifications

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/enums"
)

// Message templates are part of the observable client contract; amounts are
// always rendered with exactly two decimal places.

func welcomeMessage(shopName string) string {
	return fmt.Sprintf("Welcome! You've been added to %s's credit book.", shopName)
}

func creditMessage(amount decimal.Decimal, description string) string {
	return fmt.Sprintf("%s was credited to your account for \"%s\".", amount.StringFixed(2), description)
}

func paymentMessage(amount decimal.Decimal, description string) string {
	return fmt.Sprintf("%s was paid on your account for \"%s\".", amount.StringFixed(2), description)
}

func reminderMessage(balance decimal.Decimal) string {
	return fmt.Sprintf("A friendly reminder that your due balance is %s.", balance.StringFixed(2))
}

// NewWelcome builds the notification emitted when a vendor adds a customer
// that did not exist globally before.
func NewWelcome(vendor models.Vendor, customerPhone string) *models.Notification {
	return &models.Notification{
		CustomerPhone:  customerPhone,
		VendorPhone:    vendor.PhoneNumber,
		VendorShopName: vendor.ShopName,
		Type:           enums.NotificationTypeWelcome,
		Message:        welcomeMessage(vendor.ShopName),
	}
}

// NewTransaction builds the Credit Added / Payment Received notification for
// a freshly recorded transaction.
func NewTransaction(vendor models.Vendor, tx models.Transaction) *models.Notification {
	kind := enums.NotificationTypeCredit
	message := creditMessage(tx.Amount, tx.Description)
	if tx.Type == enums.TransactionTypePayment {
		kind = enums.NotificationTypePayment
		message = paymentMessage(tx.Amount, tx.Description)
	}
	return &models.Notification{
		CustomerPhone:  tx.CustomerPhone,
		VendorPhone:    vendor.PhoneNumber,
		VendorShopName: vendor.ShopName,
		Type:           kind,
		Message:        message,
	}
}

// NewReminder builds the due-balance reminder notification.
func NewReminder(vendor models.Vendor, customerPhone string, balance decimal.Decimal) *models.Notification {
	return &models.Notification{
		CustomerPhone:  customerPhone,
		VendorPhone:    vendor.PhoneNumber,
		VendorShopName: vendor.ShopName,
		Type:           enums.NotificationTypeReminder,
		Message:        reminderMessage(balance),
	}
}
