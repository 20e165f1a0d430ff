package db

import (
	"context"

	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/logger"
)

// AutoMigrate creates the schema on the in-memory database. It runs on every
// boot because the store starts empty by design.
func (c *Client) AutoMigrate(ctx context.Context, logg *logger.Logger) error {
	if err := c.conn.WithContext(ctx).AutoMigrate(
		&models.Customer{},
		&models.Vendor{},
		&models.Transaction{},
		&models.VendorCustomerLink{},
		&models.Notification{},
	); err != nil {
		return err
	}
	if logg != nil {
		logg.Info(ctx, "schema migrated")
	}
	return nil
}
