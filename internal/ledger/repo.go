package ledger

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/pkg/db/models"
)

// Repository exposes the read side of the ledger: transactions, links and the
// registry records needed to resolve them.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	TransactionsByVendor(ctx context.Context, vendorPhone string) ([]models.Transaction, error)
	TransactionsByCustomer(ctx context.Context, customerPhone string) ([]models.Transaction, error)
	TransactionsByPair(ctx context.Context, vendorPhone, customerPhone string) ([]models.Transaction, error)
	LinksByVendor(ctx context.Context, vendorPhone string) ([]models.VendorCustomerLink, error)
	LinksByCustomer(ctx context.Context, customerPhone string) ([]models.VendorCustomerLink, error)
	CustomersByPhones(ctx context.Context, phones []string) ([]models.Customer, error)
	VendorsByPhones(ctx context.Context, phones []string) ([]models.Vendor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) TransactionsByVendor(ctx context.Context, vendorPhone string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("vendor_phone = ?", vendorPhone).
		Order("created_at DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *repository) TransactionsByCustomer(ctx context.Context, customerPhone string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("customer_phone = ?", customerPhone).
		Order("created_at DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *repository) TransactionsByPair(ctx context.Context, vendorPhone, customerPhone string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("vendor_phone = ? AND customer_phone = ?", vendorPhone, customerPhone).
		Order("created_at DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *repository) LinksByVendor(ctx context.Context, vendorPhone string) ([]models.VendorCustomerLink, error) {
	var links []models.VendorCustomerLink
	if err := r.db.WithContext(ctx).
		Where("vendor_phone = ?", vendorPhone).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) LinksByCustomer(ctx context.Context, customerPhone string) ([]models.VendorCustomerLink, error) {
	var links []models.VendorCustomerLink
	if err := r.db.WithContext(ctx).
		Where("customer_phone = ?", customerPhone).
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) CustomersByPhones(ctx context.Context, phones []string) ([]models.Customer, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	var customers []models.Customer
	if err := r.db.WithContext(ctx).
		Where("phone_number IN ?", phones).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) VendorsByPhones(ctx context.Context, phones []string) ([]models.Vendor, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	var vendors []models.Vendor
	if err := r.db.WithContext(ctx).
		Where("phone_number IN ?", phones).
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}
