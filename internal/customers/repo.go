package customers

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/pkg/db/models"
)

// Repository exposes persistence for the global customer registry plus the
// vendor-customer link table and the vendor-scoped transaction deletes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	LinkExists(ctx context.Context, vendorPhone, customerPhone string) (bool, error)
	CreateLink(ctx context.Context, link *models.VendorCustomerLink) error
	DeleteLinks(ctx context.Context, vendorPhone string, customerPhones []string) (int64, error)
	DeletePairTransactions(ctx context.Context, vendorPhone string, customerPhones []string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a customers repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *repository) LinkExists(ctx context.Context, vendorPhone, customerPhone string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VendorCustomerLink{}).
		Where("vendor_phone = ? AND customer_phone = ?", vendorPhone, customerPhone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateLink(ctx context.Context, link *models.VendorCustomerLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *repository) DeleteLinks(ctx context.Context, vendorPhone string, customerPhones []string) (int64, error) {
	if len(customerPhones) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("vendor_phone = ? AND customer_phone IN ?", vendorPhone, customerPhones).
		Delete(&models.VendorCustomerLink{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repository) DeletePairTransactions(ctx context.Context, vendorPhone string, customerPhones []string) (int64, error) {
	if len(customerPhones) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("vendor_phone = ? AND customer_phone IN ?", vendorPhone, customerPhones).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
