package customers

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/internal/notifications"
	"github.com/shopledger/shopledger-backend/pkg/db/models"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/phone"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service covers the vendor-facing write operations on the customer registry
// and link table.
type Service interface {
	Add(ctx context.Context, vendor models.Vendor, input AddCustomerInput) (*AddCustomerResult, error)
	Update(ctx context.Context, customerPhone string, input UpdateCustomerInput) (*models.Customer, error)
	Delete(ctx context.Context, vendorPhone, customerPhone string) error
	BulkDelete(ctx context.Context, vendorPhone string, customerPhones []string) error
	GetByPhone(ctx context.Context, customerPhone string) (*models.Customer, error)
}

type service struct {
	repo      Repository
	notifRepo notifications.Repository
	tx        txRunner
}

// AddCustomerInput is the data a vendor supplies when adding a customer.
type AddCustomerInput struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,len=8,numeric"`
}

// AddCustomerResult reports what the add actually did; repeated adds of the
// same phone are no-ops past the first.
type AddCustomerResult struct {
	Customer       models.Customer `json:"customer"`
	CreatedGlobal  bool            `json:"created_global"`
	LinkedToVendor bool            `json:"linked_to_vendor"`
}

// UpdateCustomerInput overwrites the registry record's mutable fields.
// Transactions and links keep referencing the old phone number on a phone
// change; the registry record is the only thing rewritten here.
type UpdateCustomerInput struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,len=8,numeric"`
}

// NewService wires customer registry dependencies.
func NewService(repo Repository, notifRepo notifications.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customers repository required")
	}
	if notifRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, notifRepo: notifRepo, tx: tx}, nil
}

// Add creates the customer globally if absent, links them to the vendor if
// not already linked, and emits the Welcome notification only when the
// customer is globally new. Everything happens inside one transaction, so a
// repeated call cannot leave a duplicate record, link or notification.
func (s *service) Add(ctx context.Context, vendor models.Vendor, input AddCustomerInput) (*AddCustomerResult, error) {
	if vendor.PhoneNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required").
			WithDetails(map[string]string{"name": "required"})
	}
	if !phone.Valid(input.PhoneNumber) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number must be exactly 8 digits").
			WithDetails(map[string]string{"phone_number": "must be exactly 8 digits"})
	}

	result := &AddCustomerResult{}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := repo.FindByPhone(ctx, input.PhoneNumber)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
			}
			customer = &models.Customer{Name: name, PhoneNumber: input.PhoneNumber}
			if err := repo.Create(ctx, customer); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
			}
			result.CreatedGlobal = true
		}
		result.Customer = *customer

		linked, err := repo.LinkExists(ctx, vendor.PhoneNumber, customer.PhoneNumber)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor link")
		}
		if !linked {
			link := &models.VendorCustomerLink{
				VendorPhone:   vendor.PhoneNumber,
				CustomerPhone: customer.PhoneNumber,
			}
			if err := repo.CreateLink(ctx, link); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor link")
			}
			result.LinkedToVendor = true
		}

		if result.CreatedGlobal {
			welcome := notifications.NewWelcome(vendor, customer.PhoneNumber)
			if err := s.notifRepo.WithTx(tx).Create(ctx, welcome); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create welcome notification")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, customerPhone string, input UpdateCustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required").
			WithDetails(map[string]string{"name": "required"})
	}
	if !phone.Valid(input.PhoneNumber) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number must be exactly 8 digits").
			WithDetails(map[string]string{"phone_number": "must be exactly 8 digits"})
	}

	customer, err := s.repo.FindByPhone(ctx, customerPhone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}

	if input.PhoneNumber != customer.PhoneNumber {
		if _, err := s.repo.FindByPhone(ctx, input.PhoneNumber); err == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "another customer already uses this phone number")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check phone uniqueness")
		}
	}

	customer.Name = name
	customer.PhoneNumber = input.PhoneNumber
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return customer, nil
}

// Delete removes the vendor's transactions with the customer and the link for
// the pair. The global registry record and already-sent notifications stay.
func (s *service) Delete(ctx context.Context, vendorPhone, customerPhone string) error {
	if vendorPhone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}
	if customerPhone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	return s.BulkDelete(ctx, vendorPhone, []string{customerPhone})
}

// BulkDelete removes the vendor-scoped data for every listed customer in one
// transaction: either all of it goes, or none does.
func (s *service) BulkDelete(ctx context.Context, vendorPhone string, customerPhones []string) error {
	if vendorPhone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}
	if len(customerPhones) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one customer phone required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.DeletePairTransactions(ctx, vendorPhone, customerPhones); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pair transactions")
		}
		if _, err := repo.DeleteLinks(ctx, vendorPhone, customerPhones); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor links")
		}
		return nil
	})
}

func (s *service) GetByPhone(ctx context.Context, customerPhone string) (*models.Customer, error) {
	if customerPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	customer, err := s.repo.FindByPhone(ctx, customerPhone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}
	return customer, nil
}
