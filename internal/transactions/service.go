package transactions

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/internal/customers"
	"github.com/shopledger/shopledger-backend/internal/notifications"
	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records ledger entries and the notification each one produces.
type Service interface {
	Add(ctx context.Context, vendor models.Vendor, customerPhone string, input AddTransactionInput) (*models.Transaction, error)
}

type service struct {
	repo      Repository
	customers customers.Repository
	notifRepo notifications.Repository
	tx        txRunner
}

// AddTransactionInput is the payload for recording a credit or payment.
type AddTransactionInput struct {
	Type        string          `json:"type" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"required"`
}

// NewService wires transaction dependencies.
func NewService(repo Repository, customersRepo customers.Repository, notifRepo notifications.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transactions repository required")
	}
	if customersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customers repository required")
	}
	if notifRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, customers: customersRepo, notifRepo: notifRepo, tx: tx}, nil
}

// Add appends a transaction for the (vendor, customer) pair and emits the
// matching Credit Added / Payment Received notification in the same database
// transaction. The entry is keyed by the resolved customer's phone number.
func (s *service) Add(ctx context.Context, vendor models.Vendor, customerPhone string, input AddTransactionInput) (*models.Transaction, error) {
	if vendor.PhoneNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}
	if customerPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}

	txType, err := enums.ParseTransactionType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction type must be Credit or Payment").
			WithDetails(map[string]string{"type": "must be Credit or Payment"})
	}
	if input.Amount.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive").
			WithDetails(map[string]string{"amount": "must be greater than zero"})
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required").
			WithDetails(map[string]string{"description": "required"})
	}

	customer, err := s.customers.FindByPhone(ctx, customerPhone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}

	transaction := &models.Transaction{
		Type:          txType,
		Amount:        input.Amount,
		Description:   description,
		VendorPhone:   vendor.PhoneNumber,
		CustomerPhone: customer.PhoneNumber,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, transaction); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
		}
		notification := notifications.NewTransaction(vendor, *transaction)
		if err := s.notifRepo.WithTx(tx).Create(ctx, notification); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction notification")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}
