package vendors

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/pkg/config"
	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/phone"
	"github.com/shopledger/shopledger-backend/pkg/security"
)

// Service manages the vendor registry: registration, shop detail edits and
// the open/closed status toggle.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Vendor, error)
	UpdateDetails(ctx context.Context, vendorPhone string, input UpdateDetailsInput) (*models.Vendor, error)
	UpdateStatus(ctx context.Context, vendorPhone string, status string) (*models.Vendor, error)
	GetByPhone(ctx context.Context, vendorPhone string) (*models.Vendor, error)
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// RegisterInput carries the full vendor registration payload.
type RegisterInput struct {
	FullName        string `json:"full_name" validate:"required"`
	PhoneNumber     string `json:"phone_number" validate:"required,len=8,numeric"`
	Password        string `json:"password" validate:"required,min=6"`
	ShopName        string `json:"shop_name" validate:"required"`
	ShopType        string `json:"shop_type" validate:"required"`
	ShopLocation    string `json:"shop_location" validate:"required"`
	ShopDescription string `json:"shop_description"`
	ShopStatus      string `json:"shop_status"`
	ShopLogo        string `json:"shop_logo"`
}

// UpdateDetailsInput overwrites the mutable shop fields. Status has its own
// operation and is not part of this payload.
type UpdateDetailsInput struct {
	FullName        string `json:"full_name" validate:"required"`
	ShopName        string `json:"shop_name" validate:"required"`
	ShopType        string `json:"shop_type" validate:"required"`
	ShopLocation    string `json:"shop_location" validate:"required"`
	ShopDescription string `json:"shop_description"`
	ShopLogo        string `json:"shop_logo"`
}

// NewService wires vendor registry dependencies.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "vendors repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Vendor, error) {
	if !phone.Valid(input.PhoneNumber) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number must be exactly 8 digits").
			WithDetails(map[string]string{"phone_number": "must be exactly 8 digits"})
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name required").
			WithDetails(map[string]string{"full_name": "required"})
	}
	if strings.TrimSpace(input.ShopName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name required").
			WithDetails(map[string]string{"shop_name": "required"})
	}
	if input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password required").
			WithDetails(map[string]string{"password": "required"})
	}
	shopType, err := enums.ParseShopType(input.ShopType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop type").
			WithDetails(map[string]string{"shop_type": "invalid"})
	}
	status := enums.ShopStatusOpen
	if input.ShopStatus != "" {
		status, err = enums.ParseShopStatus(input.ShopStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop status").
				WithDetails(map[string]string{"shop_status": "invalid"})
		}
	}

	if _, err := s.repo.FindByPhone(ctx, input.PhoneNumber); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a vendor with this phone number already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor uniqueness")
	}

	hash, err := security.HashPassword(s.passwordCfg, input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	vendor := &models.Vendor{
		FullName:        strings.TrimSpace(input.FullName),
		PhoneNumber:     input.PhoneNumber,
		PasswordHash:    hash,
		ShopName:        strings.TrimSpace(input.ShopName),
		ShopType:        shopType,
		ShopLocation:    strings.TrimSpace(input.ShopLocation),
		ShopDescription: strings.TrimSpace(input.ShopDescription),
		ShopStatus:      status,
		ShopLogo:        input.ShopLogo,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return vendor, nil
}

func (s *service) UpdateDetails(ctx context.Context, vendorPhone string, input UpdateDetailsInput) (*models.Vendor, error) {
	vendor, err := s.GetByPhone(ctx, vendorPhone)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name required").
			WithDetails(map[string]string{"full_name": "required"})
	}
	if strings.TrimSpace(input.ShopName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name required").
			WithDetails(map[string]string{"shop_name": "required"})
	}
	shopType, err := enums.ParseShopType(input.ShopType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop type").
			WithDetails(map[string]string{"shop_type": "invalid"})
	}

	vendor.FullName = strings.TrimSpace(input.FullName)
	vendor.ShopName = strings.TrimSpace(input.ShopName)
	vendor.ShopType = shopType
	vendor.ShopLocation = strings.TrimSpace(input.ShopLocation)
	vendor.ShopDescription = strings.TrimSpace(input.ShopDescription)
	vendor.ShopLogo = input.ShopLogo
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return vendor, nil
}

// UpdateStatus toggles Open/Closed without touching any other field.
func (s *service) UpdateStatus(ctx context.Context, vendorPhone string, status string) (*models.Vendor, error) {
	parsed, err := enums.ParseShopStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop status").
			WithDetails(map[string]string{"shop_status": "invalid"})
	}

	vendor, err := s.GetByPhone(ctx, vendorPhone)
	if err != nil {
		return nil, err
	}
	vendor.ShopStatus = parsed
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop status")
	}
	return vendor, nil
}

func (s *service) GetByPhone(ctx context.Context, vendorPhone string) (*models.Vendor, error) {
	if vendorPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}
	vendor, err := s.repo.FindByPhone(ctx, vendorPhone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup vendor")
	}
	return vendor, nil
}
