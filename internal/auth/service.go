package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/internal/customers"
	"github.com/shopledger/shopledger-backend/internal/vendors"
	"github.com/shopledger/shopledger-backend/pkg/auth"
	"github.com/shopledger/shopledger-backend/pkg/config"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/phone"
	"github.com/shopledger/shopledger-backend/pkg/security"
)

// otpStore is the injected OTP capability; the login contract does not depend
// on how codes are delivered or verified.
type otpStore interface {
	Issue(ctx context.Context, role enums.ActorRole, phone string) (string, error)
	Verify(ctx context.Context, role enums.ActorRole, phone, code string) (bool, error)
}

// Service runs the two-step login: request a code, then trade code for token.
type Service interface {
	RequestVendorOTP(ctx context.Context, phoneNumber, password string) error
	RequestCustomerOTP(ctx context.Context, phoneNumber string) error
	VerifyOTP(ctx context.Context, role enums.ActorRole, phoneNumber, code string) (*TokenResult, error)
}

type service struct {
	vendors   vendors.Repository
	customers customers.Repository
	otp       otpStore
	jwtCfg    config.JWTConfig
}

// TokenResult is the successful login response.
type TokenResult struct {
	AccessToken string          `json:"access_token"`
	Role        enums.ActorRole `json:"role"`
	Phone       string          `json:"phone"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// NewService wires auth dependencies.
func NewService(vendorsRepo vendors.Repository, customersRepo customers.Repository, otp otpStore, jwtCfg config.JWTConfig) (Service, error) {
	if vendorsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "vendors repository required")
	}
	if customersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customers repository required")
	}
	if otp == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "otp store required")
	}
	return &service{
		vendors:   vendorsRepo,
		customers: customersRepo,
		otp:       otp,
		jwtCfg:    jwtCfg,
	}, nil
}

// RequestVendorOTP checks the vendor's password before issuing a code. The
// two rejection reasons are deliberately distinct so the client can surface
// them near the right field.
func (s *service) RequestVendorOTP(ctx context.Context, phoneNumber, password string) error {
	if !phone.Valid(phoneNumber) {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number must be exactly 8 digits").
			WithDetails(map[string]string{"phone_number": "must be exactly 8 digits"})
	}
	if password == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "password required").
			WithDetails(map[string]string{"password": "required"})
	}

	vendor, err := s.vendors.FindByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no such account")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup vendor")
	}

	ok, err := security.VerifyPassword(vendor.PasswordHash, password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "wrong password")
	}

	if _, err := s.otp.Issue(ctx, enums.ActorRoleVendor, phoneNumber); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue otp")
	}
	return nil
}

func (s *service) RequestCustomerOTP(ctx context.Context, phoneNumber string) error {
	if !phone.Valid(phoneNumber) {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone number must be exactly 8 digits").
			WithDetails(map[string]string{"phone_number": "must be exactly 8 digits"})
	}

	if _, err := s.customers.FindByPhone(ctx, phoneNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no such account")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}

	if _, err := s.otp.Issue(ctx, enums.ActorRoleCustomer, phoneNumber); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue otp")
	}
	return nil
}

// VerifyOTP consumes the challenge and mints an access token carrying the
// phone number and role.
func (s *service) VerifyOTP(ctx context.Context, role enums.ActorRole, phoneNumber, code string) (*TokenResult, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be vendor or customer")
	}
	if !phone.Valid(phoneNumber) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number must be exactly 8 digits").
			WithDetails(map[string]string{"phone_number": "must be exactly 8 digits"})
	}
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code required").
			WithDetails(map[string]string{"code": "required"})
	}

	if err := s.accountExists(ctx, role, phoneNumber); err != nil {
		return nil, err
	}

	ok, err := s.otp.Verify(ctx, role, phoneNumber, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify otp")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired code")
	}

	now := time.Now().UTC()
	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		Phone: phoneNumber,
		Role:  role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenResult{
		AccessToken: token,
		Role:        role,
		Phone:       phoneNumber,
		ExpiresAt:   now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
	}, nil
}

func (s *service) accountExists(ctx context.Context, role enums.ActorRole, phoneNumber string) error {
	var err error
	switch role {
	case enums.ActorRoleVendor:
		_, err = s.vendors.FindByPhone(ctx, phoneNumber)
	case enums.ActorRoleCustomer:
		_, err = s.customers.FindByPhone(ctx, phoneNumber)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no such account")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup account")
	}
	return nil
}
