package controllers

import (
	"net/http"

	"github.com/shopledger/shopledger-backend/api/responses"
	"github.com/shopledger/shopledger-backend/api/validators"
	"github.com/shopledger/shopledger-backend/internal/auth"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/logger"
)

type vendorOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,len=8,numeric"`
	Password    string `json:"password" validate:"required"`
}

type customerOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,len=8,numeric"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,len=8,numeric"`
	Code        string `json:"code" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=vendor customer"`
}

// VendorOTPRequest starts the vendor login: password check, then a code.
func VendorOTPRequest(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vendorOTPRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RequestVendorOTP(r.Context(), req.PhoneNumber, req.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "otp_sent"})
	}
}

// CustomerOTPRequest starts the customer login.
func CustomerOTPRequest(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req customerOTPRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RequestCustomerOTP(r.Context(), req.PhoneNumber); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "otp_sent"})
	}
}

// VerifyOTP trades a valid code for an access token.
func VerifyOTP(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyOTPRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := enums.ParseActorRole(req.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "role must be vendor or customer"))
			return
		}
		result, err := svc.VerifyOTP(r.Context(), role, req.PhoneNumber, req.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
