package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shopledger/shopledger-backend/api/middleware"
	"github.com/shopledger/shopledger-backend/api/responses"
	"github.com/shopledger/shopledger-backend/api/validators"
	"github.com/shopledger/shopledger-backend/internal/customers"
	"github.com/shopledger/shopledger-backend/internal/ledger"
	"github.com/shopledger/shopledger-backend/internal/notifications"
	"github.com/shopledger/shopledger-backend/internal/transactions"
	"github.com/shopledger/shopledger-backend/internal/vendors"
	"github.com/shopledger/shopledger-backend/pkg/db/models"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/logger"
)

type bulkPhonesRequest struct {
	PhoneNumbers []string `json:"phone_numbers" validate:"required,min=1,dive,len=8,numeric"`
}

func requireVendor(r *http.Request, svc vendors.Service) (*models.Vendor, error) {
	phone := middleware.PhoneFromContext(r.Context())
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}
	return svc.GetByPhone(r.Context(), phone)
}

// VendorListCustomers returns the vendor's customers with balances and
// sorted transaction history. Optional ?q= filters by name or phone.
func VendorListCustomers(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := middleware.PhoneFromContext(r.Context())
		if phone == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing"))
			return
		}

		rows, err := svc.VendorCustomers(r.Context(), phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q"))); q != "" {
			filtered := rows[:0]
			for _, row := range rows {
				if strings.Contains(strings.ToLower(row.Customer.Name), q) ||
					strings.Contains(row.Customer.PhoneNumber, q) {
					filtered = append(filtered, row)
				}
			}
			rows = filtered
		}

		responses.WriteSuccess(w, map[string]any{"items": rows})
	}
}

// VendorAddCustomer registers a customer to the vendor's credit book.
func VendorAddCustomer(svc customers.Service, vendorsSvc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendor, err := requireVendor(r, vendorsSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req customers.AddCustomerInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Add(r.Context(), *vendor, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := http.StatusOK
		if result.CreatedGlobal || result.LinkedToVendor {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

// VendorUpdateCustomer rewrites the registry record for one customer.
func VendorUpdateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerPhone := chi.URLParam(r, "phone")
		var req customers.UpdateCustomerInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customer, err := svc.Update(r.Context(), customerPhone, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// VendorDeleteCustomer removes the vendor's transactions and link for one
// customer; the global registry record stays.
func VendorDeleteCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorPhone := middleware.PhoneFromContext(r.Context())
		customerPhone := chi.URLParam(r, "phone")
		if err := svc.Delete(r.Context(), vendorPhone, customerPhone); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// VendorBulkDeleteCustomers applies the delete to a set of customers in one
// transaction.
func VendorBulkDeleteCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorPhone := middleware.PhoneFromContext(r.Context())
		var req bulkPhonesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.BulkDelete(r.Context(), vendorPhone, req.PhoneNumbers); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"status":  "deleted",
			"deleted": len(req.PhoneNumbers),
		})
	}
}

// VendorAddTransaction records a credit or payment for one customer.
func VendorAddTransaction(svc transactions.Service, vendorsSvc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendor, err := requireVendor(r, vendorsSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customerPhone := chi.URLParam(r, "phone")
		var req transactions.AddTransactionInput
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tx, err := svc.Add(r.Context(), *vendor, customerPhone, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tx)
	}
}

// VendorSendReminder nudges one customer if they owe the vendor.
func VendorSendReminder(svc notifications.Service, vendorsSvc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendor, err := requireVendor(r, vendorsSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customerPhone := chi.URLParam(r, "phone")
		sent, err := svc.SendReminder(r.Context(), *vendor, customerPhone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"sent": sent})
	}
}

// VendorBulkSendReminder nudges a set of customers; only those with a due
// balance get a notification.
func VendorBulkSendReminder(svc notifications.Service, vendorsSvc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendor, err := requireVendor(r, vendorsSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req bulkPhonesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.BulkSendReminder(r.Context(), *vendor, req.PhoneNumbers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
