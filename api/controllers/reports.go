package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopledger/shopledger-backend/api/middleware"
	"github.com/shopledger/shopledger-backend/api/responses"
	"github.com/shopledger/shopledger-backend/internal/ledger"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/logger"
)

// VendorMonthlyReport aggregates per-customer credits and payments for one
// calendar month. Defaults to the current month when year/month are omitted.
func VendorMonthlyReport(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorPhone := middleware.PhoneFromContext(r.Context())
		if vendorPhone == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing"))
			return
		}

		now := time.Now()
		year := now.Year()
		month := now.Month()

		if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "year must be a positive integer"))
				return
			}
			year = value
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("month")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value < 1 || value > 12 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12"))
				return
			}
			month = time.Month(value)
		}

		report, err := svc.MonthlyReport(r.Context(), vendorPhone, year, month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
