package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shopledger/shopledger-backend/api/middleware"
	"github.com/shopledger/shopledger-backend/api/responses"
	"github.com/shopledger/shopledger-backend/internal/ledger"
	"github.com/shopledger/shopledger-backend/internal/notifications"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/logger"
)

func requireCustomerPhone(r *http.Request) (string, error) {
	phone := middleware.PhoneFromContext(r.Context())
	if phone == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	return phone, nil
}

// CustomerShops lists every shop the customer has a relationship with,
// including ones that added them but have no transactions yet.
func CustomerShops(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone, err := requireCustomerPhone(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shops, err := svc.CustomerShops(r.Context(), phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": shops})
	}
}

// CustomerShopLedger returns one shop's ledger from the customer's side.
func CustomerShopLedger(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone, err := requireCustomerPhone(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendorPhone := chi.URLParam(r, "vendorPhone")
		shop, err := svc.ShopLedger(r.Context(), phone, vendorPhone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shop)
	}
}

// CustomerNotifications returns the paginated notification feed.
func CustomerNotifications(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone, err := requireCustomerPhone(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := notifications.ListParams{CustomerPhone: phone}

		if limitStr := strings.TrimSpace(r.URL.Query().Get("limit")); limitStr != "" {
			value, err := strconv.Atoi(limitStr)
			if err != nil || value <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			params.Limit = value
		}
		if cursor := strings.TrimSpace(r.URL.Query().Get("cursor")); cursor != "" {
			params.Cursor = cursor
		}
		if unread := strings.TrimSpace(r.URL.Query().Get("unreadOnly")); unread != "" {
			value, err := strconv.ParseBool(unread)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unreadOnly value"))
				return
			}
			params.UnreadOnly = value
		}

		resp, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// CustomerUnreadCount returns how many notifications are still unread.
func CustomerUnreadCount(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone, err := requireCustomerPhone(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, err := svc.UnreadCount(r.Context(), phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"unread": count})
	}
}

// CustomerMarkAllRead flips every unread notification for the customer.
func CustomerMarkAllRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone, err := requireCustomerPhone(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.MarkAllRead(r.Context(), phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"updated": updated})
	}
}
