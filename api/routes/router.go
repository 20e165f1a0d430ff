package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopledger/shopledger-backend/api/controllers"
	"github.com/shopledger/shopledger-backend/api/middleware"
	"github.com/shopledger/shopledger-backend/internal/auth"
	"github.com/shopledger/shopledger-backend/internal/customers"
	"github.com/shopledger/shopledger-backend/internal/ledger"
	"github.com/shopledger/shopledger-backend/internal/notifications"
	"github.com/shopledger/shopledger-backend/internal/transactions"
	"github.com/shopledger/shopledger-backend/internal/vendors"
	"github.com/shopledger/shopledger-backend/pkg/config"
	"github.com/shopledger/shopledger-backend/pkg/db"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	"github.com/shopledger/shopledger-backend/pkg/logger"
	"github.com/shopledger/shopledger-backend/pkg/redis"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         *redis.Client
	Auth          auth.Service
	Vendors       vendors.Service
	Customers     customers.Service
	Transactions  transactions.Service
	Notifications notifications.Service
	Ledger        ledger.Service
}

// NewRouter wires middleware and the full route tree.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	otpPolicy := middleware.NewOTPRateLimitPolicy(
		"otp",
		cfg.OTPRateLimit.Window,
		cfg.OTPRateLimit.IPLimit,
		cfg.OTPRateLimit.PhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.OTPRateLimit(otpPolicy, deps.Redis, logg)).
			Post("/vendor/otp", controllers.VendorOTPRequest(deps.Auth, logg))
		r.With(middleware.OTPRateLimit(otpPolicy, deps.Redis, logg)).
			Post("/customer/otp", controllers.CustomerOTPRequest(deps.Auth, logg))
		r.Post("/verify", controllers.VerifyOTP(deps.Auth, logg))
	})

	r.Post("/api/v1/vendors", controllers.RegisterVendor(deps.Vendors, logg))

	r.Route("/api/v1/vendor", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleVendor, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.VendorListCustomers(deps.Ledger, logg))
			r.Post("/", controllers.VendorAddCustomer(deps.Customers, deps.Vendors, logg))
			r.Post("/bulk-delete", controllers.VendorBulkDeleteCustomers(deps.Customers, logg))
			r.Patch("/{phone}", controllers.VendorUpdateCustomer(deps.Customers, logg))
			r.Delete("/{phone}", controllers.VendorDeleteCustomer(deps.Customers, logg))
			r.Post("/{phone}/transactions", controllers.VendorAddTransaction(deps.Transactions, deps.Vendors, logg))
			r.Post("/{phone}/reminders", controllers.VendorSendReminder(deps.Notifications, deps.Vendors, logg))
		})

		r.Post("/reminders", controllers.VendorBulkSendReminder(deps.Notifications, deps.Vendors, logg))
		r.Get("/reports/monthly", controllers.VendorMonthlyReport(deps.Ledger, logg))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.VendorProfile(deps.Vendors, logg))
			r.Put("/", controllers.VendorUpdateProfile(deps.Vendors, logg))
			r.Patch("/status", controllers.VendorUpdateStatus(deps.Vendors, logg))
		})
	})

	r.Route("/api/v1/customer", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleCustomer, logg))

		r.Get("/shops", controllers.CustomerShops(deps.Ledger, logg))
		r.Get("/shops/{vendorPhone}", controllers.CustomerShopLedger(deps.Ledger, logg))
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.CustomerNotifications(deps.Notifications, logg))
			r.Get("/unread-count", controllers.CustomerUnreadCount(deps.Notifications, logg))
			r.Post("/read-all", controllers.CustomerMarkAllRead(deps.Notifications, logg))
		})
	})

	return r
}
