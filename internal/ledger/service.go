package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
)

// Service derives ledger views from the transaction log, link table and
// registries. Everything is recomputed from scratch on each read; mutations
// commit before they return, so reads always see the latest write.
type Service interface {
	VendorCustomers(ctx context.Context, vendorPhone string) ([]CustomerWithBalance, error)
	CustomerShops(ctx context.Context, customerPhone string) ([]ShopWithBalance, error)
	ShopLedger(ctx context.Context, customerPhone, vendorPhone string) (*ShopWithBalance, error)
	PairBalance(ctx context.Context, vendorPhone, customerPhone string) (decimal.Decimal, error)
	MonthlyReport(ctx context.Context, vendorPhone string, year int, month time.Month) (*MonthlyReport, error)
}

type service struct {
	repo Repository
}

// CustomerWithBalance is the vendor-side projection of one customer.
type CustomerWithBalance struct {
	Customer     models.Customer      `json:"customer"`
	Balance      decimal.Decimal      `json:"balance"`
	State        BalanceState         `json:"state"`
	Transactions []models.Transaction `json:"transactions"`
}

// ShopWithBalance is the customer-side projection of one shop.
type ShopWithBalance struct {
	Vendor       models.Vendor        `json:"vendor"`
	Balance      decimal.Decimal      `json:"balance"`
	State        BalanceState         `json:"state"`
	Transactions []models.Transaction `json:"transactions"`
}

// ReportRow aggregates one customer's activity for a calendar month.
type ReportRow struct {
	Customer     models.Customer `json:"customer"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	TotalPayment decimal.Decimal `json:"total_payment"`
	NetChange    decimal.Decimal `json:"net_change"`
}

// MonthlyReport holds the per-customer rows plus column-wise grand totals.
type MonthlyReport struct {
	Year         int             `json:"year"`
	Month        time.Month      `json:"month"`
	Rows         []ReportRow     `json:"rows"`
	TotalCredit  decimal.Decimal `json:"total_credit"`
	TotalPayment decimal.Decimal `json:"total_payment"`
	NetChange    decimal.Decimal `json:"net_change"`
}

// NewService wires the derivation engine with its repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ledger repository required")
	}
	return &service{repo: repo}, nil
}

// VendorCustomers lists every customer known to the vendor: the union of
// customers appearing in the vendor's transactions and in its links. A
// link-only customer appears with a zero balance and no transactions.
// Customers missing from the registry are skipped.
func (s *service) VendorCustomers(ctx context.Context, vendorPhone string) ([]CustomerWithBalance, error) {
	if vendorPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}

	txs, err := s.repo.TransactionsByVendor(ctx, vendorPhone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor transactions")
	}
	links, err := s.repo.LinksByVendor(ctx, vendorPhone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor links")
	}

	txsByCustomer := make(map[string][]models.Transaction)
	phones := make([]string, 0, len(links))
	seen := make(map[string]struct{})
	for _, tx := range txs {
		txsByCustomer[tx.CustomerPhone] = append(txsByCustomer[tx.CustomerPhone], tx)
		if _, ok := seen[tx.CustomerPhone]; !ok {
			seen[tx.CustomerPhone] = struct{}{}
			phones = append(phones, tx.CustomerPhone)
		}
	}
	for _, link := range links {
		if _, ok := seen[link.CustomerPhone]; !ok {
			seen[link.CustomerPhone] = struct{}{}
			phones = append(phones, link.CustomerPhone)
		}
	}

	customers, err := s.repo.CustomersByPhones(ctx, phones)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve customers")
	}

	out := make([]CustomerWithBalance, 0, len(customers))
	for _, customer := range customers {
		customerTxs := txsByCustomer[customer.PhoneNumber]
		if customerTxs == nil {
			customerTxs = []models.Transaction{}
		}
		SortNewestFirst(customerTxs)
		balance := Balance(customerTxs)
		out = append(out, CustomerWithBalance{
			Customer:     customer,
			Balance:      balance,
			State:        StateOf(balance),
			Transactions: customerTxs,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Customer.Name < out[j].Customer.Name
	})
	return out, nil
}

// CustomerShops is the symmetric view: the union of vendors from the
// customer's transactions and from links pointing at the customer, so a shop
// that added the customer but never recorded a transaction still shows up
// with a zero balance.
func (s *service) CustomerShops(ctx context.Context, customerPhone string) ([]ShopWithBalance, error) {
	if customerPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}

	txs, err := s.repo.TransactionsByCustomer(ctx, customerPhone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer transactions")
	}
	links, err := s.repo.LinksByCustomer(ctx, customerPhone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer links")
	}

	txsByVendor := make(map[string][]models.Transaction)
	phones := make([]string, 0, len(links))
	seen := make(map[string]struct{})
	for _, tx := range txs {
		txsByVendor[tx.VendorPhone] = append(txsByVendor[tx.VendorPhone], tx)
		if _, ok := seen[tx.VendorPhone]; !ok {
			seen[tx.VendorPhone] = struct{}{}
			phones = append(phones, tx.VendorPhone)
		}
	}
	for _, link := range links {
		if _, ok := seen[link.VendorPhone]; !ok {
			seen[link.VendorPhone] = struct{}{}
			phones = append(phones, link.VendorPhone)
		}
	}

	vendors, err := s.repo.VendorsByPhones(ctx, phones)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve vendors")
	}

	out := make([]ShopWithBalance, 0, len(vendors))
	for _, vendor := range vendors {
		vendorTxs := txsByVendor[vendor.PhoneNumber]
		if vendorTxs == nil {
			vendorTxs = []models.Transaction{}
		}
		SortNewestFirst(vendorTxs)
		balance := Balance(vendorTxs)
		out = append(out, ShopWithBalance{
			Vendor:       vendor,
			Balance:      balance,
			State:        StateOf(balance),
			Transactions: vendorTxs,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Vendor.ShopName < out[j].Vendor.ShopName
	})
	return out, nil
}

// ShopLedger returns one (customer, vendor) ledger for the customer's shop
// detail view.
func (s *service) ShopLedger(ctx context.Context, customerPhone, vendorPhone string) (*ShopWithBalance, error) {
	if customerPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	if vendorPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}

	vendors, err := s.repo.VendorsByPhones(ctx, []string{vendorPhone})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve vendor")
	}
	if len(vendors) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}

	txs, err := s.repo.TransactionsByPair(ctx, vendorPhone, customerPhone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pair transactions")
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	SortNewestFirst(txs)
	balance := Balance(txs)
	return &ShopWithBalance{
		Vendor:       vendors[0],
		Balance:      balance,
		State:        StateOf(balance),
		Transactions: txs,
	}, nil
}

// PairBalance computes the net owed amount for one (vendor, customer) pair.
func (s *service) PairBalance(ctx context.Context, vendorPhone, customerPhone string) (decimal.Decimal, error) {
	if vendorPhone == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}
	if customerPhone == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	txs, err := s.repo.TransactionsByPair(ctx, vendorPhone, customerPhone)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pair transactions")
	}
	return Balance(txs), nil
}

// MonthlyReport aggregates per-customer Credit/Payment sums for the calendar
// month using each transaction's local date components. Customers whose
// sums are both zero for the month are excluded; grand totals are the column
// sums of the included rows.
func (s *service) MonthlyReport(ctx context.Context, vendorPhone string, year int, month time.Month) (*MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12")
	}

	customers, err := s.VendorCustomers(ctx, vendorPhone)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Year:         year,
		Month:        month,
		Rows:         []ReportRow{},
		TotalCredit:  decimal.Zero,
		TotalPayment: decimal.Zero,
		NetChange:    decimal.Zero,
	}
	for _, customer := range customers {
		credit := decimal.Zero
		payment := decimal.Zero
		for _, tx := range customer.Transactions {
			if tx.CreatedAt.Year() != year || tx.CreatedAt.Month() != month {
				continue
			}
			switch tx.Type {
			case enums.TransactionTypeCredit:
				credit = credit.Add(tx.Amount)
			case enums.TransactionTypePayment:
				payment = payment.Add(tx.Amount)
			}
		}
		if credit.IsZero() && payment.IsZero() {
			continue
		}
		report.Rows = append(report.Rows, ReportRow{
			Customer:     customer.Customer,
			TotalCredit:  credit,
			TotalPayment: payment,
			NetChange:    credit.Sub(payment),
		})
		report.TotalCredit = report.TotalCredit.Add(credit)
		report.TotalPayment = report.TotalPayment.Add(payment)
	}
	report.NetChange = report.TotalCredit.Sub(report.TotalPayment)
	return report, nil
}
