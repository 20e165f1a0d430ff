package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopledger/shopledger-backend/internal/ledger"
	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/pagination"
)

type fakeRepository struct {
	createFn           func(ctx context.Context, notification *models.Notification) error
	listFn             func(ctx context.Context, params ListQuery) ([]models.Notification, *pagination.Cursor, error)
	unreadCountFn      func(ctx context.Context, customerPhone string) (int64, error)
	markAllReadFn      func(ctx context.Context, customerPhone string, now time.Time) (int64, error)
	deleteReadBeforeFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, notification *models.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, notification)
	}
	return nil
}

func (f *fakeRepository) List(ctx context.Context, params ListQuery) ([]models.Notification, *pagination.Cursor, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, nil, nil
}

func (f *fakeRepository) UnreadCount(ctx context.Context, customerPhone string) (int64, error) {
	if f.unreadCountFn != nil {
		return f.unreadCountFn(ctx, customerPhone)
	}
	return 0, nil
}

func (f *fakeRepository) MarkAllRead(ctx context.Context, customerPhone string, now time.Time) (int64, error) {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, customerPhone, now)
	}
	return 0, nil
}

func (f *fakeRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if f.deleteReadBeforeFn != nil {
		return f.deleteReadBeforeFn(ctx, cutoff)
	}
	return 0, nil
}

type fakeLedger struct {
	pairBalanceFn func(ctx context.Context, vendorPhone, customerPhone string) (decimal.Decimal, error)
}

func (f *fakeLedger) VendorCustomers(ctx context.Context, vendorPhone string) ([]ledger.CustomerWithBalance, error) {
	return nil, nil
}

func (f *fakeLedger) CustomerShops(ctx context.Context, customerPhone string) ([]ledger.ShopWithBalance, error) {
	return nil, nil
}

func (f *fakeLedger) ShopLedger(ctx context.Context, customerPhone, vendorPhone string) (*ledger.ShopWithBalance, error) {
	return nil, nil
}

func (f *fakeLedger) PairBalance(ctx context.Context, vendorPhone, customerPhone string) (decimal.Decimal, error) {
	if f.pairBalanceFn != nil {
		return f.pairBalanceFn(ctx, vendorPhone, customerPhone)
	}
	return decimal.Zero, nil
}

func (f *fakeLedger) MonthlyReport(ctx context.Context, vendorPhone string, year int, month time.Month) (*ledger.MonthlyReport, error) {
	return nil, nil
}

func newServiceWithFakes(t *testing.T, repo Repository, ledgerSvc ledger.Service) Service {
	t.Helper()
	if repo == nil {
		repo = &fakeRepository{}
	}
	if ledgerSvc == nil {
		ledgerSvc = &fakeLedger{}
	}
	svc, err := NewService(repo, ledgerSvc)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func balanceOf(value string) *fakeLedger {
	return &fakeLedger{
		pairBalanceFn: func(ctx context.Context, vendorPhone, customerPhone string) (decimal.Decimal, error) {
			return decimal.RequireFromString(value), nil
		},
	}
}

func TestSendReminder_DueBalance(t *testing.T) {
	var created *models.Notification
	repo := &fakeRepository{
		createFn: func(ctx context.Context, notification *models.Notification) error {
			created = notification
			return nil
		},
	}
	svc := newServiceWithFakes(t, repo, balanceOf("30"))

	sent, err := svc.SendReminder(context.Background(), testVendor(), "55512345")
	if err != nil {
		t.Fatalf("SendReminder returned error: %v", err)
	}
	if !sent {
		t.Fatal("expected reminder to be sent")
	}
	if created == nil {
		t.Fatal("expected a notification to be created")
	}
	if created.Type != enums.NotificationTypeReminder {
		t.Fatalf("expected Reminder type, got %s", created.Type)
	}
	want := "A friendly reminder that your due balance is 30.00."
	if created.Message != want {
		t.Fatalf("expected %q, got %q", want, created.Message)
	}
}

func TestSendReminder_SkipsNonPositiveBalance(t *testing.T) {
	for _, balance := range []string{"0", "-15.00"} {
		repo := &fakeRepository{
			createFn: func(ctx context.Context, notification *models.Notification) error {
				t.Fatalf("no notification should be created for balance %s", balance)
				return nil
			},
		}
		svc := newServiceWithFakes(t, repo, balanceOf(balance))

		sent, err := svc.SendReminder(context.Background(), testVendor(), "55512345")
		if err != nil {
			t.Fatalf("SendReminder returned error for balance %s: %v", balance, err)
		}
		if sent {
			t.Fatalf("expected a silent skip for balance %s", balance)
		}
	}
}

func TestBulkSendReminder_Counts(t *testing.T) {
	balances := map[string]string{
		"55512345": "30.00",
		"66600000": "0",
		"77700000": "-5.00",
		"88800000": "12.50",
	}
	fake := &fakeLedger{
		pairBalanceFn: func(ctx context.Context, vendorPhone, customerPhone string) (decimal.Decimal, error) {
			return decimal.RequireFromString(balances[customerPhone]), nil
		},
	}
	svc := newServiceWithFakes(t, &fakeRepository{}, fake)

	result, err := svc.BulkSendReminder(context.Background(), testVendor(), []string{"55512345", "66600000", "77700000", "88800000"})
	if err != nil {
		t.Fatalf("BulkSendReminder returned error: %v", err)
	}
	if result.Requested != 4 || result.Sent != 2 || result.Skipped != 2 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestBulkSendReminder_EmptyInput(t *testing.T) {
	svc := newServiceWithFakes(t, nil, nil)
	_, err := svc.BulkSendReminder(context.Background(), testVendor(), nil)
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestList_CursorRoundTrip(t *testing.T) {
	next := pagination.Cursor{CreatedAt: time.Now().UTC().Truncate(time.Microsecond), ID: uuid.New()}
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params ListQuery) ([]models.Notification, *pagination.Cursor, error) {
			if params.Limit != 2 {
				t.Fatalf("expected limit to pass through unchanged, got %d", params.Limit)
			}
			return []models.Notification{{ID: uuid.New()}, {ID: uuid.New()}}, &next, nil
		},
	}
	svc := newServiceWithFakes(t, repo, nil)

	result, err := svc.List(context.Background(), ListParams{CustomerPhone: "55512345", Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Cursor == "" {
		t.Fatal("expected a next-page cursor")
	}

	decoded, err := pagination.ParseCursor(result.Cursor)
	if err != nil {
		t.Fatalf("cursor should round-trip: %v", err)
	}
	if decoded.ID != next.ID || !decoded.CreatedAt.Equal(next.CreatedAt) {
		t.Fatalf("cursor mismatch: got %+v, want %+v", decoded, next)
	}
}

func TestList_SecondPageDecodesCursor(t *testing.T) {
	cursor := pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params ListQuery) ([]models.Notification, *pagination.Cursor, error) {
			if params.Cursor == nil || params.Cursor.ID != cursor.ID {
				t.Fatalf("expected decoded cursor in repo params, got %+v", params.Cursor)
			}
			return nil, nil, nil
		},
	}
	svc := newServiceWithFakes(t, repo, nil)

	result, err := svc.List(context.Background(), ListParams{
		CustomerPhone: "55512345",
		Cursor:        pagination.EncodeCursor(cursor),
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Items == nil {
		t.Fatal("items should normalize to an empty slice")
	}
	if result.Cursor != "" {
		t.Fatalf("expected no further cursor, got %q", result.Cursor)
	}
}

func TestList_InvalidCursor(t *testing.T) {
	svc := newServiceWithFakes(t, nil, nil)
	_, err := svc.List(context.Background(), ListParams{CustomerPhone: "55512345", Cursor: "not-a-cursor"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMarkAllRead_ScopedToCustomer(t *testing.T) {
	repo := &fakeRepository{
		markAllReadFn: func(ctx context.Context, customerPhone string, now time.Time) (int64, error) {
			if customerPhone != "55512345" {
				t.Fatalf("expected scoping to the calling customer, got %s", customerPhone)
			}
			return 3, nil
		},
	}
	svc := newServiceWithFakes(t, repo, nil)

	updated, err := svc.MarkAllRead(context.Background(), "55512345")
	if err != nil {
		t.Fatalf("MarkAllRead returned error: %v", err)
	}
	if updated != 3 {
		t.Fatalf("expected 3 rows updated, got %d", updated)
	}
}
