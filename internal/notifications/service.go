package notifications

import (
	"context"
	"time"

	"github.com/shopledger/shopledger-backend/internal/ledger"
	"github.com/shopledger/shopledger-backend/pkg/db/models"
	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/pagination"
)

// Service defines notification list/read operations plus the reminder flow.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	UnreadCount(ctx context.Context, customerPhone string) (int64, error)
	MarkAllRead(ctx context.Context, customerPhone string) (int64, error)
	SendReminder(ctx context.Context, vendor models.Vendor, customerPhone string) (bool, error)
	BulkSendReminder(ctx context.Context, vendor models.Vendor, customerPhones []string) (*BulkReminderResult, error)
}

type service struct {
	repo   Repository
	ledger ledger.Service
}

// ListParams configures pagination for a customer's notification feed.
type ListParams struct {
	CustomerPhone string
	Limit         int
	Cursor        string
	UnreadOnly    bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// BulkReminderResult reports how many reminders were actually emitted; only
// customers with a due balance get one.
type BulkReminderResult struct {
	Requested int `json:"requested"`
	Sent      int `json:"sent"`
	Skipped   int `json:"skipped"`
}

// NewService wires notification dependencies.
func NewService(repo Repository, ledgerSvc ledger.Service) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if ledgerSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ledger service required")
	}
	return &service{repo: repo, ledger: ledgerSvc}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.CustomerPhone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}

	query := ListQuery{
		CustomerPhone: params.CustomerPhone,
		Limit:         params.Limit,
		UnreadOnly:    params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	if rows == nil {
		rows = []models.Notification{}
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) UnreadCount(ctx context.Context, customerPhone string) (int64, error) {
	if customerPhone == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	count, err := s.repo.UnreadCount(ctx, customerPhone)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}
	return count, nil
}

// MarkAllRead flips every unread notification for one customer. Other
// customers' notifications are never touched.
func (s *service) MarkAllRead(ctx context.Context, customerPhone string) (int64, error) {
	if customerPhone == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}
	count, err := s.repo.MarkAllRead(ctx, customerPhone, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

// SendReminder emits a Reminder only when the customer currently owes the
// vendor. A non-positive balance is a silent skip, not an error. Returns
// whether a reminder was actually sent.
func (s *service) SendReminder(ctx context.Context, vendor models.Vendor, customerPhone string) (bool, error) {
	if vendor.PhoneNumber == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "vendor phone required")
	}
	if customerPhone == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "customer phone required")
	}

	balance, err := s.ledger.PairBalance(ctx, vendor.PhoneNumber, customerPhone)
	if err != nil {
		return false, err
	}
	if balance.Sign() <= 0 {
		return false, nil
	}

	notification := NewReminder(vendor, customerPhone, balance)
	if err := s.repo.Create(ctx, notification); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reminder notification")
	}
	return true, nil
}

// BulkSendReminder applies the reminder gating to each phone; the result
// counts only customers that actually had a due balance.
func (s *service) BulkSendReminder(ctx context.Context, vendor models.Vendor, customerPhones []string) (*BulkReminderResult, error) {
	if len(customerPhones) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one customer phone required")
	}

	result := &BulkReminderResult{Requested: len(customerPhones)}
	for _, phone := range customerPhones {
		sent, err := s.SendReminder(ctx, vendor, phone)
		if err != nil {
			return nil, err
		}
		if sent {
			result.Sent++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}
