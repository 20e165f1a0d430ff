package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopledger/shopledger-backend/api/middleware"
	"github.com/shopledger/shopledger-backend/internal/notifications"
	"github.com/shopledger/shopledger-backend/pkg/db/models"
	"github.com/shopledger/shopledger-backend/pkg/enums"
	"github.com/shopledger/shopledger-backend/pkg/logger"
)

type testNotificationsService struct {
	listFn             func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error)
	unreadCountFn      func(ctx context.Context, customerPhone string) (int64, error)
	markAllReadFn      func(ctx context.Context, customerPhone string) (int64, error)
	sendReminderFn     func(ctx context.Context, vendor models.Vendor, customerPhone string) (bool, error)
	bulkSendReminderFn func(ctx context.Context, vendor models.Vendor, customerPhones []string) (*notifications.BulkReminderResult, error)
}

func (s *testNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return &notifications.ListResult{Items: []models.Notification{}}, nil
}

func (s *testNotificationsService) UnreadCount(ctx context.Context, customerPhone string) (int64, error) {
	if s.unreadCountFn != nil {
		return s.unreadCountFn(ctx, customerPhone)
	}
	return 0, nil
}

func (s *testNotificationsService) MarkAllRead(ctx context.Context, customerPhone string) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, customerPhone)
	}
	return 0, nil
}

func (s *testNotificationsService) SendReminder(ctx context.Context, vendor models.Vendor, customerPhone string) (bool, error) {
	if s.sendReminderFn != nil {
		return s.sendReminderFn(ctx, vendor, customerPhone)
	}
	return false, nil
}

func (s *testNotificationsService) BulkSendReminder(ctx context.Context, vendor models.Vendor, customerPhones []string) (*notifications.BulkReminderResult, error) {
	if s.bulkSendReminderFn != nil {
		return s.bulkSendReminderFn(ctx, vendor, customerPhones)
	}
	return &notifications.BulkReminderResult{}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func asCustomer(req *http.Request, phone string) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), phone, string(enums.ActorRoleCustomer)))
}

func TestCustomerNotifications_PassesQueryParams(t *testing.T) {
	var got notifications.ListParams
	svc := &testNotificationsService{
		listFn: func(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
			got = params
			return &notifications.ListResult{Items: []models.Notification{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/notifications?limit=5&cursor=abc&unreadOnly=true", nil)
	req = asCustomer(req, "55512345")
	resp := httptest.NewRecorder()
	CustomerNotifications(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if got.CustomerPhone != "55512345" || got.Limit != 5 || got.Cursor != "abc" || !got.UnreadOnly {
		t.Fatalf("unexpected params: %+v", got)
	}
}

func TestCustomerNotifications_InvalidLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/notifications?limit=zero", nil)
	req = asCustomer(req, "55512345")
	resp := httptest.NewRecorder()
	CustomerNotifications(&testNotificationsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCustomerNotifications_MissingIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/notifications", nil)
	resp := httptest.NewRecorder()
	CustomerNotifications(&testNotificationsService{}, testLogger())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCustomerUnreadCount(t *testing.T) {
	svc := &testNotificationsService{
		unreadCountFn: func(ctx context.Context, customerPhone string) (int64, error) {
			if customerPhone != "55512345" {
				t.Fatalf("unexpected phone %s", customerPhone)
			}
			return 7, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customer/notifications/unread-count", nil)
	req = asCustomer(req, "55512345")
	resp := httptest.NewRecorder()
	CustomerUnreadCount(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["unread"] != 7 {
		t.Fatalf("expected unread 7, got %+v", envelope.Data)
	}
}

func TestCustomerMarkAllRead(t *testing.T) {
	svc := &testNotificationsService{
		markAllReadFn: func(ctx context.Context, customerPhone string) (int64, error) {
			return 3, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customer/notifications/read-all", nil)
	req = asCustomer(req, "55512345")
	resp := httptest.NewRecorder()
	CustomerMarkAllRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["updated"] != 3 {
		t.Fatalf("expected updated 3, got %+v", envelope.Data)
	}
}
