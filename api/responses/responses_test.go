package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/shopledger/shopledger-backend/pkg/errors"
	"github.com/shopledger/shopledger-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func decodeError(t *testing.T, body []byte) (code, message string, details any) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal error envelope: %v", err)
	}
	return envelope.Error.Code, envelope.Error.Message, envelope.Error.Details
}

func TestWriteSuccess(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteSuccess(resp, map[string]string{"hello": "world"})

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["hello"] != "world" {
		t.Fatalf("unexpected payload: %+v", envelope)
	}
}

func TestWriteError_ValidationExposesMessageAndDetails(t *testing.T) {
	resp := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "phone number must be exactly 8 digits").
		WithDetails(map[string]string{"phone_number": "must be exactly 8 digits"})
	WriteError(context.Background(), testLogger(), resp, err)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	code, message, details := decodeError(t, resp.Body.Bytes())
	if code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %q", code)
	}
	if message != "phone number must be exactly 8 digits" {
		t.Fatalf("unexpected message %q", message)
	}
	if details == nil {
		t.Fatal("expected details to be included")
	}
}

func TestWriteError_InternalHidesMessage(t *testing.T) {
	resp := httptest.NewRecorder()
	err := pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: secret table missing"), "load state")
	WriteError(context.Background(), testLogger(), resp, err)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	_, message, _ := decodeError(t, resp.Body.Bytes())
	if message == "load state" || message == "pq: secret table missing" {
		t.Fatalf("internal error text must not leak, got %q", message)
	}
}

func TestWriteError_UntypedError(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), resp, errors.New("plain failure"))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	code, _, _ := decodeError(t, resp.Body.Bytes())
	if code != string(pkgerrors.CodeInternal) {
		t.Fatalf("unexpected code %q", code)
	}
}

func TestWriteError_NotFoundPassthrough(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), resp, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found"))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	_, message, _ := decodeError(t, resp.Body.Bytes())
	if message != "customer not found" {
		t.Fatalf("unexpected message %q", message)
	}
}
