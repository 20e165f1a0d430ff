package cron

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopledger/shopledger-backend/pkg/logger"
)

type stubLock struct {
	acquired bool
	releases int
	err      error
}

func (l *stubLock) Acquire(ctx context.Context) (bool, error) {
	return l.acquired, l.err
}

func (l *stubLock) Release(ctx context.Context) error {
	l.releases++
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestRunCycle_RunsJobsAndReleasesLock(t *testing.T) {
	job := &stubJob{name: "job"}
	failing := &stubJob{name: "failing", err: errors.New("boom")}
	lock := &stubLock{acquired: true}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job, failing),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	if err := svc.runCycle(context.Background()); err != nil {
		t.Fatalf("runCycle returned error: %v", err)
	}
	if job.runs != 1 || failing.runs != 1 {
		t.Fatalf("expected both jobs to run once, got %d/%d", job.runs, failing.runs)
	}
	if lock.releases != 1 {
		t.Fatalf("expected the lock to be released once, got %d", lock.releases)
	}
}

func TestRunCycle_SkipsWhenLockHeld(t *testing.T) {
	job := &stubJob{name: "job"}
	lock := &stubLock{acquired: false}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	if err := svc.runCycle(context.Background()); err != nil {
		t.Fatalf("runCycle returned error: %v", err)
	}
	if job.runs != 0 {
		t.Fatal("jobs must not run when the lock is held elsewhere")
	}
	if lock.releases != 0 {
		t.Fatal("an unacquired lock must not be released")
	}
}

func TestRunCycle_LockError(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Logger: testLogger(),
		Lock:   &stubLock{err: errors.New("redis down")},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	if err := svc.runCycle(context.Background()); err == nil {
		t.Fatal("expected a lock acquisition error")
	}
}

func TestNewService_Defaults(t *testing.T) {
	svc, err := NewService(ServiceParams{Logger: testLogger(), Lock: &stubLock{}})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	if svc.interval != defaultInterval {
		t.Fatalf("expected default interval %v, got %v", defaultInterval, svc.interval)
	}
	if svc.registry == nil {
		t.Fatal("expected a registry to be created")
	}
}
