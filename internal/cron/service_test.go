package cron

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/washifyapp/driver-backend/pkg/logger"
)

type fakeLock struct {
	acquired bool
	held     bool
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	if f.held {
		return false, nil
	}
	f.held = true
	f.acquired = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.held = false
	return nil
}

type testJob struct {
	name string
	err  error
	runs int
}

func (t *testJob) Name() string { return t.name }

func (t *testJob) Run(context.Context) error {
	t.runs++
	return t.err
}

func testCronLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func newTestService(t *testing.T, lock Lock, jobs ...Job) *Service {
	t.Helper()
	service, err := NewService(ServiceParams{
		Logger:   testCronLogger(),
		Registry: NewRegistry(jobs...),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("construct service: %v", err)
	}
	return service
}

func TestRunCycleRunsAllJobsEvenOnFailure(t *testing.T) {
	good := &testJob{name: "success"}
	bad := &testJob{name: "fail", err: errors.New("boom")}
	service := newTestService(t, &fakeLock{}, good, bad)

	err := service.runCycle(context.Background())
	if err == nil {
		t.Fatalf("expected aggregated job failure")
	}
	if !strings.Contains(err.Error(), "fail: boom") {
		t.Fatalf("expected failing job in aggregate, got %v", err)
	}
	if good.runs != 1 || bad.runs != 1 {
		t.Fatalf("expected both jobs to run once, got %d and %d", good.runs, bad.runs)
	}
}

func TestRunCycleSkipsWhenLockIsHeld(t *testing.T) {
	job := &testJob{name: "purge"}
	lock := &fakeLock{held: true}
	service := newTestService(t, lock, job)

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("skipped cycle must not fail: %v", err)
	}
	if job.runs != 0 {
		t.Fatalf("job must not run without the lock, ran %d times", job.runs)
	}
}

func TestRunCycleReleasesLockAfterRun(t *testing.T) {
	lock := &fakeLock{}
	service := newTestService(t, lock, &testJob{name: "purge"})

	if err := service.runCycle(context.Background()); err != nil {
		t.Fatalf("unexpected cycle error: %v", err)
	}
	if !lock.acquired {
		t.Fatalf("expected the cycle to take the lock")
	}
	if lock.held {
		t.Fatalf("expected the lock to be released after the cycle")
	}
}
