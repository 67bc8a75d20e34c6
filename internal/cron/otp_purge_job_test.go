package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/washifyapp/driver-backend/pkg/logger"
)

type fakeCodeDeleter struct {
	cutoff  time.Time
	removed int64
	err     error
}

func (f *fakeCodeDeleter) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.removed, f.err
}

func TestOTPPurgeJobUsesTTLPlusGrace(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	deleter := &fakeCodeDeleter{removed: 3}
	fixed := time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)

	job, err := NewOTPPurgeJob(OTPPurgeJobParams{
		Logger: logg,
		Repo:   deleter,
		TTL:    5 * time.Minute,
		now:    func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if job.Name() != "otp_purge" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := fixed.Add(-(5*time.Minute + otpPurgeGrace))
	if !deleter.cutoff.Equal(want) {
		t.Fatalf("expected cutoff %v, got %v", want, deleter.cutoff)
	}
}

func TestOTPPurgeJobPropagatesErrors(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	deleter := &fakeCodeDeleter{err: errors.New("db down")}

	job, err := NewOTPPurgeJob(OTPPurgeJobParams{
		Logger: logg,
		Repo:   deleter,
		TTL:    5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOTPPurgeJobValidatesParams(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	if _, err := NewOTPPurgeJob(OTPPurgeJobParams{Repo: &fakeCodeDeleter{}, TTL: time.Minute}); err == nil {
		t.Fatalf("expected logger error")
	}
	if _, err := NewOTPPurgeJob(OTPPurgeJobParams{Logger: logg, TTL: time.Minute}); err == nil {
		t.Fatalf("expected repo error")
	}
	if _, err := NewOTPPurgeJob(OTPPurgeJobParams{Logger: logg, Repo: &fakeCodeDeleter{}}); err == nil {
		t.Fatalf("expected ttl error")
	}
}
