package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/washifyapp/driver-backend/pkg/logger"
)

const otpPurgeJobName = "otp_purge"

// Login codes stay redeemable for the configured TTL; the purge keeps a
// grace period on top of it so an in-flight verification never races the
// cleanup.
const otpPurgeGrace = 1 * time.Hour

type staleCodeDeleter interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// OTPPurgeJobParams configure the login code cleanup job.
type OTPPurgeJobParams struct {
	Logger *logger.Logger
	Repo   staleCodeDeleter
	TTL    time.Duration
	now    func() time.Time
}

type otpPurgeJob struct {
	logg *logger.Logger
	repo staleCodeDeleter
	ttl  time.Duration
	now  func() time.Time
}

// NewOTPPurgeJob builds the cron job that deletes expired login codes.
func NewOTPPurgeJob(params OTPPurgeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("otp repository required")
	}
	if params.TTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive")
	}
	now := params.now
	if now == nil {
		now = time.Now
	}
	return &otpPurgeJob{
		logg: params.Logger,
		repo: params.Repo,
		ttl:  params.TTL,
		now:  now,
	}, nil
}

func (j *otpPurgeJob) Name() string {
	return otpPurgeJobName
}

func (j *otpPurgeJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-(j.ttl + otpPurgeGrace))
	removed, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge expired codes: %w", err)
	}
	j.logg.Info(j.logg.WithField(ctx, "removed", removed), "expired login codes purged")
	return nil
}
