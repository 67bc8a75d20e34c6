package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgauth "github.com/washifyapp/driver-backend/pkg/auth"
	"github.com/washifyapp/driver-backend/pkg/config"
	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
	"github.com/washifyapp/driver-backend/pkg/logger"
	"github.com/washifyapp/driver-backend/pkg/metrics"
	"github.com/washifyapp/driver-backend/pkg/sms"
)

const (
	vanNotFoundMessage = "no vehicle registered for this phone"
	invalidCodeMessage = "invalid or expired code"
)

// Service issues login codes over SMS and exchanges them for driver tokens.
type Service interface {
	Issue(ctx context.Context, req IssueRequest) error
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error)
}

type service struct {
	repo    Repository
	sender  sms.Sender
	otpCfg  config.OTPConfig
	jwtCfg  config.JWTConfig
	logg    *logger.Logger
	metrics *metrics.OTPMetrics
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build an OTP service.
type ServiceParams struct {
	Repo      Repository
	Sender    sms.Sender
	OTPConfig config.OTPConfig
	JWTConfig config.JWTConfig
	Logger    *logger.Logger
	Metrics   *metrics.OTPMetrics
}

// NewService constructs the OTP login service. Logger and metrics are
// optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("otp repository is required")
	}
	if params.Sender == nil {
		return nil, fmt.Errorf("sms sender is required")
	}
	if params.OTPConfig.CodeLength <= 0 {
		return nil, fmt.Errorf("otp code length must be positive")
	}
	if params.OTPConfig.TTL <= 0 {
		return nil, fmt.Errorf("otp ttl must be positive")
	}
	return &service{
		repo:    params.Repo,
		sender:  params.Sender,
		otpCfg:  params.OTPConfig,
		jwtCfg:  params.JWTConfig,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

// Issue generates a fresh code for the van behind the phone number and sends
// it over SMS. The code is stored before the send so a delayed delivery can
// still be redeemed.
func (s *service) Issue(ctx context.Context, req IssueRequest) error {
	phone, countryCode, err := normalizeIdentity(req.Phone, req.CountryCode)
	if err != nil {
		return err
	}

	van, err := s.repo.FindActiveVan(ctx, phone, countryCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, vanNotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up van")
	}

	code, err := generateCode(s.otpCfg.CodeLength)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to generate code")
	}
	if err := s.repo.CreateCode(ctx, phone, countryCode, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to store code")
	}

	body := fmt.Sprintf("Your Washify driver login code is %s. It expires in %d minutes.",
		code, int(s.otpCfg.TTL.Minutes()))
	if err := s.sender.Send(ctx, countryCode+phone, body); err != nil {
		return err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithVanID(ctx, van.ID), "login code sent")
	}
	s.metrics.IncIssued()
	return nil
}

// Verify redeems a code issued within the freshness window. On success every
// outstanding code for the phone is discarded and a driver token is minted.
func (s *service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	phone, countryCode, err := normalizeIdentity(req.Phone, req.CountryCode)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}

	van, err := s.repo.FindActiveVan(ctx, phone, countryCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same answer as a bad code so callers cannot tell which
			// phones have a registered van
			s.metrics.IncVerification("rejected")
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up van")
	}

	since := s.now().Add(-s.otpCfg.TTL)
	matched, err := s.repo.HasFreshCode(ctx, phone, countryCode, code, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check code")
	}
	if !matched {
		s.metrics.IncVerification("rejected")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
	}

	if err := s.repo.DeleteForPhone(ctx, phone, countryCode); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to clear codes")
	}

	regionName := ""
	regionID := int64(0)
	if van.Region != nil {
		regionName = van.Region.Name
		regionID = van.Region.ID
	} else {
		regionID = van.RegionID
	}

	token, err := pkgauth.MintDriverToken(s.jwtCfg, s.now(), pkgauth.DriverTokenPayload{
		VanID:     van.ID,
		VanNumber: van.VanNumber,
		RegionID:  regionID,
		Phone:     countryCode + phone,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to mint token")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithVanID(ctx, van.ID), "driver logged in")
	}
	s.metrics.IncVerification("accepted")

	return &VerifyResponse{
		Token:     token,
		VanID:     van.ID,
		VanNumber: van.VanNumber,
		Region:    regionName,
	}, nil
}

func normalizeIdentity(phone, countryCode string) (string, string, error) {
	phone = strings.TrimSpace(phone)
	countryCode = strings.TrimSpace(countryCode)
	if phone == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if countryCode == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "country code is required")
	}
	return phone, countryCode, nil
}

// generateCode draws a numeric code of the given length from crypto/rand.
// Leading zeros are allowed.
func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
