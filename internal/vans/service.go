package vans

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
)

// Details is the driver-facing profile of the authenticated van.
type Details struct {
	ID          int64   `json:"id"`
	VanNumber   string  `json:"van_number"`
	Phone       string  `json:"phone"`
	CountryCode string  `json:"country_code"`
	Region      string  `json:"region"`
	RegionLat   float64 `json:"region_latitude"`
	RegionLng   float64 `json:"region_longitude"`
	Active      bool    `json:"active"`
}

// Service resolves the authenticated van's profile.
type Service interface {
	GetDetails(ctx context.Context, vanID int64) (*Details, error)
}

type service struct {
	repo Repository
}

// NewService constructs the van profile service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vans repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetDetails(ctx context.Context, vanID int64) (*Details, error) {
	if vanID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "van identity missing")
	}

	van, err := s.repo.FindByID(ctx, vanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "van not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load van")
	}

	details := &Details{
		ID:          van.ID,
		VanNumber:   van.VanNumber,
		Phone:       van.Phone,
		CountryCode: van.CountryCode,
		Active:      van.Status,
	}
	if van.Region != nil {
		details.Region = van.Region.Name
		details.RegionLat = van.Region.Latitude
		details.RegionLng = van.Region.Longitude
	}
	return details, nil
}
