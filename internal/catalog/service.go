package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
)

// ServiceSummary is a catalog service as listed to drivers.
type ServiceSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CatalogItem is a priced item inside a category.
type CatalogItem struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CategoryGroup groups a category's items under a service.
type CategoryGroup struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Items []CatalogItem `json:"items"`
}

// ServiceDetail is a service with its full category and item tree.
type ServiceDetail struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Categories []CategoryGroup `json:"categories"`
}

// SearchHit is one item matched by a catalog search, with enough context
// to show where it lives.
type SearchHit struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	ServiceID int64           `json:"service_id"`
	Service   string          `json:"service"`
}

// Service exposes the read-only catalog to authenticated drivers.
type Service interface {
	ListServices(ctx context.Context) ([]ServiceSummary, error)
	GetServiceDetails(ctx context.Context, serviceID int64) (*ServiceDetail, error)
	SearchItems(ctx context.Context, query string) ([]SearchHit, error)
	FullCatalog(ctx context.Context) ([]ServiceDetail, error)
}

type service struct {
	repo Repository
}

// NewService constructs the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListServices(ctx context.Context) ([]ServiceSummary, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list services")
	}

	summaries := make([]ServiceSummary, 0, len(services))
	for _, svc := range services {
		summaries = append(summaries, ServiceSummary{ID: svc.ID, Name: svc.Name})
	}
	return summaries, nil
}

func (s *service) GetServiceDetails(ctx context.Context, serviceID int64) (*ServiceDetail, error) {
	if serviceID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service id is required")
	}

	svc, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load service")
	}

	rows, err := s.repo.ListItemRows(ctx, []int64{serviceID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load service items")
	}

	return &ServiceDetail{
		ID:         svc.ID,
		Name:       svc.Name,
		Categories: groupCategories(rows),
	}, nil
}

func (s *service) SearchItems(ctx context.Context, query string) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}

	rows, err := s.repo.SearchItemRows(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to search items")
	}

	hits := make([]SearchHit, 0, len(rows))
	for _, row := range rows {
		hits = append(hits, SearchHit{
			ItemID:    row.ItemID,
			Name:      row.ItemName,
			Price:     row.Price,
			Category:  row.CategoryName,
			ServiceID: row.ServiceID,
			Service:   row.ServiceName,
		})
	}
	return hits, nil
}

func (s *service) FullCatalog(ctx context.Context) ([]ServiceDetail, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list services")
	}

	rows, err := s.repo.ListItemRows(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load catalog items")
	}

	byService := make(map[int64][]ItemRow, len(services))
	for _, row := range rows {
		byService[row.ServiceID] = append(byService[row.ServiceID], row)
	}

	details := make([]ServiceDetail, 0, len(services))
	for _, svc := range services {
		details = append(details, ServiceDetail{
			ID:         svc.ID,
			Name:       svc.Name,
			Categories: groupCategories(byService[svc.ID]),
		})
	}
	return details, nil
}

// groupCategories folds ordered item rows into category groups, keeping
// the repository's ordering.
func groupCategories(rows []ItemRow) []CategoryGroup {
	groups := make([]CategoryGroup, 0)
	for _, row := range rows {
		if len(groups) == 0 || groups[len(groups)-1].ID != row.CategoryID {
			groups = append(groups, CategoryGroup{ID: row.CategoryID, Name: row.CategoryName})
		}
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, CatalogItem{
			ID:    row.ItemID,
			Name:  row.ItemName,
			Price: row.Price,
		})
	}
	return groups
}
