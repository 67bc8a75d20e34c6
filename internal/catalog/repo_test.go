package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListItemRowsScopesByService(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedCatalogTree(t, db)

	rows, err := repo.ListItemRows(ctx, []int64{2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bed Sheet", rows[0].ItemName)
	assert.Equal(t, "Washing", rows[0].ServiceName)

	all, err := repo.ListItemRows(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestFindServiceByIDMissing(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindServiceByID(context.Background(), 77)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSearchItemRowsUsesSubstringMatch(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedCatalogTree(t, db)

	rows, err := repo.SearchItemRows(ctx, "sh")
	require.NoError(t, err)
	// Shirt and Bed Sheet both contain "sh"
	require.Len(t, rows, 2)
	assert.Equal(t, "Shirt", rows[0].ItemName)
	assert.Equal(t, "Bed Sheet", rows[1].ItemName)
}
