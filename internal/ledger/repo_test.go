package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	table := `
CREATE TABLE IF NOT EXISTS logistics_ledger (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL UNIQUE,
  "pickedUp_at" DATETIME,
  "pickedUp_by" INTEGER,
  delivered_at DATETIME,
  delivered_by INTEGER
);`
	require.NoError(t, db.Exec(table).Error)
	return db
}

func TestUpsertPickupCreatesSingleRow(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertPickup(ctx, 500, 9, first))

	entry, err := repo.FindByOrderID(ctx, 500)
	require.NoError(t, err)
	require.NotNil(t, entry.PickedUpAt)
	assert.Equal(t, int64(9), *entry.PickedUpBy)

	// second pickup overwrites instead of duplicating
	second := first.Add(30 * time.Minute)
	require.NoError(t, repo.UpsertPickup(ctx, 500, 9, second))

	var count int64
	require.NoError(t, db.Table("logistics_ledger").Where("order_id = ?", 500).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	entry, err = repo.FindByOrderID(ctx, 500)
	require.NoError(t, err)
	assert.True(t, entry.PickedUpAt.Equal(second) || entry.PickedUpAt.Sub(second) < time.Second)
}

func TestMarkDeliveredRequiresExistingRow(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	rows, err := repo.MarkDelivered(ctx, 42, 9, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	require.NoError(t, repo.UpsertPickup(ctx, 42, 9, time.Now().UTC()))

	rows, err = repo.MarkDelivered(ctx, 42, 9, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	entry, err := repo.FindByOrderID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, entry.DeliveredAt)
	assert.Equal(t, int64(9), *entry.DeliveredBy)
}
