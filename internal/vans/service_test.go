package vans

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/washifyapp/driver-backend/pkg/errors"
)

func setupVansTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS regions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  latitude REAL,
  longitude REAL
);`,
		`CREATE TABLE IF NOT EXISTS vans (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  van_number TEXT NOT NULL,
  phone TEXT NOT NULL,
  country_code TEXT NOT NULL,
  region_id INTEGER NOT NULL,
  status BOOLEAN NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func TestGetDetailsIncludesRegion(t *testing.T) {
	db := setupVansTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	require.NoError(t, db.Exec(`INSERT INTO regions (id, name, latitude, longitude) VALUES (1, 'Dubai Marina', 25.08, 55.14)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO vans (id, van_number, phone, country_code, region_id, status, created_at, updated_at) VALUES (9, 'WF-12', '501234567', '+971', 1, 1, ?, ?)`,
		time.Now(), time.Now(),
	).Error)

	details, err := svc.GetDetails(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "WF-12", details.VanNumber)
	assert.Equal(t, "Dubai Marina", details.Region)
	assert.InDelta(t, 25.08, details.RegionLat, 0.001)
	assert.True(t, details.Active)
}

func TestGetDetailsNotFound(t *testing.T) {
	db := setupVansTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.GetDetails(context.Background(), 404)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetDetailsRequiresIdentity(t *testing.T) {
	db := setupVansTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.GetDetails(context.Background(), 0)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
