// Package testutil gives handler tests a throwaway database behind
// config.CmsGorm. It is imported only from _test.go files.
package testutil

import (
	"testing"

	"github.com/Treadle-Controls/treadle-cms-backend/config"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The production schema uses Postgres-only column and index types, so the
// tables are declared by hand in portable SQL.
var schema = []string{
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		series TEXT,
		technology TEXT NOT NULL,
		duty TEXT NOT NULL,
		ip TEXT,
		actions TEXT NOT NULL DEFAULT '[]',
		applications TEXT NOT NULL DEFAULT '[]',
		material TEXT,
		connector_type TEXT,
		features TEXT NOT NULL DEFAULT '[]',
		flagship NUMERIC DEFAULT 0,
		description TEXT,
		image TEXT,
		link TEXT,
		voltage TEXT,
		amperage TEXT,
		certifications TEXT NOT NULL DEFAULT '[]',
		circuitry TEXT,
		part_number TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE options (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		value TEXT NOT NULL,
		label TEXT NOT NULL,
		description TEXT,
		sort_order INTEGER DEFAULT 0,
		active NUMERIC DEFAULT 1,
		rules TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (category, value)
	)`,
	`CREATE TABLE admins (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		status TEXT NOT NULL,
		last_login_at DATETIME,
		joined_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE admin_sessions (
		id TEXT PRIMARY KEY,
		admin_id TEXT NOT NULL,
		token_hash TEXT NOT NULL UNIQUE,
		ip_address TEXT,
		user_agent TEXT,
		device_type TEXT,
		browser TEXT,
		os TEXT,
		created_at DATETIME,
		last_activity_at DATETIME,
		expires_at DATETIME,
		is_active NUMERIC DEFAULT 1
	)`,
}

// UseSQLite installs a fresh in-memory database as config.CmsGorm for the
// duration of the test and returns it for seeding.
func UseSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	previous := config.CmsGorm
	config.CmsGorm = db
	t.Cleanup(func() {
		config.CmsGorm = previous
		_ = sqlDB.Close()
	})
	return db
}
