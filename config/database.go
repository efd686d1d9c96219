package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// CmsDB is the raw pgx pool, used for bulk work such as CSV imports.
	CmsDB *pgxpool.Pool
	// CmsGorm serves regular CRUD.
	CmsGorm *gorm.DB
)

// InitDB opens both handles on the same database.
func InitDB(cfg DatabaseConfig, production bool) error {
	dsn := cfg.DSN()
	if cfg.URL == "" {
		Log.Warnf("[db] database.url not set, using local default %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	}
	if err := initPgx(dsn); err != nil {
		return err
	}
	return initGORM(dsn, production)
}

func initPgx(dsn string) error {
	var err error
	CmsDB, err = pgxpool.New(context.Background(), dsn)
	if err != nil {
		return fmt.Errorf("unable to connect to CMS database: %w", err)
	}

	if err = CmsDB.Ping(context.Background()); err != nil {
		return fmt.Errorf("CMS database ping failed: %w", err)
	}

	Log.Info("[db] CMS database connected (pgx)")
	return nil
}

func initGORM(dsn string, production bool) error {
	gormLogger := logger.Default.LogMode(logger.Info)
	if production {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	CmsGorm, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("failed to connect to CMS database with GORM: %w", err)
	}
	if sqlDB, err := CmsGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	Log.Info("[db] CMS database connected (GORM)")
	return nil
}

// Migrate creates or updates the given tables.
func Migrate(models ...any) error {
	if CmsGorm == nil {
		return fmt.Errorf("database not initialised")
	}
	return CmsGorm.AutoMigrate(models...)
}

func CloseDB() {
	if CmsDB != nil {
		CmsDB.Close()
		Log.Info("[db] CMS database connection closed (pgx)")
	}
	if CmsGorm != nil {
		sqlDB, _ := CmsGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			Log.Info("[db] CMS database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout (bumped from 5s for Neon cold starts)
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
