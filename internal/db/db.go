package db

import (
	"fmt"

	"maintenance-gate/internal/config"
	"maintenance-gate/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	logger = zap.NewNop()
)

// InitLogger sets the zap logger for this package
func InitLogger(l *zap.Logger) {
	logger = l
}

// Open connects to postgres, configures the pool and migrates the schema
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Enable GORM debug mode if DB_DEBUG=true
	if cfg.Debug {
		db = db.Debug()
		logger.Info("GORM debug mode enabled")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the settings and users tables
func Migrate(db *gorm.DB) error {
	logger.Info("Migrating database schema...")
	if err := db.AutoMigrate(&models.Setting{}, &models.User{}); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}
	logger.Info("Database schema migrated successfully")
	return nil
}
