package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pminternship/internship-ai/internal/models"
)

var gormLogLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// GormLogLevel maps DB_LOG_LEVEL onto gorm's levels. Without it development
// logs every statement and other environments only errors.
func (d DatabaseConfig) GormLogLevel(env string) (logger.LogLevel, error) {
	if d.LogLevel == "" {
		if env == "development" {
			return logger.Info, nil
		}
		return logger.Error, nil
	}
	level, ok := gormLogLevels[strings.ToLower(d.LogLevel)]
	if !ok {
		return logger.Silent, fmt.Errorf("DB_LOG_LEVEL must be silent, error, warn or info, got %q", d.LogLevel)
	}
	return level, nil
}

// InitDatabase opens the backend's store of saved profiles and submissions
// and brings its schema up to date.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	level, err := cfg.Database.GormLogLevel(cfg.Server.Env)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             cfg.Database.SlowQuery,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  cfg.Server.Env == "development",
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database %s@%s:%s unreachable: %w", cfg.Database.DBName, cfg.Database.Host, cfg.Database.Port, err)
	}

	log.Printf("✅ Database %s connected (pool %d/%d)\n", cfg.Database.DBName, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)

	if err := db.AutoMigrate(&models.UserProfile{}, &models.Submission{}); err != nil {
		return nil, fmt.Errorf("failed to migrate profiles and submissions: %w", err)
	}
	log.Println("✅ Profile and submission tables migrated")

	return db, nil
}
