package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"yatube/internal/models"
	"yatube/pkg/config"
)

// Open connects to the configured database. SQLite connections are limited to
// one so that in-memory databases are shared by every query.
func Open(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	logger.Info("Database connection established", zap.String("driver", cfg.Driver))
	return db, nil
}

// Migrate creates or updates the schema of every model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// DefaultGroups are created by SeedGroups on an empty database
var DefaultGroups = []models.Group{
	{Title: "Новости", Slug: "news", Description: "Новости и анонсы"},
	{Title: "Путешествия", Slug: "travel", Description: "Истории из поездок"},
	{Title: "Разное", Slug: "misc", Description: "Всё остальное"},
}

// SeedGroups creates the given groups unless some group already exists and
// returns how many were created.
func SeedGroups(db *gorm.DB, groups []models.Group) (int, error) {
	var count int64
	if err := db.Model(&models.Group{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	for _, group := range groups {
		if err := db.Create(&group).Error; err != nil {
			return created, fmt.Errorf("failed to create group %s: %w", group.Slug, err)
		}
		created++
	}
	return created, nil
}
