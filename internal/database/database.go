package database

import (
	"errors"
	"fmt"
	"time"

	"catalog/config"
	"catalog/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Access holds the two privilege tiers of the store. Public is used by
// anonymous read and enquiry routes, Admin by authenticated writes.
type Access struct {
	Public *gorm.DB
	Admin  *gorm.DB
}

// Options returns the gorm settings shared by every connection: constraint
// errors translated to gorm sentinels and timestamps in UTC.
func Options() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func NewDB(cfg *config.DatabaseConfig, dsn string) (*gorm.DB, error) {
	d, err := dialector(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, Options())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// Open connects both tiers. When no public DSN is configured the public tier
// shares the admin connection pool.
func Open(cfg *config.DatabaseConfig) (*Access, error) {
	admin, err := NewDB(cfg, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open admin database: %w", err)
	}
	if cfg.PublicDSN == "" || cfg.PublicDSN == cfg.DSN {
		return &Access{Public: admin, Admin: admin}, nil
	}
	public, err := NewDB(cfg, cfg.PublicDSN)
	if err != nil {
		_ = closeDB(admin)
		return nil, fmt.Errorf("open public database: %w", err)
	}
	return &Access{Public: public, Admin: admin}, nil
}

func (a *Access) Close() error {
	err := closeDB(a.Admin)
	if a.Public != a.Admin {
		err = errors.Join(err, closeDB(a.Public))
	}
	return err
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate runs Gorm auto-migration for all models. Parents are listed
// before children so foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.NavbarCategory{},
		&models.Category{},
		&models.SubCategory{},
		&models.Product{},
		&models.ContactEnquiry{},
		&models.ProductEnquiry{},
		&models.Notification{},
	)
}
