// Package postgres wires the GORM connection used by the PostgreSQL order store.
//
// Usage:
//
//	db, err := postgres.Open(postgres.Options{Host: "localhost", Port: "5432", ...})
//	if err != nil {
//	    return err
//	}
//	if err := postgres.Migrate(db); err != nil {
//	    return err
//	}
//	repo := orderrepo.NewGormOrderRepository(db)
package postgres

import (
	"fmt"

	"posrelay/internal/adapters/out/postgres/orderrepo"
	"posrelay/internal/pkg/errs"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options holds the connection settings read from the environment.
type Options struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SslMode  string
}

// DSN renders the options as a libpq keyword/value connection string.
func (o Options) DSN() string {
	sslMode := o.SslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	port := o.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		o.Host, port, o.User, o.Password, o.Name, sslMode)
}

// Open connects to PostgreSQL. GORM's own logger is silenced; the store
// reports failures through errs.StorageError instead.
func Open(opts Options) (*gorm.DB, error) {
	if opts.Host == "" {
		return nil, errs.NewValueIsRequiredError("DB_HOST")
	}

	db, err := gorm.Open(gormpostgres.Open(opts.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errs.NewStorageError("open database", err)
	}
	return db, nil
}

// Migrate creates or updates the orders table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return errs.NewStorageError("migrate", err)
	}
	return nil
}
