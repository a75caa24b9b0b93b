package db

import (
	"errors"
	"fmt"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the migrate driver and the file source.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/nkyriakou/glassfab-oms/internal/config"
	"github.com/nkyriakou/glassfab-oms/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate opens the configured database, applies the versioned
// SQL migrations (cfg.Migrations) or the AutoMigrate dev fallback, and
// reconciles derived columns. The returned handle is the single shared
// store for the process.
func ConnectAndMigrate(appCfg config.Config) (*gorm.DB, error) {
	dsn := NormalizeDSN(appCfg.DatabaseDSN)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty; check the environment")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if appCfg.DBDebug {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = open(dsn, cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Versioned SQL migrations when requested (postgres only; the files
	// use postgres types). AutoMigrate is the dev path (sqlite, tests).
	if appCfg.Migrations && IsPostgres(dsn) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	for _, table := range []string{"orders", "suppliers", "deliveries", "product_lines"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}

	if err := ReconcileBalances(db); err != nil {
		return nil, err
	}

	if appCfg.Seed {
		if err := Seed(db); err != nil {
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}
	return db, nil
}

func open(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	if IsPostgres(dsn) {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// AutoMigrate applies the model schema directly. Used by dev startup and
// test fixtures.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Role{}, &models.User{}, &models.Supplier{}, &models.Order{},
		&models.ProductLine{}, &models.Delivery{}, &models.Payment{}, &models.AuditLog{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

// ReconcileBalances backfills NULL stored balances from price - advance.
// Rows that already carry a consistent value are left untouched; the
// stored column is only a convenience, reads always recompute.
func ReconcileBalances(db *gorm.DB) error {
	if err := db.Exec("UPDATE orders SET balance = price - advance WHERE balance IS NULL").Error; err != nil {
		return fmt.Errorf("reconcile balances: %w", err)
	}
	return nil
}

// runSQLMigrations executes the versioned files in ./migrations using the
// golang-migrate file source. The DSN must be in postgres:// URL form.
// Up is idempotent: ErrNoChange is fine.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
