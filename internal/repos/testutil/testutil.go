package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/keyvez/vaan-backend/internal/db"
	"github.com/keyvez/vaan-backend/internal/logger"
)

var (
	dbOnce sync.Once
	gdb    *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database shared across tests. TEST_POSTGRES_DSN
// selects a real Postgres; without it tests run against in-memory sqlite.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		}

		var err error
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			gdb, err = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			gdb, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
		}
		if err != nil {
			dbErr = err
			return
		}

		dbErr = gdb.AutoMigrate(db.Models()...)
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return gdb
}

// Tx wraps a test in a transaction rolled back at cleanup so tests never see
// each other's rows.
func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
