package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and brings the schema up to
// date. A non-empty databaseURL selects Postgres; otherwise a local
// SQLite file at sqlitePath is used.
func Open(databaseURL string, sqlitePath string) (*gorm.DB, error) {
	dialector, err := buildDialector(databaseURL, sqlitePath)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

// OpenSQLite opens a local SQLite database at dbPath.
func OpenSQLite(dbPath string) (*gorm.DB, error) {
	return Open("", dbPath)
}

func buildDialector(databaseURL string, sqlitePath string) (gorm.Dialector, error) {
	if databaseURL != "" {
		return postgres.Open(databaseURL), nil
	}

	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", sqlitePath)
	return sqlite.Open(dsn), nil
}
