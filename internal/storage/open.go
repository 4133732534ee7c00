package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/mserebryaakov/aggregator-pim/pkg/postgres"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver   string
	Postgres postgres.Config
	// SQLitePath is a file path or ":memory:".
	SQLitePath string
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

// Open connects to the configured database.
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		return postgres.Connect(cfg.Postgres.DSN(), gormConfig())
	case DriverSQLite:
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// OpenSQLite opens a pure Go sqlite database. ":memory:" gives a private
// in-memory database.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path + "?_pragma=foreign_keys(0)"
	if path == ":memory:" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// a second connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
