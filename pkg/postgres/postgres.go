package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string
}

func (cfg Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.Username, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// Connect opens a pooled connection and checks it with a ping.
func Connect(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping failed - %w", err)
	}

	return db, nil
}

// KeepAlive pings the pool every interval until ctx is done and logs when the
// database stops or starts answering again.
func KeepAlive(ctx context.Context, db *gorm.DB, interval time.Duration, log *logrus.Entry) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Errorf("keepalive disabled: %v", err)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := sqlDB.PingContext(ctx)
			switch {
			case err != nil && healthy:
				healthy = false
				log.Errorf("database ping failed: %v", err)
			case err == nil && !healthy:
				healthy = true
				log.Infof("database reachable again")
			}
		}
	}
}
