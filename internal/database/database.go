package database

import (
	"fmt"
	"time"

	"github.com/moicalder/moimac.com/internal/config"
	"github.com/moicalder/moimac.com/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Postgres driver
	"go.uber.org/zap"
)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

// NewPostgresDB connects, applies pool settings and pings.
func NewPostgresDB(dsn string, pool config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Get().Info("Connected to postgres",
		zap.String("host", pool.Host),
		zap.String("database", pool.DBName),
	)
	return db, nil
}
