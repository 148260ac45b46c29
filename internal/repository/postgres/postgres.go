package postgres

import (
	"fmt"

	"github.com/a2sv-g68/admissions-service/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func NewDB(cfg config.Postgres) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.URL()+"?sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("can't connect to database: %v", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// pqErrorCode extracts the Postgres error code, or "" for other errors.
func pqErrorCode(err error) pq.ErrorCode {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code
	}

	return ""
}
