// Package postgres abre la base Postgres (pgx vía database/sql) y aporta su dialecto a sqldb.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	"pet-shelter/internal/adapters/storage/sqldb"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

var Dialect = sqldb.Dialect{
	Name:           "postgres",
	Schema:         schema,
	NumberedParams: true,
	ForUpdate:      "FOR UPDATE",
	IsDuplicate:    isUniqueViolation,
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Open abre el pool, verifica la conexión y aplica el schema.
func Open(ctx context.Context, dsn string) (*sqldb.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := sqldb.New(db, Dialect)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}
