// Package sqldb implementa los repositorios sobre database/sql. Postgres y SQLite
// comparten las consultas; lo que cambia entre motores lo aporta el Dialect.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/events"
	"pet-shelter/internal/domain/reservations"
	"pet-shelter/internal/ports/storage"
)

// Dialect describe las diferencias entre motores.
type Dialect struct {
	Name string
	// Schema son sentencias DDL idempotentes separadas por ';'.
	Schema string
	// NumberedParams: true si el motor acepta $1..$n; si no, se reescriben a ?1..?n.
	NumberedParams bool
	// ForUpdate se agrega a la lectura del animal dentro de la transacción.
	ForUpdate string
	// IsDuplicate reconoce violaciones de unicidad del driver.
	IsDuplicate func(error) bool
}

type DB struct {
	db *sql.DB
	d  Dialect
}

func New(db *sql.DB, d Dialect) *DB {
	return &DB{db: db, d: d}
}

func (s *DB) SQL() *sql.DB { return s.db }

func (s *DB) Close() error { return s.db.Close() }

// Migrate aplica el schema del dialecto. Las sentencias son idempotentes.
func (s *DB) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(s.d.Schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s migrate: %w", s.d.Name, err)
		}
	}
	return nil
}

type txKey struct{}

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

var numbered = regexp.MustCompile(`\$(\d+)`)

// q adapta los placeholders al motor.
func (s *DB) q(query string) string {
	if s.d.NumberedParams {
		return query
	}
	return numbered.ReplaceAllString(query, "?$1")
}

func (s *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := s.conn(ctx).ExecContext(ctx, s.q(query), args...)
	return res, s.mapErr(err)
}

func (s *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, s.q(query), args...)
	return rows, s.mapErr(err)
}

func (s *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn(ctx).QueryRowContext(ctx, s.q(query), args...)
}

func (s *DB) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return storage.ErrNotFound
	case s.d.IsDuplicate != nil && s.d.IsDuplicate(err):
		return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
	default:
		return err
	}
}

// affected traduce 0 filas a ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *DB) Animals() animals.Repository           { return &animalRepo{s: s} }
func (s *DB) Adopters() adopters.Repository         { return &adopterRepo{s: s} }
func (s *DB) Reservations() reservations.Repository { return &reservationRepo{s: s} }
func (s *DB) Adoptions() adoptions.Repository       { return &adoptionRepo{s: s} }
func (s *DB) Events() events.Repository             { return &eventRepo{s: s} }
