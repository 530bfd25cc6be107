// Package repository holds the errors shared by the store implementations.
package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Store errors returned by the store implementations.
var (
	// ErrNotFound indicates the record vanished between lookup and write.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("record already exists")

	// ErrTooLarge indicates an encoded record exceeds the store limit.
	ErrTooLarge = errors.New("record exceeds maximum size")
)

const pgUniqueViolation = "23505"

// MapError translates driver errors into store errors.
// sql.ErrNoRows becomes notFound and a unique violation becomes duplicate;
// any other error is returned unchanged.
func MapError(err, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return duplicate
	}
	return err
}
