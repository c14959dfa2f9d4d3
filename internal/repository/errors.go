package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Common repository errors
var (
	// ErrEmailTaken is returned when an insert or update collides with the unique email index
	ErrEmailTaken = errors.New("email already in use")

	// ErrColumnNotFound is returned when no column matched a write
	ErrColumnNotFound = errors.New("column not found")

	// ErrCardNotFound is returned when no card matched a write
	ErrCardNotFound = errors.New("card not found")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
