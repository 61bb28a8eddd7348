// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file centralizes repository error values and the
// classification of database failures into them.
//
// Error semantics:
//   - When a record is missing, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - When an insert or update trips a named unique constraint on the users
//     table, the error is classified into ErrEmailTaken or ErrUsernameTaken.
//   - Any other DB error is propagated raw; upper layers treat it as an
//     internal failure and never show its text to clients.
package repo

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound for consistency across services and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// Conflict errors for the uniquely constrained user fields.
var (
	// ErrEmailTaken indicates the users_email_key constraint fired.
	ErrEmailTaken = errors.New("email already taken")

	// ErrUsernameTaken indicates the users_username_key constraint fired.
	ErrUsernameTaken = errors.New("username already taken")
)

// uniqueViolationCode is the PostgreSQL error code for unique violations.
const uniqueViolationCode = "23505"

// Constraint names declared on the users table (see domain.User tags).
const (
	constraintEmail    = "users_email_key"
	constraintUsername = "users_username_key"
)

// classifyConflict inspects a failed write and maps named unique-constraint
// violations on the users table to their conflict errors. Unrecognized
// failures come back unchanged.
//
// PostgreSQL reports the constraint name structurally via pgconn.PgError.
// SQLite only embeds "UNIQUE constraint failed: <table>.<column>" in the
// message, so a string fallback keeps the in-memory test databases honest.
func classifyConflict(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != uniqueViolationCode {
			return err
		}
		switch pgErr.ConstraintName {
		case constraintEmail:
			return ErrEmailTaken
		case constraintUsername:
			return ErrUsernameTaken
		}
		return err
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		switch {
		case strings.Contains(msg, "users.email"):
			return ErrEmailTaken
		case strings.Contains(msg, "users.username"):
			return ErrUsernameTaken
		}
	}
	return err
}
