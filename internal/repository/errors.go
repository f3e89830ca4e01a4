package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation     pq.ErrorCode = "23505"
	pgForeignKeyViolation pq.ErrorCode = "23503"
)

// Constraint names declared by the migrations.
const (
	constraintUsersPkey          = "users_pkey"
	constraintUsersEmailKey      = "users_email_key"
	constraintUsersUsernameLower = "users_username_lower_key"
)

var (
	// ErrUserExists is returned when an insert collides on id or email.
	ErrUserExists = errors.New("user already exists")
	// ErrUsernameConflict is returned when another user holds the username
	// ignoring case.
	ErrUsernameConflict = errors.New("username already taken")
	// ErrUserNotFound is returned when a write references a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoFieldsToUpdate is returned for an empty profile update.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// translatePgError maps known constraint violations to sentinel errors and
// keeps the driver error in the chain.
func translatePgError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pgUniqueViolation:
		switch pqErr.Constraint {
		case constraintUsersUsernameLower:
			return fmt.Errorf("%w: %w", ErrUsernameConflict, err)
		case constraintUsersPkey, constraintUsersEmailKey:
			return fmt.Errorf("%w: %w", ErrUserExists, err)
		}
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	return err
}
