package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/repository/models"
	"github.com/moicalder/moimac.com/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, id, email string, username *string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	IsUsernameTaken(ctx context.Context, username, excludingUserID string) (bool, error)
	ListUsersWithUsername(ctx context.Context, limit int) ([]domain.User, error)
	IncrementGamesPlayed(ctx context.Context, id string) error
}

const userColumns = `id, email, username, avatar_url, wallet_address, total_games_played, total_score, created_at, updated_at`

const (
	queryCreateUser = `INSERT INTO users (id, email, username) VALUES ($1, $2, $3) RETURNING ` + userColumns

	queryGetUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	queryGetUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`

	queryIsUsernameTaken = `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1) AND ($2::text = '' OR id <> $2::text))`

	queryListUsersWithUsername = `SELECT ` + userColumns + ` FROM users WHERE username IS NOT NULL ORDER BY total_score DESC, username ASC LIMIT $1`

	queryIncrementGamesPlayed = `UPDATE users SET total_games_played = total_games_played + 1, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
)

// sqlxUserRepository implements UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:               m.ID,
		Email:            m.Email,
		Username:         util.NullStringToPtr(m.Username),
		AvatarURL:        util.NullStringToPtr(m.AvatarURL),
		WalletAddress:    util.NullStringToPtr(m.WalletAddress),
		TotalGamesPlayed: m.TotalGamesPlayed,
		TotalScore:       m.TotalScore,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// CreateUser inserts a user with zeroed counters. Collisions on id or email
// surface as ErrUserExists, on username as ErrUsernameConflict.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, id, email string, username *string) (*domain.User, error) {
	var user models.User
	err := GetExecutor(ctx, r.db).GetContext(ctx, &user, queryCreateUser, id, email, util.StringPtrToNullString(username))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", translatePgError(err))
	}
	return toDomainUser(&user), nil
}

// GetUserByID returns nil, nil when no user has the id.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user models.User
	err := GetExecutor(ctx, r.db).GetContext(ctx, &user, queryGetUserByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&user), nil
}

// GetUserByUsername matches ignoring case and returns nil, nil when absent.
func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user models.User
	err := GetExecutor(ctx, r.db).GetContext(ctx, &user, queryGetUserByUsername, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toDomainUser(&user), nil
}

// UpdateUserProfile writes only the supplied fields and always touches
// updated_at. An empty string clears avatar_url or wallet_address. It returns
// nil, nil when no row has the id.
func (r *sqlxUserRepository) UpdateUserProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, util.StringPtrToNullString(value))
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	set("username", update.Username)
	set("avatar_url", update.AvatarURL)
	set("wallet_address", update.WalletAddress)
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	var user models.User
	err := GetExecutor(ctx, r.db).GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user profile: %w", translatePgError(err))
	}
	return toDomainUser(&user), nil
}

// IsUsernameTaken reports whether a user other than excludingUserID holds
// username ignoring case. Pass "" to exclude nobody.
func (r *sqlxUserRepository) IsUsernameTaken(ctx context.Context, username, excludingUserID string) (bool, error) {
	var taken bool
	err := GetExecutor(ctx, r.db).GetContext(ctx, &taken, queryIsUsernameTaken, username, excludingUserID)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return taken, nil
}

func (r *sqlxUserRepository) ListUsersWithUsername(ctx context.Context, limit int) ([]domain.User, error) {
	var rows []models.User
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, queryListUsersWithUsername, limit); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *toDomainUser(&rows[i]))
	}
	return users, nil
}

// IncrementGamesPlayed bumps total_games_played by one. A missing user is
// ErrUserNotFound.
func (r *sqlxUserRepository) IncrementGamesPlayed(ctx context.Context, id string) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, queryIncrementGamesPlayed, id)
	if err != nil {
		return fmt.Errorf("failed to increment games played: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
