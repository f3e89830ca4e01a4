package models

import (
	"database/sql"
	"time"
)

// User represents the database model for a user.
type User struct {
	ID               string         `db:"id"`
	Email            string         `db:"email"`
	Username         sql.NullString `db:"username"`
	AvatarURL        sql.NullString `db:"avatar_url"`
	WalletAddress    sql.NullString `db:"wallet_address"`
	TotalGamesPlayed int            `db:"total_games_played"`
	TotalScore       int            `db:"total_score"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}
