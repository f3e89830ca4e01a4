package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// NUMERIC columns come back from lib/pq as text, so they scan into
// decimal.Decimal and are converted to float64 at the repository boundary.

type MathModeSession struct {
	ID               int64           `db:"id"`
	UserID           string          `db:"user_id"`
	Operator         string          `db:"operator"`
	TotalQuestions   int             `db:"total_questions"`
	CorrectAnswers   int             `db:"correct_answers"`
	IncorrectAnswers int             `db:"incorrect_answers"`
	Difficulty       decimal.Decimal `db:"difficulty"`
	Digits1          sql.NullInt32   `db:"digits1"`
	Digits2          sql.NullInt32   `db:"digits2"`
	CreatedAt        time.Time       `db:"created_at"`
}

type SnakeSession struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Score     int       `db:"score"`
	HighScore int       `db:"high_score"`
	CreatedAt time.Time `db:"created_at"`
}

type TypeMasterSession struct {
	ID              int64           `db:"id"`
	UserID          string          `db:"user_id"`
	LessonID        string          `db:"lesson_id"`
	WPM             int             `db:"wpm"`
	Accuracy        decimal.Decimal `db:"accuracy"`
	TotalKeys       int             `db:"total_keys"`
	CorrectKeys     int             `db:"correct_keys"`
	Mistakes        int             `db:"mistakes"`
	DurationSeconds int             `db:"duration_seconds"`
	WordsCompleted  int             `db:"words_completed"`
	CustomListName  sql.NullString  `db:"custom_list_name"`
	CreatedAt       time.Time       `db:"created_at"`
}
