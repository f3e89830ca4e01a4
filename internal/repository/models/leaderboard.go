package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// AggregateUser is the user half shared by every grouped row.
type AggregateUser struct {
	UserID         string         `db:"user_id"`
	Username       string         `db:"username"`
	AvatarURL      sql.NullString `db:"avatar_url"`
	SessionsPlayed int            `db:"sessions_played"`
}

type MathModeAggregateRow struct {
	AggregateUser
	TotalQuestions  int64               `db:"total_questions"`
	TotalCorrect    int64               `db:"total_correct"`
	TotalIncorrect  int64               `db:"total_incorrect"`
	AvgDifficulty   decimal.NullDecimal `db:"avg_difficulty"`
	OperatorsPlayed int                 `db:"operators_played"`
}

type SnakeAggregateRow struct {
	AggregateUser
	BestScore  int64               `db:"best_score"`
	AvgScore   decimal.NullDecimal `db:"avg_score"`
	TotalScore int64               `db:"total_score"`
}

type TypeMasterAggregateRow struct {
	AggregateUser
	BestWPM          int64               `db:"best_wpm"`
	AvgWPM           decimal.NullDecimal `db:"avg_wpm"`
	AvgAccuracy      decimal.NullDecimal `db:"avg_accuracy"`
	BestAccuracy     decimal.NullDecimal `db:"best_accuracy"`
	TotalKeysTyped   int64               `db:"total_keys_typed"`
	TotalMistakes    int64               `db:"total_mistakes"`
	PeakMastery      decimal.NullDecimal `db:"peak_mastery"`
	LessonsCompleted int                 `db:"lessons_completed"`
}
