package repository

import (
	"context"
	"fmt"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/repository/models"
	"github.com/moicalder/moimac.com/internal/util"

	"github.com/jmoiron/sqlx"
)

// LeaderboardRepository groups a game's sessions by user. Ranking, rounding
// and the row cap are applied by domain.RankLeaderboard.
type LeaderboardRepository interface {
	AggregateByUser(ctx context.Context, game domain.Game, filter domain.SessionFilter) ([]domain.UserAggregate, error)
}

// Aggregate queries take the sub-dimension as $1, where ” disables the
// filter. Users without a username never qualify.
const (
	queryAggregateMathMode = `SELECT u.id AS user_id, u.username, u.avatar_url,
	COUNT(*) AS sessions_played,
	COALESCE(SUM(s.total_questions), 0) AS total_questions,
	COALESCE(SUM(s.correct_answers), 0) AS total_correct,
	COALESCE(SUM(s.incorrect_answers), 0) AS total_incorrect,
	AVG(s.difficulty) AS avg_difficulty,
	COUNT(DISTINCT s.operator) AS operators_played
	FROM mathmode_sessions s
	JOIN users u ON u.id = s.user_id
	WHERE u.username IS NOT NULL AND ($1::text = '' OR s.operator = $1::text)
	GROUP BY u.id, u.username, u.avatar_url`

	queryAggregateSnake = `SELECT u.id AS user_id, u.username, u.avatar_url,
	COUNT(*) AS sessions_played,
	MAX(s.score) AS best_score,
	AVG(s.score) AS avg_score,
	COALESCE(SUM(s.score), 0) AS total_score
	FROM snake_sessions s
	JOIN users u ON u.id = s.user_id
	WHERE u.username IS NOT NULL
	GROUP BY u.id, u.username, u.avatar_url`

	queryAggregateTypeMaster = `SELECT u.id AS user_id, u.username, u.avatar_url,
	COUNT(*) AS sessions_played,
	MAX(s.wpm) AS best_wpm,
	AVG(s.wpm) AS avg_wpm,
	AVG(s.accuracy) AS avg_accuracy,
	MAX(s.accuracy) AS best_accuracy,
	COALESCE(SUM(s.total_keys), 0) AS total_keys_typed,
	COALESCE(SUM(s.mistakes), 0) AS total_mistakes,
	MAX(s.wpm * s.accuracy / 100) AS peak_mastery,
	COUNT(DISTINCT s.lesson_id) AS lessons_completed
	FROM typemaster_sessions s
	JOIN users u ON u.id = s.user_id
	WHERE u.username IS NOT NULL AND ` + aggregateLessonFilterClause + `
	GROUP BY u.id, u.username, u.avatar_url`
)

const aggregateLessonFilterClause = `CASE
		WHEN $1::text = '' THEN TRUE
		WHEN $1::text = '` + domain.CustomLessonFilter + `' THEN s.lesson_id LIKE '` + domain.CustomLessonPrefix + `%'
		ELSE s.lesson_id = $1::text
	END`

type sqlxLeaderboardRepository struct {
	db *sqlx.DB
}

func NewSQLXLeaderboardRepository(db *sqlx.DB) LeaderboardRepository {
	return &sqlxLeaderboardRepository{db: db}
}

func (r *sqlxLeaderboardRepository) AggregateByUser(ctx context.Context, game domain.Game, filter domain.SessionFilter) ([]domain.UserAggregate, error) {
	exec := GetExecutor(ctx, r.db)

	switch game {
	case domain.GameMathMode:
		var rows []models.MathModeAggregateRow
		if err := exec.SelectContext(ctx, &rows, queryAggregateMathMode, string(filter.Operator)); err != nil {
			return nil, fmt.Errorf("failed to aggregate mathmode sessions: %w", err)
		}
		aggs := make([]domain.UserAggregate, 0, len(rows))
		for _, row := range rows {
			aggs = append(aggs, toUserAggregate(row.AggregateUser, domain.MathModeAggregate{
				TotalQuestions:  row.TotalQuestions,
				TotalCorrect:    row.TotalCorrect,
				TotalIncorrect:  row.TotalIncorrect,
				AvgDifficulty:   util.NullDecimalToFloat(row.AvgDifficulty),
				OperatorsPlayed: row.OperatorsPlayed,
			}))
		}
		return aggs, nil

	case domain.GameSnake:
		var rows []models.SnakeAggregateRow
		if err := exec.SelectContext(ctx, &rows, queryAggregateSnake); err != nil {
			return nil, fmt.Errorf("failed to aggregate snake sessions: %w", err)
		}
		aggs := make([]domain.UserAggregate, 0, len(rows))
		for _, row := range rows {
			aggs = append(aggs, toUserAggregate(row.AggregateUser, domain.SnakeAggregate{
				BestScore:  row.BestScore,
				AvgScore:   util.NullDecimalToFloat(row.AvgScore),
				TotalScore: row.TotalScore,
			}))
		}
		return aggs, nil

	case domain.GameTypeMaster:
		var rows []models.TypeMasterAggregateRow
		if err := exec.SelectContext(ctx, &rows, queryAggregateTypeMaster, string(filter.Lesson)); err != nil {
			return nil, fmt.Errorf("failed to aggregate typemaster sessions: %w", err)
		}
		aggs := make([]domain.UserAggregate, 0, len(rows))
		for _, row := range rows {
			aggs = append(aggs, toUserAggregate(row.AggregateUser, domain.TypeMasterAggregate{
				BestWPM:          row.BestWPM,
				AvgWPM:           util.NullDecimalToFloat(row.AvgWPM),
				AvgAccuracy:      util.NullDecimalToFloat(row.AvgAccuracy),
				BestAccuracy:     util.NullDecimalToFloat(row.BestAccuracy),
				TotalKeysTyped:   row.TotalKeysTyped,
				TotalMistakes:    row.TotalMistakes,
				PeakMastery:      util.NullDecimalToFloat(row.PeakMastery),
				LessonsCompleted: row.LessonsCompleted,
			}))
		}
		return aggs, nil
	}

	return nil, fmt.Errorf("unsupported game %q", game)
}

func toUserAggregate(user models.AggregateUser, stats domain.AggregateStats) domain.UserAggregate {
	return domain.UserAggregate{
		UserID:         user.UserID,
		Username:       user.Username,
		AvatarURL:      util.NullStringToPtr(user.AvatarURL),
		SessionsPlayed: user.SessionsPlayed,
		Stats:          stats,
	}
}
