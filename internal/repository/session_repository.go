package repository

import (
	"context"
	"fmt"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/repository/models"
	"github.com/moicalder/moimac.com/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// SessionRepository appends sessions and reads a user's history. There is no
// update or delete.
type SessionRepository interface {
	InsertSession(ctx context.Context, userID string, metrics domain.Metrics) (int64, error)
	ListUserSessions(ctx context.Context, game domain.Game, username string, filter domain.SessionFilter) ([]domain.Session, error)
}

const (
	queryInsertMathModeSession = `INSERT INTO mathmode_sessions
	(user_id, operator, total_questions, correct_answers, incorrect_answers, difficulty, digits1, digits2)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	queryInsertSnakeSession = `INSERT INTO snake_sessions (user_id, score, high_score) VALUES ($1, $2, $3) RETURNING id`

	queryInsertTypeMasterSession = `INSERT INTO typemaster_sessions
	(user_id, lesson_id, wpm, accuracy, total_keys, correct_keys, mistakes, duration_seconds, words_completed, custom_list_name)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
)

// History queries take the username as $1 and the sub-dimension as $2, where
// ” disables the filter.
const (
	queryListMathModeSessions = `SELECT s.id, s.user_id, s.operator, s.total_questions, s.correct_answers,
	s.incorrect_answers, s.difficulty, s.digits1, s.digits2, s.created_at
	FROM mathmode_sessions s
	JOIN users u ON u.id = s.user_id
	WHERE LOWER(u.username) = LOWER($1) AND ($2::text = '' OR s.operator = $2::text)
	ORDER BY s.created_at DESC, s.id DESC`

	queryListSnakeSessions = `SELECT s.id, s.user_id, s.score, s.high_score, s.created_at
	FROM snake_sessions s
	JOIN users u ON u.id = s.user_id
	WHERE LOWER(u.username) = LOWER($1)
	ORDER BY s.created_at DESC, s.id DESC`

	queryListTypeMasterSessions = `SELECT s.id, s.user_id, s.lesson_id, s.wpm, s.accuracy, s.total_keys, s.correct_keys,
	s.mistakes, s.duration_seconds, s.words_completed, s.custom_list_name, s.created_at
	FROM typemaster_sessions s
	JOIN users u ON u.id = s.user_id
	WHERE LOWER(u.username) = LOWER($1) AND ` + lessonFilterClause + `
	ORDER BY s.created_at DESC, s.id DESC`
)

// lessonFilterClause matches every lesson for ”, every custom- lesson for
// 'custom' and otherwise the exact lesson id bound to $2.
const lessonFilterClause = `CASE
		WHEN $2::text = '' THEN TRUE
		WHEN $2::text = '` + domain.CustomLessonFilter + `' THEN s.lesson_id LIKE '` + domain.CustomLessonPrefix + `%'
		ELSE s.lesson_id = $2::text
	END`

type sqlxSessionRepository struct {
	db *sqlx.DB
}

func NewSQLXSessionRepository(db *sqlx.DB) SessionRepository {
	return &sqlxSessionRepository{db: db}
}

// InsertSession stores one session and returns its id. It joins the
// transaction carried by ctx, if any. A missing user is ErrUserNotFound.
func (r *sqlxSessionRepository) InsertSession(ctx context.Context, userID string, metrics domain.Metrics) (int64, error) {
	var (
		id    int64
		query string
		args  []interface{}
	)

	switch m := metrics.(type) {
	case domain.MathModeMetrics:
		query = queryInsertMathModeSession
		args = []interface{}{
			userID, string(m.Operator), m.TotalQuestions, m.CorrectAnswers, m.IncorrectAnswers,
			decimal.NewFromFloat(m.Difficulty), util.IntPtrToNullInt32(m.Digits1), util.IntPtrToNullInt32(m.Digits2),
		}
	case domain.SnakeMetrics:
		query = queryInsertSnakeSession
		args = []interface{}{userID, m.Score, m.HighScore}
	case domain.TypeMasterMetrics:
		query = queryInsertTypeMasterSession
		args = []interface{}{
			userID, m.LessonID, m.WPM, decimal.NewFromFloat(m.Accuracy), m.TotalKeys, m.CorrectKeys,
			m.Mistakes, m.DurationSeconds, m.WordsCompleted, util.StringPtrToNullString(m.CustomListName),
		}
	default:
		return 0, fmt.Errorf("unsupported session metrics %T", metrics)
	}

	if err := GetExecutor(ctx, r.db).GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("failed to insert %s session: %w", metrics.Game(), translatePgError(err))
	}
	return id, nil
}

// ListUserSessions returns the user's sessions for one game, newest first.
func (r *sqlxSessionRepository) ListUserSessions(ctx context.Context, game domain.Game, username string, filter domain.SessionFilter) ([]domain.Session, error) {
	exec := GetExecutor(ctx, r.db)

	switch game {
	case domain.GameMathMode:
		var rows []models.MathModeSession
		if err := exec.SelectContext(ctx, &rows, queryListMathModeSessions, username, string(filter.Operator)); err != nil {
			return nil, fmt.Errorf("failed to list mathmode sessions: %w", err)
		}
		sessions := make([]domain.Session, 0, len(rows))
		for _, row := range rows {
			sessions = append(sessions, toDomainMathModeSession(row))
		}
		return sessions, nil

	case domain.GameSnake:
		var rows []models.SnakeSession
		if err := exec.SelectContext(ctx, &rows, queryListSnakeSessions, username); err != nil {
			return nil, fmt.Errorf("failed to list snake sessions: %w", err)
		}
		sessions := make([]domain.Session, 0, len(rows))
		for _, row := range rows {
			sessions = append(sessions, domain.Session{
				ID:        row.ID,
				UserID:    row.UserID,
				CreatedAt: row.CreatedAt,
				Metrics:   domain.SnakeMetrics{Score: row.Score, HighScore: row.HighScore},
			})
		}
		return sessions, nil

	case domain.GameTypeMaster:
		var rows []models.TypeMasterSession
		if err := exec.SelectContext(ctx, &rows, queryListTypeMasterSessions, username, string(filter.Lesson)); err != nil {
			return nil, fmt.Errorf("failed to list typemaster sessions: %w", err)
		}
		sessions := make([]domain.Session, 0, len(rows))
		for _, row := range rows {
			sessions = append(sessions, toDomainTypeMasterSession(row))
		}
		return sessions, nil
	}

	return nil, fmt.Errorf("unsupported game %q", game)
}

func toDomainMathModeSession(row models.MathModeSession) domain.Session {
	return domain.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		Metrics: domain.MathModeMetrics{
			Operator:         domain.Operator(row.Operator),
			TotalQuestions:   row.TotalQuestions,
			CorrectAnswers:   row.CorrectAnswers,
			IncorrectAnswers: row.IncorrectAnswers,
			Difficulty:       util.DecimalToFloat(row.Difficulty),
			Digits1:          util.NullInt32ToPtr(row.Digits1),
			Digits2:          util.NullInt32ToPtr(row.Digits2),
		},
	}
}

func toDomainTypeMasterSession(row models.TypeMasterSession) domain.Session {
	return domain.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		Metrics: domain.TypeMasterMetrics{
			LessonID:        row.LessonID,
			WPM:             row.WPM,
			Accuracy:        util.DecimalToFloat(row.Accuracy),
			TotalKeys:       row.TotalKeys,
			CorrectKeys:     row.CorrectKeys,
			Mistakes:        row.Mistakes,
			DurationSeconds: row.DurationSeconds,
			WordsCompleted:  row.WordsCompleted,
			CustomListName:  util.NullStringToPtr(row.CustomListName),
		},
	}
}
