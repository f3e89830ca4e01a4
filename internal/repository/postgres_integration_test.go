//go:build integration

package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/moicalder/moimac.com/internal/config"
	"github.com/moicalder/moimac.com/internal/database"
	"github.com/moicalder/moimac.com/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openIntegrationDB connects to TEST_DATABASE_DSN, migrates it and empties
// every table. Point it at a throwaway database.
func openIntegrationDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := database.NewPostgresDB(dsn, config.DBConfig{MaxOpenConns: 5, MaxIdleConns: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.RunMigrations(db.DB))
	_, err = db.Exec(`TRUNCATE users, mathmode_sessions, snake_sessions, typemaster_sessions RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

func TestPostgres_UserLifecycle(t *testing.T) {
	db := openIntegrationDB(t)
	ctx := context.Background()
	users := NewSQLXUserRepository(db)

	name := "Ada"
	created, err := users.CreateUser(ctx, "u1", "ada@example.com", &name)
	require.NoError(t, err)
	assert.Equal(t, 0, created.TotalGamesPlayed)

	_, err = users.CreateUser(ctx, "u1", "other@example.com", nil)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = users.CreateUser(ctx, "u2", "grace@example.com", nil)
	require.NoError(t, err)

	clash := "ADA"
	_, err = users.UpdateUserProfile(ctx, "u2", domain.ProfileUpdate{Username: &clash})
	assert.ErrorIs(t, err, ErrUsernameConflict)

	taken, err := users.IsUsernameTaken(ctx, "ada", "u2")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = users.IsUsernameTaken(ctx, "ada", "u1")
	require.NoError(t, err)
	assert.False(t, taken)

	byName, err := users.GetUserByUsername(ctx, "aDa")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "u1", byName.ID)

	require.NoError(t, users.IncrementGamesPlayed(ctx, "u1"))
	got, err := users.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalGamesPlayed)

	listed, err := users.ListUsersWithUsername(ctx, 100)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "u1", listed[0].ID)
}

func TestPostgres_SessionsAndLeaderboard(t *testing.T) {
	db := openIntegrationDB(t)
	ctx := context.Background()
	users := NewSQLXUserRepository(db)
	sessions := NewSQLXSessionRepository(db)
	leaderboard := NewSQLXLeaderboardRepository(db)

	for _, u := range []struct{ id, email, name string }{
		{"u1", "ada@example.com", "ada"},
		{"u2", "grace@example.com", "grace"},
	} {
		name := u.name
		_, err := users.CreateUser(ctx, u.id, u.email, &name)
		require.NoError(t, err)
	}

	two, one := 2, 1
	inserts := []struct {
		user    string
		metrics domain.Metrics
	}{
		{"u1", domain.MathModeMetrics{Operator: domain.OperatorAdd, TotalQuestions: 10, CorrectAnswers: 9, IncorrectAnswers: 1, Difficulty: 2, Digits1: &two, Digits2: &two}},
		{"u1", domain.MathModeMetrics{Operator: domain.OperatorMultiply, TotalQuestions: 10, CorrectAnswers: 5, IncorrectAnswers: 5, Difficulty: 1.5, Digits1: &two, Digits2: &one}},
		{"u2", domain.MathModeMetrics{Operator: domain.OperatorAdd, TotalQuestions: 10, CorrectAnswers: 10, Difficulty: 1}},
		{"u1", domain.SnakeMetrics{Score: 12, HighScore: 12}},
		{"u2", domain.SnakeMetrics{Score: 30, HighScore: 30}},
		{"u1", domain.TypeMasterMetrics{LessonID: "custom-farm-animals", WPM: 40, Accuracy: 95, TotalKeys: 200, CorrectKeys: 190, Mistakes: 10}},
		{"u2", domain.TypeMasterMetrics{LessonID: "home-row", WPM: 60, Accuracy: 99, TotalKeys: 300, CorrectKeys: 297, Mistakes: 3}},
	}
	for _, in := range inserts {
		id, err := sessions.InsertSession(ctx, in.user, in.metrics)
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	_, err := sessions.InsertSession(ctx, "missing", domain.SnakeMetrics{Score: 1, HighScore: 1})
	assert.True(t, errors.Is(err, ErrUserNotFound))

	mathAll, err := leaderboard.AggregateByUser(ctx, domain.GameMathMode, domain.SessionFilter{})
	require.NoError(t, err)
	require.Len(t, mathAll, 2)
	ranked := domain.RankLeaderboard(domain.GameMathMode, domain.SessionFilter{}, mathAll)
	assert.Equal(t, "grace", ranked[0].Username)

	plusOnly, err := leaderboard.AggregateByUser(ctx, domain.GameMathMode, domain.SessionFilter{Operator: domain.OperatorAdd})
	require.NoError(t, err)
	require.Len(t, plusOnly, 2)
	for _, agg := range plusOnly {
		assert.Equal(t, 1, agg.SessionsPlayed)
	}

	custom, err := leaderboard.AggregateByUser(ctx, domain.GameTypeMaster, domain.SessionFilter{Lesson: domain.LessonFilter("custom")})
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, "ada", custom[0].Username)

	history, err := sessions.ListUserSessions(ctx, domain.GameMathMode, "ADA", domain.SessionFilter{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, !history[0].CreatedAt.Before(history[1].CreatedAt))

	snakeHistory, err := sessions.ListUserSessions(ctx, domain.GameSnake, "grace", domain.SessionFilter{})
	require.NoError(t, err)
	require.Len(t, snakeHistory, 1)
	assert.Equal(t, domain.SnakeMetrics{Score: 30, HighScore: 30}, snakeHistory[0].Metrics)
}

func TestPostgres_TransactionRollsBack(t *testing.T) {
	db := openIntegrationDB(t)
	ctx := context.Background()
	users := NewSQLXUserRepository(db)
	sessions := NewSQLXSessionRepository(db)
	tm := NewTransactionManagerAdapter(db)

	name := "ada"
	_, err := users.CreateUser(ctx, "u1", "ada@example.com", &name)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tm.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := sessions.InsertSession(ctx, "u1", domain.SnakeMetrics{Score: 5, HighScore: 5}); err != nil {
			return err
		}
		if err := users.IncrementGamesPlayed(ctx, "u1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	history, err := sessions.ListUserSessions(ctx, domain.GameSnake, "ada", domain.SessionFilter{})
	require.NoError(t, err)
	assert.Empty(t, history)

	got, err := users.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalGamesPlayed)
}
