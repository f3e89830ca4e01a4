package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moicalder/moimac.com/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileStatsService_GetProfileStats(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	svc := NewProfileStatsService(userRepo, sessionRepo)

	userRepo.On("GetUserByUsername", mock.Anything, "Racer").
		Return(&domain.User{ID: "u1", Username: strPtr("racer"), TotalGamesPlayed: 3}, nil)

	older := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	sessionRepo.On("ListUserSessions", mock.Anything, domain.GameMathMode, "racer", domain.SessionFilter{}).Return([]domain.Session{
		{ID: 1, CreatedAt: older, Metrics: domain.MathModeMetrics{Operator: domain.OperatorAdd, TotalQuestions: 10, CorrectAnswers: 7}},
		{ID: 2, CreatedAt: newer, Metrics: domain.MathModeMetrics{Operator: domain.OperatorAdd, TotalQuestions: 4, CorrectAnswers: 4}},
	}, nil)
	sessionRepo.On("ListUserSessions", mock.Anything, domain.GameSnake, "racer", domain.SessionFilter{}).Return([]domain.Session{
		{ID: 3, CreatedAt: older, Metrics: domain.SnakeMetrics{Score: 12, HighScore: 12}},
	}, nil)
	sessionRepo.On("ListUserSessions", mock.Anything, domain.GameTypeMaster, "racer", domain.SessionFilter{}).Return([]domain.Session{}, nil)

	stats, err := svc.GetProfileStats(context.Background(), "Racer")
	require.NoError(t, err)
	assert.Equal(t, "racer", stats.Profile.Username)
	require.Len(t, stats.Games, len(domain.AllGames))

	byGame := map[domain.Game]domain.GameStats{}
	for _, g := range stats.Games {
		byGame[g.Game] = g
	}

	math := byGame[domain.GameMathMode]
	assert.Equal(t, 2, math.SessionsPlayed)
	require.NotNil(t, math.LastPlayedAt)
	assert.True(t, math.LastPlayedAt.Equal(newer))
	require.NotNil(t, math.BestValue)
	assert.Equal(t, 100.0, *math.BestValue)

	snake := byGame[domain.GameSnake]
	assert.Equal(t, 1, snake.SessionsPlayed)
	assert.Equal(t, 12.0, *snake.BestValue)

	typing := byGame[domain.GameTypeMaster]
	assert.Zero(t, typing.SessionsPlayed)
	assert.Nil(t, typing.BestValue)
	assert.Nil(t, typing.LastPlayedAt)
}

func TestProfileStatsService_GetProfileStats_Failures(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewProfileStatsService(userRepo, new(MockSessionRepository))
		userRepo.On("GetUserByUsername", mock.Anything, "nobody").Return(nil, nil)

		_, err := svc.GetProfileStats(context.Background(), "nobody")
		assertDomainCode(t, err, domain.CodeUserNotFound)
	})

	t.Run("one history read fails", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		sessionRepo := new(MockSessionRepository)
		svc := NewProfileStatsService(userRepo, sessionRepo)

		userRepo.On("GetUserByUsername", mock.Anything, "racer").Return(&domain.User{ID: "u1", Username: strPtr("racer")}, nil)
		sessionRepo.On("ListUserSessions", mock.Anything, domain.GameMathMode, "racer", domain.SessionFilter{}).Return([]domain.Session{}, nil).Maybe()
		sessionRepo.On("ListUserSessions", mock.Anything, domain.GameSnake, "racer", domain.SessionFilter{}).Return(nil, errors.New("boom"))
		sessionRepo.On("ListUserSessions", mock.Anything, domain.GameTypeMaster, "racer", domain.SessionFilter{}).Return([]domain.Session{}, nil).Maybe()

		_, err := svc.GetProfileStats(context.Background(), "racer")
		assertDomainCode(t, err, domain.CodeFetchFailed)
	})
}
