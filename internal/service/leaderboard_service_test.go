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

func TestLeaderboardService_GetLeaderboard_RanksAggregates(t *testing.T) {
	lbRepo := new(MockLeaderboardRepository)
	svc := NewLeaderboardService(lbRepo, new(MockSessionRepository))

	aggs := []domain.UserAggregate{
		{UserID: "u1", Username: "slow", SessionsPlayed: 3, Stats: domain.SnakeAggregate{BestScore: 10, TotalScore: 25}},
		{UserID: "u2", Username: "fast", SessionsPlayed: 1, Stats: domain.SnakeAggregate{BestScore: 90, TotalScore: 90}},
		{UserID: "u3", Username: "", SessionsPlayed: 9, Stats: domain.SnakeAggregate{BestScore: 999}},
	}
	lbRepo.On("AggregateByUser", mock.Anything, domain.GameSnake, domain.SessionFilter{}).Return(aggs, nil)

	entries, err := svc.GetLeaderboard(context.Background(), domain.GameSnake, domain.SessionFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "fast", entries[0].Username)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "slow", entries[1].Username)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestLeaderboardService_GetLeaderboard_EmptyAndFailure(t *testing.T) {
	lbRepo := new(MockLeaderboardRepository)
	svc := NewLeaderboardService(lbRepo, new(MockSessionRepository))

	filter := domain.SessionFilter{Operator: domain.OperatorMultiply}
	lbRepo.On("AggregateByUser", mock.Anything, domain.GameMathMode, filter).Return([]domain.UserAggregate{}, nil)
	lbRepo.On("AggregateByUser", mock.Anything, domain.GameTypeMaster, domain.SessionFilter{}).Return(nil, errors.New("timeout"))

	entries, err := svc.GetLeaderboard(context.Background(), domain.GameMathMode, filter)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.GetLeaderboard(context.Background(), domain.GameTypeMaster, domain.SessionFilter{})
	assertDomainCode(t, err, domain.CodeFetchFailed)
}

func TestLeaderboardService_GetUserSessions(t *testing.T) {
	sessionRepo := new(MockSessionRepository)
	svc := NewLeaderboardService(new(MockLeaderboardRepository), sessionRepo)

	filter := domain.SessionFilter{Lesson: domain.CustomLessonFilter}
	sessions := []domain.Session{
		{ID: 2, UserID: "u1", CreatedAt: time.Now(), Metrics: domain.TypeMasterMetrics{LessonID: "custom-animals", WPM: 40, Accuracy: 95}},
	}
	sessionRepo.On("ListUserSessions", mock.Anything, domain.GameTypeMaster, "racer", filter).Return(sessions, nil)
	sessionRepo.On("ListUserSessions", mock.Anything, domain.GameSnake, "racer", domain.SessionFilter{}).Return(nil, errors.New("boom"))

	got, err := svc.GetUserSessions(context.Background(), domain.GameTypeMaster, "racer", filter)
	require.NoError(t, err)
	assert.Equal(t, sessions, got)

	_, err = svc.GetUserSessions(context.Background(), domain.GameSnake, "racer", domain.SessionFilter{})
	assertDomainCode(t, err, domain.CodeFetchFailed)

	_, err = svc.GetUserSessions(context.Background(), domain.GameSnake, "  ", domain.SessionFilter{})
	var verrs domain.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
