package service

import (
	"context"
	"strings"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/logger"
	"github.com/moicalder/moimac.com/internal/repository"

	"go.uber.org/zap"
)

// LeaderboardService serves ranked boards and per-user session history.
// Both are recomputed on every call.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, game domain.Game, filter domain.SessionFilter) ([]domain.LeaderboardEntry, error)
	GetUserSessions(ctx context.Context, game domain.Game, username string, filter domain.SessionFilter) ([]domain.Session, error)
}

type leaderboardServiceImpl struct {
	leaderboardRepo repository.LeaderboardRepository
	sessionRepo     repository.SessionRepository
}

func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository, sessionRepo repository.SessionRepository) LeaderboardService {
	return &leaderboardServiceImpl{
		leaderboardRepo: leaderboardRepo,
		sessionRepo:     sessionRepo,
	}
}

func (s *leaderboardServiceImpl) GetLeaderboard(ctx context.Context, game domain.Game, filter domain.SessionFilter) ([]domain.LeaderboardEntry, error) {
	aggs, err := s.leaderboardRepo.AggregateByUser(ctx, game, filter)
	if err != nil {
		logger.Get().Error("Failed to aggregate leaderboard",
			zap.String("game", string(game)),
			zap.String("dimension", filter.Label()),
			zap.Error(err),
		)
		return nil, domain.NewFetchFailedError("Failed to fetch leaderboard", err)
	}
	return domain.RankLeaderboard(game, filter, aggs), nil
}

func (s *leaderboardServiceImpl) GetUserSessions(ctx context.Context, game domain.Game, username string, filter domain.SessionFilter) ([]domain.Session, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("username")}
	}

	sessions, err := s.sessionRepo.ListUserSessions(ctx, game, username, filter)
	if err != nil {
		logger.Get().Error("Failed to fetch user sessions",
			zap.String("game", string(game)),
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, domain.NewFetchFailedError("Failed to fetch sessions", err)
	}
	return sessions, nil
}
