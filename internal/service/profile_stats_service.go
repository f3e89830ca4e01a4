package service

import (
	"context"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/repository"

	"golang.org/x/sync/errgroup"
)

// ProfileStatsService summarises a player's history across every game.
type ProfileStatsService interface {
	GetProfileStats(ctx context.Context, username string) (*domain.ProfileStats, error)
}

type profileStatsServiceImpl struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewProfileStatsService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) ProfileStatsService {
	return &profileStatsServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// GetProfileStats reads the three game histories concurrently. Any failing
// read fails the whole call.
func (s *profileStatsServiceImpl) GetProfileStats(ctx context.Context, username string) (*domain.ProfileStats, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewFetchFailedError("Failed to fetch user", err)
	}
	profile := user.ToPublicProfile()
	if profile == nil {
		return nil, domain.NewUserNotFoundError(username)
	}

	games := make([]domain.GameStats, len(domain.AllGames))
	g, gctx := errgroup.WithContext(ctx)
	for i, game := range domain.AllGames {
		g.Go(func() error {
			sessions, err := s.sessionRepo.ListUserSessions(gctx, game, profile.Username, domain.SessionFilter{})
			if err != nil {
				return err
			}
			games[i] = domain.SummarizeSessions(game, sessions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewFetchFailedError("Failed to fetch profile stats", err)
	}

	return &domain.ProfileStats{Profile: *profile, Games: games}, nil
}
