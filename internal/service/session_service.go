package service

import (
	"context"
	"errors"
	"strings"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/logger"
	"github.com/moicalder/moimac.com/internal/repository"

	"go.uber.org/zap"
)

// SessionService records completed plays.
type SessionService interface {
	RecordSession(ctx context.Context, userID string, metrics domain.Metrics) (int64, error)
}

type sessionServiceImpl struct {
	txManager   domain.TransactionManager
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
}

func NewSessionService(
	txManager domain.TransactionManager,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
) SessionService {
	return &sessionServiceImpl{
		txManager:   txManager,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

// RecordSession inserts the session and, for games that count toward it,
// bumps the user's total_games_played in the same transaction.
func (s *sessionServiceImpl) RecordSession(ctx context.Context, userID string, metrics domain.Metrics) (int64, error) {
	var verrs domain.ValidationErrors
	if strings.TrimSpace(userID) == "" {
		verrs = append(verrs, domain.NewMissingFieldError("userId"))
	}
	if metrics == nil {
		verrs = append(verrs, domain.NewMissingFieldError("metrics"))
	} else {
		verrs = append(verrs, metrics.Validate()...)
	}
	if len(verrs) > 0 {
		return 0, verrs
	}

	game := metrics.Game()
	var sessionID int64
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		id, err := s.sessionRepo.InsertSession(txCtx, userID, metrics)
		if err != nil {
			return err
		}
		sessionID = id

		if game.CountsTowardGamesPlayed() {
			return s.userRepo.IncrementGamesPlayed(txCtx, userID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, domain.NewUserNotFoundError(userID)
		}
		logger.Get().Error("Failed to record session",
			zap.String("game", string(game)),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return 0, domain.NewInternalError("Failed to record session", err)
	}

	logger.Get().Info("Session recorded",
		zap.String("game", string(game)),
		zap.String("userID", userID),
		zap.Int64("sessionID", sessionID),
	)
	return sessionID, nil
}
