package main

import (
	"context"
	"fmt"

	"github.com/moicalder/moimac.com/cmd/seed_demo_data/internal/seedmodels"
	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/validation"

	"go.uber.org/zap"
)

type userSeeder interface {
	GetOrCreateUser(ctx context.Context, id, email string) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
}

type sessionRecorder interface {
	RecordSession(ctx context.Context, userID string, metrics domain.Metrics) (int64, error)
}

type seeder struct {
	users     userSeeder
	sessions  sessionRecorder
	validator *validation.Validator
	log       *zap.Logger
}

func newSeeder(users userSeeder, sessions sessionRecorder, log *zap.Logger) *seeder {
	return &seeder{
		users:     users,
		sessions:  sessions,
		validator: validation.NewValidator(),
		log:       log,
	}
}

// seedPlayer creates the user if needed, applies the profile fields and
// records every session through the same validation the API uses. Running
// it twice records the sessions twice.
func (s *seeder) seedPlayer(ctx context.Context, p seedmodels.SeedPlayer) error {
	if p.UserID == "" || p.Email == "" {
		return fmt.Errorf("player needs user_id and email")
	}

	user, err := s.users.GetOrCreateUser(ctx, p.UserID, p.Email)
	if err != nil {
		return fmt.Errorf("failed to get or create user: %w", err)
	}

	var update domain.ProfileUpdate
	if p.Username != "" && (user.Username == nil || *user.Username != p.Username) {
		update.Username = &p.Username
	}
	if p.AvatarURL != "" {
		update.AvatarURL = &p.AvatarURL
	}
	if !update.IsEmpty() {
		if _, err := s.users.UpdateUserProfile(ctx, p.UserID, update); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
	}

	for i, seedSession := range p.Sessions {
		game, err := domain.ParseGame(seedSession.Game)
		if err != nil {
			return fmt.Errorf("session %d: %w", i, err)
		}

		req := seedSession.Session
		req.UserID = &p.UserID
		userID, metrics, verrs := s.validator.ValidateSubmitSession(game, req)
		if len(verrs) > 0 {
			return fmt.Errorf("session %d: %w", i, verrs)
		}

		id, err := s.sessions.RecordSession(ctx, userID, metrics)
		if err != nil {
			return fmt.Errorf("session %d: %w", i, err)
		}
		s.log.Debug("Recorded session", zap.String("game", string(game)), zap.Int64("id", id))
	}

	s.log.Info("Seeded player", zap.String("user_id", p.UserID), zap.Int("sessions", len(p.Sessions)))
	return nil
}
