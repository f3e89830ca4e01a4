package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/moicalder/moimac.com/cmd/seed_demo_data/internal/seedmodels"
	"github.com/moicalder/moimac.com/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	user    *domain.User
	updates []domain.ProfileUpdate
}

func (f *fakeUsers) GetOrCreateUser(_ context.Context, id, email string) (*domain.User, error) {
	if f.user == nil {
		f.user = &domain.User{ID: id, Email: email}
	}
	return f.user, nil
}

func (f *fakeUsers) UpdateUserProfile(_ context.Context, _ string, update domain.ProfileUpdate) (*domain.User, error) {
	f.updates = append(f.updates, update)
	return f.user, nil
}

type fakeSessions struct {
	recorded []domain.Metrics
	err      error
}

func (f *fakeSessions) RecordSession(_ context.Context, _ string, metrics domain.Metrics) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.recorded = append(f.recorded, metrics)
	return int64(len(f.recorded)), nil
}

func loadPlayers(t *testing.T, raw string) []seedmodels.SeedPlayer {
	t.Helper()
	var players []seedmodels.SeedPlayer
	require.NoError(t, json.Unmarshal([]byte(raw), &players))
	return players
}

func TestSeedPlayer(t *testing.T) {
	players := loadPlayers(t, `[{
		"user_id": "u1", "email": "ada@example.com", "username": "ada",
		"sessions": [
			{"game": "mathmode", "session": {"operator": "*", "totalQuestions": 10, "correctAnswers": 9, "incorrectAnswers": 1, "digits1": 2, "digits2": 1}},
			{"game": "snake", "session": {"score": 42}},
			{"game": "typemaster", "session": {"lessonId": "home-row", "wpm": 55, "accuracy": 97.5}}
		]
	}]`)

	users := &fakeUsers{}
	sessions := &fakeSessions{}
	s := newSeeder(users, sessions, zap.NewNop())

	require.NoError(t, s.seedPlayer(context.Background(), players[0]))

	require.Len(t, users.updates, 1)
	assert.Equal(t, "ada", *users.updates[0].Username)
	assert.Nil(t, users.updates[0].AvatarURL)

	require.Len(t, sessions.recorded, 3)
	assert.Equal(t, domain.GameMathMode, sessions.recorded[0].Game())
	snake, ok := sessions.recorded[1].(domain.SnakeMetrics)
	require.True(t, ok)
	assert.Equal(t, 42, snake.HighScore)
	assert.Equal(t, domain.GameTypeMaster, sessions.recorded[2].Game())
}

func TestSeedPlayer_SkipsProfileUpdateWhenUnchanged(t *testing.T) {
	name := "ada"
	users := &fakeUsers{user: &domain.User{ID: "u1", Email: "ada@example.com", Username: &name}}
	s := newSeeder(users, &fakeSessions{}, zap.NewNop())

	err := s.seedPlayer(context.Background(), seedmodels.SeedPlayer{UserID: "u1", Email: "ada@example.com", Username: "ada"})
	require.NoError(t, err)
	assert.Empty(t, users.updates)
}

func TestSeedPlayer_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing identity", func(t *testing.T) {
		s := newSeeder(&fakeUsers{}, &fakeSessions{}, zap.NewNop())
		assert.Error(t, s.seedPlayer(ctx, seedmodels.SeedPlayer{UserID: "u1"}))
	})

	t.Run("unknown game", func(t *testing.T) {
		s := newSeeder(&fakeUsers{}, &fakeSessions{}, zap.NewNop())
		p := seedmodels.SeedPlayer{UserID: "u1", Email: "a@b.c", Sessions: []seedmodels.SeedSession{{Game: "pong"}}}
		assert.Error(t, s.seedPlayer(ctx, p))
	})

	t.Run("invalid session", func(t *testing.T) {
		sessions := &fakeSessions{}
		s := newSeeder(&fakeUsers{}, sessions, zap.NewNop())
		p := seedmodels.SeedPlayer{UserID: "u1", Email: "a@b.c", Sessions: []seedmodels.SeedSession{{Game: "snake"}}}

		err := s.seedPlayer(ctx, p)
		var verrs domain.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
		assert.Empty(t, sessions.recorded)
	})

	t.Run("record failure", func(t *testing.T) {
		cause := errors.New("boom")
		s := newSeeder(&fakeUsers{}, &fakeSessions{err: cause}, zap.NewNop())
		score := 3
		p := seedmodels.SeedPlayer{UserID: "u1", Email: "a@b.c", Sessions: []seedmodels.SeedSession{{Game: "snake"}}}
		p.Sessions[0].Session.Score = &score
		assert.ErrorIs(t, s.seedPlayer(ctx, p), cause)
	})
}

func TestDemoSeedFileIsValid(t *testing.T) {
	raw, err := os.ReadFile("../../" + defaultSeedFilePath)
	require.NoError(t, err)
	players := loadPlayers(t, string(raw))
	require.NotEmpty(t, players)

	s := newSeeder(&fakeUsers{}, &fakeSessions{}, zap.NewNop())
	for _, p := range players {
		s.users = &fakeUsers{}
		assert.NoError(t, s.seedPlayer(context.Background(), p), p.UserID)
	}
}
