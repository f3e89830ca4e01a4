package service

import (
	"context"

	"github.com/moicalder/moimac.com/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, id, email string, username *string) (*domain.User, error) {
	args := m.Called(ctx, id, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) IsUsernameTaken(ctx context.Context, username, excludingUserID string) (bool, error) {
	args := m.Called(ctx, username, excludingUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListUsersWithUsername(ctx context.Context, limit int) ([]domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) IncrementGamesPlayed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockSessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) InsertSession(ctx context.Context, userID string, metrics domain.Metrics) (int64, error) {
	args := m.Called(ctx, userID, metrics)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) ListUserSessions(ctx context.Context, game domain.Game, username string, filter domain.SessionFilter) ([]domain.Session, error) {
	args := m.Called(ctx, game, username, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

// --- MockLeaderboardRepository ---
type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) AggregateByUser(ctx context.Context, game domain.Game, filter domain.SessionFilter) ([]domain.UserAggregate, error) {
	args := m.Called(ctx, game, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAggregate), args.Error(1)
}

// --- fakeTxManager ---
// Runs fn inline and counts how each unit of work ended.
type fakeTxManager struct {
	committed  int
	rolledBack int
}

func (f *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rolledBack++
		return err
	}
	f.committed++
	return nil
}

func strPtr(s string) *string { return &s }
