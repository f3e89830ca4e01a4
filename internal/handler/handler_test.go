package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/handler"
	"github.com/moicalder/moimac.com/internal/middleware"
	"github.com/moicalder/moimac.com/internal/service"
	"github.com/moicalder/moimac.com/internal/spelling"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockUserService struct {
	GetOrCreateUserFunc     func(ctx context.Context, id, email string) (*domain.User, error)
	GetUserByIDFunc         func(ctx context.Context, id string) (*domain.User, error)
	UpdateUserProfileFunc   func(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	IsUsernameAvailableFunc func(ctx context.Context, candidate, excludingUserID string) (bool, error)
	GetPublicProfileFunc    func(ctx context.Context, username string) (*domain.PublicProfile, error)
	ListUsersFunc           func(ctx context.Context) ([]domain.PublicProfile, error)
}

func (m *MockUserService) GetOrCreateUser(ctx context.Context, id, email string) (*domain.User, error) {
	if m.GetOrCreateUserFunc != nil {
		return m.GetOrCreateUserFunc(ctx, id, email)
	}
	panic("MockUserService.GetOrCreateUserFunc not implemented")
}
func (m *MockUserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	panic("MockUserService.GetUserByIDFunc not implemented")
}
func (m *MockUserService) UpdateUserProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateUserProfileFunc != nil {
		return m.UpdateUserProfileFunc(ctx, id, update)
	}
	panic("MockUserService.UpdateUserProfileFunc not implemented")
}
func (m *MockUserService) IsUsernameAvailable(ctx context.Context, candidate, excludingUserID string) (bool, error) {
	if m.IsUsernameAvailableFunc != nil {
		return m.IsUsernameAvailableFunc(ctx, candidate, excludingUserID)
	}
	panic("MockUserService.IsUsernameAvailableFunc not implemented")
}
func (m *MockUserService) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	if m.GetPublicProfileFunc != nil {
		return m.GetPublicProfileFunc(ctx, username)
	}
	panic("MockUserService.GetPublicProfileFunc not implemented")
}
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.PublicProfile, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	panic("MockUserService.ListUsersFunc not implemented")
}

type MockProfileStatsService struct {
	GetProfileStatsFunc func(ctx context.Context, username string) (*domain.ProfileStats, error)
}

func (m *MockProfileStatsService) GetProfileStats(ctx context.Context, username string) (*domain.ProfileStats, error) {
	if m.GetProfileStatsFunc != nil {
		return m.GetProfileStatsFunc(ctx, username)
	}
	panic("MockProfileStatsService.GetProfileStatsFunc not implemented")
}

type MockSessionService struct {
	RecordSessionFunc func(ctx context.Context, userID string, metrics domain.Metrics) (int64, error)
}

func (m *MockSessionService) RecordSession(ctx context.Context, userID string, metrics domain.Metrics) (int64, error) {
	if m.RecordSessionFunc != nil {
		return m.RecordSessionFunc(ctx, userID, metrics)
	}
	panic("MockSessionService.RecordSessionFunc not implemented")
}

type MockLeaderboardService struct {
	GetLeaderboardFunc  func(ctx context.Context, game domain.Game, filter domain.SessionFilter) ([]domain.LeaderboardEntry, error)
	GetUserSessionsFunc func(ctx context.Context, game domain.Game, username string, filter domain.SessionFilter) ([]domain.Session, error)
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context, game domain.Game, filter domain.SessionFilter) ([]domain.LeaderboardEntry, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, game, filter)
	}
	panic("MockLeaderboardService.GetLeaderboardFunc not implemented")
}
func (m *MockLeaderboardService) GetUserSessions(ctx context.Context, game domain.Game, username string, filter domain.SessionFilter) ([]domain.Session, error) {
	if m.GetUserSessionsFunc != nil {
		return m.GetUserSessionsFunc(ctx, game, username, filter)
	}
	panic("MockLeaderboardService.GetUserSessionsFunc not implemented")
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 3 * time.Second, nil
}

type testDeps struct {
	users       *MockUserService
	stats       *MockProfileStatsService
	sessions    *MockSessionService
	leaderboard *MockLeaderboardService
	lists       *spelling.Store
	pinger      fakePinger
	limiter     middleware.RateLimiter
}

func newTestApp(t *testing.T, deps testDeps) *fiber.App {
	t.Helper()
	if deps.users == nil {
		deps.users = &MockUserService{}
	}
	if deps.stats == nil {
		deps.stats = &MockProfileStatsService{}
	}
	if deps.sessions == nil {
		deps.sessions = &MockSessionService{}
	}
	if deps.leaderboard == nil {
		deps.leaderboard = &MockLeaderboardService{}
	}
	if deps.lists == nil {
		deps.lists = spelling.NewStore(filepath.Join(t.TempDir(), "spelling-lists.json"))
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	handler.RegisterRoutes(app, handler.Handlers{
		User:         handler.NewUserHandler(deps.users, deps.stats),
		Session:      handler.NewSessionHandler(deps.sessions),
		Leaderboard:  handler.NewLeaderboardHandler(deps.leaderboard),
		SpellingList: handler.NewSpellingListHandler(service.NewSpellingListService(deps.lists)),
		Health:       handler.NewHealthHandler(deps.pinger),
	}, deps.limiter)
	return app
}

func do(t *testing.T, app *fiber.App, method, target string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func strPtr(s string) *string { return &s }
