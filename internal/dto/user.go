package dto

import (
	"time"

	"github.com/moicalder/moimac.com/internal/domain"
)

// GetOrCreateUserRequest is sent by the client after the identity provider
// has signed the player in.
// @Description Request body for first contact
type GetOrCreateUserRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// UpdateProfileRequest carries the fields to change. Omitted fields are
// left untouched.
// @Description Partial profile update
type UpdateProfileRequest struct {
	Username      *string `json:"username,omitempty"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
	WalletAddress *string `json:"wallet_address,omitempty"`
}

func (r UpdateProfileRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Username:      r.Username,
		AvatarURL:     r.AvatarURL,
		WalletAddress: r.WalletAddress,
	}
}

// UserProfileResponse is the caller's own profile.
// @Description Full user profile
type UserProfileResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         *string   `json:"username"`
	AvatarURL        *string   `json:"avatar_url"`
	WalletAddress    *string   `json:"wallet_address"`
	TotalGamesPlayed int       `json:"total_games_played"`
	TotalScore       int       `json:"total_score"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ProfileEnvelope struct {
	Profile UserProfileResponse `json:"profile"`
}

func NewProfileEnvelope(u *domain.User) ProfileEnvelope {
	return ProfileEnvelope{Profile: UserProfileResponse{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		AvatarURL:        u.AvatarURL,
		WalletAddress:    u.WalletAddress,
		TotalGamesPlayed: u.TotalGamesPlayed,
		TotalScore:       u.TotalScore,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}}
}

// PublicUserResponse never includes email, id or wallet.
// @Description Public user information
type PublicUserResponse struct {
	Username         string    `json:"username"`
	AvatarURL        *string   `json:"avatar_url"`
	TotalGamesPlayed int       `json:"total_games_played"`
	TotalScore       int       `json:"total_score"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewPublicUserResponse(p domain.PublicProfile) PublicUserResponse {
	return PublicUserResponse{
		Username:         p.Username,
		AvatarURL:        p.AvatarURL,
		TotalGamesPlayed: p.TotalGamesPlayed,
		TotalScore:       p.TotalScore,
		CreatedAt:        p.CreatedAt,
	}
}

type PublicUserEnvelope struct {
	User PublicUserResponse `json:"user"`
}

type UserListResponse struct {
	Users []PublicUserResponse `json:"users"`
}

func NewUserListResponse(profiles []domain.PublicProfile) UserListResponse {
	users := make([]PublicUserResponse, 0, len(profiles))
	for _, p := range profiles {
		users = append(users, NewPublicUserResponse(p))
	}
	return UserListResponse{Users: users}
}

// UsernameCheckResponse answers GET /username/check.
type UsernameCheckResponse struct {
	Available bool   `json:"available"`
	Username  string `json:"username"`
}

type GameStatsResponse struct {
	Game           string     `json:"game"`
	SessionsPlayed int        `json:"sessions_played"`
	LastPlayedAt   *time.Time `json:"last_played_at"`
	BestMetric     string     `json:"best_metric"`
	BestValue      *float64   `json:"best_value"`
}

// ProfileStatsResponse is a public profile plus one summary per game.
type ProfileStatsResponse struct {
	User  PublicUserResponse  `json:"user"`
	Games []GameStatsResponse `json:"games"`
}

func NewProfileStatsResponse(stats *domain.ProfileStats) ProfileStatsResponse {
	games := make([]GameStatsResponse, 0, len(stats.Games))
	for _, g := range stats.Games {
		games = append(games, GameStatsResponse{
			Game:           string(g.Game),
			SessionsPlayed: g.SessionsPlayed,
			LastPlayedAt:   g.LastPlayedAt,
			BestMetric:     g.BestMetric,
			BestValue:      g.BestValue,
		})
	}
	return ProfileStatsResponse{
		User:  NewPublicUserResponse(stats.Profile),
		Games: games,
	}
}
