package seedmodels

import "github.com/moicalder/moimac.com/internal/dto"

// SeedSession is one finished game in the seed file. Session uses the same
// shape as the POST /api/{game}/session body; userId is filled in from the
// owning player.
type SeedSession struct {
	Game    string                   `json:"game"`
	Session dto.SubmitSessionRequest `json:"session"`
}

// SeedPlayer defines a demo user and the sessions recorded for them.
type SeedPlayer struct {
	UserID    string        `json:"user_id"`
	Email     string        `json:"email"`
	Username  string        `json:"username"`
	AvatarURL string        `json:"avatar_url"`
	Sessions  []SeedSession `json:"sessions"`
}
