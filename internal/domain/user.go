package domain

import (
	"strings"
	"time"
)

// User is a player. ID is assigned by the external identity provider.
type User struct {
	ID               string
	Email            string
	Username         *string
	AvatarURL        *string
	WalletAddress    *string
	TotalGamesPlayed int
	TotalScore       int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasUsername reports whether the user may appear on public surfaces.
func (u *User) HasUsername() bool {
	return u != nil && u.Username != nil && *u.Username != ""
}

// PublicProfile is the subset of a user that is visible to everyone.
type PublicProfile struct {
	Username         string
	AvatarURL        *string
	TotalGamesPlayed int
	TotalScore       int
	CreatedAt        time.Time
}

// ToPublicProfile returns nil for users without a username.
func (u *User) ToPublicProfile() *PublicProfile {
	if !u.HasUsername() {
		return nil
	}
	return &PublicProfile{
		Username:         *u.Username,
		AvatarURL:        u.AvatarURL,
		TotalGamesPlayed: u.TotalGamesPlayed,
		TotalScore:       u.TotalScore,
		CreatedAt:        u.CreatedAt,
	}
}

// ProfileUpdate carries the optional fields of a profile mutation. A nil
// field is left untouched.
type ProfileUpdate struct {
	Username      *string
	AvatarURL     *string
	WalletAddress *string
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.AvatarURL == nil && p.WalletAddress == nil
}

// DefaultUsername derives a username from the local part of an email
// address. Characters outside [A-Za-z0-9_-] become underscores and the result
// is cut to UsernameMaxLength. It returns "" when the address has no local
// part; callers still check the result with IsValidUsername.
func DefaultUsername(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	local = strings.TrimSpace(local)

	var b strings.Builder
	for _, r := range local {
		if b.Len() == UsernameMaxLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
