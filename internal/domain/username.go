package domain

import "regexp"

const (
	UsernameMinLength = 3
	UsernameMaxLength = 20
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

// ValidateUsername checks the format only. Uniqueness is a store concern.
func ValidateUsername(username string) ValidationErrors {
	if username == "" {
		return ValidationErrors{NewMissingFieldError("username")}
	}
	if !usernamePattern.MatchString(username) {
		return ValidationErrors{{
			Field:   "username",
			Code:    CodeInvalidFormat,
			Message: "Username must be 3-20 characters and contain only letters, numbers, underscores, or hyphens",
		}}
	}
	return nil
}

// IsValidUsername is the boolean form of ValidateUsername.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}
