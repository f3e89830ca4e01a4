package validation

import (
	"net/url"
	"strings"

	"github.com/moicalder/moimac.com/internal/domain"
	"github.com/moicalder/moimac.com/internal/dto"
)

const (
	maxAvatarURLLength     = 2048
	maxWalletAddressLength = 255
	maxCustomListNameLen   = 255
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmitSession checks the fields the game requires and builds the
// session metrics, filling defaults for the optional ones.
func (v *Validator) ValidateSubmitSession(game domain.Game, req dto.SubmitSessionRequest) (string, domain.Metrics, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	userID := deref(req.UserID)
	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError("userId"))
	}

	var metrics domain.Metrics
	switch game {
	case domain.GameMathMode:
		m, errs := v.mathModeMetrics(req)
		metrics, errors = m, append(errors, errs...)
	case domain.GameSnake:
		m, errs := v.snakeMetrics(req)
		metrics, errors = m, append(errors, errs...)
	case domain.GameTypeMaster:
		m, errs := v.typeMasterMetrics(req)
		metrics, errors = m, append(errors, errs...)
	default:
		errors = append(errors, domain.NewInvalidFormatError("game", game))
	}

	if len(errors) > 0 {
		return "", nil, errors
	}
	if errs := metrics.Validate(); len(errs) > 0 {
		return "", nil, errs
	}
	return userID, metrics, nil
}

func (v *Validator) mathModeMetrics(req dto.SubmitSessionRequest) (domain.Metrics, domain.ValidationErrors) {
	var errors domain.ValidationErrors

	var op domain.Operator
	if req.Operator == nil || *req.Operator == "" {
		errors = append(errors, domain.NewMissingFieldError("operator"))
	} else if parsed, ok := domain.ParseOperator(*req.Operator); !ok {
		errors = append(errors, domain.NewInvalidFormatError("operator", *req.Operator))
	} else {
		op = parsed
	}
	if req.TotalQuestions == nil {
		errors = append(errors, domain.NewMissingFieldError("totalQuestions"))
	}
	if len(errors) > 0 {
		return nil, errors
	}

	m := domain.MathModeMetrics{
		Operator:         op,
		TotalQuestions:   *req.TotalQuestions,
		CorrectAnswers:   derefInt(req.CorrectAnswers),
		IncorrectAnswers: derefInt(req.IncorrectAnswers),
		Digits1:          nonZero(req.Digits1),
		Digits2:          nonZero(req.Digits2),
	}
	switch {
	case req.Difficulty != nil:
		m.Difficulty = *req.Difficulty
	case m.Digits1 != nil && m.Digits2 != nil:
		m.Difficulty = domain.Difficulty(*m.Digits1, *m.Digits2)
	}
	return m, nil
}

func (v *Validator) snakeMetrics(req dto.SubmitSessionRequest) (domain.Metrics, domain.ValidationErrors) {
	if req.Score == nil {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("score")}
	}
	m := domain.SnakeMetrics{Score: *req.Score, HighScore: *req.Score}
	if req.HighScore != nil {
		m.HighScore = *req.HighScore
	}
	return m, nil
}

func (v *Validator) typeMasterMetrics(req dto.SubmitSessionRequest) (domain.Metrics, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	if strings.TrimSpace(deref(req.LessonID)) == "" {
		errors = append(errors, domain.NewMissingFieldError("lessonId"))
	}
	if req.WPM == nil {
		errors = append(errors, domain.NewMissingFieldError("wpm"))
	}
	if len(errors) > 0 {
		return nil, errors
	}

	m := domain.TypeMasterMetrics{
		LessonID:        *req.LessonID,
		WPM:             *req.WPM,
		TotalKeys:       derefInt(req.TotalKeys),
		CorrectKeys:     derefInt(req.CorrectKeys),
		Mistakes:        derefInt(req.Mistakes),
		DurationSeconds: derefInt(req.DurationSeconds),
		WordsCompleted:  derefInt(req.WordsCompleted),
	}
	if req.Accuracy != nil {
		m.Accuracy = *req.Accuracy
	}
	if name := strings.TrimSpace(deref(req.CustomListName)); name != "" {
		if len(name) > maxCustomListNameLen {
			return nil, domain.ValidationErrors{domain.NewOutOfRangeError("customListName", len(name), 1, maxCustomListNameLen)}
		}
		m.CustomListName = &name
	}
	return m, nil
}

// ValidateProfileUpdate checks every supplied field. An empty avatar or
// wallet clears it.
func (v *Validator) ValidateProfileUpdate(req dto.UpdateProfileRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Username != nil {
		errors = append(errors, domain.ValidateUsername(*req.Username)...)
	}
	if req.AvatarURL != nil && *req.AvatarURL != "" {
		if len(*req.AvatarURL) > maxAvatarURLLength {
			errors = append(errors, domain.NewOutOfRangeError("avatar_url", len(*req.AvatarURL), 1, maxAvatarURLLength))
		} else if !isValidAvatarURL(*req.AvatarURL) {
			errors = append(errors, domain.NewInvalidFormatError("avatar_url", *req.AvatarURL))
		}
	}
	if req.WalletAddress != nil && len(*req.WalletAddress) > maxWalletAddressLength {
		errors = append(errors, domain.NewOutOfRangeError("wallet_address", len(*req.WalletAddress), 1, maxWalletAddressLength))
	}

	return errors
}

// ValidateUsernameCheck validates the username query parameter.
func (v *Validator) ValidateUsernameCheck(username string) domain.ValidationErrors {
	if strings.TrimSpace(username) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("username")}
	}
	return domain.ValidateUsername(username)
}

// Helper functions for validation

// isValidAvatarURL accepts absolute http(s) URLs and data URIs.
func isValidAvatarURL(s string) bool {
	if strings.HasPrefix(s, "data:image/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// nonZero treats an absent or zero digit count as unknown.
func nonZero(i *int) *int {
	if i == nil || *i == 0 {
		return nil
	}
	v := *i
	return &v
}
