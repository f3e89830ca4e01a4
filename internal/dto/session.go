package dto

import (
	"time"

	"github.com/moicalder/moimac.com/internal/domain"
)

// SubmitSessionRequest is the union of every game's session payload. Which
// fields are required depends on the game in the path.
// @Description Completed game session
type SubmitSessionRequest struct {
	UserID *string `json:"userId"`

	// MathMode
	Operator         *string  `json:"operator,omitempty"`
	TotalQuestions   *int     `json:"totalQuestions,omitempty"`
	CorrectAnswers   *int     `json:"correctAnswers,omitempty"`
	IncorrectAnswers *int     `json:"incorrectAnswers,omitempty"`
	Difficulty       *float64 `json:"difficulty,omitempty"`
	Digits1          *int     `json:"digits1,omitempty"`
	Digits2          *int     `json:"digits2,omitempty"`

	// Snake
	Score     *int `json:"score,omitempty"`
	HighScore *int `json:"highScore,omitempty"`

	// TypeMaster
	LessonID        *string  `json:"lessonId,omitempty"`
	WPM             *int     `json:"wpm,omitempty"`
	Accuracy        *float64 `json:"accuracy,omitempty"`
	TotalKeys       *int     `json:"totalKeys,omitempty"`
	CorrectKeys     *int     `json:"correctKeys,omitempty"`
	Mistakes        *int     `json:"mistakes,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	WordsCompleted  *int     `json:"wordsCompleted,omitempty"`
	CustomListName  *string  `json:"customListName,omitempty"`
}

type SubmitSessionResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID int64  `json:"sessionId"`
}

func NewSubmitSessionResponse(id int64) SubmitSessionResponse {
	return SubmitSessionResponse{Success: true, Message: "Session recorded", SessionID: id}
}

type MathModeSessionResponse struct {
	ID                 int64     `json:"id"`
	Operator           string    `json:"operator"`
	TotalQuestions     int       `json:"total_questions"`
	CorrectAnswers     int       `json:"correct_answers"`
	IncorrectAnswers   int       `json:"incorrect_answers"`
	Difficulty         float64   `json:"difficulty"`
	Digits1            *int      `json:"digits1"`
	Digits2            *int      `json:"digits2"`
	AccuracyPercentage *float64  `json:"accuracy_percentage"`
	CreatedAt          time.Time `json:"created_at"`
}

type SnakeSessionResponse struct {
	ID        int64     `json:"id"`
	Score     int       `json:"score"`
	HighScore int       `json:"high_score"`
	CreatedAt time.Time `json:"created_at"`
}

type TypeMasterSessionResponse struct {
	ID              int64     `json:"id"`
	LessonID        string    `json:"lesson_id"`
	WPM             int       `json:"wpm"`
	Accuracy        float64   `json:"accuracy"`
	TotalKeys       int       `json:"total_keys"`
	CorrectKeys     int       `json:"correct_keys"`
	Mistakes        int       `json:"mistakes"`
	DurationSeconds int       `json:"duration_seconds"`
	WordsCompleted  int       `json:"words_completed"`
	CustomListName  *string   `json:"custom_list_name"`
	MasteryScore    float64   `json:"mastery_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSessionResponse renders one history row in its game's shape.
func NewSessionResponse(s domain.Session) interface{} {
	switch m := s.Metrics.(type) {
	case domain.MathModeMetrics:
		return MathModeSessionResponse{
			ID:                 s.ID,
			Operator:           string(m.Operator),
			TotalQuestions:     m.TotalQuestions,
			CorrectAnswers:     m.CorrectAnswers,
			IncorrectAnswers:   m.IncorrectAnswers,
			Difficulty:         m.Difficulty,
			Digits1:            m.Digits1,
			Digits2:            m.Digits2,
			AccuracyPercentage: m.AccuracyPercentage(),
			CreatedAt:          s.CreatedAt,
		}
	case domain.SnakeMetrics:
		return SnakeSessionResponse{
			ID:        s.ID,
			Score:     m.Score,
			HighScore: m.HighScore,
			CreatedAt: s.CreatedAt,
		}
	case domain.TypeMasterMetrics:
		return TypeMasterSessionResponse{
			ID:              s.ID,
			LessonID:        m.LessonID,
			WPM:             m.WPM,
			Accuracy:        m.Accuracy,
			TotalKeys:       m.TotalKeys,
			CorrectKeys:     m.CorrectKeys,
			Mistakes:        m.Mistakes,
			DurationSeconds: m.DurationSeconds,
			WordsCompleted:  m.WordsCompleted,
			CustomListName:  m.CustomListName,
			MasteryScore:    m.MasteryScore(),
			CreatedAt:       s.CreatedAt,
		}
	}
	return nil
}

// UserSessionsResponse echoes the filter under its game-specific key as
// well as under dimension.
type UserSessionsResponse struct {
	Sessions  []interface{} `json:"sessions"`
	Username  string        `json:"username"`
	Dimension string        `json:"dimension,omitempty"`
	Operator  string        `json:"operator,omitempty"`
	Lesson    string        `json:"lesson,omitempty"`
}

func NewUserSessionsResponse(game domain.Game, username string, filter domain.SessionFilter, sessions []domain.Session) UserSessionsResponse {
	rows := make([]interface{}, 0, len(sessions))
	for _, s := range sessions {
		if r := NewSessionResponse(s); r != nil {
			rows = append(rows, r)
		}
	}
	resp := UserSessionsResponse{Sessions: rows, Username: username}
	resp.Dimension, resp.Operator, resp.Lesson = dimensionLabels(game, filter, "all")
	return resp
}

// dimensionLabels returns the generic label and the per-game alias. Snake
// has no sub-dimension and gets none.
func dimensionLabels(game domain.Game, filter domain.SessionFilter, unfiltered string) (dimension, operator, lesson string) {
	if game == domain.GameSnake {
		return "", "", ""
	}
	dimension = filter.Label()
	if dimension == "" {
		dimension = unfiltered
	}
	if game == domain.GameMathMode {
		return dimension, dimension, ""
	}
	return dimension, "", dimension
}
