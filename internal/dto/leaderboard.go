package dto

import (
	"time"

	"github.com/moicalder/moimac.com/internal/domain"
)

type MathModeLeaderboardItem struct {
	Rank               int      `json:"rank"`
	Username           string   `json:"username"`
	AvatarURL          *string  `json:"avatar_url"`
	SessionsPlayed     int      `json:"sessions_played"`
	TotalQuestions     int64    `json:"total_questions"`
	TotalCorrect       int64    `json:"total_correct"`
	TotalIncorrect     int64    `json:"total_incorrect"`
	AvgDifficulty      float64  `json:"avg_difficulty"`
	AccuracyPercentage *float64 `json:"accuracy_percentage"`
	OperatorsPlayed    *int     `json:"operators_played,omitempty"`
}

type SnakeLeaderboardItem struct {
	Rank           int     `json:"rank"`
	Username       string  `json:"username"`
	AvatarURL      *string `json:"avatar_url"`
	SessionsPlayed int     `json:"sessions_played"`
	BestScore      int64   `json:"best_score"`
	AvgScore       float64 `json:"avg_score"`
	TotalScore     int64   `json:"total_score"`
}

type TypeMasterLeaderboardItem struct {
	Rank             int     `json:"rank"`
	Username         string  `json:"username"`
	AvatarURL        *string `json:"avatar_url"`
	SessionsPlayed   int     `json:"sessions_played"`
	BestWPM          int64   `json:"best_wpm"`
	AvgWPM           float64 `json:"avg_wpm"`
	AvgAccuracy      float64 `json:"avg_accuracy"`
	BestAccuracy     float64 `json:"best_accuracy"`
	TotalKeysTyped   int64   `json:"total_keys_typed"`
	TotalMistakes    int64   `json:"total_mistakes"`
	MasteryScore     float64 `json:"mastery_score"`
	LessonsCompleted *int    `json:"lessons_completed,omitempty"`
}

// NewLeaderboardItem renders one ranked entry in its game's shape. User ids
// stay server-side.
func NewLeaderboardItem(e domain.LeaderboardEntry) interface{} {
	switch s := e.Stats.(type) {
	case domain.MathModeEntry:
		return MathModeLeaderboardItem{
			Rank:               e.Rank,
			Username:           e.Username,
			AvatarURL:          e.AvatarURL,
			SessionsPlayed:     e.SessionsPlayed,
			TotalQuestions:     s.TotalQuestions,
			TotalCorrect:       s.TotalCorrect,
			TotalIncorrect:     s.TotalIncorrect,
			AvgDifficulty:      s.AvgDifficulty,
			AccuracyPercentage: s.AccuracyPercentage,
			OperatorsPlayed:    s.OperatorsPlayed,
		}
	case domain.SnakeEntry:
		return SnakeLeaderboardItem{
			Rank:           e.Rank,
			Username:       e.Username,
			AvatarURL:      e.AvatarURL,
			SessionsPlayed: e.SessionsPlayed,
			BestScore:      s.BestScore,
			AvgScore:       s.AvgScore,
			TotalScore:     s.TotalScore,
		}
	case domain.TypeMasterEntry:
		return TypeMasterLeaderboardItem{
			Rank:             e.Rank,
			Username:         e.Username,
			AvatarURL:        e.AvatarURL,
			SessionsPlayed:   e.SessionsPlayed,
			BestWPM:          s.BestWPM,
			AvgWPM:           s.AvgWPM,
			AvgAccuracy:      s.AvgAccuracy,
			BestAccuracy:     s.BestAccuracy,
			TotalKeysTyped:   s.TotalKeysTyped,
			TotalMistakes:    s.TotalMistakes,
			MasteryScore:     s.MasteryScore,
			LessonsCompleted: s.LessonsCompleted,
		}
	}
	return nil
}

// LeaderboardResponse answers GET /{game}/leaderboard.
// @Description Ranked leaderboard for one game
type LeaderboardResponse struct {
	Leaderboard []interface{} `json:"leaderboard"`
	Game        string        `json:"game"`
	Dimension   string        `json:"dimension,omitempty"`
	Operator    string        `json:"operator,omitempty"`
	Lesson      string        `json:"lesson,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

func NewLeaderboardResponse(game domain.Game, filter domain.SessionFilter, entries []domain.LeaderboardEntry, now time.Time) LeaderboardResponse {
	rows := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		if item := NewLeaderboardItem(e); item != nil {
			rows = append(rows, item)
		}
	}
	resp := LeaderboardResponse{Leaderboard: rows, Game: string(game), Timestamp: now.UTC()}
	resp.Dimension, resp.Operator, resp.Lesson = dimensionLabels(game, filter, "global")
	return resp
}
