package domain

import (
	"math"
	"strings"
	"time"
)

// Game identifies one of the hub's games. The value doubles as the
// {game} path segment.
type Game string

const (
	GameMathMode   Game = "mathmode"
	GameSnake      Game = "snake"
	GameTypeMaster Game = "typemaster"
)

var AllGames = []Game{GameMathMode, GameSnake, GameTypeMaster}

func ParseGame(s string) (Game, error) {
	switch g := Game(strings.ToLower(s)); g {
	case GameMathMode, GameSnake, GameTypeMaster:
		return g, nil
	}
	return "", NewNotFoundError("Unknown game").WithContext("game", s)
}

// CountsTowardGamesPlayed reports whether recording a session bumps the
// user's total_games_played. MathMode sessions never have.
func (g Game) CountsTowardGamesPlayed() bool {
	return g == GameSnake || g == GameTypeMaster
}

// DimensionParam is the legacy query parameter naming the game's
// sub-dimension, or "" when the game has none.
func (g Game) DimensionParam() string {
	switch g {
	case GameMathMode:
		return "operator"
	case GameTypeMaster:
		return "lesson"
	}
	return ""
}

type Operator string

const (
	OperatorAdd      Operator = "+"
	OperatorSubtract Operator = "-"
	OperatorMultiply Operator = "×"
	OperatorDivide   Operator = "÷"
)

func ParseOperator(s string) (Operator, bool) {
	switch s {
	// '+' decodes to a space in query strings that were not percent-encoded.
	case "+", " ":
		return OperatorAdd, true
	case "-":
		return OperatorSubtract, true
	case "×", "*", "x":
		return OperatorMultiply, true
	case "÷", "/":
		return OperatorDivide, true
	}
	return "", false
}

// Difficulty is the mean operand digit count.
func Difficulty(digits1, digits2 int) float64 {
	return Round(float64(digits1+digits2)/2, 2)
}

const (
	CustomLessonPrefix = "custom-"
	// CustomLessonFilter selects every custom word-list lesson at once.
	CustomLessonFilter = "custom"
	MaxLessonIDLength  = 255
)

// Column limits of the session tables. Counters are INTEGER and MathMode
// difficulty is NUMERIC(4,2).
const (
	MaxSessionCounter = math.MaxInt32
	MaxDifficulty     = 99.99
	MaxOperandDigits  = 15
)

type sessionCounter struct {
	field string
	value int
}

// checkCounters appends an out-of-range error for every value outside
// [0, MaxSessionCounter], in the order given.
func checkCounters(errs ValidationErrors, counters ...sessionCounter) ValidationErrors {
	for _, c := range counters {
		if c.value < 0 || c.value > MaxSessionCounter {
			errs = append(errs, NewOutOfRangeError(c.field, c.value, 0, MaxSessionCounter))
		}
	}
	return errs
}

func IsCustomLesson(lessonID string) bool {
	return strings.HasPrefix(lessonID, CustomLessonPrefix)
}

// LessonFilter is a TypeMaster sub-dimension filter.
type LessonFilter string

// Matches reports whether a lesson belongs to the filter. The empty filter
// matches everything.
func (f LessonFilter) Matches(lessonID string) bool {
	switch f {
	case "":
		return true
	case CustomLessonFilter:
		return IsCustomLesson(lessonID)
	}
	return string(f) == lessonID
}

func (f LessonFilter) IsCustom() bool {
	return f == CustomLessonFilter
}

// Metrics is the per-game payload of a session. The set of implementations
// is closed: MathModeMetrics, SnakeMetrics and TypeMasterMetrics.
type Metrics interface {
	Game() Game
	Validate() ValidationErrors
	isMetrics()
}

type MathModeMetrics struct {
	Operator         Operator
	TotalQuestions   int
	CorrectAnswers   int
	IncorrectAnswers int
	Difficulty       float64
	Digits1          *int
	Digits2          *int
}

func (MathModeMetrics) Game() Game { return GameMathMode }
func (MathModeMetrics) isMetrics() {}

func (m MathModeMetrics) Validate() ValidationErrors {
	var errs ValidationErrors
	if _, ok := ParseOperator(string(m.Operator)); !ok {
		errs = append(errs, NewInvalidFormatError("operator", m.Operator))
	}
	errs = checkCounters(errs, sessionCounter{"totalQuestions", m.TotalQuestions})
	if m.CorrectAnswers < 0 || m.CorrectAnswers > m.TotalQuestions {
		errs = append(errs, NewOutOfRangeError("correctAnswers", m.CorrectAnswers, 0, m.TotalQuestions))
	}
	errs = checkCounters(errs, sessionCounter{"incorrectAnswers", m.IncorrectAnswers})
	if m.Difficulty < 0 || Round(m.Difficulty, 2) > MaxDifficulty || math.IsNaN(m.Difficulty) {
		errs = append(errs, NewOutOfRangeError("difficulty", m.Difficulty, 0, MaxDifficulty))
	}
	for _, d := range []struct {
		field  string
		digits *int
	}{{"digits1", m.Digits1}, {"digits2", m.Digits2}} {
		if d.digits != nil && (*d.digits < 1 || *d.digits > MaxOperandDigits) {
			errs = append(errs, NewOutOfRangeError(d.field, *d.digits, 1, MaxOperandDigits))
		}
	}
	return errs
}

// AccuracyPercentage is the per-session ratio, nil when no questions were asked.
func (m MathModeMetrics) AccuracyPercentage() *float64 {
	return AccuracyPercentage(int64(m.CorrectAnswers), int64(m.TotalQuestions))
}

type SnakeMetrics struct {
	Score     int
	HighScore int
}

func (SnakeMetrics) Game() Game { return GameSnake }
func (SnakeMetrics) isMetrics() {}

func (m SnakeMetrics) Validate() ValidationErrors {
	return checkCounters(nil,
		sessionCounter{"score", m.Score},
		sessionCounter{"highScore", m.HighScore},
	)
}

type TypeMasterMetrics struct {
	LessonID        string
	WPM             int
	Accuracy        float64
	TotalKeys       int
	CorrectKeys     int
	Mistakes        int
	DurationSeconds int
	WordsCompleted  int
	CustomListName  *string
}

func (TypeMasterMetrics) Game() Game { return GameTypeMaster }
func (TypeMasterMetrics) isMetrics() {}

func (m TypeMasterMetrics) Validate() ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(m.LessonID) == "" {
		errs = append(errs, NewMissingFieldError("lessonId"))
	} else if len(m.LessonID) > MaxLessonIDLength {
		errs = append(errs, NewOutOfRangeError("lessonId", len(m.LessonID), 1, MaxLessonIDLength))
	}
	errs = checkCounters(errs, sessionCounter{"wpm", m.WPM})
	if m.Accuracy < 0 || m.Accuracy > 100 || math.IsNaN(m.Accuracy) {
		errs = append(errs, NewOutOfRangeError("accuracy", m.Accuracy, 0, 100))
	}
	return checkCounters(errs,
		sessionCounter{"totalKeys", m.TotalKeys},
		sessionCounter{"correctKeys", m.CorrectKeys},
		sessionCounter{"mistakes", m.Mistakes},
		sessionCounter{"durationSeconds", m.DurationSeconds},
		sessionCounter{"wordsCompleted", m.WordsCompleted},
	)
}

func (m TypeMasterMetrics) MasteryScore() float64 {
	return MasteryScore(float64(m.WPM), m.Accuracy)
}

// Session is one completed play. Sessions are never updated.
type Session struct {
	ID        int64
	UserID    string
	CreatedAt time.Time
	Metrics   Metrics
}

// SessionFilter narrows a user's session history to one sub-dimension.
type SessionFilter struct {
	Operator Operator
	Lesson   LessonFilter
}

// ParseDimension turns the raw query value into a filter for game. Snake
// has no sub-dimension and ignores the value.
func ParseDimension(game Game, raw string) (SessionFilter, error) {
	if raw == "" {
		return SessionFilter{}, nil
	}
	switch game {
	case GameMathMode:
		op, ok := ParseOperator(raw)
		if !ok {
			return SessionFilter{}, ValidationErrors{NewInvalidFormatError("operator", raw)}
		}
		return SessionFilter{Operator: op}, nil
	case GameTypeMaster:
		if len(raw) > MaxLessonIDLength {
			return SessionFilter{}, ValidationErrors{NewOutOfRangeError("lesson", len(raw), 1, MaxLessonIDLength)}
		}
		return SessionFilter{Lesson: LessonFilter(raw)}, nil
	}
	return SessionFilter{}, nil
}

func (f SessionFilter) IsEmpty() bool {
	return f.Operator == "" && f.Lesson == ""
}

// Label is echoed back to clients next to the rows it filtered.
func (f SessionFilter) Label() string {
	switch {
	case f.Operator != "":
		return string(f.Operator)
	case f.Lesson != "":
		return string(f.Lesson)
	}
	return ""
}
