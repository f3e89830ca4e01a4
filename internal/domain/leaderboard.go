package domain

import (
	"cmp"
	"slices"
	"strings"
)

// LeaderboardLimit caps every leaderboard.
const LeaderboardLimit = 50

// UserAggregate is one user's grouped sessions as returned by the store.
// Averages are unrounded; rounding belongs to the reducer.
type UserAggregate struct {
	UserID         string
	Username       string
	AvatarURL      *string
	SessionsPlayed int
	Stats          AggregateStats
}

// AggregateStats is the per-game part of a UserAggregate.
type AggregateStats interface {
	Game() Game
	isAggregateStats()
}

type MathModeAggregate struct {
	TotalQuestions  int64
	TotalCorrect    int64
	TotalIncorrect  int64
	AvgDifficulty   float64
	OperatorsPlayed int
}

type SnakeAggregate struct {
	BestScore  int64
	AvgScore   float64
	TotalScore int64
}

type TypeMasterAggregate struct {
	BestWPM          int64
	AvgWPM           float64
	AvgAccuracy      float64
	BestAccuracy     float64
	TotalKeysTyped   int64
	TotalMistakes    int64
	PeakMastery      float64
	LessonsCompleted int
}

func (MathModeAggregate) Game() Game          { return GameMathMode }
func (MathModeAggregate) isAggregateStats()   {}
func (SnakeAggregate) Game() Game             { return GameSnake }
func (SnakeAggregate) isAggregateStats()      {}
func (TypeMasterAggregate) Game() Game        { return GameTypeMaster }
func (TypeMasterAggregate) isAggregateStats() {}

// LeaderboardEntry is a ranked, display-ready row.
type LeaderboardEntry struct {
	Rank           int
	UserID         string
	Username       string
	AvatarURL      *string
	SessionsPlayed int
	Stats          EntryStats
}

type EntryStats interface {
	Game() Game
	isEntryStats()
}

type MathModeEntry struct {
	TotalQuestions     int64
	TotalCorrect       int64
	TotalIncorrect     int64
	AvgDifficulty      float64
	AccuracyPercentage *float64
	// OperatorsPlayed is only set on the unfiltered board.
	OperatorsPlayed *int
}

type SnakeEntry struct {
	BestScore  int64
	AvgScore   float64
	TotalScore int64
}

type TypeMasterEntry struct {
	BestWPM        int64
	AvgWPM         float64
	AvgAccuracy    float64
	BestAccuracy   float64
	TotalKeysTyped int64
	TotalMistakes  int64
	MasteryScore   float64
	// LessonsCompleted is only set on the unfiltered board.
	LessonsCompleted *int
}

func (MathModeEntry) Game() Game      { return GameMathMode }
func (MathModeEntry) isEntryStats()   {}
func (SnakeEntry) Game() Game         { return GameSnake }
func (SnakeEntry) isEntryStats()      {}
func (TypeMasterEntry) Game() Game    { return GameTypeMaster }
func (TypeMasterEntry) isEntryStats() {}

// Reducer turns a game's raw aggregates into entries and orders them.
// Compare returns a negative number when a ranks above b.
type Reducer interface {
	Reduce(agg UserAggregate) LeaderboardEntry
	Compare(a, b LeaderboardEntry) int
}

// ReducerFor picks the reducer for a game. The unfiltered boards carry extra
// breadth columns and TypeMaster ranks them differently.
func ReducerFor(game Game, filter SessionFilter) Reducer {
	switch game {
	case GameMathMode:
		return mathModeReducer{global: filter.Operator == ""}
	case GameTypeMaster:
		return typeMasterReducer{global: filter.Lesson == ""}
	default:
		return snakeReducer{}
	}
}

// RankLeaderboard reduces aggregates, orders them by the game's rule with
// username as the final tie-break, keeps the top LeaderboardLimit and assigns
// 1-based ranks. Aggregates without a username or for another game are
// skipped. A MathMode entry with no accuracy (no questions answered) sorts
// after every entry that has one, which differs from a plain SQL
// "ORDER BY accuracy_percentage DESC" where Postgres puts NULLs first.
func RankLeaderboard(game Game, filter SessionFilter, aggs []UserAggregate) []LeaderboardEntry {
	reducer := ReducerFor(game, filter)

	entries := make([]LeaderboardEntry, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Username == "" || agg.Stats == nil || agg.Stats.Game() != game {
			continue
		}
		entries = append(entries, reducer.Reduce(agg))
	}

	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		return cmp.Or(
			reducer.Compare(a, b),
			cmp.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username)),
			cmp.Compare(a.UserID, b.UserID),
		)
	})

	if len(entries) > LeaderboardLimit {
		entries = entries[:LeaderboardLimit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func baseEntry(agg UserAggregate, stats EntryStats) LeaderboardEntry {
	return LeaderboardEntry{
		UserID:         agg.UserID,
		Username:       agg.Username,
		AvatarURL:      agg.AvatarURL,
		SessionsPlayed: agg.SessionsPlayed,
		Stats:          stats,
	}
}

// desc orders larger values first.
func desc[T cmp.Ordered](a, b T) int {
	return cmp.Compare(b, a)
}

// descNullable orders nil below every value.
func descNullable(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return desc(*a, *b)
}

type mathModeReducer struct{ global bool }

func (r mathModeReducer) Reduce(agg UserAggregate) LeaderboardEntry {
	raw, _ := agg.Stats.(MathModeAggregate)
	e := MathModeEntry{
		TotalQuestions:     raw.TotalQuestions,
		TotalCorrect:       raw.TotalCorrect,
		TotalIncorrect:     raw.TotalIncorrect,
		AvgDifficulty:      Round(raw.AvgDifficulty, 2),
		AccuracyPercentage: AccuracyPercentage(raw.TotalCorrect, raw.TotalQuestions),
	}
	if r.global {
		n := raw.OperatorsPlayed
		e.OperatorsPlayed = &n
	}
	return baseEntry(agg, e)
}

func (mathModeReducer) Compare(a, b LeaderboardEntry) int {
	x, _ := a.Stats.(MathModeEntry)
	y, _ := b.Stats.(MathModeEntry)
	return cmp.Or(
		desc(x.TotalCorrect, y.TotalCorrect),
		descNullable(x.AccuracyPercentage, y.AccuracyPercentage),
	)
}

type snakeReducer struct{}

func (snakeReducer) Reduce(agg UserAggregate) LeaderboardEntry {
	raw, _ := agg.Stats.(SnakeAggregate)
	return baseEntry(agg, SnakeEntry{
		BestScore:  raw.BestScore,
		AvgScore:   Round(raw.AvgScore, 1),
		TotalScore: raw.TotalScore,
	})
}

func (snakeReducer) Compare(a, b LeaderboardEntry) int {
	x, _ := a.Stats.(SnakeEntry)
	y, _ := b.Stats.(SnakeEntry)
	return cmp.Or(
		desc(x.BestScore, y.BestScore),
		desc(x.TotalScore, y.TotalScore),
	)
}

type typeMasterReducer struct{ global bool }

func (r typeMasterReducer) Reduce(agg UserAggregate) LeaderboardEntry {
	raw, _ := agg.Stats.(TypeMasterAggregate)
	e := TypeMasterEntry{
		BestWPM:        raw.BestWPM,
		AvgWPM:         Round(raw.AvgWPM, 1),
		AvgAccuracy:    Round(raw.AvgAccuracy, 1),
		BestAccuracy:   raw.BestAccuracy,
		TotalKeysTyped: raw.TotalKeysTyped,
		TotalMistakes:  raw.TotalMistakes,
		MasteryScore:   Round(raw.PeakMastery, 1),
	}
	if r.global {
		n := raw.LessonsCompleted
		e.LessonsCompleted = &n
	}
	return baseEntry(agg, e)
}

func (r typeMasterReducer) Compare(a, b LeaderboardEntry) int {
	x, _ := a.Stats.(TypeMasterEntry)
	y, _ := b.Stats.(TypeMasterEntry)
	if r.global {
		return cmp.Or(
			desc(x.MasteryScore, y.MasteryScore),
			desc(x.BestWPM, y.BestWPM),
		)
	}
	return cmp.Or(
		desc(x.BestWPM, y.BestWPM),
		desc(x.AvgAccuracy, y.AvgAccuracy),
	)
}
