package domain

import "time"

// GameStats summarises one user's history in one game.
type GameStats struct {
	Game           Game
	SessionsPlayed int
	LastPlayedAt   *time.Time
	// BestMetric names what BestValue measures for this game.
	BestMetric string
	BestValue  *float64
}

type ProfileStats struct {
	Profile PublicProfile
	Games   []GameStats
}

// BestMetricFor names the headline metric of a game's summary.
func BestMetricFor(game Game) string {
	switch game {
	case GameMathMode:
		return "accuracy_percentage"
	case GameSnake:
		return "score"
	default:
		return "wpm"
	}
}

// SummarizeSessions folds a session history into GameStats. Sessions for
// other games are ignored.
func SummarizeSessions(game Game, sessions []Session) GameStats {
	stats := GameStats{Game: game, BestMetric: BestMetricFor(game)}
	for _, s := range sessions {
		if s.Metrics == nil || s.Metrics.Game() != game {
			continue
		}
		stats.SessionsPlayed++
		if stats.LastPlayedAt == nil || s.CreatedAt.After(*stats.LastPlayedAt) {
			t := s.CreatedAt
			stats.LastPlayedAt = &t
		}

		var value *float64
		switch m := s.Metrics.(type) {
		case MathModeMetrics:
			value = m.AccuracyPercentage()
		case SnakeMetrics:
			v := float64(m.Score)
			value = &v
		case TypeMasterMetrics:
			v := float64(m.WPM)
			value = &v
		}
		if value != nil && (stats.BestValue == nil || *value > *stats.BestValue) {
			stats.BestValue = value
		}
	}
	return stats
}
