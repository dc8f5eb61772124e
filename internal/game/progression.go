package game

import "eco-quest-service/internal/domain"

// PointsPerLevel is the number of points between levels.
const PointsPerLevel = 100

// Stats are a player's cumulative results for the current connection.
type Stats struct {
	Points           int      `json:"points"`
	Badges           BadgeSet `json:"badges"`
	Level            int      `json:"level"`
	QuizzesCompleted int      `json:"quizzesCompleted"`
}

// DefaultStats is the state of a fresh or logged-out player.
func DefaultStats() Stats {
	return Stats{Points: 0, Badges: NewBadgeSet(), Level: 1, QuizzesCompleted: 0}
}

// LevelFor derives the level from a point total.
func LevelFor(points int) int {
	return points/PointsPerLevel + 1
}

// Merge folds a mini-game result into prior stats. Only quiz completions
// count towards QuizzesCompleted; picture games award points and badges only.
func Merge(prior Stats, kind domain.GameKind, pointsEarned int, badges []string) Stats {
	if pointsEarned < 0 {
		pointsEarned = 0
	}
	next := Stats{
		Points:           prior.Points + pointsEarned,
		Badges:           prior.Badges.Union(NewBadgeSet(badges...)),
		QuizzesCompleted: prior.QuizzesCompleted,
	}
	next.Level = LevelFor(next.Points)
	if kind == domain.KindQuiz {
		next.QuizzesCompleted++
	}
	return next
}

// View renders stats for snapshots.
func (s Stats) View() domain.StatsView {
	return domain.StatsView{
		Points:           s.Points,
		Badges:           s.Badges.Labels(),
		Level:            s.Level,
		QuizzesCompleted: s.QuizzesCompleted,
		LevelProgress:    s.Points % PointsPerLevel,
	}
}
