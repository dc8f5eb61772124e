package game

import "eco-quest-service/internal/domain"

// BadgeRule awards Label when Earned reports true for the final score.
type BadgeRule struct {
	Label  string
	Earned func(score, total int) bool
}

// FeedbackRule picks the completion message for scores >= MinScore.
type FeedbackRule struct {
	MinScore int
	Message  string
}

// Rules parameterize a mini-game variant.
type Rules struct {
	Kind             domain.GameKind
	PointsPerCorrect int
	Timed            bool
	Badges           []BadgeRule
	// Feedback is ordered from the highest threshold down; the last entry is the fallback.
	Feedback []FeedbackRule
}

func atLeast(n int) func(score, total int) bool {
	return func(score, _ int) bool { return score >= n }
}

func perfect(score, total int) bool {
	return total > 0 && score == total
}

// QuizRules are the trivia variant: 20 points per correct answer, countdown per question.
var QuizRules = Rules{
	Kind:             domain.KindQuiz,
	PointsPerCorrect: 20,
	Timed:            true,
	Badges: []BadgeRule{
		{Label: "Quiz Master", Earned: atLeast(3)},
		{Label: "Perfect Score", Earned: perfect},
		{Label: "Eco Learner", Earned: atLeast(1)},
	},
	Feedback: []FeedbackRule{
		{MinScore: 4, Message: "Excellent work! You're an eco champion!"},
		{MinScore: 3, Message: "Great job! You know your environmental facts!"},
		{MinScore: 2, Message: "Good effort! Keep learning about the environment!"},
		{MinScore: 0, Message: "Keep studying! Every bit of environmental knowledge helps!"},
	},
}

// PictureRules are the picture-selection variant: 15 points per correct pick, untimed.
var PictureRules = Rules{
	Kind:             domain.KindPicture,
	PointsPerCorrect: 15,
	Badges: []BadgeRule{
		{Label: "Picture Perfect", Earned: atLeast(3)},
		{Label: "Visual Expert", Earned: perfect},
		{Label: "Sharp Eye", Earned: atLeast(1)},
	},
	Feedback: []FeedbackRule{
		{MinScore: 3, Message: "Amazing visual recognition! You're an eco-champion!"},
		{MinScore: 2, Message: "Good eye for sustainable choices!"},
		{MinScore: 1, Message: "Keep practicing your environmental awareness!"},
		{MinScore: 0, Message: "Every choice matters! Keep learning about sustainability!"},
	},
}

// BadgesFor returns every badge the score qualifies for, in rule order.
func (r Rules) BadgesFor(score, total int) []string {
	badges := []string{}
	for _, rule := range r.Badges {
		if rule.Earned(score, total) {
			badges = append(badges, rule.Label)
		}
	}
	return badges
}

func (r Rules) feedbackFor(score int) string {
	for _, rule := range r.Feedback {
		if score >= rule.MinScore {
			return rule.Message
		}
	}
	return ""
}

// Complete builds the completion result for a final score.
func (r Rules) Complete(score, total int) domain.Completion {
	return domain.Completion{
		Kind:         r.Kind,
		Score:        score,
		Total:        total,
		PointsEarned: score * r.PointsPerCorrect,
		Badges:       r.BadgesFor(score, total),
		Feedback:     r.feedbackFor(score),
	}
}
