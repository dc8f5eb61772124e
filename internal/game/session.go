package game

import "eco-quest-service/internal/domain"

const (
	// NoAnswer is recorded when the countdown expires. It never matches a correct option.
	NoAnswer = -1
	// DefaultQuestionSeconds is the quiz countdown per question.
	DefaultQuestionSeconds = 30
)

// round is a question of either variant reduced to what the session needs.
type round struct {
	prompt      string
	description string
	explanation string
	difficulty  domain.Difficulty
	options     []domain.OptionView
	correct     int
}

func quizRounds(questions []domain.Question) []round {
	rounds := make([]round, 0, len(questions))
	for _, q := range questions {
		opts := make([]domain.OptionView, len(q.Options))
		for i, text := range q.Options {
			opts[i] = domain.OptionView{Text: text}
		}
		rounds = append(rounds, round{
			prompt:      q.Prompt,
			explanation: q.Explanation,
			difficulty:  q.Difficulty,
			options:     opts,
			correct:     q.CorrectIndex,
		})
	}
	return rounds
}

func pictureRounds(questions []domain.PictureQuestion) []round {
	rounds := make([]round, 0, len(questions))
	for _, q := range questions {
		opts := make([]domain.OptionView, len(q.Options))
		correct := NoAnswer
		for i, opt := range q.Options {
			opts[i] = domain.OptionView{Text: opt.Label, Emoji: opt.Emoji, Description: opt.Description}
			if opt.Correct && correct == NoAnswer {
				correct = i
			}
		}
		rounds = append(rounds, round{
			prompt:      q.Prompt,
			description: q.Description,
			explanation: q.Explanation,
			options:     opts,
			correct:     correct,
		})
	}
	return rounds
}

// Session tracks one play-through of a mini-game. It holds no timers; the
// controller drives Tick and owns the completion delay.
type Session struct {
	rules           Rules
	rounds          []round
	questionSeconds int

	index       int
	selected    *int
	score       int
	resultShown bool
	timeLeft    int
	completion  *domain.Completion
}

// NewQuizSession starts a timed trivia session.
func NewQuizSession(questions []domain.Question, questionSeconds int) *Session {
	if questionSeconds <= 0 {
		questionSeconds = DefaultQuestionSeconds
	}
	return &Session{
		rules:           QuizRules,
		rounds:          quizRounds(questions),
		questionSeconds: questionSeconds,
		timeLeft:        questionSeconds,
	}
}

// NewPictureSession starts an untimed picture session.
func NewPictureSession(questions []domain.PictureQuestion) *Session {
	return &Session{
		rules:  PictureRules,
		rounds: pictureRounds(questions),
	}
}

func (s *Session) Kind() domain.GameKind { return s.rules.Kind }

func (s *Session) Score() int { return s.score }

func (s *Session) Index() int { return s.index }

func (s *Session) TimeLeft() int { return s.timeLeft }

func (s *Session) ResultShown() bool { return s.resultShown }

// Complete reports whether the last question has been advanced past.
func (s *Session) Complete() bool { return s.completion != nil }

// Answer records a selection for the current question. It reports false,
// changing nothing, when a result is already shown, the session is complete,
// or the index is neither NoAnswer nor a valid option.
func (s *Session) Answer(index int) bool {
	if s.resultShown || s.completion != nil || len(s.rounds) == 0 {
		return false
	}
	r := s.rounds[s.index]
	if index != NoAnswer && (index < 0 || index >= len(r.options)) {
		return false
	}
	selected := index
	s.selected = &selected
	s.resultShown = true
	if index != NoAnswer && index == r.correct {
		s.score++
	}
	return true
}

// Advance moves past a revealed result. On the last question it finishes the
// session and returns the completion.
func (s *Session) Advance() (*domain.Completion, bool) {
	if !s.resultShown || s.completion != nil {
		return nil, false
	}
	if s.index < len(s.rounds)-1 {
		s.index++
		s.selected = nil
		s.resultShown = false
		s.timeLeft = s.questionSeconds
		return nil, true
	}
	completion := s.rules.Complete(s.score, len(s.rounds))
	s.completion = &completion
	return s.completion, true
}

// Tick counts down one second on a timed, unanswered question and answers
// NoAnswer when time runs out.
func (s *Session) Tick() bool {
	if !s.rules.Timed || s.resultShown || s.completion != nil {
		return false
	}
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.Answer(NoAnswer)
	}
	return true
}

// View renders the current question. The correct option is only marked once the result is shown.
func (s *Session) View() *domain.GameView {
	total := len(s.rounds)
	view := &domain.GameView{
		Kind:          s.rules.Kind,
		QuestionIndex: s.index,
		Total:         total,
		ResultShown:   s.resultShown,
		Score:         s.score,
		Completion:    s.completion,
	}
	if total == 0 {
		return view
	}
	view.Progress = (s.index + 1) * 100 / total
	if s.rules.Timed {
		view.TimeLeft = s.timeLeft
	}
	r := s.rounds[s.index]
	view.Prompt = r.prompt
	view.Description = r.description
	view.Difficulty = r.difficulty
	view.Options = make([]domain.OptionView, len(r.options))
	copy(view.Options, r.options)
	if s.selected != nil {
		selected := *s.selected
		view.Selected = &selected
	}
	if s.resultShown {
		view.Explanation = r.explanation
		for i := range view.Options {
			correct := i == r.correct
			view.Options[i].Correct = &correct
		}
	}
	return view
}
