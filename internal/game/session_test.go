package game

import (
	"reflect"
	"testing"

	"eco-quest-service/internal/domain"
	"eco-quest-service/internal/questionbank"
)

func quizCorrect() []int {
	var answers []int
	for _, q := range questionbank.Quiz() {
		answers = append(answers, q.CorrectIndex)
	}
	return answers
}

func pictureCorrect() []int {
	var answers []int
	for _, q := range questionbank.Pictures() {
		for i, opt := range q.Options {
			if opt.Correct {
				answers = append(answers, i)
			}
		}
	}
	return answers
}

func play(t *testing.T, s *Session, answers []int) *domain.Completion {
	t.Helper()
	var completion *domain.Completion
	for i, a := range answers {
		if !s.Answer(a) {
			t.Fatalf("answer %d rejected", i)
		}
		c, ok := s.Advance()
		if !ok {
			t.Fatalf("advance %d rejected", i)
		}
		completion = c
	}
	return completion
}

func TestQuizPerfectScore(t *testing.T) {
	s := NewQuizSession(questionbank.Quiz(), 0)
	c := play(t, s, quizCorrect())
	if c == nil {
		t.Fatalf("expected completion after last question")
	}
	if c.Score != 5 || c.PointsEarned != 100 {
		t.Fatalf("expected score 5 / 100 points, got %d / %d", c.Score, c.PointsEarned)
	}
	want := []string{"Quiz Master", "Perfect Score", "Eco Learner"}
	if !reflect.DeepEqual(c.Badges, want) {
		t.Fatalf("expected badges %v, got %v", want, c.Badges)
	}
	if c.Feedback != "Excellent work! You're an eco champion!" {
		t.Fatalf("unexpected feedback %q", c.Feedback)
	}
}

func TestQuizAllTimeouts(t *testing.T) {
	s := NewQuizSession(questionbank.Quiz(), 3)
	for q := 0; q < 5; q++ {
		for i := 0; i < 3; i++ {
			if !s.Tick() {
				t.Fatalf("tick %d on question %d rejected", i, q)
			}
		}
		if !s.ResultShown() {
			t.Fatalf("expected timeout to reveal result on question %d", q)
		}
		if s.Tick() {
			t.Fatalf("countdown should stop once the result is shown")
		}
		view := s.View()
		if view.Selected == nil || *view.Selected != NoAnswer {
			t.Fatalf("expected NoAnswer selection, got %v", view.Selected)
		}
		c, ok := s.Advance()
		if !ok {
			t.Fatalf("advance rejected")
		}
		if q < 4 {
			if s.TimeLeft() != 3 {
				t.Fatalf("expected countdown reset to 3, got %d", s.TimeLeft())
			}
			continue
		}
		if c == nil || c.Score != 0 || c.PointsEarned != 0 || len(c.Badges) != 0 {
			t.Fatalf("expected empty completion, got %+v", c)
		}
	}
}

func TestPictureThreeOfFour(t *testing.T) {
	answers := pictureCorrect()
	answers[3] = (answers[3] + 1) % 4
	c := play(t, NewPictureSession(questionbank.Pictures()), answers)
	if c.PointsEarned != 45 {
		t.Fatalf("expected 45 points, got %d", c.PointsEarned)
	}
	want := []string{"Picture Perfect", "Sharp Eye"}
	if !reflect.DeepEqual(c.Badges, want) {
		t.Fatalf("expected badges %v, got %v", want, c.Badges)
	}
}

func TestPictureIsUntimed(t *testing.T) {
	s := NewPictureSession(questionbank.Pictures())
	if s.Tick() {
		t.Fatalf("picture sessions must not count down")
	}
	if s.View().TimeLeft != 0 {
		t.Fatalf("picture view should not carry a countdown")
	}
}

func TestInvalidActionsAreNoOps(t *testing.T) {
	s := NewQuizSession(questionbank.Quiz(), 0)
	if _, ok := s.Advance(); ok {
		t.Fatalf("advance before answering must be ignored")
	}
	if s.Answer(7) || s.Answer(-2) {
		t.Fatalf("out-of-range answers must be ignored")
	}
	if !s.Answer(0) {
		t.Fatalf("first answer rejected")
	}
	if s.Answer(0) {
		t.Fatalf("second answer on the same question must be ignored")
	}
	if s.Score() != 1 {
		t.Fatalf("expected score 1, got %d", s.Score())
	}
}

func TestScoreStaysBounded(t *testing.T) {
	patterns := [][]int{
		{0, 0, 0, 0, 0},
		{1, 2, 3, 0, 1},
		{NoAnswer, NoAnswer, 2, 1, 1},
		{3, 3, 3, 3, 3},
	}
	for _, answers := range patterns {
		s := NewQuizSession(questionbank.Quiz(), 0)
		for _, a := range answers {
			s.Answer(a)
			s.Answer(a)
			if s.Score() < 0 || s.Score() > 5 {
				t.Fatalf("score out of bounds: %d", s.Score())
			}
			s.Advance()
		}
	}
}

func TestViewHidesAnswerUntilRevealed(t *testing.T) {
	s := NewQuizSession(questionbank.Quiz(), 0)
	view := s.View()
	for _, opt := range view.Options {
		if opt.Correct != nil {
			t.Fatalf("correct flag leaked before answering")
		}
	}
	if view.Explanation != "" {
		t.Fatalf("explanation leaked before answering")
	}
	if view.Progress != 20 {
		t.Fatalf("expected progress 20, got %d", view.Progress)
	}

	s.Answer(1)
	view = s.View()
	if view.Options[0].Correct == nil || !*view.Options[0].Correct {
		t.Fatalf("expected option 0 marked correct after reveal")
	}
	if view.Explanation == "" {
		t.Fatalf("expected explanation after reveal")
	}
}
