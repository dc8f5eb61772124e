package game

import "time"

// Timing holds every delay the controller schedules.
type Timing struct {
	// LoadingTick is the interval between loading progress steps.
	LoadingTick time.Duration
	// LoadingStep is the percentage added per tick.
	LoadingStep int
	// LoadingSettle is the pause after progress reaches 100.
	LoadingSettle time.Duration
	// QuestionSeconds is the quiz countdown per question.
	QuestionSeconds int
	// CountdownTick is the length of one countdown second.
	CountdownTick time.Duration
	// ResultDelay is how long a finished game stays on screen before its result is merged.
	ResultDelay time.Duration
}

// DefaultTiming matches the browser game: 2% per 50ms, 500ms settle, 30s per
// quiz question, results shown for 2s.
func DefaultTiming() Timing {
	return Timing{
		LoadingTick:     50 * time.Millisecond,
		LoadingStep:     2,
		LoadingSettle:   500 * time.Millisecond,
		QuestionSeconds: DefaultQuestionSeconds,
		CountdownTick:   time.Second,
		ResultDelay:     2 * time.Second,
	}
}

func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.LoadingTick <= 0 {
		t.LoadingTick = d.LoadingTick
	}
	if t.LoadingStep <= 0 {
		t.LoadingStep = d.LoadingStep
	}
	if t.LoadingSettle < 0 {
		t.LoadingSettle = d.LoadingSettle
	}
	if t.QuestionSeconds <= 0 {
		t.QuestionSeconds = d.QuestionSeconds
	}
	if t.CountdownTick <= 0 {
		t.CountdownTick = d.CountdownTick
	}
	if t.ResultDelay < 0 {
		t.ResultDelay = d.ResultDelay
	}
	return t
}
