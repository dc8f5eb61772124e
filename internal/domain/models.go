package domain

import "time"

// Difficulty tags a quiz question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// GameKind identifies a mini-game variant.
type GameKind string

const (
	KindQuiz    GameKind = "quiz"
	KindPicture GameKind = "picture"
)

// Question is a multiple-choice trivia question with a single correct option.
type Question struct {
	ID           int        `json:"id"`
	Prompt       string     `json:"prompt"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Explanation  string     `json:"explanation"`
	Difficulty   Difficulty `json:"difficulty"`
}

// PictureOption is one selectable picture card.
type PictureOption struct {
	Emoji       string `json:"emoji"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Correct     bool   `json:"isCorrect"`
}

// PictureQuestion asks the player to pick the correct picture card.
type PictureQuestion struct {
	ID          int             `json:"id"`
	Prompt      string          `json:"prompt"`
	Description string          `json:"description"`
	Options     []PictureOption `json:"options"`
	Explanation string          `json:"explanation"`
}

// Bank groups both question sequences.
type Bank struct {
	ID       string            `json:"id"`
	Quiz     []Question        `json:"quiz"`
	Pictures []PictureQuestion `json:"pictures"`
}

// Completion is the result a finished mini-game hands to the progression rules.
type Completion struct {
	Kind         GameKind `json:"kind"`
	Score        int      `json:"score"`
	Total        int      `json:"total"`
	PointsEarned int      `json:"pointsEarned"`
	Badges       []string `json:"badges"`
	Feedback     string   `json:"feedback"`
}

// StatsView is the render-friendly form of a player's cumulative stats.
type StatsView struct {
	Points           int      `json:"points"`
	Badges           []string `json:"badges"`
	Level            int      `json:"level"`
	QuizzesCompleted int      `json:"quizzesCompleted"`
	LevelProgress    int      `json:"levelProgress"`
}

// OptionView is an option as shown to the player. Correct is only set once the result is revealed.
type OptionView struct {
	Text        string `json:"text"`
	Emoji       string `json:"emoji,omitempty"`
	Description string `json:"description,omitempty"`
	Correct     *bool  `json:"correct,omitempty"`
}

// GameView describes the active mini-game.
type GameView struct {
	Kind          GameKind     `json:"kind"`
	QuestionIndex int          `json:"questionIndex"`
	Total         int          `json:"total"`
	Progress      int          `json:"progress"`
	Prompt        string       `json:"prompt"`
	Description   string       `json:"description,omitempty"`
	Difficulty    Difficulty   `json:"difficulty,omitempty"`
	Options       []OptionView `json:"options"`
	Selected      *int         `json:"selected"`
	ResultShown   bool         `json:"resultShown"`
	Explanation   string       `json:"explanation,omitempty"`
	Score         int          `json:"score"`
	TimeLeft      int          `json:"timeLeft,omitempty"`
	Completion    *Completion  `json:"completion,omitempty"`
}

// Snapshot is the full render state for one player.
type Snapshot struct {
	Screen          string    `json:"screen"`
	LoadingProgress int       `json:"loadingProgress"`
	Username        string    `json:"username"`
	Stats           StatsView `json:"stats"`
	Game            *GameView `json:"game,omitempty"`
}

// Presence is the live view of a connected player mirrored to shared stores.
type Presence struct {
	PlayerID string    `json:"playerId"`
	Username string    `json:"username"`
	Screen   string    `json:"screen"`
	Stats    StatsView `json:"stats"`
}

// CompletionEvent is published whenever a finished mini-game is merged into a player's stats.
type CompletionEvent struct {
	PlayerID   string     `json:"playerId"`
	Username   string     `json:"username"`
	Completion Completion `json:"completion"`
	Stats      StatsView  `json:"stats"`
	OccurredAt time.Time  `json:"occurredAt"`
}
