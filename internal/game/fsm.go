package game

// Screen is the single active screen of a player.
type Screen string

const (
	ScreenLoading   Screen = "loading"
	ScreenLogin     Screen = "login"
	ScreenDashboard Screen = "dashboard"
	ScreenQuiz      Screen = "quiz"
	ScreenPicture   Screen = "picture"
)

// Action is an input to the controller.
type Action string

const (
	ActionLoadingComplete Action = "loadingComplete"
	ActionLogin           Action = "login"
	ActionStartQuiz       Action = "startQuiz"
	ActionStartPicture    Action = "startPicture"
	ActionComplete        Action = "complete"
	ActionBack            Action = "back"
	ActionLogout          Action = "logout"

	// Game inputs stay on the current screen and are routed to the session.
	ActionAnswer Action = "answer"
	ActionNext   Action = "next"
)

// transitions lists every legal screen change. Pairs not listed are ignored.
var transitions = map[Screen]map[Action]Screen{
	ScreenLoading: {
		ActionLoadingComplete: ScreenLogin,
	},
	ScreenLogin: {
		ActionLogin: ScreenDashboard,
	},
	ScreenDashboard: {
		ActionStartQuiz:    ScreenQuiz,
		ActionStartPicture: ScreenPicture,
		ActionLogout:       ScreenLogin,
	},
	ScreenQuiz: {
		ActionComplete: ScreenDashboard,
		ActionBack:     ScreenDashboard,
	},
	ScreenPicture: {
		ActionComplete: ScreenDashboard,
		ActionBack:     ScreenDashboard,
	},
}

// Next returns the screen reached from `from` by action a.
func Next(from Screen, a Action) (Screen, bool) {
	to, ok := transitions[from][a]
	return to, ok
}

func (s Screen) inGame() bool {
	return s == ScreenQuiz || s == ScreenPicture
}
