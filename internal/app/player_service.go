package app

import (
	"context"
	"fmt"
	"time"

	"eco-quest-service/internal/domain"
	"eco-quest-service/internal/game"
	"eco-quest-service/internal/questionbank"
	"github.com/rs/zerolog/log"
)

// PlayerRepository abstracts where connected players are tracked (in-memory, Redis, etc).
type PlayerRepository interface {
	Add(ctx context.Context, player *Player) error
	Get(playerID string) (*Player, bool)
	Remove(ctx context.Context, playerID string)
	// Touch mirrors the player's presence; failures are not fatal to gameplay.
	Touch(ctx context.Context, presence domain.Presence) error
}

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// CompletionPublisher fans out finished games to other systems.
type CompletionPublisher interface {
	PublishCompletion(ctx context.Context, event domain.CompletionEvent) error
}

// Metrics records gameplay counters.
type Metrics interface {
	PlayerConnected()
	PlayerLeft()
	GameStarted(kind domain.GameKind)
	GameCompleted(completion domain.Completion)
}

// Player is one connected browser session and its game.
type Player struct {
	ID         string
	Controller *game.Controller
}

// PlayerService contains the player use cases.
type PlayerService struct {
	players   PlayerRepository
	banks     BankRepository
	bankID    string
	timing    game.Timing
	clock     game.Clock
	publisher CompletionPublisher
	metrics   Metrics
	now       func() time.Time
}

// ServiceOption customizes a PlayerService.
type ServiceOption func(*PlayerService)

func WithBankID(id string) ServiceOption {
	return func(s *PlayerService) { s.bankID = id }
}

func WithTiming(t game.Timing) ServiceOption {
	return func(s *PlayerService) { s.timing = t }
}

// WithClock is used by tests to drive timers deterministically.
func WithClock(c game.Clock) ServiceOption {
	return func(s *PlayerService) { s.clock = c }
}

func WithPublisher(p CompletionPublisher) ServiceOption {
	return func(s *PlayerService) { s.publisher = p }
}

func WithMetrics(m Metrics) ServiceOption {
	return func(s *PlayerService) { s.metrics = m }
}

func NewPlayerService(players PlayerRepository, banks BankRepository, opts ...ServiceOption) *PlayerService {
	s := &PlayerService{
		players:   players,
		banks:     banks,
		bankID:    questionbank.DefaultID,
		timing:    game.DefaultTiming(),
		clock:     game.RealClock,
		publisher: NopPublisher{},
		metrics:   NopMetrics{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect registers a player and starts their loading screen.
func (s *PlayerService) Connect(ctx context.Context, playerID string) (domain.Snapshot, error) {
	if _, ok := s.players.Get(playerID); ok {
		return domain.Snapshot{}, domain.ErrPlayerExists
	}
	bank, err := s.banks.GetBank(ctx, s.bankID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("load bank %q: %w", s.bankID, err)
	}

	controller := game.NewController(bank,
		game.WithClock(s.clock),
		game.WithTiming(s.timing),
		game.WithCompletionHook(func(username string, completion domain.Completion, stats game.Stats) {
			s.completed(playerID, username, completion, stats)
		}),
	)
	player := &Player{ID: playerID, Controller: controller}
	if err := s.players.Add(ctx, player); err != nil {
		controller.Close()
		return domain.Snapshot{}, err
	}
	s.metrics.PlayerConnected()
	controller.Start()

	snap := controller.Snapshot()
	s.touch(ctx, playerID, snap)
	log.Info().Str("player", playerID).Msg("player connected")
	return snap, nil
}

// Dispatch forwards an action to the player's controller and reports whether it changed anything.
func (s *PlayerService) Dispatch(ctx context.Context, playerID string, ev game.Event) (bool, error) {
	player, ok := s.players.Get(playerID)
	if !ok {
		return false, domain.ErrPlayerNotFound
	}
	changed := player.Controller.Dispatch(ev)
	if !changed {
		return false, nil
	}

	switch ev.Action {
	case game.ActionStartQuiz:
		s.metrics.GameStarted(domain.KindQuiz)
	case game.ActionStartPicture:
		s.metrics.GameStarted(domain.KindPicture)
	case game.ActionLogin, game.ActionLogout:
		snap := player.Controller.Snapshot()
		s.touch(ctx, playerID, snap)
		log.Info().Str("player", playerID).Str("screen", snap.Screen).Str("username", snap.Username).Msg("session changed")
	}
	return true, nil
}

// Snapshot returns the player's current render state.
func (s *PlayerService) Snapshot(_ context.Context, playerID string) (domain.Snapshot, error) {
	player, ok := s.players.Get(playerID)
	if !ok {
		return domain.Snapshot{}, domain.ErrPlayerNotFound
	}
	return player.Controller.Snapshot(), nil
}

// Subscribe returns a channel that receives snapshots for a player.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *PlayerService) Subscribe(_ context.Context, playerID string) (<-chan domain.Snapshot, func(), error) {
	player, ok := s.players.Get(playerID)
	if !ok {
		return nil, nil, domain.ErrPlayerNotFound
	}
	ch, cancel := player.Controller.Subscribe()
	return ch, cancel, nil
}

// Leave stops the player's timers and forgets them.
func (s *PlayerService) Leave(ctx context.Context, playerID string) {
	player, ok := s.players.Get(playerID)
	if !ok {
		return
	}
	player.Controller.Close()
	s.players.Remove(ctx, playerID)
	s.metrics.PlayerLeft()
	log.Info().Str("player", playerID).Msg("player left")
}

func (s *PlayerService) completed(playerID, username string, completion domain.Completion, stats game.Stats) {
	s.metrics.GameCompleted(completion)
	log.Info().
		Str("player", playerID).
		Str("kind", string(completion.Kind)).
		Int("score", completion.Score).
		Int("points", completion.PointsEarned).
		Int("level", stats.Level).
		Msg("game completed")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	view := stats.View()
	if err := s.players.Touch(ctx, domain.Presence{
		PlayerID: playerID,
		Username: username,
		Screen:   string(game.ScreenDashboard),
		Stats:    view,
	}); err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("presence update failed")
	}

	event := domain.CompletionEvent{
		PlayerID:   playerID,
		Username:   username,
		Completion: completion,
		Stats:      view,
		OccurredAt: s.now(),
	}
	if err := s.publisher.PublishCompletion(ctx, event); err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("publish completion failed")
	}
}

func (s *PlayerService) touch(ctx context.Context, playerID string, snap domain.Snapshot) {
	if err := s.players.Touch(ctx, domain.Presence{
		PlayerID: playerID,
		Username: snap.Username,
		Screen:   snap.Screen,
		Stats:    snap.Stats,
	}); err != nil {
		log.Warn().Err(err).Str("player", playerID).Msg("presence update failed")
	}
}

// NopPublisher drops completion events.
type NopPublisher struct{}

func (NopPublisher) PublishCompletion(context.Context, domain.CompletionEvent) error { return nil }

// NopMetrics records nothing.
type NopMetrics struct{}

func (NopMetrics) PlayerConnected() {}
func (NopMetrics) PlayerLeft() {}
func (NopMetrics) GameStarted(domain.GameKind) {}
func (NopMetrics) GameCompleted(domain.Completion) {}
