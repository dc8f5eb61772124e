package memory

import (
	"context"
	"sync"

	"eco-quest-service/internal/app"
	"eco-quest-service/internal/domain"
)

// PlayerStore is an in-memory implementation of app.PlayerRepository.
type PlayerStore struct {
	mu       sync.RWMutex
	players  map[string]*app.Player
	presence map[string]domain.Presence
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{
		players:  make(map[string]*app.Player),
		presence: make(map[string]domain.Presence),
	}
}

func (s *PlayerStore) Add(_ context.Context, player *app.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; ok {
		return domain.ErrPlayerExists
	}
	s.players[player.ID] = player
	return nil
}

func (s *PlayerStore) Get(playerID string) (*app.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[playerID]
	return player, ok
}

func (s *PlayerStore) Remove(_ context.Context, playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, playerID)
	delete(s.presence, playerID)
}

func (s *PlayerStore) Touch(_ context.Context, presence domain.Presence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[presence.PlayerID]; !ok {
		return domain.ErrPlayerNotFound
	}
	s.presence[presence.PlayerID] = presence
	return nil
}

// Presence returns the last mirrored presence for a player.
func (s *PlayerStore) Presence(playerID string) (domain.Presence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presence[playerID]
	return p, ok
}
