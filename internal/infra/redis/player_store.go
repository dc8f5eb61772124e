package redis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"eco-quest-service/internal/app"
	"eco-quest-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// PlayerStore is a Redis-aware implementation of app.PlayerRepository.
// Notes:
//   - Controllers own timers and channels, so they live in a local map.
//   - Redis holds a presence record per connected player (username, screen,
//     stats) with a TTL, refreshed on every Touch and deleted on Remove.
//     Nothing in Redis outlives the connection.
type PlayerStore struct {
	client  *redis.Client
	ttl     time.Duration
	mu      sync.RWMutex
	players map[string]*app.Player
}

func NewPlayerStore(client *redis.Client, ttl time.Duration) *PlayerStore {
	return &PlayerStore{
		client:  client,
		ttl:     ttl,
		players: make(map[string]*app.Player),
	}
}

func (s *PlayerStore) Add(ctx context.Context, player *app.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; ok {
		return domain.ErrPlayerExists
	}
	s.players[player.ID] = player
	// best-effort liveness marker
	_ = s.client.SAdd(ctx, onlineKey, player.ID).Err()
	return nil
}

func (s *PlayerStore) Get(playerID string) (*app.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[playerID]
	return player, ok
}

func (s *PlayerStore) Remove(ctx context.Context, playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, playerID)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(playerID))
	pipe.SRem(ctx, onlineKey, playerID)
	_, _ = pipe.Exec(ctx)
}

func (s *PlayerStore) Touch(ctx context.Context, presence domain.Presence) error {
	s.mu.RLock()
	_, ok := s.players[presence.PlayerID]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrPlayerNotFound
	}
	data, err := json.Marshal(presence)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(presence.PlayerID), data, s.ttl).Err()
}

// Presence reads the mirrored presence of a player.
func (s *PlayerStore) Presence(ctx context.Context, playerID string) (domain.Presence, error) {
	var p domain.Presence
	data, err := s.client.Get(ctx, s.key(playerID)).Bytes()
	if err == redis.Nil {
		return p, domain.ErrPlayerNotFound
	}
	if err != nil {
		return p, err
	}
	err = json.Unmarshal(data, &p)
	return p, err
}

// Online counts players connected to any instance sharing this Redis.
func (s *PlayerStore) Online(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, onlineKey).Result()
}

const onlineKey = "players:online"

func (s *PlayerStore) key(playerID string) string {
	return "player:presence:" + playerID
}
