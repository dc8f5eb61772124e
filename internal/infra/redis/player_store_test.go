package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"eco-quest-service/internal/app"
	"eco-quest-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestPlayerStoreMirrorsPresence(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewPlayerStore(newClient(mr), time.Minute)

	if err := store.Add(ctx, &app.Player{ID: "p1"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if n, _ := store.Online(ctx); n != 1 {
		t.Fatalf("expected one online player, got %d", n)
	}

	err = store.Touch(ctx, domain.Presence{
		PlayerID: "p1",
		Username: "Ada",
		Screen:   "dashboard",
		Stats:    domain.StatsView{Points: 45, Level: 1, Badges: []string{"Sharp Eye"}},
	})
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if !mr.Exists("player:presence:p1") {
		t.Fatalf("expected presence key to be set")
	}
	if ttl := mr.TTL("player:presence:p1"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}
	p, err := store.Presence(ctx, "p1")
	if err != nil {
		t.Fatalf("presence: %v", err)
	}
	if p.Username != "Ada" || p.Stats.Points != 45 {
		t.Fatalf("unexpected presence %+v", p)
	}

	store.Remove(ctx, "p1")
	if mr.Exists("player:presence:p1") {
		t.Fatalf("expected presence key to be removed")
	}
	if n, _ := store.Online(ctx); n != 0 {
		t.Fatalf("expected no online players, got %d", n)
	}
	if _, err := store.Presence(ctx, "p1"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
