package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"eco-quest-service/internal/app"
	"eco-quest-service/internal/domain"
	"eco-quest-service/internal/game"
	pgloader "eco-quest-service/internal/infra/postgres"
	pgmigrations "eco-quest-service/internal/infra/postgres/migrations"
	infraredis "eco-quest-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestQuizEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	bank := sampleBank()
	seedBank(t, ctx, pgURL, bank)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	loader := pgloader.NewBankLoader(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	banks := infraredis.NewBankRepository(redisClient, loader, 5*time.Minute)
	players := infraredis.NewPlayerStore(redisClient, 5*time.Minute)
	clock := game.NewManualClock()
	service := app.NewPlayerService(players, banks, app.WithBankID(bank.ID), app.WithClock(clock))

	if _, err := service.Connect(ctx, "p1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	clock.Advance(3 * time.Second)

	mustDispatch(t, service, game.Event{Action: game.ActionLogin, Username: "Greta"})
	mustDispatch(t, service, game.Event{Action: game.ActionStartQuiz})
	for _, q := range bank.Quiz {
		mustDispatch(t, service, game.Event{Action: game.ActionAnswer, Index: q.CorrectIndex})
		mustDispatch(t, service, game.Event{Action: game.ActionNext})
	}
	clock.Advance(2 * time.Second)

	snap, err := service.Snapshot(ctx, "p1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Screen != string(game.ScreenDashboard) || snap.Stats.Points != 40 || snap.Stats.QuizzesCompleted != 1 {
		t.Fatalf("unexpected snapshot after quiz %+v", snap)
	}

	presence, err := players.Presence(ctx, "p1")
	if err != nil {
		t.Fatalf("presence: %v", err)
	}
	if presence.Username != "Greta" || presence.Stats.Points != 40 || len(presence.Stats.Badges) != 2 {
		t.Fatalf("unexpected presence %+v", presence)
	}
	if online, err := players.Online(ctx); err != nil || online != 1 {
		t.Fatalf("expected one online player, got %d (%v)", online, err)
	}

	service.Leave(ctx, "p1")
	if online, err := players.Online(ctx); err != nil || online != 0 {
		t.Fatalf("expected no online players, got %d (%v)", online, err)
	}
}

func mustDispatch(t *testing.T, service *app.PlayerService, ev game.Event) {
	t.Helper()
	changed, err := service.Dispatch(context.Background(), "p1", ev)
	if err != nil {
		t.Fatalf("dispatch %s: %v", ev.Action, err)
	}
	if !changed {
		t.Fatalf("dispatch %s had no effect", ev.Action)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "eco", "POSTGRES_PASSWORD": "ecopass", "POSTGRES_DB": "ecodb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://eco:ecopass@%s:%s/ecodb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func seedBank(t *testing.T, ctx context.Context, dsn string, bank domain.Bank) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := pgloader.SeedBank(ctx, db, bank); err != nil {
		t.Fatalf("seed bank: %v", err)
	}
}

func sampleBank() domain.Bank {
	return domain.Bank{
		ID: "bank-1",
		Quiz: []domain.Question{
			{
				ID:           1,
				Prompt:       "Which bin takes glass bottles?",
				Options:      []string{"Compost", "Recycling", "Landfill"},
				CorrectIndex: 1,
				Explanation:  "Glass is recyclable almost indefinitely.",
				Difficulty:   domain.DifficultyEasy,
			},
			{
				ID:           2,
				Prompt:       "Which source of power is renewable?",
				Options:      []string{"Coal", "Diesel", "Wind"},
				CorrectIndex: 2,
				Explanation:  "Wind is replenished naturally.",
				Difficulty:   domain.DifficultyMedium,
			},
		},
		Pictures: []domain.PictureQuestion{
			{
				ID:          1,
				Prompt:      "Which one can be composted?",
				Description: "Pick the kitchen leftover.",
				Options: []domain.PictureOption{
					{Emoji: "🍌", Label: "Banana peel", Correct: true},
					{Emoji: "🥫", Label: "Tin can"},
				},
				Explanation: "Fruit peels break down in compost.",
			},
		},
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
