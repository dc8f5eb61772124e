package config

import (
	"os"
	"time"

	"eco-quest-service/internal/game"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		ID  string `yaml:"id"`
		TTL string `yaml:"ttl"`
	} `yaml:"bank"`
	AMQP struct {
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"amqp"`
	Game struct {
		LoadingTick     string `yaml:"loadingTick"`
		LoadingStep     int    `yaml:"loadingStep"`
		LoadingSettle   string `yaml:"loadingSettle"`
		QuestionSeconds int    `yaml:"questionSeconds"`
		CountdownTick   string `yaml:"countdownTick"`
		ResultDelay     string `yaml:"resultDelay"`
	} `yaml:"game"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Timing builds controller timings, keeping defaults for anything unset.
func (c Config) Timing() game.Timing {
	t := game.DefaultTiming()
	t.LoadingTick = TTLDuration(c.Game.LoadingTick, t.LoadingTick)
	t.LoadingSettle = TTLDuration(c.Game.LoadingSettle, t.LoadingSettle)
	t.CountdownTick = TTLDuration(c.Game.CountdownTick, t.CountdownTick)
	t.ResultDelay = TTLDuration(c.Game.ResultDelay, t.ResultDelay)
	if c.Game.LoadingStep > 0 {
		t.LoadingStep = c.Game.LoadingStep
	}
	if c.Game.QuestionSeconds > 0 {
		t.QuestionSeconds = c.Game.QuestionSeconds
	}
	return t
}
