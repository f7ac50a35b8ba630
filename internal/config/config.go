package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	LiveUpdatesWebSocket = "websocket"
	LiveUpdatesSSE       = "sse"
	LiveUpdatesRedis     = "redis"
	LiveUpdatesNATS      = "nats"
)

type Config struct {
	LogLevel         string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	SessionAPIURL    string        `yaml:"session-api-url" env:"SESSION_API_URL" env-default:"http://localhost:8082/session"`
	EngineAPIURL     string        `yaml:"engine-api-url" env:"ENGINE_API_URL" env-default:"http://localhost:8082/engine"`
	WebSocketURL     string        `yaml:"websocket-url" env:"WEBSOCKET_URL" env-default:"ws://localhost:8081/ws/session"`
	LiveUpdates      string        `yaml:"live-updates" env:"LIVE_UPDATES" env-default:"websocket"`
	PlaybackInterval time.Duration `yaml:"playback-interval" env:"PLAYBACK_INTERVAL" env-default:"500ms"`
	RequestTimeout   time.Duration `yaml:"request-timeout" env:"REQUEST_TIMEOUT" env-default:"30s"`
	ExitOnComplete   bool          `yaml:"exit-on-complete" env:"EXIT_ON_COMPLETE" env-default:"true"`
	Redis            Redis         `yaml:"redis"`
	NATS             NATS          `yaml:"nats"`
}

type Redis struct {
	Host          string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port          string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ChannelPrefix string `yaml:"channel-prefix" env:"REDIS_CHANNEL_PREFIX" env-default:"session:"`
}

type NATS struct {
	URL           string `yaml:"url" env:"NATS_URL" env-default:"nats://localhost:4222"`
	SubjectPrefix string `yaml:"subject-prefix" env:"NATS_SUBJECT_PREFIX" env-default:"session."`
}

// MustLoad - loads .env, then config.yml when present, then environment overrides.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
