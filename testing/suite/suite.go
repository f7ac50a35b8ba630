// Package suite starts throwaway backing services in docker for integration tests.
package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireSeconds   = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	natsPort  = "4222/tcp"
	natsImage = "nats"
	natsTag   = "2-alpine"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Redis     *redis.Client
	RedisAddr string

	NATS    *nats.Conn
	NATSURL string
}

// New - runs a redis container for the test; the test is skipped when docker is not reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, s, pool, resource := start(t, redisImage, redisTag)

	addr := resource.GetHostPort(redisPort)

	var client *redis.Client
	if err := pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: addr})
		return client.Ping(ctx).Err()
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })

	s.Redis = client
	s.RedisAddr = addr

	return ctx, s
}

// NewNATS - runs a NATS server container for the test.
func NewNATS(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, s, pool, resource := start(t, natsImage, natsTag)

	url := "nats://" + resource.GetHostPort(natsPort)

	var conn *nats.Conn
	if err := pool.Retry(func() error {
		var err error
		conn, err = nats.Connect(url)
		return err
	}); err != nil {
		t.Fatalf("could not connect to nats: %v", err)
	}

	t.Cleanup(conn.Close)

	s.NATS = conn
	s.NATSURL = url

	return ctx, s
}

func start(t *testing.T, image, tag string) (context.Context, *Suite, *dockertest.Pool, *dockertest.Resource) {
	t.Helper()

	if testing.Short() {
		t.Skip("docker suite skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: image,
		Tag:        tag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start %s: %v", image, err)
	}

	// hard kill in case the cleanup never runs
	_ = resource.Expire(expireSeconds)

	pool.MaxWait = maxWaitDuration

	// registered first, so it runs after the clients are closed
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge %s: %v", image, err)
		}
	})

	return ctx, &Suite{
		T:      t,
		Logger: slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}, pool, resource
}
