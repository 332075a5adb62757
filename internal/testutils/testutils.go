// Package testutils provides shared helpers for integration tests.
package testutils

import (
	"context"
	"os"
	"testing"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisContainer wraps a throwaway Redis instance for cache tests.
type RedisContainer struct {
	container *tcredis.RedisContainer
	URL       string
}

// StartRedis launches a Redis container, skipping the test unless
// integration tests are enabled via HOCKEY_INTEGRATION_TESTS=1.
func StartRedis(t *testing.T) *RedisContainer {
	t.Helper()

	if os.Getenv("HOCKEY_INTEGRATION_TESTS") != "1" {
		t.Skip("set HOCKEY_INTEGRATION_TESTS=1 to run integration tests")
	}

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	return &RedisContainer{container: container, URL: url}
}
