package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tablehost/internal/v1/config"
)

func testConfig() *config.Config {
	return &config.Config{RateLimitJoinLimit: 3, RateLimitJoinWindow: 60}
}

func TestAllowFreshJoinWithinLimit(t *testing.T) {
	l := New(testConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.AllowFreshJoin(ctx, "1.2.3.4"))
	}
}

func TestAllowFreshJoinExceedsLimit(t *testing.T) {
	l := New(testConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		l.AllowFreshJoin(ctx, "1.2.3.4")
	}
	assert.False(t, l.AllowFreshJoin(ctx, "1.2.3.4"))
}

func TestAllowFreshJoinPerIPIndependence(t *testing.T) {
	l := New(testConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		l.AllowFreshJoin(ctx, "1.2.3.4")
	}
	assert.False(t, l.AllowFreshJoin(ctx, "1.2.3.4"))
	assert.True(t, l.AllowFreshJoin(ctx, "5.6.7.8"))
}
