package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_PerClientBudget(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewClientLimiter(60, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "other clients keep their own bucket")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.1.1.1"), "one token refills per second at 60/min")
	assert.False(t, l.Allow("1.1.1.1"))
}

func TestClientLimiter_SweepsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewClientLimiter(60, 1)
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	now = now.Add(5 * time.Minute)
	l.Allow("2.2.2.2")
	assert.Len(t, l.visitors, 2)

	now = now.Add(limiterIdleTTL)
	l.Allow("3.3.3.3")
	assert.Len(t, l.visitors, 2)
	assert.NotContains(t, l.visitors, "1.1.1.1")
}

func TestNewClientLimiter_Defaults(t *testing.T) {
	l := NewClientLimiter(0, 0)
	assert.Equal(t, 1, l.burst)
	assert.True(t, l.Allow("x"))
}
