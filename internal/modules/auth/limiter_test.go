package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_PerKeyBudget(t *testing.T) {
	l := newLoginLimiter(3)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("192.0.2.1"))
	}
	assert.False(t, l.Allow("192.0.2.1"))
	assert.True(t, l.Allow("192.0.2.2"))

	now = now.Add(20 * time.Second)
	assert.True(t, l.Allow("192.0.2.1"))
}

func TestLoginLimiter_EvictsIdleClients(t *testing.T) {
	l := newLoginLimiter(5)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Equal(t, 100, l.Len())

	now = now.Add(30 * time.Second)
	l.Allow("10.0.1.1")
	assert.Equal(t, 101, l.Len(), "entries younger than the refill window are kept")

	now = now.Add(2 * idleTTL)
	l.Allow("10.0.1.2")
	assert.Equal(t, 1, l.Len())
}

func TestLoginLimiter_Disabled(t *testing.T) {
	l := newLoginLimiter(0)
	assert.Nil(t, l)
	assert.True(t, l.Allow("any"))
	assert.Zero(t, l.Len())
}
