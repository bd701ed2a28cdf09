package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReplayGuard(t *testing.T) {
	g := NewReplayGuard(time.Minute)
	now := time.Unix(1700000000, 0)
	g.now = func() time.Time { return now }

	assert.True(t, g.Check("a"))
	assert.False(t, g.Check("a"))
	assert.True(t, g.Check("b"))

	now = now.Add(2 * time.Minute)
	assert.True(t, g.Check("a"), "expired entries are accepted again")
	assert.Equal(t, 2, g.Len())

	now = now.Add(2 * time.Minute)
	assert.True(t, g.Check("c"))
	assert.Equal(t, 1, g.Len(), "expired entries are swept")
}
