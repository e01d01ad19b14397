package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinCapacity(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client-a", 3, 1))
	}
	assert.False(t, l.Allow("client-a", 3, 1))
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()

	assert.True(t, l.Allow("client-a", 1, 1))
	assert.False(t, l.Allow("client-a", 1, 1))
	assert.True(t, l.Allow("client-b", 1, 1))
}
