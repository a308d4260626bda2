package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionLimiter(t *testing.T) {
	l := newConnectionLimiter(2)

	count, ok := l.acquire("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 1, count)

	count, ok = l.acquire("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	count, ok = l.acquire("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 2, count)

	_, ok = l.acquire("10.0.0.2")
	assert.True(t, ok, "limits are per address")

	assert.Equal(t, 1, l.release("10.0.0.1"))
	assert.Equal(t, 0, l.release("10.0.0.1"))
	assert.NotContains(t, l.count, "10.0.0.1")
}
