package sm2

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolPushPopIsSingleUse(t *testing.T) {
	pool := NewPool()
	kp, err := NewKeyPoint(rand.Reader)
	require.NoError(t, err)
	pool.Push(kp)
	assert.Equal(t, 1, pool.Len())

	got, ok := pool.Pop()
	require.True(t, ok)
	assert.Equal(t, kp.K, got.K)
	assert.Equal(t, 0, pool.Len())

	_, ok = pool.Pop()
	assert.False(t, ok)
}

func TestNewKeyPointMatchesScalarBaseMult(t *testing.T) {
	kp, err := NewKeyPoint(rand.Reader)
	require.NoError(t, err)
	x, _ := curve.ScalarBaseMult(kp.K.Bytes())
	assert.Equal(t, x, kp.X1)
}
