package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextProgressStateCompleting(t *testing.T) {
	now := time.Now()

	completed, completedAt := nextProgressState(false, now)

	assert.True(t, completed)
	require.NotNil(t, completedAt)
	assert.Equal(t, now, *completedAt)
}

func TestNextProgressStateClearing(t *testing.T) {
	completed, completedAt := nextProgressState(true, time.Now())

	assert.False(t, completed)
	assert.Nil(t, completedAt)
}

func TestNextProgressStateDoubleToggleRestoresState(t *testing.T) {
	// 未完成 -> 完成 -> 未完成，时间戳先写入再清空
	completed, completedAt := nextProgressState(false, time.Now())
	require.True(t, completed)
	require.NotNil(t, completedAt)

	completed, completedAt = nextProgressState(completed, time.Now())
	assert.False(t, completed)
	assert.Nil(t, completedAt)

	// 再翻转一次回到完成态，时间戳重新写入
	later := time.Now().Add(time.Minute)
	completed, completedAt = nextProgressState(completed, later)
	assert.True(t, completed)
	require.NotNil(t, completedAt)
	assert.Equal(t, later, *completedAt)
}
