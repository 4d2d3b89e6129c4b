package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/bandit-backend/internal/platform/logger"
	"github.com/yungbote/bandit-backend/internal/realtime"
)

func TestMemoryBusKeepsOrder(t *testing.T) {
	b := NewMemoryBus()
	ctx := context.Background()
	require.NoError(t, b.Publish(ctx, realtime.NewEvent(realtime.EventSessionStarted, "p1", 1, nil)))
	require.NoError(t, b.Publish(ctx, realtime.NewEvent(realtime.EventTrialLogged, "p1", 1, map[string]any{"trial_number_global": 1})))

	got := b.Events()
	require.Len(t, got, 2)
	assert.Equal(t, realtime.EventSessionStarted, got[0].Type)
	assert.Equal(t, realtime.EventTrialLogged, got[1].Type)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestNoopBus(t *testing.T) {
	b := NewNoopBus()
	assert.NoError(t, b.Publish(context.Background(), realtime.Event{}))
	assert.NoError(t, b.Close())
}

func TestNewRedisBusRequiresAddr(t *testing.T) {
	_, err := NewRedisBus(logger.Nop(), RedisConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_ADDR")

	_, err = NewRedisBus(nil, RedisConfig{Addr: "localhost:6379"})
	require.Error(t, err)
}
