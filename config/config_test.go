package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphalg/acore/config"
	"github.com/graphalg/acore/errs"
)

func TestDefaultIsSane(t *testing.T) {
	c := config.Default()
	require.GreaterOrEqual(t, c.ThreadPoolSize, 1)
	require.Equal(t, int64(0), c.QueryMemCap)
}

func TestNewAppliesOptions(t *testing.T) {
	c := config.New(config.WithThreadPoolSize(8), config.WithEdgeBulkDeleteThreshold(50))
	require.Equal(t, 8, c.ThreadPoolSize)
	require.Equal(t, 50, c.EdgeBulkDeleteThreshold)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("ALGCORE_THREAD_POOL_SIZE", "16")
	c := config.Load()
	require.Equal(t, 16, c.ThreadPoolSize)
}

func TestMemoryTrackerEnforcesCap(t *testing.T) {
	mt := config.NewMemoryTracker(100)
	require.NoError(t, mt.Charge(60))
	err := mt.Charge(60)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.MemoryCap))
	require.Equal(t, int64(60), mt.Current())
}

func TestMemoryTrackerUnlimitedWhenCapIsZero(t *testing.T) {
	mt := config.NewMemoryTracker(0)
	require.NoError(t, mt.Charge(1<<40))
}
