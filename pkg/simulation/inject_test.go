package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldFail_Bounds(t *testing.T) {
	require.False(t, ShouldFail(0))
	require.False(t, ShouldFail(-1))
	require.True(t, ShouldFail(1))
	require.True(t, ShouldFail(2))
}

func TestInject_Disabled(t *testing.T) {
	cfg := Config{FailureRate: 1, Enabled: false}
	require.NoError(t, cfg.Inject(context.Background()))
}

func TestInject_AlwaysFails(t *testing.T) {
	cfg := Config{FailureRate: 1, Enabled: true}
	require.ErrorIs(t, cfg.Inject(context.Background()), ErrSimulatedFailure)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("FRAUD_FAILURE_RATE", "0.25")
	t.Setenv("FRAUD_LATENCY_MIN_MS", "10")
	t.Setenv("FRAUD_LATENCY_MAX_MS", "50")
	t.Setenv("FRAUD_SIMULATION_ENABLED", "false")

	cfg := LoadConfig("FRAUD")
	require.Equal(t, 0.25, cfg.FailureRate)
	require.Equal(t, 10, cfg.MinLatencyMs)
	require.Equal(t, 50, cfg.MaxLatencyMs)
	require.False(t, cfg.Enabled)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig("NOSUCHPREFIX")
	require.Zero(t, cfg.FailureRate)
	require.True(t, cfg.Enabled)
}

func TestRandomInt_Range(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomInt(5, 10)
		require.GreaterOrEqual(t, v, 5)
		require.Less(t, v, 10)
	}
	require.Equal(t, 5, RandomInt(5, 5))
}
