package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWeightTrend(t *testing.T) {
	t.Run("no measurements", func(t *testing.T) {
		trend := ComputeWeightTrend(nil)
		assert.Nil(t, trend.Current)
		assert.Nil(t, trend.Initial)
		assert.Zero(t, trend.Delta)
	})

	t.Run("single measurement has no trend", func(t *testing.T) {
		trend := ComputeWeightTrend([]WeightMeasurement{
			{WeightKg: 80, Date: "2025-01-01"},
		})
		assert.Nil(t, trend.Current)
		assert.Nil(t, trend.Initial)
		assert.Zero(t, trend.Delta)
	})

	t.Run("delta between first and last", func(t *testing.T) {
		trend := ComputeWeightTrend([]WeightMeasurement{
			{WeightKg: 82.5, Date: "2025-01-01"},
			{WeightKg: 81.0, Date: "2025-02-01"},
			{WeightKg: 79.5, Date: "2025-03-01"},
		})
		require.NotNil(t, trend.Initial)
		require.NotNil(t, trend.Current)
		assert.Equal(t, 82.5, *trend.Initial)
		assert.Equal(t, 79.5, *trend.Current)
		assert.Equal(t, -3.0, trend.Delta)
	})
}
