package service

import (
	"context"
	"testing"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func TestGetHistory(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	planRepo := newFakePlanRepo()
	sessionRepo := newFakeSessionRepo()
	setRepo := newFakeSetRepo()
	svc := NewHistoryService(sessionRepo, setRepo, planRepo)

	pushID, err := planRepo.Create(ctx, &domain.TrainingPlan{UserID: userID, Name: "Push Pull Legs"})
	require.NoError(t, err)
	fullBodyID, err := planRepo.Create(ctx, &domain.TrainingPlan{UserID: userID, Name: "Full Body"})
	require.NoError(t, err)

	// Two completed sessions on the push plan, one open on full body.
	s1, err := sessionRepo.Create(ctx, &domain.WorkoutSession{
		UserID: userID, PlanID: &pushID, Date: "2025-06-02", Completed: true,
		DurationMinutes: intPtr(60), Intensity: intPtr(8),
	})
	require.NoError(t, err)
	s2, err := sessionRepo.Create(ctx, &domain.WorkoutSession{
		UserID: userID, PlanID: &pushID, Date: "2025-06-05", Completed: true,
		DurationMinutes: intPtr(45), Intensity: intPtr(6), Notes: "heavy bench day",
	})
	require.NoError(t, err)
	_, err = sessionRepo.Create(ctx, &domain.WorkoutSession{
		UserID: userID, PlanID: &fullBodyID, Date: "2025-06-07",
	})
	require.NoError(t, err)

	exerciseID := primitive.NewObjectID()
	require.NoError(t, setRepo.CreateBatch(ctx, []domain.PerformedSet{
		{SessionID: s1, ExerciseID: exerciseID, SetNumber: 1, Reps: 8, Weight: 60, Completed: true},
		{SessionID: s1, ExerciseID: exerciseID, SetNumber: 2, Reps: 8, Weight: 60, Completed: true},
		{SessionID: s2, ExerciseID: exerciseID, SetNumber: 1, Reps: 5, Weight: 80, Completed: true},
	}))

	t.Run("unfiltered history with stats", func(t *testing.T) {
		result, err := svc.GetHistory(ctx, userID, HistoryFilter{})
		require.NoError(t, err)
		require.Len(t, result.Entries, 3)

		// Newest first.
		assert.Equal(t, "2025-06-07", result.Entries[0].Date)
		assert.Equal(t, "Full Body", result.Entries[0].PlanName)
		assert.Equal(t, "2025-06-02", result.Entries[2].Date)

		bench := result.Entries[1]
		assert.Equal(t, 400.0, bench.Volume) // 5 reps x 80 kg
		assert.Equal(t, 1, bench.CompletedSets)
		assert.Equal(t, 5, bench.TotalReps)

		stats := result.Stats
		assert.Equal(t, 3, stats.TotalSessions)
		assert.Equal(t, 105, stats.TotalMinutes)
		assert.Equal(t, 2, stats.CompletedCount)
		assert.Equal(t, 1360.0, stats.TotalVolume) // 2x8x60 + 5x80
		assert.Equal(t, 7.0, stats.AvgIntensity)   // Mean of 8 and 6
	})

	t.Run("plan filter", func(t *testing.T) {
		result, err := svc.GetHistory(ctx, userID, HistoryFilter{PlanID: pushID.Hex()})
		require.NoError(t, err)
		require.Len(t, result.Entries, 2)
		assert.Equal(t, 2, result.Stats.TotalSessions)
	})

	t.Run("search matches notes and plan name", func(t *testing.T) {
		result, err := svc.GetHistory(ctx, userID, HistoryFilter{Search: "BENCH"})
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "2025-06-05", result.Entries[0].Date)

		result, err = svc.GetHistory(ctx, userID, HistoryFilter{Search: "full body"})
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, "2025-06-07", result.Entries[0].Date)

		result, err = svc.GetHistory(ctx, userID, HistoryFilter{Search: "deadlift"})
		require.NoError(t, err)
		assert.Empty(t, result.Entries)
	})

	t.Run("deleted plan leaves the entry nameless", func(t *testing.T) {
		require.NoError(t, planRepo.Delete(ctx, fullBodyID, userID))

		result, err := svc.GetHistory(ctx, userID, HistoryFilter{})
		require.NoError(t, err)
		require.Len(t, result.Entries, 3)
		assert.Empty(t, result.Entries[0].PlanName)
	})

	t.Run("empty history has zero stats", func(t *testing.T) {
		result, err := svc.GetHistory(ctx, primitive.NewObjectID(), HistoryFilter{})
		require.NoError(t, err)
		assert.Empty(t, result.Entries)
		assert.Zero(t, result.Stats.TotalSessions)
		assert.Zero(t, result.Stats.AvgIntensity) // No div-by-zero on intensity
	})
}
