package service

import (
	"context"
	"testing"
	"time"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type workoutFixture struct {
	svc          WorkoutService
	planRepo     *fakePlanRepo
	exerciseRepo *fakeExerciseRepo
	sessionRepo  *fakeSessionRepo
	setRepo      *fakeSetRepo
	userID       primitive.ObjectID
	plan         *domain.TrainingPlan
	bench        primitive.ObjectID
	squat        primitive.ObjectID
}

// monday is a fixed training date used throughout the workout tests;
// 2025-06-02 falls on a Monday.
var monday = time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)

func newWorkoutFixture(t *testing.T) *workoutFixture {
	t.Helper()
	ctx := context.Background()

	f := &workoutFixture{
		planRepo:     newFakePlanRepo(),
		exerciseRepo: newFakeExerciseRepo(),
		sessionRepo:  newFakeSessionRepo(),
		setRepo:      newFakeSetRepo(),
		userID:       primitive.NewObjectID(),
	}
	f.svc = NewWorkoutService(f.planRepo, f.exerciseRepo, f.sessionRepo, f.setRepo)

	planID, err := f.planRepo.Create(ctx, &domain.TrainingPlan{
		UserID:   f.userID,
		Name:     "Upper Lower",
		Weekdays: []domain.Weekday{domain.Monday, domain.Thursday},
		IsActive: true,
	})
	require.NoError(t, err)
	f.plan, err = f.planRepo.GetByID(ctx, planID)
	require.NoError(t, err)

	weight := 60.0
	f.bench = primitive.NewObjectID()
	f.squat = primitive.NewObjectID()
	require.NoError(t, f.exerciseRepo.CreateBatch(ctx, []domain.PlannedExercise{
		{ID: f.bench, PlanID: planID, Weekday: domain.Monday, Name: "Bench Press", TargetSets: 3, TargetReps: "8-12", TargetWeight: &weight},
		{ID: f.squat, PlanID: planID, Weekday: domain.Monday, Name: "Squat", TargetSets: 5, TargetReps: "5"},
	}))

	return f
}

func TestGetWorkout(t *testing.T) {
	ctx := context.Background()

	t.Run("training day lists the day's exercises", func(t *testing.T) {
		f := newWorkoutFixture(t)

		workout, err := f.svc.GetWorkout(ctx, f.userID, monday)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-02", workout.Date)
		assert.Equal(t, domain.Monday, workout.Weekday)
		require.NotNil(t, workout.Plan)
		assert.Len(t, workout.Exercises, 2)
		assert.Nil(t, workout.Session)
		assert.Empty(t, workout.CompletedIDs)
		assert.Zero(t, workout.TotalSessions)
	})

	t.Run("rest day keeps the plan but no exercises", func(t *testing.T) {
		f := newWorkoutFixture(t)

		// 2025-06-03 is a Tuesday, not a programmed day.
		workout, err := f.svc.GetWorkout(ctx, f.userID, monday.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.NotNil(t, workout.Plan)
		assert.Empty(t, workout.Exercises)
	})

	t.Run("no active plan yields an empty view", func(t *testing.T) {
		f := newWorkoutFixture(t)
		require.NoError(t, f.planRepo.SetActive(ctx, f.plan.ID, false))

		workout, err := f.svc.GetWorkout(ctx, f.userID, monday)
		require.NoError(t, err)
		assert.Nil(t, workout.Plan)
		assert.Empty(t, workout.Exercises)
	})

	t.Run("completion state of an open session is reported", func(t *testing.T) {
		f := newWorkoutFixture(t)

		_, err := f.svc.ToggleExercise(ctx, f.userID, f.bench, monday)
		require.NoError(t, err)

		workout, err := f.svc.GetWorkout(ctx, f.userID, monday)
		require.NoError(t, err)
		require.NotNil(t, workout.Session)
		assert.Equal(t, []primitive.ObjectID{f.bench}, workout.CompletedIDs)
		assert.Equal(t, int64(1), workout.TotalSessions)
	})
}

func TestToggleExercise(t *testing.T) {
	ctx := context.Background()

	t.Run("first toggle opens the session and writes target sets", func(t *testing.T) {
		f := newWorkoutFixture(t)

		result, err := f.svc.ToggleExercise(ctx, f.userID, f.bench, monday)
		require.NoError(t, err)
		assert.True(t, result.Done)
		assert.Equal(t, 3, result.SetsWritten)
		assert.False(t, result.SessionCompleted) // Squat still pending

		session, err := f.sessionRepo.GetByUserAndDate(ctx, f.userID, "2025-06-02")
		require.NoError(t, err)
		assert.False(t, session.Completed)
		require.NotNil(t, session.PlanID)
		assert.Equal(t, f.plan.ID, *session.PlanID)

		sets, err := f.setRepo.GetBySessionID(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, sets, 3)
		for i, set := range sets {
			assert.Equal(t, i+1, set.SetNumber)
			assert.Equal(t, 8, set.Reps) // Leading integer of "8-12"
			assert.Equal(t, 60.0, set.Weight)
			assert.True(t, set.Completed)
		}
	})

	t.Run("completing every exercise completes the session", func(t *testing.T) {
		f := newWorkoutFixture(t)

		_, err := f.svc.ToggleExercise(ctx, f.userID, f.bench, monday)
		require.NoError(t, err)
		result, err := f.svc.ToggleExercise(ctx, f.userID, f.squat, monday)
		require.NoError(t, err)
		assert.True(t, result.SessionCompleted)

		session, err := f.sessionRepo.GetByUserAndDate(ctx, f.userID, "2025-06-02")
		require.NoError(t, err)
		assert.True(t, session.Completed)
	})

	t.Run("toggling back removes the sets and reopens the session", func(t *testing.T) {
		f := newWorkoutFixture(t)

		_, err := f.svc.ToggleExercise(ctx, f.userID, f.bench, monday)
		require.NoError(t, err)
		_, err = f.svc.ToggleExercise(ctx, f.userID, f.squat, monday)
		require.NoError(t, err)

		result, err := f.svc.ToggleExercise(ctx, f.userID, f.squat, monday)
		require.NoError(t, err)
		assert.False(t, result.Done)
		assert.Zero(t, result.SetsWritten)
		assert.False(t, result.SessionCompleted)

		session, err := f.sessionRepo.GetByUserAndDate(ctx, f.userID, "2025-06-02")
		require.NoError(t, err)
		assert.False(t, session.Completed)

		done, err := f.setRepo.DistinctExerciseIDs(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{f.bench}, done)
	})

	t.Run("full round trip leaves an empty open session", func(t *testing.T) {
		f := newWorkoutFixture(t)

		_, err := f.svc.ToggleExercise(ctx, f.userID, f.bench, monday)
		require.NoError(t, err)
		_, err = f.svc.ToggleExercise(ctx, f.userID, f.bench, monday)
		require.NoError(t, err)

		// The session row survives with no sets attached.
		session, err := f.sessionRepo.GetByUserAndDate(ctx, f.userID, "2025-06-02")
		require.NoError(t, err)
		assert.False(t, session.Completed)

		sets, err := f.setRepo.GetBySessionID(ctx, session.ID)
		require.NoError(t, err)
		assert.Empty(t, sets)
	})

	t.Run("no active plan", func(t *testing.T) {
		f := newWorkoutFixture(t)
		require.NoError(t, f.planRepo.SetActive(ctx, f.plan.ID, false))

		_, err := f.svc.ToggleExercise(ctx, f.userID, f.bench, monday)
		assert.ErrorIs(t, err, ErrNoActivePlan)
	})

	t.Run("unknown exercise", func(t *testing.T) {
		f := newWorkoutFixture(t)

		_, err := f.svc.ToggleExercise(ctx, f.userID, primitive.NewObjectID(), monday)
		assert.ErrorIs(t, err, ErrExerciseNotFound)
	})

	t.Run("exercise of another weekday is rejected", func(t *testing.T) {
		f := newWorkoutFixture(t)

		// Toggling a Monday exercise on Thursday.
		_, err := f.svc.ToggleExercise(ctx, f.userID, f.bench, monday.AddDate(0, 0, 3))
		assert.ErrorIs(t, err, ErrExerciseNotScheduled)
	})
}

func TestMonthOverview(t *testing.T) {
	ctx := context.Background()
	f := newWorkoutFixture(t)

	// Complete the whole Monday workout, partially train the next one.
	_, err := f.svc.ToggleExercise(ctx, f.userID, f.bench, monday)
	require.NoError(t, err)
	_, err = f.svc.ToggleExercise(ctx, f.userID, f.squat, monday)
	require.NoError(t, err)
	_, err = f.svc.ToggleExercise(ctx, f.userID, f.bench, monday.AddDate(0, 0, 7))
	require.NoError(t, err)

	days, err := f.svc.MonthOverview(ctx, f.userID, 2025, time.June)
	require.NoError(t, err)
	require.Len(t, days, 30)

	byDate := make(map[string]CalendarDay, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	completed := byDate["2025-06-02"]
	assert.True(t, completed.Scheduled)
	assert.True(t, completed.Trained)
	assert.True(t, completed.Completed)

	partial := byDate["2025-06-09"]
	assert.True(t, partial.Scheduled)
	assert.True(t, partial.Trained)
	assert.False(t, partial.Completed)

	// A scheduled day without a session.
	skipped := byDate["2025-06-16"]
	assert.True(t, skipped.Scheduled)
	assert.False(t, skipped.Trained)

	// A rest day.
	rest := byDate["2025-06-03"]
	assert.False(t, rest.Scheduled)
	assert.False(t, rest.Trained)
}
