package service

import (
	"context"
	"errors"
	"time"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"
	"github.com/Mteo06/gym-tracker-pro/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoActivePlan         = errors.New("no active training plan")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseNotScheduled = errors.New("exercise is not scheduled for this date")
)

// TodayWorkout is everything the dashboard needs for one date: the active
// plan, the exercises scheduled on that weekday, and which of them already
// have performed sets in the day's session.
type TodayWorkout struct {
	Date          string                   `json:"date"`
	Weekday       domain.Weekday           `json:"weekday"`
	Plan          *domain.TrainingPlan     `json:"plan,omitempty"`
	Exercises     []domain.PlannedExercise `json:"exercises"`
	Session       *domain.WorkoutSession   `json:"session,omitempty"`
	CompletedIDs  []primitive.ObjectID     `json:"completedExerciseIds"`
	TotalSessions int64                    `json:"totalSessions"`
}

// ToggleResult reports the state after one exercise toggle.
type ToggleResult struct {
	SessionID        primitive.ObjectID `json:"sessionId"`
	ExerciseID       primitive.ObjectID `json:"exerciseId"`
	Done             bool               `json:"done"` // State after the toggle
	SetsWritten      int                `json:"setsWritten"`
	SessionCompleted bool               `json:"sessionCompleted"`
}

// CalendarDay is one cell of the month overview.
type CalendarDay struct {
	Date      string `json:"date"`
	Scheduled bool   `json:"scheduled"`
	Completed bool   `json:"completed"`
	Trained   bool   `json:"trained"` // A session exists, complete or not
}

// WorkoutService drives the per-date session lifecycle:
// no session → open (partial) → open (complete), with the reverse transition
// back to partial when sets are removed.
type WorkoutService interface {
	GetWorkout(ctx context.Context, userID primitive.ObjectID, date time.Time) (*TodayWorkout, error)
	ToggleExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, date time.Time) (*ToggleResult, error)
	MonthOverview(ctx context.Context, userID primitive.ObjectID, year int, month time.Month) ([]CalendarDay, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	planRepo     repository.PlanRepository
	exerciseRepo repository.ExerciseRepository
	sessionRepo  repository.SessionRepository
	setRepo      repository.SetRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	planRepo repository.PlanRepository,
	exerciseRepo repository.ExerciseRepository,
	sessionRepo repository.SessionRepository,
	setRepo repository.SetRepository,
) WorkoutService {
	return &workoutService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		sessionRepo:  sessionRepo,
		setRepo:      setRepo,
	}
}

// GetWorkout assembles the workout view for one date. Without an active plan,
// or when the date is not a programmed day, Plan is set but Exercises is
// empty (or both empty when no plan is active at all).
func (s *workoutService) GetWorkout(ctx context.Context, userID primitive.ObjectID, date time.Time) (*TodayWorkout, error) {
	day := domain.WeekdayOf(date)
	workout := &TodayWorkout{
		Date:         date.Format(domain.DateLayout),
		Weekday:      day,
		Exercises:    []domain.PlannedExercise{},
		CompletedIDs: []primitive.ObjectID{},
	}

	total, err := s.sessionRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	workout.TotalSessions = total

	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return workout, nil // No active plan: rest-day view
		}
		return nil, err
	}
	workout.Plan = plan

	if !plan.TrainsOn(day) {
		return workout, nil
	}

	exercises, err := s.exerciseRepo.GetByPlanAndWeekday(ctx, plan.ID, day)
	if err != nil {
		return nil, err
	}
	workout.Exercises = exercises

	session, err := s.sessionRepo.GetByUserAndDate(ctx, userID, workout.Date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return workout, nil
		}
		return nil, err
	}
	workout.Session = session

	completed, err := s.setRepo.DistinctExerciseIDs(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	workout.CompletedIDs = completed

	return workout, nil
}

// ToggleExercise marks an exercise done or not-done for the given date.
// The first toggle of a date creates the session (completed=false). Marking
// done inserts one performed-set row per target set, pre-filled from the
// exercise targets; marking not-done bulk-deletes the pair's rows. Either
// way the session completion flag is recomputed and written back, also when
// its value did not change. There is no locking; concurrent toggles race and
// the last completion write wins.
func (s *workoutService) ToggleExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, date time.Time) (*ToggleResult, error) {
	day := domain.WeekdayOf(date)
	dateStr := date.Format(domain.DateLayout)

	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.PlanID != plan.ID || exercise.Weekday != day {
		return nil, ErrExerciseNotScheduled
	}

	session, err := s.sessionRepo.GetByUserAndDate(ctx, userID, dateStr)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// First toggle of the date opens the session.
		session = &domain.WorkoutSession{
			UserID:    userID,
			PlanID:    &plan.ID,
			Date:      dateStr,
			Completed: false,
		}
		sessionID, err := s.sessionRepo.Create(ctx, session)
		if err != nil {
			return nil, err
		}
		session.ID = sessionID
	}

	doneIDs, err := s.setRepo.DistinctExerciseIDs(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	result := &ToggleResult{
		SessionID:  session.ID,
		ExerciseID: exerciseID,
	}

	if containsID(doneIDs, exerciseID) {
		// Unmark: remove all rows of the (session, exercise) pair.
		if err := s.setRepo.DeleteBySessionAndExercise(ctx, session.ID, exerciseID); err != nil {
			return nil, err
		}
		result.Done = false
	} else {
		// Mark: one row per target set, pre-filled from the targets.
		sets := make([]domain.PerformedSet, exercise.TargetSets)
		for i := range sets {
			sets[i] = domain.PerformedSet{
				SessionID:  session.ID,
				ExerciseID: exerciseID,
				SetNumber:  i + 1,
				Reps:       exercise.DefaultReps(),
				Weight:     exercise.DefaultWeight(),
				Completed:  true,
			}
		}
		if err := s.setRepo.CreateBatch(ctx, sets); err != nil {
			return nil, err
		}
		result.Done = true
		result.SetsWritten = len(sets)
	}

	completed, err := s.recomputeCompletion(ctx, session.ID, plan.ID, day)
	if err != nil {
		return nil, err
	}
	result.SessionCompleted = completed

	return result, nil
}

// recomputeCompletion derives and writes the session completion flag:
// complete when every exercise scheduled for the weekday has at least one
// performed set. The write is unconditional.
func (s *workoutService) recomputeCompletion(ctx context.Context, sessionID, planID primitive.ObjectID, day domain.Weekday) (bool, error) {
	doneIDs, err := s.setRepo.DistinctExerciseIDs(ctx, sessionID)
	if err != nil {
		return false, err
	}
	scheduled, err := s.exerciseRepo.GetByPlanAndWeekday(ctx, planID, day)
	if err != nil {
		return false, err
	}

	completed := len(scheduled) > 0 && len(doneIDs) == len(scheduled)
	if err := s.sessionRepo.SetCompleted(ctx, sessionID, completed); err != nil {
		return false, err
	}
	return completed, nil
}

// MonthOverview returns one entry per day of the month: whether the active
// plan schedules a workout on it and whether a session was recorded.
func (s *workoutService) MonthOverview(ctx context.Context, userID primitive.ObjectID, year int, month time.Month) ([]CalendarDay, error) {
	var plan *domain.TrainingPlan
	p, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err == nil {
		plan = p
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	sessions, err := s.sessionRepo.GetByUserID(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*domain.WorkoutSession, len(sessions))
	for i := range sessions {
		byDate[sessions[i].Date] = &sessions[i]
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]CalendarDay, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(domain.DateLayout)
		cell := CalendarDay{Date: dateStr}
		if plan != nil {
			cell.Scheduled = plan.IsScheduled(d)
		}
		if session, ok := byDate[dateStr]; ok {
			cell.Trained = true
			cell.Completed = session.Completed
		}
		days = append(days, cell)
	}
	return days, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
