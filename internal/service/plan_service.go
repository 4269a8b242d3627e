package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"
	"github.com/Mteo06/gym-tracker-pro/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound       = errors.New("training plan not found")
	ErrPlanNameRequired   = errors.New("plan name is required")
	ErrNoWeekdaysSelected = errors.New("select at least one training day")
	ErrNoExercises        = errors.New("add at least one exercise to the plan")
	ErrExerciseDayInvalid = errors.New("every exercise must be assigned to one of the selected days")

	// ErrPlanExercisesInsertFailed reports the known partial-write gap: the
	// plan row was inserted but the exercise batch failed, and no
	// compensating rollback is performed. The plan remains, without
	// exercises.
	ErrPlanExercisesInsertFailed = errors.New("plan was created but saving its exercises failed")
)

// NewExercise carries one exercise row of a plan creation request.
type NewExercise struct {
	Weekday      domain.Weekday
	Name         string
	TargetSets   int
	TargetReps   string
	TargetWeight *float64
	RestTime     string
	MuscleGroup  string
	Notes        string
}

// PlanSummary is a plan annotated with its exercise count, for list views.
type PlanSummary struct {
	domain.TrainingPlan
	ExerciseCount int64 `json:"exerciseCount"`
}

// PlanDetail is a plan together with all its exercises, weekday then
// execution order.
type PlanDetail struct {
	domain.TrainingPlan
	Exercises []domain.PlannedExercise `json:"exercises"`
}

// PlanService manages training plans and their exercises.
type PlanService interface {
	ListPlans(ctx context.Context, userID primitive.ObjectID) ([]PlanSummary, error)
	CreatePlan(ctx context.Context, userID primitive.ObjectID, name, description string, weekdays []domain.Weekday, exercises []NewExercise) (*domain.TrainingPlan, error)
	GetPlanDetail(ctx context.Context, userID, planID primitive.ObjectID) (*PlanDetail, error)
	SetPlanActive(ctx context.Context, userID, planID primitive.ObjectID, active bool) (*domain.TrainingPlan, error)
	DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error
}

// planService implements the PlanService interface.
type planService struct {
	planRepo     repository.PlanRepository
	exerciseRepo repository.ExerciseRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, exerciseRepo repository.ExerciseRepository) PlanService {
	return &planService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
	}
}

// ListPlans retrieves the user's plans, newest first, each annotated with its
// exercise count.
func (s *planService) ListPlans(ctx context.Context, userID primitive.ObjectID) ([]PlanSummary, error) {
	plans, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]PlanSummary, 0, len(plans))
	for _, plan := range plans {
		count, err := s.exerciseRepo.CountByPlanID(ctx, plan.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, PlanSummary{TrainingPlan: plan, ExerciseCount: count})
	}
	return summaries, nil
}

// CreatePlan validates and saves a new plan with its exercises. The plan is
// inserted as active, then the exercises as one batch tagged with the plan ID
// and a zero-based execution order. Validation failures write nothing; an
// exercise batch failure after the plan insert leaves the plan in place and
// returns ErrPlanExercisesInsertFailed.
func (s *planService) CreatePlan(
	ctx context.Context,
	userID primitive.ObjectID,
	name, description string,
	weekdays []domain.Weekday,
	exercises []NewExercise,
) (*domain.TrainingPlan, error) {
	if name == "" {
		return nil, ErrPlanNameRequired
	}
	if len(weekdays) == 0 {
		return nil, ErrNoWeekdaysSelected
	}
	for _, day := range weekdays {
		if !domain.IsValidWeekday(day) {
			return nil, fmt.Errorf("unknown weekday %q", day)
		}
	}
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}
	for _, ex := range exercises {
		if ex.Name == "" {
			return nil, errors.New("exercise name is required")
		}
		if ex.TargetSets < 1 {
			return nil, errors.New("exercise target sets must be at least 1")
		}
		if !domain.ContainsWeekday(weekdays, ex.Weekday) {
			return nil, ErrExerciseDayInvalid
		}
	}

	// New plans start active. Deactivate the siblings first so that "at most
	// one active plan" holds through the whole mutation.
	plan := &domain.TrainingPlan{
		UserID:      userID,
		Name:        name,
		Description: description,
		Weekdays:    weekdays,
		IsActive:    true,
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	if err := s.planRepo.DeactivateOthers(ctx, userID, planID); err != nil {
		return nil, err
	}

	rows := make([]domain.PlannedExercise, len(exercises))
	for i, ex := range exercises {
		rows[i] = domain.PlannedExercise{
			PlanID:       planID,
			Weekday:      ex.Weekday,
			Name:         ex.Name,
			TargetSets:   ex.TargetSets,
			TargetReps:   ex.TargetReps,
			TargetWeight: ex.TargetWeight,
			RestTime:     ex.RestTime,
			MuscleGroup:  ex.MuscleGroup,
			Notes:        ex.Notes,
			Order:        i,
		}
	}

	if err := s.exerciseRepo.CreateBatch(ctx, rows); err != nil {
		// No compensating delete of the plan row. The inconsistency is
		// reported, not masked.
		return nil, fmt.Errorf("%w: %v", ErrPlanExercisesInsertFailed, err)
	}

	return plan, nil
}

// GetPlanDetail retrieves one plan with its exercises. Plans of other users
// are reported as not found.
func (s *planService) GetPlanDetail(ctx context.Context, userID, planID primitive.ObjectID) (*PlanDetail, error) {
	plan, err := s.getOwnedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exerciseRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}

	return &PlanDetail{TrainingPlan: *plan, Exercises: exercises}, nil
}

// SetPlanActive flips the active flag on one plan. Activating a plan
// deactivates every other plan of the user within the same mutation, so at
// most one plan is active; deactivating touches only the given plan.
func (s *planService) SetPlanActive(ctx context.Context, userID, planID primitive.ObjectID, active bool) (*domain.TrainingPlan, error) {
	plan, err := s.getOwnedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	if err := s.planRepo.SetActive(ctx, planID, active); err != nil {
		return nil, err
	}
	if active {
		if err := s.planRepo.DeactivateOthers(ctx, userID, planID); err != nil {
			return nil, err
		}
	}

	plan.IsActive = active
	return plan, nil
}

// DeletePlan removes a plan and its exercises. Past sessions keep their plan
// reference dangling; history resolves it to an absent name.
func (s *planService) DeletePlan(ctx context.Context, userID, planID primitive.ObjectID) error {
	if err := s.planRepo.Delete(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return s.exerciseRepo.DeleteByPlanID(ctx, planID)
}

func (s *planService) getOwnedPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}
