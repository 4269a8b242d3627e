package repository

import (
	"context"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository defines the interface for interacting with user profiles.
// A profile shares its ID with the owning user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// PlanRepository defines the interface for interacting with training plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	// DeactivateOthers clears the active flag on every plan of the user
	// except the given one. Used to keep "at most one active plan" true.
	DeactivateOthers(ctx context.Context, userID, keepID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with the planned
// exercises of training plans.
type ExerciseRepository interface {
	CreateBatch(ctx context.Context, exercises []domain.PlannedExercise) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlannedExercise, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlannedExercise, error)
	GetByPlanAndWeekday(ctx context.Context, planID primitive.ObjectID, day domain.Weekday) ([]domain.PlannedExercise, error)
	CountByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error)
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error
}

// SessionRepository defines the interface for interacting with workout
// sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutSession, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)
	CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
	SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error
}

// SetRepository defines the interface for interacting with performed sets.
type SetRepository interface {
	CreateBatch(ctx context.Context, sets []domain.PerformedSet) error
	GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.PerformedSet, error)
	// DistinctExerciseIDs returns the IDs of exercises having at least one
	// performed set in the session.
	DistinctExerciseIDs(ctx context.Context, sessionID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteBySessionAndExercise(ctx context.Context, sessionID, exerciseID primitive.ObjectID) error
}

// MeasurementRepository defines the interface for interacting with body
// weight measurements.
type MeasurementRepository interface {
	Create(ctx context.Context, m *domain.WeightMeasurement) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightMeasurement, error)
}
