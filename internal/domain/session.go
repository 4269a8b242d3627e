package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire and storage format for calendar dates. Sessions and
// measurements are keyed by date, not by instant.
const DateLayout = "2006-01-02"

// WorkoutSession records a user's actual training activity on one calendar
// date. It is created lazily the first time an exercise is marked done on
// that date; at most one session per user per date (app-enforced).
type WorkoutSession struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	PlanID          *primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"` // Nil once the plan is deleted
	Date            string              `bson:"date" json:"date"`                         // DateLayout
	Completed       bool                `bson:"completed" json:"completed"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	DurationMinutes *int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Intensity       *int                `bson:"intensity,omitempty" json:"intensity,omitempty"` // 1-10
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// PerformedSet is one realized instance of a planned set within a session.
// N rows (N = the exercise's target set count) are inserted as a batch when
// an exercise is marked done, and deleted in bulk when unmarked.
type PerformedSet struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID  primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	SetNumber  int                `bson:"setNumber" json:"setNumber"` // 1-based
	Reps       int                `bson:"reps" json:"reps"`
	Weight     float64            `bson:"weight" json:"weight"`
	Completed  bool               `bson:"completed" json:"completed"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Volume is the training volume of the set: weight times repetitions.
func (s *PerformedSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}
