package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPlan is a named weekly training template ("scheda"): which weekdays
// are training days and, via PlannedExercise, what happens on each of them.
// At most one plan per user is active at a time; the active plan drives the
// "today's workout" derivation.
type TrainingPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"` // e.g. "Push Pull Legs"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Weekdays    []Weekday          `bson:"weekdays" json:"weekdays"` // Scheduled training days
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TrainsOn reports whether the plan schedules a workout on the given weekday.
func (p *TrainingPlan) TrainsOn(day Weekday) bool {
	return ContainsWeekday(p.Weekdays, day)
}

// IsScheduled reports whether the given calendar date is a programmed
// training day for this plan.
func (p *TrainingPlan) IsScheduled(date time.Time) bool {
	return p.TrainsOn(WeekdayOf(date))
}
