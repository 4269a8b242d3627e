package domain

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlannedExercise is one row of a training plan: an exercise name plus its
// targets, pinned to a specific weekday of the plan. Exercises are created in
// bulk when a plan is saved and are never edited individually.
type PlannedExercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID       primitive.ObjectID `bson:"planId" json:"planId"`
	Weekday      Weekday            `bson:"weekday" json:"weekday"`
	Name         string             `bson:"name" json:"name"`             // e.g. "Bench Press"
	TargetSets   int                `bson:"targetSets" json:"targetSets"` // >= 1
	TargetReps   string             `bson:"targetReps" json:"targetReps"` // Free text, e.g. "8-12"
	TargetWeight *float64           `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"`
	RestTime     string             `bson:"restTime,omitempty" json:"restTime,omitempty"` // e.g. "90s"
	MuscleGroup  string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"` // Technique notes
	Order        int                `bson:"order" json:"order"`                     // Execution order, zero-based
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

const defaultRepsPerSet = 10

// DefaultReps parses TargetReps into the rep count pre-filled on generated
// sets. The value is free text ("8-12", "10", "max"); the leading integer
// wins, 10 when there is none.
func (e *PlannedExercise) DefaultReps() int {
	digits := 0
	for digits < len(e.TargetReps) && e.TargetReps[digits] >= '0' && e.TargetReps[digits] <= '9' {
		digits++
	}
	if digits == 0 {
		return defaultRepsPerSet
	}
	reps, err := strconv.Atoi(e.TargetReps[:digits])
	if err != nil || reps <= 0 {
		return defaultRepsPerSet
	}
	return reps
}

// DefaultWeight returns the weight pre-filled on generated sets: the target
// weight when present, zero otherwise.
func (e *PlannedExercise) DefaultWeight() float64 {
	if e.TargetWeight == nil {
		return 0
	}
	return *e.TargetWeight
}
