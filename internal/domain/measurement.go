package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightMeasurement is one point of the append-only body-weight timeseries.
// Measurements are never edited or deleted from the application.
type WeightMeasurement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	WeightKg  float64            `bson:"weightKg" json:"weightKg"`
	Date      string             `bson:"date" json:"date"` // DateLayout
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MaxWeightKg bounds accepted measurement values (exclusive lower bound 0).
const MaxWeightKg = 300.0

// WeightTrend summarizes the timeseries for display: most recent and earliest
// measurement by date order, and the delta between them. A trend needs at
// least two measurements; below that Current and Initial are absent and
// Delta is 0.
type WeightTrend struct {
	Current *float64 `json:"current,omitempty"`
	Initial *float64 `json:"initial,omitempty"`
	Delta   float64  `json:"delta"`
}

// ComputeWeightTrend derives trend stats from measurements ordered ascending
// by date.
func ComputeWeightTrend(measurements []WeightMeasurement) WeightTrend {
	var trend WeightTrend
	if len(measurements) < 2 {
		return trend
	}
	initial := measurements[0].WeightKg
	current := measurements[len(measurements)-1].WeightKg
	trend.Initial = &initial
	trend.Current = &current
	trend.Delta = current - initial
	return trend
}
