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
	ErrWeightOutOfRange    = errors.New("weight must be between 0 and 300 kg")
	ErrMeasurementInFuture = errors.New("measurement date cannot be in the future")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
)

// MeasurementsResult is the timeseries plus its derived trend.
type MeasurementsResult struct {
	Measurements []domain.WeightMeasurement `json:"measurements"`
	Trend        domain.WeightTrend         `json:"trend"`
}

// MeasurementService manages the append-only body-weight timeseries.
type MeasurementService interface {
	AddMeasurement(ctx context.Context, userID primitive.ObjectID, weightKg float64, date string) (*domain.WeightMeasurement, error)
	GetMeasurements(ctx context.Context, userID primitive.ObjectID) (*MeasurementsResult, error)
}

// measurementService implements the MeasurementService interface.
type measurementService struct {
	measurementRepo repository.MeasurementRepository
	now             func() time.Time
}

// NewMeasurementService creates a new instance of measurementService.
func NewMeasurementService(measurementRepo repository.MeasurementRepository) MeasurementService {
	return &measurementService{
		measurementRepo: measurementRepo,
		now:             time.Now,
	}
}

// AddMeasurement validates and appends one measurement. Weight must be in
// (0, 300] and the date must not be in the future; an empty date means
// today.
func (s *measurementService) AddMeasurement(ctx context.Context, userID primitive.ObjectID, weightKg float64, date string) (*domain.WeightMeasurement, error) {
	if weightKg <= 0 || weightKg > domain.MaxWeightKg {
		return nil, ErrWeightOutOfRange
	}

	today := s.now().UTC().Format(domain.DateLayout)
	if date == "" {
		date = today
	}
	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if parsed.Format(domain.DateLayout) > today {
		return nil, ErrMeasurementInFuture
	}

	measurement := &domain.WeightMeasurement{
		UserID:   userID,
		WeightKg: weightKg,
		Date:     date,
	}
	id, err := s.measurementRepo.Create(ctx, measurement)
	if err != nil {
		return nil, err
	}
	measurement.ID = id
	return measurement, nil
}

// GetMeasurements retrieves the timeseries ascending by date with its trend
// stats.
func (s *measurementService) GetMeasurements(ctx context.Context, userID primitive.ObjectID) (*MeasurementsResult, error) {
	measurements, err := s.measurementRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if measurements == nil {
		measurements = []domain.WeightMeasurement{}
	}
	return &MeasurementsResult{
		Measurements: measurements,
		Trend:        domain.ComputeWeightTrend(measurements),
	}, nil
}
