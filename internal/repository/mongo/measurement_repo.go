package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"
	"github.com/Mteo06/gym-tracker-pro/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const measurementCollectionName = "weight_measurements"

// mongoMeasurementRepository implements repository.MeasurementRepository
// using MongoDB.
type mongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMongoMeasurementRepository creates a new WeightMeasurement repository.
func NewMongoMeasurementRepository(db *mongo.Database) repository.MeasurementRepository {
	return &mongoMeasurementRepository{
		collection: db.Collection(measurementCollectionName),
	}
}

// Create appends a measurement to the user's timeseries.
func (r *mongoMeasurementRepository) Create(ctx context.Context, m *domain.WeightMeasurement) (primitive.ObjectID, error) {
	if m.UserID == primitive.NilObjectID || m.Date == "" {
		return primitive.NilObjectID, errors.New("measurement requires userId and date")
	}
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, m)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted measurement ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves the user's measurements, ascending by date for trend
// display.
func (r *mongoMeasurementRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightMeasurement, error) {
	var measurements []domain.WeightMeasurement
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &measurements); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return measurements, nil
}

// EnsureMeasurementIndexes creates necessary indexes. Call during startup.
func EnsureMeasurementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Not fatal; queries still work, just slower.
		log.Printf("WARN: failed to create indexes for %s: %v", collection.Name(), err)
	}
}
