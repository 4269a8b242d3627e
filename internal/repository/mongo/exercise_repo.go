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

const exerciseCollectionName = "planned_exercises"

// mongoExerciseRepository implements repository.ExerciseRepository using
// MongoDB.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new PlannedExercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// CreateBatch inserts all exercises of a plan in one call.
func (r *mongoExerciseRepository) CreateBatch(ctx context.Context, exercises []domain.PlannedExercise) error {
	if len(exercises) == 0 {
		return errors.New("no exercises to insert")
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(exercises))
	for i := range exercises {
		if exercises[i].PlanID == primitive.NilObjectID {
			return errors.New("exercise requires planId")
		}
		exercises[i].ID = primitive.NewObjectID()
		exercises[i].CreatedAt = now
		docs[i] = exercises[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByID retrieves a single planned exercise.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlannedExercise, error) {
	var exercise domain.PlannedExercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByPlanID retrieves all exercises of a plan, weekday then execution order.
func (r *mongoExerciseRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlannedExercise, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "weekday", Value: 1},
		{Key: "order", Value: 1},
	})
	return r.find(ctx, bson.M{"planId": planID}, findOptions)
}

// GetByPlanAndWeekday retrieves the exercises scheduled on one weekday of a
// plan, in execution order.
func (r *mongoExerciseRepository) GetByPlanAndWeekday(ctx context.Context, planID primitive.ObjectID, day domain.Weekday) ([]domain.PlannedExercise, error) {
	filter := bson.M{"planId": planID, "weekday": day}
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	return r.find(ctx, filter, findOptions)
}

// CountByPlanID counts the exercises of a plan.
func (r *mongoExerciseRepository) CountByPlanID(ctx context.Context, planID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"planId": planID})
}

// DeleteByPlanID removes all exercises of a plan. Mongo has no referential
// cascade; the plan service calls this right after deleting the plan row.
func (r *mongoExerciseRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.PlannedExercise, error) {
	var exercises []domain.PlannedExercise

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "weekday", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Not fatal; queries still work, just slower.
		log.Printf("WARN: failed to create indexes for %s: %v", collection.Name(), err)
	}
}
