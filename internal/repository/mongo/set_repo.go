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

const setCollectionName = "performed_sets"

// mongoSetRepository implements repository.SetRepository using MongoDB.
type mongoSetRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRepository creates a new PerformedSet repository.
func NewMongoSetRepository(db *mongo.Database) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

// CreateBatch inserts the generated sets of one exercise toggle in one call.
func (r *mongoSetRepository) CreateBatch(ctx context.Context, sets []domain.PerformedSet) error {
	if len(sets) == 0 {
		return errors.New("no sets to insert")
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(sets))
	for i := range sets {
		if sets[i].SessionID == primitive.NilObjectID || sets[i].ExerciseID == primitive.NilObjectID {
			return errors.New("performed set requires sessionId and exerciseId")
		}
		sets[i].ID = primitive.NewObjectID()
		sets[i].CreatedAt = now
		docs[i] = sets[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetBySessionID retrieves all performed sets of a session, set number order.
func (r *mongoSetRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.PerformedSet, error) {
	var sets []domain.PerformedSet
	findOptions := options.Find().SetSort(bson.D{
		{Key: "exerciseId", Value: 1},
		{Key: "setNumber", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

// DistinctExerciseIDs returns the exercises having at least one performed
// set in the session.
func (r *mongoSetRepository) DistinctExerciseIDs(ctx context.Context, sessionID primitive.ObjectID) ([]primitive.ObjectID, error) {
	values, err := r.collection.Distinct(ctx, "exerciseId", bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		id, ok := v.(primitive.ObjectID)
		if !ok {
			return nil, errors.New("unexpected exerciseId type in performed_sets")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DeleteBySessionAndExercise bulk-deletes the sets of one exercise within a
// session. Used when an exercise is unmarked.
func (r *mongoSetRepository) DeleteBySessionAndExercise(ctx context.Context, sessionID, exerciseID primitive.ObjectID) error {
	filter := bson.M{"sessionId": sessionID, "exerciseId": exerciseID}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

// EnsureSetIndexes creates necessary indexes. Call during startup.
func EnsureSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "exerciseId", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Not fatal; queries still work, just slower.
		log.Printf("WARN: failed to create indexes for %s: %v", collection.Name(), err)
	}
}
