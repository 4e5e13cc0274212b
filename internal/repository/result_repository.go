package repository

import (
	"context"

	"flashcard-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepository is append-only: results are written once when a session
// or segment completes and never updated or deleted afterwards.
type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("test_results")}
}

func (r *ResultRepository) Create(ctx context.Context, result *models.TestResult) error {
	res, err := r.Col.InsertOne(ctx, result)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid.Hex()
	}
	return nil
}

func (r *ResultRepository) FindByUser(ctx context.Context, userID string) ([]models.TestResult, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *ResultRepository) FindByUserAndSubject(ctx context.Context, userID, subjectID string) ([]models.TestResult, error) {
	return r.find(ctx, bson.M{"user_id": userID, "subject_id": subjectID})
}

func (r *ResultRepository) find(ctx context.Context, filter bson.M) ([]models.TestResult, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.TestResult
	for cur.Next(ctx) {
		var res models.TestResult
		if err := cur.Decode(&res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
