package repository

import (
	"context"
	"fmt"
	"time"

	"flashcard-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TopicRepository struct {
	Col *mongo.Collection
}

func NewTopicRepository(db *mongo.Database) *TopicRepository {
	return &TopicRepository{Col: db.Collection("topics")}
}

func (r *TopicRepository) FindByID(ctx context.Context, id string) (*models.Topic, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an id that is not a valid ObjectID matches no document
		return nil, nil
	}
	var topic models.Topic
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&topic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

// FindBySubject returns the subject's topics in creation order, the order
// sequential sessions walk them in.
func (r *TopicRepository) FindBySubject(ctx context.Context, subjectID string) ([]models.Topic, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"subject_id": subjectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var topics []models.Topic
	for cur.Next(ctx) {
		var t models.Topic
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, nil
}

func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	res, err := r.Col.InsertOne(ctx, topic)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		topic.ID = oid.Hex()
	}
	return nil
}

func (r *TopicRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *TopicRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (r *TopicRepository) DeleteBySubject(ctx context.Context, subjectID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"subject_id": subjectID})
	return err
}

// IncrementFlashcardCount moves the denormalized card counter by delta
// through a single atomic update.
func (r *TopicRepository) IncrementFlashcardCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$inc": bson.M{"flashcard_count": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to increment flashcard count: %w", err)
	}
	return nil
}
