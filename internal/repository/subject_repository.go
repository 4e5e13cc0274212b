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

type SubjectRepository struct {
	Col *mongo.Collection
}

func NewSubjectRepository(db *mongo.Database) *SubjectRepository {
	return &SubjectRepository{Col: db.Collection("subjects")}
}

func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an id that is not a valid ObjectID matches no document
		return nil, nil
	}
	var subject models.Subject
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&subject)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) FindByUser(ctx context.Context, userID string) ([]models.Subject, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subjects []models.Subject
	for cur.Next(ctx) {
		var s models.Subject
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, nil
}

func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	res, err := r.Col.InsertOne(ctx, subject)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		subject.ID = oid.Hex()
	}
	return nil
}

func (r *SubjectRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *SubjectRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

// IncrementTopicCount moves the denormalized topic counter by delta. The
// counter is only ever touched through this atomic update, never by
// reading and writing the document back.
func (r *SubjectRepository) IncrementTopicCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$inc": bson.M{"topic_count": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to increment topic count: %w", err)
	}
	return nil
}

// RecordStudy stamps a finished study session onto the subject's display
// metrics: revision progress always moves by one, the streak value is
// computed by the caller from the previous study day.
func (r *SubjectRepository) RecordStudy(ctx context.Context, id string, streak int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	now := time.Now()
	update := bson.M{
		"$inc": bson.M{"revision_progress": 1},
		"$set": bson.M{
			"streak_count": streak,
			"last_studied": now,
			"updated_at":   now,
		},
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to record study: %w", err)
	}
	return nil
}
