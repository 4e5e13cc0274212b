package repository

import (
	"context"

	"flashcard-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FlashcardRepository struct {
	Col *mongo.Collection
}

func NewFlashcardRepository(db *mongo.Database) *FlashcardRepository {
	return &FlashcardRepository{Col: db.Collection("flashcards")}
}

func (r *FlashcardRepository) FindByID(ctx context.Context, id string) (*models.Flashcard, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an id that is not a valid ObjectID matches no document
		return nil, nil
	}
	var card models.Flashcard
	err = r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// FindByTopic returns the topic's cards in creation order, which is the
// study order for everything except the shuffled random mode.
func (r *FlashcardRepository) FindByTopic(ctx context.Context, topicID string) ([]models.Flashcard, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"topic_id": topicID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var cards []models.Flashcard
	for cur.Next(ctx) {
		var card models.Flashcard
		if err := cur.Decode(&card); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (r *FlashcardRepository) FindBySubject(ctx context.Context, subjectID string) ([]models.Flashcard, error) {
	opts := options.Find().SetSort(bson.D{bson.E{Key: "created_at", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"subject_id": subjectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var cards []models.Flashcard
	for cur.Next(ctx) {
		var card models.Flashcard
		if err := cur.Decode(&card); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (r *FlashcardRepository) Create(ctx context.Context, card *models.Flashcard) error {
	res, err := r.Col.InsertOne(ctx, card)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		card.ID = oid.Hex()
	}
	return nil
}

func (r *FlashcardRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

func (r *FlashcardRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (r *FlashcardRepository) DeleteByTopic(ctx context.Context, topicID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"topic_id": topicID})
	return err
}

func (r *FlashcardRepository) DeleteBySubject(ctx context.Context, subjectID string) error {
	_, err := r.Col.DeleteMany(ctx, bson.M{"subject_id": subjectID})
	return err
}
