package repository

import (
	"context"
	"time"

	"flashcard-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Upsert syncs the profile forwarded by the identity service. The first
// sync creates the document, later ones only refresh the mutable fields.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"display_name": user.DisplayName,
			"email":        user.Email,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"user_id":    user.UserID,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.Col.UpdateOne(ctx, bson.M{"user_id": user.UserID}, update, opts)
	return err
}
