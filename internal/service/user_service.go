package service

import (
	"context"
	"fmt"

	"flashcard-service/internal/models"
	"flashcard-service/internal/repository"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// SyncProfile mirrors the identity service's profile fields into the local
// collection, creating the document on first sight.
func (s *UserService) SyncProfile(ctx context.Context, userID, displayName, email string) (*models.User, error) {
	user := &models.User{
		UserID:      userID,
		DisplayName: displayName,
		Email:       email,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync profile: %w", err)
	}
	return s.Repo.FindByUserID(ctx, userID)
}
