package service

import (
	"context"
	"fmt"
	"time"

	"flashcard-service/internal/models"
	"flashcard-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type SubjectService struct {
	Repo          *repository.SubjectRepository
	TopicRepo     *repository.TopicRepository
	FlashcardRepo *repository.FlashcardRepository
}

func NewSubjectService(repo *repository.SubjectRepository, topicRepo *repository.TopicRepository, flashcardRepo *repository.FlashcardRepository) *SubjectService {
	return &SubjectService{
		Repo:          repo,
		TopicRepo:     topicRepo,
		FlashcardRepo: flashcardRepo,
	}
}

func (s *SubjectService) ListSubjects(ctx context.Context, userID string) ([]models.Subject, error) {
	return s.Repo.FindByUser(ctx, userID)
}

func (s *SubjectService) GetSubject(ctx context.Context, userID, id string) (*models.Subject, error) {
	return s.owned(ctx, userID, id)
}

func (s *SubjectService) CreateSubject(ctx context.Context, userID, title, description string) (*models.Subject, error) {
	now := time.Now()
	subject := &models.Subject{
		UserID:      userID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return subject, nil
}

// UpdateSubject changes the editable fields only; an empty field leaves the
// stored value alone.
func (s *SubjectService) UpdateSubject(ctx context.Context, userID, id, title, description string) (*models.Subject, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	update := bson.M{"updated_at": time.Now()}
	if title != "" {
		update["title"] = title
	}
	if description != "" {
		update["description"] = description
	}
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	return s.Repo.FindByID(ctx, id)
}

// DeleteSubject removes the subject and everything under it. Cards go
// first, then topics, then the subject itself, so a partial failure never
// strands content without its parent chain.
func (s *SubjectService) DeleteSubject(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.FlashcardRepo.DeleteBySubject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subject flashcards: %w", err)
	}
	if err := s.TopicRepo.DeleteBySubject(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subject topics: %w", err)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}

// owned loads a subject and verifies the caller is its owner.
func (s *SubjectService) owned(ctx context.Context, userID, id string) (*models.Subject, error) {
	subject, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrNotFound
	}
	if subject.UserID != userID {
		return nil, ErrForbidden
	}
	return subject, nil
}
