package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"flashcard-service/internal/models"
	"flashcard-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type TopicService struct {
	Repo          *repository.TopicRepository
	SubjectRepo   *repository.SubjectRepository
	FlashcardRepo *repository.FlashcardRepository
}

func NewTopicService(repo *repository.TopicRepository, subjectRepo *repository.SubjectRepository, flashcardRepo *repository.FlashcardRepository) *TopicService {
	return &TopicService{
		Repo:          repo,
		SubjectRepo:   subjectRepo,
		FlashcardRepo: flashcardRepo,
	}
}

func (s *TopicService) ListTopics(ctx context.Context, userID, subjectID string) ([]models.Topic, error) {
	if _, err := s.ownedSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	return s.Repo.FindBySubject(ctx, subjectID)
}

func (s *TopicService) GetTopic(ctx context.Context, userID, id string) (*models.Topic, error) {
	return s.ownedTopic(ctx, userID, id)
}

// CreateTopic inserts the topic and moves the subject's topic counter. A
// failed counter bump after a successful insert is logged and left alone;
// the counter is a display cache, not the source of truth.
func (s *TopicService) CreateTopic(ctx context.Context, userID, subjectID, title string) (*models.Topic, error) {
	if _, err := s.ownedSubject(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	now := time.Now()
	topic := &models.Topic{
		SubjectID: subjectID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}
	if err := s.SubjectRepo.IncrementTopicCount(ctx, subjectID, 1); err != nil {
		log.Printf("Warning: topic count for subject %s drifted: %v", subjectID, err)
	}
	return topic, nil
}

func (s *TopicService) UpdateTopic(ctx context.Context, userID, id, title string) (*models.Topic, error) {
	if _, err := s.ownedTopic(ctx, userID, id); err != nil {
		return nil, err
	}
	update := bson.M{"updated_at": time.Now()}
	if title != "" {
		update["title"] = title
	}
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update topic: %w", err)
	}
	return s.Repo.FindByID(ctx, id)
}

// DeleteTopic removes the topic with its flashcards and moves the subject's
// topic counter back down.
func (s *TopicService) DeleteTopic(ctx context.Context, userID, id string) error {
	topic, err := s.ownedTopic(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.FlashcardRepo.DeleteByTopic(ctx, id); err != nil {
		return fmt.Errorf("failed to delete topic flashcards: %w", err)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	if err := s.SubjectRepo.IncrementTopicCount(ctx, topic.SubjectID, -1); err != nil {
		log.Printf("Warning: topic count for subject %s drifted: %v", topic.SubjectID, err)
	}
	return nil
}

func (s *TopicService) ownedSubject(ctx context.Context, userID, subjectID string) (*models.Subject, error) {
	subject, err := s.SubjectRepo.FindByID(ctx, subjectID)
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

// ownedTopic resolves a topic and checks ownership through its subject.
func (s *TopicService) ownedTopic(ctx context.Context, userID, id string) (*models.Topic, error) {
	topic, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrNotFound
	}
	if _, err := s.ownedSubject(ctx, userID, topic.SubjectID); err != nil {
		return nil, err
	}
	return topic, nil
}
