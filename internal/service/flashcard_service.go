package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"flashcard-service/internal/generate"
	"flashcard-service/internal/models"
	"flashcard-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	defaultGenerateCount = 5
	maxGenerateCount     = 20
)

// Generator produces flashcard drafts for a topic. Satisfied by the
// generate package's LLM client.
type Generator interface {
	GenerateCards(ctx context.Context, topic string, count int) ([]generate.Draft, error)
}

type FlashcardService struct {
	Repo        *repository.FlashcardRepository
	TopicRepo   *repository.TopicRepository
	SubjectRepo *repository.SubjectRepository
	Generator   Generator
}

func NewFlashcardService(repo *repository.FlashcardRepository, topicRepo *repository.TopicRepository, subjectRepo *repository.SubjectRepository, generator Generator) *FlashcardService {
	return &FlashcardService{
		Repo:        repo,
		TopicRepo:   topicRepo,
		SubjectRepo: subjectRepo,
		Generator:   generator,
	}
}

func (s *FlashcardService) ListFlashcards(ctx context.Context, userID, topicID string) ([]models.Flashcard, error) {
	if _, err := s.ownedTopic(ctx, userID, topicID); err != nil {
		return nil, err
	}
	return s.Repo.FindByTopic(ctx, topicID)
}

func (s *FlashcardService) GetFlashcard(ctx context.Context, userID, id string) (*models.Flashcard, error) {
	return s.ownedCard(ctx, userID, id)
}

// CreateFlashcard inserts the card and moves the topic's card counter. A
// failed counter bump after a successful insert is logged, never retried.
func (s *FlashcardService) CreateFlashcard(ctx context.Context, userID, topicID, question, answer string) (*models.Flashcard, error) {
	topic, err := s.ownedTopic(ctx, userID, topicID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	card := &models.Flashcard{
		TopicID:   topic.ID,
		SubjectID: topic.SubjectID,
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create flashcard: %w", err)
	}
	if err := s.TopicRepo.IncrementFlashcardCount(ctx, topic.ID, 1); err != nil {
		log.Printf("Warning: flashcard count for topic %s drifted: %v", topic.ID, err)
	}
	return card, nil
}

func (s *FlashcardService) UpdateFlashcard(ctx context.Context, userID, id, question, answer string) (*models.Flashcard, error) {
	if _, err := s.ownedCard(ctx, userID, id); err != nil {
		return nil, err
	}
	update := bson.M{"updated_at": time.Now()}
	if question != "" {
		update["question"] = question
	}
	if answer != "" {
		update["answer"] = answer
	}
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update flashcard: %w", err)
	}
	return s.Repo.FindByID(ctx, id)
}

func (s *FlashcardService) DeleteFlashcard(ctx context.Context, userID, id string) error {
	card, err := s.ownedCard(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete flashcard: %w", err)
	}
	if err := s.TopicRepo.IncrementFlashcardCount(ctx, card.TopicID, -1); err != nil {
		log.Printf("Warning: flashcard count for topic %s drifted: %v", card.TopicID, err)
	}
	return nil
}

// GenerateFlashcards asks the generator for draft cards on the topic's
// title. Drafts are returned for review, not persisted: the client saves
// the ones it keeps through the normal create path.
func (s *FlashcardService) GenerateFlashcards(ctx context.Context, userID, topicID string, count int) ([]generate.Draft, error) {
	topic, err := s.ownedTopic(ctx, userID, topicID)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = defaultGenerateCount
	}
	if count > maxGenerateCount {
		count = maxGenerateCount
	}
	return s.Generator.GenerateCards(ctx, topic.Title, count)
}

func (s *FlashcardService) ownedTopic(ctx context.Context, userID, topicID string) (*models.Topic, error) {
	topic, err := s.TopicRepo.FindByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrNotFound
	}
	if err := s.checkOwner(ctx, userID, topic.SubjectID); err != nil {
		return nil, err
	}
	return topic, nil
}

// ownedCard resolves a card and checks ownership through its subject; the
// denormalized subject id on the card spares the topic hop.
func (s *FlashcardService) ownedCard(ctx context.Context, userID, id string) (*models.Flashcard, error) {
	card, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrNotFound
	}
	if err := s.checkOwner(ctx, userID, card.SubjectID); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *FlashcardService) checkOwner(ctx context.Context, userID, subjectID string) error {
	subject, err := s.SubjectRepo.FindByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if subject == nil {
		return ErrNotFound
	}
	if subject.UserID != userID {
		return ErrForbidden
	}
	return nil
}
