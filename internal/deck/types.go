package deck

import (
	"context"

	"flashcard-service/internal/models"
)

// Request names the queue to build for one test session. TopicID is only
// consulted for the specific-topic mode.
type Request struct {
	Mode      models.TestMode
	SubjectID string
	TopicID   string
}

// Deck is a ready-to-study queue. TopicTitles resolves segment titles for
// sequential sessions. SkippedTopics lists the titles of topics whose cards
// could not be loaded and were left out of the queue.
type Deck struct {
	Cards         []models.Flashcard
	TopicTitles   map[string]string
	TopicID       string
	TopicTitle    string
	SkippedTopics []string
}

// TopicSource and CardSource are the narrow repository slices the builder
// reads from. Both are expected to return documents in creation order.
type TopicSource interface {
	FindByID(ctx context.Context, id string) (*models.Topic, error)
	FindBySubject(ctx context.Context, subjectID string) ([]models.Topic, error)
}

type CardSource interface {
	FindByTopic(ctx context.Context, topicID string) ([]models.Flashcard, error)
	FindBySubject(ctx context.Context, subjectID string) ([]models.Flashcard, error)
}
