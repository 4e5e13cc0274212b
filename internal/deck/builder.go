package deck

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"flashcard-service/internal/models"
)

// ErrTopicNotFound reports a specific-topic request naming an unknown topic.
var ErrTopicNotFound = errors.New("topic not found")

// Builder assembles the card queue for each test mode. Ordering rules live
// here and nowhere else: sources return creation order, the random mode is
// shuffled exactly once at build time, and the session controller plays
// whatever it is handed without reordering.
type Builder struct {
	topics TopicSource
	cards  CardSource
	rand   *rand.Rand
}

func NewBuilder(topics TopicSource, cards CardSource) *Builder {
	return &Builder{
		topics: topics,
		cards:  cards,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *Builder) Build(ctx context.Context, req Request) (*Deck, error) {
	switch req.Mode {
	case models.ModeSpecificTopic:
		return b.buildSpecificTopic(ctx, req.SubjectID, req.TopicID)
	case models.ModeRandomSubject:
		return b.buildRandomSubject(ctx, req.SubjectID)
	case models.ModeSequentialTopics:
		return b.buildSequential(ctx, req.SubjectID)
	default:
		return nil, fmt.Errorf("unknown test mode: %s", req.Mode)
	}
}

func (b *Builder) buildSpecificTopic(ctx context.Context, subjectID, topicID string) (*Deck, error) {
	topic, err := b.topics.FindByID(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load topic: %w", err)
	}
	// a topic under a different subject is as good as absent
	if topic == nil || topic.SubjectID != subjectID {
		return nil, ErrTopicNotFound
	}
	cards, err := b.cards.FindByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to load flashcards: %w", err)
	}
	return &Deck{
		Cards:       cards,
		TopicID:     topic.ID,
		TopicTitle:  topic.Title,
		TopicTitles: map[string]string{topic.ID: topic.Title},
	}, nil
}

func (b *Builder) buildRandomSubject(ctx context.Context, subjectID string) (*Deck, error) {
	cards, err := b.cards.FindBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load flashcards: %w", err)
	}
	shuffled := make([]models.Flashcard, len(cards))
	copy(shuffled, cards)
	b.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &Deck{
		Cards:       shuffled,
		TopicTitles: map[string]string{},
	}, nil
}

func (b *Builder) buildSequential(ctx context.Context, subjectID string) (*Deck, error) {
	topics, err := b.topics.FindBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}
	d := &Deck{TopicTitles: make(map[string]string, len(topics))}
	for _, topic := range topics {
		cards, err := b.cards.FindByTopic(ctx, topic.ID)
		if err != nil {
			// one broken topic must not sink the whole session
			log.Printf("Warning: skipping topic %s in sequential deck: %v", topic.ID, err)
			d.SkippedTopics = append(d.SkippedTopics, topic.Title)
			continue
		}
		d.TopicTitles[topic.ID] = topic.Title
		d.Cards = append(d.Cards, cards...)
	}
	return d, nil
}
