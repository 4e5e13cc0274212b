package deck

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"flashcard-service/internal/models"
)

type fakeTopicSource struct {
	byID      map[string]*models.Topic
	bySubject map[string][]models.Topic
	err       error
}

func (f *fakeTopicSource) FindByID(ctx context.Context, id string) (*models.Topic, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeTopicSource) FindBySubject(ctx context.Context, subjectID string) ([]models.Topic, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bySubject[subjectID], nil
}

type fakeCardSource struct {
	byTopic    map[string][]models.Flashcard
	bySubject  map[string][]models.Flashcard
	failTopics map[string]error
}

func (f *fakeCardSource) FindByTopic(ctx context.Context, topicID string) ([]models.Flashcard, error) {
	if err, ok := f.failTopics[topicID]; ok {
		return nil, err
	}
	return f.byTopic[topicID], nil
}

func (f *fakeCardSource) FindBySubject(ctx context.Context, subjectID string) ([]models.Flashcard, error) {
	return f.bySubject[subjectID], nil
}

func cards(topicID string, ids ...string) []models.Flashcard {
	out := make([]models.Flashcard, len(ids))
	for i, id := range ids {
		out[i] = models.Flashcard{ID: id, TopicID: topicID, Question: "q-" + id, Answer: "a-" + id}
	}
	return out
}

func cardIDs(deck *Deck) []string {
	ids := make([]string, len(deck.Cards))
	for i, c := range deck.Cards {
		ids[i] = c.ID
	}
	return ids
}

func TestBuildSpecificTopic(t *testing.T) {
	topics := &fakeTopicSource{byID: map[string]*models.Topic{
		"t1": {ID: "t1", SubjectID: "s1", Title: "Algebra"},
	}}
	cardSrc := &fakeCardSource{byTopic: map[string][]models.Flashcard{
		"t1": cards("t1", "a", "b", "c"),
	}}
	b := NewBuilder(topics, cardSrc)

	d, err := b.Build(context.Background(), Request{Mode: models.ModeSpecificTopic, SubjectID: "s1", TopicID: "t1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{"a", "b", "c"}
	got := cardIDs(d)
	if len(got) != len(want) {
		t.Fatalf("Expected %d cards, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Card %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if d.TopicID != "t1" || d.TopicTitle != "Algebra" {
		t.Errorf("Expected topic t1/Algebra, got %s/%s", d.TopicID, d.TopicTitle)
	}
	if d.TopicTitles["t1"] != "Algebra" {
		t.Errorf("Expected title lookup for t1, got %q", d.TopicTitles["t1"])
	}
}

func TestBuildSpecificTopicNotFound(t *testing.T) {
	b := NewBuilder(&fakeTopicSource{byID: map[string]*models.Topic{}}, &fakeCardSource{})

	_, err := b.Build(context.Background(), Request{Mode: models.ModeSpecificTopic, TopicID: "missing"})
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("Expected ErrTopicNotFound, got %v", err)
	}
}

func TestBuildSpecificTopicWrongSubject(t *testing.T) {
	topics := &fakeTopicSource{byID: map[string]*models.Topic{
		"t1": {ID: "t1", SubjectID: "someone-elses-subject", Title: "Algebra"},
	}}
	b := NewBuilder(topics, &fakeCardSource{})

	_, err := b.Build(context.Background(), Request{Mode: models.ModeSpecificTopic, SubjectID: "s1", TopicID: "t1"})
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("Expected ErrTopicNotFound for a topic outside the subject, got %v", err)
	}
}

func TestBuildUnknownMode(t *testing.T) {
	b := NewBuilder(&fakeTopicSource{}, &fakeCardSource{})

	_, err := b.Build(context.Background(), Request{Mode: "speed_run", SubjectID: "s1"})
	if err == nil {
		t.Error("Expected an error for an unknown mode")
	}
}

func TestBuildRandomSubjectIsShuffledOnce(t *testing.T) {
	source := cards("t1", "a", "b", "c", "d", "e", "f", "g", "h")
	cardSrc := &fakeCardSource{bySubject: map[string][]models.Flashcard{"s1": source}}

	b := NewBuilder(&fakeTopicSource{}, cardSrc)
	b.rand = rand.New(rand.NewSource(7))

	d, err := b.Build(context.Background(), Request{Mode: models.ModeRandomSubject, SubjectID: "s1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(d.Cards) != len(source) {
		t.Fatalf("Expected %d cards, got %d", len(source), len(d.Cards))
	}

	// every source card appears exactly once
	seen := make(map[string]int)
	for _, id := range cardIDs(d) {
		seen[id]++
	}
	for _, c := range source {
		if seen[c.ID] != 1 {
			t.Errorf("Expected card %s exactly once, got %d", c.ID, seen[c.ID])
		}
	}

	// the source slice is left untouched
	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		if source[i].ID != id {
			t.Fatalf("Source slice was reordered at %d: %s", i, source[i].ID)
		}
	}

	// the permutation is fixed by the seed, so a second builder with the
	// same seed produces the same queue
	b2 := NewBuilder(&fakeTopicSource{}, cardSrc)
	b2.rand = rand.New(rand.NewSource(7))
	d2, err := b2.Build(context.Background(), Request{Mode: models.ModeRandomSubject, SubjectID: "s1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, got2 := cardIDs(d), cardIDs(d2)
	for i := range got {
		if got[i] != got2[i] {
			t.Fatalf("Expected identical permutations for the same seed, differ at %d: %s vs %s", i, got[i], got2[i])
		}
	}
}

func TestBuildSequentialConcatenatesInTopicOrder(t *testing.T) {
	topics := &fakeTopicSource{bySubject: map[string][]models.Topic{
		"s1": {
			{ID: "t1", SubjectID: "s1", Title: "Algebra"},
			{ID: "t2", SubjectID: "s1", Title: "Geometry"},
			{ID: "t3", SubjectID: "s1", Title: "Calculus"},
		},
	}}
	cardSrc := &fakeCardSource{byTopic: map[string][]models.Flashcard{
		"t1": cards("t1", "a1", "a2"),
		"t2": cards("t2", "b1"),
		"t3": cards("t3", "c1", "c2", "c3"),
	}}
	b := NewBuilder(topics, cardSrc)

	d, err := b.Build(context.Background(), Request{Mode: models.ModeSequentialTopics, SubjectID: "s1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{"a1", "a2", "b1", "c1", "c2", "c3"}
	got := cardIDs(d)
	if len(got) != len(want) {
		t.Fatalf("Expected %d cards, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Card %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if len(d.SkippedTopics) != 0 {
		t.Errorf("Expected no skipped topics, got %v", d.SkippedTopics)
	}
	if d.TopicTitles["t2"] != "Geometry" {
		t.Errorf("Expected title lookup for t2, got %q", d.TopicTitles["t2"])
	}
}

func TestBuildSequentialSkipsFailedTopics(t *testing.T) {
	topics := &fakeTopicSource{bySubject: map[string][]models.Topic{
		"s1": {
			{ID: "t1", SubjectID: "s1", Title: "Algebra"},
			{ID: "t2", SubjectID: "s1", Title: "Geometry"},
			{ID: "t3", SubjectID: "s1", Title: "Calculus"},
		},
	}}
	cardSrc := &fakeCardSource{
		byTopic: map[string][]models.Flashcard{
			"t1": cards("t1", "a1"),
			"t3": cards("t3", "c1", "c2"),
		},
		failTopics: map[string]error{"t2": errors.New("read timeout")},
	}
	b := NewBuilder(topics, cardSrc)

	d, err := b.Build(context.Background(), Request{Mode: models.ModeSequentialTopics, SubjectID: "s1"})
	if err != nil {
		t.Fatalf("Expected the build to continue past a failed topic, got %v", err)
	}

	want := []string{"a1", "c1", "c2"}
	got := cardIDs(d)
	if len(got) != len(want) {
		t.Fatalf("Expected %d cards, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Card %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if len(d.SkippedTopics) != 1 || d.SkippedTopics[0] != "Geometry" {
		t.Errorf("Expected skipped topics [Geometry], got %v", d.SkippedTopics)
	}
	if _, ok := d.TopicTitles["t2"]; ok {
		t.Error("Expected no title entry for the skipped topic")
	}
}

func TestBuildSequentialAllTopicsFail(t *testing.T) {
	topics := &fakeTopicSource{bySubject: map[string][]models.Topic{
		"s1": {{ID: "t1", SubjectID: "s1", Title: "Algebra"}},
	}}
	cardSrc := &fakeCardSource{failTopics: map[string]error{"t1": errors.New("down")}}
	b := NewBuilder(topics, cardSrc)

	d, err := b.Build(context.Background(), Request{Mode: models.ModeSequentialTopics, SubjectID: "s1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(d.Cards) != 0 {
		t.Errorf("Expected an empty queue, got %d cards", len(d.Cards))
	}
	if len(d.SkippedTopics) != 1 {
		t.Errorf("Expected 1 skipped topic, got %v", d.SkippedTopics)
	}
}
