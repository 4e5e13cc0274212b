package models

import "time"

type TestMode string

const (
	ModeSpecificTopic    TestMode = "specific_topic"
	ModeRandomSubject    TestMode = "random_subject"
	ModeSequentialTopics TestMode = "sequential_by_topic"
)

// ParseTestMode maps a request string onto a known test mode.
func ParseTestMode(s string) (TestMode, bool) {
	switch mode := TestMode(s); mode {
	case ModeSpecificTopic, ModeRandomSubject, ModeSequentialTopics:
		return mode, true
	}
	return "", false
}

// TestResult is one completed study report: a whole session for the
// specific-topic and random modes, one topic segment for the sequential
// mode. Results are append-only; nothing ever updates or deletes them.
// TopicID and TopicTitle stay empty for random whole-subject sessions.
type TestResult struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	SubjectID      string    `bson:"subject_id" json:"subject_id"`
	SubjectTitle   string    `bson:"subject_title" json:"subject_title"`
	TopicID        string    `bson:"topic_id,omitempty" json:"topic_id,omitempty"`
	TopicTitle     string    `bson:"topic_title,omitempty" json:"topic_title,omitempty"`
	ScoreCorrect   int       `bson:"score_correct" json:"score_correct"`
	CardsAttempted int       `bson:"cards_attempted" json:"cards_attempted"`
	Percentage     float64   `bson:"percentage" json:"percentage"`
	TestMode       TestMode  `bson:"test_mode" json:"test_mode"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Percentage converts a correct/attempted pair into a 0-100 score.
// Zero attempts scores zero, never a division error.
func Percentage(correct, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return float64(correct) / float64(attempted) * 100
}
