package models

import "time"

// Flashcard is a single question/answer pair. SubjectID is kept alongside
// TopicID so whole-subject queues load with one query.
type Flashcard struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	TopicID   string    `bson:"topic_id" json:"topic_id"`
	SubjectID string    `bson:"subject_id" json:"subject_id"`
	Question  string    `bson:"question" json:"question"`
	Answer    string    `bson:"answer" json:"answer"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
