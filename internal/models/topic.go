package models

import "time"

// Topic groups flashcards inside a subject. FlashcardCount mirrors the
// number of cards under the topic and is only moved via atomic increments.
type Topic struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	SubjectID      string    `bson:"subject_id" json:"subject_id"`
	Title          string    `bson:"title" json:"title"`
	FlashcardCount int       `bson:"flashcard_count" json:"flashcard_count"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
