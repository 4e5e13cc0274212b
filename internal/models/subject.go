package models

import "time"

// Subject is a top-level study area owned by one user. TopicCount is a
// denormalized counter kept in step through atomic increments, never by
// re-counting. RevisionProgress, StreakCount and LastStudied are display
// metrics updated when a study session finishes.
type Subject struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	UserID           string     `bson:"user_id" json:"user_id"`
	Title            string     `bson:"title" json:"title"`
	Description      string     `bson:"description" json:"description"`
	TopicCount       int        `bson:"topic_count" json:"topic_count"`
	RevisionProgress int        `bson:"revision_progress" json:"revision_progress"`
	StreakCount      int        `bson:"streak_count" json:"streak_count"`
	LastStudied      *time.Time `bson:"last_studied,omitempty" json:"last_studied,omitempty"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`
}
