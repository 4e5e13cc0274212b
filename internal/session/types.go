package session

// SegmentResult aggregates the marks given over one contiguous run of
// same-topic cards in a sequential session. Two runs of the same topic
// separated by another topic report as two segments, never merged.
type SegmentResult struct {
	TopicID    string `json:"topic_id"`
	TopicTitle string `json:"topic_title"`
	Correct    int    `json:"correct"`
	Attempted  int    `json:"attempted"`
}

// Summary is the end-of-session report for the specific-topic and random
// whole-subject modes. Sequential sessions report per-segment instead.
type Summary struct {
	Correct    int     `json:"correct"`
	Attempted  int     `json:"attempted"`
	Percentage float64 `json:"percentage"`
}

// Sink receives completion reports as the controller produces them. The
// controller never waits on the sink: implementations that need I/O must
// hand the work off themselves.
type Sink interface {
	SegmentFinished(seg SegmentResult)
	SessionFinished(sum Summary)
}
