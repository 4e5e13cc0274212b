package session

import "flashcard-service/internal/models"

// Controller drives one test session over a fixed card queue: surface a
// card front side up, flip it, let the user self-mark, move on. It owns no
// I/O; completion reports leave through the Sink. Methods are not safe for
// concurrent use - callers serialize access per session.
type Controller struct {
	queue       []models.Flashcard
	topicTitles map[string]string
	mode        models.TestMode
	sink        Sink

	cursor       int
	frontVisible bool
	finished     bool
	correct      int
	attempted    int

	// active topic run, sequential mode only
	segment *SegmentResult
}

// NewController builds a controller over an already-ordered queue. The
// queue is taken as-is: shuffling for the random mode happens upstream,
// exactly once, and never here. An empty queue finishes on the spot and
// still reports a 0/0 summary for the non-sequential modes.
func NewController(queue []models.Flashcard, mode models.TestMode, topicTitles map[string]string, sink Sink) *Controller {
	c := &Controller{
		queue:       queue,
		topicTitles: topicTitles,
		mode:        mode,
		sink:        sink,
		cursor:      -1,
	}
	if len(queue) == 0 {
		c.finish()
	}
	return c
}

// Advance surfaces the next card front side up, or ends the session once
// every card has been attempted. On a finished session it does nothing.
func (c *Controller) Advance() {
	if c.finished {
		return
	}
	if c.attempted >= len(c.queue) {
		c.finish()
		return
	}
	c.cursor++
	if c.cursor >= len(c.queue) {
		c.finish()
		return
	}
	c.frontVisible = true
	if c.mode == models.ModeSequentialTopics {
		c.enterTopic(c.queue[c.cursor].TopicID)
	}
}

// Flip toggles which face of the current card is showing. Flipping never
// touches the score.
func (c *Controller) Flip() {
	if c.finished {
		return
	}
	c.frontVisible = !c.frontVisible
}

// MarkCorrect records a correct self-assessment for the current card and
// moves on. Marks only count while the answer side is showing.
func (c *Controller) MarkCorrect() {
	c.mark(true)
}

// MarkWrong records a wrong self-assessment for the current card and moves on.
func (c *Controller) MarkWrong() {
	c.mark(false)
}

func (c *Controller) mark(correct bool) {
	if c.finished || c.frontVisible {
		return
	}
	if c.cursor < 0 || c.cursor >= len(c.queue) {
		return
	}
	c.attempted++
	if correct {
		c.correct++
	}
	if c.segment != nil {
		c.segment.Attempted++
		if correct {
			c.segment.Correct++
		}
	}
	c.Advance()
}

// enterTopic opens a fresh segment when the queue crosses a topic boundary.
// Staying inside the current run keeps the segment going.
func (c *Controller) enterTopic(topicID string) {
	if c.segment != nil && c.segment.TopicID == topicID {
		return
	}
	c.flushSegment()
	c.segment = &SegmentResult{
		TopicID:    topicID,
		TopicTitle: c.topicTitles[topicID],
	}
}

// flushSegment reports the active segment if at least one of its cards was
// marked. A run the user never marked in is dropped silently.
func (c *Controller) flushSegment() {
	if c.segment == nil {
		return
	}
	if c.segment.Attempted > 0 && c.sink != nil {
		c.sink.SegmentFinished(*c.segment)
	}
	c.segment = nil
}

// finish moves the controller into its terminal state and emits the
// completion reports exactly once: the trailing segment for sequential
// sessions, the overall summary for the other modes.
func (c *Controller) finish() {
	if c.finished {
		return
	}
	c.finished = true
	if c.mode == models.ModeSequentialTopics {
		c.flushSegment()
		return
	}
	if c.sink != nil {
		c.sink.SessionFinished(c.Summary())
	}
}

func (c *Controller) Finished() bool {
	return c.finished
}

func (c *Controller) FrontVisible() bool {
	return c.frontVisible
}

func (c *Controller) Correct() int {
	return c.correct
}

func (c *Controller) Attempted() int {
	return c.attempted
}

func (c *Controller) QueueLength() int {
	return len(c.queue)
}

func (c *Controller) Mode() models.TestMode {
	return c.mode
}

// Current returns the card under the cursor, or nil before the first
// Advance and once the session finished.
func (c *Controller) Current() *models.Flashcard {
	if c.finished || c.cursor < 0 || c.cursor >= len(c.queue) {
		return nil
	}
	card := c.queue[c.cursor]
	return &card
}

// Position is the 1-based index of the current card within the queue.
func (c *Controller) Position() int {
	switch {
	case c.cursor < 0:
		return 0
	case c.cursor >= len(c.queue):
		return len(c.queue)
	}
	return c.cursor + 1
}

// Summary reports the running totals at any point in the session.
func (c *Controller) Summary() Summary {
	return Summary{
		Correct:    c.correct,
		Attempted:  c.attempted,
		Percentage: models.Percentage(c.correct, c.attempted),
	}
}
