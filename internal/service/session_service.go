package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"flashcard-service/internal/deck"
	"flashcard-service/internal/event"
	"flashcard-service/internal/models"
	"flashcard-service/internal/session"
)

// resultWriteTimeout bounds the background writes a finished session
// triggers; the session itself never waits on them.
const resultWriteTimeout = 10 * time.Second

// Narrow dependency slices so the orchestration is testable without Mongo.
// The concrete repositories and the deck builder satisfy them.
type DeckBuilder interface {
	Build(ctx context.Context, req deck.Request) (*deck.Deck, error)
}

type SubjectStore interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	RecordStudy(ctx context.Context, id string, streak int) error
}

type ResultStore interface {
	Create(ctx context.Context, result *models.TestResult) error
}

// EventSink is the slice of the event publisher the session flow uses.
// Left nil when the broker is not configured.
type EventSink interface {
	Publish(eventType string, payload interface{}) error
}

// SessionService runs the study sessions: it builds the card queue, parks
// the state machine in the in-memory registry, serializes the per-session
// operations and flushes completion reports to the result store.
type SessionService struct {
	Subjects SubjectStore
	Results  ResultStore
	Decks    DeckBuilder
	Registry *session.Registry
	Events   EventSink
}

func NewSessionService(subjects SubjectStore, results ResultStore, decks DeckBuilder, registry *session.Registry) *SessionService {
	return &SessionService{
		Subjects: subjects,
		Results:  results,
		Decks:    decks,
		Registry: registry,
	}
}

// SessionView is the wire shape of one session as the client sees it.
type SessionView struct {
	SessionID     string           `json:"session_id"`
	TestMode      models.TestMode  `json:"test_mode"`
	SubjectID     string           `json:"subject_id"`
	SubjectTitle  string           `json:"subject_title"`
	TopicID       string           `json:"topic_id,omitempty"`
	TopicTitle    string           `json:"topic_title,omitempty"`
	Finished      bool             `json:"finished"`
	FrontVisible  bool             `json:"front_visible"`
	Position      int              `json:"position"`
	Total         int              `json:"total"`
	Correct       int              `json:"correct"`
	Attempted     int              `json:"attempted"`
	Card          *CardView        `json:"card,omitempty"`
	Summary       *session.Summary `json:"summary,omitempty"`
	SkippedTopics []string         `json:"skipped_topics,omitempty"`
}

type CardView struct {
	ID         string `json:"id"`
	TopicID    string `json:"topic_id"`
	TopicTitle string `json:"topic_title,omitempty"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// StartSession validates the request, builds the queue for the chosen mode
// and surfaces the first card. The returned view carries the session id
// every follow-up call addresses.
func (s *SessionService) StartSession(ctx context.Context, userID, modeStr, subjectID, topicID string) (*SessionView, error) {
	mode, ok := models.ParseTestMode(modeStr)
	if !ok {
		return nil, ErrInvalidMode
	}
	if subjectID == "" {
		return nil, ErrMissingSubject
	}
	if mode == models.ModeSpecificTopic && topicID == "" {
		return nil, ErrMissingTopic
	}

	subject, err := s.Subjects.FindByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	if subject == nil {
		return nil, ErrNotFound
	}
	if subject.UserID != userID {
		return nil, ErrForbidden
	}

	d, err := s.Decks.Build(ctx, deck.Request{Mode: mode, SubjectID: subjectID, TopicID: topicID})
	if err != nil {
		return nil, err
	}

	a := &session.Active{
		UserID:        userID,
		SubjectID:     subject.ID,
		SubjectTitle:  subject.Title,
		TopicID:       d.TopicID,
		TopicTitle:    d.TopicTitle,
		Mode:          mode,
		TopicTitles:   d.TopicTitles,
		SkippedTopics: d.SkippedTopics,
	}
	recorder := &resultRecorder{
		svc:          s,
		userID:       userID,
		subjectID:    subject.ID,
		subjectTitle: subject.Title,
		topicID:      d.TopicID,
		topicTitle:   d.TopicTitle,
		mode:         mode,
	}
	a.Controller = session.NewController(d.Cards, mode, d.TopicTitles, recorder)
	s.Registry.Put(a)

	var view *SessionView
	a.Do(func() {
		a.Controller.Advance()
		s.afterFinish(a)
		view = s.viewLocked(a)
	})
	return view, nil
}

func (s *SessionService) GetSession(userID, id string) (*SessionView, error) {
	a, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	var view *SessionView
	a.Do(func() {
		view = s.viewLocked(a)
	})
	return view, nil
}

// FlipCard turns the current card over. Flipping a finished session is a
// silent no-op, mirrored back in the view.
func (s *SessionService) FlipCard(userID, id string) (*SessionView, error) {
	a, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	var view *SessionView
	a.Do(func() {
		a.Controller.Flip()
		view = s.viewLocked(a)
	})
	return view, nil
}

// MarkCard records a self-assessment for the current card. A mark given
// while the question side is still showing is silently ignored; a mark
// that exhausts the queue finishes the session and kicks off the
// completion side effects.
func (s *SessionService) MarkCard(userID, id string, correct bool) (*SessionView, error) {
	a, err := s.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	var view *SessionView
	a.Do(func() {
		if correct {
			a.Controller.MarkCorrect()
		} else {
			a.Controller.MarkWrong()
		}
		s.afterFinish(a)
		view = s.viewLocked(a)
	})
	return view, nil
}

// ExitSession throws the in-memory state away. Results already flushed by
// finished segments stay recorded; nothing else survives.
func (s *SessionService) ExitSession(userID, id string) error {
	if _, err := s.lookup(userID, id); err != nil {
		return err
	}
	s.Registry.Remove(id)
	return nil
}

func (s *SessionService) lookup(userID, id string) (*session.Active, error) {
	a, ok := s.Registry.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if a.UserID != userID {
		return nil, ErrForbidden
	}
	return a, nil
}

// afterFinish runs the once-per-session completion side effects: the
// subject's revision metrics and the completion event. Zero-attempt
// sessions change nothing. Callers hold the session lock.
func (s *SessionService) afterFinish(a *session.Active) {
	c := a.Controller
	if !c.Finished() || a.MetricsRecorded {
		return
	}
	a.MetricsRecorded = true
	if c.Attempted() == 0 {
		return
	}
	sum := c.Summary()
	go func() {
		s.recordStudyMetrics(a.SubjectID)
		if s.Events != nil {
			payload := map[string]interface{}{
				"session_id": a.ID,
				"user_id":    a.UserID,
				"subject_id": a.SubjectID,
				"test_mode":  a.Mode,
				"correct":    sum.Correct,
				"attempted":  sum.Attempted,
			}
			if err := s.Events.Publish(event.SessionCompleted, payload); err != nil {
				log.Printf("Warning: failed to publish %s: %v", event.SessionCompleted, err)
			}
		}
	}()
}

// recordStudyMetrics bumps the subject's revision counters for a finished
// session. Failures are logged and never retried.
func (s *SessionService) recordStudyMetrics(subjectID string) {
	ctx, cancel := context.WithTimeout(context.Background(), resultWriteTimeout)
	defer cancel()
	subject, err := s.Subjects.FindByID(ctx, subjectID)
	if err != nil || subject == nil {
		log.Printf("Warning: failed to load subject %s for study metrics: %v", subjectID, err)
		return
	}
	streak := nextStreak(subject.StreakCount, subject.LastStudied, time.Now())
	if err := s.Subjects.RecordStudy(ctx, subjectID, streak); err != nil {
		log.Printf("Warning: failed to record study metrics for subject %s: %v", subjectID, err)
	}
}

// nextStreak applies the daily streak rule: consecutive study days extend
// the streak, a same-day repeat keeps it, a gap resets it to one.
func nextStreak(current int, lastStudied *time.Time, now time.Time) int {
	if lastStudied == nil {
		return 1
	}
	ly, lm, ld := lastStudied.Date()
	ny, nm, nd := now.Date()
	if ly == ny && lm == nm && ld == nd {
		if current < 1 {
			return 1
		}
		return current
	}
	yy, ym, yd := now.AddDate(0, 0, -1).Date()
	if ly == yy && lm == ym && ld == yd {
		return current + 1
	}
	return 1
}

func (s *SessionService) viewLocked(a *session.Active) *SessionView {
	c := a.Controller
	view := &SessionView{
		SessionID:     a.ID,
		TestMode:      a.Mode,
		SubjectID:     a.SubjectID,
		SubjectTitle:  a.SubjectTitle,
		TopicID:       a.TopicID,
		TopicTitle:    a.TopicTitle,
		Finished:      c.Finished(),
		FrontVisible:  c.FrontVisible(),
		Position:      c.Position(),
		Total:         c.QueueLength(),
		Correct:       c.Correct(),
		Attempted:     c.Attempted(),
		SkippedTopics: a.SkippedTopics,
	}
	if card := c.Current(); card != nil {
		view.Card = &CardView{
			ID:         card.ID,
			TopicID:    card.TopicID,
			TopicTitle: a.TopicTitles[card.TopicID],
			Question:   card.Question,
			Answer:     card.Answer,
		}
	}
	if c.Finished() {
		sum := c.Summary()
		view.Summary = &sum
	}
	return view
}

// resultRecorder adapts the controller's completion reports into stored
// TestResult documents. It deliberately carries its own copies of the
// session metadata: the empty-queue case emits before the session is even
// registered.
type resultRecorder struct {
	svc          *SessionService
	userID       string
	subjectID    string
	subjectTitle string
	topicID      string
	topicTitle   string
	mode         models.TestMode
}

func (r *resultRecorder) SegmentFinished(seg session.SegmentResult) {
	r.svc.saveResult(&models.TestResult{
		UserID:         r.userID,
		SubjectID:      r.subjectID,
		SubjectTitle:   r.subjectTitle,
		TopicID:        seg.TopicID,
		TopicTitle:     seg.TopicTitle,
		ScoreCorrect:   seg.Correct,
		CardsAttempted: seg.Attempted,
		Percentage:     models.Percentage(seg.Correct, seg.Attempted),
		TestMode:       r.mode,
		CreatedAt:      time.Now(),
	})
}

func (r *resultRecorder) SessionFinished(sum session.Summary) {
	r.svc.saveResult(&models.TestResult{
		UserID:         r.userID,
		SubjectID:      r.subjectID,
		SubjectTitle:   r.subjectTitle,
		TopicID:        r.topicID,
		TopicTitle:     r.topicTitle,
		ScoreCorrect:   sum.Correct,
		CardsAttempted: sum.Attempted,
		Percentage:     sum.Percentage,
		TestMode:       r.mode,
		CreatedAt:      time.Now(),
	})
}

// saveResult persists one completion report off the session's path: the
// write runs in its own goroutine with its own deadline, and a failure is
// logged without ever disturbing the session.
func (s *SessionService) saveResult(result *models.TestResult) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), resultWriteTimeout)
		defer cancel()
		if err := s.Results.Create(ctx, result); err != nil {
			log.Printf("Warning: failed to save test result for user %s: %v", result.UserID, err)
			return
		}
		if s.Events != nil {
			if err := s.Events.Publish(event.ResultRecorded, result); err != nil {
				log.Printf("Warning: failed to publish %s: %v", event.ResultRecorded, err)
			}
		}
	}()
}
